package inference

import "testing"

func TestInferListType(t *testing.T) {
	cases := []struct {
		expr string
		want string
		ok   bool
	}{
		{"[1,2,3]", "List[Int]", true},
		{`["a","b"]`, "List[String]", true},
		{"[1.5, 2.5]", "List[Float]", true},
		{"[[1,2],[3,4]]", "List[List[Int]]", true},
		{"[]", "List", true},
		{"[Point(1,2), Point(3,4)]", "List[Point]", true},
		{"[x, y]", "List", true},
		{"not a list", "", false},
	}

	for _, c := range cases {
		got, ok := InferListType(c.expr)
		if got != c.want || ok != c.ok {
			t.Errorf("InferListType(%q) = %q, %v; want %q, %v", c.expr, got, ok, c.want, c.ok)
		}
	}
}

func TestInferIndexedListLiteralType(t *testing.T) {
	cases := []struct {
		expr string
		want string
		ok   bool
	}{
		{`[["a","b"]][0]`, "List[String]", true},
		{`[["a","b"]][0][0]`, "String", true},
		{"[[1,2],[3,4]][1]", "List[Int]", true},
		{"[1,2,3][0]", "Int", true},
		// Peeling stops on a non-list label and returns it.
		{"[1,2,3][0][0]", "Int", true},
		// No index suffix at all.
		{"[1,2,3]", "", false},
		// Bare List cannot be peeled.
		{"[][0]", "", false},
		{"xs[0]", "", false},
	}

	for _, c := range cases {
		got, ok := InferIndexedListLiteralType(c.expr)
		if got != c.want || ok != c.ok {
			t.Errorf("InferIndexedListLiteralType(%q) = %q, %v; want %q, %v", c.expr, got, ok, c.want, c.ok)
		}
	}
}

func TestInferTupleType(t *testing.T) {
	cases := []struct {
		expr string
		want string
		ok   bool
	}{
		{`(42, "hello")`, "(Int, String)", true},
		{"(true, 1, 3.14)", "(Bool, Int, Float)", true},
		{"([1,2], (3, 4))", "(List[Int], (Int, Int))", true},
		{`(Point(1,2), "x")`, "(Point, String)", true},
		{"(foo, 1)", "(Unknown, Int)", true},
		{"()", "()", true},
		{"42", "", false},
	}

	for _, c := range cases {
		got, ok := InferTupleType(c.expr)
		if got != c.want || ok != c.ok {
			t.Errorf("InferTupleType(%q) = %q, %v; want %q, %v", c.expr, got, ok, c.want, c.ok)
		}
	}
}
