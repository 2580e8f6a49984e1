package inference

import "testing"

func TestMethodReturnTypeList(t *testing.T) {
	cases := []struct {
		receiver string
		method   string
		want     string
		ok       bool
	}{
		{"List[Int]", "filter", "List[Int]", true},
		{"List[Int]", "take", "List[Int]", true},
		{"List[Int]", "head", "Int", true},
		{"List[Int]", "get", "Int", true},
		{"List[Int]", "any", "Bool", true},
		{"List[Int]", "length", "Int", true},
		{"List[Int]", "first", "Option[Int]", true},
		{"List[Int]", "map", "List", true},
		{"List[Int]", "flatMap", "List", true},
		{"List[Int]", "enumerate", "List[(Int, Int)]", true},
		{"List[Int]", "flatten", "List[Int]", true},
		{"List[List[Int]]", "flatten", "List[Int]", true},
		{"List", "filter", "List", true},
		{"List", "head", "", false},
		{"List[Int]", "unknownMethod", "", false},
	}

	for _, c := range cases {
		got, ok := MethodReturnType(c.receiver, c.method)
		if got != c.want || ok != c.ok {
			t.Errorf("MethodReturnType(%q, %q) = %q, %v; want %q, %v",
				c.receiver, c.method, got, ok, c.want, c.ok)
		}
	}
}

func TestMethodReturnTypeString(t *testing.T) {
	cases := []struct {
		method string
		want   string
	}{
		{"chars", "List[Char]"},
		{"lines", "List[String]"},
		{"split", "List[String]"},
		{"trim", "String"},
		{"toUpper", "String"},
		{"length", "Int"},
		{"startsWith", "Bool"},
	}

	for _, c := range cases {
		got, ok := MethodReturnType("String", c.method)
		if !ok || got != c.want {
			t.Errorf("MethodReturnType(String, %q) = %q, %v; want %q", c.method, got, ok, c.want)
		}
	}
}

func TestMethodReturnTypeOption(t *testing.T) {
	if got, ok := MethodReturnType("Option[Int]", "unwrap"); !ok || got != "Int" {
		t.Errorf("unwrap = %q, %v", got, ok)
	}
	if got, ok := MethodReturnType("Option[Int]", "isSome"); !ok || got != "Bool" {
		t.Errorf("isSome = %q, %v", got, ok)
	}
	if got, ok := MethodReturnType("Option[Int]", "map"); !ok || got != "Option" {
		t.Errorf("map = %q, %v", got, ok)
	}
}

func TestMethodReturnTypeUniversal(t *testing.T) {
	if got, _ := MethodReturnType("Person", "show"); got != "String" {
		t.Errorf("show = %q", got)
	}
	if got, _ := MethodReturnType("Person", "hash"); got != "Int" {
		t.Errorf("hash = %q", got)
	}
	if got, _ := MethodReturnType("List[Person]", "copy"); got != "List[Person]" {
		t.Errorf("copy = %q", got)
	}
}

func TestLambdaParamTypeForMethod(t *testing.T) {
	cases := []struct {
		receiver string
		method   string
		want     string
		ok       bool
	}{
		{"List[Int]", "map", "Int", true},
		{"List[String]", "filter", "String", true},
		{"List[Int]", "fold", "Int", true},
		{"List", "map", "Int", true},
		{"Option[Int]", "map", "Int", true},
		{"Option", "map", "a", true},
		{"Result[Int, String]", "map", "Int", true},
		{"Result[Int, String]", "mapErr", "String", true},
		{"Map", "map", "(k, v)", true},
		{"Set[Float]", "each", "Float", true},
		{"Person", "map", "", false},
		{"List[Int]", "push", "", false},
	}

	for _, c := range cases {
		got, ok := LambdaParamTypeForMethod(c.receiver, c.method)
		if got != c.want || ok != c.ok {
			t.Errorf("LambdaParamTypeForMethod(%q, %q) = %q, %v; want %q, %v",
				c.receiver, c.method, got, ok, c.want, c.ok)
		}
	}
}
