package inference

import "testing"

func TestDetectLiteralType(t *testing.T) {
	cases := []struct {
		expr string
		want string
		ok   bool
	}{
		{`"hello"`, "String", true},
		{"'c'", "String", true},
		{"[1,2,3]", "List", true},
		{"%{a: 1}", "Map", true},
		{"#{1,2}", "Set", true},
		{"42", "Int", true},
		{"-42", "Int", true},
		{"3.14", "Float", true},
		{"-3.14", "Float", true},
		{"foo", "", false},
		{"", "", false},
		// Indexed list literal defers to the container inferrer.
		{`[["a","b"]][0]`, "", false},
	}

	for _, c := range cases {
		got, ok := DetectLiteralType(c.expr)
		if got != c.want || ok != c.ok {
			t.Errorf("DetectLiteralType(%q) = %q, %v; want %q, %v", c.expr, got, ok, c.want, c.ok)
		}
	}
}

func TestExtractReceiverExpression(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"x", "x"},
		{"[1,2,3]", "[1,2,3]"},
		{"a + [1,2,3]", "[1,2,3]"},
		{"f(x) + nums", "nums"},
		{`g("a + b")`, `g("a + b")`},
		{`"tail] + x"`, `"tail] + x"`},
		{"self.age", "self.age"},
		{"(1, 2)", "(1, 2)"},
	}

	for _, c := range cases {
		if got := ExtractReceiverExpression(c.text); got != c.want {
			t.Errorf("ExtractReceiverExpression(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}

func TestExtractReceiverExpressionEscapedQuote(t *testing.T) {
	// The quote preceded by an odd number of backslashes does not close
	// the string.
	text := `a + "he said \"hi\""`
	if got := ExtractReceiverExpression(text); got != `"he said \"hi\""` {
		t.Errorf("got %q", got)
	}
}
