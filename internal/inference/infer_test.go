package inference

import "testing"

func TestInferDotReceiverTypeLiterals(t *testing.T) {
	cases := []struct {
		beforeDot string
		want      string
	}{
		{`"hello"`, "String"},
		{"[1,2,3]", "List"},
		{"%{a: 1}", "Map"},
		{"#{1,2}", "Set"},
		{"42", "Int"},
		{"3.14", "Float"},
	}

	for _, c := range cases {
		got, ok := InferDotReceiverType("", 0, c.beforeDot, nil)
		if !ok || got != c.want {
			t.Errorf("InferDotReceiverType(%q) = %q, %v; want %q", c.beforeDot, got, ok, c.want)
		}
	}
}

func TestInferDotReceiverTypeLocalBinding(t *testing.T) {
	content := "nums = [1,2,3]\nnums."
	got, ok := InferDotReceiverType(content, 1, "nums", nil)
	if !ok || got != "List[Int]" {
		t.Errorf("nums = %q, %v; want List[Int]", got, ok)
	}
}

func TestInferDotReceiverTypeAssignmentPrefix(t *testing.T) {
	// Only the right side of the assignment on the current line matters.
	content := "x = [1,2]\ny = x"
	got, ok := InferDotReceiverType(content, 1, "y = x", nil)
	if !ok || got != "List[Int]" {
		t.Errorf("got %q, %v; want List[Int]", got, ok)
	}
}

func TestInferDotReceiverTypeReceiverExtraction(t *testing.T) {
	got, ok := InferDotReceiverType("", 0, "a + [1,2,3]", nil)
	if !ok || got != "List" {
		t.Errorf("got %q, %v; want List", got, ok)
	}
}

func TestInferDotReceiverTypeIndexedLiteral(t *testing.T) {
	got, ok := InferDotReceiverType("", 0, `[["a","b"]][0]`, nil)
	if !ok || got != "List[String]" {
		t.Errorf("got %q, %v; want List[String]", got, ok)
	}
}

func TestInferDotReceiverTypeIndexExpr(t *testing.T) {
	content := "grid = [[1,2],[3,4]]\ngrid[0]."
	got, ok := InferDotReceiverType(content, 1, "grid[0]", nil)
	if !ok || got != "List[Int]" {
		t.Errorf("got %q, %v; want List[Int]", got, ok)
	}
}

func TestInferDotReceiverTypeLambdaParam(t *testing.T) {
	content := "nums = [1,2,3]\nnums.map(p => p."
	got, ok := InferDotReceiverType(content, 1, "nums.map(p => p", nil)
	if !ok || got != "Int" {
		t.Errorf("p = %q, %v; want Int", got, ok)
	}
}

func TestInferDotReceiverTypeFieldAccessViaEngine(t *testing.T) {
	engine := &stubEngine{
		fields: map[string]map[string]string{
			"Person": {"age": "Int"},
		},
	}
	content := "Person: Show\n" +
		"show(self) =\n" +
		"  self.age."

	got, ok := InferDotReceiverType(content, 2, "self.age", engine)
	if !ok || got != "Int" {
		t.Errorf("self.age = %q, %v; want Int", got, ok)
	}
}

func TestInferDotReceiverTypeFieldAccessViaSource(t *testing.T) {
	content := "type Person = { name: String, age: Int }\n" +
		"Person: Show\n" +
		"show(self) =\n" +
		"  self.name."

	got, ok := InferDotReceiverType(content, 3, "self.name", nil)
	if !ok || got != "String" {
		t.Errorf("self.name = %q, %v; want String", got, ok)
	}
}

func TestInferDotReceiverTypeConstructor(t *testing.T) {
	engine := &stubEngine{
		constructors: map[string]string{"Some": "Option"},
		types:        []string{"util.Person"},
	}

	got, ok := InferDotReceiverType("", 0, "Some(1)", engine)
	if !ok || got != "Option" {
		t.Errorf("Some(1) = %q, %v; want Option", got, ok)
	}

	// Unqualified suffix match against dotted type names.
	got, ok = InferDotReceiverType("", 0, "Person(1)", engine)
	if !ok || got != "util.Person" {
		t.Errorf("Person(1) = %q, %v; want util.Person", got, ok)
	}
}

func TestInferDotReceiverTypeFunctionReturn(t *testing.T) {
	engine := &stubEngine{
		signatures: map[string]string{
			"parseAge": "parseAge(s: String) -> Int",
			"identity": "identity(x: a) -> a",
		},
	}
	content := "name = \"bob\"\n"

	got, ok := InferDotReceiverType(content, 1, "parseAge(name)", engine)
	if !ok || got != "Int" {
		t.Errorf("parseAge(name) = %q, %v; want Int", got, ok)
	}

	// Generic return type resolves to the first argument's type.
	got, ok = InferDotReceiverType(content, 1, "identity(name)", engine)
	if !ok || got != "String" {
		t.Errorf("identity(name) = %q, %v; want String", got, ok)
	}
}

func TestInferDotReceiverTypeEngineFallback(t *testing.T) {
	engine := &stubEngine{
		exprTypes: map[string]string{"mystery": "Widget"},
	}

	got, ok := InferDotReceiverType("", 0, "mystery", engine)
	if !ok || got != "Widget" {
		t.Errorf("mystery = %q, %v; want Widget", got, ok)
	}
}

func TestInferDotReceiverTypeAbsence(t *testing.T) {
	if got, ok := InferDotReceiverType("", 0, "unboundName", nil); ok {
		t.Errorf("unbound identifier inferred as %q", got)
	}
	if got, ok := InferDotReceiverType("", 0, "???", nil); ok {
		t.Errorf("garbage inferred as %q", got)
	}
	if got, ok := InferDotReceiverType("", 0, "", nil); ok {
		t.Errorf("empty prefix inferred as %q", got)
	}
}
