package repl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEvalBindingReportsType(t *testing.T) {
	in := NewInterp()

	out, err := in.Eval("x = 5")
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if out != "x: Int" {
		t.Errorf("Eval(x = 5) = %q, want %q", out, "x: Int")
	}
}

func TestEvalSeesEarlierInput(t *testing.T) {
	in := NewInterp()

	if _, err := in.Eval("nums = [1, 2, 3]"); err != nil {
		t.Fatalf("Eval failed: %v", err)
	}

	out, err := in.Eval("ys = nums.filter(n => n > 1)")
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if out != "ys: List[Int]" {
		t.Errorf("Eval = %q, want %q", out, "ys: List[Int]")
	}
}

func TestEvalDeclaration(t *testing.T) {
	in := NewInterp()

	out, err := in.Eval("type Person = { name: String, age: Int }")
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if !strings.HasPrefix(out, "type Person") {
		t.Errorf("Eval declaration = %q", out)
	}

	if ty, ok := in.Session().FieldType("Person", "age"); !ok || ty != "Int" {
		t.Errorf("FieldType(Person, age) = %q, %v", ty, ok)
	}
}

func TestTypeOf(t *testing.T) {
	in := NewInterp()

	if _, err := in.Eval("words = [\"a\", \"b\"]"); err != nil {
		t.Fatalf("Eval failed: %v", err)
	}

	tests := []struct {
		expr string
		want string
		ok   bool
	}{
		{"words", "List[String]", true},
		{"words.head()", "String", true},
		{`"hi"`, "String", true},
		{"mystery", "", false},
	}

	for _, tt := range tests {
		got, ok := in.TypeOf(tt.expr)
		if ok != tt.ok || got != tt.want {
			t.Errorf("TypeOf(%q) = %q, %v; want %q, %v", tt.expr, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLoadAndReloadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.voss")
	if err := os.WriteFile(path, []byte("type Point = { x: Int, y: Int }\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	in := NewInterp()
	if err := in.LoadFile(path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if _, ok := in.Session().FieldType("Point", "x"); !ok {
		t.Fatal("loaded file should index Point")
	}

	if err := os.WriteFile(path, []byte("type Point = { x: Float }\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := in.ReloadFiles(); err != nil {
		t.Fatalf("ReloadFiles failed: %v", err)
	}
	if ty, ok := in.Session().FieldType("Point", "x"); !ok || ty != "Float" {
		t.Errorf("after reload, FieldType(Point, x) = %q, %v", ty, ok)
	}
}

func TestLoadFileMissing(t *testing.T) {
	in := NewInterp()
	if err := in.LoadFile(filepath.Join(t.TempDir(), "absent.voss")); err == nil {
		t.Fatal("expected error loading a missing file")
	}
}

func TestReset(t *testing.T) {
	in := NewInterp()
	if _, err := in.Eval("x = 5"); err != nil {
		t.Fatal(err)
	}
	in.Reset()

	if _, ok := in.TypeOf("x"); ok {
		t.Error("reset session should not remember bindings")
	}
	if !strings.HasPrefix(in.Status(), "0 input lines") {
		t.Errorf("Status after reset = %q", in.Status())
	}
}

func TestDelimitersBalanced(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"x = 5", true},
		{"f(x", false},
		{"xs = [1,\n2]", true},
		{"s = \"a (\"", true},
		{"x = 1 # (", true},
		{"s = #{1, 2", false},
	}

	for _, tt := range tests {
		if got := delimitersBalanced(tt.src); got != tt.want {
			t.Errorf("delimitersBalanced(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}
