package repl

import (
	"strings"
	"testing"
)

func TestCheckSource(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		line    int
		message string
	}{
		{"balanced", "type P = { x: Int }\nxs = [1, 2]\n", 0, ""},
		{"unclosed bracket", "x = 1\nys = [1, 2\n", 2, "unclosed"},
		{"unmatched close", "x = 1)\n", 1, "unmatched closing"},
		{"mismatched pair", "xs = [1, 2)\n", 1, "mismatched"},
		{"bracket in string", `s = "[oops"` + "\n", 0, ""},
		{"bracket in comment", "x = 1 # [oops\n", 0, ""},
		{"set literal", "s = #{1, 2}\n", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := checkSource("test.voss", tt.src)
			if tt.message == "" {
				if len(errs) != 0 {
					t.Fatalf("expected no errors, got %v", errs)
				}
				return
			}
			if len(errs) != 1 {
				t.Fatalf("expected one error, got %v", errs)
			}
			if errs[0].Line != tt.line {
				t.Errorf("line = %d, want %d", errs[0].Line, tt.line)
			}
			if errs[0].File != "test.voss" {
				t.Errorf("file = %q", errs[0].File)
			}
			if !strings.Contains(errs[0].Message, tt.message) {
				t.Errorf("message = %q, want substring %q", errs[0].Message, tt.message)
			}
		})
	}
}
