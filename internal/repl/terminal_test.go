package repl

import (
	"strings"
	"testing"

	"github.com/voss-lang/voss/internal/config"
)

func TestTerminalColorMode(t *testing.T) {
	interp := NewInterp()

	on := NewTerminal(interp, &config.Tooling{Color: "on"})
	if !on.colors {
		t.Error("color mode on should force colors")
	}
	if !strings.Contains(on.red("x"), "\x1b[31m") {
		t.Error("forced colors should produce ANSI output")
	}

	off := NewTerminal(interp, &config.Tooling{Color: "off"})
	if off.colors {
		t.Error("color mode off should disable colors")
	}
	if off.red("x") != "x" {
		t.Errorf("disabled colors should pass text through, got %q", off.red("x"))
	}
}

func TestTerminalHistorySize(t *testing.T) {
	term := NewTerminal(NewInterp(), &config.Tooling{HistorySize: 42})
	if term.historySize != 42 {
		t.Errorf("historySize = %d, want 42", term.historySize)
	}
}

func TestCapHistory(t *testing.T) {
	tests := []struct {
		name    string
		history string
		max     int
		want    string
	}{
		{"under cap", "a\nb\n", 5, "a\nb\n"},
		{"at cap", "a\nb\n", 2, "a\nb\n"},
		{"over cap keeps newest", "a\nb\nc\nd\n", 2, "c\nd\n"},
		{"no cap", "a\nb\nc\n", 0, "a\nb\nc\n"},
		{"empty", "", 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := capHistory(tt.history, tt.max); got != tt.want {
				t.Errorf("capHistory(%q, %d) = %q, want %q", tt.history, tt.max, got, tt.want)
			}
		})
	}
}
