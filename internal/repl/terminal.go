package repl

import (
	"bytes"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/voss-lang/voss/internal/config"
	"github.com/voss-lang/voss/internal/inference"
)

const (
	promptMain = "voss> "
	promptCont = "....> "
)

var banner = "Voss analysis REPL\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands."

const helpText = `REPL commands:
  :load FILE    Load a source file into the session
  :reload       Re-read all loaded files
  :type EXPR    Show the inferred type of an expression
  :status       Summarize the session
  :reset        Drop all session state
  :help         Show this help
  :quit         Exit the REPL
`

// Terminal runs the interactive loop on the controlling terminal.
type Terminal struct {
	interp      *Interp
	colors      bool
	historySize int
}

func NewTerminal(interp *Interp, cfg *config.Tooling) *Terminal {
	if cfg == nil {
		cfg = config.DefaultTooling()
	}

	colors := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	switch cfg.Color {
	case "on":
		colors = true
	case "off":
		colors = false
	}

	return &Terminal{
		interp:      interp,
		colors:      colors,
		historySize: cfg.HistorySize,
	}
}

func (t *Terminal) red(s string) string {
	if !t.colors {
		return s
	}
	return "\x1b[31m" + s + "\x1b[0m"
}

func (t *Terminal) green(s string) string {
	if !t.colors {
		return s
	}
	return "\x1b[32m" + s + "\x1b[0m"
}

func (t *Terminal) blue(s string) string {
	if !t.colors {
		return s
	}
	return "\x1b[94m" + s + "\x1b[0m"
}

func (t *Terminal) Run() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, config.HistoryFileName)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(t.complete)

	defer func() {
		var buf bytes.Buffer
		if _, err := ln.WriteHistory(&buf); err == nil {
			_ = os.WriteFile(histPath, []byte(capHistory(buf.String(), t.historySize)), 0o644)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		code, ok := readInput(ln)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			if quit := t.runCommand(trimmed); quit {
				return 0
			}
			ln.AppendHistory(trimmed)
			continue
		}

		out, err := t.interp.Eval(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, t.red(err.Error()))
			continue
		}
		if out != "" {
			fmt.Println(t.blue(out))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

func (t *Terminal) runCommand(cmd string) (quit bool) {
	name, arg, _ := strings.Cut(cmd, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case ":quit", ":q":
		return true

	case ":help", ":h":
		fmt.Print(helpText)

	case ":load":
		if arg == "" {
			fmt.Fprintln(os.Stderr, t.red("usage: :load FILE"))
			break
		}
		if err := t.interp.LoadFile(arg); err != nil {
			fmt.Fprintln(os.Stderr, t.red(err.Error()))
			break
		}
		fmt.Println(t.green("loaded " + arg))

	case ":reload":
		if err := t.interp.ReloadFiles(); err != nil {
			fmt.Fprintln(os.Stderr, t.red(err.Error()))
			break
		}
		fmt.Println(t.green("reloaded"))

	case ":type":
		if arg == "" {
			fmt.Fprintln(os.Stderr, t.red("usage: :type EXPR"))
			break
		}
		if ty, ok := t.interp.TypeOf(arg); ok {
			fmt.Println(t.blue(arg + ": " + ty))
		} else {
			fmt.Println(t.blue(arg + ": ?"))
		}

	case ":status":
		fmt.Println(t.interp.Status())

	case ":reset":
		t.interp.Reset()
		fmt.Println(t.green("session reset"))

	default:
		fmt.Printf("unknown command %s. Type :help for commands.\n", name)
	}

	return false
}

// complete answers tab completion: member names after a dot, known
// identifiers otherwise.
func (t *Terminal) complete(line string) []string {
	dot := strings.LastIndexByte(line, '.')
	if dot >= 0 && dot == len(line)-1 {
		return t.memberCompletions(line[:dot], line, "")
	}
	if dot >= 0 && !strings.ContainsAny(line[dot+1:], " ([{") {
		return t.memberCompletions(line[:dot], line[:dot+1], line[dot+1:])
	}
	return t.identifierCompletions(line)
}

func (t *Terminal) memberCompletions(beforeDot, keep, partial string) []string {
	index := t.interp.Session()

	t.interp.mu.Lock()
	content := strings.Join(t.interp.buffer, "\n")
	cursorLine := len(t.interp.buffer)
	t.interp.mu.Unlock()

	withLine := content
	if withLine != "" {
		withLine += "\n"
	}
	withLine += beforeDot

	receiverType, ok := inference.InferDotReceiverType(withLine, cursorLine, beforeDot, index)
	if !ok {
		return nil
	}

	var names []string
	base := inference.ParseLabel(receiverType)
	if base.Kind == inference.KindNominal {
		names = append(names, index.FieldNames(base.Name)...)
	}
	names = append(names, inference.MethodNamesFor(receiverType)...)

	var out []string
	for _, name := range names {
		if strings.HasPrefix(name, partial) {
			out = append(out, keep+name)
		}
	}
	sort.Strings(out)
	return out
}

func (t *Terminal) identifierCompletions(line string) []string {
	start := len(line)
	for start > 0 && config.IsIdentifierByte(line[start-1]) {
		start--
	}
	keep := line[:start]
	partial := line[start:]

	index := t.interp.Session()

	var names []string
	names = append(names, config.Keywords...)
	names = append(names, index.FunctionNames()...)
	names = append(names, index.TypeNames()...)
	names = append(names, index.ConstructorNames()...)

	var out []string
	for _, name := range names {
		if partial != "" && strings.HasPrefix(name, partial) {
			out = append(out, keep+name)
		}
	}
	sort.Strings(out)
	return out
}

// capHistory keeps only the newest max entries of a newline-separated
// history file. A non-positive max keeps everything.
func capHistory(history string, max int) string {
	if max <= 0 {
		return history
	}
	lines := strings.Split(strings.TrimRight(history, "\n"), "\n")
	if len(lines) <= max {
		return history
	}
	return strings.Join(lines[len(lines)-max:], "\n") + "\n"
}

// readInput gathers one input, continuing onto new lines while the
// delimiters are unbalanced.
func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(promptMain)
		} else {
			line, err = ln.Prompt(promptCont)
		}
		if err != nil {
			if err == liner.ErrPromptAborted {
				return "", true
			}
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if delimitersBalanced(src) {
			return src, true
		}
	}
}

// delimitersBalanced reports whether every opener has been closed,
// skipping strings and comments.
func delimitersBalanced(src string) bool {
	depth := 0
	inStr := false
	inComment := false
	escaped := false

	for i := 0; i < len(src); i++ {
		b := src[i]
		switch {
		case inComment:
			if b == '\n' {
				inComment = false
			}
		case inStr:
			if escaped {
				escaped = false
			} else if b == '\\' {
				escaped = true
			} else if b == '"' || b == '\n' {
				inStr = false
			}
		default:
			switch b {
			case '"':
				inStr = true
			case '#':
				if i+1 >= len(src) || src[i+1] != '{' {
					inComment = true
				}
			case '(', '[', '{':
				depth++
			case ')', ']', '}':
				depth--
			}
		}
	}

	return depth <= 0
}
