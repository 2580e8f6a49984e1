// Package repl implements the interactive analysis session: a terminal
// loop, a line-JSON TCP server for editor integration, and the matching
// client. All three share one Interp, which accumulates entered source
// and answers type questions about it.
package repl

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/voss-lang/voss/internal/inference"
	"github.com/voss-lang/voss/internal/session"
)

// Interp is the shared evaluation core. Entered declarations accumulate
// into a buffer that backs both the declaration index and the binding
// environment, so later inputs see earlier ones.
type Interp struct {
	mu      sync.Mutex
	session *session.Session
	buffer  []string
	files   []string
}

func NewInterp() *Interp {
	return &Interp{session: session.New()}
}

// Session exposes the declaration index, for completion surfaces.
func (in *Interp) Session() *session.Session {
	return in.session
}

// Eval records the input and reports what is known about it. Declarations
// answer with their indexed form, expressions with their inferred type.
func (in *Interp) Eval(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", nil
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	content := strings.Join(in.buffer, "\n")
	cursorLine := len(in.buffer)
	withInput := content
	if withInput != "" {
		withInput += "\n"
	}
	withInput += trimmed

	in.buffer = append(in.buffer, trimmed)
	in.session.Load("repl", strings.Join(in.buffer, "\n"))

	if isDeclaration(trimmed) {
		return trimmed, nil
	}

	vars := inference.ExtractLocalBindings(withInput, cursorLine+1, in.session)
	if ty, ok := vars[bindingName(trimmed)]; ok {
		return bindingName(trimmed) + ": " + ty, nil
	}
	if ty, ok := in.session.InferExpressionType(trimmed, vars); ok {
		return trimmed + ": " + ty, nil
	}
	return trimmed, nil
}

// TypeOf answers the type of an expression without recording it.
func (in *Interp) TypeOf(expr string) (string, bool) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", false
	}

	in.mu.Lock()
	content := strings.Join(in.buffer, "\n")
	cursorLine := len(in.buffer)
	in.mu.Unlock()

	withExpr := content
	if withExpr != "" {
		withExpr += "\n"
	}
	withExpr += expr

	return inference.InferDotReceiverType(withExpr, cursorLine, expr, in.session)
}

// LoadFile reads a source file into the session.
func (in *Interp) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	in.session.Load(path, string(data))
	for _, f := range in.files {
		if f == path {
			return nil
		}
	}
	in.files = append(in.files, path)
	return nil
}

// CompileFile checks path for source problems. A clean file is loaded
// into the session like LoadFile; a broken one reports its problems
// without touching the session.
func (in *Interp) CompileFile(path string) ([]ErrorInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}

	if errs := checkSource(path, string(data)); len(errs) > 0 {
		return errs, nil
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	in.session.Load(path, string(data))
	for _, f := range in.files {
		if f == path {
			return nil, nil
		}
	}
	in.files = append(in.files, path)
	return nil, nil
}

// ReloadFiles re-reads every previously loaded file.
func (in *Interp) ReloadFiles() error {
	in.mu.Lock()
	files := make([]string, len(in.files))
	copy(files, in.files)
	in.mu.Unlock()

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reload %s: %w", path, err)
		}
		in.mu.Lock()
		in.session.Load(path, string(data))
		in.mu.Unlock()
	}
	return nil
}

// Status summarizes what the session knows.
func (in *Interp) Status() string {
	in.mu.Lock()
	lines := len(in.buffer)
	files := len(in.files)
	in.mu.Unlock()

	types := len(in.session.TypeNames())
	funcs := len(in.session.FunctionNames())
	return fmt.Sprintf("%d input lines, %d files loaded, %d types, %d functions",
		lines, files, types, funcs)
}

// Reset drops all accumulated state.
func (in *Interp) Reset() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.buffer = nil
	in.files = nil
	in.session.Reset()
}

func isDeclaration(line string) bool {
	if strings.HasPrefix(line, "type ") {
		return true
	}
	if arrow := strings.Index(line, "->"); arrow >= 0 {
		if paren := strings.IndexByte(line, '('); paren > 0 && paren < arrow {
			return true
		}
	}
	return false
}

// bindingName extracts the target of `x = expr` input, or "".
func bindingName(line string) string {
	eq := strings.IndexByte(line, '=')
	if eq <= 0 || (eq+1 < len(line) && line[eq+1] == '=') {
		return ""
	}
	name := strings.TrimSpace(line[:eq])
	if colon := strings.IndexByte(name, ':'); colon >= 0 {
		name = strings.TrimSpace(name[:colon])
	}
	return name
}
