// Package session maintains a semantic index of loaded Voss source and
// serves the read-only engine queries that enrich textual inference. It
// is the static-analysis stand-in for a live evaluator: declarations are
// recovered by line scanning, so a file that fails to parse elsewhere
// still contributes the declarations it does contain.
package session

import (
	"sort"
	"strings"
	"sync"

	"github.com/voss-lang/voss/internal/inference"
)

// Session indexes type, constructor and function declarations from the
// source it has been fed. All query methods are safe for concurrent use;
// Load and Reset take the write lock.
type Session struct {
	mu sync.RWMutex

	// typeFields maps a type name to its record fields.
	typeFields map[string]map[string]string

	// constructors maps a variant constructor to its declaring type.
	constructors map[string]string

	// signatures maps a function name to its full signature text.
	signatures map[string]string

	// sources remembers loaded chunks by origin for Reload.
	sources map[string]string
	order   []string
}

// New returns an empty session.
func New() *Session {
	s := &Session{}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.typeFields = make(map[string]map[string]string)
	s.constructors = make(map[string]string)
	s.signatures = make(map[string]string)
	s.sources = make(map[string]string)
	s.order = nil
}

// Reset drops everything the session has indexed.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Load indexes source under the given origin name (a file path or "repl").
// Loading the same origin again replaces its previous contribution.
func (s *Session) Load(origin, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.sources[origin]; !seen {
		s.order = append(s.order, origin)
	}
	s.sources[origin] = source
	s.rebuild()
}

// Reload re-indexes every origin from its remembered source.
func (s *Session) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebuild()
}

// Origins lists the loaded origins in load order.
func (s *Session) Origins() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Session) rebuild() {
	s.typeFields = make(map[string]map[string]string)
	s.constructors = make(map[string]string)
	s.signatures = make(map[string]string)
	for _, origin := range s.order {
		s.indexSource(s.sources[origin])
	}
}

func (s *Session) indexSource(source string) {
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if rest, found := strings.CutPrefix(trimmed, "type "); found {
			s.indexTypeDecl(rest)
			continue
		}

		s.indexFunctionDecl(trimmed)
	}
}

// indexTypeDecl handles `Name = { f: T, ... }` record declarations and
// `Name = A | B(Int)` variant declarations, the text after "type ".
func (s *Session) indexTypeDecl(rest string) {
	name, body, found := strings.Cut(rest, "=")
	if !found {
		return
	}

	typeName := strings.TrimSpace(name)
	if i := strings.IndexByte(typeName, '['); i >= 0 {
		typeName = strings.TrimSpace(typeName[:i])
	}
	if typeName == "" || !isUpperStart(typeName) {
		return
	}

	if _, ok := s.typeFields[typeName]; !ok {
		s.typeFields[typeName] = make(map[string]string)
	}

	body = strings.TrimSpace(body)

	if strings.HasPrefix(body, "{") {
		inner := strings.TrimPrefix(body, "{")
		if end := strings.IndexByte(inner, '}'); end >= 0 {
			inner = inner[:end]
		}
		for _, field := range strings.Split(inner, ",") {
			fname, ftype, ok := strings.Cut(field, ":")
			if !ok {
				continue
			}
			fname = strings.TrimSpace(fname)
			ftype = strings.TrimSpace(ftype)
			if fname != "" && ftype != "" {
				s.typeFields[typeName][fname] = ftype
			}
		}
		return
	}

	// Variant declaration: each alternative's leading identifier is a
	// constructor of this type.
	for _, alt := range strings.Split(body, "|") {
		ctor := leadingIdentifier(strings.TrimSpace(alt))
		if ctor != "" && isUpperStart(ctor) {
			s.constructors[ctor] = typeName
		}
	}
}

// indexFunctionDecl records `name(args) -> Ret = ...` and bare signature
// lines `name : (Args) -> Ret`.
func (s *Session) indexFunctionDecl(trimmed string) {
	arrow := strings.Index(trimmed, "->")
	if arrow < 0 {
		return
	}

	cut := arrow
	if paren := strings.IndexByte(trimmed, '('); paren >= 0 && paren < cut {
		cut = paren
	}
	if colon := strings.IndexByte(trimmed, ':'); colon >= 0 && colon < cut {
		cut = colon
	}
	if cut == arrow {
		return
	}
	head := trimmed[:cut]

	name := strings.TrimSpace(head)
	if name == "" || isUpperStart(name) || !isIdentifier(name) {
		return
	}

	sig := trimmed
	if eq := signatureEnd(trimmed, arrow); eq >= 0 {
		sig = strings.TrimSpace(trimmed[:eq])
	}
	s.signatures[name] = sig
}

// signatureEnd finds the `=` that starts the body after the return type,
// ignoring `=>`, `==` and the arrow itself.
func signatureEnd(line string, from int) int {
	for i := from + 2; i < len(line); i++ {
		if line[i] != '=' {
			continue
		}
		if i+1 < len(line) && (line[i+1] == '=' || line[i+1] == '>') {
			i++
			continue
		}
		if i > 0 && (line[i-1] == '=' || line[i-1] == '!' || line[i-1] == '<' || line[i-1] == '>') {
			continue
		}
		return i
	}
	return -1
}

// TypeForConstructor implements inference.Engine.
func (s *Session) TypeForConstructor(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ty, ok := s.constructors[name]
	return ty, ok
}

// TypeNames implements inference.Engine.
func (s *Session) TypeNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.typeFields))
	for name := range s.typeFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConstructorNames lists indexed variant constructors, for completion
// surfaces.
func (s *Session) ConstructorNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.constructors))
	for name := range s.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FunctionSignature implements inference.Engine.
func (s *Session) FunctionSignature(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sig, ok := s.signatures[name]
	return sig, ok
}

// FunctionNames lists indexed function names, for completion surfaces.
func (s *Session) FunctionNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.signatures))
	for name := range s.signatures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FieldType implements inference.Engine.
func (s *Session) FieldType(typeName, fieldName string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fields, ok := s.typeFields[typeName]
	if !ok {
		return "", false
	}
	ty, ok := fields[fieldName]
	return ty, ok
}

// FieldNames lists the declared fields of a type, for completion surfaces.
func (s *Session) FieldNames(typeName string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fields, ok := s.typeFields[typeName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InferExpressionType implements inference.Engine: the general fallback
// simply re-enters the RHS dispatcher with this session as the engine.
// The dispatcher itself never calls back into this method, so the pair
// cannot loop.
func (s *Session) InferExpressionType(expr string, vars inference.Bindings) (string, bool) {
	return inference.InferRHSType(expr, s, vars)
}

func isUpperStart(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}

func isIdentifier(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') {
			continue
		}
		return false
	}
	return s != ""
}

func leadingIdentifier(s string) string {
	end := 0
	for end < len(s) {
		b := s[end]
		if b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') {
			end++
			continue
		}
		break
	}
	return s[:end]
}
