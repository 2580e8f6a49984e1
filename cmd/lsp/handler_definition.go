package main

import (
	"log"
	"strings"
)

func (s *LanguageServer) handleDefinition(id interface{}, params DefinitionParams) error {
	log.Printf("Handling definition request for %s at line %d, char %d", params.TextDocument.URI, params.Position.Line, params.Position.Character)

	content, _, exists := s.snapshot(params.TextDocument.URI)
	if !exists {
		return s.sendResponse(ResponseMessage{
			Jsonrpc: "2.0",
			ID:      id,
			Result:  nil,
		})
	}

	word := wordAt(content, params.Position.Line, params.Position.Character)
	if word == "" {
		return s.sendResponse(ResponseMessage{
			Jsonrpc: "2.0",
			ID:      id,
			Result:  nil,
		})
	}

	line, char, found := findDeclaration(content, word)
	if !found {
		return s.sendResponse(ResponseMessage{
			Jsonrpc: "2.0",
			ID:      id,
			Result:  nil,
		})
	}

	location := Location{
		URI: params.TextDocument.URI,
		Range: Range{
			Start: Position{Line: line, Character: char},
			End:   Position{Line: line, Character: char + len(word)},
		},
	}

	return s.sendResponse(ResponseMessage{
		Jsonrpc: "2.0",
		ID:      id,
		Result:  location,
	})
}

// findDeclaration locates the line that declares word: a type
// declaration, a function head, or the first binding of a variable.
// Purely textual, like everything else here.
func findDeclaration(content, word string) (line, char int, found bool) {
	lines := strings.Split(content, "\n")

	for i, raw := range lines {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if rest, ok := strings.CutPrefix(trimmed, "type "); ok {
			name := rest
			if cut := strings.IndexAny(name, " =["); cut >= 0 {
				name = name[:cut]
			}
			if name == word {
				return i, strings.Index(raw, word), true
			}
			// A variant constructor is declared on its type's line.
			if declaresConstructor(rest, word) {
				return i, constructorColumn(raw, word), true
			}
			continue
		}

		if declaresFunction(trimmed, word) || declaresBinding(trimmed, word) {
			return i, strings.Index(raw, word), true
		}
	}

	return 0, 0, false
}

func declaresFunction(trimmed, word string) bool {
	if !strings.Contains(trimmed, "->") {
		return false
	}
	return strings.HasPrefix(trimmed, word+"(") ||
		strings.HasPrefix(trimmed, word+" :") ||
		strings.HasPrefix(trimmed, word+":")
}

func declaresBinding(trimmed, word string) bool {
	if rest, ok := strings.CutPrefix(trimmed, "mvar "); ok {
		trimmed = rest
	}
	if !strings.HasPrefix(trimmed, word) {
		return false
	}
	rest := trimmed[len(word):]
	rest = strings.TrimLeft(rest, " ")
	if strings.HasPrefix(rest, ":") && !strings.HasPrefix(rest, ":=") {
		// Annotated binding `x: Int = ...`
		return strings.Contains(rest, "=")
	}
	return strings.HasPrefix(rest, "=") && !strings.HasPrefix(rest, "==")
}

func declaresConstructor(typeRest, word string) bool {
	_, body, ok := strings.Cut(typeRest, "=")
	if !ok || strings.Contains(body, "{") {
		return false
	}
	for _, alt := range strings.Split(body, "|") {
		name := strings.TrimSpace(alt)
		if cut := strings.IndexByte(name, '('); cut >= 0 {
			name = name[:cut]
		}
		if name == word {
			return true
		}
	}
	return false
}

func constructorColumn(raw, word string) int {
	if eq := strings.IndexByte(raw, '='); eq >= 0 {
		if col := strings.Index(raw[eq:], word); col >= 0 {
			return eq + col
		}
	}
	return strings.Index(raw, word)
}
