package main

import (
	"log"
	"strings"

	"github.com/voss-lang/voss/internal/config"
	"github.com/voss-lang/voss/internal/inference"
	"github.com/voss-lang/voss/internal/session"
)

func (s *LanguageServer) handleHover(id interface{}, params HoverParams) error {
	log.Printf("Handling hover request for %s at line %d, char %d", params.TextDocument.URI, params.Position.Line, params.Position.Character)

	content, index, exists := s.snapshot(params.TextDocument.URI)
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

	value, found := hoverText(content, index, params.Position.Line, word)
	if !found {
		return s.sendResponse(ResponseMessage{
			Jsonrpc: "2.0",
			ID:      id,
			Result:  nil,
		})
	}

	return s.sendResponse(ResponseMessage{
		Jsonrpc: "2.0",
		ID:      id,
		Result: Hover{
			Contents: MarkupContent{
				Kind:  "markdown",
				Value: value,
			},
		},
	})
}

func hoverText(content string, index *session.Session, line int, word string) (string, bool) {
	for _, keyword := range config.Keywords {
		if word == keyword {
			return "```voss\n" + word + "\n```\nkeyword", true
		}
	}

	// Bindings up to and including the hovered line
	vars := inference.ExtractLocalBindings(content, line+1, index)
	if ty, ok := vars[word]; ok {
		return codeBlock(word + ": " + ty), true
	}

	if sig, ok := index.FunctionSignature(word); ok {
		return codeBlock(sig), true
	}

	if fields := index.FieldNames(word); len(fields) > 0 {
		var b strings.Builder
		b.WriteString("type ")
		b.WriteString(word)
		b.WriteString(" = {")
		for i, field := range fields {
			if i > 0 {
				b.WriteString(",")
			}
			ty, _ := index.FieldType(word, field)
			b.WriteString(" " + field + ": " + ty)
		}
		b.WriteString(" }")
		return codeBlock(b.String()), true
	}

	if ty, ok := index.TypeForConstructor(word); ok {
		return codeBlock(word + ": " + ty), true
	}

	if ty, ok := index.InferExpressionType(word, vars); ok {
		return codeBlock(word + ": " + ty), true
	}

	return "", false
}

func codeBlock(text string) string {
	return "```voss\n" + text + "\n```"
}
