package main

import (
	"log"
	"strings"

	"github.com/voss-lang/voss/internal/config"
	"github.com/voss-lang/voss/internal/inference"
	"github.com/voss-lang/voss/internal/session"
)

func (s *LanguageServer) handleCompletion(id interface{}, params CompletionParams) error {
	log.Printf("Handling completion request for %s at line %d, char %d", params.TextDocument.URI, params.Position.Line, params.Position.Character)

	content, index, exists := s.snapshot(params.TextDocument.URI)
	if !exists {
		return s.sendResponse(ResponseMessage{
			Jsonrpc: "2.0",
			ID:      id,
			Result:  CompletionList{IsIncomplete: false, Items: []CompletionItem{}},
		})
	}

	items := s.getCompletionItems(content, index, params.Position)

	return s.sendResponse(ResponseMessage{
		Jsonrpc: "2.0",
		ID:      id,
		Result: CompletionList{
			IsIncomplete: false,
			Items:        items,
		},
	})
}

func (s *LanguageServer) getCompletionItems(content string, index *session.Session, position Position) []CompletionItem {
	line := lineAt(content, position.Line)
	char := position.Character
	if char > len(line) {
		char = len(line)
	}
	prefix := line[:char]

	if strings.HasSuffix(prefix, ".") {
		return s.memberCompletionItems(content, index, position.Line, prefix[:len(prefix)-1])
	}

	return s.identifierCompletionItems(content, index, position.Line)
}

// memberCompletionItems answers completion after a dot: the receiver
// type is recovered from the raw text, then its members are listed.
func (s *LanguageServer) memberCompletionItems(content string, index *session.Session, cursorLine int, beforeDot string) []CompletionItem {
	items := []CompletionItem{}

	receiverType, ok := inference.InferDotReceiverType(content, cursorLine, beforeDot, index)
	if !ok {
		log.Printf("No receiver type for %q", beforeDot)
		return items
	}

	log.Printf("Receiver type for %q: %s", beforeDot, receiverType)

	// Record fields come before methods.
	base := inference.ParseLabel(receiverType)
	if base.Kind == inference.KindNominal {
		for _, field := range index.FieldNames(base.Name) {
			detail, _ := index.FieldType(base.Name, field)
			items = append(items, CompletionItem{
				Label:  field,
				Kind:   CompletionItemField,
				Detail: detail,
			})
		}
	}

	for _, method := range inference.MethodNamesFor(receiverType) {
		detail, _ := inference.MethodReturnType(receiverType, method)
		items = append(items, CompletionItem{
			Label:  method,
			Kind:   CompletionItemMethod,
			Detail: detail,
		})
	}

	return items
}

func (s *LanguageServer) identifierCompletionItems(content string, index *session.Session, cursorLine int) []CompletionItem {
	items := []CompletionItem{}
	seen := make(map[string]bool)

	addItem := func(name string, kind CompletionItemKind, detail string) {
		if name == "" || seen[name] {
			return
		}
		items = append(items, CompletionItem{
			Label:  name,
			Kind:   kind,
			Detail: detail,
		})
		seen[name] = true
	}

	for _, keyword := range config.Keywords {
		addItem(keyword, CompletionItemKeyword, "")
	}

	// Local bindings visible above the cursor
	for name, ty := range inference.ExtractLocalBindings(content, cursorLine, index) {
		addItem(name, CompletionItemVariable, ty)
	}

	for _, name := range index.FunctionNames() {
		sig, _ := index.FunctionSignature(name)
		addItem(name, CompletionItemFunction, sig)
	}

	for _, name := range index.TypeNames() {
		addItem(name, CompletionItemClass, "")
	}

	for _, name := range index.ConstructorNames() {
		ty, _ := index.TypeForConstructor(name)
		addItem(name, CompletionItemConstructor, ty)
	}

	return items
}
