package main

import (
	"log"
)

func (s *LanguageServer) handleInitialize(id interface{}, params InitializeParams) error {
	log.Printf("Handling initialize request with ID: %v", id)

	if params.RootURI != nil && *params.RootURI != "" {
		log.Printf("Workspace root: %s", s.uriToPath(*params.RootURI))
	}

	result := InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync:   1, // Full sync
			HoverProvider:      true,
			DefinitionProvider: true,
			CompletionProvider: &CompletionOptions{
				ResolveProvider:   false,
				TriggerCharacters: []string{"."},
			},
		},
	}

	response := ResponseMessage{
		Jsonrpc: "2.0",
		ID:      id,
		Result:  result,
	}

	log.Printf("Sending initialize response")
	return s.sendResponse(response)
}

func (s *LanguageServer) handleShutdown(id interface{}) error {
	response := ResponseMessage{
		Jsonrpc: "2.0",
		ID:      id,
		Result:  nil,
	}

	return s.sendResponse(response)
}
