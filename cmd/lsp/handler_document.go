package main

import (
	"fmt"
	"log"
	"sync"

	"github.com/voss-lang/voss/internal/session"
)

// DocumentState stores the state of a single open document
type DocumentState struct {
	Content string           // Current file content
	Index   *session.Session // Declaration index rebuilt on every change
	Mu      sync.RWMutex     // Mutex to protect access to state
}

func (s *LanguageServer) handleDidOpen(params DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	content := params.TextDocument.Text

	docState := &DocumentState{
		Content: content,
		Index:   s.indexDocument(uri, content),
	}

	s.mu.Lock()
	s.documents[uri] = docState
	s.mu.Unlock()

	log.Printf("Opened file: %s", uri)

	return s.publishDiagnostics(uri, content)
}

func (s *LanguageServer) handleDidChange(params DidChangeTextDocumentParams) error {
	// Full content sync (TextDocumentSyncKind.Full)
	if len(params.ContentChanges) == 0 {
		return nil
	}

	uri := params.TextDocument.URI
	newContent := params.ContentChanges[0].Text

	s.mu.RLock()
	docState, exists := s.documents[uri]
	s.mu.RUnlock()

	if !exists {
		return fmt.Errorf("document %s not found", uri)
	}

	index := s.indexDocument(uri, newContent)

	docState.Mu.Lock()
	docState.Content = newContent
	docState.Index = index
	docState.Mu.Unlock()

	log.Printf("Changed file: %s", uri)

	return s.publishDiagnostics(uri, newContent)
}

func (s *LanguageServer) handleDidClose(params DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()
	log.Printf("Closed file: %s", params.TextDocument.URI)
	return nil
}

func (s *LanguageServer) indexDocument(uri, content string) *session.Session {
	index := session.New()
	index.Load(s.uriToPath(uri), content)
	return index
}

// snapshot returns the current content and index of an open document.
func (s *LanguageServer) snapshot(uri string) (string, *session.Session, bool) {
	s.mu.RLock()
	docState, exists := s.documents[uri]
	s.mu.RUnlock()

	if !exists {
		return "", nil, false
	}

	docState.Mu.RLock()
	defer docState.Mu.RUnlock()
	return docState.Content, docState.Index, true
}
