// Copyright © 2025 The lmnls authors

package lsp

import (
	"sync"

	"github.com/lmntal/lmnls/analysis"
	"github.com/lmntal/lmnls/parser"
)

// snapshot holds the analysis artifacts for one document version. A
// snapshot is built whole and replaced atomically, never mutated, so
// request handlers can use it without further locking.
type snapshot struct {
	parse    *parser.Result
	analysis *analysis.Result
	index    *analysis.ReferenceIndex
}

// Document represents an open text document tracked by the LSP server.
type Document struct {
	mu      sync.Mutex
	URI     string
	Version int32
	Content string
	snap    *snapshot
}

// refresh parses and analyzes the document content and swaps in a new
// snapshot. Parsing is fault tolerant, so a snapshot is produced even
// for documents with syntax errors.
func (d *Document) refresh() {
	res := parser.Parse(uriToPath(d.URI), d.Content)
	a := analysis.Analyze(res.Program)
	d.snap = &snapshot{
		parse:    res,
		analysis: a,
		index:    a.Index(),
	}
}

// snapshot returns the current snapshot for request handling.
func (d *Document) snapshot() *snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snap
}

// DocumentStore manages open documents with thread-safe access.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewDocumentStore creates an empty document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*Document)}
}

// Open adds a document to the store and analyzes it.
func (s *DocumentStore) Open(uri string, version int32, content string) *Document {
	doc := &Document{
		URI:     uri,
		Version: version,
		Content: content,
	}
	doc.refresh()
	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()
	return doc
}

// Change updates a document's content (full sync) and re-analyzes it.
func (s *DocumentStore) Change(uri string, version int32, content string) *Document {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		doc = &Document{URI: uri}
		s.docs[uri] = doc
	}
	s.mu.Unlock()

	doc.mu.Lock()
	doc.Version = version
	doc.Content = content
	doc.refresh()
	doc.mu.Unlock()
	return doc
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
}

// Get retrieves a document by URI. Returns nil if not found.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[uri]
}
