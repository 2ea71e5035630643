// Copyright © 2025 The lmnls authors

package lsp

import (
	"time"

	"github.com/lmntal/lmnls/analysis"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const debounceDelay = 300 * time.Millisecond

const diagnosticSource = "lmnls"

// textDocumentDidOpen handles the textDocument/didOpen notification.
func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.captureNotify(ctx)
	doc := s.docs.Open(
		params.TextDocument.URI,
		int32(params.TextDocument.Version),
		params.TextDocument.Text,
	)
	s.publishDiagnostics(doc)
	return nil
}

// textDocumentDidChange handles the textDocument/didChange notification.
func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.captureNotify(ctx)
	// With full sync, the last content change is the complete document.
	var content string
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = c.Text
		case protocol.TextDocumentContentChangeEvent:
			content = c.Text
		}
	}

	doc := s.docs.Change(
		params.TextDocument.URI,
		int32(params.TextDocument.Version),
		content,
	)

	// Debounce: delay publishing to avoid thrashing during rapid edits.
	s.debounceMu.Lock()
	if t, ok := s.debounce[doc.URI]; ok {
		t.Stop()
	}
	s.debounce[doc.URI] = time.AfterFunc(debounceDelay, func() {
		defer func() { _ = recover() }() // don't crash the server on analysis panic
		if d := s.docs.Get(doc.URI); d != nil {
			s.publishDiagnostics(d)
		}
	})
	s.debounceMu.Unlock()
	return nil
}

// textDocumentDidSave handles the textDocument/didSave notification.
func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.captureNotify(ctx)
	// Cancel any pending debounce and publish immediately.
	s.debounceMu.Lock()
	if t, ok := s.debounce[params.TextDocument.URI]; ok {
		t.Stop()
		delete(s.debounce, params.TextDocument.URI)
	}
	s.debounceMu.Unlock()

	if doc := s.docs.Get(params.TextDocument.URI); doc != nil {
		s.publishDiagnostics(doc)
	}
	return nil
}

// textDocumentDidClose handles the textDocument/didClose notification.
func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	// Cancel pending debounce.
	s.debounceMu.Lock()
	if t, ok := s.debounce[params.TextDocument.URI]; ok {
		t.Stop()
		delete(s.debounce, params.TextDocument.URI)
	}
	s.debounceMu.Unlock()

	// Clear diagnostics for the closed file.
	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})

	s.docs.Close(params.TextDocument.URI)
	return nil
}

// publishDiagnostics sends the document's parse and analysis diagnostics
// to the client.
func (s *Server) publishDiagnostics(doc *Document) {
	snap := doc.snapshot()
	if snap == nil {
		return
	}

	diags := collectDiagnostics(doc.URI, snap)
	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Diagnostics: diags,
	})
}

// collectDiagnostics merges parse errors, parse warnings, and linearity
// diagnostics into one LSP diagnostic list.
func collectDiagnostics(uri string, snap *snapshot) []protocol.Diagnostic {
	// Non-nil so a clean document clears stale diagnostics on the client.
	diags := []protocol.Diagnostic{}

	for _, e := range snap.parse.Errors {
		diags = append(diags, protocol.Diagnostic{
			Range:    toRange(e.Span),
			Severity: severity(protocol.DiagnosticSeverityError),
			Source:   strPtr(diagnosticSource),
			Message:  e.Msg,
		})
	}
	for _, w := range snap.parse.Warnings {
		diags = append(diags, protocol.Diagnostic{
			Range:    toRange(w.Span),
			Severity: severity(protocol.DiagnosticSeverityWarning),
			Source:   strPtr(diagnosticSource),
			Message:  w.Msg,
		})
	}
	for _, d := range snap.analysis.Diagnostics {
		diags = append(diags, convertDiagnostic(uri, d))
	}
	return diags
}

// convertDiagnostic converts an analysis.Diagnostic to an LSP Diagnostic.
func convertDiagnostic(uri string, d analysis.Diagnostic) protocol.Diagnostic {
	var related []protocol.DiagnosticRelatedInformation
	for _, r := range d.Related {
		related = append(related, protocol.DiagnosticRelatedInformation{
			Location: protocol.Location{
				URI:   uri,
				Range: toRange(r.Span),
			},
			Message: r.Message,
		})
	}
	return protocol.Diagnostic{
		Range:              toRange(d.Span),
		Severity:           severity(mapSeverity(d.Severity)),
		Source:             strPtr(diagnosticSource),
		Message:            d.Message,
		RelatedInformation: related,
	}
}

func mapSeverity(sev analysis.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case analysis.SeverityError:
		return protocol.DiagnosticSeverityError
	case analysis.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityError
	}
}

func severity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}
