// Copyright © 2025 The lmnls authors

// Package lsp implements a Language Server Protocol server for LMNtal.
// It provides linearity diagnostics, semantic tokens, document symbols,
// document highlight, references, and hover support.
package lsp

import (
	"os"
	"sync"
	"time"

	"github.com/lmntal/lmnls/analysis"
	"github.com/tliron/glsp"
	glspserver "github.com/tliron/glsp/server"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

const serverName = "lmnls"

// Server is the LMNtal language server.
type Server struct {
	handler protocol.Handler
	glspSrv *glspserver.Server
	docs    *DocumentStore

	// Debouncer for didChange notifications.
	debounceMu sync.Mutex
	debounce   map[string]*time.Timer

	// Context for sending notifications (captured from latest request).
	notifyMu sync.Mutex
	notify   glsp.NotifyFunc

	// exitFn is called on the LSP exit notification. Defaults to os.Exit.
	// Overridable for testing.
	exitFn func(int)
}

// New creates a new LMNtal LSP server.
func New() *Server {
	s := &Server{
		docs:     NewDocumentStore(),
		debounce: make(map[string]*time.Timer),
		exitFn:   os.Exit,
	}

	s.handler = protocol.Handler{
		Initialize: s.initialize,
		Shutdown:   s.shutdown,
		Exit:       s.exit,
		SetTrace:   s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidSave:   s.textDocumentDidSave,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentHover:              s.textDocumentHover,
		TextDocumentReferences:         s.textDocumentReferences,
		TextDocumentDocumentHighlight:  s.textDocumentDocumentHighlight,
		TextDocumentDocumentSymbol:     s.textDocumentDocumentSymbol,
		TextDocumentSemanticTokensFull: s.textDocumentSemanticTokensFull,
	}

	s.glspSrv = glspserver.NewServer(&s.handler, serverName, false)
	return s
}

// RunStdio starts the server using stdio transport.
func (s *Server) RunStdio() error {
	return s.glspSrv.RunStdio()
}

// RunTCP starts the server listening on the given address.
func (s *Server) RunTCP(addr string) error {
	return s.glspSrv.RunTCP(addr)
}

// initialize handles the LSP initialize request.
func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	s.captureNotify(ctx)

	capabilities := s.handler.CreateServerCapabilities()

	// Override text document sync to full.
	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
		Save:      &protocol.SaveOptions{IncludeText: boolPtr(false)},
	}

	// The semantic token legend must match the category indices used by
	// the encoder.
	capabilities.SemanticTokensProvider = &protocol.SemanticTokensOptions{
		Legend: protocol.SemanticTokensLegend{
			TokenTypes:     analysis.LegendTokenTypes(),
			TokenModifiers: []string{},
		},
		Full: true,
	}

	version := "0.1.0"
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}, nil
}

// shutdown handles the LSP shutdown request.
func (s *Server) shutdown(ctx *glsp.Context) error {
	// Cancel any pending debounce timers.
	s.debounceMu.Lock()
	for _, t := range s.debounce {
		t.Stop()
	}
	s.debounce = make(map[string]*time.Timer)
	s.debounceMu.Unlock()

	return nil
}

// exit handles the LSP exit notification by terminating the process.
func (s *Server) exit(_ *glsp.Context) error {
	s.exitFn(0)
	return nil
}

// setTrace handles the $/setTrace notification (required by some clients).
func (s *Server) setTrace(_ *glsp.Context, _ *protocol.SetTraceParams) error {
	return nil
}

// captureNotify stores the notification function from the context for
// async use (e.g., publishing diagnostics after a debounce).
func (s *Server) captureNotify(ctx *glsp.Context) {
	s.notifyMu.Lock()
	s.notify = ctx.Notify
	s.notifyMu.Unlock()
}

// sendNotification sends a notification to the client.
func (s *Server) sendNotification(method string, params any) {
	s.notifyMu.Lock()
	fn := s.notify
	s.notifyMu.Unlock()
	if fn != nil {
		fn(method, params)
	}
}

func boolPtr(b bool) *bool {
	return &b
}
