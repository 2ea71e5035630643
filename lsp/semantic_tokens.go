// Copyright © 2025 The lmnls authors

package lsp

import (
	"github.com/lmntal/lmnls/analysis"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentSemanticTokensFull handles the textDocument/semanticTokens/full request.
func (s *Server) textDocumentSemanticTokensFull(_ *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	snap := doc.snapshot()
	if snap == nil {
		return nil, nil
	}

	encoded := analysis.EncodeTokens(snap.analysis.Tokens)

	// Each token is 5 integers: deltaLine, deltaStartChar, length,
	// tokenType, tokenModifiers.
	data := make([]protocol.UInteger, 0, len(encoded)*5)
	for _, tok := range encoded {
		data = append(data,
			protocol.UInteger(tok.DeltaLine),
			protocol.UInteger(tok.DeltaCol),
			protocol.UInteger(tok.Length),
			protocol.UInteger(tok.Category),
			0,
		)
	}
	return &protocol.SemanticTokens{Data: data}, nil
}
