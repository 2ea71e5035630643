// Copyright © 2025 The lmnls authors

package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentReferences handles the textDocument/references request.
// For a link occurrence the reference set is the other occurrences of
// the same link; includeDeclaration adds the queried occurrence itself.
func (s *Server) textDocumentReferences(_ *glsp.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	snap := doc.snapshot()
	if snap == nil {
		return nil, nil
	}

	line := int(params.Position.Line)
	col := int(params.Position.Character)

	syms := snap.index.QueryReferences(line, col)
	if params.Context.IncludeDeclaration {
		syms = snap.index.QueryReferencesWithSelf(line, col)
	}
	if syms == nil {
		return nil, nil
	}

	locs := make([]protocol.Location, 0, len(syms))
	for _, sym := range syms {
		locs = append(locs, protocol.Location{
			URI:   params.TextDocument.URI,
			Range: symbolRange(sym),
		})
	}
	return locs, nil
}
