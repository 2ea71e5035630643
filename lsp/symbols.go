// Copyright © 2025 The lmnls authors

package lsp

import (
	"github.com/lmntal/lmnls/analysis"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentDocumentSymbol handles the textDocument/documentSymbol request.
func (s *Server) textDocumentDocumentSymbol(_ *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	snap := doc.snapshot()
	if snap == nil {
		return nil, nil
	}

	// Return as []DocumentSymbol (the preferred hierarchical form).
	return convertOutline(snap.analysis.Outline), nil
}

// convertOutline maps the analysis outline tree onto LSP document
// symbols, preserving nesting.
func convertOutline(symbols []analysis.OutlineSymbol) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, sym := range symbols {
		out = append(out, protocol.DocumentSymbol{
			Name:           sym.Name,
			Kind:           mapOutlineKind(sym.Kind),
			Range:          toRange(sym.Range),
			SelectionRange: toRange(sym.Selection),
			Children:       convertOutline(sym.Children),
		})
	}
	return out
}

func mapOutlineKind(kind analysis.OutlineKind) protocol.SymbolKind {
	switch kind {
	case analysis.OutlineMembrane:
		return protocol.SymbolKindNamespace
	case analysis.OutlineRule:
		return protocol.SymbolKindFunction
	default:
		return protocol.SymbolKindObject
	}
}
