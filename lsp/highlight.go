// Copyright © 2025 The lmnls authors

package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentDocumentHighlight handles the textDocument/documentHighlight
// request. A cursor on a link highlights the link's other occurrence as
// well; any other symbol highlights only itself.
func (s *Server) textDocumentDocumentHighlight(_ *glsp.Context, params *protocol.DocumentHighlightParams) ([]protocol.DocumentHighlight, error) {
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

	refs := snap.index.QueryReferencesWithSelf(line, col)
	if refs == nil {
		return nil, nil
	}

	kind := protocol.DocumentHighlightKindText
	highlights := make([]protocol.DocumentHighlight, 0, len(refs))
	for _, sym := range refs {
		highlights = append(highlights, protocol.DocumentHighlight{
			Range: symbolRange(sym),
			Kind:  &kind,
		})
	}
	return highlights, nil
}
