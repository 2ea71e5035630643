// Copyright © 2025 The lmnls authors

package lsp

import (
	"fmt"
	"strings"

	"github.com/lmntal/lmnls/analysis"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentHover handles the textDocument/hover request.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	snap := doc.snapshot()
	if snap == nil {
		return nil, nil
	}
	doc.mu.Lock()
	content := doc.Content
	doc.mu.Unlock()

	line := int(params.Position.Line)
	col := int(params.Position.Character)

	tok, ok := tokenAtPosition(snap.analysis.Tokens, line, col)
	if !ok {
		return nil, nil
	}

	text := buildHoverContent(tok, content, snap, line, col)
	if text == "" {
		return nil, nil
	}

	hoverRange := toRange(tok.Span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: text,
		},
		Range: &hoverRange,
	}, nil
}

// tokenAtPosition finds the classified token containing the position.
func tokenAtPosition(tokens []analysis.Token, line, col int) (analysis.Token, bool) {
	for _, tok := range tokens {
		sym := analysis.SymbolAt(tok.Span)
		if sym.Contains(line, col) {
			return tok, true
		}
	}
	return analysis.Token{}, false
}

// buildHoverContent builds Markdown hover text for a token.
func buildHoverContent(tok analysis.Token, content string, snap *snapshot, line, col int) string {
	var sb strings.Builder

	// Header: **kind** `text`
	fmt.Fprintf(&sb, "**%s** `%s`", hoverKindLabel(tok.Category), spanText(content, tok))

	// Links report how many occurrences the cursor's group has.
	if tok.Category == analysis.CatLink || tok.Category == analysis.CatHyperlink {
		if refs := snap.index.QueryReferencesWithSelf(line, col); len(refs) > 1 {
			fmt.Fprintf(&sb, "\n\n*%d occurrences*", len(refs))
		}
	}
	return sb.String()
}

func hoverKindLabel(cat analysis.Category) string {
	switch cat {
	case analysis.CatRule:
		return "rule"
	case analysis.CatMembrane:
		return "membrane"
	case analysis.CatLink:
		return "link"
	case analysis.CatHyperlink:
		return "hyperlink"
	case analysis.CatContext:
		return "process context"
	case analysis.CatKeywordAtom:
		return "type constraint"
	case analysis.CatOperatorAtom:
		return "operator"
	case analysis.CatStringAtom:
		return "string"
	case analysis.CatNumberAtom:
		return "number"
	default:
		return "atom"
	}
}

// spanText extracts the source text under a single-line token span.
func spanText(content string, tok analysis.Token) string {
	lines := strings.Split(content, "\n")
	span := tok.Span
	if span.Start.Line < 0 || span.Start.Line >= len(lines) {
		return ""
	}
	ln := lines[span.Start.Line]
	start := span.Start.Col
	end := start + span.Len()
	if start < 0 || end > len(ln) || start > end {
		return ""
	}
	return ln[start:end]
}
