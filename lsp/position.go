// Copyright © 2025 The lmnls authors

package lsp

import (
	"strings"

	"github.com/lmntal/lmnls/analysis"
	"github.com/lmntal/lmnls/parser/token"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Analysis positions are 0-based like LSP positions, so conversion is a
// matter of integer width only.

func toPosition(pos token.Pos) protocol.Position {
	return protocol.Position{
		Line:      safeUint(pos.Line),
		Character: safeUint(pos.Col),
	}
}

func toRange(span token.Span) protocol.Range {
	return protocol.Range{
		Start: toPosition(span.Start),
		End:   toPosition(span.End),
	}
}

func symbolRange(sym analysis.Symbol) protocol.Range {
	return toRange(sym.Span())
}

// safeUint converts a non-negative int to protocol.UInteger, clamping
// negative values to zero.
func safeUint(n int) protocol.UInteger {
	if n < 0 {
		return 0
	}
	return protocol.UInteger(n) // #nosec G115 -- line/col are always small positive ints
}

// uriToPath converts a file:// URI to a filesystem path.
func uriToPath(uri string) string {
	if path, ok := strings.CutPrefix(uri, "file://"); ok {
		return path
	}
	return uri
}

func strPtr(s string) *string {
	return &s
}
