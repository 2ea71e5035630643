// Copyright © 2025 The lmnls authors

package analysis

import (
	"fmt"

	"github.com/lmntal/lmnls/parser/token"
)

// Symbol is the normalized projection of a single-line source span used
// by the reference index: line, column, and length.  Symbols are value
// types usable as map keys; ordering and equality are by the
// (line, col, length) triple.
type Symbol struct {
	Line   int
	Col    int
	Length int
}

// SymbolAt normalizes a span to a Symbol.
func SymbolAt(span token.Span) Symbol {
	return Symbol{
		Line:   span.Start.Line,
		Col:    span.Start.Col,
		Length: span.Len(),
	}
}

// Less reports whether s orders before o by (line, col, length).
func (s Symbol) Less(o Symbol) bool {
	if s.Line != o.Line {
		return s.Line < o.Line
	}
	if s.Col != o.Col {
		return s.Col < o.Col
	}
	return s.Length < o.Length
}

// Contains reports whether the 0-based position (line, col) falls on the
// symbol.  Both endpoints are inclusive so a cursor sitting just past the
// last character still hits the symbol.
func (s Symbol) Contains(line, col int) bool {
	return s.Line == line && s.Col <= col && col <= s.Col+s.Length
}

// Span reconstructs the source span covered by the symbol.
func (s Symbol) Span() token.Span {
	return token.Span{
		Start: token.Pos{Line: s.Line, Col: s.Col},
		End:   token.Pos{Line: s.Line, Col: s.Col + s.Length},
	}
}

func (s Symbol) String() string {
	return fmt.Sprintf("line: %d, col: %d, length: %d", s.Line, s.Col, s.Length)
}
