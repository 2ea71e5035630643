// Copyright © 2025 The lmnls authors

package analysis

import (
	"sort"

	"github.com/lmntal/lmnls/parser/token"
)

// Category classifies a semantic token.  The numeric values are the
// indexes into the semantic token legend and must not be reordered.
type Category uint32

const (
	CatRule Category = iota
	CatMembrane
	CatAtom
	CatLink
	CatHyperlink
	CatContext
	CatKeywordAtom
	CatOperatorAtom
	CatStringAtom
	CatNumberAtom

	numCategories
)

func (c Category) String() string {
	categoryStrings := [numCategories]string{
		CatRule:         "rule",
		CatMembrane:     "membrane",
		CatAtom:         "atom",
		CatLink:         "link",
		CatHyperlink:    "hyperlink",
		CatContext:      "context",
		CatKeywordAtom:  "keyword",
		CatOperatorAtom: "operator",
		CatStringAtom:   "string",
		CatNumberAtom:   "number",
	}
	if c >= numCategories {
		return "unknown"
	}
	return categoryStrings[c]
}

// LegendTokenTypes returns the LSP token type name for each Category, in
// Category index order.  Clients decode the encoded token stream against
// this legend.
func LegendTokenTypes() []string {
	return []string{
		"function",  // CatRule
		"namespace", // CatMembrane
		"class",     // CatAtom
		"variable",  // CatLink
		"struct",    // CatHyperlink
		"property",  // CatContext
		"keyword",   // CatKeywordAtom
		"operator",  // CatOperatorAtom
		"string",    // CatStringAtom
		"number",    // CatNumberAtom
	}
}

// Token is one classified source range, prior to delta encoding.
type Token struct {
	Span     token.Span
	Category Category
}

// EncodedToken is one entry of the relative delta encoding used by the
// LSP semantic token protocol.
type EncodedToken struct {
	DeltaLine uint32
	DeltaCol  uint32
	Length    uint32
	Category  Category
}

// EncodeTokens sorts toks by (line, col) and produces the relative delta
// encoding: the first entry keeps its absolute position; later entries
// store the line delta, and the column delta when the line is unchanged
// or the absolute column when it changed.
func EncodeTokens(toks []Token) []EncodedToken {
	sorted := make([]Token, len(toks))
	copy(sorted, toks)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Span.Start, sorted[j].Span.Start
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Col < b.Col
	})

	encoded := make([]EncodedToken, 0, len(sorted))
	prevLine := 0
	prevCol := 0
	for _, tok := range sorted {
		line := tok.Span.Start.Line
		col := tok.Span.Start.Col
		deltaLine := line - prevLine
		deltaCol := col
		if deltaLine == 0 {
			deltaCol = col - prevCol
		}
		encoded = append(encoded, EncodedToken{
			DeltaLine: uint32(deltaLine),
			DeltaCol:  uint32(deltaCol),
			Length:    uint32(tok.Span.Len()),
			Category:  tok.Category,
		})
		prevLine = line
		prevCol = col
	}
	return encoded
}
