// Copyright © 2025 The lmnls authors

package analysis

import (
	"sort"

	"github.com/lmntal/lmnls/parser/token"
)

// ReferenceIndex answers position queries over the analyzed document: the
// symbol under a cursor and the set of symbols that reference it.  The
// index is immutable once built; a snapshot may be queried from any
// number of goroutines.
type ReferenceIndex struct {
	// symbols is sorted ascending by the Symbol order and deduplicated,
	// so a symbol's slice index is its stable dense id.
	symbols []Symbol

	// references maps a symbol index to the indexes of its partners.
	references map[int][]int
}

// NewReferenceIndex builds an index from the finalized link-pair groups
// and the plain occurrence markers recorded during analysis.
func NewReferenceIndex(groups [][]token.Span, markers []token.Span) *ReferenceIndex {
	var symbols []Symbol
	for _, group := range groups {
		for _, span := range group {
			symbols = append(symbols, SymbolAt(span))
		}
	}
	for _, span := range markers {
		symbols = append(symbols, SymbolAt(span))
	}

	sort.Slice(symbols, func(i, j int) bool { return symbols[i].Less(symbols[j]) })
	symbols = dedupSymbols(symbols)

	index := make(map[Symbol]int, len(symbols))
	for i, sym := range symbols {
		index[sym] = i
	}

	references := make(map[int][]int)
	for _, group := range groups {
		for i, span := range group {
			self := index[SymbolAt(span)]
			for j, other := range group {
				if i != j {
					references[self] = append(references[self], index[SymbolAt(other)])
				}
			}
		}
	}

	return &ReferenceIndex{symbols: symbols, references: references}
}

func dedupSymbols(symbols []Symbol) []Symbol {
	if len(symbols) == 0 {
		return symbols
	}
	out := symbols[:1]
	for _, sym := range symbols[1:] {
		if sym != out[len(out)-1] {
			out = append(out, sym)
		}
	}
	return out
}

// Query returns the symbol covering the 0-based position, if any.
func (ix *ReferenceIndex) Query(line, col int) (Symbol, bool) {
	i := ix.find(line, col)
	if i < 0 {
		return Symbol{}, false
	}
	return ix.symbols[i], true
}

// QueryReferences returns the partners of the symbol at the position,
// excluding the symbol itself.  It returns nil when no symbol covers the
// position or the symbol has no partners.
func (ix *ReferenceIndex) QueryReferences(line, col int) []Symbol {
	i := ix.find(line, col)
	if i < 0 {
		return nil
	}
	partners := ix.references[i]
	if len(partners) == 0 {
		return nil
	}
	result := make([]Symbol, 0, len(partners))
	for _, j := range partners {
		result = append(result, ix.symbols[j])
	}
	return result
}

// QueryReferencesWithSelf returns the symbol at the position together
// with its partners.  A symbol with no partners yields a singleton; nil
// is returned only when no symbol covers the position.
func (ix *ReferenceIndex) QueryReferencesWithSelf(line, col int) []Symbol {
	i := ix.find(line, col)
	if i < 0 {
		return nil
	}
	partners := ix.references[i]
	result := make([]Symbol, 0, len(partners)+1)
	for _, j := range partners {
		result = append(result, ix.symbols[j])
	}
	return append(result, ix.symbols[i])
}

// Symbols returns the sorted symbol table.  The returned slice is shared;
// callers must not modify it.
func (ix *ReferenceIndex) Symbols() []Symbol {
	return ix.symbols
}

// find binary-searches the sorted symbol table for the entry containing
// the position.  Table ranges never overlap, so at most one entry can
// contain any position.
func (ix *ReferenceIndex) find(line, col int) int {
	low, high := 0, len(ix.symbols)-1
	for low <= high {
		mid := (low + high) / 2
		sym := ix.symbols[mid]
		switch {
		case sym.Contains(line, col):
			return mid
		case sym.Line < line || (sym.Line == line && sym.Col < col):
			low = mid + 1
		default:
			high = mid - 1
		}
	}
	return -1
}
