// Copyright © 2025 The lmnls authors

// Package analysis implements the semantic analysis pass for LMNtal
// programs.
//
// One analysis run turns a parsed syntax tree into four artifacts: a
// classified semantic token stream, diagnostics enforcing the language's
// linearity invariant (every plain link name must occur exactly twice
// within its terminal scope), a nested membrane/rule outline, and a
// position-indexed reference graph answering highlight-occurrences and
// symbol-at-cursor queries.
//
// The walk is purely computational and single threaded.  Each recursive
// step returns an explicit scope accumulator that the caller merges, and
// the linearity resolver runs at every scope boundary: inner resolution
// when leaving a nested membrane (and after a rule's head and propagation
// are merged), terminal resolution at the program's outermost boundary
// and at each rule's own outermost boundary.  Hyperlink names pass
// through inner boundaries untouched and are only judged at terminal
// boundaries.
package analysis

import (
	"github.com/lmntal/lmnls/parser/ast"
	"github.com/lmntal/lmnls/parser/token"
)

// Result holds the output of one analysis run.  Results are constructed
// fresh per document version and never mutated after Analyze returns, so
// a published Result may be queried concurrently.
type Result struct {
	// Tokens is the flat, unsorted semantic token list.  EncodeTokens
	// turns it into the delta-encoded highlighting feed.
	Tokens []Token

	// Diagnostics are the linearity violations found during the walk.
	Diagnostics []Diagnostic

	// Outline is the nested membrane/rule symbol tree.
	Outline []OutlineSymbol

	// RefGroups are the finalized link pairs: each group holds the spans
	// that mutually reference one resolved link name.
	RefGroups [][]token.Span

	// Markers are the spans of every occurrence recorded during the walk
	// (atoms, links, contexts, membrane names); together with RefGroups
	// they seed the reference index's symbol table.
	Markers []token.Span
}

// Analyze runs semantic analysis over a whole program.  The program node
// is the parser's synthetic outermost membrane; its process lists form
// the top-level scope where a bare link can never find a partner.
func Analyze(prog *ast.Membrane) *Result {
	a := &analyzer{}
	res := newScopeResult()

	for _, pl := range prog.ProcessLists {
		res.merge(a.analyzeProcessList(pl, true))
	}
	for _, rule := range prog.Rules {
		res.outline = append(res.outline, a.analyzeRule(rule))
	}

	a.resolveTerminal(res)

	return &Result{
		Tokens:      a.tokens,
		Diagnostics: a.diagnostics,
		Outline:     res.outline,
		RefGroups:   a.refs,
		Markers:     a.markers,
	}
}

// Index builds the position-indexed reference graph for the result.
func (r *Result) Index() *ReferenceIndex {
	return NewReferenceIndex(r.RefGroups, r.Markers)
}
