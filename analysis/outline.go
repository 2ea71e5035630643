// Copyright © 2025 The lmnls authors

package analysis

import "github.com/lmntal/lmnls/parser/token"

// OutlineKind tags an outline symbol as a membrane or a rule.
type OutlineKind int

const (
	OutlineMembrane OutlineKind = iota
	OutlineRule
)

func (k OutlineKind) String() string {
	switch k {
	case OutlineMembrane:
		return "membrane"
	case OutlineRule:
		return "rule"
	default:
		return "unknown"
	}
}

// Labels for unnamed constructs in the document outline.
const (
	AnonymousMembraneLabel = "Anonymous membrane"
	AnonymousRuleLabel     = "Anonymous rule"
)

// OutlineSymbol is one entry of the nested document outline.  Membranes
// are containers whose children are the symbols nested directly inside
// them; rules are leaves.
type OutlineSymbol struct {
	Name      string
	Kind      OutlineKind
	Range     token.Span // full extent of the construct
	Selection token.Span // the name's own span, or Range when unnamed
	Children  []OutlineSymbol
}
