// Copyright © 2025 The lmnls authors

package analysis

import (
	"github.com/lmntal/lmnls/parser/ast"
	"github.com/lmntal/lmnls/parser/token"
)

// analyzer carries the directly-emitted channels of the walk: semantic
// tokens, diagnostics, finalized reference groups, and occurrence marker
// spans.  Scope-local state lives in scopeResult values instead.
type analyzer struct {
	tokens      []Token
	diagnostics []Diagnostic
	refs        [][]token.Span
	markers     []token.Span
}

// addSymbol emits a semantic token and records the span as a queryable
// occurrence marker.
func (a *analyzer) addSymbol(span token.Span, cat Category) {
	a.tokens = append(a.tokens, Token{Span: span, Category: cat})
	a.markers = append(a.markers, span)
}

func (a *analyzer) analyzeProcessList(pl *ast.ProcessList, topLevel bool) *scopeResult {
	res := newScopeResult()
	if pl == nil {
		return res
	}
	for _, proc := range pl.Processes {
		res.merge(a.analyzeProcess(proc, topLevel))
	}
	return res
}

func (a *analyzer) analyzeProcess(proc ast.Node, topLevel bool) *scopeResult {
	res := newScopeResult()
	switch n := proc.(type) {
	case *ast.Membrane:
		res.merge(a.analyzeMembrane(n))
	case *ast.Atom:
		for _, arg := range n.Args {
			res.merge(a.analyzeProcess(arg, false))
		}
		a.addSymbol(n.NameSpan, atomCategory(n.Kind))
	case *ast.Link:
		switch {
		case topLevel:
			// A link directly in the outermost process list can never
			// find a partner; report it and track nothing.
			a.diagnostics = append(a.diagnostics, Diagnostic{
				Severity: SeverityError,
				Message:  msgLinkAtTopLevel,
				Span:     n.Loc,
			})
		case n.Hyperlink:
			a.addSymbol(n.Loc, CatHyperlink)
			res.hyperlinks.add(n.Name, n.Loc)
		default:
			a.addSymbol(n.Loc, CatLink)
			res.links.add(n.Name, n.Loc)
		}
	case *ast.Context:
		a.addSymbol(n.Loc, CatContext)
	}
	return res
}

func atomCategory(kind ast.AtomKind) Category {
	switch kind {
	case ast.AtomKeyword:
		return CatKeywordAtom
	case ast.AtomOperator:
		return CatOperatorAtom
	case ast.AtomInt, ast.AtomFloat:
		return CatNumberAtom
	case ast.AtomString:
		return CatStringAtom
	default:
		return CatAtom
	}
}

func (a *analyzer) analyzeMembrane(m *ast.Membrane) *scopeResult {
	res := newScopeResult()

	for _, pl := range m.ProcessLists {
		res.merge(a.analyzeProcessList(pl, false))
	}

	// Inner boundary: settle pairs formed within this membrane before
	// folding in the rules, which have their own terminal scopes.
	a.resolveInner(res)

	for _, rule := range m.Rules {
		res.outline = append(res.outline, a.analyzeRule(rule))
	}

	if !m.NameSpan.Empty() {
		a.addSymbol(m.NameSpan, CatMembrane)
	}

	name := m.Name
	selection := m.NameSpan
	if name == "" {
		name = AnonymousMembraneLabel
		selection = m.Loc
	}
	children := res.outline
	res.outline = []OutlineSymbol{{
		Name:      name,
		Kind:      OutlineMembrane,
		Range:     m.Loc,
		Selection: selection,
		Children:  children,
	}}
	return res
}

// analyzeRule walks a rule.  Head and propagation merge first and pass
// through inner resolution, so a link may pair across them or stay open
// for the body.  The guard contributes highlighting only.  The body then
// merges in and the whole rule resolves terminally: a rule's terminal
// scope is head, propagation, and body combined, never the enclosing
// membrane.
func (a *analyzer) analyzeRule(rule *ast.Rule) OutlineSymbol {
	res := newScopeResult()
	res.merge(a.analyzeProcessList(rule.Head, false))
	if rule.Propagation != nil {
		res.merge(a.analyzeProcessList(rule.Propagation, false))
	}

	a.resolveInner(res)

	if rule.Guard != nil {
		a.analyzeGuard(rule.Guard)
	}

	if rule.Body != nil {
		res.merge(a.analyzeProcessList(rule.Body, false))
	}

	a.resolveTerminal(res)

	name := rule.Name
	fullRange := rule.Loc
	selection := rule.Loc
	if name == "" {
		name = AnonymousRuleLabel
	} else {
		a.tokens = append(a.tokens, Token{Span: rule.NameSpan, Category: CatRule})
		selection = rule.NameSpan
		fullRange = token.Span{Start: rule.NameSpan.Start, End: rule.Loc.End}
	}
	return OutlineSymbol{
		Name:      name,
		Kind:      OutlineRule,
		Range:     fullRange,
		Selection: selection,
	}
}

// analyzeGuard emits semantic tokens for guard content without recording
// link occurrences or diagnostics.  Whether guard expressions should
// participate in the rule's linearity scope is an open language question;
// until that is settled the guard is highlighting-only.
func (a *analyzer) analyzeGuard(pl *ast.ProcessList) {
	for _, proc := range pl.Processes {
		a.guardTokens(proc)
	}
}

func (a *analyzer) guardTokens(proc ast.Node) {
	switch n := proc.(type) {
	case *ast.Atom:
		for _, arg := range n.Args {
			a.guardTokens(arg)
		}
		a.addSymbol(n.NameSpan, atomCategory(n.Kind))
	case *ast.Link:
		if n.Hyperlink {
			a.addSymbol(n.Loc, CatHyperlink)
		} else {
			a.addSymbol(n.Loc, CatLink)
		}
	case *ast.Context:
		a.addSymbol(n.Loc, CatContext)
	case *ast.Membrane:
		// Membranes are not meaningful in guards; still highlight their
		// contents so broken programs render sensibly.
		for _, pl := range n.ProcessLists {
			a.analyzeGuard(pl)
		}
	}
}

// resolveInner applies inner-boundary resolution to the plain-link map:
// pairs become reference groups, over-used names are reported and
// dropped, and names with fewer than two occurrences stay in the map to
// propagate outward.  Hyperlinks are never touched here.
func (a *analyzer) resolveInner(res *scopeResult) {
	res.links.forEach(func(name string, occurs []token.Span) {
		switch {
		case len(occurs) == 2:
			a.refs = append(a.refs, occurs)
			res.links.delete(name)
		case len(occurs) > 2:
			a.reportMultiOccur(occurs)
			res.links.delete(name)
		}
	})
}

// resolveTerminal applies terminal-boundary resolution to both the plain
// link and hyperlink maps: one occurrence is a free link, two form a
// reference group, three or more are reported per extra occurrence.
func (a *analyzer) resolveTerminal(res *scopeResult) {
	a.resolveTerminalMap(res.links)
	a.resolveTerminalMap(res.hyperlinks)
}

func (a *analyzer) resolveTerminalMap(m *occurrenceMap) {
	m.forEach(func(name string, occurs []token.Span) {
		switch len(occurs) {
		case 0:
		case 1:
			a.diagnostics = append(a.diagnostics, Diagnostic{
				Severity: SeverityError,
				Message:  msgFreeLink,
				Span:     occurs[0],
			})
		case 2:
			a.refs = append(a.refs, occurs)
		default:
			a.reportMultiOccur(occurs)
		}
		m.delete(name)
	})
}

// reportMultiOccur emits one diagnostic per occurrence from the third
// onward, each pointing back at the first two occurrences.
func (a *analyzer) reportMultiOccur(occurs []token.Span) {
	related := []RelatedInformation{
		{Span: occurs[0], Message: "First occurrence"},
		{Span: occurs[1], Message: "Second occurrence"},
	}
	for _, span := range occurs[2:] {
		a.diagnostics = append(a.diagnostics, Diagnostic{
			Severity: SeverityError,
			Message:  msgMultiOccur,
			Span:     span,
			Related:  related,
		})
	}
}
