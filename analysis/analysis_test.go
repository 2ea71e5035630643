// Copyright © 2025 The lmnls authors

package analysis

import (
	"testing"

	"github.com/lmntal/lmnls/parser"
	"github.com/lmntal/lmnls/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseAndAnalyze is a test helper that parses source and runs analysis.
func parseAndAnalyze(t *testing.T, source string) *Result {
	t.Helper()
	res := parser.Parse("test.lmn", source)
	require.Empty(t, res.Errors, "unexpected parse errors")
	return Analyze(res.Program)
}

func diagnosticsWithMessage(r *Result, msg string) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Message == msg {
			out = append(out, d)
		}
	}
	return out
}

// --- Linearity tests ---

func TestAnalyze_LinkPair(t *testing.T) {
	r := parseAndAnalyze(t, "a(X), b(X).")
	assert.Empty(t, r.Diagnostics)
	require.Len(t, r.RefGroups, 1)
	assert.Len(t, r.RefGroups[0], 2)
}

func TestAnalyze_FreeLink(t *testing.T) {
	r := parseAndAnalyze(t, "a(X).")
	require.Len(t, r.Diagnostics, 1)
	assert.Equal(t, "Free link", r.Diagnostics[0].Message)
	assert.Equal(t, SeverityError, r.Diagnostics[0].Severity)
	// The diagnostic points at the single occurrence.
	assert.Equal(t, token.Pos{Line: 0, Col: 2}, r.Diagnostics[0].Span.Start)
	assert.Empty(t, r.RefGroups)
}

func TestAnalyze_MultiOccurrence(t *testing.T) {
	r := parseAndAnalyze(t, "a(X), b(X), c(X), d(X).")
	diags := diagnosticsWithMessage(r, "Link occurs more than twice")
	// N occurrences produce N-2 diagnostics, one per extra occurrence.
	require.Len(t, diags, 2)
	for _, d := range diags {
		require.Len(t, d.Related, 2)
		assert.Equal(t, "First occurrence", d.Related[0].Message)
		assert.Equal(t, "Second occurrence", d.Related[1].Message)
		// Both diagnostics cite the same first two occurrences.
		assert.Equal(t, diags[0].Related, d.Related)
	}
	assert.Empty(t, r.RefGroups)
}

func TestAnalyze_LinkAtTopLevel(t *testing.T) {
	r := parseAndAnalyze(t, "X.")
	require.Len(t, r.Diagnostics, 1)
	assert.Equal(t, "Link at top level", r.Diagnostics[0].Message)
	// The occurrence is excluded from counting: no free-link report, no
	// reference group.
	assert.Empty(t, r.RefGroups)
}

func TestAnalyze_TopLevelLinkNextToPair(t *testing.T) {
	// The bare X is reported immediately and never counted, so the two
	// a(X)/b(X) occurrences still pair cleanly.
	r := parseAndAnalyze(t, "X, a(X), b(X).")
	require.Len(t, r.Diagnostics, 1)
	assert.Equal(t, "Link at top level", r.Diagnostics[0].Message)
	assert.Len(t, r.RefGroups, 1)
}

func TestAnalyze_RuleBodyPair(t *testing.T) {
	r := parseAndAnalyze(t, "r @@ p :- q(A, A).")
	assert.Empty(t, r.Diagnostics)
	require.Len(t, r.RefGroups, 1)
	assert.Len(t, r.RefGroups[0], 2)
}

func TestAnalyze_RuleBodyTriple(t *testing.T) {
	r := parseAndAnalyze(t, "r @@ p :- q(A, A, A).")
	diags := diagnosticsWithMessage(r, "Link occurs more than twice")
	require.Len(t, diags, 1)
	require.Len(t, diags[0].Related, 2)
	// The diagnostic sits on the third occurrence and cites the first two.
	assert.True(t, diags[0].Related[0].Span.Start.Before(diags[0].Related[1].Span.Start))
	assert.True(t, diags[0].Related[1].Span.Start.Before(diags[0].Span.Start))
}

func TestAnalyze_LinkPairsAcrossHeadAndBody(t *testing.T) {
	r := parseAndAnalyze(t, "r @@ a(X) :- b(X).")
	assert.Empty(t, r.Diagnostics)
	assert.Len(t, r.RefGroups, 1)
}

func TestAnalyze_RuleScopeDoesNotLeak(t *testing.T) {
	// X inside the rule and X outside it are different terminal scopes:
	// both resolve to free links rather than pairing with each other.
	r := parseAndAnalyze(t, "a(X). r @@ p(X) :- q.")
	diags := diagnosticsWithMessage(r, "Free link")
	assert.Len(t, diags, 2)
	assert.Empty(t, r.RefGroups)
}

func TestAnalyze_LinkPromotedThroughMembrane(t *testing.T) {
	// A single occurrence inside a nested membrane propagates outward and
	// pairs at the enclosing scope.
	r := parseAndAnalyze(t, "{a(X)}, b(X).")
	assert.Empty(t, r.Diagnostics)
	assert.Len(t, r.RefGroups, 1)
}

func TestAnalyze_MembranePairResolvedInner(t *testing.T) {
	// A pair completed inside a membrane settles at that membrane and
	// must not pair again with an outer occurrence.
	r := parseAndAnalyze(t, "{a(X), b(X)}, c(X).")
	require.Len(t, r.RefGroups, 1)
	diags := diagnosticsWithMessage(r, "Free link")
	assert.Len(t, diags, 1)
}

func TestAnalyze_FreeLinkInTerminalMembrane(t *testing.T) {
	r := parseAndAnalyze(t, "{a(X)}.")
	require.Len(t, r.Diagnostics, 1)
	assert.Equal(t, "Free link", r.Diagnostics[0].Message)
}

func TestAnalyze_HyperlinkCrossesMembranes(t *testing.T) {
	// Hyperlinks pass through inner membrane boundaries untouched and
	// resolve only at the rule's terminal boundary.
	r := parseAndAnalyze(t, "r @@ {a(!H)}, {b(!H)} :- c.")
	assert.Empty(t, r.Diagnostics)
	require.Len(t, r.RefGroups, 1)
	assert.Len(t, r.RefGroups[0], 2)
}

func TestAnalyze_HyperlinkFreeAtTerminal(t *testing.T) {
	r := parseAndAnalyze(t, "r @@ {a(!H)} :- c.")
	require.Len(t, r.Diagnostics, 1)
	assert.Equal(t, "Free link", r.Diagnostics[0].Message)
}

func TestAnalyze_GuardContributesNothing(t *testing.T) {
	// Guard content is highlighted but takes no part in linearity: the
	// X in int(X) neither pairs with the head nor reports free.
	r := parseAndAnalyze(t, "r @@ a(X), b(X) :- int(X) | c.")
	assert.Empty(t, r.Diagnostics)
	assert.Len(t, r.RefGroups, 1)
}

// --- Token tests ---

func tokensWithCategory(r *Result, cat Category) []Token {
	var out []Token
	for _, tok := range r.Tokens {
		if tok.Category == cat {
			out = append(out, tok)
		}
	}
	return out
}

func TestAnalyze_TokenCategories(t *testing.T) {
	r := parseAndAnalyze(t, `r @@ m{a(X), b(X)} :- ground(X2) | n(1, 2.5, "s"), $p.`)
	assert.Len(t, tokensWithCategory(r, CatRule), 1)
	assert.Len(t, tokensWithCategory(r, CatMembrane), 1)
	assert.Len(t, tokensWithCategory(r, CatLink), 3)
	assert.Len(t, tokensWithCategory(r, CatKeywordAtom), 1)
	assert.Len(t, tokensWithCategory(r, CatNumberAtom), 2)
	assert.Len(t, tokensWithCategory(r, CatStringAtom), 1)
	assert.Len(t, tokensWithCategory(r, CatContext), 1)
	// a, b, n
	assert.Len(t, tokensWithCategory(r, CatAtom), 3)
}

func TestAnalyze_OperatorAtomTokens(t *testing.T) {
	r := parseAndAnalyze(t, "r @@ a(X) :- b(Y), X = Y + 1.")
	assert.Len(t, tokensWithCategory(r, CatOperatorAtom), 2)
	assert.Len(t, tokensWithCategory(r, CatNumberAtom), 1)
}

func TestAnalyze_HyperlinkToken(t *testing.T) {
	r := parseAndAnalyze(t, "r @@ a(!H), b(!H) :- c.")
	toks := tokensWithCategory(r, CatHyperlink)
	require.Len(t, toks, 2)
	// The token span covers the '!' marker and the name.
	assert.Equal(t, 2, toks[0].Span.Len())
}

// --- Outline tests ---

func TestAnalyze_OutlineNesting(t *testing.T) {
	r := parseAndAnalyze(t, "m{ a, {b}. r @@ c :- d. }.")
	require.Len(t, r.Outline, 1)

	mem := r.Outline[0]
	assert.Equal(t, "m", mem.Name)
	assert.Equal(t, OutlineMembrane, mem.Kind)
	require.Len(t, mem.Children, 2)

	inner := mem.Children[0]
	assert.Equal(t, "Anonymous membrane", inner.Name)
	assert.Equal(t, OutlineMembrane, inner.Kind)
	assert.Empty(t, inner.Children)
	// An unnamed membrane selects its whole range.
	assert.Equal(t, inner.Range, inner.Selection)

	rule := mem.Children[1]
	assert.Equal(t, "r", rule.Name)
	assert.Equal(t, OutlineRule, rule.Kind)
	assert.Empty(t, rule.Children)
}

func TestAnalyze_OutlineRuleRanges(t *testing.T) {
	r := parseAndAnalyze(t, "grow @@ a :- b.")
	require.Len(t, r.Outline, 1)
	rule := r.Outline[0]
	assert.Equal(t, "grow", rule.Name)
	// Selection covers the name; the full range runs from the name's
	// start to the rule's end.
	assert.Equal(t, token.Pos{Line: 0, Col: 0}, rule.Selection.Start)
	assert.Equal(t, 4, rule.Selection.Len())
	assert.Equal(t, rule.Selection.Start, rule.Range.Start)
	assert.True(t, rule.Selection.End.Before(rule.Range.End))
}

func TestAnalyze_OutlineAnonymousRule(t *testing.T) {
	r := parseAndAnalyze(t, "a :- b.")
	require.Len(t, r.Outline, 1)
	assert.Equal(t, "Anonymous rule", r.Outline[0].Name)
	assert.Equal(t, r.Outline[0].Range, r.Outline[0].Selection)
}

func TestAnalyze_EmptyProgram(t *testing.T) {
	r := parseAndAnalyze(t, "")
	assert.Empty(t, r.Tokens)
	assert.Empty(t, r.Diagnostics)
	assert.Empty(t, r.Outline)
	assert.Empty(t, r.RefGroups)
}
