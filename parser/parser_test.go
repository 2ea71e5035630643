// Copyright © 2025 The lmnls authors

package parser

import (
	"testing"

	"github.com/lmntal/lmnls/parser/ast"
	"github.com/lmntal/lmnls/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOK(t *testing.T, src string) *ast.Membrane {
	t.Helper()
	res := Parse("test.lmn", src)
	require.Empty(t, res.Errors, "unexpected parse errors")
	return res.Program
}

func TestParse_ProcessList(t *testing.T) {
	prog := parseOK(t, "a, b(X, Y), c.")
	require.Len(t, prog.ProcessLists, 1)
	require.Empty(t, prog.Rules)

	procs := prog.ProcessLists[0].Processes
	require.Len(t, procs, 3)

	atom, ok := procs[1].(*ast.Atom)
	require.True(t, ok)
	assert.Equal(t, "b", atom.Name)
	assert.Equal(t, ast.AtomPlain, atom.Kind)
	require.Len(t, atom.Args, 2)

	link, ok := atom.Args[0].(*ast.Link)
	require.True(t, ok)
	assert.Equal(t, "X", link.Name)
	assert.False(t, link.Hyperlink)
}

func TestParse_NamedRule(t *testing.T) {
	prog := parseOK(t, "step @@ a(X) :- b(X).")
	require.Len(t, prog.Rules, 1)
	rule := prog.Rules[0]
	assert.Equal(t, "step", rule.Name)
	assert.Equal(t, 4, rule.NameSpan.Len())
	require.NotNil(t, rule.Head)
	require.NotNil(t, rule.Body)
	assert.Nil(t, rule.Propagation)
	assert.Nil(t, rule.Guard)
}

func TestParse_AnonymousRule(t *testing.T) {
	prog := parseOK(t, "a :- b.")
	require.Len(t, prog.Rules, 1)
	assert.Empty(t, prog.Rules[0].Name)
	assert.True(t, prog.Rules[0].NameSpan.Empty())
}

func TestParse_RuleWithGuard(t *testing.T) {
	prog := parseOK(t, "r @@ a(X) :- int(X) | b(X).")
	require.Len(t, prog.Rules, 1)
	rule := prog.Rules[0]
	require.NotNil(t, rule.Guard)
	require.Len(t, rule.Guard.Processes, 1)

	guard, ok := rule.Guard.Processes[0].(*ast.Atom)
	require.True(t, ok)
	assert.Equal(t, "int", guard.Name)
	assert.Equal(t, ast.AtomKeyword, guard.Kind)
}

func TestParse_RuleWithPropagation(t *testing.T) {
	prog := parseOK(t, `r @@ a \ b :- c.`)
	require.Len(t, prog.Rules, 1)
	rule := prog.Rules[0]
	require.NotNil(t, rule.Propagation)
	require.Len(t, rule.Propagation.Processes, 1)
}

func TestParse_EmptyRuleBody(t *testing.T) {
	prog := parseOK(t, "r @@ a :- .")
	require.Len(t, prog.Rules, 1)
	assert.Nil(t, prog.Rules[0].Body)
}

func TestParse_Membrane(t *testing.T) {
	prog := parseOK(t, "cell{a, b. r @@ c :- d.}.")
	require.Len(t, prog.ProcessLists, 1)
	mem, ok := prog.ProcessLists[0].Processes[0].(*ast.Membrane)
	require.True(t, ok)
	assert.Equal(t, "cell", mem.Name)
	assert.Equal(t, 4, mem.NameSpan.Len())
	require.Len(t, mem.ProcessLists, 1)
	require.Len(t, mem.Rules, 1)

	// The membrane's span runs from its name to the closing brace.
	assert.Equal(t, token.Pos{Line: 0, Col: 0}, mem.Loc.Start)
	assert.Equal(t, token.Pos{Line: 0, Col: 24}, mem.Loc.End)
}

func TestParse_AnonymousMembrane(t *testing.T) {
	prog := parseOK(t, "{a}.")
	mem, ok := prog.ProcessLists[0].Processes[0].(*ast.Membrane)
	require.True(t, ok)
	assert.Empty(t, mem.Name)
	assert.True(t, mem.NameSpan.Empty())
}

func TestParse_OperatorExpression(t *testing.T) {
	prog := parseOK(t, "X = Y + 1.")
	procs := prog.ProcessLists[0].Processes
	require.Len(t, procs, 1)

	eq, ok := procs[0].(*ast.Atom)
	require.True(t, ok)
	assert.Equal(t, "=", eq.Name)
	assert.Equal(t, ast.AtomOperator, eq.Kind)
	require.Len(t, eq.Args, 2)

	plus, ok := eq.Args[1].(*ast.Atom)
	require.True(t, ok)
	assert.Equal(t, "+", plus.Name)
	require.Len(t, plus.Args, 2)

	one, ok := plus.Args[1].(*ast.Atom)
	require.True(t, ok)
	assert.Equal(t, ast.AtomInt, one.Kind)
}

func TestParse_OperatorPrecedence(t *testing.T) {
	prog := parseOK(t, "X = 1 + 2 * 3.")
	eq := prog.ProcessLists[0].Processes[0].(*ast.Atom)
	require.Equal(t, "=", eq.Name)
	plus := eq.Args[1].(*ast.Atom)
	require.Equal(t, "+", plus.Name)
	times := plus.Args[1].(*ast.Atom)
	assert.Equal(t, "*", times.Name)
}

func TestParse_HyperlinkAndContext(t *testing.T) {
	prog := parseOK(t, "a(!H), m{$p}, b(!H).")
	procs := prog.ProcessLists[0].Processes
	require.Len(t, procs, 3)

	a := procs[0].(*ast.Atom)
	h, ok := a.Args[0].(*ast.Link)
	require.True(t, ok)
	assert.True(t, h.Hyperlink)
	assert.Equal(t, "H", h.Name)
	assert.Equal(t, 2, h.Loc.Len())

	mem := procs[1].(*ast.Membrane)
	ctx, ok := mem.ProcessLists[0].Processes[0].(*ast.Context)
	require.True(t, ok)
	assert.Equal(t, "p", ctx.Name)
}

func TestParse_MultipleDeclarations(t *testing.T) {
	prog := parseOK(t, "a.\nb :- c.\nd.")
	assert.Len(t, prog.ProcessLists, 2)
	assert.Len(t, prog.Rules, 1)
}

func TestParse_MissingCommaWarning(t *testing.T) {
	res := Parse("test.lmn", "a b.")
	assert.Empty(t, res.Errors)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Msg, "missing comma")
	// Both atoms still parse.
	assert.Len(t, res.Program.ProcessLists[0].Processes, 2)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "missing dot", src: "a b :- c"},
		{name: "unclosed membrane", src: "m{a"},
		{name: "named head without rule", src: "r @@ a."},
		{name: "bang without link", src: "a(!b)."},
		{name: "unexpected eof", src: "a(."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse("test.lmn", tt.src)
			assert.NotEmpty(t, res.Errors)
			require.NotNil(t, res.Program)
		})
	}
}

func TestParse_RecoversAfterError(t *testing.T) {
	// The bad first declaration is skipped; the rule after it parses.
	res := Parse("test.lmn", "a(@.\nr @@ b :- c.")
	assert.NotEmpty(t, res.Errors)
	require.Len(t, res.Program.Rules, 1)
	assert.Equal(t, "r", res.Program.Rules[0].Name)
}
