// Copyright © 2025 The lmnls authors

// Package ast defines the syntax tree for LMNtal programs.  The node set
// is closed: a process is a membrane, an atom, a link, or a context, and
// membranes additionally hold rewrite rules.
package ast

import "github.com/lmntal/lmnls/parser/token"

// Node is implemented by every syntax-tree node.
type Node interface {
	// Span returns the full source range of the node.
	Span() token.Span
	node()
}

// AtomKind classifies an atom's name.
type AtomKind int

const (
	AtomPlain AtomKind = iota
	AtomKeyword
	AtomOperator
	AtomInt
	AtomFloat
	AtomString
)

func (k AtomKind) String() string {
	switch k {
	case AtomPlain:
		return "plain"
	case AtomKeyword:
		return "keyword"
	case AtomOperator:
		return "operator"
	case AtomInt:
		return "int"
	case AtomFloat:
		return "float"
	case AtomString:
		return "string"
	default:
		return "unknown"
	}
}

// Membrane is a bounded region holding processes and rewrite rules.  The
// whole program is represented as an unnamed membrane with a zero name
// span.
type Membrane struct {
	Name         string // empty for anonymous membranes
	NameSpan     token.Span
	ProcessLists []*ProcessList
	Rules        []*Rule
	Loc          token.Span
}

func (m *Membrane) Span() token.Span { return m.Loc }
func (m *Membrane) node()            {}

// ProcessList is a comma-separated sequence of processes.
type ProcessList struct {
	Processes []Node
	Loc       token.Span
}

func (p *ProcessList) Span() token.Span { return p.Loc }
func (p *ProcessList) node()            {}

// Atom is a functor with a name and zero or more argument processes.
type Atom struct {
	Name     string
	Kind     AtomKind
	NameSpan token.Span
	Args     []Node
	Loc      token.Span
}

func (a *Atom) Span() token.Span { return a.Loc }
func (a *Atom) node()            {}

// Link is a named unification variable occurrence.  Hyperlink occurrences
// are written with a leading '!'.
type Link struct {
	Name      string
	Hyperlink bool
	Loc       token.Span
}

func (l *Link) Span() token.Span { return l.Loc }
func (l *Link) node()            {}

// Context is a process context occurrence such as $p.
type Context struct {
	Name string
	Loc  token.Span
}

func (c *Context) Span() token.Span { return c.Loc }
func (c *Context) node()            {}

// Rule is a rewrite rule.  Propagation, Guard, and Body are optional.
type Rule struct {
	Name        string // empty for anonymous rules
	NameSpan    token.Span
	Head        *ProcessList
	Propagation *ProcessList
	Guard       *ProcessList
	Body        *ProcessList
	Loc         token.Span
}

func (r *Rule) Span() token.Span { return r.Loc }
func (r *Rule) node()            {}
