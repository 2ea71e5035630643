// Copyright © 2025 The lmnls authors

// Package parser implements a recursive descent parser for LMNtal.  The
// parser is fault tolerant: syntax problems are collected as errors and
// warnings with source spans while parsing continues at the next
// declaration, so editor tooling always receives a (possibly partial)
// syntax tree.
package parser

import (
	"fmt"
	"strings"

	"github.com/lmntal/lmnls/parser/ast"
	"github.com/lmntal/lmnls/parser/lexer"
	"github.com/lmntal/lmnls/parser/token"
)

// SyntaxError is a fatal problem in a declaration.
type SyntaxError struct {
	Msg  string
	Span token.Span
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span.Start, e.Msg)
}

// SyntaxWarning is a recoverable oddity the parser papered over.
type SyntaxWarning struct {
	Msg  string
	Span token.Span
}

// Result holds the outcome of parsing one document.
type Result struct {
	// Program is the whole document modeled as an unnamed membrane.  It is
	// never nil, though it may be partial when Errors is non-empty.
	Program  *ast.Membrane
	Errors   []*SyntaxError
	Warnings []*SyntaxWarning
}

// Parse tokenizes and parses src.
func Parse(file, src string) *Result {
	lex := lexer.New(token.NewScannerString(file, src))
	p := &parser{}
	for _, tok := range lex.Lex() {
		if tok.Type == token.COMMENT {
			continue
		}
		p.toks = append(p.toks, tok)
	}
	return p.parseProgram()
}

// guardKeywords are type-constraint names highlighted as keywords when
// they appear as atom names.
var guardKeywords = map[string]bool{
	"int": true, "float": true, "unary": true, "ground": true,
	"uniq": true, "hlink": true, "new": true, "num": true,
}

type parser struct {
	toks     []*token.Token
	pos      int
	errors   []*SyntaxError
	warnings []*SyntaxWarning
}

func (p *parser) cur() *token.Token {
	return p.toks[p.pos]
}

func (p *parser) peek() *token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) next() *token.Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) errorf(span token.Span, format string, v ...interface{}) {
	p.errors = append(p.errors, &SyntaxError{
		Msg:  fmt.Sprintf(format, v...),
		Span: span,
	})
}

func (p *parser) warnf(span token.Span, format string, v ...interface{}) {
	p.warnings = append(p.warnings, &SyntaxWarning{
		Msg:  fmt.Sprintf(format, v...),
		Span: span,
	})
}

// synchronize skips tokens until a declaration boundary so that one bad
// declaration does not poison the rest of the document.
func (p *parser) synchronize() {
	for {
		switch p.cur().Type {
		case token.DOT:
			p.next()
			return
		case token.BRACE_R, token.EOF:
			return
		}
		p.next()
	}
}

func (p *parser) parseProgram() *Result {
	prog := &ast.Membrane{}
	for p.cur().Type != token.EOF {
		before := p.pos
		pl, rule := p.parseDeclaration(token.EOF)
		if pl != nil {
			prog.ProcessLists = append(prog.ProcessLists, pl)
			prog.Loc = prog.Loc.Union(pl.Loc)
		}
		if rule != nil {
			prog.Rules = append(prog.Rules, rule)
			prog.Loc = prog.Loc.Union(rule.Loc)
		}
		switch {
		case p.cur().Type == token.DOT:
			p.next()
		case pl != nil || rule != nil:
			// Top level declarations must be dot terminated, even the last
			// one in the file.
			p.errorf(p.cur().Span, "unexpected token: expected %q, found %q", ".", p.cur().Text)
			p.synchronize()
		}
		if p.pos == before {
			// Declaration consumed nothing; force progress.
			p.next()
		}
	}
	return &Result{Program: prog, Errors: p.errors, Warnings: p.warnings}
}

// parseDeclaration parses one dot-terminated declaration: either a plain
// process list or a rewrite rule.  closer is the token type that
// delimits the enclosing scope (EOF or BRACE_R).
func (p *parser) parseDeclaration(closer token.Type) (*ast.ProcessList, *ast.Rule) {
	var name string
	var nameSpan token.Span
	if p.cur().Type == token.ATOM_IDENT && p.peek().Type == token.AT_AT {
		nameTok := p.next()
		p.next() // @@
		name = nameTok.Text
		nameSpan = nameTok.Span
	}

	head := p.parseProcessList(closer)

	var propagation *ast.ProcessList
	if p.cur().Type == token.BACKSLASH {
		p.next()
		propagation = p.parseProcessList(closer)
	}

	if p.cur().Type != token.COLON_DASH {
		if name != "" || propagation != nil {
			p.errorf(p.cur().Span, "unexpected token: expected %q, found %q", ":-", p.cur().Text)
			p.synchronize()
			return nil, nil
		}
		return head, nil
	}
	p.next() // :-

	var guard, body *ast.ProcessList
	first := p.parseProcessList(closer)
	if p.cur().Type == token.VERT {
		p.next()
		guard = first
		body = p.parseProcessList(closer)
	} else {
		body = first
	}

	rule := &ast.Rule{
		Name:        name,
		NameSpan:    nameSpan,
		Head:        head,
		Propagation: propagation,
		Guard:       guard,
		Body:        body,
	}
	rule.Loc = nameSpan
	if head != nil {
		rule.Loc = rule.Loc.Union(head.Loc)
	}
	if propagation != nil {
		rule.Loc = rule.Loc.Union(propagation.Loc)
	}
	if guard != nil {
		rule.Loc = rule.Loc.Union(guard.Loc)
	}
	if body != nil {
		rule.Loc = rule.Loc.Union(body.Loc)
	}
	return nil, rule
}

// listStop reports whether typ ends a process list.
func listStop(typ token.Type) bool {
	switch typ {
	case token.DOT, token.COLON_DASH, token.BACKSLASH, token.VERT,
		token.BRACE_R, token.PAREN_R, token.COMMA, token.EOF:
		return true
	}
	return false
}

// parseProcessList parses a comma-separated sequence of processes.  It
// returns nil when no process is present before the next delimiter.
func (p *parser) parseProcessList(closer token.Type) *ast.ProcessList {
	if listStop(p.cur().Type) {
		return nil
	}
	pl := &ast.ProcessList{}
	for {
		proc := p.parseProcess(0)
		if proc != nil {
			pl.Processes = append(pl.Processes, proc)
			pl.Loc = pl.Loc.Union(proc.Span())
		}
		switch {
		case p.cur().Type == token.COMMA:
			p.next()
		case listStop(p.cur().Type) || p.cur().Type == closer:
			return pl
		case proc == nil:
			// parseProcess already reported; avoid a warning loop.
			return pl
		default:
			p.warnf(p.cur().Span, "missing comma between processes")
		}
	}
}

// operator precedence, loosest first
func opPrec(text string) int {
	switch text {
	case "=", "==", "=<", "<", ">", "<=", ">=", "=:=":
		return 1
	case "+", "-":
		return 2
	case "*", "/":
		return 3
	}
	return 1
}

// parseProcess parses one process, treating infix operators as binary
// operator atoms (X = Y + 1 parses as =(X, +(Y, 1))).
func (p *parser) parseProcess(minPrec int) ast.Node {
	lhs := p.parsePrimary()
	if lhs == nil {
		return nil
	}
	for p.cur().Type == token.OPERATOR && opPrec(p.cur().Text) >= minPrec {
		op := p.next()
		rhs := p.parseProcess(opPrec(op.Text) + 1)
		atom := &ast.Atom{
			Name:     op.Text,
			Kind:     ast.AtomOperator,
			NameSpan: op.Span,
			Loc:      op.Span.Union(lhs.Span()),
		}
		atom.Args = append(atom.Args, lhs)
		if rhs != nil {
			atom.Args = append(atom.Args, rhs)
			atom.Loc = atom.Loc.Union(rhs.Span())
		}
		lhs = atom
	}
	return lhs
}

func (p *parser) parsePrimary() ast.Node {
	switch tok := p.cur(); tok.Type {
	case token.LINK_IDENT:
		p.next()
		return &ast.Link{Name: tok.Text, Loc: tok.Span}
	case token.BANG:
		bang := p.next()
		if p.cur().Type != token.LINK_IDENT {
			p.errorf(p.cur().Span, "unexpected token: expected link name, found %q", p.cur().Text)
			return nil
		}
		name := p.next()
		return &ast.Link{
			Name:      name.Text,
			Hyperlink: true,
			Loc:       bang.Span.Union(name.Span),
		}
	case token.DOLLAR:
		dollar := p.next()
		if p.cur().Type != token.ATOM_IDENT {
			p.errorf(p.cur().Span, "unexpected token: expected context name, found %q", p.cur().Text)
			return nil
		}
		name := p.next()
		return &ast.Context{Name: name.Text, Loc: dollar.Span.Union(name.Span)}
	case token.BRACE_L:
		return p.parseMembrane("", token.Span{})
	case token.ATOM_IDENT:
		if p.peek().Type == token.BRACE_L {
			name := p.next()
			return p.parseMembrane(name.Text, name.Span)
		}
		return p.parseAtom()
	case token.INT:
		p.next()
		return &ast.Atom{Name: tok.Text, Kind: ast.AtomInt, NameSpan: tok.Span, Loc: tok.Span}
	case token.FLOAT:
		p.next()
		return &ast.Atom{Name: tok.Text, Kind: ast.AtomFloat, NameSpan: tok.Span, Loc: tok.Span}
	case token.STRING:
		p.next()
		return &ast.Atom{
			Name:     strings.Trim(tok.Text, `"`),
			Kind:     ast.AtomString,
			NameSpan: tok.Span,
			Loc:      tok.Span,
		}
	case token.ERROR:
		p.next()
		p.errorf(tok.Span, "%s", tok.Text)
		return nil
	default:
		p.next()
		p.errorf(tok.Span, "unexpected token %q", tok.Text)
		return nil
	}
}

func (p *parser) parseAtom() ast.Node {
	name := p.next()
	kind := ast.AtomPlain
	if guardKeywords[name.Text] {
		kind = ast.AtomKeyword
	}
	atom := &ast.Atom{
		Name:     name.Text,
		Kind:     kind,
		NameSpan: name.Span,
		Loc:      name.Span,
	}
	if p.cur().Type != token.PAREN_L {
		return atom
	}
	p.next() // (
	for p.cur().Type != token.PAREN_R {
		arg := p.parseProcess(0)
		if arg == nil {
			break
		}
		atom.Args = append(atom.Args, arg)
		if p.cur().Type == token.COMMA {
			p.next()
			continue
		}
		if p.cur().Type != token.PAREN_R {
			p.errorf(p.cur().Span, "unexpected token: expected %q, found %q", ")", p.cur().Text)
			break
		}
	}
	if p.cur().Type == token.PAREN_R {
		closer := p.next()
		atom.Loc = atom.Loc.Union(closer.Span)
	}
	return atom
}

// parseMembrane parses a membrane body.  The opening name (possibly
// empty) has already been consumed by the caller.
func (p *parser) parseMembrane(name string, nameSpan token.Span) ast.Node {
	open := p.next() // {
	mem := &ast.Membrane{
		Name:     name,
		NameSpan: nameSpan,
		Loc:      nameSpan.Union(open.Span),
	}
	for p.cur().Type != token.BRACE_R && p.cur().Type != token.EOF {
		before := p.pos
		pl, rule := p.parseDeclaration(token.BRACE_R)
		if pl != nil {
			mem.ProcessLists = append(mem.ProcessLists, pl)
		}
		if rule != nil {
			mem.Rules = append(mem.Rules, rule)
		}
		if p.cur().Type == token.DOT {
			p.next()
		} else if p.cur().Type != token.BRACE_R && p.cur().Type != token.EOF {
			p.errorf(p.cur().Span, "unexpected token: expected %q, found %q", ".", p.cur().Text)
			p.synchronize()
		}
		if p.pos == before {
			p.next()
		}
	}
	if p.cur().Type == token.BRACE_R {
		closer := p.next()
		mem.Loc = mem.Loc.Union(closer.Span)
	} else {
		p.errorf(p.cur().Span, "unexpected end of file: unclosed membrane")
	}
	return mem
}
