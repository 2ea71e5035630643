// Copyright © 2025 The lmnls authors

// Package token defines the lexical tokens of LMNtal source text along
// with the position and span types shared by the whole toolchain.
package token

import "fmt"

// Source is an abstract stream of tokens which allows one token lookahead.
type Source interface {
	// Token returns the current token.  Token returns nil if Scan has not
	// been called.
	Token() *Token
	// Peek returns the next token in the stream.  At the end of the stream
	// Peek returns an EOF token.
	Peek() *Token
	// Scan advances the token stream if possible.  If there are no tokens
	// remaining Scan returns false.
	Scan() bool
}

type Token struct {
	Type Type
	Text string
	Span Span
}

type Type uint

// Type constants used by the LMNtal lexer/parser.
const (
	INVALID Type = iota
	ERROR
	EOF

	COMMENT

	// Atomic expressions & literals
	ATOM_IDENT // identifier starting with a lower-case letter
	LINK_IDENT // identifier starting with an upper-case letter or '_'
	INT
	FLOAT
	STRING
	OPERATOR

	// Reserved operators
	AT_AT      // @@
	COLON_DASH // :-
	BACKSLASH  // \
	COMMA
	DOT
	VERT // |
	BANG // !
	DOLLAR

	// Delimiters
	PAREN_L
	PAREN_R
	BRACE_L
	BRACE_R

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID:    "invalid",
		ERROR:      "error",
		EOF:        "EOF",
		COMMENT:    "comment",
		ATOM_IDENT: "atom name",
		LINK_IDENT: "link name",
		INT:        "int",
		FLOAT:      "float",
		STRING:     "string",
		OPERATOR:   "operator",
		AT_AT:      "@@",
		COLON_DASH: ":-",
		BACKSLASH:  `\`,
		COMMA:      ",",
		DOT:        ".",
		VERT:       "|",
		BANG:       "!",
		DOLLAR:     "$",
		PAREN_L:    "(",
		PAREN_R:    ")",
		BRACE_L:    "{",
		BRACE_R:    "}",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Pos is a 0-based position in a document, matching the LSP convention.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Before reports whether p precedes q in document order.
func (p Pos) Before(q Pos) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

// Span is an immutable source range [Start, End).  Spans produced by the
// lexer for individual tokens never cross a line boundary; spans for
// composite syntax nodes may.
type Span struct {
	Start Pos
	End   Pos
}

// NewSpan returns the span covering [start, end).
func NewSpan(start, end Pos) Span {
	return Span{Start: start, End: end}
}

// Len returns the column width of a single-line span.  Multi-line spans
// report 0.
func (s Span) Len() int {
	if s.Start.Line != s.End.Line {
		return 0
	}
	return s.End.Col - s.Start.Col
}

// Empty reports whether the span covers no text.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// Union returns the smallest span covering both s and t.
func (s Span) Union(t Span) Span {
	if s.Empty() {
		return t
	}
	if t.Empty() {
		return s
	}
	u := s
	if t.Start.Before(u.Start) {
		u.Start = t.Start
	}
	if u.End.Before(t.End) {
		u.End = t.End
	}
	return u
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// PosError attaches a source position to an error.
type PosError struct {
	Err  error
	File string
	Pos  Pos
}

func (err *PosError) Error() string {
	if err.File == "" {
		return fmt.Sprintf("%s: %s", err.Pos, err.Err)
	}
	return fmt.Sprintf("%s:%s: %s", err.File, err.Pos, err.Err)
}

func (err *PosError) Unwrap() error {
	return err.Err
}
