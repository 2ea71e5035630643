// Copyright © 2025 The lmnls authors

// Package lexer tokenizes LMNtal source text.
package lexer

import (
	"fmt"
	"unicode"

	"github.com/lmntal/lmnls/parser/token"
)

type Lexer struct {
	scanner *token.Scanner
}

func New(s *token.Scanner) *Lexer {
	return &Lexer{scanner: s}
}

// Lex reads tokens until EOF and returns them, including the final EOF
// token.  Lexical problems appear in the stream as ERROR tokens.
func (lex *Lexer) Lex() []*token.Token {
	var toks []*token.Token
	for {
		tok := lex.ReadToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

// ReadToken scans and returns the next token.
func (lex *Lexer) ReadToken() *token.Token {
	lex.skipWhitespace()
	s := lex.scanner
	c, ok := s.Peek()
	if !ok {
		if err := s.Err(); err != nil {
			return lex.errorf("read failure: %v", err)
		}
		return s.Emit(token.EOF)
	}
	switch c {
	case '(':
		return lex.charToken(token.PAREN_L)
	case ')':
		return lex.charToken(token.PAREN_R)
	case '{':
		return lex.charToken(token.BRACE_L)
	case '}':
		return lex.charToken(token.BRACE_R)
	case ',':
		return lex.charToken(token.COMMA)
	case '.':
		return lex.charToken(token.DOT)
	case '|':
		return lex.charToken(token.VERT)
	case '!':
		return lex.charToken(token.BANG)
	case '$':
		return lex.charToken(token.DOLLAR)
	case '\\':
		return lex.charToken(token.BACKSLASH)
	case '@':
		s.ScanRune()
		if s.AcceptRune('@') {
			return s.Emit(token.AT_AT)
		}
		return lex.errorf("unexpected character %q", '@')
	case ':':
		s.ScanRune()
		if s.AcceptRune('-') {
			return s.Emit(token.COLON_DASH)
		}
		return lex.errorf("unexpected character %q", ':')
	case '%':
		s.AcceptSeq(func(c rune) bool { return c != '\n' })
		return s.Emit(token.COMMENT)
	case '/':
		s.ScanRune()
		if s.AcceptRune('/') {
			s.AcceptSeq(func(c rune) bool { return c != '\n' })
			return s.Emit(token.COMMENT)
		}
		if s.AcceptRune('*') {
			return lex.readBlockComment()
		}
		return s.Emit(token.OPERATOR)
	case '+', '-', '*':
		s.ScanRune()
		return s.Emit(token.OPERATOR)
	case '=':
		s.ScanRune()
		// ==, =<, =:=, or plain =
		if s.AcceptRune('=') || s.AcceptRune('<') {
			return s.Emit(token.OPERATOR)
		}
		if s.AcceptString(":=") {
			return s.Emit(token.OPERATOR)
		}
		return s.Emit(token.OPERATOR)
	case '<', '>':
		s.ScanRune()
		s.AcceptRune('=')
		return s.Emit(token.OPERATOR)
	case '"':
		return lex.readString()
	}
	if isDigit(c) {
		return lex.readNumber()
	}
	if unicode.IsLower(c) {
		s.AcceptSeq(isWord)
		return s.Emit(token.ATOM_IDENT)
	}
	if unicode.IsUpper(c) || c == '_' {
		s.AcceptSeq(isWord)
		return s.Emit(token.LINK_IDENT)
	}
	s.ScanRune()
	return lex.errorf("unexpected character %q", c)
}

func (lex *Lexer) charToken(typ token.Type) *token.Token {
	lex.scanner.ScanRune()
	return lex.scanner.Emit(typ)
}

func (lex *Lexer) readBlockComment() *token.Token {
	s := lex.scanner
	for {
		if s.AcceptString("*/") {
			return s.Emit(token.COMMENT)
		}
		if !s.ScanRune() {
			return lex.errorf("unterminated block comment")
		}
	}
}

func (lex *Lexer) readString() *token.Token {
	s := lex.scanner
	s.ScanRune() // opening quote
	for {
		c, ok := s.Peek()
		if !ok || c == '\n' {
			return lex.errorf("unterminated string literal")
		}
		s.ScanRune()
		if c == '"' {
			return s.Emit(token.STRING)
		}
		if c == '\\' {
			// Defer escape validation to the parser.
			if !s.ScanRune() {
				return lex.errorf("unterminated string literal")
			}
		}
	}
}

func (lex *Lexer) readNumber() *token.Token {
	s := lex.scanner
	s.AcceptSeq(isDigit)
	// Only treat '.' as a decimal point when a digit follows; otherwise it
	// is the declaration terminator.
	if c, ok := s.Peek(); ok && c == '.' {
		if c2, ok2 := s.PeekAt(1); ok2 && isDigit(c2) {
			s.ScanRune()
			s.AcceptSeq(isDigit)
			return s.Emit(token.FLOAT)
		}
	}
	return s.Emit(token.INT)
}

func (lex *Lexer) errorf(format string, v ...interface{}) *token.Token {
	tok := lex.scanner.Emit(token.ERROR)
	tok.Text = fmt.Sprintf(format, v...)
	return tok
}

func (lex *Lexer) skipWhitespace() {
	s := lex.scanner
	s.AcceptSeq(unicode.IsSpace)
	s.Ignore()
}

func isWord(c rune) bool {
	return unicode.IsLetter(c) || isDigit(c) || c == '_'
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
