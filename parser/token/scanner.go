// Copyright © 2025 The lmnls authors

package token

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from LMNtal source text.  It
// decodes runes one at a time and tracks 0-based line/column positions so
// that emitted tokens carry accurate spans.  Documents arrive over LSP as
// complete strings, so the scanner holds the full source in memory.
type Scanner struct {
	file    string
	src     string
	readErr error

	start    int // byte offset of the current token
	pos      int // byte offset of the next rune to scan
	startPos Pos // position at the start of the current token
	cur      Pos // position at pos
}

// NewScanner initializes and returns a new Scanner reading all of r.
func NewScanner(file string, r io.Reader) *Scanner {
	s := &Scanner{file: file}
	var b strings.Builder
	if _, err := io.Copy(&b, r); err != nil {
		s.readErr = err
	}
	s.src = b.String()
	return s
}

// NewScannerString initializes a Scanner over src directly.
func NewScannerString(file, src string) *Scanner {
	return &Scanner{file: file, src: src}
}

// File returns the name of the source stream.
func (s *Scanner) File() string {
	return s.file
}

// Err returns an error encountered while reading the input stream.
func (s *Scanner) Err() error {
	return s.readErr
}

// EOF reports whether all input has been consumed.
func (s *Scanner) EOF() bool {
	return s.pos >= len(s.src)
}

// Peek returns the next rune to be scanned, if there is one.
func (s *Scanner) Peek() (rune, bool) {
	return s.peekAt(s.pos)
}

// PeekAt returns the rune n runes past the next one to be scanned.  It is
// used for the two-rune lookahead needed to distinguish the declaration
// terminator '.' from a float's decimal point.
func (s *Scanner) PeekAt(n int) (rune, bool) {
	off := s.pos
	for ; n > 0; n-- {
		c, size := utf8.DecodeRuneInString(s.src[off:])
		if c == utf8.RuneError && size <= 1 {
			return 0, false
		}
		off += size
	}
	return s.peekAt(off)
}

func (s *Scanner) peekAt(off int) (rune, bool) {
	if off >= len(s.src) {
		return 0, false
	}
	c, size := utf8.DecodeRuneInString(s.src[off:])
	if c == utf8.RuneError && size <= 1 {
		return 0, false
	}
	return c, true
}

// ScanRune consumes the next rune for inclusion in the current token.
func (s *Scanner) ScanRune() bool {
	c, ok := s.Peek()
	if !ok {
		return false
	}
	s.pos += utf8.RuneLen(c)
	if c == '\n' {
		s.cur.Line++
		s.cur.Col = 0
	} else {
		s.cur.Col++
	}
	return true
}

// Accept consumes the next rune when fn approves it.
func (s *Scanner) Accept(fn func(rune) bool) bool {
	c, ok := s.Peek()
	if !ok || !fn(c) {
		return false
	}
	return s.ScanRune()
}

// AcceptRune consumes the next rune when it equals c.
func (s *Scanner) AcceptRune(c rune) bool {
	return s.Accept(func(r rune) bool { return r == c })
}

// AcceptAny consumes the next rune when it appears in charset.
func (s *Scanner) AcceptAny(charset string) bool {
	return s.Accept(func(r rune) bool { return strings.ContainsRune(charset, r) })
}

// AcceptSeq consumes a run of runes approved by fn and returns its length.
func (s *Scanner) AcceptSeq(fn func(rune) bool) int {
	var n int
	for s.Accept(fn) {
		n++
	}
	return n
}

// AcceptString consumes literal when it prefixes the remaining input.
func (s *Scanner) AcceptString(literal string) bool {
	if !strings.HasPrefix(s.src[s.pos:], literal) {
		return false
	}
	for range literal {
		s.ScanRune()
	}
	return true
}

// Text returns the text scanned since the last call to Emit or Ignore.
func (s *Scanner) Text() string {
	return s.src[s.start:s.pos]
}

// Pos returns the position of the next rune to be scanned.
func (s *Scanner) Pos() Pos {
	return s.cur
}

// Span returns the span of the text scanned since the last Emit or Ignore.
func (s *Scanner) Span() Span {
	return Span{Start: s.startPos, End: s.cur}
}

// Emit returns a token containing the text scanned since the last call to
// either Emit or Ignore.
func (s *Scanner) Emit(typ Type) *Token {
	tok := &Token{
		Type: typ,
		Text: s.Text(),
		Span: s.Span(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call
// to either Emit or Ignore.
func (s *Scanner) Ignore() {
	s.start = s.pos
	s.startPos = s.cur
}
