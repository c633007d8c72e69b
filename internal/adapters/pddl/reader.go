// Package pddl reads PDDL domain and problem sources into the structural model.
package pddl

import (
	"bytes"
	"strconv"

	"go.trai.ch/masq/internal/core/domain"
	"go.trai.ch/zerr"
)

// expr is an s-expression: either an atom or a parenthesized list.
type expr struct {
	atom   string
	list   []*expr
	isList bool
	line   int
}

func (e *expr) String() string {
	if !e.isList {
		return e.atom
	}
	var b bytes.Buffer
	b.WriteByte('(')
	for i, item := range e.list {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(item.String())
	}
	b.WriteByte(')')
	return b.String()
}

// head returns the leading atom of a list, or "" if there is none.
func (e *expr) head() string {
	if !e.isList || len(e.list) == 0 || e.list[0].isList {
		return ""
	}
	return e.list[0].atom
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokOpen
	tokClose
	tokAtom
)

type token struct {
	kind tokenKind
	text string
	line int
}

// lexer splits lower-cased source into parentheses and atoms.
// Comments run from ';' to the end of the line.
type lexer struct {
	src  []byte
	pos  int
	line int
}

func newLexer(src []byte) *lexer {
	return &lexer{src: bytes.ToLower(src), line: 1}
}

func (l *lexer) next() token {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == ';':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '(':
			l.pos++
			return token{kind: tokOpen, text: "(", line: l.line}
		case c == ')':
			l.pos++
			return token{kind: tokClose, text: ")", line: l.line}
		default:
			start := l.pos
			for l.pos < len(l.src) && !isDelimiter(l.src[l.pos]) {
				l.pos++
			}
			return token{kind: tokAtom, text: string(l.src[start:l.pos]), line: l.line}
		}
	}
	return token{kind: tokEOF, line: l.line}
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', ';', ' ', '\t', '\r', '\n':
		return true
	default:
		return false
	}
}

// read parses exactly one top-level s-expression from src.
func read(src []byte) (*expr, error) {
	lx := newLexer(src)
	tok := lx.next()
	if tok.kind == tokEOF {
		return nil, zerr.Wrap(domain.ErrSyntax, "empty source")
	}

	root, err := readExpr(lx, tok)
	if err != nil {
		return nil, err
	}

	if trailing := lx.next(); trailing.kind != tokEOF {
		return nil, syntaxError(trailing.line, "unexpected content after definition: "+trailing.text)
	}
	return root, nil
}

func readExpr(lx *lexer, tok token) (*expr, error) {
	switch tok.kind {
	case tokAtom:
		return &expr{atom: tok.text, line: tok.line}, nil
	case tokClose:
		return nil, syntaxError(tok.line, "unexpected ')'")
	case tokEOF:
		return nil, syntaxError(tok.line, "unexpected end of input")
	}

	list := &expr{isList: true, line: tok.line}
	for {
		next := lx.next()
		switch next.kind {
		case tokClose:
			return list, nil
		case tokEOF:
			return nil, syntaxError(tok.line, "unclosed '('")
		}
		item, err := readExpr(lx, next)
		if err != nil {
			return nil, err
		}
		list.list = append(list.list, item)
	}
}

func syntaxError(line int, msg string) error {
	return zerr.With(zerr.Wrap(domain.ErrSyntax, msg), "line", strconv.Itoa(line))
}
