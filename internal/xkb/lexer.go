package xkb

import (
	"bytes"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokKeyName
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	line int
}

type lexer struct {
	src  []byte
	pos  int
	line int
}

func (l *lexer) next() (token, error) {
	l.skipSpaceAndComments()

	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line}, nil
	}

	c := l.src[l.pos]
	switch {
	case c == '"':
		return l.lexString()
	case c == '<':
		end := bytes.IndexByte(l.src[l.pos:], '>')
		if end < 0 {
			return token{}, &ParseError{Line: l.line, Msg: "unterminated key name"}
		}

		tok := token{kind: tokKeyName, text: string(l.src[l.pos+1 : l.pos+end]), line: l.line}
		l.pos += end + 1

		return tok, nil
	case isIdentByte(c):
		start := l.pos
		for l.pos < len(l.src) && isIdentByte(l.src[l.pos]) {
			l.pos++
		}

		return token{kind: tokIdent, text: string(l.src[start:l.pos]), line: l.line}, nil
	default:
		l.pos++
		return token{kind: tokPunct, text: string(c), line: l.line}, nil
	}
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '#' || (c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/'):
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *lexer) lexString() (token, error) {
	line := l.line
	l.pos++ // opening quote

	var sb strings.Builder

	for l.pos < len(l.src) {
		c := l.src[l.pos]
		l.pos++

		switch c {
		case '"':
			return token{kind: tokString, text: sb.String(), line: line}, nil
		case '\n':
			l.line++
			sb.WriteByte(c)
		case '\\':
			if l.pos >= len(l.src) {
				break
			}

			esc := l.src[l.pos]
			l.pos++

			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(esc)
			}
		default:
			sb.WriteByte(c)
		}
	}

	return token{}, &ParseError{Line: line, Msg: "unterminated string"}
}

func isIdentByte(c byte) bool {
	return isAlnum(c) || c == '_' || c == '+' || c == '-' || c == '.' || c >= 0x80
}
