// Package sexpr parses the tiny textual node notation bltctl build reads
// into pkg/node trees. Grammar:
//
//	node  := attrs? atom
//	attrs := "@(" node ("," node)* ")"
//	atom  := identifier | string | number | call
//	call  := "(" node node* ")"
//
// An identifier is a bare run of letters, digits, '_', '-', and the
// symbol characters "+*/!?<>=.$%&", not starting with a digit or '-'. A string
// is a Go-style double-quoted literal with \n \t \r \" \\ escapes. A
// number is an optional leading '-' followed by one or more decimal
// digits, parsed as an int64 literal. ';' starts a line comment.
//
// This is the text-format counterpart to internal/codec's binary
// pipeline: a lexer and recursive-descent parser feeding a forest of
// pkg/node trees, generalized from internal/regtext's line-oriented
// .reg text format to the s-expression shape BLT's own node algebra
// naturally prints as.
package sexpr

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokLParen
	tokRParen
	tokAt
	tokComma
)

// token is a single lexed unit. For tokString, text holds the unescaped
// value rather than the raw source bytes.
type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) errorf(format string, args ...any) error {
	return fmt.Errorf("sexpr: line %d, col %d: %s", l.line, l.col, fmt.Sprintf(format, args...))
}

func (l *lexer) peekByte() (byte, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

// advance consumes the current byte and returns it. Only call when
// peekByte reported ok.
func (l *lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

func (l *lexer) skipSpaceAndComments() {
	for {
		b, ok := l.peekByte()
		if !ok {
			return
		}
		if b == ';' {
			for {
				b, ok := l.peekByte()
				if !ok || b == '\n' {
					break
				}
				l.advance()
			}
			continue
		}
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			l.advance()
			continue
		}
		return
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	switch {
	case b == '_':
		return true
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z':
		return true
	default:
		return strings.IndexByte("+*/!?<>=.$%&", b) >= 0
	}
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || isDigit(b) || b == '-'
}

// next scans and returns the next token, advancing past it.
func (l *lexer) next() (token, error) {
	l.skipSpaceAndComments()
	line, col := l.line, l.col
	b, ok := l.peekByte()
	if !ok {
		return token{kind: tokEOF, text: "<eof>", line: line, col: col}, nil
	}

	switch b {
	case '(':
		l.advance()
		return token{kind: tokLParen, text: "(", line: line, col: col}, nil
	case ')':
		l.advance()
		return token{kind: tokRParen, text: ")", line: line, col: col}, nil
	case '@':
		l.advance()
		return token{kind: tokAt, text: "@", line: line, col: col}, nil
	case ',':
		l.advance()
		return token{kind: tokComma, text: ",", line: line, col: col}, nil
	case '"':
		return l.lexString(line, col)
	}

	if b == '-' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
		return l.lexNumber(line, col), nil
	}
	if isDigit(b) {
		return l.lexNumber(line, col), nil
	}
	if isIdentStart(b) {
		return l.lexIdent(line, col), nil
	}

	return token{}, l.errorf("unexpected character %q", rune(b))
}

func (l *lexer) lexIdent(line, col int) token {
	start := l.pos
	for {
		b, ok := l.peekByte()
		if !ok || !isIdentCont(b) {
			break
		}
		l.advance()
	}
	return token{kind: tokIdent, text: l.src[start:l.pos], line: line, col: col}
}

func (l *lexer) lexNumber(line, col int) token {
	start := l.pos
	if b, ok := l.peekByte(); ok && b == '-' {
		l.advance()
	}
	for {
		b, ok := l.peekByte()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}
	return token{kind: tokNumber, text: l.src[start:l.pos], line: line, col: col}
}

func (l *lexer) lexString(line, col int) (token, error) {
	l.advance() // opening quote
	var b strings.Builder
	for {
		c, ok := l.peekByte()
		if !ok {
			return token{}, l.errorf("unterminated string starting at line %d, col %d", line, col)
		}
		if c == '"' {
			l.advance()
			break
		}
		if c == '\\' {
			l.advance()
			esc, ok := l.peekByte()
			if !ok {
				return token{}, l.errorf("unterminated escape in string starting at line %d, col %d", line, col)
			}
			l.advance()
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				return token{}, l.errorf("unknown escape %q", rune(esc))
			}
			continue
		}
		l.advance()
		b.WriteByte(c)
	}
	return token{kind: tokString, text: b.String(), line: line, col: col}, nil
}
