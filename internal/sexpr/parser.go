package sexpr

import (
	"fmt"
	"strconv"

	"github.com/jonathanvdc/blt/pkg/node"
)

// Parse reads src as a sequence of top-level nodes, in source order.
// src must contain nothing but nodes separated by whitespace or ';'
// comments.
func Parse(src string) ([]*node.Node, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var forest []*node.Node
	for p.tok.kind != tokEOF {
		n, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		forest = append(forest, n)
	}
	return forest, nil
}

type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("sexpr: line %d, col %d: %s", p.tok.line, p.tok.col, fmt.Sprintf(format, args...))
}

// expect consumes the current token if it has kind k, describing what
// was expected in the error otherwise.
func (p *parser) expect(k tokenKind, what string) error {
	if p.tok.kind != k {
		return p.errorf("expected %s, got %q", what, p.tok.text)
	}
	return p.advance()
}

// parseNode parses an optional "@(...)" attribute prefix followed by one atom.
func (p *parser) parseNode() (*node.Node, error) {
	var attrs []*node.Node
	if p.tok.kind == tokAt {
		var err error
		attrs, err = p.parseAttrs()
		if err != nil {
			return nil, err
		}
	}
	n, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if len(attrs) > 0 {
		n = n.WithAttrs(attrs...)
	}
	return n, nil
}

func (p *parser) parseAttrs() ([]*node.Node, error) {
	if err := p.expect(tokAt, "'@'"); err != nil {
		return nil, err
	}
	if err := p.expect(tokLParen, "'(' after '@'"); err != nil {
		return nil, err
	}

	var attrs []*node.Node
	for p.tok.kind != tokRParen {
		if p.tok.kind == tokEOF {
			return nil, p.errorf("unterminated attribute list, missing ')'")
		}
		n, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, n)
		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.expect(tokRParen, "')' closing attribute list"); err != nil {
		return nil, err
	}
	if len(attrs) == 0 {
		return nil, p.errorf("attribute list must name at least one node")
	}
	return attrs, nil
}

func (p *parser) parseAtom() (*node.Node, error) {
	switch p.tok.kind {
	case tokIdent:
		name := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return node.NewIdentifier(name), nil

	case tokString:
		s := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return node.NewLiteral(s), nil

	case tokNumber:
		text := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("sexpr: invalid integer literal %q: %w", text, err)
		}
		return node.NewLiteral(v), nil

	case tokLParen:
		return p.parseCall()

	default:
		return nil, p.errorf("expected identifier, string, number, or '(', got %q", p.tok.text)
	}
}

func (p *parser) parseCall() (*node.Node, error) {
	openLine, openCol := p.tok.line, p.tok.col
	if err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}
	if p.tok.kind == tokRParen {
		return nil, fmt.Errorf("sexpr: line %d, col %d: call has no target", openLine, openCol)
	}

	target, err := p.parseNode()
	if err != nil {
		return nil, err
	}

	var args []*node.Node
	for p.tok.kind != tokRParen {
		if p.tok.kind == tokEOF {
			return nil, fmt.Errorf("sexpr: line %d, col %d: unterminated call, missing ')'", openLine, openCol)
		}
		a, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	if err := p.expect(tokRParen, "')' closing call"); err != nil {
		return nil, err
	}
	return node.NewCall(target, args...), nil
}
