// Package parser provides a recursive descent parser for the selection
// expression grammar (spec.md §4.1): a single Boolean/arithmetic expression
// over identifiers and literals, not a full SQL statement grammar.
package parser

import (
	"fmt"

	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/ast"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/lexer"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/token"
)

// Parser parses a single expression.
type Parser struct {
	lexer  *lexer.Lexer
	errors []ParseError
	cur    token.Item // current token
}

// ParseError represents a parse error with position.
type ParseError struct {
	Pos     token.Pos
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// New creates a new parser for the given input.
func New(input string) *Parser {
	p := &Parser{
		lexer: lexer.New(input),
	}
	p.advance() // prime the first token
	return p
}

// ParseExpr parses a complete expression and verifies that all input was
// consumed. This is the sole entry point: filter and attribute expressions
// are parsed once at universe/selection load time (spec.md §4.1), not on a
// hot per-query path, so there is no statement-level concept to parse and
// no pooling to justify.
func ParseExpr(input string) (ast.Expr, error) {
	p := New(input)
	expr := p.parseExpr()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	if !p.curIs(token.EOF) {
		p.errorf("unexpected token %v after expression", p.cur.Type)
		return nil, p.errors[0]
	}
	return expr, nil
}

// Token navigation methods

func (p *Parser) advance() {
	p.cur = p.lexer.Next()
}

func (p *Parser) curIs(t token.Token) bool {
	return p.cur.Type == t
}

func (p *Parser) peek() token.Item {
	return p.lexer.Peek()
}

func (p *Parser) peekIs(t token.Token) bool {
	return p.peek().Type == t
}

func (p *Parser) expect(t token.Token) bool {
	if p.curIs(t) {
		p.advance()
		return true
	}
	p.errorf("expected %v, got %v", t, p.cur.Type)
	return false
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, ParseError{
		Pos:     p.cur.Pos,
		Message: fmt.Sprintf(format, args...),
	})
}
