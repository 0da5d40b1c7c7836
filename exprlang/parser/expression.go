package parser

import (
	"strings"

	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/ast"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/token"
)

// Operator precedence levels (higher = tighter binding). This table
// implements the 9-level grammar of spec.md §4.1.
const (
	precLowest     = 0
	precOr         = 1 // OR
	precAnd        = 2 // AND
	precBetween    = 3 // BETWEEN / NOT BETWEEN
	precEquality   = 4 // =, !=, <>, IS, IN, NOT IN, LIKE, NOT LIKE
	precComparison = 5 // <, <=, >, >=
	precAdditive   = 6 // +, - (binary)
	precMultiply   = 7 // *, /, %
	precConcat     = 8 // ||
	precUnary      = 9 // +, -, NOT (prefix)
	precHighest    = 10
)

// precedence returns the left-binding precedence of a binary operator, or
// precLowest if t is not a binary operator.
func precedence(t token.Token) int {
	switch t {
	case token.OR:
		return precOr
	case token.AND:
		return precAnd
	case token.BETWEEN:
		return precBetween
	case token.EQ, token.NEQ, token.IS, token.IN, token.LIKE:
		return precEquality
	case token.LT, token.LTE, token.GT, token.GTE:
		return precComparison
	case token.PLUS, token.MINUS:
		return precAdditive
	case token.ASTERISK, token.SLASH, token.PERCENT:
		return precMultiply
	case token.CONCAT:
		return precConcat
	default:
		return precLowest
	}
}

// parseExpr parses a complete expression at the lowest precedence.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseExprPrec(precLowest)
}

// parseExprPrec implements precedence-climbing: it parses a primary/unary
// term, then repeatedly folds in binary and special-form operators whose
// precedence exceeds minPrec.
func (p *Parser) parseExprPrec(minPrec int) ast.Expr {
	left := p.parseUnary()
	if left == nil {
		return nil
	}

	for {
		if left == nil {
			return nil
		}

		not := false
		tokType := p.cur.Type

		// NOT IN / NOT BETWEEN / NOT LIKE: the NOT is a prefix on a
		// special form, not a standalone unary operator, at this position.
		if tokType == token.NOT {
			switch p.peek().Type {
			case token.IN, token.BETWEEN, token.LIKE:
				not = true
				p.advance()
				tokType = p.cur.Type
			default:
				return left
			}
		}

		switch tokType {
		case token.IS:
			if precEquality <= minPrec {
				return left
			}
			left = p.parseIsExpr(left)
		case token.IN:
			if precEquality <= minPrec {
				return left
			}
			left = p.parseInExpr(left, not)
		case token.LIKE:
			if precEquality <= minPrec {
				return left
			}
			left = p.parseLikeExpr(left, not)
		case token.BETWEEN:
			if precBetween <= minPrec {
				return left
			}
			left = p.parseBetweenExpr(left, not)
		default:
			prec := precedence(tokType)
			if prec == precLowest || prec <= minPrec {
				return left
			}
			op := tokType
			pos := left.Pos()
			p.advance()
			right := p.parseExprPrec(prec + 1) // +1 enforces left-associativity
			if right == nil {
				return nil
			}
			left = &ast.BinaryExpr{StartPos: pos, EndPos: right.End(), Op: op, Left: left, Right: right}
		}
	}
}

// parseUnary parses a unary prefix operator (+, -, NOT) or falls through
// to a primary expression.
func (p *Parser) parseUnary() ast.Expr {
	switch p.cur.Type {
	case token.NOT:
		pos := p.cur.Pos
		p.advance()
		// NOT binds looser than comparison/BETWEEN/IN/LIKE but tighter
		// than AND/OR, so its operand must be parsed at precAnd: "NOT Y
		// LIKE 'foo%'" is "NOT (Y LIKE 'foo%')", not "(NOT Y) LIKE 'foo%'".
		operand := p.parseExprPrec(precAnd)
		if operand == nil {
			return nil
		}
		// A prefix NOT directly in front of a [NOT] LIKE/IN/BETWEEN
		// predicate folds into that predicate's own Not flag, the same
		// AST shape the infix "x NOT LIKE/IN/BETWEEN y" form produces,
		// rather than wrapping it in an extra UnaryExpr layer.
		switch o := operand.(type) {
		case *ast.LikeExpr:
			o.Not = !o.Not
			o.StartPos = pos
			return o
		case *ast.InExpr:
			o.Not = !o.Not
			o.StartPos = pos
			return o
		case *ast.BetweenExpr:
			o.Not = !o.Not
			o.StartPos = pos
			return o
		}
		return &ast.UnaryExpr{StartPos: pos, EndPos: operand.End(), Op: token.NOT, Operand: operand}
	case token.MINUS:
		pos := p.cur.Pos
		p.advance()
		operand := p.parseExprPrec(precUnary)
		if operand == nil {
			return nil
		}
		return &ast.UnaryExpr{StartPos: pos, EndPos: operand.End(), Op: token.MINUS, Operand: operand}
	case token.PLUS:
		pos := p.cur.Pos
		p.advance()
		operand := p.parseExprPrec(precUnary)
		if operand == nil {
			return nil
		}
		return &ast.UnaryExpr{StartPos: pos, EndPos: operand.End(), Op: token.PLUS, Operand: operand}
	default:
		return p.parsePrimary()
	}
}

// parsePrimary parses a literal, identifier, or parenthesized expression.
func (p *Parser) parsePrimary() ast.Expr {
	switch p.cur.Type {
	case token.INT:
		return p.parseLiteral(ast.LiteralInt)
	case token.FLOAT:
		return p.parseLiteral(ast.LiteralFloat)
	case token.STRING:
		return p.parseLiteral(ast.LiteralString)
	case token.NULL:
		return p.parseLiteral(ast.LiteralNull)
	case token.TRUE, token.FALSE:
		return p.parseLiteral(ast.LiteralBool)
	case token.IDENT:
		pos := p.cur.Pos
		name := p.cur.Value
		if !p.cur.Quoted {
			// Unquoted attribute codes are case-folded to uppercase so
			// they resolve against the universe the same way ioadapters
			// upper-cases CSV headers (spec.md §4.1/§6).
			name = strings.ToUpper(name)
		}
		p.advance()
		return &ast.Ident{StartPos: pos, EndPos: pos, Name: name}
	case token.LPAREN:
		return p.parseParenOrValueList()
	default:
		p.errorf("unexpected token %v in expression", p.cur.Type)
		p.advance()
		return nil
	}
}

func (p *Parser) parseLiteral(lt ast.LiteralType) ast.Expr {
	pos := p.cur.Pos
	val := p.cur.Value
	p.advance()
	return &ast.Literal{StartPos: pos, EndPos: pos, Type: lt, Value: val}
}

// parseParenOrValueList parses either a single parenthesized expression or
// a value list (e, e, …); the latter is only meaningful as the right-hand
// side of IN, but is represented uniformly so the grammar stays context
// free at this point.
func (p *Parser) parseParenOrValueList() ast.Expr {
	pos := p.cur.Pos
	p.advance() // consume '('

	first := p.parseExpr()
	if first == nil {
		return nil
	}

	if p.curIs(token.COMMA) {
		values := []ast.Expr{first}
		for p.curIs(token.COMMA) {
			p.advance()
			v := p.parseExpr()
			if v == nil {
				return nil
			}
			values = append(values, v)
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
		endPos := p.cur.Pos
		return &ast.ValueList{StartPos: pos, EndPos: endPos, Values: values}
	}

	if !p.expect(token.RPAREN) {
		return nil
	}
	endPos := p.cur.Pos
	return &ast.ParenExpr{StartPos: pos, EndPos: endPos, Expr: first}
}

func (p *Parser) parseIsExpr(left ast.Expr) ast.Expr {
	pos := left.Pos()
	p.advance() // consume IS

	not := false
	if p.curIs(token.NOT) {
		not = true
		p.advance()
	}

	if !p.expect(token.NULL) {
		return nil
	}

	endPos := p.cur.Pos
	return &ast.IsExpr{StartPos: pos, EndPos: endPos, Expr: left, Not: not, What: ast.IsNull}
}

func (p *Parser) parseInExpr(left ast.Expr, not bool) ast.Expr {
	pos := left.Pos()
	p.advance() // consume IN

	if !p.curIs(token.LPAREN) {
		p.errorf("expected ( after IN, got %v", p.cur.Type)
		return nil
	}
	listPos := p.cur.Pos
	p.advance() // consume '('

	var values []ast.Expr
	for {
		v := p.parseExpr()
		if v == nil {
			return nil
		}
		values = append(values, v)
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}

	if !p.expect(token.RPAREN) {
		return nil
	}
	endPos := p.cur.Pos
	list := &ast.ValueList{StartPos: listPos, EndPos: endPos, Values: values}
	return &ast.InExpr{StartPos: pos, EndPos: endPos, Expr: left, Not: not, List: list}
}

func (p *Parser) parseBetweenExpr(left ast.Expr, not bool) ast.Expr {
	pos := left.Pos()
	p.advance() // consume BETWEEN

	low := p.parseExprPrec(precBetween + 1)
	if low == nil {
		return nil
	}
	if !p.expect(token.AND) {
		return nil
	}
	high := p.parseExprPrec(precBetween + 1)
	if high == nil {
		return nil
	}
	return &ast.BetweenExpr{StartPos: pos, EndPos: high.End(), Expr: left, Not: not, Low: low, High: high}
}

func (p *Parser) parseLikeExpr(left ast.Expr, not bool) ast.Expr {
	pos := left.Pos()
	p.advance() // consume LIKE

	pattern := p.parseExprPrec(precEquality + 1)
	if pattern == nil {
		return nil
	}
	return &ast.LikeExpr{StartPos: pos, EndPos: pattern.End(), Expr: left, Pattern: pattern, Not: not}
}
