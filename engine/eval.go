// Package engine implements the execution engine (spec.md §4.5, C6):
// pure per-row or per-partition computation over a row set — ranking
// with tie-break, windowed aggregation, expression evaluation, and mask
// application. A compiled AST interpreter replaces the source's dynamic
// string-rewrite-and-eval approach (Design Notes §9).
package engine

import (
	"regexp"
	"strings"

	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/ast"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/token"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/rowset"
	"github.com/AndreyKorabelnik/FS-SLCT-NODB/value"
	"github.com/shopspring/decimal"
)

// evalContext evaluates an expression AST against one row of a row set.
type evalContext struct {
	rs  *rowset.RowSet
	row int
}

// eval dispatches on node type. A divide-by-zero or type mismatch never
// raises: it becomes the null value, per spec.md §4.7's EvaluationError
// row ("evaluation failure...yields null").
func (c evalContext) eval(e ast.Expr) value.Value {
	switch n := e.(type) {
	case *ast.Ident:
		v, err := c.rs.Get(n.Name, c.row)
		if err != nil {
			return value.NullValue
		}
		return v
	case *ast.Literal:
		return evalLiteral(n)
	case *ast.ParenExpr:
		return c.eval(n.Expr)
	case *ast.UnaryExpr:
		return c.evalUnary(n)
	case *ast.BinaryExpr:
		return c.evalBinary(n)
	case *ast.InExpr:
		return c.evalIn(n)
	case *ast.BetweenExpr:
		return c.evalBetween(n)
	case *ast.LikeExpr:
		return c.evalLike(n)
	case *ast.IsExpr:
		return c.evalIs(n)
	default:
		return value.NullValue
	}
}

func evalLiteral(l *ast.Literal) value.Value {
	switch l.Type {
	case ast.LiteralNull:
		return value.NullValue
	case ast.LiteralInt, ast.LiteralFloat:
		d, err := decimal.NewFromString(l.Value)
		if err != nil {
			return value.NullValue
		}
		return value.NumberOf(d)
	case ast.LiteralString:
		return value.StringOf(l.Value)
	case ast.LiteralBool:
		return value.BoolOf(strings.EqualFold(l.Value, "true"))
	default:
		return value.NullValue
	}
}

func (c evalContext) evalUnary(n *ast.UnaryExpr) value.Value {
	operand := c.eval(n.Operand)
	switch n.Op {
	case token.NOT:
		if operand.IsNull() {
			return value.NullValue
		}
		return value.BoolOf(!operand.Truthy())
	case token.MINUS:
		if operand.Kind != value.Number {
			return value.NullValue
		}
		return value.NumberOf(operand.Num.Neg())
	case token.PLUS:
		if operand.Kind != value.Number {
			return value.NullValue
		}
		return operand
	default:
		return value.NullValue
	}
}

func (c evalContext) evalBinary(n *ast.BinaryExpr) value.Value {
	switch n.Op {
	case token.AND:
		return threeValuedAnd(c.eval(n.Left), c.eval(n.Right))
	case token.OR:
		return threeValuedOr(c.eval(n.Left), c.eval(n.Right))
	}

	left := c.eval(n.Left)
	right := c.eval(n.Right)

	switch n.Op {
	case token.CONCAT:
		if left.IsNull() || right.IsNull() {
			return value.NullValue
		}
		return value.StringOf(left.String() + right.String())
	case token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT:
		return evalArith(n.Op, left, right)
	case token.EQ:
		return compareEq(left, right)
	case token.NEQ:
		return negateBool(compareEq(left, right))
	case token.LT:
		return compareOrd(left, right, func(c int) bool { return c < 0 })
	case token.LTE:
		return compareOrd(left, right, func(c int) bool { return c <= 0 })
	case token.GT:
		return compareOrd(left, right, func(c int) bool { return c > 0 })
	case token.GTE:
		return compareOrd(left, right, func(c int) bool { return c >= 0 })
	default:
		return value.NullValue
	}
}

// threeValuedAnd/Or implement standard SQL three-valued logic: a null
// operand only determines the result when the other operand cannot.
func threeValuedAnd(a, b value.Value) value.Value {
	if (!a.IsNull() && a.Kind == value.Bool && !a.B) || (!b.IsNull() && b.Kind == value.Bool && !b.B) {
		return value.BoolOf(false)
	}
	if a.IsNull() || b.IsNull() {
		return value.NullValue
	}
	return value.BoolOf(a.Truthy() && b.Truthy())
}

func threeValuedOr(a, b value.Value) value.Value {
	if (!a.IsNull() && a.Kind == value.Bool && a.B) || (!b.IsNull() && b.Kind == value.Bool && b.B) {
		return value.BoolOf(true)
	}
	if a.IsNull() || b.IsNull() {
		return value.NullValue
	}
	return value.BoolOf(a.Truthy() || b.Truthy())
}

func negateBool(v value.Value) value.Value {
	if v.IsNull() || v.Kind != value.Bool {
		return value.NullValue
	}
	return value.BoolOf(!v.B)
}

func evalArith(op token.Token, left, right value.Value) value.Value {
	if left.IsNull() || right.IsNull() || left.Kind != value.Number || right.Kind != value.Number {
		return value.NullValue
	}
	switch op {
	case token.PLUS:
		return value.NumberOf(left.Num.Add(right.Num))
	case token.MINUS:
		return value.NumberOf(left.Num.Sub(right.Num))
	case token.ASTERISK:
		return value.NumberOf(left.Num.Mul(right.Num))
	case token.SLASH:
		if right.Num.IsZero() {
			// divide-by-zero is treated as null, never raised (spec.md §7).
			return value.NullValue
		}
		return value.NumberOf(left.Num.Div(right.Num))
	case token.PERCENT:
		if right.Num.IsZero() {
			return value.NullValue
		}
		return value.NumberOf(left.Num.Mod(right.Num))
	default:
		return value.NullValue
	}
}

// compareEq implements = across kinds: a type mismatch evaluates to
// null (spec.md §4.7), not an error.
func compareEq(left, right value.Value) value.Value {
	if left.IsNull() || right.IsNull() {
		return value.NullValue
	}
	if left.Kind != right.Kind {
		return value.NullValue
	}
	return value.BoolOf(value.Equal(left, right))
}

func compareOrd(left, right value.Value, ok func(int) bool) value.Value {
	if left.IsNull() || right.IsNull() {
		return value.NullValue
	}
	if left.Kind != right.Kind {
		return value.NullValue
	}
	return value.BoolOf(ok(value.Compare(left, right)))
}

func (c evalContext) evalIn(n *ast.InExpr) value.Value {
	left := c.eval(n.Expr)
	if left.IsNull() {
		return value.NullValue
	}
	found := false
	sawNull := false
	for _, item := range n.List.Values {
		v := c.eval(item)
		if v.IsNull() {
			sawNull = true
			continue
		}
		if v.Kind == left.Kind && value.Equal(v, left) {
			found = true
			break
		}
	}
	result := found
	if n.Not {
		result = !found
	}
	if !found && sawNull {
		// SQL semantics: unknown membership against a list containing
		// NULL when no match was found is null, not false.
		return value.NullValue
	}
	return value.BoolOf(result)
}

func (c evalContext) evalBetween(n *ast.BetweenExpr) value.Value {
	x := c.eval(n.Expr)
	lo := c.eval(n.Low)
	hi := c.eval(n.High)
	if x.IsNull() || lo.IsNull() || hi.IsNull() {
		return value.NullValue
	}
	inRange := value.Compare(x, lo) >= 0 && value.Compare(x, hi) <= 0
	if n.Not {
		inRange = !inRange
	}
	return value.BoolOf(inRange)
}

func (c evalContext) evalLike(n *ast.LikeExpr) value.Value {
	x := c.eval(n.Expr)
	pat := c.eval(n.Pattern)
	if x.IsNull() || pat.IsNull() || x.Kind != value.String || pat.Kind != value.String {
		return value.NullValue
	}
	matched := likeMatch(x.Str, pat.Str)
	if n.Not {
		matched = !matched
	}
	return value.BoolOf(matched)
}

func (c evalContext) evalIs(n *ast.IsExpr) value.Value {
	x := c.eval(n.Expr)
	isNull := x.IsNull()
	if n.Not {
		isNull = !isNull
	}
	return value.BoolOf(isNull)
}

// likeMatch implements SQL LIKE: % matches any sequence, _ matches any
// single character.
func likeMatch(s, pattern string) bool {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	re, err := regexp.Compile("(?s)" + b.String())
	if err != nil {
		return false
	}
	return re.MatchString(s)
}
