package ast

import "github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/token"

// Ident represents a reference to a universe attribute code.
// Identifiers are case-folded to uppercase by the parser (spec.md §4.1).
type Ident struct {
	StartPos token.Pos
	EndPos   token.Pos
	Name     string
}

func (*Ident) exprNode()        {}
func (i *Ident) Pos() token.Pos { return i.StartPos }
func (i *Ident) End() token.Pos { return i.EndPos }

// LiteralType indicates the type of a literal value.
type LiteralType int

const (
	LiteralNull LiteralType = iota
	LiteralInt
	LiteralFloat
	LiteralString
	LiteralBool
)

// Literal represents a literal value: numeric, string, NULL, or boolean.
type Literal struct {
	StartPos token.Pos
	EndPos   token.Pos
	Type     LiteralType
	Value    string
}

func (*Literal) exprNode()        {}
func (l *Literal) Pos() token.Pos { return l.StartPos }
func (l *Literal) End() token.Pos { return l.EndPos }

// BinaryExpr represents a binary operation: arithmetic, concatenation,
// comparison, equality, AND, or OR.
type BinaryExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Op       token.Token
	Left     Expr
	Right    Expr
}

func (*BinaryExpr) exprNode()        {}
func (b *BinaryExpr) Pos() token.Pos { return b.StartPos }
func (b *BinaryExpr) End() token.Pos { return b.EndPos }

// UnaryExpr represents a unary prefix operation: +, -, or NOT.
type UnaryExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Op       token.Token
	Operand  Expr
}

func (*UnaryExpr) exprNode()        {}
func (u *UnaryExpr) Pos() token.Pos { return u.StartPos }
func (u *UnaryExpr) End() token.Pos { return u.EndPos }

// ParenExpr represents a parenthesized expression.
type ParenExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Expr     Expr
}

func (*ParenExpr) exprNode()        {}
func (p *ParenExpr) Pos() token.Pos { return p.StartPos }
func (p *ParenExpr) End() token.Pos { return p.EndPos }

// ValueList represents a parenthesized value list: (e, e, …).
type ValueList struct {
	StartPos token.Pos
	EndPos   token.Pos
	Values   []Expr
}

func (*ValueList) exprNode()        {}
func (v *ValueList) Pos() token.Pos { return v.StartPos }
func (v *ValueList) End() token.Pos { return v.EndPos }

// InExpr represents [NOT] IN (list).
type InExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Expr     Expr
	Not      bool
	List     *ValueList
}

func (*InExpr) exprNode()        {}
func (i *InExpr) Pos() token.Pos { return i.StartPos }
func (i *InExpr) End() token.Pos { return i.EndPos }

// BetweenExpr represents [NOT] BETWEEN x AND y.
type BetweenExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Expr     Expr
	Not      bool
	Low      Expr
	High     Expr
}

func (*BetweenExpr) exprNode()        {}
func (b *BetweenExpr) Pos() token.Pos { return b.StartPos }
func (b *BetweenExpr) End() token.Pos { return b.EndPos }

// LikeExpr represents [NOT] LIKE '…'.
type LikeExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Expr     Expr
	Pattern  Expr
	Not      bool
}

func (*LikeExpr) exprNode()        {}
func (l *LikeExpr) Pos() token.Pos { return l.StartPos }
func (l *LikeExpr) End() token.Pos { return l.EndPos }

// IsType indicates what an IS expression tests for.
type IsType int

const (
	IsNull IsType = iota
)

// IsExpr represents IS [NOT] NULL.
type IsExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Expr     Expr
	Not      bool
	What     IsType
}

func (*IsExpr) exprNode()        {}
func (i *IsExpr) Pos() token.Pos { return i.StartPos }
func (i *IsExpr) End() token.Pos { return i.EndPos }
