// Package ast defines the abstract syntax tree for the selection
// expression grammar (spec.md §4.1): a SQL-subset Boolean/arithmetic
// expression language over identifiers and literals, not a full SQL
// statement grammar.
package ast

import "github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/token"

// Node is the base interface for all AST nodes.
type Node interface {
	Pos() token.Pos
	End() token.Pos
}

// Expr represents an expression.
type Expr interface {
	Node
	exprNode()
}
