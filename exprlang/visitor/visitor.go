// Package visitor provides AST traversal utilities for the selection
// expression grammar (spec.md §4.1).
package visitor

import "github.com/AndreyKorabelnik/FS-SLCT-NODB/exprlang/ast"

// Visitor is the interface for AST traversal.
type Visitor interface {
	Visit(node ast.Node) Visitor
}

// Walk traverses an AST in depth-first order.
func Walk(v Visitor, node ast.Node) {
	if node == nil {
		return
	}
	if v = v.Visit(node); v == nil {
		return
	}
	walkChildren(v, node)
}

func walkChildren(v Visitor, node ast.Node) {
	switch n := node.(type) {
	case *ast.BinaryExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *ast.UnaryExpr:
		Walk(v, n.Operand)

	case *ast.ParenExpr:
		Walk(v, n.Expr)

	case *ast.ValueList:
		for _, val := range n.Values {
			Walk(v, val)
		}

	case *ast.InExpr:
		Walk(v, n.Expr)
		if n.List != nil {
			Walk(v, n.List)
		}

	case *ast.BetweenExpr:
		Walk(v, n.Expr)
		Walk(v, n.Low)
		Walk(v, n.High)

	case *ast.LikeExpr:
		Walk(v, n.Expr)
		Walk(v, n.Pattern)

	case *ast.IsExpr:
		Walk(v, n.Expr)

	case *ast.Ident, *ast.Literal:
		// leaf nodes: nothing to walk
	}
}

// WalkFunc is a convenience wrapper that calls a function for each node.
func WalkFunc(node ast.Node, fn func(ast.Node) bool) {
	Walk(&funcVisitor{fn: fn}, node)
}

type funcVisitor struct {
	fn func(ast.Node) bool
}

func (v *funcVisitor) Visit(node ast.Node) Visitor {
	if v.fn(node) {
		return v
	}
	return nil
}

// Inspect calls f for each node in the AST. If f returns false, children
// are not visited.
func Inspect(node ast.Node, f func(ast.Node) bool) {
	WalkFunc(node, f)
}

// Identifiers returns the set of attribute codes referenced by expr
// (spec.md §4.1's identifiers(ast) contract). It never fails on a
// well-formed AST.
func Identifiers(expr ast.Expr) map[string]struct{} {
	ids := make(map[string]struct{})
	Inspect(expr, func(n ast.Node) bool {
		if ident, ok := n.(*ast.Ident); ok {
			ids[ident.Name] = struct{}{}
		}
		return true
	})
	return ids
}
