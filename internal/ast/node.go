package ast

import (
	"charj/internal/source"
)

// Node is implemented by every tree node.
type Node interface {
	Span() source.Span
}

// Decl is a top-level or class-member declaration.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement inside a function body.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// TypeExpr is a type annotation.
type TypeExpr interface {
	Node
	typeNode()
}

// File is the root of a parsed buffer. Its span covers the whole buffer.
type File struct {
	Loc   source.Span
	Decls []Decl
}

func (n *File) Span() source.Span { return n.Loc }
