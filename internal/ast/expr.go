package ast

import (
	"charj/internal/source"
)

// LitKind enumerates literal kinds.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitBool
	LitNull
)

func (k LitKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	case LitString:
		return "string"
	case LitBool:
		return "bool"
	case LitNull:
		return "null"
	}
	return "unknown"
}

type (
	// Ident is an identifier. Name is NFC-normalized; the raw spelling is the
	// source text under Loc.
	Ident struct {
		Loc  source.Span
		Name string
	}

	// BasicLit is a literal. Value holds the decoded value:
	// uint64 (int), float64 (float), string (string), bool (bool), nil (null).
	// Value is nil for numeric literals the lexer reported as malformed.
	BasicLit struct {
		Loc   source.Span
		Kind  LitKind
		Raw   string
		Value any
	}

	ThisExpr struct {
		Loc source.Span
	}

	ParenExpr struct {
		Loc source.Span
		X   Expr
	}

	UnaryExpr struct {
		Loc source.Span
		Op  UnaryOp
		X   Expr
	}

	BinaryExpr struct {
		Loc source.Span
		Op  BinaryOp
		X   Expr
		Y   Expr
	}

	// AssignExpr is right-associative: a = b = c is a = (b = c).
	AssignExpr struct {
		Loc    source.Span
		Op     AssignOp
		Target Expr
		Value  Expr
	}

	CallExpr struct {
		Loc  source.Span
		Fun  Expr
		Args []Expr
	}

	IndexExpr struct {
		Loc   source.Span
		X     Expr
		Index Expr
	}

	MemberExpr struct {
		Loc  source.Span
		X    Expr
		Name *Ident
	}

	ArrayLit struct {
		Loc   source.Span
		Elems []Expr
	}

	// NewExpr: new Type(args)
	NewExpr struct {
		Loc  source.Span
		Type TypeExpr
		Args []Expr
	}

	// BadExpr stands in for an expression that failed to parse.
	BadExpr struct {
		Loc source.Span
	}
)

func (n *Ident) Span() source.Span      { return n.Loc }
func (n *BasicLit) Span() source.Span   { return n.Loc }
func (n *ThisExpr) Span() source.Span   { return n.Loc }
func (n *ParenExpr) Span() source.Span  { return n.Loc }
func (n *UnaryExpr) Span() source.Span  { return n.Loc }
func (n *BinaryExpr) Span() source.Span { return n.Loc }
func (n *AssignExpr) Span() source.Span { return n.Loc }
func (n *CallExpr) Span() source.Span   { return n.Loc }
func (n *IndexExpr) Span() source.Span  { return n.Loc }
func (n *MemberExpr) Span() source.Span { return n.Loc }
func (n *ArrayLit) Span() source.Span   { return n.Loc }
func (n *NewExpr) Span() source.Span    { return n.Loc }
func (n *BadExpr) Span() source.Span    { return n.Loc }

func (*Ident) exprNode()      {}
func (*BasicLit) exprNode()   {}
func (*ThisExpr) exprNode()   {}
func (*ParenExpr) exprNode()  {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*AssignExpr) exprNode() {}
func (*CallExpr) exprNode()   {}
func (*IndexExpr) exprNode()  {}
func (*MemberExpr) exprNode() {}
func (*ArrayLit) exprNode()   {}
func (*NewExpr) exprNode()    {}
func (*BadExpr) exprNode()    {}
