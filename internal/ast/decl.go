package ast

import (
	"charj/internal/source"
)

type (
	// ClassDecl: class Name<T> extends Base { members }
	ClassDecl struct {
		Loc        source.Span
		Name       *Ident
		TypeParams []*TypeParam
		Extends    TypeExpr // nil when absent
		Members    []Decl   // *FuncDecl, *VarDecl or *BadDecl
	}

	// FuncDecl: fn name<T>(params): Result { body }
	FuncDecl struct {
		Loc        source.Span
		Name       *Ident
		TypeParams []*TypeParam
		Params     []*Param
		Result     TypeExpr // nil when absent
		Body       *BlockStmt
	}

	// VarDecl: var|val name: Type = value;
	VarDecl struct {
		Loc     source.Span
		Mutable bool // var
		Name    *Ident
		Type    TypeExpr // nil when absent
		Value   Expr     // nil when absent
	}

	// BadDecl covers text skipped while recovering from a syntax error.
	BadDecl struct {
		Loc source.Span
	}

	Param struct {
		Loc  source.Span
		Name *Ident
		Type TypeExpr
	}

	TypeParam struct {
		Loc  source.Span
		Name *Ident
	}
)

func (n *ClassDecl) Span() source.Span { return n.Loc }
func (n *FuncDecl) Span() source.Span  { return n.Loc }
func (n *VarDecl) Span() source.Span   { return n.Loc }
func (n *BadDecl) Span() source.Span   { return n.Loc }
func (n *Param) Span() source.Span     { return n.Loc }
func (n *TypeParam) Span() source.Span { return n.Loc }

func (*ClassDecl) declNode() {}
func (*FuncDecl) declNode()  {}
func (*VarDecl) declNode()   {}
func (*BadDecl) declNode()   {}

// Keyword returns "var" or "val".
func (n *VarDecl) Keyword() string {
	if n.Mutable {
		return "var"
	}
	return "val"
}
