package ast

import (
	"charj/internal/source"
)

type (
	// NamedType: Name
	NamedType struct {
		Loc  source.Span
		Name *Ident
	}

	// GenericType: Name<Args>
	GenericType struct {
		Loc  source.Span
		Name *Ident
		Args []TypeExpr
	}

	// ArrayType: Elem[]
	ArrayType struct {
		Loc  source.Span
		Elem TypeExpr
	}

	BadType struct {
		Loc source.Span
	}
)

func (n *NamedType) Span() source.Span   { return n.Loc }
func (n *GenericType) Span() source.Span { return n.Loc }
func (n *ArrayType) Span() source.Span   { return n.Loc }
func (n *BadType) Span() source.Span     { return n.Loc }

func (*NamedType) typeNode()   {}
func (*GenericType) typeNode() {}
func (*ArrayType) typeNode()   {}
func (*BadType) typeNode()     {}
