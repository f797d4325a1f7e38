package ast

import (
	"fmt"
	"strconv"
)

// Attr is a named scalar property of a node, used by tree printers.
type Attr struct {
	Key   string
	Value string
}

// KindName returns the node type name without the package prefix.
func KindName(n Node) string {
	return fmt.Sprintf("%T", n)[len("*ast."):]
}

// Attrs lists the scalar properties of n that are not child nodes.
func Attrs(n Node) []Attr {
	switch n := n.(type) {
	case *Ident:
		return []Attr{{"name", strconv.Quote(n.Name)}}
	case *BasicLit:
		return []Attr{{"kind", n.Kind.String()}, {"raw", n.Raw}}
	case *VarDecl:
		return []Attr{{"keyword", n.Keyword()}}
	case *UnaryExpr:
		return []Attr{{"op", n.Op.String()}}
	case *BinaryExpr:
		return []Attr{{"op", n.Op.String()}}
	case *AssignExpr:
		return []Attr{{"op", n.Op.String()}}
	}
	return nil
}
