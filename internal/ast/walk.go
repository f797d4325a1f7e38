package ast

import "fmt"

// Children returns the direct children of n in source order. Nil optional
// children are omitted.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if !isNil(c) {
			out = append(out, c)
		}
	}
	switch n := n.(type) {
	case *File:
		for _, d := range n.Decls {
			add(d)
		}
	case *ClassDecl:
		add(n.Name)
		for _, tp := range n.TypeParams {
			add(tp)
		}
		add(n.Extends)
		for _, m := range n.Members {
			add(m)
		}
	case *FuncDecl:
		add(n.Name)
		for _, tp := range n.TypeParams {
			add(tp)
		}
		for _, p := range n.Params {
			add(p)
		}
		add(n.Result)
		add(n.Body)
	case *VarDecl:
		add(n.Name)
		add(n.Type)
		add(n.Value)
	case *Param:
		add(n.Name)
		add(n.Type)
	case *TypeParam:
		add(n.Name)

	case *BlockStmt:
		for _, s := range n.Stmts {
			add(s)
		}
	case *VarStmt:
		add(n.Decl)
	case *IfStmt:
		add(n.Cond)
		add(n.Then)
		add(n.Else)
	case *WhileStmt:
		add(n.Cond)
		add(n.Body)
	case *ForStmt:
		add(n.Var)
		add(n.Iter)
		add(n.Body)
	case *ReturnStmt:
		add(n.Value)
	case *ExprStmt:
		add(n.X)

	case *ParenExpr:
		add(n.X)
	case *UnaryExpr:
		add(n.X)
	case *BinaryExpr:
		add(n.X)
		add(n.Y)
	case *AssignExpr:
		add(n.Target)
		add(n.Value)
	case *CallExpr:
		add(n.Fun)
		for _, a := range n.Args {
			add(a)
		}
	case *IndexExpr:
		add(n.X)
		add(n.Index)
	case *MemberExpr:
		add(n.X)
		add(n.Name)
	case *ArrayLit:
		for _, e := range n.Elems {
			add(e)
		}
	case *NewExpr:
		add(n.Type)
		for _, a := range n.Args {
			add(a)
		}

	case *NamedType:
		add(n.Name)
	case *GenericType:
		add(n.Name)
		for _, a := range n.Args {
			add(a)
		}
	case *ArrayType:
		add(n.Elem)

	case *BadDecl, *BreakStmt, *ContinueStmt, *EmptyStmt, *BadStmt,
		*Ident, *BasicLit, *ThisExpr, *BadExpr, *BadType:
		// листья
	default:
		panic(fmt.Sprintf("ast: unexpected node type %T", n))
	}
	return out
}

// isNil catches typed nil pointers stored in interface fields.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *Ident:
		return v == nil
	case *BlockStmt:
		return v == nil
	case *VarDecl:
		return v == nil
	}
	return false
}

// Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children of
// node with w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses the tree depth-first in source order.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, c := range Children(node) {
		Walk(v, c)
	}
	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses the tree in source order, calling f for every node and
// then f(nil) after its children. Returning false skips the children.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}
