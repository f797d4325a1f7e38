package ast

import (
	"charj/internal/source"
)

type (
	BlockStmt struct {
		Loc   source.Span
		Stmts []Stmt
	}

	// VarStmt is a local variable declaration.
	VarStmt struct {
		Decl *VarDecl
	}

	IfStmt struct {
		Loc  source.Span
		Cond Expr
		Then Stmt
		Else Stmt // nil when absent
	}

	WhileStmt struct {
		Loc  source.Span
		Cond Expr
		Body Stmt
	}

	// ForStmt: for (Var in Iter) Body
	ForStmt struct {
		Loc  source.Span
		Var  *Ident
		Iter Expr
		Body Stmt
	}

	ReturnStmt struct {
		Loc   source.Span
		Value Expr // nil for bare return
	}

	BreakStmt struct {
		Loc source.Span
	}

	ContinueStmt struct {
		Loc source.Span
	}

	// EmptyStmt is a lone ';'.
	EmptyStmt struct {
		Loc source.Span
	}

	ExprStmt struct {
		Loc source.Span
		X   Expr
	}

	// BadStmt covers text skipped while recovering from a syntax error.
	BadStmt struct {
		Loc source.Span
	}
)

func (n *BlockStmt) Span() source.Span    { return n.Loc }
func (n *VarStmt) Span() source.Span      { return n.Decl.Loc }
func (n *IfStmt) Span() source.Span       { return n.Loc }
func (n *WhileStmt) Span() source.Span    { return n.Loc }
func (n *ForStmt) Span() source.Span      { return n.Loc }
func (n *ReturnStmt) Span() source.Span   { return n.Loc }
func (n *BreakStmt) Span() source.Span    { return n.Loc }
func (n *ContinueStmt) Span() source.Span { return n.Loc }
func (n *EmptyStmt) Span() source.Span    { return n.Loc }
func (n *ExprStmt) Span() source.Span     { return n.Loc }
func (n *BadStmt) Span() source.Span      { return n.Loc }

func (*BlockStmt) stmtNode()    {}
func (*VarStmt) stmtNode()      {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*ForStmt) stmtNode()      {}
func (*ReturnStmt) stmtNode()   {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*EmptyStmt) stmtNode()    {}
func (*ExprStmt) stmtNode()     {}
func (*BadStmt) stmtNode()      {}
