package parser

import (
	"charj/internal/ast"
	"charj/internal/token"
)

// Приоритеты бинарных операторов, больше = связывает сильнее.
const (
	precAssignment = iota + 1
	precLogicalOr
	precLogicalAnd
	precEquality
	precComparison
	precAdditive
	precMultiplicative
)

// binaryOp describes an infix token. Assignment entries carry an AssignOp and
// build AssignExpr; the rest build BinaryExpr.
type binaryOp struct {
	prec   int
	right  bool // правоассоциативный
	op     ast.BinaryOp
	assign ast.AssignOp
}

func (b binaryOp) isAssign() bool { return b.prec == precAssignment }

// nonAssociative: a op b op c is rejected as ambiguous.
func (b binaryOp) nonAssociative() bool {
	return b.prec == precEquality || b.prec == precComparison
}

var binaryOps = map[token.Kind]binaryOp{
	token.Assign:        {prec: precAssignment, right: true, assign: ast.AssignPlain},
	token.PlusAssign:    {prec: precAssignment, right: true, assign: ast.AssignAdd},
	token.MinusAssign:   {prec: precAssignment, right: true, assign: ast.AssignSub},
	token.StarAssign:    {prec: precAssignment, right: true, assign: ast.AssignMul},
	token.SlashAssign:   {prec: precAssignment, right: true, assign: ast.AssignDiv},
	token.PercentAssign: {prec: precAssignment, right: true, assign: ast.AssignMod},

	token.OrOr:   {prec: precLogicalOr, op: ast.BinaryLogicalOr},
	token.AndAnd: {prec: precLogicalAnd, op: ast.BinaryLogicalAnd},

	token.EqEq:   {prec: precEquality, op: ast.BinaryEq},
	token.BangEq: {prec: precEquality, op: ast.BinaryNotEq},

	token.Lt:   {prec: precComparison, op: ast.BinaryLess},
	token.LtEq: {prec: precComparison, op: ast.BinaryLessEq},
	token.Gt:   {prec: precComparison, op: ast.BinaryGreater},
	token.GtEq: {prec: precComparison, op: ast.BinaryGreaterEq},

	token.Plus:    {prec: precAdditive, op: ast.BinaryAdd},
	token.Minus:   {prec: precAdditive, op: ast.BinarySub},
	token.Star:    {prec: precMultiplicative, op: ast.BinaryMul},
	token.Slash:   {prec: precMultiplicative, op: ast.BinaryDiv},
	token.Percent: {prec: precMultiplicative, op: ast.BinaryMod},
}

var prefixOps = map[token.Kind]ast.UnaryOp{
	token.Minus: ast.UnaryNeg,
	token.Plus:  ast.UnaryPlus,
	token.Bang:  ast.UnaryNot,
}
