package ast

// BinaryOp enumerates binary operator kinds.
type BinaryOp uint8

const (
	// Арифметические

	// BinaryAdd represents the addition operator (+).
	BinaryAdd BinaryOp = iota
	// BinarySub represents the subtraction operator (-).
	BinarySub
	// BinaryMul represents the multiplication operator (*).
	BinaryMul
	// BinaryDiv represents the division operator (/).
	BinaryDiv
	// BinaryMod represents the modulo operator (%).
	BinaryMod

	// Логические

	// BinaryLogicalAnd represents the logical AND operator (&&).
	BinaryLogicalAnd
	BinaryLogicalOr

	// Сравнения

	// BinaryEq represents the equality operator (==).
	BinaryEq
	BinaryNotEq
	BinaryLess
	BinaryLessEq
	BinaryGreater
	BinaryGreaterEq
)

// String returns the symbol representation of a binary operator.
func (op BinaryOp) String() string {
	switch op {
	case BinaryAdd:
		return "+"
	case BinarySub:
		return "-"
	case BinaryMul:
		return "*"
	case BinaryDiv:
		return "/"
	case BinaryMod:
		return "%"
	case BinaryLogicalAnd:
		return "&&"
	case BinaryLogicalOr:
		return "||"
	case BinaryEq:
		return "=="
	case BinaryNotEq:
		return "!="
	case BinaryLess:
		return "<"
	case BinaryLessEq:
		return "<="
	case BinaryGreater:
		return ">"
	case BinaryGreaterEq:
		return ">="
	}
	return "?"
}

// IsComparison reports whether op is an equality or relational operator.
func (op BinaryOp) IsComparison() bool {
	return op >= BinaryEq && op <= BinaryGreaterEq
}

// UnaryOp enumerates prefix operators.
type UnaryOp uint8

const (
	UnaryNeg  UnaryOp = iota // -
	UnaryNot                 // !
	UnaryPlus                // +
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "!"
	case UnaryPlus:
		return "+"
	}
	return "?"
}

// AssignOp enumerates plain and compound assignment.
type AssignOp uint8

const (
	AssignPlain AssignOp = iota // =
	AssignAdd                   // +=
	AssignSub                   // -=
	AssignMul                   // *=
	AssignDiv                   // /=
	AssignMod                   // %=
)

func (op AssignOp) String() string {
	switch op {
	case AssignPlain:
		return "="
	case AssignAdd:
		return "+="
	case AssignSub:
		return "-="
	case AssignMul:
		return "*="
	case AssignDiv:
		return "/="
	case AssignMod:
		return "%="
	}
	return "?"
}
