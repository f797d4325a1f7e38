package token

import "strconv"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token (unterminated literal or comment).
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a floating-point literal.
	FloatLit
	// StringLit represents a double-quoted string literal.
	StringLit

	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwExtends represents the 'extends' keyword.
	KwExtends // extends
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwVar represents the 'var' keyword.
	KwVar // var
	// KwVal represents the 'val' keyword.
	KwVal // val
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwNew represents the 'new' keyword.
	KwNew // new
	// KwThis represents the 'this' keyword.
	KwThis // this
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false
	// KwNull represents the 'null' keyword.
	KwNull // null

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// Assign represents the assign operator token.
	Assign // =
	// PlusAssign represents the plus assign operator token.
	PlusAssign // +=
	// MinusAssign represents the minus assign operator token.
	MinusAssign // -=
	// StarAssign represents the star assign operator token.
	StarAssign // *=
	// SlashAssign represents the slash assign operator token.
	SlashAssign // /=
	// PercentAssign represents the percent assign operator token.
	PercentAssign // %=
	// EqEq represents the equality operator token.
	EqEq // ==
	// BangEq represents the inequality operator token.
	BangEq // !=
	// Lt represents the less-than operator token.
	Lt // <
	// LtEq represents the less-or-equal operator token.
	LtEq // <=
	// Gt represents the greater-than operator token.
	Gt // >
	// GtEq represents the greater-or-equal operator token.
	GtEq // >=
	// AndAnd represents the logical and operator token.
	AndAnd // &&
	// OrOr represents the logical or operator token.
	OrOr // ||
	// Bang represents the logical not operator token.
	Bang // !

	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
	// Comma represents the comma token.
	Comma // ,
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Colon represents the colon token.
	Colon // :
	// Dot represents the dot token.
	Dot // .

	kindCount
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	StringLit:     "StringLit",
	KwClass:       "KwClass",
	KwExtends:     "KwExtends",
	KwFn:          "KwFn",
	KwVar:         "KwVar",
	KwVal:         "KwVal",
	KwIf:          "KwIf",
	KwElse:        "KwElse",
	KwWhile:       "KwWhile",
	KwFor:         "KwFor",
	KwIn:          "KwIn",
	KwReturn:      "KwReturn",
	KwBreak:       "KwBreak",
	KwContinue:    "KwContinue",
	KwNew:         "KwNew",
	KwThis:        "KwThis",
	KwTrue:        "KwTrue",
	KwFalse:       "KwFalse",
	KwNull:        "KwNull",
	Plus:          "Plus",
	Minus:         "Minus",
	Star:          "Star",
	Slash:         "Slash",
	Percent:       "Percent",
	Assign:        "Assign",
	PlusAssign:    "PlusAssign",
	MinusAssign:   "MinusAssign",
	StarAssign:    "StarAssign",
	SlashAssign:   "SlashAssign",
	PercentAssign: "PercentAssign",
	EqEq:          "EqEq",
	BangEq:        "BangEq",
	Lt:            "Lt",
	LtEq:          "LtEq",
	Gt:            "Gt",
	GtEq:          "GtEq",
	AndAnd:        "AndAnd",
	OrOr:          "OrOr",
	Bang:          "Bang",
	LParen:        "LParen",
	RParen:        "RParen",
	LBrace:        "LBrace",
	RBrace:        "RBrace",
	LBracket:      "LBracket",
	RBracket:      "RBracket",
	Comma:         "Comma",
	Semicolon:     "Semicolon",
	Colon:         "Colon",
	Dot:           "Dot",
}

// spellings хранит исходное написание для фиксированных токенов.
var spellings = [...]string{
	KwClass:       "class",
	KwExtends:     "extends",
	KwFn:          "fn",
	KwVar:         "var",
	KwVal:         "val",
	KwIf:          "if",
	KwElse:        "else",
	KwWhile:       "while",
	KwFor:         "for",
	KwIn:          "in",
	KwReturn:      "return",
	KwBreak:       "break",
	KwContinue:    "continue",
	KwNew:         "new",
	KwThis:        "this",
	KwTrue:        "true",
	KwFalse:       "false",
	KwNull:        "null",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Assign:        "=",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	EqEq:          "==",
	BangEq:        "!=",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	AndAnd:        "&&",
	OrOr:          "||",
	Bang:          "!",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
	Comma:         ",",
	Semicolon:     ";",
	Colon:         ":",
	Dot:           ".",
	kindCount:     "",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Spelling returns the fixed source text of keyword, operator and punctuation
// kinds, and "" for kinds whose text varies.
func (k Kind) Spelling() string {
	if k < kindCount {
		return spellings[k]
	}
	return ""
}

// Describe returns the form used in parser messages: the quoted spelling for
// fixed tokens, a noun phrase otherwise.
func (k Kind) Describe() string {
	if s := k.Spelling(); s != "" {
		return "'" + s + "'"
	}
	switch k {
	case EOF:
		return "end of input"
	case Ident:
		return "identifier"
	case IntLit:
		return "integer literal"
	case FloatLit:
		return "float literal"
	case StringLit:
		return "string literal"
	default:
		return "invalid token"
	}
}
