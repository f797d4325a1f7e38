package token

import (
	"slices"

	"github.com/samber/lo"
)

var keywords = map[string]Kind{
	"class":    KwClass,
	"extends":  KwExtends,
	"fn":       KwFn,
	"var":      KwVar,
	"val":      KwVal,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"in":       KwIn,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"new":      KwNew,
	"this":     KwThis,
	"true":     KwTrue,
	"false":    KwFalse,
	"null":     KwNull,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Keywords returns every reserved word in lexical order.
func Keywords() []string {
	words := lo.Keys(keywords)
	slices.Sort(words)
	return words
}
