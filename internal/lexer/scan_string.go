package lexer

import (
	"fmt"

	"charj/internal/diag"
	"charj/internal/source"
	"charj/internal/token"
)

type pendingEscape struct {
	span source.Span
	msg  string
}

// scanString сканирует "...". Строка может занимать несколько строк.
// Escape: \n \t \r \0 \\ \" \' \u{XXXX}. Неизвестный escape - LEX1005, токен остаётся StringLit.
// Незакрытая строка - одна LEX1002 от кавычки до EOF и Invalid токен.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'

	// ошибки escape репортим только для закрытой строки
	var pending []pendingEscape
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			for _, p := range pending {
				lx.errLex(diag.LexInvalidEscape, p.span, p.msg)
			}
			return lx.makeToken(token.StringLit, lx.cursor.SpanFrom(start))
		}
		if b == '\\' {
			escStart := lx.cursor.Mark()
			n, ok := escapeLen(lx.cursor.Rest())
			if !ok {
				// съедаем '\' и один символ, чтобы \" не закрывал строку
				lx.cursor.Bump()
				lx.bumpRune()
				sp := lx.cursor.SpanFrom(escStart)
				pending = append(pending, pendingEscape{
					span: sp,
					msg:  fmt.Sprintf("invalid escape sequence %q", lx.file.Content[sp.Start:sp.End]),
				})
				continue
			}
			lx.cursor.Advance(n)
			continue
		}
		lx.cursor.Bump()
	}

	// EOF без закрывающей кавычки
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return lx.makeToken(token.Invalid, sp)
}
