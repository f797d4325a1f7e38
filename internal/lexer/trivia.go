package lexer

import (
	"bytes"

	"charj/internal/diag"
	"charj/internal/token"
)

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\f'
}

// skipTrivia steps over whitespace, "//" line comments and nested "/* */"
// block comments. An unterminated block comment is reported once and returned
// as an Invalid token running to EOF.
func (lx *Lexer) skipTrivia() (token.Token, bool) {
	for !lx.cursor.EOF() {
		if isSpace(lx.cursor.Peek()) {
			lx.cursor.Bump()
			continue
		}
		b0, b1, ok := lx.cursor.Peek2()
		if !ok || b0 != '/' {
			break
		}
		if b1 == '/' {
			lx.skipLineComment()
			continue
		}
		if b1 != '*' {
			break
		}
		if tok, bad := lx.skipBlockComment(); bad {
			return tok, true
		}
	}
	return token.Token{}, false
}

// skipLineComment stops before the '\n', which is ordinary whitespace.
func (lx *Lexer) skipLineComment() {
	rest := lx.cursor.Rest()
	n := bytes.IndexByte(rest, '\n')
	if n < 0 {
		n = len(rest)
	}
	lx.cursor.Advance(uint32(n)) // #nosec G115 -- n <= len(file)
}

func (lx *Lexer) skipBlockComment() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Advance(2)
	for depth := 1; depth > 0; {
		b0, b1, ok := lx.cursor.Peek2()
		switch {
		case !ok:
			lx.cursor.SkipToEnd()
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
			return lx.makeToken(token.Invalid, sp), true
		case b0 == '/' && b1 == '*':
			depth++
			lx.cursor.Advance(2)
		case b0 == '*' && b1 == '/':
			depth--
			lx.cursor.Advance(2)
		default:
			lx.cursor.Bump()
		}
	}
	return token.Token{}, false
}
