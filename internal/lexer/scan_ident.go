package lexer

import "charj/internal/token"

// scanIdentOrKeyword reads an identifier and classifies it with
// token.LookupKeyword. Keywords are case-sensitive.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.eatIdentTail()

	tok := lx.makeToken(token.Ident, lx.cursor.SpanFrom(start))
	if kw, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = kw
	}
	return tok
}
