package lexer

import (
	"unicode/utf8"

	"charj/internal/diag"
	"charj/internal/token"
)

// двухсимвольные проверяются раньше односимвольных: ">=" не станет ">" "="
var twoByteOps = map[[2]byte]token.Kind{
	{'&', '&'}: token.AndAnd,
	{'|', '|'}: token.OrOr,
	{'=', '='}: token.EqEq,
	{'!', '='}: token.BangEq,
	{'<', '='}: token.LtEq,
	{'>', '='}: token.GtEq,
	{'+', '='}: token.PlusAssign,
	{'-', '='}: token.MinusAssign,
	{'*', '='}: token.StarAssign,
	{'/', '='}: token.SlashAssign,
	{'%', '='}: token.PercentAssign,
}

var oneByteOps = [256]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Assign,
	'!': token.Bang,
	'<': token.Lt,
	'>': token.Gt,
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
}

// scanOperatorOrPunct takes the longest operator at the cursor. An unknown
// character is reported and skipped; no token is produced for it.
func (lx *Lexer) scanOperatorOrPunct() (token.Token, bool) {
	start := lx.cursor.Mark()
	if b0, b1, ok := lx.cursor.Peek2(); ok {
		if kind, found := twoByteOps[[2]byte{b0, b1}]; found {
			lx.cursor.Advance(2)
			return lx.makeToken(kind, lx.cursor.SpanFrom(start)), true
		}
	}
	if kind := oneByteOps[lx.cursor.Peek()]; kind != token.Invalid {
		lx.cursor.Bump()
		return lx.makeToken(kind, lx.cursor.SpanFrom(start)), true
	}
	lx.skipUnexpected()
	return token.Token{}, false
}

// skipUnexpected reports the character under the cursor and steps over it:
// one full UTF-8 sequence, or a single byte when the encoding is invalid.
func (lx *Lexer) skipUnexpected() {
	start := lx.cursor.Mark()
	r, size := lx.peekRune()
	msg := fmtUnexpected(r)
	if r == utf8.RuneError && size == 1 {
		msg = fmtInvalidByte(lx.cursor.Peek())
	}
	lx.bumpRune()
	lx.errLex(diag.LexUnexpectedChar, lx.cursor.SpanFrom(start), msg)
}
