package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// peekRune decodes the rune under the cursor; size is 0 at EOF.
func (lx *Lexer) peekRune() (r rune, size int) {
	rest := lx.cursor.Rest()
	switch {
	case len(rest) == 0:
		return utf8.RuneError, 0
	case rest[0] < utf8.RuneSelf:
		return rune(rest[0]), 1
	}
	return utf8.DecodeRune(rest)
}

// bumpRune consumes one rune, or one byte of invalid UTF-8.
func (lx *Lexer) bumpRune() {
	if _, size := lx.peekRune(); size > 0 {
		lx.cursor.Advance(uint32(size)) // #nosec G115 -- size <= utf8.UTFMax
	}
}

func fmtUnexpected(r rune) string {
	return fmt.Sprintf("unexpected character %q", r)
}

func fmtInvalidByte(b byte) string {
	return fmt.Sprintf("unexpected character: invalid UTF-8 byte 0x%02X", b)
}

func isIdentStartByte(b byte) bool {
	return b == '_' || ('a' <= b|0x20 && b|0x20 <= 'z')
}

func isIdentContinueByte(b byte) bool { return isIdentStartByte(b) || isDec(b) }

func isIdentStartRune(r rune) bool { return r == '_' || unicode.IsLetter(r) }

// внутри имени допустимы комбинируемые знаки (Mn, Mc): "cafe\u0301"
func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc)
}

func isDec(b byte) bool { return '0' <= b && b <= '9' }

func isHex(b byte) bool { return isDec(b) || ('a' <= b|0x20 && b|0x20 <= 'f') }

// isDigitOf reports whether b is a digit in base 2, 16 or (otherwise) 10.
func isDigitOf(b byte, base int) bool {
	switch base {
	case 2:
		return b == '0' || b == '1'
	case 16:
		return isHex(b)
	}
	return isDec(b)
}

// eatIdentTail consumes identifier-continue characters and reports whether
// there were any. Numbers use it to swallow glued suffixes like 12abc.
func (lx *Lexer) eatIdentTail() bool {
	start := lx.cursor.Offset()
	for {
		if b := lx.cursor.Peek(); b < utf8.RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, size := lx.peekRune()
		if size == 0 || !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}
	return lx.cursor.Offset() > start
}
