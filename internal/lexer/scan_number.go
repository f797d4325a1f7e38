package lexer

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"charj/internal/diag"
	"charj/internal/token"
)

// scanNumber поддерживает: 123, 1_000, 0x1F, 0b1010, 1.5, 1e-3, 2.5E+10.
// Точка продолжает число только если за ней цифра: "1.foo" - это 1 . foo.
// Неверные формы репортятся одной LEX1004 на весь текст числа, токен
// IntLit/FloatLit при этом всё равно выдаётся.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit
	base := 10
	problem := ""
	note := func(msg string) {
		if problem == "" {
			problem = msg
		}
	}

	// ведущий 0 и база?
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' {
		switch b1 {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		}
	}

	if base != 10 {
		lx.cursor.Bump()
		lx.cursor.Bump()
		if !lx.scanDigits(base, note) {
			note("missing digits after radix prefix")
		}
	} else {
		lx.scanDigits(10, note)

		// дробная часть
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
			lx.cursor.Bump()
			kind = token.FloatLit
			lx.scanDigits(10, note)
		} else if lx.cursor.Peek() == '.' && !lx.identFollowsDot() {
			// "1." без дробной части
			lx.cursor.Bump()
			kind = token.FloatLit
			note("expected digit after '.'")
		}

		// экспонента
		if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
			kind = token.FloatLit
			lx.cursor.Bump()
			if b := lx.cursor.Peek(); b == '+' || b == '-' {
				lx.cursor.Bump()
			}
			if !lx.scanDigits(10, note) {
				note("expected digit in exponent")
			}
		}
	}

	// буквы/цифры, приклеенные к числу: 12ab, 0x1g, 0b102
	if lx.eatIdentTail() {
		note("invalid character in numeric literal")
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if problem == "" {
		problem = checkRange(text, kind, base)
	}
	if problem != "" {
		lx.errLex(diag.LexBadNumber, sp, "malformed numeric literal: "+problem)
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}

// scanDigits consumes digits of base with '_' separators. Separators must sit
// between two digits. Reports whether at least one digit was consumed.
func (lx *Lexer) scanDigits(base int, note func(string)) bool {
	digits := 0
	lastUnderscore := false
	for {
		b := lx.cursor.Peek()
		switch {
		case isDigitOf(b, base):
			digits++
			lastUnderscore = false
		case b == '_' && !lx.cursor.EOF():
			if digits == 0 || lastUnderscore {
				note("misplaced '_' separator")
			}
			lastUnderscore = true
		default:
			if lastUnderscore {
				note("misplaced '_' separator")
			}
			return digits > 0
		}
		lx.cursor.Bump()
	}
}

// identFollowsDot reports whether the '.' under the cursor starts member access.
func (lx *Lexer) identFollowsDot() bool {
	saved := lx.cursor.Mark()
	defer lx.cursor.Reset(saved)
	lx.cursor.Bump()
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf {
		return isIdentStartByte(b)
	}
	r, _ := lx.peekRune()
	return isIdentStartRune(r)
}

func checkRange(text string, kind token.Kind, base int) string {
	clean := strings.ReplaceAll(text, "_", "")
	if kind == token.FloatLit {
		if _, err := strconv.ParseFloat(clean, 64); errors.Is(err, strconv.ErrRange) {
			return "value out of range"
		}
		return ""
	}
	if base != 10 {
		clean = clean[2:]
	}
	if _, err := strconv.ParseUint(clean, base, 64); errors.Is(err, strconv.ErrRange) {
		return "integer out of 64-bit range"
	}
	return ""
}
