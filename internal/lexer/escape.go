package lexer

import (
	"strings"
	"unicode/utf8"
)

// escapeLen returns the byte length of the escape sequence at the start of s
// (s[0] == '\\') and whether it is valid.
func escapeLen(s []byte) (uint32, bool) {
	if len(s) < 2 {
		return 0, false
	}
	switch s[1] {
	case 'n', 't', 'r', '0', '\\', '"', '\'':
		return 2, true
	case 'u':
		_, n, ok := decodeUnicodeEscape(s)
		return n, ok
	}
	return 0, false
}

// decodeUnicodeEscape parses \u{X..XXXXXX} at the start of s.
func decodeUnicodeEscape(s []byte) (rune, uint32, bool) {
	if len(s) < 4 || s[2] != '{' {
		return 0, 0, false
	}
	var r rune
	i := 3
	for ; i < len(s) && s[i] != '}'; i++ {
		if i-3 >= 6 || !isHex(s[i]) {
			return 0, 0, false
		}
		r = r<<4 | rune(hexVal(s[i]))
	}
	if i == 3 || i >= len(s) || !utf8.ValidRune(r) {
		return 0, 0, false
	}
	return r, uint32(i + 1), true
}

// DecodeString returns the value of a string literal token text: the
// surrounding quotes are removed and escapes are resolved. Invalid escapes
// are kept verbatim; the lexer has already reported them.
func DecodeString(text string) string {
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	if !strings.Contains(text, `\`) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	raw := []byte(text)
	for i := 0; i < len(raw); {
		if raw[i] != '\\' {
			b.WriteByte(raw[i])
			i++
			continue
		}
		n, ok := escapeLen(raw[i:])
		if !ok {
			b.WriteByte('\\')
			i++
			continue
		}
		switch raw[i+1] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case 'u':
			r, _, _ := decodeUnicodeEscape(raw[i:])
			b.WriteRune(r)
		default:
			b.WriteByte(raw[i+1])
		}
		i += int(n)
	}
	return b.String()
}

func hexVal(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}
