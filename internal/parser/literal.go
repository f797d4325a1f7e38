package parser

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"charj/internal/ast"
	"charj/internal/lexer"
	"charj/internal/token"
)

// parseIdent съедает идентификатор или сообщает "expected <what>".
func (p *Parser) parseIdent(what string) (*ast.Ident, bool) {
	tok := p.peek()
	if tok.Kind != token.Ident {
		p.errExpected(what)
		return nil, false
	}
	p.advance()
	return p.makeIdent(tok), true
}

// makeIdent: имена сравниваются в NFC, исходное написание остаётся в тексте под Loc.
func (p *Parser) makeIdent(tok token.Token) *ast.Ident {
	return &ast.Ident{Loc: tok.Span, Name: norm.NFC.String(tok.Text)}
}

func (p *Parser) makeLiteral(tok token.Token) *ast.BasicLit {
	lit := &ast.BasicLit{Loc: tok.Span, Raw: tok.Text}
	switch tok.Kind {
	case token.IntLit:
		lit.Kind = ast.LitInt
		if v, ok := intValue(tok.Text); ok {
			lit.Value = v
		}
	case token.FloatLit:
		lit.Kind = ast.LitFloat
		if v, ok := floatValue(tok.Text); ok {
			lit.Value = v
		}
	case token.StringLit:
		lit.Kind = ast.LitString
		lit.Value = lexer.DecodeString(tok.Text)
	case token.KwTrue, token.KwFalse:
		lit.Kind = ast.LitBool
		lit.Value = tok.Kind == token.KwTrue
	case token.KwNull:
		lit.Kind = ast.LitNull
	}
	return lit
}

// intValue декодирует 123, 0xFF, 0b1010 с разделителями '_'.
// false - литерал кривой, лексер уже о нём сообщил.
func intValue(text string) (uint64, bool) {
	base := 10
	if len(text) > 2 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X':
			base, text = 16, text[2:]
		case 'b', 'B':
			base, text = 2, text[2:]
		}
	}
	digits, ok := stripSeparators(text, base)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func floatValue(text string) (float64, bool) {
	digits, ok := stripSeparators(text, 10)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// stripSeparators убирает '_', каждый из которых должен стоять между двумя цифрами.
func stripSeparators(text string, base int) (string, bool) {
	if !strings.Contains(text, "_") {
		return text, true
	}
	var sb strings.Builder
	for i := 0; i < len(text); i++ {
		if text[i] != '_' {
			sb.WriteByte(text[i])
			continue
		}
		if i == 0 || i == len(text)-1 || !isDigitOf(text[i-1], base) || !isDigitOf(text[i+1], base) {
			return "", false
		}
	}
	return sb.String(), true
}

func isDigitOf(b byte, base int) bool {
	switch base {
	case 2:
		return b == '0' || b == '1'
	case 16:
		return '0' <= b && b <= '9' || 'a' <= b && b <= 'f' || 'A' <= b && b <= 'F'
	}
	return '0' <= b && b <= '9'
}
