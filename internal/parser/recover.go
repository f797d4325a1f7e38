package parser

import (
	"charj/internal/token"
)

// Границы восстановления. Пропуск идёт с учётом глубины скобок, стоп-токены
// действуют только на глубине 0; ';' на глубине 0 съедается.
var (
	topStops = []token.Kind{
		token.KwClass, token.KwFn, token.KwVar, token.KwVal,
	}
	memberStops = []token.Kind{
		token.KwFn, token.KwVar, token.KwVal, token.KwClass, token.RBrace,
	}
	// fn и class закрывают незакрытый блок, поэтому тоже стопы.
	stmtStops = []token.Kind{
		token.KwVar, token.KwVal, token.KwIf, token.KwWhile, token.KwFor,
		token.KwReturn, token.KwBreak, token.KwContinue,
		token.RBrace, token.KwFn, token.KwClass,
	}
)

// resyncTop - пропустить до следующей декларации верхнего уровня.
func (p *Parser) resyncTop() {
	p.resyncUntil(topStops)
}

// resyncMember - пропустить до следующего члена класса или '}'.
func (p *Parser) resyncMember() {
	p.resyncUntil(memberStops)
}

// resyncStatement - пропустить до конца текущего оператора.
func (p *Parser) resyncStatement() {
	p.resyncUntil(stmtStops)
}

func (p *Parser) resyncUntil(stops []token.Kind) {
	p.nestingReported = false
	depth := 0
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.EOF:
			return
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket:
			if depth > 0 {
				depth--
			}
		case token.RBrace:
			if depth == 0 && p.at_or(stops...) {
				return
			}
			if depth > 0 {
				depth--
			}
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		default:
			if depth == 0 && p.at_or(stops...) {
				return
			}
		}
		p.advance()
	}
}
