package parser

import (
	"fmt"

	"charj/internal/diag"
	"charj/internal/source"
	"charj/internal/token"
)

// advance съедает текущий токен и возвращает его. На EOF позиция не двигается.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// expect проверяет текущий токен и съедает его при совпадении.
// what описывает ожидаемое целиком, например "')' after if condition".
func (p *Parser) expect(k token.Kind, what string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errExpected(what)
	return token.Token{}, false
}

// expectSemi - терминатор простых конструкций: "expected ';' after <what>".
func (p *Parser) expectSemi(after string) bool {
	_, ok := p.expect(token.Semicolon, "';' after "+after)
	return ok
}

// errExpected reports "expected <what>, found <token>" at the current token.
func (p *Parser) errExpected(what string) {
	p.errExpectedNote(what, source.Span{}, "")
}

func (p *Parser) errExpectedNote(what string, noteSpan source.Span, note string) {
	tok := p.peek()
	if p.lexerAlreadyReported(tok) {
		return
	}
	code := diag.SynUnexpectedToken
	if tok.Kind == token.EOF {
		code = diag.SynUnexpectedEOF
	}
	msg := fmt.Sprintf("expected %s, found %s", what, describe(tok))
	if note == "" {
		p.err(code, msg)
		return
	}
	p.reportWithNote(code, p.getDiagnosticSpan(), msg, noteSpan, note)
}

// lexerAlreadyReported: Invalid токен уже сопровождён диагностикой лексера,
// как и EOF, до которого такой токен дотянулся.
func (p *Parser) lexerAlreadyReported(tok token.Token) bool {
	switch tok.Kind {
	case token.Invalid:
		return true
	case token.EOF:
		if p.pos == 0 {
			return false
		}
		prev := p.toks[p.pos-1]
		return prev.Kind == token.Invalid && prev.Span.End == tok.Span.Start
	}
	return false
}

func describe(tok token.Token) string {
	if tok.Kind == token.EOF || tok.Text == "" {
		return tok.Kind.Describe()
	}
	return "'" + tok.Text + "'"
}

// getDiagnosticSpan: на EOF ошибку ставим сразу за последним съеденным токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF && p.pos > 0 {
		return p.lastSpan.AtEnd()
	}
	return tok.Span
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
		if p.opts.Enough() && p.opts.CurrentErrors > p.opts.MaxErrors {
			return
		}
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}

func (p *Parser) reportWithNote(code diag.Code, sp source.Span, msg string, noteSpan source.Span, note string) {
	p.opts.CurrentErrors++
	if p.opts.Enough() && p.opts.CurrentErrors > p.opts.MaxErrors {
		return
	}
	diag.ReportError(p.opts.Reporter, code, sp, msg).WithNote(noteSpan, note).Emit()
}

// spanFrom - от начала start до конца последнего съеденного токена.
func (p *Parser) spanFrom(start source.Span) source.Span {
	end := max(p.lastSpan.End, start.Start)
	return source.Span{File: p.file.ID, Start: start.Start, End: end}
}

// badSpan - спан текста, пропущенного при восстановлении с позиции startPos.
// Если ничего не съели, это пустой спан сразу за последним токеном, чтобы
// узел остался внутри родителя.
func (p *Parser) badSpan(start source.Span, startPos int) source.Span {
	if p.pos == startPos {
		return p.lastSpan.AtEnd()
	}
	return p.spanFrom(start)
}

// enter увеличивает глубину вложенности. false - предел превышен, ошибка уже выдана.
// Каждый enter парный с leave.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth <= p.opts.maxNesting() {
		return true
	}
	if !p.nestingReported {
		p.nestingReported = true
		p.err(diag.SynNestingTooDeep,
			fmt.Sprintf("nesting exceeds the limit of %d levels", p.opts.maxNesting()))
	}
	return false
}

func (p *Parser) leave() {
	p.depth--
}
