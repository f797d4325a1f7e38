package parser

import (
	"charj/internal/ast"
	"charj/internal/token"
)

// parseStmtOrBad разбирает оператор и восстанавливается после ошибки.
// Возвращает либо сам оператор (если он собран целиком и не хватило только
// терминатора), либо BadStmt на пропущенный текст. Никогда не nil.
func (p *Parser) parseStmtOrBad() ast.Stmt {
	start, startPos := p.peek().Span, p.pos
	stmt, ok := p.parseStmt()
	if ok {
		return stmt
	}
	p.resyncStatement()
	if stmt != nil {
		return stmt
	}
	return &ast.BadStmt{Loc: p.badSpan(start, startPos)}
}

func (p *Parser) parseStmt() (ast.Stmt, bool) {
	ok := p.enter()
	defer p.leave()
	if !ok {
		return nil, false
	}

	switch p.peek().Kind {
	case token.LBrace:
		block, ok := p.parseBlock()
		if block == nil {
			return nil, ok
		}
		return block, ok
	case token.KwVar, token.KwVal:
		decl, ok := p.parseVarDecl()
		if decl == nil {
			return nil, ok
		}
		return &ast.VarStmt{Decl: decl}, ok
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwBreak:
		kw := p.advance()
		ok := p.expectSemi("'break'")
		return &ast.BreakStmt{Loc: p.spanFrom(kw.Span)}, ok
	case token.KwContinue:
		kw := p.advance()
		ok := p.expectSemi("'continue'")
		return &ast.ContinueStmt{Loc: p.spanFrom(kw.Span)}, ok
	case token.Semicolon:
		tok := p.advance()
		return &ast.EmptyStmt{Loc: tok.Span}, true
	default:
		return p.parseExprStmt()
	}
}

// parseBlock: '{' {Stmt} '}'. Блок без '}' возвращается вместе с false.
// fn и class внутри блока значат, что закрывающую скобку забыли.
func (p *Parser) parseBlock() (*ast.BlockStmt, bool) {
	open, ok := p.expect(token.LBrace, "'{'")
	if !ok {
		return nil, false
	}

	block := &ast.BlockStmt{Stmts: make([]ast.Stmt, 0)}
	for !p.at_or(token.RBrace, token.EOF, token.KwFn, token.KwClass) {
		before := p.pos
		block.Stmts = append(block.Stmts, p.parseStmtOrBad())
		if p.pos == before {
			p.advance()
		}
	}

	if !p.at(token.RBrace) {
		p.errExpectedNote("'}' to close block", open.Span, "block opened here")
		block.Loc = p.spanFrom(open.Span)
		return block, false
	}
	p.advance()
	block.Loc = p.spanFrom(open.Span)
	return block, true
}

// parseIfStmt: if '(' Expr ')' Stmt [else Stmt]. else цепляется к ближайшему if.
func (p *Parser) parseIfStmt() (ast.Stmt, bool) {
	kw := p.advance()
	cond, ok := p.parseCondition("'if'")
	if !ok {
		return nil, false
	}
	stmt := &ast.IfStmt{Cond: cond, Then: p.parseStmtOrBad()}
	if p.at(token.KwElse) {
		p.advance()
		stmt.Else = p.parseStmtOrBad()
	}
	stmt.Loc = p.spanFrom(kw.Span)
	return stmt, true
}

func (p *Parser) parseWhileStmt() (ast.Stmt, bool) {
	kw := p.advance()
	cond, ok := p.parseCondition("'while'")
	if !ok {
		return nil, false
	}
	stmt := &ast.WhileStmt{Cond: cond, Body: p.parseStmtOrBad()}
	stmt.Loc = p.spanFrom(kw.Span)
	return stmt, true
}

// parseCondition: '(' Expr ')'
func (p *Parser) parseCondition(after string) (ast.Expr, bool) {
	if _, ok := p.expect(token.LParen, "'(' after "+after); !ok {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, "')' after condition"); !ok {
		return nil, false
	}
	return cond, true
}

// parseForStmt: for '(' Ident in Expr ')' Stmt
func (p *Parser) parseForStmt() (ast.Stmt, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, "'(' after 'for'"); !ok {
		return nil, false
	}
	name, ok := p.parseIdent("loop variable name")
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.KwIn, "'in' after loop variable"); !ok {
		return nil, false
	}
	iter, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, "')' to close for header"); !ok {
		return nil, false
	}
	stmt := &ast.ForStmt{Var: name, Iter: iter, Body: p.parseStmtOrBad()}
	stmt.Loc = p.spanFrom(kw.Span)
	return stmt, true
}

func (p *Parser) parseReturnStmt() (ast.Stmt, bool) {
	kw := p.advance()
	stmt := &ast.ReturnStmt{}
	if !p.at(token.Semicolon) {
		value, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		stmt.Value = value
	}
	ok := p.expectSemi("return statement")
	stmt.Loc = p.spanFrom(kw.Span)
	return stmt, ok
}

func (p *Parser) parseExprStmt() (ast.Stmt, bool) {
	x, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	ok = p.expectSemi("expression")
	return &ast.ExprStmt{Loc: x.Span().Cover(p.lastSpan), X: x}, ok
}
