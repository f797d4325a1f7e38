package parser

import (
	"charj/internal/ast"
	"charj/internal/token"
)

// parseVarDecl: (var|val) Ident [':' Type] ['=' Expr] ';'
// Без ';' декларация возвращается вместе с false.
func (p *Parser) parseVarDecl() (*ast.VarDecl, bool) {
	kw := p.advance()
	name, ok := p.parseIdent("identifier after '" + kw.Text + "'")
	if !ok {
		return nil, false
	}
	decl := &ast.VarDecl{Mutable: kw.Kind == token.KwVar, Name: name}

	if p.at(token.Colon) {
		p.advance()
		typ, ok := p.parseType()
		if !ok {
			return nil, false
		}
		decl.Type = typ
	}
	if p.at(token.Assign) {
		p.advance()
		value, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		decl.Value = value
	}

	ok = p.expectSemi("variable declaration")
	decl.Loc = p.spanFrom(kw.Span)
	return decl, ok
}

// parseFuncDecl: fn Ident [TypeParams] '(' [Params] ')' [':' Type] Block
func (p *Parser) parseFuncDecl() (*ast.FuncDecl, bool) {
	kw := p.advance()
	name, ok := p.parseIdent("function name after 'fn'")
	if !ok {
		return nil, false
	}
	decl := &ast.FuncDecl{Name: name}

	if decl.TypeParams, ok = p.parseTypeParams(); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.LParen, "'(' after function name"); !ok {
		return nil, false
	}
	if decl.Params, ok = parseCommaList(p, token.RParen, true, p.parseParam); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, "')' to close parameter list"); !ok {
		return nil, false
	}
	if p.at(token.Colon) {
		p.advance()
		if decl.Result, ok = p.parseType(); !ok {
			return nil, false
		}
	}
	if !p.at(token.LBrace) {
		p.errExpected("'{' to start function body")
		return nil, false
	}

	decl.Body, ok = p.parseBlock()
	decl.Loc = p.spanFrom(kw.Span)
	return decl, ok
}

// parseParam: Ident ':' Type
func (p *Parser) parseParam() (*ast.Param, bool) {
	name, ok := p.parseIdent("parameter name")
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Colon, "':' after parameter name"); !ok {
		return nil, false
	}
	typ, ok := p.parseType()
	if !ok {
		return nil, false
	}
	return &ast.Param{Loc: name.Loc.Cover(typ.Span()), Name: name, Type: typ}, true
}

// parseClassDecl: class Ident [TypeParams] [extends Type] '{' {Member} '}'
func (p *Parser) parseClassDecl() (ast.Decl, bool) {
	kw := p.advance()
	name, ok := p.parseIdent("class name after 'class'")
	if !ok {
		return nil, false
	}
	decl := &ast.ClassDecl{Name: name, Members: make([]ast.Decl, 0)}

	if decl.TypeParams, ok = p.parseTypeParams(); !ok {
		return nil, false
	}
	if p.at(token.KwExtends) {
		p.advance()
		if decl.Extends, ok = p.parseType(); !ok {
			return nil, false
		}
	}
	open, ok := p.expect(token.LBrace, "'{' to start class body")
	if !ok {
		return nil, false
	}

	for !p.at_or(token.RBrace, token.EOF, token.KwClass) {
		before := p.pos
		decl.Members = append(decl.Members, p.parseMemberOrBad())
		if p.pos == before {
			p.advance()
		}
	}

	if !p.at(token.RBrace) {
		p.errExpectedNote("'}' to close class body", open.Span, "class body opened here")
		decl.Loc = p.spanFrom(kw.Span)
		return decl, false
	}
	p.advance()
	decl.Loc = p.spanFrom(kw.Span)
	return decl, true
}

// parseMemberOrBad - член класса: fn или var/val. Ошибка восстанавливается
// на границе членов, пропущенный текст становится BadDecl.
func (p *Parser) parseMemberOrBad() ast.Decl {
	start, startPos := p.peek().Span, p.pos
	var (
		member ast.Decl
		ok     bool
	)
	switch p.peek().Kind {
	case token.KwFn:
		member, ok = funcDecl(p.parseFuncDecl())
	case token.KwVar, token.KwVal:
		member, ok = varDecl(p.parseVarDecl())
	default:
		p.errExpected("member declaration")
	}
	if ok {
		return member
	}
	p.resyncMember()
	if member != nil {
		return member
	}
	return &ast.BadDecl{Loc: p.badSpan(start, startPos)}
}
