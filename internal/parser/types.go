package parser

import (
	"charj/internal/ast"
	"charj/internal/token"
)

// parseType: Ident [ '<' Type {',' Type} [','] '>' ] { '[' ']' }
func (p *Parser) parseType() (ast.TypeExpr, bool) {
	ok := p.enter()
	defer p.leave()
	if !ok {
		return nil, false
	}

	start := p.peek()
	if start.Kind == token.Invalid {
		p.advance()
		return &ast.BadType{Loc: start.Span}, true
	}

	name, ok := p.parseIdent("type")
	if !ok {
		return nil, false
	}

	var typ ast.TypeExpr = &ast.NamedType{Loc: name.Loc, Name: name}
	if p.at(token.Lt) {
		p.advance()
		args, ok := parseCommaList(p, token.Gt, false, p.parseType)
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Gt, "'>' to close type arguments"); !ok {
			return nil, false
		}
		typ = &ast.GenericType{Loc: p.spanFrom(start.Span), Name: name, Args: args}
	}

	// T[][]
	for p.at(token.LBracket) {
		p.advance()
		if _, ok := p.expect(token.RBracket, "']' in array type"); !ok {
			return nil, false
		}
		typ = &ast.ArrayType{Loc: p.spanFrom(start.Span), Elem: typ}
	}
	return typ, true
}

// parseTypeParams: '<' Ident {',' Ident} [','] '>'
func (p *Parser) parseTypeParams() ([]*ast.TypeParam, bool) {
	if !p.at(token.Lt) {
		return nil, true
	}
	p.advance()
	params, ok := parseCommaList(p, token.Gt, false, func() (*ast.TypeParam, bool) {
		name, ok := p.parseIdent("type parameter name")
		if !ok {
			return nil, false
		}
		return &ast.TypeParam{Loc: name.Loc, Name: name}, true
	})
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Gt, "'>' to close type parameters"); !ok {
		return nil, false
	}
	return params, true
}
