package parser

import (
	"charj/internal/ast"
	"charj/internal/diag"
	"charj/internal/source"
	"charj/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
// Возвращает выражение и флаг успеха
func (p *Parser) parseExpr() (ast.Expr, bool) {
	return p.parseBinaryExpr(0) // минимальный приоритет = 0
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.Expr, bool) {
	ok := p.enter()
	defer p.leave()
	if !ok {
		return nil, false
	}

	// Парсим левую часть (унарные операторы + primary)
	left, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}

	var last binaryOp
	for {
		tok := p.peek()
		info, isOp := binaryOps[tok.Kind]
		if !isOp || info.prec < minPrec {
			break
		}

		// a < b < c: дерево строим левоассоциативно, но ругаемся на второй оператор
		if info.prec == last.prec && info.nonAssociative() {
			p.report(diag.SynAmbiguous, diag.SevError, tok.Span,
				"comparison operators cannot be chained; use parentheses to group them")
		}
		p.advance()

		nextMin := info.prec + 1
		if info.right {
			nextMin = info.prec
		}
		right, ok := p.parseBinaryExpr(nextMin)
		if !ok {
			return nil, false
		}

		loc := left.Span().Cover(right.Span())
		if info.isAssign() {
			p.checkAssignTarget(left)
			left = &ast.AssignExpr{Loc: loc, Op: info.assign, Target: left, Value: right}
		} else {
			left = &ast.BinaryExpr{Loc: loc, Op: info.op, X: left, Y: right}
		}
		last = info
	}

	return left, true
}

// checkAssignTarget: присваивать можно только имени, полю или элементу.
func (p *Parser) checkAssignTarget(target ast.Expr) {
	switch target.(type) {
	case *ast.Ident, *ast.MemberExpr, *ast.IndexExpr, *ast.BadExpr:
		return
	}
	p.report(diag.SynInvalidAssignTarget, diag.SevError, target.Span(),
		"invalid assignment target: expected a name, field or element")
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() (ast.Expr, bool) {
	type prefixOp struct {
		op   ast.UnaryOp
		span source.Span
	}

	var prefixes []prefixOp

	// Собираем все префиксы
	for {
		op, ok := prefixOps[p.peek().Kind]
		if !ok {
			break
		}
		prefixes = append(prefixes, prefixOp{op: op, span: p.advance().Span})
	}

	expr, ok := p.parsePostfixExpr()
	if !ok {
		return nil, false
	}

	// Применяем префиксы справа налево
	for i := len(prefixes) - 1; i >= 0; i-- {
		expr = &ast.UnaryExpr{
			Loc: prefixes[i].span.Cover(expr.Span()),
			Op:  prefixes[i].op,
			X:   expr,
		}
	}

	return expr, true
}

// parsePostfixExpr обрабатывает постфиксные операторы: вызов, индекс, поле.
func (p *Parser) parsePostfixExpr() (ast.Expr, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return nil, false
	}

	for {
		switch p.peek().Kind {
		case token.LParen:
			p.advance()
			args, ok := p.parseArgs("')' to close argument list")
			if !ok {
				return nil, false
			}
			expr = &ast.CallExpr{
				Loc:  expr.Span().Cover(p.lastSpan),
				Fun:  expr,
				Args: args,
			}

		case token.LBracket:
			p.advance()
			index, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			if _, ok := p.expect(token.RBracket, "']' to close index"); !ok {
				return nil, false
			}
			expr = &ast.IndexExpr{
				Loc:   expr.Span().Cover(p.lastSpan),
				X:     expr,
				Index: index,
			}

		case token.Dot:
			p.advance()
			name, ok := p.parseIdent("identifier after '.'")
			if !ok {
				return nil, false
			}
			expr = &ast.MemberExpr{
				Loc:  expr.Span().Cover(name.Loc),
				X:    expr,
				Name: name,
			}

		default:
			return expr, true
		}
	}
}

// parsePrimaryExpr - литералы, имена, скобки, массивы и new.
func (p *Parser) parsePrimaryExpr() (ast.Expr, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.makeIdent(tok), true

	case token.IntLit, token.FloatLit, token.StringLit,
		token.KwTrue, token.KwFalse, token.KwNull:
		p.advance()
		return p.makeLiteral(tok), true

	case token.KwThis:
		p.advance()
		return &ast.ThisExpr{Loc: tok.Span}, true

	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, "')' to close parenthesized expression"); !ok {
			return nil, false
		}
		return &ast.ParenExpr{Loc: p.spanFrom(tok.Span), X: inner}, true

	case token.LBracket:
		p.advance()
		elems, ok := parseCommaList(p, token.RBracket, true, p.parseExpr)
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RBracket, "']' to close array literal"); !ok {
			return nil, false
		}
		return &ast.ArrayLit{Loc: p.spanFrom(tok.Span), Elems: elems}, true

	case token.KwNew:
		return p.parseNewExpr()

	case token.Invalid:
		// лексер уже сообщил об ошибке
		p.advance()
		return &ast.BadExpr{Loc: tok.Span}, true

	default:
		p.errExpected("expression")
		return nil, false
	}
}

// parseNewExpr: new Type(args)
func (p *Parser) parseNewExpr() (ast.Expr, bool) {
	kw := p.advance()
	typ, ok := p.parseType()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.LParen, "'(' after type in 'new' expression"); !ok {
		return nil, false
	}
	args, ok := p.parseArgs("')' to close argument list")
	if !ok {
		return nil, false
	}
	return &ast.NewExpr{Loc: p.spanFrom(kw.Span), Type: typ, Args: args}, true
}

// parseArgs разбирает аргументы после уже съеденной '(' вместе с ')'.
func (p *Parser) parseArgs(closeWhat string) ([]ast.Expr, bool) {
	args, ok := parseCommaList(p, token.RParen, true, p.parseExpr)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, closeWhat); !ok {
		return nil, false
	}
	return args, true
}
