package parser

import (
	"rscanon/internal/ast"
	"rscanon/internal/diag"
	"rscanon/internal/source"
	"rscanon/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(0)
}

// parseExprNoStruct - выражение в условии if/while/match/for: `S { .. }` не литерал.
func (p *Parser) parseExprNoStruct() (ast.ExprID, bool) {
	saved := p.noStruct
	p.noStruct = true
	defer func() { p.noStruct = saved }()
	return p.parseExpr()
}

// parseExprNoStructReset - выражение внутри скобок, где ограничение снимается.
func (p *Parser) parseExprNoStructReset() (ast.ExprID, bool) {
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()
	return p.parseExpr()
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	var left ast.ExprID
	if p.atOr(token.DotDot, token.DotDotEq) && minPrec <= precRange {
		// префиксный диапазон ..x / ..=x / ..
		opTok := p.advance()
		hi := ast.NoExprID
		if p.canBeginRangeHi() {
			var ok bool
			if hi, ok = p.parseBinaryExpr(precRange + 1); !ok {
				return ast.NoExprID, false
			}
		}
		left = p.arenas.Exprs.NewRange(opTok.Span.Cover(p.lastSpan), ast.NoExprID, hi, opTok.Kind == token.DotDotEq)
	} else {
		var ok bool
		if left, ok = p.parseUnaryExpr(); !ok {
			return ast.NoExprID, false
		}
	}
	return p.parseBinaryRest(left, minPrec)
}

// parseBinaryRest продолжает разбор бинарных операторов после готового левого операнда.
func (p *Parser) parseBinaryRest(left ast.ExprID, minPrec int) (ast.ExprID, bool) {
	exprs := p.arenas.Exprs
	for {
		tok := p.peek()

		if tok.Kind == token.KwAs && precCast >= minPrec {
			p.advance()
			ty, ok := p.parseTypeNoBounds()
			if !ok {
				return ast.NoExprID, false
			}
			left = exprs.NewCast(exprs.Get(left).Span.Cover(p.lastSpan), left, ty)
			continue
		}

		if (tok.Kind == token.DotDot || tok.Kind == token.DotDotEq) && precRange >= minPrec {
			p.advance()
			hi := ast.NoExprID
			if p.canBeginRangeHi() {
				var ok bool
				if hi, ok = p.parseBinaryExpr(precRange + 1); !ok {
					return ast.NoExprID, false
				}
			}
			left = exprs.NewRange(exprs.Get(left).Span.Cover(p.lastSpan), left, hi, tok.Kind == token.DotDotEq)
			continue
		}

		prec, isRightAssoc := getBinaryOperatorPrec(tok.Kind)
		if prec < 0 || prec < minPrec {
			break // приоритет слишком низкий
		}
		opTok := p.advance()

		nextMinPrec := prec + 1
		if isRightAssoc {
			nextMinPrec = prec
		}
		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			return ast.NoExprID, false
		}

		span := exprs.Get(left).Span.Cover(exprs.Get(right).Span)
		if opTok.Kind == token.Assign {
			left = exprs.NewAssign(span, left, right)
		} else {
			left = exprs.NewBinary(span, binaryOps[opTok.Kind], left, right)
		}
	}
	return left, true
}

// canBeginRangeHi - есть ли правая граница диапазона (for i in 0.. { - нет).
func (p *Parser) canBeginRangeHi() bool {
	k := p.peek().Kind
	if k == token.LBrace && p.noStruct {
		return false
	}
	switch k {
	case token.DotDot, token.DotDotEq, token.KwLet:
		return false
	}
	return canBeginExpr(k) && k != token.Pound
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	type prefixOp struct {
		ref  bool
		data ast.ExprRefData
		op   ast.UnaryOp
		span source.Span
	}
	var prefixes []prefixOp

	for {
		tok := p.peek()
		if tok.Kind == token.Amp || tok.Kind == token.AndAnd {
			ampTok, _ := p.eatAmp()
			pre := prefixOp{ref: true, span: ampTok.Span}
			// &raw const x / &raw mut x
			if p.atContextual(0, "raw") && p.atOr1(token.KwConst, token.KwMut) {
				p.advance()
				pre.data.Raw = true
				if p.advance().Kind == token.KwMut {
					pre.data.Mut = true
				}
			} else if _, ok := p.eat(token.KwMut); ok {
				pre.data.Mut = true
			}
			prefixes = append(prefixes, pre)
			continue
		}
		if op, ok := getUnaryOperator(tok.Kind); ok {
			p.advance()
			prefixes = append(prefixes, prefixOp{op: op, span: tok.Span})
			continue
		}
		break
	}

	operand, ok := p.parsePostfixExpr()
	if !ok {
		return ast.NoExprID, false
	}

	exprs := p.arenas.Exprs
	for i := len(prefixes) - 1; i >= 0; i-- {
		pre := prefixes[i]
		span := pre.span.Cover(exprs.Get(operand).Span)
		if pre.ref {
			data := pre.data
			data.X = operand
			operand = exprs.NewRef(span, data)
		} else {
			operand = exprs.NewUnary(span, pre.op, operand)
		}
	}
	return operand, true
}

// parsePostfixExpr: primary, затем ?, .await, .field, .method(), (args), [index]
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.parsePostfixRest(expr)
}

func (p *Parser) parsePostfixRest(expr ast.ExprID) (ast.ExprID, bool) {
	exprs := p.arenas.Exprs
	for {
		start := exprs.Get(expr).Span
		switch p.peek().Kind {
		case token.Question:
			p.advance()
			expr = exprs.NewWrap(ast.ExprTry, start.Cover(p.lastSpan), expr)

		case token.Dot:
			p.advance()
			next := p.peek()
			switch {
			case next.Kind == token.KwAwait:
				p.advance()
				expr = exprs.NewWrap(ast.ExprAwait, start.Cover(p.lastSpan), expr)
			case next.Kind == token.IntLit:
				p.advance()
				expr = exprs.NewField(start.Cover(p.lastSpan), expr, p.intern(next.Text))
			case next.Kind == token.Ident:
				p.advance()
				name := p.intern(next.Text)
				if !p.atOr(token.LParen, token.PathSep) {
					expr = exprs.NewField(start.Cover(p.lastSpan), expr, name)
					continue
				}
				data := ast.ExprMethodCallData{Receiver: expr, Method: name}
				if _, ok := p.eat(token.PathSep); ok {
					if !p.atOr(token.Lt, token.Shl) {
						p.err(diag.SynUnexpectedToken, "expected '<' after '::' in method call")
						return ast.NoExprID, false
					}
					args, ok := p.parseGenericArgs()
					if !ok {
						return ast.NoExprID, false
					}
					data.Turbofish = args
				}
				args, ok := p.parseCallArgs()
				if !ok {
					return ast.NoExprID, false
				}
				data.Args = args
				expr = exprs.NewMethodCall(start.Cover(p.lastSpan), data)
			default:
				p.err(diag.SynExpectIdentifier, "expected field or method name after '.', got \""+next.Text+"\"")
				return ast.NoExprID, false
			}

		case token.LParen:
			args, ok := p.parseCallArgs()
			if !ok {
				return ast.NoExprID, false
			}
			expr = exprs.NewCall(start.Cover(p.lastSpan), expr, args)

		case token.LBracket:
			p.advance()
			index, ok := p.parseExprNoStructReset()
			if !ok {
				return ast.NoExprID, false
			}
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' after index"); !ok {
				return ast.NoExprID, false
			}
			expr = exprs.NewIndex(start.Cover(p.lastSpan), expr, index)

		default:
			return expr, true
		}
	}
}

// parseCallArgs: (a, b, c)
func (p *Parser) parseCallArgs() ([]ast.ExprID, bool) {
	p.advance() // (
	return p.parseExprList(token.RParen, "expected ')' after arguments")
}

// parseExprList разбирает a, b, c до закрывающего токена (включительно).
func (p *Parser) parseExprList(closer token.Kind, msg string) ([]ast.ExprID, bool) {
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	list := make([]ast.ExprID, 0, 2)
	for !p.at(closer) {
		p.parseOuterAttrs()
		e, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		list = append(list, e)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(closer, diag.SynUnclosedDelimiter, msg); !ok {
		return nil, false
	}
	return list, true
}
