package parser

import (
	"rscanon/internal/ast"
	"rscanon/internal/diag"
	"rscanon/internal/source"
	"rscanon/internal/token"
)

// parsePrimaryExpr разбирает первичное выражение.
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	exprs := p.arenas.Exprs
	tok := p.peek()

	switch tok.Kind {
	case token.IntLit, token.FloatLit, token.StrLit, token.CharLit, token.KwTrue, token.KwFalse:
		return p.parseLiteralExpr()

	case token.Pound:
		// атрибуты на выражении: #[allow(x)] expr
		p.parseOuterAttrs()
		return p.parsePrimaryExpr()

	case token.Ident, token.KwSelfValue, token.KwSelfType, token.KwSuper, token.KwCrate, token.PathSep:
		return p.parsePathStartExpr()

	case token.Lt, token.Shl:
		start := tok.Span
		if !p.skipQualifiedSelf() {
			return ast.NoExprID, false
		}
		path := ast.Path{}
		for p.at(token.PathSep) {
			p.advance()
			rest, ok := p.parsePath(pathModeExpr)
			if !ok {
				return ast.NoExprID, false
			}
			path.Segments = append(path.Segments, rest.Segments...)
		}
		path.Span = start.Cover(p.lastSpan)
		return exprs.NewPath(path.Span, path), true

	case token.LParen:
		return p.parseParenExpr()

	case token.LBracket:
		return p.parseArrayExpr()

	case token.LBrace:
		return p.parseBlockExpr()

	case token.KwUnsafe:
		if p.atN(1, token.LBrace) {
			p.advance()
			return p.parseBlockWith(tok.Span, source.NoStringID, ast.BlockUnsafe)
		}

	case token.KwConst:
		if p.atN(1, token.LBrace) {
			p.advance()
			return p.parseBlockWith(tok.Span, source.NoStringID, ast.BlockConst)
		}

	case token.KwAsync:
		n := 1
		if p.atN(1, token.KwMove) {
			n = 2
		}
		if p.atN(n, token.LBrace) {
			for range n {
				p.advance()
			}
			return p.parseBlockWith(tok.Span, source.NoStringID, ast.BlockAsync)
		}
		return p.parseClosureExpr()

	case token.KwMove, token.Pipe, token.OrOr, token.KwStatic:
		return p.parseClosureExpr()

	case token.Lifetime:
		if p.atN(1, token.Colon) {
			return p.parseLabeledExpr()
		}

	case token.KwIf:
		return p.parseIfExpr()
	case token.KwMatch:
		return p.parseMatchExpr()
	case token.KwWhile:
		return p.parseWhileExpr(tok.Span, source.NoStringID)
	case token.KwFor:
		return p.parseForExpr(tok.Span, source.NoStringID)
	case token.KwLoop:
		return p.parseLoopExpr(tok.Span, source.NoStringID)

	case token.KwReturn, token.KwBreak, token.KwContinue:
		return p.parseJumpExpr()

	case token.KwLet:
		p.advance()
		pat, ok := p.parsePattern()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in let condition"); !ok {
			return ast.NoExprID, false
		}
		value, ok := p.parseBinaryExpr(precComparison)
		if !ok {
			return ast.NoExprID, false
		}
		return exprs.NewLet(tok.Span.Cover(p.lastSpan), pat, value), true
	}

	p.err(diag.SynExpectExpression, "expected expression, got \""+tok.Text+"\"")
	return ast.NoExprID, false
}

func (p *Parser) parseLiteralExpr() (ast.ExprID, bool) {
	tok := p.peek()
	var kind ast.LitKind
	switch tok.Kind {
	case token.IntLit:
		kind = ast.LitInt
	case token.FloatLit:
		kind = ast.LitFloat
	case token.StrLit:
		kind = ast.LitStr
	case token.CharLit:
		kind = ast.LitChar
	case token.KwTrue, token.KwFalse:
		kind = ast.LitBool
	default:
		p.err(diag.SynExpectExpression, "expected literal, got \""+tok.Text+"\"")
		return ast.NoExprID, false
	}
	p.advance()
	return p.arenas.Exprs.NewLiteral(tok.Span, kind, p.intern(tok.Text)), true
}

// parsePathStartExpr: путь, макрос path!(..) или struct-литерал Path { .. }.
func (p *Parser) parsePathStartExpr() (ast.ExprID, bool) {
	if p.isMacroItemStart() {
		return p.parseMacroExpr()
	}
	path, ok := p.parsePath(pathModeExpr)
	if !ok {
		return ast.NoExprID, false
	}
	if p.at(token.LBrace) && !p.noStruct {
		return p.parseStructLit(path)
	}
	return p.arenas.Exprs.NewPath(path.Span, path), true
}

// parseMacroExpr: path!(..) | path![..] | path!{..}
func (p *Parser) parseMacroExpr() (ast.ExprID, bool) {
	start := p.peek().Span
	path, ok := p.parsePath(pathModeMod)
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Bang, diag.SynUnexpectedToken, "expected '!' in macro invocation"); !ok {
		return ast.NoExprID, false
	}
	open := p.peek()
	if !open.Kind.IsOpen() {
		p.err(diag.SynUnexpectedToken, "expected macro delimiter, got \""+open.Text+"\"")
		return ast.NoExprID, false
	}
	group, ok := p.skipTokenTree()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewMacro(start.Cover(p.lastSpan), ast.ExprMacroData{
		Path:   path,
		Delim:  open.Text[0],
		Tokens: p.innerText(group),
	}), true
}

// parseStructLit: Path { a: x, b, ..base }
func (p *Parser) parseStructLit(path ast.Path) (ast.ExprID, bool) {
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	p.advance() // {
	data := ast.ExprStructData{Path: path}
	for !p.at(token.RBrace) {
		p.parseOuterAttrs()
		if _, ok := p.eat(token.DotDot); ok {
			if !p.at(token.RBrace) {
				rest, ok := p.parseExpr()
				if !ok {
					return ast.NoExprID, false
				}
				data.Rest = rest
			}
			break
		}
		nameTok := p.peek()
		if nameTok.Kind != token.Ident && nameTok.Kind != token.IntLit {
			p.err(diag.SynExpectIdentifier, "expected field name in struct literal, got \""+nameTok.Text+"\"")
			return ast.NoExprID, false
		}
		p.advance()
		field := ast.StructLitField{Name: p.intern(nameTok.Text)}
		if _, ok := p.eat(token.Colon); ok {
			value, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			field.Value = value
		} else {
			seg := ast.PathSegment{Name: field.Name}
			field.Value = p.arenas.Exprs.NewPath(nameTok.Span, ast.Path{Segments: []ast.PathSegment{seg}, Span: nameTok.Span})
		}
		data.Fields = append(data.Fields, field)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' after struct literal"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewStruct(path.Span.Cover(p.lastSpan), data), true
}

// parseParenExpr: () | (x) | (x,) | (a, b)
func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	start := p.advance().Span // (
	elems := make([]ast.ExprID, 0, 2)
	trailing := false
	for !p.at(token.RParen) {
		p.parseOuterAttrs()
		e, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, e)
		_, trailing = p.eat(token.Comma)
		if !trailing {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'"); !ok {
		return ast.NoExprID, false
	}
	span := start.Cover(p.lastSpan)
	if len(elems) == 1 && !trailing {
		return p.arenas.Exprs.NewWrap(ast.ExprParen, span, elems[0]), true
	}
	return p.arenas.Exprs.NewTuple(span, elems), true
}

// parseArrayExpr: [a, b] | [x; N]
func (p *Parser) parseArrayExpr() (ast.ExprID, bool) {
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	start := p.advance().Span // [
	if _, ok := p.eat(token.RBracket); ok {
		return p.arenas.Exprs.NewArray(start.Cover(p.lastSpan), nil, ast.NoExprID), true
	}
	first, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.eat(token.Semicolon); ok {
		n, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']'"); !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewArray(start.Cover(p.lastSpan), []ast.ExprID{first}, n), true
	}
	elems := []ast.ExprID{first}
	if _, ok := p.eat(token.Comma); ok {
		rest, ok := p.parseExprList(token.RBracket, "expected ']'")
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, rest...)
	} else if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']'"); !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewArray(start.Cover(p.lastSpan), elems, ast.NoExprID), true
}

// parseJumpExpr: return [x] | break ['a] [x] | continue ['a]
func (p *Parser) parseJumpExpr() (ast.ExprID, bool) {
	tok := p.advance()
	kind := ast.ExprReturn
	switch tok.Kind {
	case token.KwBreak:
		kind = ast.ExprBreak
	case token.KwContinue:
		kind = ast.ExprContinue
	}
	label := source.NoStringID
	if kind != ast.ExprReturn && p.at(token.Lifetime) {
		label = p.intern(p.advance().Text)
	}
	value := ast.NoExprID
	if kind != ast.ExprContinue && p.canBeginJumpValue() {
		var ok bool
		if value, ok = p.parseExpr(); !ok {
			return ast.NoExprID, false
		}
	}
	return p.arenas.Exprs.NewJump(kind, tok.Span.Cover(p.lastSpan), label, value), true
}

func (p *Parser) canBeginJumpValue() bool {
	k := p.peek().Kind
	if k == token.LBrace && p.noStruct {
		return false
	}
	return canBeginExpr(k)
}
