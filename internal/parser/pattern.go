package parser

import (
	"rscanon/internal/ast"
	"rscanon/internal/diag"
	"rscanon/internal/source"
	"rscanon/internal/token"
)

// parsePattern разбирает паттерн верхнего уровня с альтернативами: [|] a | b.
func (p *Parser) parsePattern() (ast.PatID, bool) {
	start := p.peek().Span
	_, leading := p.eat(token.Pipe)
	first, ok := p.parsePatternNoAlt()
	if !ok {
		return ast.NoPatID, false
	}
	if !p.at(token.Pipe) {
		if leading {
			return p.arenas.Pats.NewList(ast.PatOr, start.Cover(p.lastSpan), []ast.PatID{first}), true
		}
		return first, true
	}
	alts := []ast.PatID{first}
	for p.at(token.Pipe) {
		p.advance()
		alt, ok := p.parsePatternNoAlt()
		if !ok {
			return ast.NoPatID, false
		}
		alts = append(alts, alt)
	}
	return p.arenas.Pats.NewList(ast.PatOr, start.Cover(p.lastSpan), alts), true
}

// parsePatternNoAlt разбирает один паттерн без '|'.
func (p *Parser) parsePatternNoAlt() (ast.PatID, bool) {
	pats := p.arenas.Pats
	tok := p.peek()
	start := tok.Span

	switch tok.Kind {
	case token.Underscore:
		p.advance()
		return pats.NewWild(tok.Span), true

	case token.DotDot:
		p.advance()
		// ..=X и ..X - полуоткрытый диапазон
		if p.canBeginRangeEnd() {
			hi, ok := p.parseRangePatBound()
			if !ok {
				return ast.NoPatID, false
			}
			return pats.NewLit(ast.PatRange, start.Cover(p.lastSpan), ast.PatLitData{Hi: hi}), true
		}
		return pats.NewRest(tok.Span), true

	case token.DotDotEq:
		p.advance()
		hi, ok := p.parseRangePatBound()
		if !ok {
			return ast.NoPatID, false
		}
		return pats.NewLit(ast.PatRange, start.Cover(p.lastSpan), ast.PatLitData{Hi: hi, Inclusive: true}), true

	case token.Amp, token.AndAnd:
		p.eatAmp()
		_, mut := p.eat(token.KwMut)
		inner, ok := p.parsePatternNoAlt()
		if !ok {
			return ast.NoPatID, false
		}
		return pats.NewRef(start.Cover(p.lastSpan), mut, inner), true

	case token.LParen:
		elems, trailing, ok := p.parsePatList(token.RParen)
		if !ok {
			return ast.NoPatID, false
		}
		if len(elems) == 1 && !trailing {
			return elems[0], true // (p) - скобки
		}
		return pats.NewList(ast.PatTuple, start.Cover(p.lastSpan), elems), true

	case token.LBracket:
		elems, _, ok := p.parsePatList(token.RBracket)
		if !ok {
			return ast.NoPatID, false
		}
		return pats.NewList(ast.PatSlice, start.Cover(p.lastSpan), elems), true

	case token.KwRef, token.KwMut:
		return p.parseIdentPat()

	case token.Ident:
		if !p.atOr1(token.PathSep, token.LParen, token.LBrace, token.Bang) {
			return p.maybeRangePat(p.parseIdentPat)
		}
	}

	if isPathSegmentStart(tok.Kind) || tok.Kind == token.PathSep || tok.Kind == token.Lt {
		return p.maybeRangePat(p.parsePathPat)
	}
	if tok.Kind.IsLiteral() || tok.Kind == token.Minus || tok.Kind == token.KwTrue || tok.Kind == token.KwFalse {
		return p.maybeRangePat(p.parseLitPat)
	}
	if tok.Kind == token.KwConst && p.atN(1, token.LBrace) {
		p.advance()
		e, ok := p.parseBlockExpr()
		if !ok {
			return ast.NoPatID, false
		}
		return pats.NewLit(ast.PatLit, start.Cover(p.lastSpan), ast.PatLitData{Lo: e}), true
	}

	p.err(diag.SynExpectPattern, "expected pattern, got \""+tok.Text+"\"")
	return ast.NoPatID, false
}

// parseIdentPat: [ref] [mut] name [@ subpattern]
func (p *Parser) parseIdentPat() (ast.PatID, bool) {
	start := p.peek().Span
	data := ast.PatIdentData{}
	_, data.Ref = p.eat(token.KwRef)
	_, data.Mut = p.eat(token.KwMut)
	name, ok := p.parseBindingName()
	if !ok {
		return ast.NoPatID, false
	}
	data.Name = name
	if _, ok := p.eat(token.At); ok {
		sub, ok := p.parsePatternNoAlt()
		if !ok {
			return ast.NoPatID, false
		}
		data.Sub = sub
	}
	return p.arenas.Pats.NewIdent(start.Cover(p.lastSpan), data), true
}

func (p *Parser) parseBindingName() (source.StringID, bool) {
	if p.at(token.Ident) {
		return p.intern(p.advance().Text), true
	}
	p.err(diag.SynExpectIdentifier, "expected binding name, got \""+p.peek().Text+"\"")
	return source.NoStringID, false
}

// parsePathPat: None | a::B | Some(x) | Point { x, y: py, .. } | <T>::C
func (p *Parser) parsePathPat() (ast.PatID, bool) {
	pats := p.arenas.Pats
	start := p.peek().Span

	if p.atOr(token.Lt, token.Shl) {
		if !p.skipQualifiedSelf() {
			return ast.NoPatID, false
		}
		for p.at(token.PathSep) {
			p.advance()
			if _, ok := p.parsePath(pathModeExpr); !ok {
				return ast.NoPatID, false
			}
		}
		return pats.NewPath(start.Cover(p.lastSpan), ast.PatPathData{}), true
	}

	if p.isMacroItemStart() {
		m, ok := p.parseMacroExpr()
		if !ok {
			return ast.NoPatID, false
		}
		return pats.NewLit(ast.PatLit, start.Cover(p.lastSpan), ast.PatLitData{Lo: m}), true
	}

	path, ok := p.parsePath(pathModeExpr)
	if !ok {
		return ast.NoPatID, false
	}

	switch {
	case p.at(token.LParen):
		elems, _, ok := p.parsePatList(token.RParen)
		if !ok {
			return ast.NoPatID, false
		}
		return pats.NewPath(start.Cover(p.lastSpan), ast.PatPathData{Path: path, Tuple: true, Elems: elems}), true

	case p.at(token.LBrace):
		return p.parseStructPat(start, path)
	}

	return pats.NewPath(start.Cover(p.lastSpan), ast.PatPathData{Path: path}), true
}

func (p *Parser) parseStructPat(start source.Span, path ast.Path) (ast.PatID, bool) {
	p.advance() // {
	data := ast.PatStructData{Path: path}
	for !p.at(token.RBrace) {
		p.parseOuterAttrs()
		if _, ok := p.eat(token.DotDot); ok {
			data.Rest = true
			break
		}
		switch {
		case (p.at(token.Ident) || p.at(token.IntLit)) && p.atN(1, token.Colon):
			name := p.intern(p.advance().Text)
			p.advance() // :
			pat, ok := p.parsePattern()
			if !ok {
				return ast.NoPatID, false
			}
			data.Fields = append(data.Fields, ast.PatField{Name: name, Pat: pat})
		default:
			// shorthand: [box] [ref] [mut] name
			if p.atContextual(0, "box") {
				p.advance()
			}
			bind, ok := p.parseIdentPat()
			if !ok {
				return ast.NoPatID, false
			}
			ident, _ := p.arenas.Pats.Ident(bind)
			data.Fields = append(data.Fields, ast.PatField{Name: ident.Name, Pat: bind})
		}
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' in struct pattern"); !ok {
		return ast.NoPatID, false
	}
	return p.arenas.Pats.NewStruct(start.Cover(p.lastSpan), data), true
}

// parsePatList разбирает (p, q) или [p, q]; возвращает флаг завершающей запятой.
func (p *Parser) parsePatList(closer token.Kind) ([]ast.PatID, bool, bool) {
	p.advance() // ( или [
	elems := make([]ast.PatID, 0, 2)
	trailing := false
	for !p.at(closer) {
		pat, ok := p.parsePattern()
		if !ok {
			return nil, false, false
		}
		elems = append(elems, pat)
		_, trailing = p.eat(token.Comma)
		if !trailing {
			break
		}
	}
	if _, ok := p.expect(closer, diag.SynUnclosedDelimiter, "expected '"+closer.String()+"' in pattern"); !ok {
		return nil, false, false
	}
	return elems, trailing, true
}

// parseLitPat: 1 | -1 | "s" | b'x' | true
func (p *Parser) parseLitPat() (ast.PatID, bool) {
	start := p.peek().Span
	e, ok := p.parseRangePatBound()
	if !ok {
		return ast.NoPatID, false
	}
	return p.arenas.Pats.NewLit(ast.PatLit, start.Cover(p.lastSpan), ast.PatLitData{Lo: e}), true
}

// parseRangePatBound - литерал (с возможным '-') или путь как граница диапазона.
func (p *Parser) parseRangePatBound() (ast.ExprID, bool) {
	tok := p.peek()
	if tok.Kind == token.Minus {
		p.advance()
		inner, ok := p.parseLiteralExpr()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUnary(tok.Span.Cover(p.lastSpan), ast.UnaryNeg, inner), true
	}
	if tok.Kind.IsLiteral() || tok.Kind == token.KwTrue || tok.Kind == token.KwFalse {
		return p.parseLiteralExpr()
	}
	if isPathSegmentStart(tok.Kind) || tok.Kind == token.PathSep {
		path, ok := p.parsePath(pathModeExpr)
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewPath(path.Span, path), true
	}
	p.err(diag.SynExpectPattern, "expected range pattern bound, got \""+tok.Text+"\"")
	return ast.NoExprID, false
}

func (p *Parser) canBeginRangeEnd() bool {
	tok := p.peek()
	return tok.Kind.IsLiteral() || tok.Kind == token.Minus || isPathSegmentStart(tok.Kind) || tok.Kind == token.PathSep
}

// maybeRangePat оборачивает паттерн в диапазон, если за ним идёт .. / ..= / ...
func (p *Parser) maybeRangePat(parse func() (ast.PatID, bool)) (ast.PatID, bool) {
	start := p.peek().Span
	pat, ok := parse()
	if !ok || !p.atOr(token.DotDot, token.DotDotEq, token.DotDotDot) {
		return pat, ok
	}
	lo := p.patAsExpr(pat)
	if lo == ast.NoExprID {
		return pat, true
	}
	op := p.advance()
	data := ast.PatLitData{Lo: lo, Inclusive: op.Kind != token.DotDot}
	if op.Kind != token.DotDot || p.canBeginRangeEnd() {
		hi, ok := p.parseRangePatBound()
		if !ok {
			return ast.NoPatID, false
		}
		data.Hi = hi
	}
	return p.arenas.Pats.NewLit(ast.PatRange, start.Cover(p.lastSpan), data), true
}

// patAsExpr достаёт выражение-границу из литерального, путевого или ident-паттерна.
func (p *Parser) patAsExpr(id ast.PatID) ast.ExprID {
	pats := p.arenas.Pats
	pat := pats.Get(id)
	switch pat.Kind {
	case ast.PatLit:
		lit, _ := pats.Lit(id)
		return lit.Lo
	case ast.PatPath:
		data, _ := pats.Path(id)
		if data.Tuple || len(data.Path.Segments) == 0 {
			return ast.NoExprID
		}
		return p.arenas.Exprs.NewPath(pat.Span, data.Path)
	case ast.PatIdent:
		data, _ := pats.Ident(id)
		if data.Ref || data.Mut || data.Sub.IsValid() {
			return ast.NoExprID
		}
		seg := ast.PathSegment{Name: data.Name}
		return p.arenas.Exprs.NewPath(pat.Span, ast.Path{Segments: []ast.PathSegment{seg}, Span: pat.Span})
	}
	return ast.NoExprID
}
