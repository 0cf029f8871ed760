package parser

import (
	"rscanon/internal/ast"
	"rscanon/internal/diag"
	"rscanon/internal/token"
)

// parseFnItem: [const] [async] [unsafe] [extern "abi"] fn name<..>(params) [-> T] [where ..] (block | ;)
func (p *Parser) parseFnItem() (ast.ItemID, bool) {
	start := p.peek().Span
	for !p.at(token.KwFn) {
		p.advance()
		if p.at(token.StrLit) {
			p.advance()
		}
	}
	p.advance() // fn

	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	if p.at(token.Lt) && !p.skipGenerics() {
		return ast.NoItemID, false
	}
	params, ok := p.parseFnParams()
	if !ok {
		return ast.NoItemID, false
	}

	ret := ast.NoTypeID
	if _, ok := p.eat(token.Arrow); ok {
		if ret, ok = p.parseType(); !ok {
			return ast.NoItemID, false
		}
	}
	if !p.skipWhere() {
		return ast.NoItemID, false
	}

	body := ast.NoExprID
	switch {
	case p.at(token.Semicolon):
		p.advance()
	case p.at(token.LBrace):
		if body, ok = p.parseBlockExpr(); !ok {
			return ast.NoItemID, false
		}
	default:
		p.err(diag.SynExpectBlock, "expected function body, got \""+p.peek().Text+"\"")
		return ast.NoItemID, false
	}

	return p.arenas.Items.NewFn(name, params, ret, body, start.Cover(p.lastSpan)), true
}

func (p *Parser) parseFnParams() ([]ast.FnParamID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return nil, false
	}
	params := make([]ast.FnParamID, 0, 4)
	for !p.at(token.RParen) {
		param, ok := p.parseFnParam()
		if !ok {
			return nil, false
		}
		params = append(params, param)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after parameters"); !ok {
		return nil, false
	}
	return params, true
}

func (p *Parser) parseFnParam() (ast.FnParamID, bool) {
	p.parseOuterAttrs()
	start := p.peek().Span

	if p.isReceiver() {
		return p.parseReceiver()
	}
	// variadic в extern fn: `...` или `args: ...`
	if _, ok := p.eat(token.DotDotDot); ok {
		return p.arenas.Items.NewFnParam(ast.FnParam{Span: start}), true
	}

	pat, ok := p.parsePatternNoAlt()
	if !ok {
		return ast.NoFnParamID, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectType, "expected ':' after parameter pattern"); !ok {
		return ast.NoFnParamID, false
	}
	if _, ok := p.eat(token.DotDotDot); ok {
		return p.arenas.Items.NewFnParam(ast.FnParam{Pat: pat, Span: start.Cover(p.lastSpan)}), true
	}
	ty, ok := p.parseType()
	if !ok {
		return ast.NoFnParamID, false
	}
	return p.arenas.Items.NewFnParam(ast.FnParam{Pat: pat, Type: ty, Span: start.Cover(p.lastSpan)}), true
}

// isReceiver: self | mut self | &self | &mut self | &'a self | &'a mut self (+ ": Type").
func (p *Parser) isReceiver() bool {
	n := 0
	if p.atN(0, token.Amp) {
		n++
		if p.atN(n, token.Lifetime) {
			n++
		}
	}
	if p.atN(n, token.KwMut) {
		n++
	}
	return p.atN(n, token.KwSelfValue) && !p.atN(n+1, token.PathSep)
}

func (p *Parser) parseReceiver() (ast.FnParamID, bool) {
	start := p.peek().Span
	for !p.at(token.KwSelfValue) {
		p.advance()
	}
	p.advance() // self

	ty := ast.NoTypeID
	if _, ok := p.eat(token.Colon); ok {
		var ok bool
		if ty, ok = p.parseType(); !ok {
			return ast.NoFnParamID, false
		}
	}
	return p.arenas.Items.NewFnParam(ast.FnParam{Receiver: true, Type: ty, Span: start.Cover(p.lastSpan)}), true
}
