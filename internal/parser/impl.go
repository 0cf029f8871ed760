package parser

import (
	"rscanon/internal/ast"
	"rscanon/internal/diag"
	"rscanon/internal/token"
)

// parseImplItem: impl<..> [const] [!]Trait for Target [where ..] { members } | impl<..> Target { .. }
func (p *Parser) parseImplItem() (ast.ItemID, bool) {
	start := p.advance().Span // impl

	if p.at(token.Lt) && !p.skipGenerics() {
		return ast.NoItemID, false
	}
	p.eat(token.KwConst)
	_, negative := p.eat(token.Bang)

	first, ok := p.parseType()
	if !ok {
		return ast.NoItemID, false
	}
	impl := ast.ImplItem{Target: first, Negative: negative}
	if _, ok := p.eat(token.KwFor); ok {
		impl.Trait = first
		if impl.Target, ok = p.parseType(); !ok {
			return ast.NoItemID, false
		}
	}
	if !p.skipWhere() {
		return ast.NoItemID, false
	}

	if _, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{' after impl header"); !ok {
		return ast.NoItemID, false
	}
	p.parseInnerAttrs()
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.err(diag.SynUnclosedDelimiter, "unclosed impl block")
			return ast.NoItemID, false
		}
		member, ok := p.parseImplMember()
		if !ok {
			return ast.NoItemID, false
		}
		impl.Members = append(impl.Members, member)
	}
	p.advance() // }

	return p.arenas.Items.NewImpl(impl, start.Cover(p.lastSpan)), true
}

func (p *Parser) parseImplMember() (ast.ItemID, bool) {
	start := p.peek().Span
	attrs := p.parseOuterAttrs()
	vis := p.parseVisibility()
	if p.atContextual(0, "default") && !p.atN(1, token.Bang) {
		p.advance()
	}

	var (
		id ast.ItemID
		ok bool
	)
	switch {
	case p.isFnStart():
		id, ok = p.parseFnItem()
	case p.at(token.KwConst):
		id, ok = p.skipItem("const", true)
	case p.at(token.KwType):
		id, ok = p.skipItem("type", true)
	case p.isMacroItemStart():
		id, ok = p.parseMacroItem()
	default:
		p.err(diag.SynUnexpectedToken, "expected impl member, got \""+p.peek().Text+"\"")
		return ast.NoItemID, false
	}
	if !ok {
		return ast.NoItemID, false
	}
	item := p.arenas.Items.Get(id)
	item.Vis = vis
	item.Attrs = attrs
	item.Span = start.Cover(p.lastSpan)
	return id, true
}
