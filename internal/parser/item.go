package parser

import (
	"rscanon/internal/ast"
	"rscanon/internal/diag"
	"rscanon/internal/source"
	"rscanon/internal/token"
)

// parseItem разбирает атрибуты, видимость и саму конструкцию верхнего уровня.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	start := p.peek().Span
	attrs := p.parseOuterAttrs()
	vis := p.parseVisibility()

	id, ok := p.parseItemKind()
	if !ok {
		return ast.NoItemID, false
	}
	item := p.arenas.Items.Get(id)
	item.Vis = vis
	item.Attrs = attrs
	item.Span = start.Cover(p.lastSpan)
	return id, true
}

// parseItemKind выбирает по первому токену нужный распознаватель.
func (p *Parser) parseItemKind() (ast.ItemID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.KwStruct:
		return p.parseStructItem()
	case token.KwImpl:
		return p.parseImplItem()
	case token.KwUse:
		return p.skipItem("use", true)
	case token.KwMod:
		return p.skipItem("mod", false)
	case token.KwTrait:
		return p.skipItem("trait", false)
	case token.KwEnum:
		return p.skipItem("enum", false)
	case token.KwType:
		return p.skipItem("type", true)
	case token.KwStatic:
		return p.skipItem("static", true)
	case token.KwConst:
		if p.isFnStart() {
			return p.parseFnItem()
		}
		return p.skipItem("const", true)
	case token.KwUnsafe:
		switch p.peekN(1).Kind {
		case token.KwImpl:
			p.advance()
			return p.parseImplItem()
		case token.KwTrait:
			p.advance()
			return p.skipItem("trait", false)
		case token.KwExtern:
			if !p.isFnStart() {
				p.advance()
				return p.skipItem("extern", false)
			}
		case token.KwMod:
			p.advance()
			return p.skipItem("mod", false)
		}
		if p.isFnStart() {
			return p.parseFnItem()
		}
	case token.KwExtern:
		if p.isFnStart() {
			return p.parseFnItem()
		}
		if p.atN(1, token.KwCrate) {
			return p.skipItem("extern crate", true)
		}
		return p.skipItem("extern", false)
	case token.KwFn, token.KwAsync:
		if p.isFnStart() {
			return p.parseFnItem()
		}
	case token.Ident, token.PathSep, token.KwSelfValue, token.KwSuper, token.KwCrate:
		switch {
		case p.atContextual(0, "union") && p.atN(1, token.Ident):
			return p.skipItem("union", false)
		case p.atContextual(0, "auto") && p.atN(1, token.KwTrait):
			p.advance()
			return p.skipItem("trait", false)
		case p.atContextual(0, "default") && (p.atN(1, token.KwImpl) || p.atN(1, token.KwUnsafe)):
			p.advance()
			return p.parseItemKind()
		case p.atContextual(0, "default") && p.isFnStartAt(1):
			p.advance()
			return p.parseFnItem()
		case p.atContextual(0, "macro_rules") && p.atN(1, token.Bang):
			return p.parseMacroItem()
		default:
			if p.isMacroItemStart() {
				return p.parseMacroItem()
			}
		}
	}
	p.report(diag.SynUnexpectedTopLevel, diag.SevError, p.getDiagnosticSpan(), "expected item, got \""+tok.Text+"\"")
	return ast.NoItemID, false
}

// isFnStart - стоит ли парсер на [const] [async] [unsafe] [extern "abi"] fn.
func (p *Parser) isFnStart() bool {
	return p.isFnStartAt(0)
}

func (p *Parser) isFnStartAt(n int) bool {
	for {
		switch p.peekN(n).Kind {
		case token.KwFn:
			return true
		case token.KwConst, token.KwAsync, token.KwUnsafe:
			n++
		case token.KwExtern:
			n++
			if p.atN(n, token.StrLit) {
				n++
			}
		default:
			return false
		}
	}
}

// skipItem пропускает конструкцию, которую дерево хранит только по ключевому слову.
// semiOnly: конец только по ';' (use a::{b, c};), иначе также по закрытию {...}.
func (p *Parser) skipItem(keyword string, semiOnly bool) (ast.ItemID, bool) {
	start := p.advance().Span
	if keyword == "extern crate" {
		p.advance()
	}
	name := source.NoStringID
	if p.at(token.Ident) {
		name = p.intern(p.peek().Text)
	}
	if !p.skipItemTail(semiOnly) {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewOther(keyword, name, start.Cover(p.lastSpan)), true
}

// skipItemTail съедает токены до конца item на глубине 0.
func (p *Parser) skipItemTail(semiOnly bool) bool {
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF:
			p.err(diag.SynExpectSemicolon, "expected ';' or '}' at end of item")
			return false
		case tok.Kind == token.Semicolon:
			p.advance()
			return true
		case tok.Kind == token.LBrace && !semiOnly:
			_, ok := p.skipTokenTree()
			return ok
		case tok.Kind.IsOpen():
			if _, ok := p.skipTokenTree(); !ok {
				return false
			}
		case tok.Kind.IsClose():
			p.report(diag.SynUnbalancedDelims, diag.SevError, tok.Span, "unexpected closing delimiter \""+tok.Text+"\"")
			return false
		default:
			p.advance()
		}
	}
}

// isMacroItemStart - путь, за которым идёт '!' (foo!{..}, a::b!(..);).
func (p *Parser) isMacroItemStart() bool {
	n := 0
	if p.atN(0, token.PathSep) {
		n++
	}
	for {
		k := p.peekN(n).Kind
		if k != token.Ident && k != token.KwSelfValue && k != token.KwSuper && k != token.KwCrate {
			return false
		}
		n++
		if p.atN(n, token.Bang) {
			return true
		}
		if !p.atN(n, token.PathSep) {
			return false
		}
		n++
	}
}

// parseMacroItem: path! [name] (..); | path! [name] {..}
func (p *Parser) parseMacroItem() (ast.ItemID, bool) {
	start := p.peek().Span
	path, ok := p.parsePath(pathModeMod)
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.Bang, diag.SynUnexpectedToken, "expected '!'"); !ok {
		return ast.NoItemID, false
	}
	name := source.NoStringID
	if p.at(token.Ident) {
		name = p.intern(p.advance().Text)
	}
	if !p.peek().Kind.IsOpen() {
		p.err(diag.SynUnexpectedToken, "expected macro delimiter")
		return ast.NoItemID, false
	}
	brace := p.at(token.LBrace)
	if _, ok := p.skipTokenTree(); !ok {
		return ast.NoItemID, false
	}
	if !brace {
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after macro invocation"); !ok {
			return ast.NoItemID, false
		}
	} else {
		p.eat(token.Semicolon)
	}
	keyword := "macro"
	if len(path.Segments) == 1 && p.arenas.Name(path.Segments[0].Name) == "macro_rules" {
		keyword = "macro_rules"
	}
	return p.arenas.Items.NewOther(keyword, name, start.Cover(p.lastSpan)), true
}
