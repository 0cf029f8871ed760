package parser

import (
	"slices"

	"rscanon/internal/ast"
	"rscanon/internal/diag"
	"rscanon/internal/lexer"
	"rscanon/internal/source"
	"rscanon/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   ast.FileID
	Errors uint
}

// Parser - состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer  // поток токенов
	buf      []token.Token // окно просмотра вперёд
	arenas   *ast.Builder  // построитель аренных узлов
	file     ast.FileID
	content  []byte
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
	// noStruct запрещает struct-литерал `P { .. }` (условия if/while/match/for)
	noStruct bool
}

// ParseFile - входная точка для разбора одного файла.
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(lx.EmptySpan()),
		content:  lx.File().Content,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseItems()
	return Result{
		File:   p.file,
		Errors: p.opts.CurrentErrors,
	}
}

// peekN возвращает токен на n позиций вперёд (0 - текущий).
func (p *Parser) peekN(n int) token.Token {
	for len(p.buf) <= n {
		p.buf = append(p.buf, p.lx.Next())
	}
	return p.buf[n]
}

func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// atN проверяет вид токена на позиции n.
func (p *Parser) atN(n int, k token.Kind) bool {
	return p.peekN(n).Kind == k
}

// eat съедает токен вида k, если он текущий.
func (p *Parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// atContextual проверяет контекстное слово (union, macro_rules, default, auto, raw).
func (p *Parser) atContextual(n int, word string) bool {
	tok := p.peekN(n)
	return tok.Kind == token.Ident && tok.Text == word
}

// parseItems - основной цикл верхнего уровня: пока не EOF - parseItem.
func (p *Parser) parseItems() {
	startSpan := p.peek().Span
	p.arenas.Files.Get(p.file).InnerAttrs = p.parseInnerAttrs()
	for !p.at(token.EOF) {
		if p.opts.Enough() {
			break
		}
		before := p.lastSpan
		itemID, ok := p.parseItem()
		if ok {
			p.arenas.PushItem(p.file, itemID)
			continue
		}
		p.resyncTop(before)
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.peek().Span)
}

// resyncTop - восстановление после ошибки на верхнем уровне:
// прокручиваем до ';' ИЛИ до стартового токена следующего item ИЛИ EOF.
func (p *Parser) resyncTop(before source.Span) {
	if p.lastSpan == before && !p.at(token.EOF) {
		p.advance() // гарантируем прогресс
	}
	for !p.at(token.EOF) {
		tok := p.peek()
		switch {
		case tok.Kind == token.Semicolon:
			p.advance()
			return
		case tok.Kind.IsOpen():
			p.skipTokenTree()
		case isItemStarter(tok.Kind) || tok.Kind == token.Pound:
			return
		default:
			p.advance()
		}
	}
}

// isItemStarter - принадлежит ли токен стартерам item.
func isItemStarter(k token.Kind) bool {
	switch k {
	case token.KwFn, token.KwStruct, token.KwImpl, token.KwPub, token.KwUse, token.KwMod,
		token.KwTrait, token.KwEnum, token.KwConst, token.KwStatic, token.KwType,
		token.KwExtern, token.KwUnsafe, token.KwAsync:
		return true
	}
	return false
}

// parseIdent - ожидает Ident и интернирует его.
func (p *Parser) parseIdent() (source.StringID, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.intern(tok.Text), true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got \""+p.peek().Text+"\"")
	return source.NoStringID, false
}

func (p *Parser) intern(s string) source.StringID {
	return p.arenas.StringsInterner.Intern(s)
}
