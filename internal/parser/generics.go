package parser

import (
	"rscanon/internal/diag"
	"rscanon/internal/token"
)

// skipGenerics пропускает список параметров <...>; дерево их не хранит.
func (p *Parser) skipGenerics() bool {
	if !p.eatLt() {
		return true
	}
	depth := 1
	for depth > 0 {
		switch {
		case p.at(token.EOF):
			p.err(diag.SynUnclosedDelimiter, "unclosed generic parameter list")
			return false
		case p.atGt():
			p.eatGt()
			depth--
		case p.atOr(token.Lt, token.Shl, token.LtEq):
			p.eatLt()
			depth++
		case p.peek().Kind.IsOpen():
			if _, ok := p.skipTokenTree(); !ok {
				return false
			}
		case p.peek().Kind.IsClose():
			p.err(diag.SynUnbalancedDelims, "unexpected \""+p.peek().Text+"\" in generic parameter list")
			return false
		default:
			p.advance()
		}
	}
	return true
}

// skipWhere пропускает where-клаузу до '{' или ';' на нулевой глубине.
func (p *Parser) skipWhere() bool {
	if _, ok := p.eat(token.KwWhere); !ok {
		return true
	}
	angle := 0
	for {
		switch {
		case p.at(token.EOF):
			p.err(diag.SynExpectBlock, "unexpected end of file in where clause")
			return false
		case angle == 0 && p.atOr(token.LBrace, token.Semicolon):
			return true
		case p.atOr(token.Lt, token.Shl, token.LtEq):
			p.eatLt()
			angle++
		case angle > 0 && p.atGt():
			p.eatGt()
			angle--
		case p.peek().Kind.IsOpen():
			if _, ok := p.skipTokenTree(); !ok {
				return false
			}
		case p.peek().Kind.IsClose():
			p.err(diag.SynUnbalancedDelims, "unexpected \""+p.peek().Text+"\" in where clause")
			return false
		default:
			p.advance()
		}
	}
}
