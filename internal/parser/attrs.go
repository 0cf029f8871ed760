package parser

import (
	"rscanon/internal/ast"
	"rscanon/internal/token"
)

// parseOuterAttrs пропускает #[...] и doc-атрибуты, возвращает их количество.
func (p *Parser) parseOuterAttrs() int {
	n := 0
	for p.at(token.Pound) && p.atN(1, token.LBracket) {
		p.advance()
		p.skipTokenTree()
		n++
	}
	return n
}

// parseInnerAttrs пропускает #![...].
func (p *Parser) parseInnerAttrs() int {
	n := 0
	for p.at(token.Pound) && p.atN(1, token.Bang) && p.atN(2, token.LBracket) {
		p.advance()
		p.advance()
		p.skipTokenTree()
		n++
	}
	return n
}

// parseVisibility: pub, pub(crate), pub(self), pub(super), pub(in path).
func (p *Parser) parseVisibility() ast.Visibility {
	if !p.at(token.KwPub) {
		return ast.VisPrivate
	}
	p.advance()
	if !p.at(token.LParen) {
		return ast.VisPublic
	}
	switch p.peekN(1).Kind {
	case token.KwCrate, token.KwSelfValue, token.KwSuper:
		if !p.atN(2, token.RParen) {
			return ast.VisPublic
		}
	case token.KwIn:
	default:
		// pub (A, B) у tuple-поля
		return ast.VisPublic
	}
	p.skipTokenTree()
	return ast.VisRestricted
}
