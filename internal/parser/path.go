package parser

import (
	"rscanon/internal/ast"
	"rscanon/internal/diag"
	"rscanon/internal/token"
)

type pathMode uint8

const (
	pathModeExpr pathMode = iota // generic-аргументы только через ::<..>
	pathModeType                 // Vec<T>, Fn(A) -> B
	pathModeMod                  // без аргументов
)

func isPathSegmentStart(k token.Kind) bool {
	switch k {
	case token.Ident, token.KwSelfValue, token.KwSelfType, token.KwSuper, token.KwCrate:
		return true
	}
	return false
}

// parsePath разбирает a::b::<T>::c в зависимости от режима.
func (p *Parser) parsePath(mode pathMode) (ast.Path, bool) {
	start := p.peek().Span
	path := ast.Path{}
	if _, ok := p.eat(token.PathSep); ok {
		path.Global = true
	}

	for {
		tok := p.peek()
		if !isPathSegmentStart(tok.Kind) {
			p.err(diag.SynExpectIdentifier, "expected path segment, got \""+tok.Text+"\"")
			return path, false
		}
		p.advance()
		seg := ast.PathSegment{Name: p.intern(tok.Text)}

		switch mode {
		case pathModeType:
			switch {
			case p.atOr(token.Lt, token.Shl):
				args, ok := p.parseGenericArgs()
				if !ok {
					return path, false
				}
				seg.Args = args
			case p.at(token.PathSep) && p.atOr1(token.Lt, token.Shl):
				p.advance()
				args, ok := p.parseGenericArgs()
				if !ok {
					return path, false
				}
				seg.Args = args
			case p.at(token.LParen):
				if !p.parseParenthesizedArgs(&seg) {
					return path, false
				}
			}
		case pathModeExpr:
			if p.at(token.PathSep) && p.atOr1(token.Lt, token.Shl) {
				p.advance()
				args, ok := p.parseGenericArgs()
				if !ok {
					return path, false
				}
				seg.Args = args
			}
		}
		path.Segments = append(path.Segments, seg)

		if p.at(token.PathSep) && isPathSegmentStart(p.peekN(1).Kind) {
			p.advance()
			continue
		}
		break
	}
	path.Span = start.Cover(p.lastSpan)
	return path, true
}

// atOr1 проверяет вид токена на позиции 1.
func (p *Parser) atOr1(kinds ...token.Kind) bool {
	k := p.peekN(1).Kind
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// parseGenericArgs разбирает <T, 'a, N, Item = U>, начиная с '<'.
func (p *Parser) parseGenericArgs() ([]ast.GenericArg, bool) {
	p.eatLt()
	args := make([]ast.GenericArg, 0, 2)
	for !p.atGt() {
		arg, ok := p.parseGenericArg()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if !p.eatGt() {
		p.err(diag.SynUnclosedDelimiter, "expected '>' to close generic arguments, got \""+p.peek().Text+"\"")
		return nil, false
	}
	return args, true
}

func (p *Parser) parseGenericArg() (ast.GenericArg, bool) {
	tok := p.peek()
	switch {
	case tok.Kind == token.Lifetime:
		p.advance()
		return ast.GenericArg{Kind: ast.GenericArgLifetime, Lifetime: p.intern(tok.Text)}, true

	case tok.Kind == token.Ident && p.atN(1, token.Assign):
		p.advance()
		p.advance()
		ty, ok := p.parseType()
		return ast.GenericArg{Kind: ast.GenericArgBinding, Name: p.intern(tok.Text), Type: ty}, ok

	case tok.Kind == token.Ident && p.atN(1, token.Colon) && !p.atN(2, token.Colon):
		// ограничение Item: Bound - сохраняем как binding без типа
		p.advance()
		p.advance()
		if _, ok := p.parseBounds(true); !ok {
			return ast.GenericArg{}, false
		}
		return ast.GenericArg{Kind: ast.GenericArgBinding, Name: p.intern(tok.Text)}, true

	case tok.Kind == token.LBrace:
		e, ok := p.parseBlockExpr()
		return ast.GenericArg{Kind: ast.GenericArgConst, Const: e}, ok

	case tok.Kind.IsLiteral() || tok.Kind == token.KwTrue || tok.Kind == token.KwFalse ||
		tok.Kind == token.Minus:
		e, ok := p.parseUnaryExpr()
		return ast.GenericArg{Kind: ast.GenericArgConst, Const: e}, ok
	}
	ty, ok := p.parseType()
	return ast.GenericArg{Kind: ast.GenericArgType, Type: ty}, ok
}

// parseParenthesizedArgs: Fn(A, B) -> R
func (p *Parser) parseParenthesizedArgs(seg *ast.PathSegment) bool {
	p.advance() // (
	seg.Parenthesized = true
	for !p.at(token.RParen) {
		ty, ok := p.parseType()
		if !ok {
			return false
		}
		seg.Inputs = append(seg.Inputs, ty)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'"); !ok {
		return false
	}
	if _, ok := p.eat(token.Arrow); ok {
		ty, ok := p.parseTypeNoBounds()
		if !ok {
			return false
		}
		seg.Output = ty
	}
	return true
}
