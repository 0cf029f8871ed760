package parser

import (
	"rscanon/internal/ast"
	"rscanon/internal/diag"
	"rscanon/internal/token"
)

// parseType разбирает тип; допускает `A + B` после пути (bare trait object).
func (p *Parser) parseType() (ast.TypeID, bool) {
	return p.parseTypeImpl(true)
}

// parseTypeNoBounds - тип без '+' (после `as`, `&`, `*const`).
func (p *Parser) parseTypeNoBounds() (ast.TypeID, bool) {
	return p.parseTypeImpl(false)
}

func (p *Parser) parseTypeImpl(allowPlus bool) (ast.TypeID, bool) {
	types := p.arenas.Types
	tok := p.peek()
	start := tok.Span

	switch tok.Kind {
	case token.LParen:
		return p.parseTupleType()

	case token.Bang:
		p.advance()
		return types.NewSimple(ast.TypeNever, tok.Span), true

	case token.Underscore:
		p.advance()
		return types.NewSimple(ast.TypeInfer, tok.Span), true

	case token.Amp, token.AndAnd:
		p.eatAmp()
		data := ast.TypeRefData{}
		if lt, ok := p.eat(token.Lifetime); ok {
			data.Lifetime = p.intern(lt.Text)
		}
		_, data.Mut = p.eat(token.KwMut)
		elem, ok := p.parseTypeNoBounds()
		if !ok {
			return ast.NoTypeID, false
		}
		data.Elem = elem
		return types.NewRef(ast.TypeRef, start.Cover(p.lastSpan), data), true

	case token.Star:
		p.advance()
		data := ast.TypeRefData{}
		switch {
		case p.at(token.KwMut):
			p.advance()
			data.Mut = true
		case p.at(token.KwConst):
			p.advance()
		default:
			p.err(diag.SynExpectType, "expected 'const' or 'mut' after '*' in pointer type")
			return ast.NoTypeID, false
		}
		elem, ok := p.parseTypeNoBounds()
		if !ok {
			return ast.NoTypeID, false
		}
		data.Elem = elem
		return types.NewRef(ast.TypePtr, start.Cover(p.lastSpan), data), true

	case token.LBracket:
		p.advance()
		elem, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		kind, length := ast.TypeSlice, ast.NoExprID
		if _, ok := p.eat(token.Semicolon); ok {
			kind = ast.TypeArray
			if length, ok = p.parseExprNoStructReset(); !ok {
				return ast.NoTypeID, false
			}
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' in array type"); !ok {
			return ast.NoTypeID, false
		}
		return types.NewArray(kind, start.Cover(p.lastSpan), elem, length), true

	case token.KwFn, token.KwUnsafe, token.KwExtern:
		return p.parseFnPtrType()

	case token.KwFor:
		// for<'a> fn(&'a T) / for<'a> Trait
		p.advance()
		if !p.skipGenerics() {
			return ast.NoTypeID, false
		}
		return p.parseTypeImpl(allowPlus)

	case token.KwImpl, token.KwDyn:
		p.advance()
		kind := ast.TypeImpl
		if tok.Kind == token.KwDyn {
			kind = ast.TypeDyn
		}
		bounds, ok := p.parseBounds(allowPlus)
		if !ok {
			return ast.NoTypeID, false
		}
		return types.NewBounds(kind, start.Cover(p.lastSpan), ast.TypeBoundsData{Bounds: bounds}), true

	case token.Question:
		// ?Sized как тип-ограничение в bare-позиции
		bounds, ok := p.parseBounds(allowPlus)
		if !ok {
			return ast.NoTypeID, false
		}
		return types.NewBounds(ast.TypeDyn, start.Cover(p.lastSpan), ast.TypeBoundsData{Bounds: bounds, Bare: true}), true

	case token.Lt, token.Shl:
		return p.parseQualifiedType()

	case token.Ident, token.KwSelfType, token.KwSelfValue, token.KwSuper, token.KwCrate, token.PathSep:
		if p.isMacroItemStart() {
			m, ok := p.parseMacroExpr()
			if !ok {
				return ast.NoTypeID, false
			}
			return types.NewMacro(start.Cover(p.lastSpan), m), true
		}
		path, ok := p.parsePath(pathModeType)
		if !ok {
			return ast.NoTypeID, false
		}
		ty := types.NewPath(path.Span, path)
		if allowPlus && p.at(token.Plus) {
			bounds := []ast.Bound{{Type: ty}}
			p.advance()
			more, ok := p.parseBounds(true)
			if !ok {
				return ast.NoTypeID, false
			}
			bounds = append(bounds, more...)
			return types.NewBounds(ast.TypeDyn, start.Cover(p.lastSpan), ast.TypeBoundsData{Bounds: bounds, Bare: true}), true
		}
		return ty, true
	}

	p.err(diag.SynExpectType, "expected type, got \""+tok.Text+"\"")
	return ast.NoTypeID, false
}

// parseTupleType: () | (T) | (T,) | (A, B)
func (p *Parser) parseTupleType() (ast.TypeID, bool) {
	start := p.advance().Span // (
	elems := make([]ast.TypeID, 0, 2)
	trailingComma := false
	for !p.at(token.RParen) {
		ty, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		elems = append(elems, ty)
		_, trailingComma = p.eat(token.Comma)
		if !trailingComma {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' in tuple type"); !ok {
		return ast.NoTypeID, false
	}
	if len(elems) == 1 && !trailingComma {
		return elems[0], true // (T) - просто скобки
	}
	return p.arenas.Types.NewTuple(start.Cover(p.lastSpan), elems), true
}

// parseFnPtrType: [unsafe] [extern "abi"] fn(A, b: B, ...) [-> R]
func (p *Parser) parseFnPtrType() (ast.TypeID, bool) {
	start := p.peek().Span
	data := ast.TypeFnData{}
	if _, ok := p.eat(token.KwUnsafe); ok {
		data.Unsafe = true
	}
	if _, ok := p.eat(token.KwExtern); ok {
		p.eat(token.StrLit)
	}
	if _, ok := p.expect(token.KwFn, diag.SynExpectType, "expected 'fn' in function pointer type"); !ok {
		return ast.NoTypeID, false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('"); !ok {
		return ast.NoTypeID, false
	}
	for !p.at(token.RParen) {
		p.parseOuterAttrs()
		if _, ok := p.eat(token.DotDotDot); ok {
			break
		}
		// именованный параметр `x: T` или `_: T`
		if p.atOr(token.Ident, token.Underscore) && p.atN(1, token.Colon) && !p.atN(2, token.Colon) {
			p.advance()
			p.advance()
		}
		ty, ok := p.parseType()
		if !ok {
			return ast.NoTypeID, false
		}
		data.Params = append(data.Params, ty)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' in function pointer type"); !ok {
		return ast.NoTypeID, false
	}
	if _, ok := p.eat(token.Arrow); ok {
		ret, ok := p.parseTypeNoBounds()
		if !ok {
			return ast.NoTypeID, false
		}
		data.Result = ret
	}
	return p.arenas.Types.NewFn(start.Cover(p.lastSpan), data), true
}

// parseQualifiedType: <T as Trait>::Name - дерево хранит такой тип как TypeUnknown.
func (p *Parser) parseQualifiedType() (ast.TypeID, bool) {
	start := p.peek().Span
	if !p.skipQualifiedSelf() {
		return ast.NoTypeID, false
	}
	for p.at(token.PathSep) {
		p.advance()
		if _, ok := p.parsePath(pathModeType); !ok {
			return ast.NoTypeID, false
		}
	}
	return p.arenas.Types.NewSimple(ast.TypeUnknown, start.Cover(p.lastSpan)), true
}

// skipQualifiedSelf съедает <T [as Trait]>.
func (p *Parser) skipQualifiedSelf() bool {
	p.eatLt()
	if _, ok := p.parseType(); !ok {
		return false
	}
	if _, ok := p.eat(token.KwAs); ok {
		if _, ok := p.parsePath(pathModeType); !ok {
			return false
		}
	}
	if !p.eatGt() {
		p.err(diag.SynUnclosedDelimiter, "expected '>' in qualified path")
		return false
	}
	return true
}

// parseBounds: Trait + 'a + ?Sized + (Trait) + for<'a> Fn(&'a T)
func (p *Parser) parseBounds(allowPlus bool) ([]ast.Bound, bool) {
	var bounds []ast.Bound
	for {
		b, ok := p.parseBound()
		if !ok {
			return nil, false
		}
		bounds = append(bounds, b)
		if !allowPlus || !p.at(token.Plus) {
			return bounds, true
		}
		p.advance()
		// завершающий '+' допустим: T: A + {
		if !p.atOr(token.Lifetime, token.Question, token.LParen, token.KwFor, token.Tilde, token.KwConst) &&
			!isPathSegmentStart(p.peek().Kind) && !p.at(token.PathSep) {
			return bounds, true
		}
	}
}

func (p *Parser) parseBound() (ast.Bound, bool) {
	if lt, ok := p.eat(token.Lifetime); ok {
		return ast.Bound{Lifetime: p.intern(lt.Text)}, true
	}
	if _, ok := p.eat(token.LParen); ok {
		b, ok := p.parseBound()
		if !ok {
			return b, false
		}
		_, ok = p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' in bound")
		return b, ok
	}
	b := ast.Bound{}
	// ~const Trait / const Trait
	p.eat(token.Tilde)
	p.eat(token.KwConst)
	if _, ok := p.eat(token.Question); ok {
		b.Maybe = true
	}
	if _, ok := p.eat(token.KwFor); ok {
		if !p.skipGenerics() {
			return b, false
		}
	}
	start := p.peek().Span
	path, ok := p.parsePath(pathModeType)
	if !ok {
		return b, false
	}
	b.Type = p.arenas.Types.NewPath(start.Cover(p.lastSpan), path)
	return b, true
}
