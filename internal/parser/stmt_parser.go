package parser

import (
	"rscanon/internal/ast"
	"rscanon/internal/diag"
	"rscanon/internal/source"
	"rscanon/internal/token"
)

// parseBlockExpr разбирает { stmts } как ExprBlock.
func (p *Parser) parseBlockExpr() (ast.ExprID, bool) {
	return p.parseBlockWith(p.peek().Span, source.NoStringID, ast.BlockPlain)
}

// parseBlockWith разбирает блок; start включает префикс (unsafe, async, метку).
func (p *Parser) parseBlockWith(start source.Span, label source.StringID, flavor ast.BlockFlavor) (ast.ExprID, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{'"); !ok {
		return ast.NoExprID, false
	}

	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	p.parseInnerAttrs()
	stmts := make([]ast.StmtID, 0, 4)
	for {
		for p.at(token.Semicolon) {
			tok := p.advance()
			stmts = append(stmts, p.arenas.Stmts.NewEmpty(tok.Span))
		}
		if p.at(token.RBrace) {
			break
		}
		if p.at(token.EOF) {
			p.report(diag.SynUnclosedDelimiter, diag.SevError, start, "unclosed block")
			return ast.NoExprID, false
		}
		stmt, ok := p.parseStmt()
		if !ok {
			return ast.NoExprID, false
		}
		stmts = append(stmts, stmt)
	}
	p.advance() // }

	return p.arenas.Exprs.NewBlock(start.Cover(p.lastSpan), ast.ExprBlockData{
		Label:  label,
		Flavor: flavor,
		Stmts:  stmts,
	}), true
}

// parseStmt разбирает одну инструкцию блока.
func (p *Parser) parseStmt() (ast.StmtID, bool) {
	start := p.peek().Span
	stmts := p.arenas.Stmts

	if p.isItemInBlock() {
		item, ok := p.parseItem()
		if !ok {
			return ast.NoStmtID, false
		}
		return stmts.NewItem(start.Cover(p.lastSpan), item), true
	}

	p.parseOuterAttrs()
	if p.at(token.KwLet) {
		return p.parseLetStmt()
	}

	var (
		expr ast.ExprID
		ok   bool
	)
	if p.isBlockLikeStart() {
		if expr, ok = p.parsePrimaryExpr(); !ok {
			return ast.NoStmtID, false
		}
		// if .. {}.method()? продолжает выражение, иначе инструкция закончена
		if !p.atOr(token.Dot, token.Question) {
			_, semi := p.eat(token.Semicolon)
			return stmts.NewExpr(start.Cover(p.lastSpan), expr, semi), true
		}
		if expr, ok = p.parsePostfixRest(expr); !ok {
			return ast.NoStmtID, false
		}
		if expr, ok = p.parseBinaryRest(expr, 0); !ok {
			return ast.NoStmtID, false
		}
	} else if expr, ok = p.parseExpr(); !ok {
		return ast.NoStmtID, false
	}

	_, semi := p.eat(token.Semicolon)
	if !semi && !p.at(token.RBrace) && !p.arenas.Exprs.IsBlockLike(expr) {
		p.err(diag.SynExpectSemicolon, "expected ';' after expression, got \""+p.peek().Text+"\"")
		return ast.NoStmtID, false
	}

	span := start.Cover(p.lastSpan)
	if m, isMacro := p.arenas.Exprs.Macro(expr); isMacro && (semi || m.Delim == '{') {
		return stmts.NewMacro(span, expr, semi), true
	}
	return stmts.NewExpr(span, expr, semi), true
}

// parseLetStmt: let pat [: T] [= init [else { .. }]];
func (p *Parser) parseLetStmt() (ast.StmtID, bool) {
	start := p.advance().Span // let
	let := ast.LetStmt{}
	var ok bool
	if let.Pat, ok = p.parsePattern(); !ok {
		return ast.NoStmtID, false
	}
	if _, colon := p.eat(token.Colon); colon {
		if let.Type, ok = p.parseType(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, assign := p.eat(token.Assign); assign {
		if let.Init, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
		if _, els := p.eat(token.KwElse); els {
			if let.Else, ok = p.parseBlockExpr(); !ok {
				return ast.NoStmtID, false
			}
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after let statement"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewLet(start.Cover(p.lastSpan), let), true
}

// isBlockLikeStart - начинается ли инструкция с выражения-блока.
func (p *Parser) isBlockLikeStart() bool {
	switch p.peek().Kind {
	case token.KwIf, token.KwMatch, token.KwWhile, token.KwFor, token.KwLoop, token.LBrace:
		return true
	case token.KwUnsafe, token.KwConst:
		return p.atN(1, token.LBrace)
	case token.Lifetime:
		return p.atN(1, token.Colon)
	}
	return false
}

// isItemInBlock - начинается ли инструкция с вложенного item.
func (p *Parser) isItemInBlock() bool {
	n := 0
	for p.atN(n, token.Pound) && p.atN(n+1, token.LBracket) {
		// атрибуты перед item: смотрим за сбалансированную группу
		depth := 0
		n++
		for {
			k := p.peekN(n).Kind
			if k == token.EOF {
				return false
			}
			n++
			if k.IsOpen() {
				depth++
			} else if k.IsClose() {
				depth--
				if depth == 0 {
					break
				}
			}
		}
	}
	switch p.peekN(n).Kind {
	case token.KwFn, token.KwStruct, token.KwImpl, token.KwUse, token.KwMod, token.KwTrait,
		token.KwEnum, token.KwType, token.KwExtern, token.KwPub:
		return true
	case token.KwStatic:
		return p.atN(n+1, token.Ident) || p.atN(n+1, token.KwMut)
	case token.KwConst:
		return !p.atN(n+1, token.LBrace)
	case token.KwUnsafe:
		return !p.atN(n+1, token.LBrace)
	case token.KwAsync:
		return p.isFnStartAt(n)
	case token.Ident:
		tok := p.peekN(n)
		switch tok.Text {
		case "union":
			return p.atN(n+1, token.Ident)
		case "macro_rules":
			return p.atN(n+1, token.Bang)
		}
	}
	return false
}
