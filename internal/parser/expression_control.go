package parser

import (
	"rscanon/internal/ast"
	"rscanon/internal/diag"
	"rscanon/internal/source"
	"rscanon/internal/token"
)

// parseIfExpr: if cond { .. } [else if .. | else { .. }]
func (p *Parser) parseIfExpr() (ast.ExprID, bool) {
	start := p.advance().Span // if
	cond, ok := p.parseExprNoStruct()
	if !ok {
		return ast.NoExprID, false
	}
	then, ok := p.parseBlockExpr()
	if !ok {
		return ast.NoExprID, false
	}
	els := ast.NoExprID
	if _, ok := p.eat(token.KwElse); ok {
		switch {
		case p.at(token.KwIf):
			els, ok = p.parseIfExpr()
		case p.at(token.LBrace):
			els, ok = p.parseBlockExpr()
		default:
			p.err(diag.SynExpectBlock, "expected '{' or 'if' after 'else', got \""+p.peek().Text+"\"")
			return ast.NoExprID, false
		}
		if !ok {
			return ast.NoExprID, false
		}
	}
	return p.arenas.Exprs.NewIf(start.Cover(p.lastSpan), cond, then, els), true
}

// parseLabeledExpr: 'a: loop/while/for/{ .. }
func (p *Parser) parseLabeledExpr() (ast.ExprID, bool) {
	labelTok := p.advance()
	p.advance() // :
	label := p.intern(labelTok.Text)
	switch p.peek().Kind {
	case token.KwWhile:
		return p.parseWhileExpr(labelTok.Span, label)
	case token.KwFor:
		return p.parseForExpr(labelTok.Span, label)
	case token.KwLoop:
		return p.parseLoopExpr(labelTok.Span, label)
	case token.LBrace:
		return p.parseBlockWith(labelTok.Span, label, ast.BlockPlain)
	}
	p.err(diag.SynUnexpectedToken, "expected loop or block after label, got \""+p.peek().Text+"\"")
	return ast.NoExprID, false
}

func (p *Parser) parseWhileExpr(start source.Span, label source.StringID) (ast.ExprID, bool) {
	p.advance() // while
	cond, ok := p.parseExprNoStruct()
	if !ok {
		return ast.NoExprID, false
	}
	body, ok := p.parseBlockExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewWhile(start.Cover(p.lastSpan), label, cond, body), true
}

func (p *Parser) parseForExpr(start source.Span, label source.StringID) (ast.ExprID, bool) {
	p.advance() // for
	pat, ok := p.parsePattern()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.KwIn, diag.SynForMissingIn, "expected 'in' after for-loop pattern"); !ok {
		return ast.NoExprID, false
	}
	iter, ok := p.parseExprNoStruct()
	if !ok {
		return ast.NoExprID, false
	}
	body, ok := p.parseBlockExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewFor(start.Cover(p.lastSpan), ast.ExprForData{
		Label: label, Pat: pat, Iter: iter, Body: body,
	}), true
}

func (p *Parser) parseLoopExpr(start source.Span, label source.StringID) (ast.ExprID, bool) {
	p.advance() // loop
	body, ok := p.parseBlockExpr()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewLoop(start.Cover(p.lastSpan), label, body), true
}

// parseMatchExpr: match x { pat [if guard] => body, .. }
func (p *Parser) parseMatchExpr() (ast.ExprID, bool) {
	start := p.advance().Span // match
	scrutinee, ok := p.parseExprNoStruct()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{' after match scrutinee"); !ok {
		return ast.NoExprID, false
	}

	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	p.parseInnerAttrs()
	var arms []ast.MatchArm
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.err(diag.SynUnclosedDelimiter, "unclosed match block")
			return ast.NoExprID, false
		}
		p.parseOuterAttrs()
		arm := ast.MatchArm{}
		if arm.Pat, ok = p.parsePattern(); !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.eat(token.KwIf); ok {
			if arm.Guard, ok = p.parseExpr(); !ok {
				return ast.NoExprID, false
			}
		}
		if _, ok := p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>' in match arm"); !ok {
			return ast.NoExprID, false
		}
		if arm.Body, ok = p.parseExpr(); !ok {
			return ast.NoExprID, false
		}
		arms = append(arms, arm)

		if _, ok := p.eat(token.Comma); ok {
			continue
		}
		if !p.at(token.RBrace) && !p.arenas.Exprs.IsBlockLike(arm.Body) {
			p.err(diag.SynUnexpectedToken, "expected ',' after match arm, got \""+p.peek().Text+"\"")
			return ast.NoExprID, false
		}
	}
	p.advance() // }
	return p.arenas.Exprs.NewMatch(start.Cover(p.lastSpan), scrutinee, arms), true
}

// parseClosureExpr: [static] [async] [move] |params| [-> T { .. }] body
func (p *Parser) parseClosureExpr() (ast.ExprID, bool) {
	start := p.peek().Span
	data := ast.ExprClosureData{}
	p.eat(token.KwStatic)
	if _, ok := p.eat(token.KwAsync); ok {
		data.Async = true
	}
	if _, ok := p.eat(token.KwMove); ok {
		data.Move = true
	}

	if _, ok := p.eat(token.OrOr); !ok {
		if !p.eatPipe() {
			p.err(diag.SynUnexpectedToken, "expected '|' to start closure parameters, got \""+p.peek().Text+"\"")
			return ast.NoExprID, false
		}
		for !p.at(token.Pipe) {
			p.parseOuterAttrs()
			pat, ok := p.parsePatternNoAlt()
			if !ok {
				return ast.NoExprID, false
			}
			param := ast.ClosureParam{Pat: pat}
			if _, ok := p.eat(token.Colon); ok {
				if param.Type, ok = p.parseTypeNoBounds(); !ok {
					return ast.NoExprID, false
				}
			}
			data.Params = append(data.Params, param)
			if _, ok := p.eat(token.Comma); !ok {
				break
			}
		}
		if !p.eatPipe() {
			p.err(diag.SynUnexpectedToken, "expected '|' after closure parameters, got \""+p.peek().Text+"\"")
			return ast.NoExprID, false
		}
	}

	var ok bool
	if _, arrow := p.eat(token.Arrow); arrow {
		if data.ReturnType, ok = p.parseTypeNoBounds(); !ok {
			return ast.NoExprID, false
		}
		if !p.at(token.LBrace) {
			p.err(diag.SynExpectBlock, "closure with return type needs a block body")
			return ast.NoExprID, false
		}
		data.Body, ok = p.parseBlockExpr()
	} else {
		data.Body, ok = p.parseExpr()
	}
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewClosure(start.Cover(p.lastSpan), data), true
}
