package parser

import (
	"rscanon/internal/ast"
	"rscanon/internal/diag"
	"rscanon/internal/token"
)

// parseStructItem: struct Name<..> { fields } | struct Name<..>(types) [where ..]; | struct Name;
func (p *Parser) parseStructItem() (ast.ItemID, bool) {
	start := p.advance().Span // struct

	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	if p.at(token.Lt) && !p.skipGenerics() {
		return ast.NoItemID, false
	}

	switch {
	case p.at(token.Semicolon):
		p.advance()
		return p.arenas.Items.NewStruct(name, ast.StructUnit, nil, start.Cover(p.lastSpan)), true

	case p.at(token.LParen):
		fields, ok := p.parseTupleFields()
		if !ok || !p.skipWhere() {
			return ast.NoItemID, false
		}
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after tuple struct"); !ok {
			return ast.NoItemID, false
		}
		return p.arenas.Items.NewStruct(name, ast.StructTuple, fields, start.Cover(p.lastSpan)), true
	}

	if !p.skipWhere() {
		return ast.NoItemID, false
	}
	if p.at(token.Semicolon) {
		p.advance()
		return p.arenas.Items.NewStruct(name, ast.StructUnit, nil, start.Cover(p.lastSpan)), true
	}
	fields, ok := p.parseNamedFields()
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewStruct(name, ast.StructNamed, fields, start.Cover(p.lastSpan)), true
}

func (p *Parser) parseNamedFields() ([]ast.FieldID, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{' in struct declaration"); !ok {
		return nil, false
	}
	fields := make([]ast.FieldID, 0, 4)
	for !p.at(token.RBrace) {
		p.parseOuterAttrs()
		start := p.peek().Span
		vis := p.parseVisibility()
		name, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectType, "expected ':' after field name"); !ok {
			return nil, false
		}
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		// значение по умолчанию `a: T = expr`
		if _, ok := p.eat(token.Assign); ok {
			if _, ok := p.parseExpr(); !ok {
				return nil, false
			}
		}
		fields = append(fields, p.arenas.Items.NewField(ast.StructField{
			Name: name, Type: ty, Vis: vis, Span: start.Cover(p.lastSpan),
		}))
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' after struct fields"); !ok {
		return nil, false
	}
	return fields, true
}

func (p *Parser) parseTupleFields() ([]ast.FieldID, bool) {
	p.advance() // (
	fields := make([]ast.FieldID, 0, 2)
	for !p.at(token.RParen) {
		p.parseOuterAttrs()
		start := p.peek().Span
		vis := p.parseVisibility()
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		fields = append(fields, p.arenas.Items.NewField(ast.StructField{
			Type: ty, Vis: vis, Span: start.Cover(p.lastSpan),
		}))
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after tuple fields"); !ok {
		return nil, false
	}
	return fields, true
}
