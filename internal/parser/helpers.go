package parser

import (
	"rscanon/internal/diag"
	"rscanon/internal/source"
	"rscanon/internal/token"
)

// advance - съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return tok
	}
	p.buf = p.buf[1:]
	if tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan - для EOF указываем на позицию сразу после последнего токена.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.CollapseToEnd()
	}
	return peek.Span
}

// expect - ожидаем конкретный токен. Если нет - репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.getDiagnosticSpan()
	p.report(code, diag.SevError, sp, msg+", got \""+p.peek().Text+"\"")
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError {
		full := p.opts.Enough()
		p.opts.CurrentErrors++
		if full {
			return false // достигли максимального количества ошибок
		}
	}
	if p.opts.Reporter == nil {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}

// splitFirst отрезает от составного токена первый символ (>> → > >, >= → > =).
// Возвращает съеденную половину; остаток становится текущим токеном.
func (p *Parser) splitFirst(first, rest token.Kind) token.Token {
	tok := p.peek()
	head := token.Token{
		Kind:    first,
		Span:    source.Span{File: tok.Span.File, Start: tok.Span.Start, End: tok.Span.Start + 1},
		Text:    tok.Text[:1],
		Leading: tok.Leading,
	}
	p.buf[0] = token.Token{
		Kind: rest,
		Span: source.Span{File: tok.Span.File, Start: tok.Span.Start + 1, End: tok.Span.End},
		Text: tok.Text[1:],
	}
	p.lastSpan = head.Span
	return head
}

// eatGt съедает '>' в позиции закрытия generic-аргументов, расщепляя >>, >=, >>=.
func (p *Parser) eatGt() bool {
	switch p.peek().Kind {
	case token.Gt:
		p.advance()
	case token.Shr:
		p.splitFirst(token.Gt, token.Gt)
	case token.GtEq:
		p.splitFirst(token.Gt, token.Assign)
	case token.ShrEq:
		p.splitFirst(token.Gt, token.GtEq)
	default:
		return false
	}
	return true
}

func (p *Parser) atGt() bool {
	return p.atOr(token.Gt, token.Shr, token.GtEq, token.ShrEq)
}

// eatLt съедает '<', расщепляя '<<' (Vec<<T as Tr>::X>) и '<='.
func (p *Parser) eatLt() bool {
	switch p.peek().Kind {
	case token.Lt:
		p.advance()
	case token.Shl:
		p.splitFirst(token.Lt, token.Lt)
	case token.LtEq:
		p.splitFirst(token.Lt, token.Assign)
	default:
		return false
	}
	return true
}

// eatAmp съедает '&', расщепляя '&&' (&&x, &&str).
func (p *Parser) eatAmp() (token.Token, bool) {
	switch p.peek().Kind {
	case token.Amp:
		return p.advance(), true
	case token.AndAnd:
		return p.splitFirst(token.Amp, token.Amp), true
	}
	return token.Token{}, false
}

// eatPipe съедает '|', расщепляя '||' там, где это пустой список параметров замыкания.
func (p *Parser) eatPipe() bool {
	switch p.peek().Kind {
	case token.Pipe:
		p.advance()
	case token.OrOr:
		p.splitFirst(token.Pipe, token.Pipe)
	default:
		return false
	}
	return true
}

// skipTokenTree съедает сбалансированную группу (..), [..] или {..}.
// Возвращает span всей группы и флаг успешного закрытия.
func (p *Parser) skipTokenTree() (source.Span, bool) {
	open := p.advance()
	stack := []token.Kind{open.Kind.Closer()}
	for len(stack) > 0 {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF:
			p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed delimiter \""+open.Text+"\"")
			return open.Span.Cover(p.lastSpan), false
		case tok.Kind.IsOpen():
			stack = append(stack, tok.Kind.Closer())
		case tok.Kind.IsClose():
			if tok.Kind != stack[len(stack)-1] {
				p.report(diag.SynUnbalancedDelims, diag.SevError, tok.Span, "mismatched closing delimiter \""+tok.Text+"\"")
				p.advance()
				return open.Span.Cover(tok.Span), false
			}
			stack = stack[:len(stack)-1]
		}
		p.advance()
	}
	return open.Span.Cover(p.lastSpan), true
}

// innerText возвращает исходный текст между скобками группы.
func (p *Parser) innerText(group source.Span) string {
	if group.End-group.Start < 2 || int(group.End) > len(p.content) {
		return ""
	}
	return string(p.content[group.Start+1 : group.End-1])
}

// canBeginExpr - может ли токен начинать выражение.
func canBeginExpr(k token.Kind) bool {
	switch k {
	case token.Ident, token.KwSelfValue, token.KwSelfType, token.KwSuper, token.KwCrate, token.PathSep,
		token.IntLit, token.FloatLit, token.StrLit, token.CharLit, token.KwTrue, token.KwFalse,
		token.LParen, token.LBracket, token.LBrace, token.Lt, token.Shl,
		token.Minus, token.Bang, token.Star, token.Amp, token.AndAnd, token.Pipe, token.OrOr,
		token.DotDot, token.DotDotEq, token.Lifetime, token.Pound,
		token.KwIf, token.KwMatch, token.KwWhile, token.KwFor, token.KwLoop, token.KwUnsafe,
		token.KwAsync, token.KwMove, token.KwReturn, token.KwBreak, token.KwContinue,
		token.KwLet, token.KwConst, token.KwStatic:
		return true
	}
	return false
}
