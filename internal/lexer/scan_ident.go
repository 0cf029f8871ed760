package lexer

import (
	"golang.org/x/text/unicode/norm"

	"rscanon/internal/diag"
	"rscanon/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character "+lx.text(sp))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	ascii := lx.scanIdentTail()

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if text == "_" {
		return token.Token{Kind: token.Underscore, Span: sp, Text: text}
	}
	if kw, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kw, Span: sp, Text: text}
	}
	if !ascii {
		text = norm.NFC.String(text)
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanIdentTail съедает продолжение идентификатора после первого символа.
// Возвращает true, если все символы ASCII.
func (lx *Lexer) scanIdentTail() bool {
	ascii := true
	first := true
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if first && isIdentStartByte(b) || !first && isIdentContinueByte(b) {
				lx.cursor.Bump()
				first = false
				continue
			}
			break
		}
		r, _ := lx.peekRune()
		if first && !isIdentStartRune(r) || !first && !isIdentContinueRune(r) {
			break
		}
		ascii = false
		first = false
		lx.bumpRune()
	}
	return ascii
}

// scanRawIdent читает r#ident. Префикс "r#" уже проверен.
func (lx *Lexer) scanRawIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Off += 2
	ascii := lx.scanIdentTail()
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if !ascii {
		text = norm.NFC.String(text)
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
