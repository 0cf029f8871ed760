package lexer

import (
	"rscanon/internal/diag"
	"rscanon/internal/token"
)

// atPrefixedLiteral проверяет префиксы r", r#", r#ident, b", b', br", c", cr".
func (lx *Lexer) atPrefixedLiteral() bool {
	c := &lx.cursor
	switch c.Peek() {
	case 'r':
		return c.PeekAt(1) == '"' || c.PeekAt(1) == '#'
	case 'b':
		n := c.PeekAt(1)
		return n == '"' || n == '\'' || (n == 'r' && (c.PeekAt(2) == '"' || c.PeekAt(2) == '#'))
	case 'c':
		n := c.PeekAt(1)
		return n == '"' || (n == 'r' && (c.PeekAt(2) == '"' || c.PeekAt(2) == '#'))
	}
	return false
}

func (lx *Lexer) scanPrefixedLiteral() token.Token {
	start := lx.cursor.Mark()
	c := &lx.cursor

	if c.Peek() == 'r' && c.PeekAt(1) == '#' {
		if b := c.PeekAt(2); isIdentStartByte(b) || b >= utf8RuneSelf {
			return lx.scanRawIdent()
		}
	}

	if c.Peek() == 'b' && c.PeekAt(1) == '\'' {
		c.Bump()
		return lx.scanChar(start)
	}

	// префикс b / c без r
	if c.Peek() != 'r' && c.PeekAt(1) == '"' {
		c.Bump()
		return lx.scanString(start)
	}

	// raw: r / br / cr
	if c.Peek() != 'r' {
		c.Bump()
	}
	c.Bump() // r
	return lx.scanRawString(start)
}

// scanString читает "..." начиная с открывающей кавычки; start включает префикс.
func (lx *Lexer) scanString(start Mark) token.Token {
	lx.cursor.Bump() // "
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '\\':
			lx.cursor.Bump()
		case '"':
			return lx.emit(token.StrLit, start)
		}
	}
	tok := lx.emit(token.StrLit, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}

// scanRawString читает #*"..."#* после префикса.
func (lx *Lexer) scanRawString(start Mark) token.Token {
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	if !lx.cursor.Eat('"') {
		tok := lx.emit(token.StrLit, start)
		lx.errLex(diag.LexBadRawString, tok.Span, "expected '\"' after raw string prefix")
		return tok
	}
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		n := 0
		for n < hashes && lx.cursor.Peek() == '#' {
			lx.cursor.Bump()
			n++
		}
		if n == hashes {
			return lx.emit(token.StrLit, start)
		}
	}
	tok := lx.emit(token.StrLit, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated raw string literal")
	return tok
}

// scanQuote различает 'c' (char) и 'a (lifetime).
func (lx *Lexer) scanQuote() token.Token {
	start := lx.cursor.Mark()
	c := &lx.cursor
	if c.PeekAt(1) == '\\' {
		return lx.scanChar(start)
	}

	c.Bump() // '
	r, sz := lx.peekRune()
	if sz == 0 {
		tok := lx.emit(token.CharLit, start)
		lx.errLex(diag.LexUnterminatedChar, tok.Span, "unterminated character literal")
		return tok
	}
	if c.PeekAt(uint32(sz)) == '\'' {
		c.Reset(start)
		return lx.scanChar(start)
	}
	if isIdentStartRune(r) {
		lx.scanIdentTail()
		return lx.emit(token.Lifetime, start)
	}
	c.Reset(start)
	return lx.scanChar(start)
}

// scanChar читает '...' начиная с кавычки; start включает возможный префикс b.
func (lx *Lexer) scanChar(start Mark) token.Token {
	c := &lx.cursor
	c.Bump() // '
	for !c.EOF() {
		switch c.Peek() {
		case '\\':
			c.Bump()
			c.Bump()
		case '\'':
			c.Bump()
			return lx.emit(token.CharLit, start)
		case '\n':
			tok := lx.emit(token.CharLit, start)
			lx.errLex(diag.LexUnterminatedChar, tok.Span, "unterminated character literal")
			return tok
		default:
			lx.bumpRune()
		}
	}
	tok := lx.emit(token.CharLit, start)
	lx.errLex(diag.LexUnterminatedChar, tok.Span, "unterminated character literal")
	return tok
}
