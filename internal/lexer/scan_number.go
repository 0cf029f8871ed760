package lexer

import (
	"rscanon/internal/diag"
	"rscanon/internal/token"
)

// scanNumber читает целые и вещественные литералы с суффиксами (1u8, 2.5f32, 0xff_u16).
// После '.' (доступ к полю кортежа x.0.1) дробная часть не читается.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	c := &lx.cursor
	kind := token.IntLit

	radix := byte(10)
	if c.Peek() == '0' {
		switch c.PeekAt(1) {
		case 'x':
			radix = 16
		case 'o':
			radix = 8
		case 'b':
			radix = 2
		}
	}

	if radix != 10 {
		c.Off += 2
		digits := 0
		for !c.EOF() {
			b := c.Peek()
			if b == '_' {
				c.Bump()
				continue
			}
			if !digitOf(b, radix) {
				break
			}
			c.Bump()
			digits++
		}
		if digits == 0 {
			lx.scanSuffix()
			tok := lx.emit(kind, start)
			lx.errLex(diag.LexBadNumber, tok.Span, "missing digits after integer base prefix")
			return tok
		}
		lx.scanSuffix()
		return lx.emit(kind, start)
	}

	lx.scanDecDigits()

	if c.Peek() == '.' && lx.prev != token.Dot {
		next := c.PeekAt(1)
		switch {
		case isDec(next):
			c.Bump()
			lx.scanDecDigits()
			kind = token.FloatLit
		case next != '.' && !isIdentStartByte(next) && next < utf8RuneSelf:
			// "1." без дробной части
			c.Bump()
			return lx.emit(token.FloatLit, start)
		}
	}

	if b := c.Peek(); (b == 'e' || b == 'E') && lx.prev != token.Dot {
		save := c.Mark()
		c.Bump()
		if c.Peek() == '+' || c.Peek() == '-' {
			c.Bump()
		}
		if isDec(c.Peek()) || (c.Peek() == '_' && isDec(c.PeekAt(1))) {
			lx.scanDecDigits()
			kind = token.FloatLit
		} else {
			c.Reset(save)
		}
	}

	if c.Peek() == 'f' || c.Peek() == 'F' {
		kind = token.FloatLit
	}
	lx.scanSuffix()
	return lx.emit(kind, start)
}

func (lx *Lexer) scanDecDigits() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if !isDec(b) && b != '_' {
			return
		}
		lx.cursor.Bump()
	}
}

// scanSuffix съедает суффикс типа (u8, i64, f32, usize).
func (lx *Lexer) scanSuffix() {
	if isIdentStartByte(lx.cursor.Peek()) {
		lx.scanIdentTail()
	}
}

func digitOf(b, radix byte) bool {
	switch radix {
	case 2:
		return b == '0' || b == '1'
	case 8:
		return b >= '0' && b <= '7'
	case 16:
		return isHex(b)
	}
	return isDec(b)
}
