package lexer

import (
	"rscanon/internal/diag"
	"rscanon/internal/token"
)

// collectLeadingTrivia накапливает пробелы, переводы строк и комментарии в lx.hold.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v':
			for !lx.cursor.EOF() {
				c := lx.cursor.Peek()
				if c != ' ' && c != '\t' && c != '\r' && c != '\f' && c != '\v' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)

		case b == '\n':
			lx.cursor.Bump()
			lx.pushTrivia(token.TriviaNewline, start)

		case b == '/' && lx.cursor.PeekAt(1) == '/':
			kind := token.TriviaLineComment
			// "///x" и "//!" это doc, а "////" обычный комментарий
			if c2 := lx.cursor.PeekAt(2); c2 == '!' || (c2 == '/' && lx.cursor.PeekAt(3) != '/') {
				kind = token.TriviaDocLine
			}
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(kind, start)

		case b == '/' && lx.cursor.PeekAt(1) == '*':
			kind := token.TriviaBlockComment
			// "/**/" и "/***" не doc
			if c2, c3 := lx.cursor.PeekAt(2), lx.cursor.PeekAt(3); c2 == '!' || (c2 == '*' && c3 != '*' && c3 != '/') {
				kind = token.TriviaDocBlock
			}
			lx.cursor.Off += 2
			if !lx.skipBlockComment() {
				lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
			}
			lx.pushTrivia(kind, start)

		default:
			return
		}
	}
}

// skipBlockComment съедает тело /* ... */ с учётом вложенности.
// Открывающие "/*" уже съедены.
func (lx *Lexer) skipBlockComment() bool {
	depth := 1
	for !lx.cursor.EOF() {
		switch {
		case lx.try2('/', '*'):
			depth++
		case lx.try2('*', '/'):
			depth--
			if depth == 0 {
				return true
			}
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}
