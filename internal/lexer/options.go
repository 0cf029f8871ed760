package lexer

import (
	"rscanon/internal/diag"
	"rscanon/internal/source"
)

type Options struct {
	// Reporter может быть nil - тогда ошибки игнорируются, лексинг продолжается.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.errors++
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
