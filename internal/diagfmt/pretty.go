package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"rscanon/internal/diag"
	"rscanon/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		note:   mk(color.FgCyan),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		writeHeader(w, pal, fs, d, opts)
		writeSnippet(w, pal, fs, d.Primary, opts)
		if opts.ShowNotes || d.Code == diag.ObsTimings {
			for _, note := range d.Notes {
				fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), note.Msg)
				if note.Span != d.Primary {
					writeSnippet(w, pal, fs, note.Span, PrettyOpts{Width: opts.Width})
				}
			}
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "... %d more diagnostic(s) suppressed\n", dropped)
	}
}

// unplaced - диагностика без позиции (IO, тайминги).
func unplaced(sp source.Span) bool {
	return sp == source.Span{}
}

func writeHeader(w io.Writer, pal palette, fs *source.FileSet, d diag.Diagnostic, opts PrettyOpts) {
	sev := pal.severity(d.Severity).Sprint(d.Severity.String())
	line := fmt.Sprintf("%s %s: %s", sev, pal.code.Sprint(d.Code.ID()), d.Message)
	if !unplaced(d.Primary) {
		line = location(fs, d.Primary, opts.PathMode) + ": " + line
	}
	fmt.Fprintln(w, line)
}

func location(fs *source.FileSet, sp source.Span, mode PathMode) string {
	f := fs.Get(sp.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", f.FormatPath(mode.mode(), fs.BaseDir()), start.Line, start.Col)
}

func writeSnippet(w io.Writer, pal palette, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	if unplaced(sp) {
		return
	}
	f := fs.Get(sp.File)
	if f == nil || len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(sp)
	lines := collectSnippet(f, start.Line, opts.Context)
	if len(lines) == 0 {
		return
	}
	gutterWidth := len(fmt.Sprint(lines[len(lines)-1].num))
	blank := strings.Repeat(" ", gutterWidth)
	for _, ln := range lines {
		num := fmt.Sprintf("%*d", gutterWidth, ln.num)
		fmt.Fprintf(w, " %s %s %s\n", pal.gutter.Sprint(num), pal.gutter.Sprint("|"), truncate(ln.text, opts.Width))
		if ln.num != start.Line {
			continue
		}
		endCol := end.Col
		if end.Line != start.Line {
			endCol = 0 // многострочный span: подчёркиваем до конца строки
		}
		raw := f.GetLine(start.Line)
		if endCol == 0 {
			endCol = uint32(len(raw)) + 1
		}
		fmt.Fprintf(w, " %s %s %s\n", blank, pal.gutter.Sprint("|"), pal.caret.Sprint(caretLine(raw, start.Col, endCol)))
	}
}
