package diagfmt

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"rscanon/internal/source"
)

// snippetLine - строка исходника с номером для вывода под заголовком.
type snippetLine struct {
	num  uint32
	text string
}

// collectSnippet возвращает строки [line-ctx, line+ctx], обрезанные по границам файла.
func collectSnippet(f *source.File, line uint32, ctx int8) []snippetLine {
	if f == nil || line == 0 {
		return nil
	}
	total := uint32(len(f.LineIdx)) + 1
	span := uint32(max(ctx, 0))
	from := uint32(1)
	if line > span {
		from = line - span
	}
	to := min(line+span, total)
	out := make([]snippetLine, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, snippetLine{num: n, text: expandTabs(f.GetLine(n))})
	}
	return out
}

// caretLine строит подчёркивание ^~~~ под колонками [startCol, endCol) строки text.
// Колонки байтовые, 1-based; ширина считается по отображаемым ячейкам.
func caretLine(raw string, startCol, endCol uint32) string {
	if startCol == 0 {
		startCol = 1
	}
	lo := min(int(startCol-1), len(raw))
	hi := len(raw)
	if endCol > startCol {
		hi = min(int(endCol-1), len(raw))
	} else {
		hi = lo
	}
	pad := runewidth.StringWidth(expandTabs(raw[:lo]))
	width := runewidth.StringWidth(expandTabs(raw[lo:hi]))
	if width < 1 {
		width = 1
	}
	return strings.Repeat(" ", pad) + "^" + strings.Repeat("~", width-1)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

// truncate обрезает строку по ширине терминала с многоточием.
func truncate(s string, width uint8) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "…")
}
