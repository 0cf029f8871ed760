package diag

import (
	"fmt"
	"strings"

	"rscanon/internal/source"
)

// FormatShort renders one line per diagnostic:
//
//	error SYN2001 path:line:col message
//
// Notes follow their diagnostic when includeNotes is set. The result is stable
// for a sorted bag and is used by the batch summary and by tests.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	lines := make([]string, 0, len(diags))
	for _, d := range diags {
		lines = append(lines, shortLine(severityLabel(d.Severity), d.Code, d.Primary, d.Message, fs))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			lines = append(lines, shortLine("note", d.Code, n.Span, n.Msg, fs))
		}
	}
	return strings.Join(lines, "\n")
}

func shortLine(label string, code Code, sp source.Span, msg string, fs *source.FileSet) string {
	if int(sp.File) >= fs.Len() {
		return fmt.Sprintf("%s %s <unknown> %s", label, code.ID(), sanitizeMessage(msg))
	}
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s %s %s:%d:%d %s", label, code.ID(), f.Path, start.Line, start.Col, sanitizeMessage(msg))
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", " ")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
