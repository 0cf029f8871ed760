package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"rscanon/internal/diag"
	"rscanon/internal/source"
)

func unterminatedBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSetWithBase("/home/user/project")
	content := []byte("fn main() {\n    let s = \"open\n}\n")
	fileID := fs.AddVirtual("/home/user/project/src/main.rs", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 24, End: 29},
		"unterminated string literal",
	))
	return bag, fs
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	bag, fs := unterminatedBag(t)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/main.rs:2:13"},
		{"relative", PathModeRelative, "src/main.rs:2:13"},
		{"basename", PathModeBasename, "main.rs:2:13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR LEX1002: unterminated string literal") {
				t.Errorf("missing header, got:\n%s", output)
			}
		})
	}
}

func TestPrettyCaret(t *testing.T) {
	bag, fs := unterminatedBag(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	want := []string{
		"main.rs:2:13: ERROR LEX1002: unterminated string literal",
		" 1 | fn main() {",
		" 2 |     let s = \"open",
		"   |             ^~~~~",
		" 3 | }",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestPrettyColorAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.rs", []byte("struct S { x: i32 }"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynExpectSemicolon, source.Span{File: id, Start: 0, End: 6}, "boom").
		WithNote(source.Span{File: id, Start: 7, End: 8}, "declared here"))
	bag.Add(diag.NewError(diag.SynExpectType, source.Span{File: id}, "dropped"))

	var plain bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	if strings.Contains(plain.String(), "declared here") {
		t.Errorf("notes must be hidden by default:\n%s", plain.String())
	}
	if !strings.Contains(plain.String(), "1 more diagnostic(s) suppressed") {
		t.Errorf("expected suppressed counter:\n%s", plain.String())
	}

	var colored bytes.Buffer
	Pretty(&colored, bag, fs, PrettyOpts{Color: true, ShowNotes: true})
	out := colored.String()
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("expected ANSI escapes:\n%q", out)
	}
	if !strings.Contains(out, "declared here") {
		t.Errorf("expected note:\n%s", out)
	}
}

func TestCaretLineWide(t *testing.T) {
	tests := []struct {
		raw        string
		start, end uint32
		want       string
	}{
		{"let x = 1;", 5, 6, "    ^"},
		{"let x = 1;", 5, 5, "    ^"},
		{"\tfoo", 2, 5, "    ^~~"},
		{"// 日本 x", 10, 11, "       ^"},
		{"日本", 1, 7, "^~~~"},
	}
	for _, tt := range tests {
		if got := caretLine(tt.raw, tt.start, tt.end); got != tt.want {
			t.Errorf("caretLine(%q, %d, %d) = %q, want %q", tt.raw, tt.start, tt.end, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 0); got != "abcdef" {
		t.Errorf("width 0 must not truncate: %q", got)
	}
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Errorf("got %q", got)
	}
}

func TestParsePathMode(t *testing.T) {
	for in, want := range map[string]PathMode{"": PathModeAuto, "abs": PathModeAbsolute, "relative": PathModeRelative, "base": PathModeBasename} {
		got, ok := ParsePathMode(in)
		if !ok || got != want {
			t.Errorf("ParsePathMode(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParsePathMode("nope"); ok {
		t.Error("expected failure")
	}
}

func TestPrettyUnplaced(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("a.rs", []byte("fn main() {}"))
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "missing.rs: no such file"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 2})
	if got, want := buf.String(), "ERROR IO4001: missing.rs: no such file\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
