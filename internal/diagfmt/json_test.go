package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"rscanon/internal/diag"
	"rscanon/internal/lexer"
	"rscanon/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	bag, fs := unterminatedBag(t)

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", output)
	}
	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "LEX1002" {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	want := LocationJSON{File: "main.rs", StartByte: 24, EndByte: 29, StartLine: 2, StartCol: 13, EndLine: 2, EndCol: 18}
	if d.Location != want {
		t.Errorf("location = %+v, want %+v", d.Location, want)
	}
}

func TestJSONMaxAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.rs", []byte("fn f() {}"))
	bag := diag.NewBag(10)
	for range 3 {
		bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: 0, End: 2}, "x").
			WithNote(source.Span{File: id, Start: 3, End: 4}, "n"))
	}

	tests := []struct {
		name      string
		opts      JSONOpts
		count     int
		dropped   int
		withNotes bool
	}{
		{"all", JSONOpts{}, 3, 0, false},
		{"max", JSONOpts{Max: 2}, 2, 1, false},
		{"notes", JSONOpts{IncludeNotes: true}, 3, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := BuildDiagnosticsOutput(bag, fs, tt.opts)
			if out.Count != tt.count || out.Dropped != tt.dropped {
				t.Errorf("count=%d dropped=%d", out.Count, out.Dropped)
			}
			if got := len(out.Diagnostics[0].Notes) > 0; got != tt.withNotes {
				t.Errorf("notes present = %v", got)
			}
			if out.Diagnostics[0].Location.StartLine != 0 {
				t.Errorf("positions must be omitted without IncludePositions")
			}
		})
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.rs", []byte("// hi\nfn main"))
	toks := lexer.New(fs.Get(id), lexer.Options{}).All()

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(pretty.Bytes(), []byte("(leading: LineComment, Newline)")) {
		t.Errorf("missing trivia:\n%s", pretty.String())
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != 3 || out[len(out)-1].Kind != "EOF" || out[1].Text != "main" {
		t.Errorf("unexpected tokens: %+v", out)
	}
}
