package diag

import (
	"testing"

	"rscanon/internal/source"
)

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("src/lib.rs", []byte("fn a(\nlet\n"))

	bag := NewBag(10)
	bag.Add(NewError(SynExpectIdentifier, source.Span{File: id, Start: 6, End: 9}, "expected identifier,\ngot 'let'").
		WithNote(source.Span{File: id, Start: 4, End: 5}, "parameter list opened here"))
	bag.Add(New(SevWarning, LexBadNumber, source.Span{File: id, Start: 0, End: 2}, "odd"))
	bag.Sort()

	want := "warning LEX1004 src/lib.rs:1:1 odd\n" +
		"error SYN2004 src/lib.rs:2:1 expected identifier, got 'let'\n" +
		"note SYN2004 src/lib.rs:1:5 parameter list opened here"
	if got := FormatShort(bag.Items(), fs, true); got != want {
		t.Fatalf("FormatShort mismatch\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestBagLimitAndErrors(t *testing.T) {
	bag := NewBag(2)
	bag.Add(New(SevInfo, ObsTimings, source.Span{}, "a"))
	if bag.HasErrors() {
		t.Fatal("info must not count as error")
	}
	bag.Add(NewError(SynUnexpectedToken, source.Span{}, "b"))
	if bag.Add(NewError(SynUnexpectedToken, source.Span{}, "c")) {
		t.Fatal("Add beyond limit must fail")
	}
	if !bag.HasErrors() || bag.Len() != 2 || bag.Dropped() != 1 {
		t.Fatalf("bag state: errors=%v len=%d dropped=%d", bag.HasErrors(), bag.Len(), bag.Dropped())
	}
	first, ok := bag.FirstError()
	if !ok || first.Message != "b" {
		t.Fatalf("FirstError = %+v,%v", first, ok)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 4, End: 5}
	r.Report(SynUnexpectedToken, SevError, sp, "x", nil)
	r.Report(SynUnexpectedToken, SevError, sp, "x again", nil)
	r.Report(SynExpectSemicolon, SevError, sp, "y", nil)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", bag.Len())
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:     "LEX1001",
		SynExpectSemicolon: "SYN2003",
		IOLoadFileError:    "IO4001",
		ObsTimings:         "OBS6001",
		UnknownCode:        "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Fatalf("%d.ID() = %q, want %q", code, got, want)
		}
	}
}
