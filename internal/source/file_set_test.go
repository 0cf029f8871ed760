package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.rs")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("fn a() {}\r\nfn b() {}\r\n")...)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if got, want := string(f.Content), "fn a() {}\nfn b() {}\n"; got != want {
		t.Fatalf("content = %q, want %q", got, want)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b, want BOM and CRLF bits", f.Flags)
	}
	if len(f.LineIdx) != 2 {
		t.Fatalf("LineIdx = %v, want 2 entries", f.LineIdx)
	}
}

func TestFileSetLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "absent.rs")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if fs.Len() != 0 {
		t.Fatalf("failed load must not register a file, got %d", fs.Len())
	}
}

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()
	id1 := fs.AddVirtual("lib.rs", []byte("struct A;"))
	id2 := fs.AddVirtual("lib.rs", []byte("struct B;"))
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("lib.rs")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v want %d,true", latest, ok, id2)
	}
	if string(fs.Get(id1).Content) != "struct A;" {
		t.Fatalf("old version must stay readable")
	}
}

func TestResolveAndGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.rs", []byte("fn a() {\n    let x = 1;\n}\n"))
	f := fs.Get(id)

	start, end := fs.Resolve(Span{File: id, Start: 13, End: 18})
	if start != (LineCol{Line: 2, Col: 5}) {
		t.Fatalf("start = %+v", start)
	}
	if end != (LineCol{Line: 2, Col: 10}) {
		t.Fatalf("end = %+v", end)
	}
	if got := f.GetLine(2); got != "    let x = 1;" {
		t.Fatalf("GetLine(2) = %q", got)
	}
	if got := f.GetLine(9); got != "" {
		t.Fatalf("GetLine(9) = %q, want empty", got)
	}
	if got := fs.Slice(Span{File: id, Start: 13, End: 16}); got != "let" {
		t.Fatalf("Slice = %q", got)
	}
}

func TestResolveNewlineBelongsToItsLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.rs", []byte("ab\ncd"))
	start, _ := fs.Resolve(Span{File: id, Start: 2, End: 2})
	if start != (LineCol{Line: 1, Col: 3}) {
		t.Fatalf("newline offset resolved to %+v", start)
	}
	start, _ = fs.Resolve(Span{File: id, Start: 3, End: 3})
	if start != (LineCol{Line: 2, Col: 1}) {
		t.Fatalf("offset after newline resolved to %+v", start)
	}
}
