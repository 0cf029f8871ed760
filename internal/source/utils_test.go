package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	target := filepath.Join(tmp, "other", "lib.rs")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRelativePathInsideBase(t *testing.T) {
	tmp := t.TempDir()
	got, err := RelativePath(filepath.Join(tmp, "src", "main.rs"), tmp)
	if err != nil {
		t.Fatalf("RelativePath: %v", err)
	}
	if got != "src/main.rs" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeCRLFKeepsLoneCR(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed || string(out) != "a\nb\rc" {
		t.Fatalf("normalizeCRLF = %q,%v", out, changed)
	}
	out, changed = normalizeCRLF([]byte("plain"))
	if changed || string(out) != "plain" {
		t.Fatalf("normalizeCRLF on plain input = %q,%v", out, changed)
	}
}
