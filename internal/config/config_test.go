package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[output]
format = "msgpack"
indent = 0

[batch]
jobs = 4
exclude = ["vendor/*", "*_gen.rs"]
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Discover("", nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.Path != filepath.Join(root, FileName) {
		t.Errorf("path = %q", cfg.Path)
	}
	if cfg.Output.Format != "msgpack" || cfg.Batch.Jobs != 4 || len(cfg.Batch.Exclude) != 2 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if !cfg.IsDefined("output", "indent") {
		t.Error("indent = 0 must count as defined")
	}
	if cfg.IsDefined("trace", "level") {
		t.Error("trace.level is not set")
	}
}

func TestDiscoverMissing(t *testing.T) {
	cfg, err := Discover("", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" || cfg.IsDefined("output") {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"format", "[output]\nformat = \"yaml\"\n"},
		{"indent", "[output]\nindent = 99\n"},
		{"jobs", "[batch]\njobs = -1\n"},
		{"exclude", "[batch]\nexclude = [\"[\"]\n"},
		{"ui", "[batch]\nui = \"maybe\"\n"},
		{"color", "[diagnostics]\ncolor = \"always\"\n"},
		{"unknown key", "[output]\nstyle = 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.body)
			_, err := Load(path)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadSyntaxError(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[output\n")
	if _, err := Load(path); err == nil || errors.Is(err, ErrInvalid) {
		t.Errorf("expected parse error, got %v", err)
	}
}
