package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rscanon/internal/canon"
)

const sampleSrc = `struct Point { x: i32, y: i32 }

impl Point {
    fn norm(&self) -> i32 {
        let s = self.x * self.x + self.y * self.y;
        return s;
    }
}
`

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	// пустой конфиг, чтобы rscanon.toml выше по дереву не влиял на тест
	cfg := filepath.Join(t.TempDir(), "rscanon.toml")
	if err := os.WriteFile(cfg, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	err := execute(root, append([]string{"--config", cfg}, args...))
	return stdout.String(), stderr.String(), err
}

func writeSource(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNormalizeCommand(t *testing.T) {
	src := writeSource(t, "point.rs", sampleSrc)

	viaSub, _, err := runCLI(t, "normalize", src)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	viaRoot, _, err := runCLI(t, src)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if viaSub != viaRoot {
		t.Error("positional form must match the normalize subcommand")
	}
	if err := canon.CheckJSON([]byte(viaSub)); err != nil {
		t.Errorf("schema: %v", err)
	}
	if !strings.HasPrefix(viaSub, "{\n  \"schema_version\": 1,") {
		t.Errorf("expected two-space indent by default:\n%s", viaSub)
	}

	compact, _, err := runCLI(t, "normalize", "--compact", src)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(compact, "\n") != 1 {
		t.Errorf("compact output must be one line:\n%s", compact)
	}
}

func TestNormalizeFailureLeavesStdoutEmpty(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		want string
	}{
		{"syntax", func(t *testing.T) string { return writeSource(t, "bad.rs", "fn f( {") }, "SYN"},
		{"missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.rs") }, "IO4001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := runCLI(t, tt.path(t))
			if !errors.Is(err, errReported) {
				t.Fatalf("expected reported failure, got %v", err)
			}
			if stdout != "" {
				t.Errorf("stdout must stay empty, got %q", stdout)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr lacks %s:\n%s", tt.want, stderr)
			}
		})
	}
}

func TestRootWithoutInputFails(t *testing.T) {
	stdout, stderr, err := runCLI(t)
	if !errors.Is(err, errMissingInput) {
		t.Fatalf("expected missing input error, got %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout must stay empty, got %q", stdout)
	}
	if !strings.Contains(stderr, "Usage:") {
		t.Errorf("usage must go to stderr:\n%s", stderr)
	}
}

func TestConfigIndent(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "rscanon.toml")
	if err := os.WriteFile(cfg, []byte("[output]\nindent = 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	src := writeSource(t, "p.rs", sampleSrc)

	var stdout bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	if err := execute(root, []string{"--config", cfg, "normalize", src}); err != nil {
		t.Fatal(err)
	}
	if strings.Count(stdout.String(), "\n") != 1 {
		t.Errorf("config indent = 0 must give compact output:\n%s", stdout.String())
	}
}

func TestCheckCommand(t *testing.T) {
	src := writeSource(t, "point.rs", sampleSrc)
	doc, _, err := runCLI(t, "normalize", src)
	if err != nil {
		t.Fatal(err)
	}
	docPath := writeSource(t, "point.json", doc)

	out, _, err := runCLI(t, "check", docPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	for _, want := range []string{"ok", "decl:impl", "stmt:let"} {
		if !strings.Contains(out, want) {
			t.Errorf("check output lacks %q:\n%s", want, out)
		}
	}

	bad := writeSource(t, "bad.json", `{"schema_version":1,"items":[{"type":"enum"}]}`)
	if _, _, err := runCLI(t, "check", bad); err == nil {
		t.Error("expected schema violation")
	}
}

func TestBatchCommand(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.rs"), []byte(sampleSrc), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "b.rs"), []byte("fn b( {"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, stderr, err := runCLI(t, "batch", "--ui", "off", "--out", out, root)
	if !errors.Is(err, errReported) {
		t.Fatalf("expected failure for b.rs, got %v", err)
	}
	if !strings.Contains(stderr, "1 ok, 0 cached, 1 failed") {
		t.Errorf("unexpected summary:\n%s", stderr)
	}
	if _, err := os.Stat(filepath.Join(out, "a.json")); err != nil {
		t.Errorf("a.json not written: %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, "version", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var info struct {
		Version       string `json:"version"`
		SchemaVersion int    `json:"schema_version"`
	}
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if info.SchemaVersion != canon.SchemaVersion || info.Version == "" {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("expected error")
	}
}
