package driver

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"rscanon/internal/canon"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestListSources(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/main.rs":         "fn main() {}",
		"src/lib.rs":          "",
		"src/gen/api_gen.rs":  "",
		"target/debug/x.rs":   "",
		".git/hooks/y.rs":     "",
		"vendor/dep/lib.rs":   "",
		"README.md":           "",
		"benches/bench.rs":    "",
		"src/nested/deep.rs":  "",
		"src/nested/notes.md": "",
	})

	got, err := ListSources(root, []string{"vendor", "*_gen.rs"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"benches/bench.rs", "src/lib.rs", "src/main.rs", "src/nested/deep.rs"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		format canon.Format
		want   string
	}{
		{canon.FormatJSON, filepath.Join("/out", "src", "a", "b.json")},
		{canon.FormatMsgpack, filepath.Join("/out", "src", "a", "b.msgpack")},
	}
	for _, tt := range tests {
		if got := OutputPath("/out", "src/a/b.rs", tt.format.Extension()); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestBatch(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.rs":     pointSrc,
		"sub/b.rs": "fn b() -> bool { true }",
		"bad.rs":   "fn bad( {",
	})
	cache, err := OpenDiskCache(t.TempDir(), "rscanon")
	if err != nil {
		t.Fatal(err)
	}

	run := func() (*BatchReport, []Event) {
		events := make(chan Event, 16)
		report, err := Batch(context.Background(), BatchOptions{
			Root:   root,
			OutDir: out,
			Jobs:   2,
			Cache:  cache,
			Events: events,
		})
		close(events)
		if err != nil {
			t.Fatalf("Batch: %v", err)
		}
		var got []Event
		for ev := range events {
			got = append(got, ev)
		}
		return report, got
	}

	report, events := run()
	if len(report.Files) != 3 || report.Failed != 1 || report.Cached != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(events) != 6 {
		t.Errorf("expected start+finish per file, got %d events", len(events))
	}
	failed, ok := report.FirstFailure()
	if !ok || failed.Rel != "bad.rs" {
		t.Errorf("expected bad.rs failure, got %+v", failed)
	}
	if _, ok := Fatal(failed.Err); !ok {
		t.Errorf("expected *FatalError, got %T", failed.Err)
	}
	if _, err := os.Stat(OutputPath(out, "bad.rs", ".json")); !os.IsNotExist(err) {
		t.Errorf("failed file must not produce output: %v", err)
	}

	data, err := os.ReadFile(OutputPath(out, "sub/b.rs", ".json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := canon.CheckJSON(data); err != nil {
		t.Errorf("batch output violates schema: %v", err)
	}

	again, events := run()
	if again.Cached != 2 || again.Failed != 1 {
		t.Errorf("expected cache hits on second run: %+v", again)
	}
	cachedEvents := 0
	for _, ev := range events {
		if ev.Kind == EventCached {
			cachedEvents++
		}
	}
	if cachedEvents != 2 {
		t.Errorf("expected 2 cached events, got %d", cachedEvents)
	}
	data2, err := os.ReadFile(OutputPath(out, "sub/b.rs", ".json"))
	if err != nil || string(data2) != string(data) {
		t.Errorf("cached output differs: %v", err)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir(), "rscanon")
	if err != nil {
		t.Fatal(err)
	}
	key := cacheKey([32]byte{1}, canon.Options{Indent: 2})
	if other := cacheKey([32]byte{1}, canon.Options{Indent: 0}); other == key {
		t.Error("indent must change the key")
	}

	var got DiskPayload
	if hit, err := cache.Get(key, &got); hit || err != nil {
		t.Fatalf("expected miss, got hit=%v err=%v", hit, err)
	}
	if err := cache.Put(key, &DiskPayload{Path: "a.rs", Output: []byte("{}\n")}); err != nil {
		t.Fatal(err)
	}
	if hit, err := cache.Get(key, &got); !hit || err != nil || string(got.Output) != "{}\n" {
		t.Fatalf("expected hit, got hit=%v err=%v payload=%+v", hit, err, got)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if hit, _ := cache.Get(key, &got); hit {
		t.Error("expected miss after DropAll")
	}

	var nilCache *DiskCache
	if hit, err := nilCache.Get(key, &got); hit || err != nil {
		t.Error("nil cache must always miss")
	}
}

func TestBatchMsgpackOutput(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	writeTree(t, root, map[string]string{"sub/x.rs": pointSrc})

	report, err := Batch(context.Background(), BatchOptions{
		Root:    root,
		OutDir:  out,
		Jobs:    1,
		Options: Options{Encode: canon.Options{Format: canon.FormatMsgpack}},
	})
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if report.Failed != 0 || len(report.Files) != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	want := filepath.Join(out, "sub", "x.msgpack")
	if got := report.Files[0].OutPath; got != want {
		t.Errorf("OutPath = %q, want %q", got, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode msgpack: %v", err)
	}
	if _, ok := doc["items"]; !ok {
		t.Errorf("msgpack output lacks items: %v", doc)
	}
	if _, err := os.Stat(filepath.Join(out, "sub", "x.json")); !os.IsNotExist(err) {
		t.Errorf("json output must not be written for msgpack format: %v", err)
	}
}
