package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeRun, false},
		{LevelError, ScopeRun, true},
		{LevelError, ScopePhase, false},
		{LevelPhase, ScopePhase, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if l, err := ParseLevel("DEBUG"); err != nil || l != LevelDebug {
		t.Errorf("ParseLevel(DEBUG) = %v, %v", l, err)
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Errorf("expected error for unknown level")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat(ndjson) = %v, %v", f, err)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDebug, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := WithTracer(context.Background(), tr)

	root := Begin(FromContext(ctx), ScopeRun, "normalize", 0)
	ctx = WithSpan(ctx, root)
	Point(FromContext(ctx), ScopeNode, "degraded", CurrentSpan(ctx), map[string]string{"unknown_exprs": "3"})
	root.WithExtra("items", "2").End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 events, got %d:\n%s", len(lines), buf.String())
	}
	var last jsonEvent
	if err := json.Unmarshal([]byte(lines[2]), &last); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if last.Kind != "end" || last.Name != "normalize" || last.Detail != "ok" || last.Extra["items"] != "2" {
		t.Errorf("unexpected end event: %+v", last)
	}
	var point jsonEvent
	_ = json.Unmarshal([]byte(lines[1]), &point)
	if point.ParentID != root.ID() || point.Scope != "node" {
		t.Errorf("point should be parented to the root span: %+v", point)
	}
}

func TestTextFormatSortsExtra(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	Begin(tr, ScopePhase, "parse", 0).WithExtra("b", "2").WithExtra("a", "1").End("")
	out := buf.String()
	if !strings.Contains(out, "\u2192 parse") || !strings.Contains(out, "\u2190 parse {a=1, b=2}") {
		t.Errorf("unexpected text output:\n%s", out)
	}
}

func TestDisabledSpanIsCheap(t *testing.T) {
	span := Begin(Nop, ScopeRun, "x", 0)
	if span.ID() != 0 {
		t.Errorf("nop span must have no id")
	}
	span.WithExtra("k", "v")
	if span.End("") < 0 {
		t.Errorf("negative duration")
	}
	if tr, _ := New(Config{Level: LevelOff}); tr.Enabled() {
		t.Errorf("LevelOff must produce a disabled tracer")
	}
}
