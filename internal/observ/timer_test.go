package observ

import (
	"bytes"
	"strings"
	"testing"

	"rscanon/internal/trace"
)

func TestTimerReport(t *testing.T) {
	timer := NewTimer(nil, 0)
	idx := timer.Begin("parse")
	timer.End(idx, "3 items")
	timer.End(42, "ignored")

	report := timer.Report()
	if len(report.Phases) != 1 || report.Phases[0].Name != "parse" || report.Phases[0].Note != "3 items" {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.TotalMS < report.Phases[0].DurationMS {
		t.Errorf("total below phase duration")
	}
	summary := timer.Summary()
	if !strings.HasPrefix(summary, "timings:\n  parse") || !strings.Contains(summary, "// 3 items") {
		t.Errorf("unexpected summary:\n%s", summary)
	}
}

func TestTimerMirrorsTrace(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelPhase, trace.FormatText)
	timer := NewTimer(tr, 0)
	timer.End(timer.Begin("normalize"), "")
	out := buf.String()
	if strings.Count(out, "normalize") != 2 {
		t.Errorf("expected begin and end events:\n%s", out)
	}
}
