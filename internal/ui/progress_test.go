package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"rscanon/internal/driver"
)

func TestProgressModelTracksEvents(t *testing.T) {
	files := []string{"a.rs", "sub/b.rs", "c.rs"}
	events := make(chan driver.Event)
	m := NewProgressModel("normalizing", files, events)

	feed := func(ev driver.Event) {
		var model tea.Model
		model, _ = m.Update(eventMsg(ev))
		m = model
	}
	feed(driver.Event{Kind: driver.EventStart, Path: "a.rs"})
	feed(driver.Event{Kind: driver.EventDone, Path: "a.rs"})
	feed(driver.Event{Kind: driver.EventStart, Path: "sub/b.rs"})
	feed(driver.Event{Kind: driver.EventFailed, Path: "sub/b.rs", Err: errors.New("boom")})
	feed(driver.Event{Kind: driver.EventCached, Path: "unknown.rs"})

	view := m.View()
	for _, want := range []string{"(2/3, 1 failed)", "done a.rs", "failed sub/b.rs", "queued c.rs"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}

	model, cmd := m.Update(doneMsg{})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !strings.Contains(model.View(), "done: normalizing") {
		t.Errorf("expected finished header:\n%s", model.View())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.rs", 20, "short.rs"},
		{"very/long/path/file.rs", 10, "very/lo..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
