package lexer

import (
	"testing"

	"rscanon/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(content))
	return fs.Get(id)
}

// TestCursorSequential проверяет чтение "a\nb" → a, \n, b, EOF
func TestCursorSequential(t *testing.T) {
	c := NewCursor(createFile("a\nb"))
	want := []byte{'a', '\n', 'b'}
	for i, w := range want {
		if c.EOF() {
			t.Fatalf("unexpected EOF at %d", i)
		}
		if got := c.Bump(); got != w {
			t.Fatalf("byte %d: got %q want %q", i, got, w)
		}
	}
	if !c.EOF() {
		t.Fatal("expected EOF")
	}
	if c.Bump() != 0 || c.Peek() != 0 {
		t.Fatal("expected zero bytes past EOF")
	}
}

func TestCursorMarkReset(t *testing.T) {
	c := NewCursor(createFile("hello"))
	c.Bump()
	m := c.Mark()
	c.Bump()
	c.Bump()
	sp := c.SpanFrom(m)
	if sp.Start != 1 || sp.End != 3 {
		t.Fatalf("span = %v", sp)
	}
	c.Reset(m)
	if c.Peek() != 'e' {
		t.Fatalf("after reset peek = %q", c.Peek())
	}
	if c.PeekAt(3) != 'o' || c.PeekAt(4) != 0 {
		t.Fatal("PeekAt mismatch")
	}
	if !c.Eat('e') || c.Eat('x') {
		t.Fatal("Eat mismatch")
	}
}
