package source

import "testing"

func TestInternerBasic(t *testing.T) {
	in := NewInterner()
	if s, ok := in.Lookup(NoStringID); !ok || s != "" {
		t.Fatalf("NoStringID must map to empty string, got %q,%v", s, ok)
	}
	a := in.Intern("count")
	b := in.Intern("count")
	if a != b {
		t.Fatalf("same string interned twice: %d != %d", a, b)
	}
	if in.Intern("total") == a {
		t.Fatal("distinct strings share an id")
	}
	if got := in.MustLookup(a); got != "count" {
		t.Fatalf("MustLookup = %q", got)
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Fatal("foreign id must not resolve")
	}
	if in.Len() != 3 {
		t.Fatalf("Len = %d, want 3", in.Len())
	}
}
