package ast

import (
	"testing"

	"rscanon/internal/source"
)

func TestArenaOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatal("index 0 must be nil")
	}
	id := a.Allocate(7)
	if id != 1 {
		t.Fatalf("first id = %d", id)
	}
	if *a.Get(id) != 7 {
		t.Fatal("wrong value")
	}
	if a.Get(2) != nil {
		t.Fatal("out of range must be nil")
	}
	if a.Len() != 1 || len(a.Slice()) != 1 {
		t.Fatal("len mismatch")
	}
}

func TestPayloadKindCheck(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	lit := b.Exprs.NewLiteral(source.Span{}, LitInt, b.StringsInterner.Intern("1"))
	if _, ok := b.Exprs.Binary(lit); ok {
		t.Fatal("literal must not decode as binary")
	}
	bin := b.Exprs.NewBinary(source.Span{}, BinAdd, lit, lit)
	data, ok := b.Exprs.Binary(bin)
	if !ok || data.Op != BinAdd || data.Left != lit {
		t.Fatalf("binary payload = %+v", data)
	}
	ret := b.Exprs.NewJump(ExprReturn, source.Span{}, source.NoStringID, lit)
	if j, ok := b.Exprs.Jump(ret); !ok || j.Value != lit {
		t.Fatal("jump payload mismatch")
	}
	if b.Name(source.NoStringID) != "" {
		t.Fatal("empty name expected")
	}
}

func TestBinaryOpSpelling(t *testing.T) {
	if BinShrAssign.String() != ">>=" || BinNe.String() != "!=" || BinRem.String() != "%" {
		t.Fatal("operator spelling mismatch")
	}
	if !BinAddAssign.IsCompoundAssign() || BinAdd.IsCompoundAssign() {
		t.Fatal("compound assign detection")
	}
}
