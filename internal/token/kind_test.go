package token_test

import (
	"testing"

	"rscanon/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	cases := map[string]token.Kind{
		"fn":     token.KwFn,
		"impl":   token.KwImpl,
		"self":   token.KwSelfValue,
		"Self":   token.KwSelfType,
		"match":  token.KwMatch,
		"where":  token.KwWhere,
		"return": token.KwReturn,
	}
	for lexeme, want := range cases {
		got, ok := token.LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v,%v want %v", lexeme, got, ok, want)
		}
	}
	for _, s := range []string{"union", "macro_rules", "Fn", "SELF", "i32", "String"} {
		if _, ok := token.LookupKeyword(s); ok {
			t.Fatalf("%q must stay an identifier", s)
		}
	}
}

func TestKindClasses(t *testing.T) {
	for _, k := range []token.Kind{token.PlusEq, token.ShlEq, token.ShrEq, token.PipeEq} {
		if !k.IsCompoundAssign() {
			t.Fatalf("%v should be a compound assignment", k)
		}
	}
	for _, k := range []token.Kind{token.Assign, token.EqEq, token.Plus} {
		if k.IsCompoundAssign() {
			t.Fatalf("%v must not be a compound assignment", k)
		}
	}
	if !token.KwWhile.IsKeyword() || token.Ident.IsKeyword() {
		t.Fatal("keyword range is off")
	}
	if token.LBrace.Closer() != token.RBrace || token.Ident.Closer() != token.Invalid {
		t.Fatal("Closer mapping is off")
	}
	if token.Shr.String() != ">>" || token.KwSelfType.String() != "Self" {
		t.Fatalf("String() = %q / %q", token.Shr.String(), token.KwSelfType.String())
	}
}
