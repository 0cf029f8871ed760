package parser

import (
	"testing"

	"rscanon/internal/ast"
	"rscanon/internal/diag"
)

func TestParseStatementKinds(t *testing.T) {
	builder, stmts := fnBody(t, `
let x: i32 = 5;
let Some(y) = opt else { return; };
fn nested() {}
println!("{}", x);
vec![1, 2];
;
x += 1;
if x > 0 { x } else { 0 }
loop { break; }
x
`)
	want := []ast.StmtKind{
		ast.StmtLet, ast.StmtLet, ast.StmtItem, ast.StmtMacro, ast.StmtMacro,
		ast.StmtEmpty, ast.StmtExpr, ast.StmtExpr, ast.StmtExpr, ast.StmtExpr,
	}
	if len(stmts) != len(want) {
		t.Fatalf("statements: got %d, want %d", len(stmts), len(want))
	}
	for i, k := range want {
		if got := builder.Stmts.Get(stmts[i]).Kind; got != k {
			t.Errorf("stmt %d: kind %v, want %v", i, got, k)
		}
	}

	letElse := builder.Stmts.Let(stmts[1])
	if !letElse.Else.IsValid() {
		t.Errorf("let-else should keep its else block")
	}
	if builder.Pats.Get(letElse.Pat).Kind != ast.PatPath {
		t.Errorf("Some(y) pattern kind %v, want path", builder.Pats.Get(letElse.Pat).Kind)
	}

	assign := exprOf(t, builder, stmts[6])
	bin, ok := builder.Exprs.Binary(assign)
	if !ok || bin.Op != ast.BinAddAssign {
		t.Errorf("x += 1 should be a compound binary expression")
	}

	tail := builder.Stmts.Expr(stmts[9])
	if tail.Semi {
		t.Errorf("tail expression must not have a semicolon")
	}
}

func TestParseTailMacroStaysExpression(t *testing.T) {
	builder, stmts := fnBody(t, `vec![1, 2]`)
	if len(stmts) != 1 {
		t.Fatalf("statements: got %d, want 1", len(stmts))
	}
	expr := exprOf(t, builder, stmts[0])
	m, ok := builder.Exprs.Macro(expr)
	if !ok {
		t.Fatalf("expected macro expression")
	}
	if m.Delim != '[' || m.Tokens != "1, 2" {
		t.Errorf("macro delim %q tokens %q", m.Delim, m.Tokens)
	}
}

func TestParseBraceMacroStatement(t *testing.T) {
	builder, stmts := fnBody(t, "thread_local! { static X: u8 = 0; }\nlet a = 1;")
	if len(stmts) != 2 {
		t.Fatalf("statements: got %d, want 2", len(stmts))
	}
	if builder.Stmts.Get(stmts[0]).Kind != ast.StmtMacro {
		t.Errorf("brace macro should form a macro statement")
	}
}

func TestParseBlockLikeContinuation(t *testing.T) {
	builder, stmts := fnBody(t, `
match x { _ => a }.len();
if c { a } else { b }
-1
`)
	if len(stmts) != 3 {
		t.Fatalf("statements: got %d, want 3", len(stmts))
	}
	first := exprOf(t, builder, stmts[0])
	mc, ok := builder.Exprs.MethodCall(first)
	if !ok {
		t.Fatalf("first statement should be a method call, got %v", builder.Exprs.Get(first).Kind)
	}
	if builder.Exprs.Get(mc.Receiver).Kind != ast.ExprMatch {
		t.Errorf("receiver should be the match expression")
	}
	if k := builder.Exprs.Get(exprOf(t, builder, stmts[1])).Kind; k != ast.ExprIf {
		t.Errorf("second statement kind %v, want if", k)
	}
	if k := builder.Exprs.Get(exprOf(t, builder, stmts[2])).Kind; k != ast.ExprUnary {
		t.Errorf("third statement kind %v, want unary", k)
	}
}

func TestParseMissingSemicolon(t *testing.T) {
	_, _, bag := parseSource(t, "fn f() { let a = 1 let b = 2; }")
	first, ok := bag.FirstError()
	if !ok {
		t.Fatalf("expected error")
	}
	if first.Code != diag.SynExpectSemicolon {
		t.Errorf("code %s, want %s (%s)", first.Code.ID(), diag.SynExpectSemicolon.ID(), diagnosticsSummary(bag))
	}

	_, _, bag = parseSource(t, "fn f() { a b }")
	if first, ok = bag.FirstError(); !ok || first.Code != diag.SynExpectSemicolon {
		t.Errorf("expression statements need ';': %s", diagnosticsSummary(bag))
	}
}

func TestParseUnclosedBlock(t *testing.T) {
	_, _, bag := parseSource(t, "fn f() { let a = 1;")
	if !bag.HasErrors() {
		t.Fatalf("expected unclosed block error")
	}
	first, _ := bag.FirstError()
	if first.Code != diag.SynUnclosedDelimiter {
		t.Errorf("code %s, want %s", first.Code.ID(), diag.SynUnclosedDelimiter.ID())
	}
}

func TestParseListPatterns(t *testing.T) {
	builder, stmts := fnBody(t, `
let (a, b) = pair;
let [x, y, z] = arr;
let (w) = v;
`)
	if len(stmts) != 3 {
		t.Fatalf("statements: got %d, want 3", len(stmts))
	}
	tests := []struct {
		kind  ast.PatKind
		elems int
	}{
		{ast.PatTuple, 2},
		{ast.PatSlice, 3},
	}
	for i, tt := range tests {
		pat := builder.Stmts.Let(stmts[i]).Pat
		list, ok := builder.Pats.List(pat)
		if !ok {
			t.Fatalf("stmt %d: expected list pattern, got %v", i, builder.Pats.Get(pat).Kind)
		}
		if got := builder.Pats.Get(pat).Kind; got != tt.kind {
			t.Errorf("stmt %d: kind %v, want %v", i, got, tt.kind)
		}
		if len(list.Elems) != tt.elems {
			t.Errorf("stmt %d: %d elements, want %d", i, len(list.Elems), tt.elems)
		}
	}

	// (w) - просто скобки, а не кортеж
	paren := builder.Stmts.Let(stmts[2]).Pat
	if _, ok := builder.Pats.List(paren); ok {
		t.Errorf("parenthesized pattern must not become a tuple")
	}
	if _, ok := builder.Pats.Ident(paren); !ok {
		t.Errorf("(w) should unwrap to an identifier pattern")
	}
}
