package parser

import (
	"fmt"
	"strings"
	"testing"

	"rscanon/internal/ast"
	"rscanon/internal/diag"
	"rscanon/internal/lexer"
	"rscanon/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, input string) (*ast.Builder, ast.FileID, *diag.Bag) {
	return parseSourceWithOptions(t, input, Options{})
}

func parseSourceWithOptions(t *testing.T, input string, opts Options) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()

	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.rs", []byte(input)))

	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)

	if opts.MaxErrors == 0 {
		opts.MaxErrors = 100
	}
	opts.Reporter = reporter

	result := ParseFile(lx, builder, opts)
	return builder, result.File, bag
}

// mustParse падает на любой диагностике.
func mustParse(t *testing.T, input string) (*ast.Builder, *ast.File) {
	t.Helper()
	builder, fileID, bag := parseSource(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	return builder, builder.Files.Get(fileID)
}

// fnBody разбирает `fn f() { body }` и возвращает инструкции тела.
func fnBody(t *testing.T, body string) (*ast.Builder, []ast.StmtID) {
	t.Helper()
	builder, file := mustParse(t, "fn f() {\n"+body+"\n}")
	if len(file.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(file.Items))
	}
	fn, ok := builder.Items.Fn(file.Items[0])
	if !ok {
		t.Fatalf("expected fn item")
	}
	block, ok := builder.Exprs.Block(fn.Body)
	if !ok {
		t.Fatalf("fn body is not a block")
	}
	return builder, block.Stmts
}

// exprOf возвращает выражение инструкции-выражения.
func exprOf(t *testing.T, builder *ast.Builder, id ast.StmtID) ast.ExprID {
	t.Helper()
	st := builder.Stmts.Expr(id)
	if st == nil {
		t.Fatalf("statement %d is %v, want expression statement", id, builder.Stmts.Get(id).Kind)
	}
	return st.Expr
}
