package parser

import (
	"os"
	"path/filepath"
	"testing"

	"rscanon/internal/ast"
	"rscanon/internal/diag"
	"rscanon/internal/lexer"
	"rscanon/internal/source"
	"rscanon/internal/testkit"
)

func TestSpanInvariants(t *testing.T) {
	inputs := map[string]string{
		"empty":    "",
		"comments": "// only a comment\n",
		"attrs":    "#![allow(unused)]\n#[derive(Debug)]\nstruct A { x: u8 }\nfn f() -> u8 { 1 }\n",
	}
	paths, err := filepath.Glob(filepath.Join("..", "..", "testdata", "rust", "*.rs"))
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatal(err)
		}
		inputs[filepath.Base(p)] = string(data)
	}

	for name, src := range inputs {
		t.Run(name, func(t *testing.T) {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual(name, []byte(src)))
			bag := diag.NewBag(100)
			reporter := &diag.BagReporter{Bag: bag}
			builder := ast.NewBuilder(ast.Hints{}, nil)
			res := ParseFile(lexer.New(file, lexer.Options{Reporter: reporter}), builder, Options{Reporter: reporter, MaxErrors: 100})
			if bag.HasErrors() {
				t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
			}
			if err := testkit.CheckSpanInvariants(builder, res.File, file); err != nil {
				t.Error(err)
			}
		})
	}
}
