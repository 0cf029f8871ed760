package fuzztests

import (
	"bytes"
	"context"
	"testing"
	"time"

	"rscanon/internal/ast"
	"rscanon/internal/canon"
	"rscanon/internal/diag"
	"rscanon/internal/lexer"
	"rscanon/internal/normalize"
	"rscanon/internal/parser"
	"rscanon/internal/source"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func parse(input []byte) (*ast.Builder, ast.FileID, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.rs", input))

	bag := diag.NewBag(128)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(lx, builder, parser.Options{Reporter: reporter, MaxErrors: 128})
	return builder, res.File, bag
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _, _ = parse(input)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// FuzzNormalizeAccepted: всё, что принял фронтенд, нормализуется без паники,
// детерминированно и в закрытую схему.
func FuzzNormalizeAccepted(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		builder, file, bag := parse(input)
		if bag.HasErrors() {
			return
		}
		doc, _ := normalize.File(builder, file)
		first, err := canon.Marshal(doc, canon.Options{Indent: canon.DefaultIndent})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if err := canon.CheckJSON(first); err != nil {
			t.Fatalf("schema violation: %v\ninput: %q", err, truncateForLog(input, 200))
		}

		builder2, file2, _ := parse(input)
		doc2, _ := normalize.File(builder2, file2)
		second, err := canon.Marshal(doc2, canon.Options{Indent: canon.DefaultIndent})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if !bytes.Equal(first, second) {
			t.Fatalf("non-deterministic output for %q", truncateForLog(input, 200))
		}
	})
}
