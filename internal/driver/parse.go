package driver

import (
	"fmt"

	"fortio.org/safecast"

	"rscanon/internal/ast"
	"rscanon/internal/diag"
	"rscanon/internal/lexer"
	"rscanon/internal/parser"
	"rscanon/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

// Parse прогоняет лексер и парсер по уже загруженному файлу.
// Ошибки фронтенда остаются в Bag; решение о фатальности за вызывающим.
func Parse(fs *source.FileSet, id source.FileID, maxDiagnostics int) (*ParseResult, error) {
	file := fs.Get(id)
	if file == nil {
		return nil, fmt.Errorf("file %d not found in FileSet", id)
	}

	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, fmt.Errorf("max diagnostics: %w", err)
	}

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.NewDedupReporter(&diag.BagReporter{Bag: bag})
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)

	result := parser.ParseFile(lx, builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	})
	bag.Sort()

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		FileID:  result.File,
		Bag:     bag,
	}, nil
}
