package driver

import (
	"errors"
	"fmt"

	"rscanon/internal/diag"
	"rscanon/internal/source"
)

// ErrSyntax marks a source the front-end rejected (LEX or SYN diagnostics).
var ErrSyntax = errors.New("source rejected")

// FatalError - файл не удалось превратить в документ.
// Bag и FileSet нужны CLI, чтобы отрисовать диагностики.
type FatalError struct {
	Path    string
	Bag     *diag.Bag
	FileSet *source.FileSet
	Err     error
}

func (e *FatalError) Error() string {
	if d, ok := e.firstError(); ok {
		return fmt.Sprintf("%s: %s: %v", e.Path, d.Code.ID(), d.Message)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

func (e *FatalError) firstError() (diag.Diagnostic, bool) {
	if e.Bag == nil {
		return diag.Diagnostic{}, false
	}
	return e.Bag.FirstError()
}

// fatal собирает FatalError; при отсутствии диагностик кладёт IO-диагностику,
// чтобы CLI всегда было что показать.
func fatal(path string, fs *source.FileSet, bag *diag.Bag, code diag.Code, err error) *FatalError {
	if bag == nil {
		bag = diag.NewBag(1)
	}
	if fs == nil {
		fs = source.NewFileSet()
	}
	if !bag.HasErrors() {
		bag.Add(diag.NewError(code, source.Span{}, fmt.Sprintf("%s: %v", path, err)))
	}
	return &FatalError{Path: path, Bag: bag, FileSet: fs, Err: err}
}
