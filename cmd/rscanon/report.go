package main

import (
	"io"

	"github.com/spf13/cobra"

	"rscanon/internal/diag"
	"rscanon/internal/diagfmt"
	"rscanon/internal/driver"
	"rscanon/internal/source"
)

func renderDiagnostics(w io.Writer, s *settings, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	if fs == nil {
		fs = source.NewFileSet()
	}
	diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:    s.color,
		Context:  1,
		PathMode: s.pathMode,
	})
}

// reportFailure печатает диагностики FatalError; прочие ошибки отдаёт main.
func reportFailure(cmd *cobra.Command, err error) error {
	fe, ok := driver.Fatal(err)
	if !ok {
		return err
	}
	renderDiagnostics(cmd.ErrOrStderr(), settingsFrom(cmd), fe.Bag, fe.FileSet)
	return errReported
}
