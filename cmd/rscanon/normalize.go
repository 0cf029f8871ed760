package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rscanon/internal/driver"
)

func newNormalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize [flags] file.rs",
		Short: "Print the canonical document of a Rust source file",
		Args:  cobra.ExactArgs(1),
		RunE:  runNormalize,
	}
	addEncodeFlags(cmd)
	return cmd
}

// runNormalize пишет документ в stdout одной записью и только после
// успешного прохода всего конвейера.
func runNormalize(cmd *cobra.Command, args []string) error {
	s := settingsFrom(cmd)
	enc, err := encodeOptions(cmd, s.cfg)
	if err != nil {
		return err
	}

	res, err := driver.NormalizeFile(cmd.Context(), args[0], driver.Options{
		Encode:         enc,
		MaxDiagnostics: s.maxDiagnostics,
		Timings:        s.timings,
	})
	if err != nil {
		return reportFailure(cmd, err)
	}
	if !s.quiet {
		renderDiagnostics(cmd.ErrOrStderr(), s, res.Bag, res.FileSet)
	}
	if _, err := cmd.OutOrStdout().Write(res.Output); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
