package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rscanon/internal/canon"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [flags] doc.json",
		Short: "Validate an emitted document against the closed schema",
		Long: `check decodes a JSON document produced by rscanon and verifies that every
node uses a known tag with exactly the expected fields. Use '-' to read stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		// #nosec G304 -- path is provided by the user
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return err
	}

	tags, err := canon.Tags(data)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	if settingsFrom(cmd).quiet {
		return nil
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: ok\n", args[0])
	for _, tag := range canon.SortedTags(tags) {
		fmt.Fprintf(out, "  %-14s %d\n", tag, tags[tag])
	}
	return nil
}
