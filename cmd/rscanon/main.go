package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rscanon/internal/version"
)

// errReported - ошибка уже выведена (диагностики на stderr), печатать нечего.
var errReported = errors.New("reported")

var errMissingInput = errors.New("missing input file (see usage above)")

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rscanon [flags] [file.rs]",
		Short: "Normalize Rust sources into a canonical AST document",
		Long: `rscanon parses a Rust source file and prints a versioned, closed-schema
tree of its structs, impl blocks and functions as JSON (or msgpack).`,
		Version:           version.Version,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// без входа - ошибка использования: usage в stderr, код 1
				fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
				return errMissingInput
			}
			return runNormalize(cmd, args)
		},
	}
	addEncodeFlags(rootCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize diagnostics (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to collect")
	pf.String("path-mode", "auto", "diagnostic path display (auto|absolute|relative|basename)")
	pf.String("config", "", "path to rscanon.toml (default: nearest one above the working directory)")
	pf.String("trace", "", "trace output file ('-' for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.String("cpuprofile", "", "write a CPU profile to file")
	pf.String("memprofile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")

	rootCmd.AddCommand(newNormalizeCmd())
	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// execute запускает дерево команд; трассировка закрывается и при ошибке,
// поэтому не через PersistentPostRun.
func execute(root *cobra.Command, args []string) error {
	if args != nil {
		root.SetArgs(args)
	}
	cmd, err := root.ExecuteC()
	if cmd != nil && cmd.Context() != nil {
		settingsFrom(cmd).cleanup()
	}
	return err
}

func main() {
	if err := execute(newRootCmd(), nil); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "rscanon: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
