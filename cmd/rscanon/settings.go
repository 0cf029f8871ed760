package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rscanon/internal/canon"
	"rscanon/internal/config"
	"rscanon/internal/diagfmt"
	"rscanon/internal/prof"
)

// settings - глобальные флаги, слитые с rscanon.toml. Флаг, заданный явно, важнее файла.
type settings struct {
	cfg            *config.Config
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	pathMode       diagfmt.PathMode
	cleanup        func()
}

type settingsKey struct{}

func settingsFrom(cmd *cobra.Command) *settings {
	if s, ok := cmd.Context().Value(settingsKey{}).(*settings); ok {
		return s
	}
	return &settings{cfg: &config.Config{}, maxDiagnostics: 100, cleanup: func() {}}
}

func setupRun(cmd *cobra.Command, _ []string) error {
	pf := cmd.Root().PersistentFlags()
	configPath, _ := pf.GetString("config")
	cfg, err := config.Discover(configPath, ".")
	if err != nil {
		return err
	}

	s := &settings{cfg: cfg, cleanup: func() {}}
	s.quiet, _ = pf.GetBool("quiet")
	s.timings, _ = pf.GetBool("timings")

	s.maxDiagnostics, _ = pf.GetInt("max-diagnostics")
	if !pf.Changed("max-diagnostics") && cfg.Diagnostics.Max > 0 {
		s.maxDiagnostics = cfg.Diagnostics.Max
	}

	colorMode := stringSetting(cmd, "color", cfg.Diagnostics.Color)
	switch colorMode {
	case "on":
		s.color = true
	case "off":
		s.color = false
	case "auto", "":
		s.color = isTerminal(os.Stderr)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorMode)
	}

	mode, ok := diagfmt.ParsePathMode(stringSetting(cmd, "path-mode", cfg.Diagnostics.PathMode))
	if !ok {
		return fmt.Errorf("invalid --path-mode value")
	}
	s.pathMode = mode

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, settingsKey{}, s))

	cleanup, err := setupTracing(cmd, cfg)
	if err != nil {
		return err
	}
	s.cleanup = cleanup

	var profOpts prof.Options
	profOpts.CPU, _ = pf.GetString("cpuprofile")
	profOpts.Mem, _ = pf.GetString("memprofile")
	profOpts.Trace, _ = pf.GetString("runtime-trace")
	if !profOpts.Enabled() {
		return nil
	}
	session, err := prof.Start(profOpts)
	if err != nil {
		return err
	}
	s.cleanup = func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
		cleanup()
	}
	return nil
}

// stringSetting: явный флаг → значение из конфига → значение флага по умолчанию.
func stringSetting(cmd *cobra.Command, name, fromConfig string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return fromConfig
	}
	if flag.Changed || fromConfig == "" {
		return strings.ToLower(strings.TrimSpace(flag.Value.String()))
	}
	return strings.ToLower(fromConfig)
}

func addEncodeFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "json", "document format (json|msgpack)")
	cmd.Flags().Int("indent", canon.DefaultIndent, "JSON indentation width, 0 for compact")
	cmd.Flags().Bool("compact", false, "compact JSON (same as --indent 0)")
}

func encodeOptions(cmd *cobra.Command, cfg *config.Config) (canon.Options, error) {
	format, err := canon.ParseFormat(stringSetting(cmd, "format", cfg.Output.Format))
	if err != nil {
		return canon.Options{}, err
	}
	indent, _ := cmd.Flags().GetInt("indent")
	if !cmd.Flags().Changed("indent") && cfg.IsDefined("output", "indent") {
		indent = cfg.Output.Indent
	}
	if compact, _ := cmd.Flags().GetBool("compact"); compact {
		indent = 0
	}
	if indent < 0 {
		return canon.Options{}, fmt.Errorf("invalid --indent %d", indent)
	}
	return canon.Options{Format: format, Indent: indent}, nil
}
