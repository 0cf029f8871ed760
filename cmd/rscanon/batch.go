package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"rscanon/internal/driver"
	"rscanon/internal/observ"
	"rscanon/internal/trace"
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [flags] dir",
		Short: "Normalize every *.rs file under a directory",
		Long: `batch walks dir (skipping target/ and hidden directories), normalizes every
Rust file in parallel and writes <out>/<rel>.json (or .msgpack). Failed files are
reported after the run and make the command exit with status 1.`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}
	addEncodeFlags(cmd)
	cmd.Flags().StringP("out", "o", "", "output directory (required)")
	cmd.Flags().Int("jobs", 0, "parallel workers (0: GOMAXPROCS)")
	cmd.Flags().StringSlice("exclude", nil, "glob patterns to skip (relative path or file name)")
	cmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	cmd.Flags().Bool("cache", false, "reuse documents from the on-disk cache")
	cmd.Flags().String("cache-dir", "", "cache directory (default: $XDG_CACHE_HOME/rscanon)")
	cmd.Flags().Bool("clear-cache", false, "drop the on-disk cache before the run")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	s := settingsFrom(cmd)
	cfg := s.cfg
	enc, err := encodeOptions(cmd, cfg)
	if err != nil {
		return err
	}
	mode, err := readUIMode(stringSetting(cmd, "ui", cfg.Batch.UI))
	if err != nil {
		return err
	}

	root := args[0]
	outDir, _ := cmd.Flags().GetString("out")
	jobs, _ := cmd.Flags().GetInt("jobs")
	if !cmd.Flags().Changed("jobs") && cfg.Batch.Jobs > 0 {
		jobs = cfg.Batch.Jobs
	}
	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	exclude = append(exclude, cfg.Batch.Exclude...)
	for _, pattern := range exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid --exclude %q: %w", pattern, err)
		}
	}

	cache, err := openCache(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	timer := observ.NewTimer(trace.FromContext(ctx), trace.CurrentSpan(ctx))
	idx := timer.Begin("list")
	files, err := driver.ListSources(root, exclude)
	timer.End(idx, fmt.Sprintf("%d file(s)", len(files)))
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}

	opts := driver.BatchOptions{
		Root:    root,
		OutDir:  outDir,
		Jobs:    jobs,
		Exclude: exclude,
		Files:   files,
		Cache:   cache,
		Options: driver.Options{Encode: enc, MaxDiagnostics: s.maxDiagnostics},
	}

	idx = timer.Begin("batch")
	var report *driver.BatchReport
	if !s.quiet && len(files) > 0 && shouldUseTUI(mode) {
		report, err = runBatchWithUI(ctx, cmd.OutOrStdout(), "normalizing "+root, opts)
	} else {
		report, err = driver.Batch(ctx, opts)
	}
	timer.End(idx, "")
	if err != nil {
		return err
	}

	failed := false
	for _, f := range report.Files {
		if f.Err == nil {
			continue
		}
		failed = true
		if !errors.Is(reportFailure(cmd, f.Err), errReported) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", f.Rel, f.Err)
		}
	}
	if !s.quiet {
		printBatchSummary(cmd.ErrOrStderr(), report, timer, s.timings)
	}
	if failed {
		return errReported
	}
	return nil
}

func openCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	enabled, _ := cmd.Flags().GetBool("cache")
	dir, _ := cmd.Flags().GetString("cache-dir")
	drop, _ := cmd.Flags().GetBool("clear-cache")
	if !enabled && dir == "" && !drop {
		return nil, nil
	}
	cache, err := driver.OpenDiskCache(dir, "rscanon")
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if drop {
		if err := cache.DropAll(); err != nil {
			return nil, fmt.Errorf("clear cache: %w", err)
		}
	}
	if !enabled && dir == "" {
		return nil, nil
	}
	return cache, nil
}
