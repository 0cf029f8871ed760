package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rscanon/internal/config"
	"rscanon/internal/trace"
)

// setupTracing inspects trace-related flags and attaches a tracer to the
// command context. It returns a cleanup function that flushes and closes it.
func setupTracing(cmd *cobra.Command, cfg *config.Config) (func(), error) {
	output := stringSetting(cmd, "trace", cfg.Trace.Output)
	levelStr := stringSetting(cmd, "trace-level", cfg.Trace.Level)
	formatStr := stringSetting(cmd, "trace-format", cfg.Trace.Format)

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	// --trace без уровня включает фазы
	if output != "" && level == trace.LevelOff && !cmd.Root().PersistentFlags().Changed("trace-level") && levelStr == "off" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(trace.Config{Level: level, Format: format, OutputPath: output})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	span := trace.Begin(tracer, trace.ScopeRun, "rscanon "+cmd.Name(), 0)
	cmd.SetContext(trace.WithSpan(ctx, span))

	return func() {
		span.End("")
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}, nil
}
