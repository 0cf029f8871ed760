package main

import (
	"fmt"
	"io"

	"rscanon/internal/driver"
	"rscanon/internal/observ"
)

// printBatchSummary - итоговая строка batch и, с --timings, таблица фаз.
func printBatchSummary(out io.Writer, report *driver.BatchReport, timer *observ.Timer, timings bool) {
	if out == nil || report == nil {
		return
	}
	fmt.Fprintf(out, "normalized %d file(s): %d ok, %d cached, %d failed\n",
		len(report.Files), len(report.Files)-report.Failed-report.Cached, report.Cached, report.Failed)
	if timings && timer != nil {
		fmt.Fprint(out, timer.Summary())
	}
}
