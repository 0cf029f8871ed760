package driver

import (
	"context"
	"fmt"
	"strconv"

	"rscanon/internal/canon"
	"rscanon/internal/diag"
	"rscanon/internal/normalize"
	"rscanon/internal/observ"
	"rscanon/internal/source"
	"rscanon/internal/trace"
)

// DefaultMaxDiagnostics caps the bag when the caller passes 0.
const DefaultMaxDiagnostics = 100

// Options configures the per-file pipeline.
type Options struct {
	Encode         canon.Options
	MaxDiagnostics int
	// Timings добавляет в Result.Bag info-диагностику OBS6001 с фазами.
	Timings bool
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// Result - успешно нормализованный файл.
type Result struct {
	Path     string
	FileSet  *source.FileSet
	Bag      *diag.Bag // только не-ошибочные диагностики
	Document canon.Document
	Stats    normalize.Stats
	Output   []byte // закодированный документ целиком
	Hash     [32]byte
	Timing   observ.Report
}

// NormalizeFile читает path и прогоняет load → parse → normalize → encode.
// Любая ошибка возвращается как *FatalError; Output при этом не формируется.
func NormalizeFile(ctx context.Context, path string, opts Options) (*Result, error) {
	run := newRun(ctx, path, opts)
	defer run.span.End("")

	fs := source.NewFileSet()
	idx := run.timer.Begin("load")
	id, err := fs.Load(path)
	run.timer.End(idx, "")
	if err != nil {
		return nil, fatal(path, fs, nil, diag.IOLoadFileError, err)
	}
	return run.finish(fs, id)
}

// NormalizeSource - то же для содержимого в памяти (stdin, тесты).
func NormalizeSource(ctx context.Context, name string, content []byte, opts Options) (*Result, error) {
	run := newRun(ctx, name, opts)
	defer run.span.End("")

	fs := source.NewFileSet()
	return run.finish(fs, fs.AddVirtual(name, content))
}

type pipelineRun struct {
	ctx    context.Context
	path   string
	opts   Options
	tracer trace.Tracer
	span   *trace.Span
	timer  *observ.Timer
}

func newRun(ctx context.Context, path string, opts Options) *pipelineRun {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "normalize_file", trace.CurrentSpan(ctx)).WithExtra("path", path)
	return &pipelineRun{
		ctx:    ctx,
		path:   path,
		opts:   opts,
		tracer: tracer,
		span:   span,
		timer:  observ.NewTimer(tracer, span.ID()),
	}
}

func (r *pipelineRun) finish(fs *source.FileSet, id source.FileID) (*Result, error) {
	if err := r.ctx.Err(); err != nil {
		return nil, fatal(r.path, fs, nil, diag.IOLoadFileError, err)
	}

	idx := r.timer.Begin("parse")
	parsed, err := Parse(fs, id, r.opts.maxDiagnostics())
	if err != nil {
		r.timer.End(idx, "")
		return nil, fatal(r.path, fs, nil, diag.IOLoadFileError, err)
	}
	r.timer.End(idx, fmt.Sprintf("%d diagnostic(s)", parsed.Bag.Len()))
	if parsed.Bag.HasErrors() {
		r.span.WithExtra("status", "rejected")
		return nil, fatal(r.path, fs, parsed.Bag, diag.SynUnexpectedToken, ErrSyntax)
	}

	idx = r.timer.Begin("normalize")
	doc, stats := normalize.File(parsed.Builder, parsed.FileID)
	r.timer.End(idx, fmt.Sprintf("%d item(s)", len(doc.Items)))
	r.traceStats(stats)

	idx = r.timer.Begin("encode")
	out, err := canon.Marshal(doc, r.opts.Encode)
	r.timer.End(idx, r.opts.Encode.Format.String())
	if err != nil {
		return nil, fatal(r.path, fs, parsed.Bag, diag.IOWriteError, fmt.Errorf("encode: %w", err))
	}

	res := &Result{
		Path:     r.path,
		FileSet:  fs,
		Bag:      parsed.Bag,
		Document: doc,
		Stats:    stats,
		Output:   out,
		Hash:     parsed.File.Hash,
		Timing:   r.timer.Report(),
	}
	if r.opts.Timings {
		appendTimingDiagnostic(res.Bag, timingPayload{Kind: "normalize", Path: r.path, TotalMS: res.Timing.TotalMS, Phases: res.Timing.Phases})
	}
	return res, nil
}

// traceStats пишет счётчики деградаций; виден только на уровне debug.
func (r *pipelineRun) traceStats(stats normalize.Stats) {
	if !r.tracer.Level().ShouldEmit(trace.ScopeNode) {
		return
	}
	counters := map[string]int{
		"unknown_exprs":   stats.UnknownExprs,
		"unknown_ops":     stats.UnknownOps,
		"unknown_types":   stats.UnknownTypes,
		"dropped_stmts":   stats.DroppedStmts,
		"dropped_items":   stats.DroppedItems,
		"dropped_impls":   stats.DroppedImpls,
		"dropped_params":  stats.DroppedParams,
		"placeholder_pat": stats.PlaceholderPat,
		"dropped_else_if": stats.DroppedElseIf,
	}
	extra := make(map[string]string, len(counters)+1)
	for k, v := range counters {
		if v != 0 {
			extra[k] = strconv.Itoa(v)
		}
	}
	extra["total"] = strconv.Itoa(stats.Degraded())
	trace.Point(r.tracer, trace.ScopeNode, "degradations", r.span.ID(), extra)
}
