package driver

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"rscanon/internal/diag"
	"rscanon/internal/normalize"
	"rscanon/internal/trace"
)

// BatchOptions configures Batch.
type BatchOptions struct {
	Root    string
	OutDir  string
	Jobs    int      // <= 0: GOMAXPROCS
	Exclude []string // glob по относительному пути или имени
	Files   []string // готовый список от ListSources; nil - обойти Root
	Options Options
	Cache   *DiskCache // nil - без кэша
	// Events получает прогресс; Batch канал не закрывает.
	Events chan<- Event
}

// FileOutcome - итог по одному файлу.
type FileOutcome struct {
	Rel     string
	OutPath string
	Cached  bool
	Stats   normalize.Stats
	Err     error // *FatalError или ошибка записи
}

// BatchReport aggregates a batch run in source order.
type BatchReport struct {
	Files  []FileOutcome
	Failed int
	Cached int
}

// ListSources возвращает отсортированные относительные пути *.rs под root.
// Каталоги target/ и скрытые каталоги пропускаются.
func ListSources(root string, exclude []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel == "." {
				return nil
			}
			name := d.Name()
			if name == "target" || strings.HasPrefix(name, ".") || excluded(rel, exclude) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(rel, ".rs") && !excluded(rel, exclude) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	slices.Sort(files)
	return files, nil
}

func excluded(rel string, patterns []string) bool {
	base := path.Base(rel)
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := path.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// OutputPath maps a source path to <out>/<rel without .rs><ext>.
func OutputPath(outDir, rel, ext string) string {
	return filepath.Join(outDir, filepath.FromSlash(strings.TrimSuffix(rel, ".rs")+ext))
}

// Batch нормализует все *.rs под Root параллельно (errgroup, лимит Jobs).
// Ошибки отдельных файлов попадают в отчёт; err возвращается только при
// сбое обхода каталога или отмене контекста.
func Batch(ctx context.Context, opts BatchOptions) (*BatchReport, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePhase, "batch", trace.CurrentSpan(ctx)).WithExtra("root", opts.Root)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	files := opts.Files
	if files == nil {
		var err error
		if files, err = ListSources(opts.Root, opts.Exclude); err != nil {
			return nil, fmt.Errorf("list sources: %w", err)
		}
	}
	span.WithExtra("files", strconv.Itoa(len(files)))

	report := &BatchReport{Files: make([]FileOutcome, len(files))}
	if len(files) == 0 {
		return report, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, rel := range files {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			emit(gctx, opts.Events, Event{Kind: EventStart, Path: rel, Index: i, Total: len(files)})
			started := time.Now()

			// индекс i уникален для горутины, мьютекс не нужен
			outcome := batchOne(gctx, opts, rel)
			report.Files[i] = outcome

			ev := Event{Kind: EventDone, Path: rel, Index: i, Total: len(files), Elapsed: time.Since(started), Err: outcome.Err}
			switch {
			case outcome.Err != nil:
				ev.Kind = EventFailed
			case outcome.Cached:
				ev.Kind = EventCached
			}
			emit(gctx, opts.Events, ev)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	for _, f := range report.Files {
		if f.Err != nil {
			report.Failed++
		}
		if f.Cached {
			report.Cached++
		}
	}
	span.WithExtra("failed", strconv.Itoa(report.Failed))
	return report, nil
}

func emit(ctx context.Context, ch chan<- Event, ev Event) {
	if ch == nil {
		return
	}
	select {
	case ch <- ev:
	case <-ctx.Done():
	}
}

func batchOne(ctx context.Context, opts BatchOptions, rel string) FileOutcome {
	srcPath := filepath.Join(opts.Root, filepath.FromSlash(rel))
	outcome := FileOutcome{
		Rel:     rel,
		OutPath: OutputPath(opts.OutDir, rel, opts.Options.Encode.Format.Extension()),
	}

	// #nosec G304 -- path comes from walking the batch root
	raw, err := os.ReadFile(srcPath)
	if err != nil {
		outcome.Err = fatal(srcPath, nil, nil, diag.IOLoadFileError, err)
		return outcome
	}
	sum := sha256.Sum256(raw)
	key := cacheKey(sum, opts.Options.Encode)

	var cached DiskPayload
	if hit, err := opts.Cache.Get(key, &cached); err == nil && hit {
		outcome.Cached = true
		outcome.Stats = cached.Stats
		outcome.Err = writeOutput(outcome.OutPath, cached.Output)
		return outcome
	}

	res, err := NormalizeSource(ctx, srcPath, raw, opts.Options)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Stats = res.Stats
	if err := writeOutput(outcome.OutPath, res.Output); err != nil {
		outcome.Err = err
		return outcome
	}
	// сбой кэша не портит прогон
	_ = opts.Cache.Put(key, &DiskPayload{Path: rel, SourceHash: sum, Output: res.Output, Stats: res.Stats})
	return outcome
}

func writeOutput(p string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return nil
}

// FirstFailure returns the first failed outcome, if any.
func (r *BatchReport) FirstFailure() (FileOutcome, bool) {
	for _, f := range r.Files {
		if f.Err != nil {
			return f, true
		}
	}
	return FileOutcome{}, false
}

// Fatal extracts *FatalError from an outcome error.
func Fatal(err error) (*FatalError, bool) {
	var fe *FatalError
	ok := errors.As(err, &fe)
	return fe, ok
}
