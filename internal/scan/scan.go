// Package scan renders whole word lists in parallel and hands the merged
// dictionary to a sink.
package scan

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"numberplater/internal/cache"
	"numberplater/internal/diag"
	"numberplater/internal/pipeline"
	"numberplater/internal/plate"
	"numberplater/internal/sink"
	"numberplater/internal/trace"
)

// DefaultMaxDiagnostics caps the diagnostics kept per run.
const DefaultMaxDiagnostics = 1000

// cancelCheckEvery is how many words a worker renders between context checks.
const cancelCheckEvery = 256

// Request describes one scan.
type Request struct {
	Files    []string
	Families plate.FamilySet
	// Jobs bounds the word lists processed at once; 0 uses GOMAXPROCS.
	Jobs      int
	Prefilter bool

	Analyzer *plate.Analyzer
	Cache    *cache.DiskCache
	Memo     *cache.Memo
	// Sink receives the merged dictionary. Nil skips the write stage.
	Sink     sink.Sink
	Progress pipeline.ProgressSink

	MaxDiagnostics int
	// RunID identifies the run in caches and sinks; generated when empty.
	RunID string
	Now   func() time.Time
}

// FileResult summarises one word list.
type FileResult struct {
	Path    string
	Lines   int
	Words   int
	Skipped int
	Cached  bool
	Err     error
	Elapsed time.Duration

	dict plate.Dictionary
}

// Result is the outcome of Run.
type Result struct {
	RunID      string
	Dictionary plate.Dictionary
	Files      []FileResult
	Bag        *diag.Bag
	Timings    pipeline.Timings
}

// Failed reports whether any word list could not be processed.
func (r *Result) Failed() bool {
	for i := range r.Files {
		if r.Files[i].Err != nil {
			return true
		}
	}
	return false
}

type runner struct {
	req      Request
	analyzer *plate.Analyzer
	reporter diag.Reporter
	tracer   trace.Tracer
	parent   uint64

	mu      sync.Mutex
	timings pipeline.Timings
}

// Run loads, filters, renders and writes every word list in req. Problems
// with a single list are recorded as diagnostics on that list; Run returns
// an error only for cancellation, engine faults and sink failures.
func Run(ctx context.Context, req Request) (Result, error) {
	if req.Families.Empty() {
		return Result{}, fmt.Errorf("scan: no families selected")
	}
	if req.RunID == "" {
		req.RunID = uuid.NewString()
	}
	if req.Now == nil {
		req.Now = time.Now
	}
	maxDiags := req.MaxDiagnostics
	if maxDiags <= 0 {
		maxDiags = DefaultMaxDiagnostics
	}
	bag := diag.NewBag(maxDiags)

	r := &runner{
		req:      req,
		analyzer: req.Analyzer,
		reporter: diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
		tracer:   trace.FromContext(ctx),
		parent:   trace.ParentSpan(ctx),
	}
	if r.analyzer == nil {
		r.analyzer = plate.NewAnalyzer(nil)
	}

	span := trace.Begin(r.tracer, trace.ScopeStage, "scan", r.parent).
		WithExtra("run", req.RunID).
		WithExtra("files", strconv.Itoa(len(req.Files)))
	r.parent = span.ID()

	files := slices.Clone(req.Files)
	for _, f := range files {
		pipeline.Emit(req.Progress, pipeline.Event{File: f, Status: pipeline.StatusQueued})
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))
	for i, path := range files {
		g.Go(func() error {
			res, err := r.processFile(gctx, path)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		span.End("error")
		return Result{RunID: req.RunID, Files: results, Bag: bag, Timings: r.timings}, err
	}

	dict := make(plate.Dictionary)
	for i := range results {
		for w, rs := range results[i].dict {
			dict[w] = rs
		}
		results[i].dict = nil
	}

	if req.Sink != nil {
		if err := r.write(ctx, files, dict); err != nil {
			span.End("error")
			return Result{RunID: req.RunID, Dictionary: dict, Files: results, Bag: bag, Timings: r.timings}, err
		}
	}

	span.WithExtra("words", strconv.Itoa(len(dict))).End("")
	return Result{
		RunID:      req.RunID,
		Dictionary: dict,
		Files:      results,
		Bag:        bag,
		Timings:    r.timings,
	}, nil
}

func (r *runner) addTiming(stage pipeline.Stage, d time.Duration) {
	r.mu.Lock()
	r.timings.Add(stage, d)
	r.mu.Unlock()
}

func (r *runner) emit(path string, stage pipeline.Stage, status pipeline.Status, words int, err error, elapsed time.Duration) {
	pipeline.Emit(r.req.Progress, pipeline.Event{
		File:    path,
		Stage:   stage,
		Status:  status,
		Words:   words,
		Err:     err,
		Elapsed: elapsed,
	})
}

// processFile returns a non-nil error only when the whole scan must stop.
func (r *runner) processFile(ctx context.Context, path string) (res FileResult, err error) {
	res.Path = path
	started := time.Now()
	span := trace.Begin(r.tracer, trace.ScopeFile, "file:"+path, r.parent)
	defer func() {
		res.Elapsed = time.Since(started)
		span.WithExtra("words", strconv.Itoa(res.Words)).End(fileDetail(res))
	}()

	if err = ctx.Err(); err != nil {
		return res, err
	}

	// load
	r.emit(path, pipeline.StageLoad, pipeline.StatusWorking, 0, nil, 0)
	t0 := time.Now()
	lines, err := LoadWordList(path)
	r.addTiming(pipeline.StageLoad, time.Since(t0))
	if err != nil {
		res.Err = err
		diag.ReportError(r.reporter, diag.IOLoadFileError, diag.Location{File: path}, err.Error()).Emit()
		r.emit(path, pipeline.StageLoad, pipeline.StatusError, 0, err, time.Since(started))
		return res, nil
	}
	res.Lines = len(lines)

	// filter
	r.emit(path, pipeline.StageFilter, pipeline.StatusWorking, len(lines), nil, 0)
	t0 = time.Now()
	words := r.filter(path, lines, &res)
	r.addTiming(pipeline.StageFilter, time.Since(t0))
	res.Words = len(words)
	if len(words) == 0 {
		diag.ReportWarning(r.reporter, diag.InputEmptyWordList, diag.Location{File: path}, "no usable words").
			WithNote(fmt.Sprintf("%d lines read, %d skipped", res.Lines, res.Skipped)).
			Emit()
		res.dict = plate.Dictionary{}
		r.emit(path, pipeline.StageFilter, pipeline.StatusDone, 0, nil, time.Since(started))
		return res, nil
	}

	// cache
	key := cache.KeyFor(words, r.req.Families)
	if r.req.Cache != nil {
		r.emit(path, pipeline.StageCache, pipeline.StatusWorking, len(words), nil, 0)
		t0 = time.Now()
		dict, hit := r.lookup(path, key)
		r.addTiming(pipeline.StageCache, time.Since(t0))
		if hit {
			res.Cached = true
			res.dict = dict
			r.emit(path, pipeline.StageCache, pipeline.StatusCached, len(words), nil, time.Since(started))
			return res, nil
		}
	}

	// analyze
	r.emit(path, pipeline.StageAnalyze, pipeline.StatusWorking, len(words), nil, 0)
	t0 = time.Now()
	dict, err := r.analyze(ctx, words)
	r.addTiming(pipeline.StageAnalyze, time.Since(t0))
	if err != nil {
		res.Err = err
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			diag.ReportError(r.reporter, diag.CodeFor(err), diag.Location{File: path}, err.Error()).Emit()
		}
		r.emit(path, pipeline.StageAnalyze, pipeline.StatusError, len(words), err, time.Since(started))
		return res, err
	}
	res.dict = dict

	if r.req.Cache != nil {
		r.store(path, key, dict)
	}
	r.emit(path, pipeline.StageAnalyze, pipeline.StatusDone, len(words), nil, time.Since(started))
	return res, nil
}

func fileDetail(res FileResult) string {
	switch {
	case res.Err != nil:
		return "error"
	case res.Cached:
		return "cached"
	}
	return ""
}

// filter turns lines into unique words, reporting rejected lines.
func (r *runner) filter(path string, lines []Line, res *FileResult) []plate.Word {
	seen := make(map[plate.Word]struct{}, len(lines))
	words := make([]plate.Word, 0, len(lines))
	for _, ln := range lines {
		w, err := Prefilter(ln.Text, r.req.Prefilter)
		if err != nil {
			res.Skipped++
			trace.Point(r.tracer, trace.ScopeWord, "skip", err.Error(), r.parent)
			if !errors.Is(err, ErrNoHomoglyph) {
				d := diag.FromError(diag.SevInfo, diag.Location{File: path, Line: ln.No}, ln.Text, err)
				r.reporter.Report(d)
			}
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}

func (r *runner) lookup(path string, key cache.Digest) (plate.Dictionary, bool) {
	var payload cache.Payload
	ok, err := r.req.Cache.Get(key, &payload)
	if err != nil {
		diag.ReportWarning(r.reporter, diag.IOCacheError, diag.Location{File: path}, err.Error()).Emit()
		return nil, false
	}
	if !ok || payload.Families != uint8(r.req.Families) {
		return nil, false
	}
	trace.Point(r.tracer, trace.ScopeFile, "cache-hit", key.String()[:12], r.parent)
	return payload.Restore(), true
}

func (r *runner) store(path string, key cache.Digest, dict plate.Dictionary) {
	payload, err := cache.NewPayload(r.req.RunID, r.req.Families, dict, r.req.Now())
	if err == nil {
		err = r.req.Cache.Put(key, payload)
	}
	if err != nil {
		diag.ReportWarning(r.reporter, diag.IOCacheError, diag.Location{File: path}, err.Error()).Emit()
	}
}

func (r *runner) analyze(ctx context.Context, words []plate.Word) (plate.Dictionary, error) {
	dict := make(plate.Dictionary, len(words))
	for i, w := range words {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if rs, ok := r.req.Memo.Get(w, r.req.Families); ok {
			dict[w] = rs
			continue
		}
		cands, err := r.analyzer.AnalyzeWord(w, r.req.Families, true)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", w, err)
		}
		rs := plate.Renderings(cands)
		r.req.Memo.Add(w, r.req.Families, rs)
		dict[w] = rs
	}
	return dict, nil
}

func (r *runner) write(ctx context.Context, files []string, dict plate.Dictionary) error {
	r.emit("", pipeline.StageWrite, pipeline.StatusWorking, len(dict), nil, 0)
	span := trace.Begin(r.tracer, trace.ScopeStage, "write", r.parent).WithExtra("path", r.req.Sink.Path())
	t0 := time.Now()
	err := r.req.Sink.Write(ctx, sink.Meta{
		RunID:    r.req.RunID,
		Families: r.req.Families,
		Created:  r.req.Now(),
		Sources:  files,
	}, dict)
	elapsed := time.Since(t0)
	r.addTiming(pipeline.StageWrite, elapsed)
	if err != nil {
		span.End("error")
		diag.ReportError(r.reporter, diag.IOOutputError, diag.Location{File: r.req.Sink.Path()}, err.Error()).Emit()
		r.emit("", pipeline.StageWrite, pipeline.StatusError, len(dict), err, elapsed)
		return fmt.Errorf("write %s: %w", r.req.Sink.Path(), err)
	}
	span.End("")
	r.emit("", pipeline.StageWrite, pipeline.StatusDone, len(dict), nil, elapsed)
	return nil
}
