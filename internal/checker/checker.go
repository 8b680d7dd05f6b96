// Package checker orchestrates the citation pipeline: scan Go files
// for directives, parse them against the schema registry, fetch every
// source, classify each comparison under the effective behavior, and
// collect all resulting diagnostics. Files are processed in parallel;
// a run never stops at the first failure.
package checker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"cite/internal/citation"
	"cite/internal/citesource"
	"cite/internal/diag"
	"cite/internal/directive"
	"cite/internal/source"
)

const defaultMaxDiagnostics = 256

// Options configures a checker run.
type Options struct {
	// Dir is the root of the tree to validate.
	Dir string
	// Ambient is the run-wide behavior from configuration.
	Ambient citation.Behavior
	// Registry resolves source kinds; nil uses the built-in kinds.
	Registry *citesource.Registry
	// MaxDiagnostics caps collected diagnostics per file.
	MaxDiagnostics int
	// Jobs limits parallel file workers; 0 uses GOMAXPROCS.
	Jobs int
	// Progress receives stage events; nil disables reporting.
	Progress ProgressSink
	// Cache replays scan results across runs; nil disables caching.
	Cache *DiskCache
}

// Result aggregates a whole run.
type Result struct {
	FileSet *source.FileSet
	Bag     *diag.Bag

	Files            int
	Directives       int
	Valid            int
	SilentMismatches int

	Timings Timings
	Elapsed time.Duration
}

// Failed reports whether the run must exit non-zero.
func (r *Result) Failed() bool {
	return r.Bag.HasErrors()
}

// Errors counts error diagnostics in the run.
func (r *Result) Errors() int {
	n := 0
	for _, d := range r.Bag.Items() {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}

// Warnings counts warning diagnostics in the run.
func (r *Result) Warnings() int {
	n := 0
	for _, d := range r.Bag.Items() {
		if d.Severity == diag.SevWarning {
			n++
		}
	}
	return n
}

type fileOutcome struct {
	bag        *diag.Bag
	directives int
	valid      int
	silent     int
	timings    Timings
}

// Check validates every directive under opts.Dir and returns the
// aggregated result. All directives are evaluated even when earlier
// ones fail; the returned error covers run-level faults only, never
// individual diagnostics.
func Check(ctx context.Context, opts Options) (*Result, error) {
	if opts.Registry == nil {
		opts.Registry = citesource.DefaultRegistry()
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = defaultMaxDiagnostics
	}

	runStart := time.Now()

	files, err := ListGoFiles(opts.Dir)
	if err != nil {
		return nil, err
	}

	fileSet := source.NewFileSetWithBase(opts.Dir)
	result := &Result{
		FileSet: fileSet,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
		Files:   len(files),
	}
	if len(files) == 0 {
		result.Elapsed = time.Since(runStart)
		return result, nil
	}

	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	for _, path := range files {
		emitStage(opts.Progress, path, StageScan, StatusQueued, nil, 0)
	}

	// index per goroutine is unique, no mutex needed
	outcomes := make([]fileOutcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(opts.MaxDiagnostics)
			outcomes[i].bag = bag

			if loadErr, hadError := loadErrors[path]; hadError {
				diag.BagReporter{Bag: bag}.Report(
					diag.IOLoadFileError,
					diag.SevError,
					source.Span{},
					"failed to load file: "+loadErr.Error(),
					nil,
				)
				emitStage(opts.Progress, path, StageScan, StatusError, loadErr, 0)
				return nil
			}

			file := fileSet.Get(fileIDs[path])
			outcomes[i] = checkFile(file, path, &opts, bag)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	for i := range outcomes {
		out := &outcomes[i]
		if out.bag != nil {
			result.Bag.Merge(out.bag)
		}
		result.Directives += out.directives
		result.Valid += out.valid
		result.SilentMismatches += out.silent
		result.Timings.Merge(out.timings)
	}
	result.Bag.Sort()
	result.Elapsed = time.Since(runStart)
	return result, nil
}

// checkFile runs the full pipeline over one loaded file. Every stage
// emits through the reporter; the bag behind it is only consulted for
// the per-stage status.
func checkFile(file *source.File, path string, opts *Options, bag *diag.Bag) fileOutcome {
	out := fileOutcome{bag: bag}
	rep := diag.BagReporter{Bag: bag}

	scanStart := time.Now()
	emitStage(opts.Progress, path, StageScan, StatusWorking, nil, 0)

	raws, hit, cacheErr := opts.Cache.Get(file)
	if cacheErr != nil || !hit {
		raws = directive.Scan(file)
		// best effort; a failed write only costs the next run a rescan
		_ = opts.Cache.Put(file, raws)
	}

	type pending struct {
		dir *directive.Directive
		eff citation.Behavior
	}
	parsed := make([]pending, 0, len(raws))
	for _, raw := range raws {
		d, err := directive.Parse(raw, opts.Registry)
		if err != nil {
			out.directives++
			addParseFailure(rep, err)
			continue
		}
		parsed = append(parsed, pending{
			dir: d,
			eff: citation.Resolve(opts.Ambient, d.Overrides),
		})
	}
	out.timings.Add(StageScan, time.Since(scanStart))
	scanStatus := StatusDone
	if bag.HasErrors() {
		scanStatus = StatusError
	}
	emitStage(opts.Progress, path, StageScan, scanStatus, nil, out.timings.Duration(StageScan))

	fetchStart := time.Now()
	emitStage(opts.Progress, path, StageFetch, StatusWorking, nil, 0)
	type fetched struct {
		pending
		src citesource.Source
		cmp *citesource.Comparison
	}
	comparisons := make([]fetched, 0, len(parsed))
	for _, p := range parsed {
		out.directives++

		src, serr := p.dir.Schema.Construct(p.dir.Args)
		if serr != nil {
			addSourceFailure(rep, p.dir, diag.SrcConstructFailed, serr, p.eff)
			continue
		}
		cmp, ferr := src.Get()
		if ferr != nil {
			addSourceFailure(rep, p.dir, diag.SrcFetchFailed, ferr, p.eff)
			continue
		}
		comparisons = append(comparisons, fetched{pending: p, src: src, cmp: cmp})
	}
	out.timings.Add(StageFetch, time.Since(fetchStart))
	emitStage(opts.Progress, path, StageFetch, StatusDone, nil, out.timings.Duration(StageFetch))

	validateStart := time.Now()
	emitStage(opts.Progress, path, StageValidate, StatusWorking, nil, 0)
	for _, f := range comparisons {
		verdict := citation.Classify(f.cmp, f.eff, f.dir.Reason)
		switch {
		case !verdict.Mismatch:
			out.valid++
		case verdict.Kind == citation.OutcomeValid:
			out.silent++
		default:
			addMismatch(rep, f.dir, f.src, verdict, f.eff)
		}
	}
	out.timings.Add(StageValidate, time.Since(validateStart))
	status := StatusDone
	if bag.HasErrors() {
		status = StatusError
	}
	emitStage(opts.Progress, path, StageValidate, status, nil, out.timings.Duration(StageValidate))

	return out
}

func addParseFailure(rep diag.Reporter, err error) {
	var perr *directive.ParseError
	if errors.As(err, &perr) {
		rep.Report(perr.Code, diag.SevError, perr.Span, perr.Msg, nil)
		return
	}
	var werr *directive.WrongTargetError
	if errors.As(err, &werr) {
		var notes []diag.Note
		if werr.Target.Kind != directive.TargetNone {
			notes = []diag.Note{{
				Span: werr.Target.Span,
				Msg:  fmt.Sprintf("directive attaches to this %s", werr.Target.Kind),
			}}
		}
		rep.Report(diag.DirWrongTarget, diag.SevError, werr.Span, werr.Error(), notes)
		return
	}
	rep.Report(diag.UnknownCode, diag.SevError, source.Span{}, err.Error(), nil)
}

func addSourceFailure(rep diag.Reporter, d *directive.Directive, code diag.Code, serr *citesource.SourceError, eff citation.Behavior) {
	verdict := citation.ClassifySourceError(serr, eff)
	msg := fmt.Sprintf("cannot validate citation: %s", serr.Error())
	rep.Report(code, severityFor(verdict.Kind), d.Span, msg, nil)
}

// addMismatch emits the changed-content diagnostic. Inline annotation
// folds both content versions into the message; footnote moves them
// into notes under a short headline.
func addMismatch(rep diag.Reporter, d *directive.Directive, src citesource.Source, verdict citation.Outcome, eff citation.Behavior) {
	headline := fmt.Sprintf("cited content from %s has changed", src.ID())
	if d.Target.Name != "" {
		headline = fmt.Sprintf("citation on %s: content from %s has changed", d.Target.Name, src.ID())
	}

	sev := severityFor(verdict.Kind)
	if eff.Annotation == citation.AnnotationInline {
		msg := fmt.Sprintf("%s: referenced %q, current %q", headline, verdict.Referenced, verdict.Current)
		if verdict.Reason != "" {
			msg += fmt.Sprintf(" (reason: %s)", verdict.Reason)
		}
		rep.Report(diag.ValContentChanged, sev, d.Span, msg, nil)
		return
	}

	notes := []diag.Note{
		{Span: d.Span, Msg: fmt.Sprintf("referenced: %q", verdict.Referenced)},
		{Span: d.Span, Msg: fmt.Sprintf("current: %q", verdict.Current)},
	}
	if verdict.Reason != "" {
		notes = append(notes, diag.Note{Span: d.Span, Msg: "reason: " + verdict.Reason})
	}
	rep.Report(diag.ValContentChanged, sev, d.Span, headline, notes)
}

func severityFor(kind citation.OutcomeKind) diag.Severity {
	if kind == citation.OutcomeError {
		return diag.SevError
	}
	return diag.SevWarning
}

// ListGoFiles returns a sorted list of all *.go files under dir,
// skipping hidden directories, vendor trees, and underscore-prefixed
// directories the Go toolchain itself ignores.
func ListGoFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (name == "vendor" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".go") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
