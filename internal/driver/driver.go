// Package driver loads resolved-module artifacts and runs the lint engine
// over them, fanning function bodies out across worker goroutines.
package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"trylint/internal/artifact"
	"trylint/internal/diag"
	"trylint/internal/ir"
	"trylint/internal/observ"
	"trylint/internal/question"
	"trylint/internal/source"
	"trylint/internal/types"
)

// Options configures a lint run.
type Options struct {
	// MaxDiagnostics caps the merged bag; <=0 means unlimited.
	MaxDiagnostics int
	// Jobs is the worker count; <=0 means GOMAXPROCS.
	Jobs int
	// UsedLint also flags every `?` use and withholds suggestions where
	// the operator is forbidden.
	UsedLint bool
	// Timings appends a pipeline-timing diagnostic to the bag.
	Timings bool
}

// Result is everything a CLI layer needs after a run: the decoded inputs
// (for rendering and fix application) plus the merged diagnostics.
type Result struct {
	Files  *source.FileSet
	Types  *types.Table
	Module *ir.Module
	Bag    *diag.Bag
	Timing observ.Report
}

// LintFile reads an artifact from disk and lints it.
func LintFile(ctx context.Context, path string, opts Options) (*Result, error) {
	timer := observ.NewTimer()

	phase := timer.Begin("read")
	decoded, err := artifact.ReadFile(path)
	timer.End(phase, path)
	if err != nil {
		if ae, ok := artifact.IsValidationError(err); ok {
			bag := diag.NewBag(opts.MaxDiagnostics)
			bag.Add(diag.NewError(ae.Code, source.Span{}, ae.Msg))
			return &Result{Bag: bag, Timing: timer.Report()}, nil
		}
		return nil, err
	}

	phase = timer.Begin("lint")
	bag, err := LintModule(ctx, decoded, opts)
	timer.End(phase, decoded.Module.Name)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Files:  decoded.Files,
		Types:  decoded.Types,
		Module: decoded.Module,
		Bag:    bag,
		Timing: timer.Report(),
	}
	if opts.Timings {
		appendTimingDiagnostic(bag, timingPayload{
			Kind:   "lint",
			Path:   path,
			Report: res.Timing,
		})
	}
	return res, nil
}

// LintModule lints every function of a decoded module. Functions are
// independent, so they run concurrently; each worker owns a private pass
// and bag, and the bags are merged in declaration order afterwards so the
// output is deterministic regardless of scheduling.
func LintModule(ctx context.Context, decoded *artifact.Decoded, opts Options) (*diag.Bag, error) {
	merged := diag.NewBag(opts.MaxDiagnostics)
	if decoded == nil || decoded.Module == nil || len(decoded.Module.Funcs) == 0 {
		return merged, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	funcs := decoded.Module.Funcs
	bags := make([]*diag.Bag, len(funcs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(funcs)))

	for i, fn := range funcs {
		i, fn := i, fn
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			// A pass keeps per-body state, so each worker gets its own.
			pass := question.NewPass(decoded.Files, decoded.Types)
			pass.UsedLintEnabled = opts.UsedLint

			bag := diag.NewBag(opts.MaxDiagnostics)
			if err := pass.CheckFunc(fn, diag.BagReporter{Bag: bag}); err != nil {
				return err
			}
			bags[i] = bag
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return merged, err
	}

	for _, bag := range bags {
		merged.Merge(bag)
	}
	merged.Sort()
	merged.Dedup()
	return merged, nil
}
