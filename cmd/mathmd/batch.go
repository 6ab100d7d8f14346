package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	mathmd "github.com/alnah/go-mathmd"
	"github.com/alnah/go-mathmd/internal/fileutil"
	"github.com/alnah/go-mathmd/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+exec
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// fileResult holds the outcome of processing a single file.
type fileResult struct {
	InputPath  string
	OutputPath string
	Changed    bool           // normalized content differs from input
	Report     *mathmd.Report // set by check only
	Err        error
	Duration   time.Duration
}

// runBatch processes jobs with at most workers in flight. Results keep the
// order of jobs. Jobs not started before ctx is canceled fail with ctx.Err().
func runBatch(ctx context.Context, jobs []fileJob, workers int, now func() time.Time, process func(fileJob) fileResult) []fileResult {
	results := make([]fileResult, len(jobs))

	var g errgroup.Group
	g.SetLimit(workers)

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = fileResult{InputPath: job.InputPath, OutputPath: job.OutputPath, Err: err}
				return nil
			}
			start := now()
			res := process(job)
			res.Duration = now().Sub(start)
			results[i] = res
			return nil
		})
	}

	// Per-file errors live in results; the group never fails.
	_ = g.Wait()
	return results
}

// normalizeFile normalizes one file to its output path.
// In-place files are only rewritten when their content changes.
func normalizeFile(job fileJob, n *mathmd.Normalizer) fileResult {
	result := fileResult{InputPath: job.InputPath, OutputPath: job.OutputPath}

	data, err := os.ReadFile(job.InputPath) // #nosec G304 -- input path is user-provided
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrReadInput, err)
		return result
	}

	src := string(data)
	out := n.Normalize(src)
	result.Changed = out != src

	if job.InPlace {
		if !result.Changed {
			return result
		}
		if err := fileutil.WriteFileAtomic(job.InputPath, []byte(out), filePermissions); err != nil {
			result.Err = fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		return result
	}

	if dir := filepath.Dir(job.OutputPath); dir != "" {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			result.Err = fmt.Errorf("%w: creating %s: %w%s", ErrWriteOutput, dir, err, hints.ForOutputDirectory())
			return result
		}
	}
	if err := os.WriteFile(job.OutputPath, []byte(out), filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return result
}

// checkFile reports whether one file is already canonical.
func checkFile(job fileJob, n *mathmd.Normalizer) fileResult {
	result := fileResult{InputPath: job.InputPath}

	data, err := os.ReadFile(job.InputPath) // #nosec G304 -- input path is user-provided
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrReadInput, err)
		return result
	}

	report := n.Check(string(data))
	result.Report = &report
	result.Changed = !report.Canonical
	return result
}

// ResultSummary holds counts from a batch run.
type ResultSummary struct {
	Changed   int
	Unchanged int
	Failed    int
}

// countResults tallies results by outcome.
func countResults(results []fileResult) ResultSummary {
	var s ResultSummary
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Failed++
		case r.Changed:
			s.Changed++
		default:
			s.Unchanged++
		}
	}
	return s
}

// printNormalizeResults prints per-file status and a summary line.
// Failures always go to stderr; everything else respects quiet and verbose.
// Returns the number of failures.
func printNormalizeResults(results []fileResult, quiet, verbose bool, pal palette, env *Environment) int {
	for _, r := range results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(env.Stderr, "%s %s: %v\n", pal.failed.Sprint("FAILED"), r.InputPath, r.Err)
		case quiet:
		case r.Changed && verbose:
			fmt.Fprintf(env.Stdout, "%s %s -> %s (%v)\n", pal.changed.Sprint("changed"), r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		case r.Changed:
			fmt.Fprintf(env.Stdout, "%s %s\n", pal.changed.Sprint("changed"), r.OutputPath)
		case verbose:
			fmt.Fprintf(env.Stdout, "%s %s (%v)\n", pal.ok.Sprint("ok"), r.InputPath, r.Duration.Round(time.Millisecond))
		}
	}

	summary := countResults(results)
	if !quiet {
		fmt.Fprintf(env.Stdout, "\n%d changed, %d unchanged, %d failed\n", summary.Changed, summary.Unchanged, summary.Failed)
	}
	return summary.Failed
}
