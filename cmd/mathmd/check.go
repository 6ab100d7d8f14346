package main

import (
	"context"
	"fmt"
	"io"
	"slices"

	mathmd "github.com/alnah/go-mathmd"
	"github.com/alnah/go-mathmd/internal/hints"
)

// stdinName labels standard input in check output.
const stdinName = "<stdin>"

// runCheck lists inputs that normalization would change, one per line,
// and fails with ErrNotCanonical when there is at least one.
func runCheck(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCheckFlags(args, env.Stdout)
	if err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg, err := resolveConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergePipelineFlags(&flags.pipeline, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	workers, err := resolveWorkerCount(flags.workers, envCfg)
	if err != nil {
		return err
	}

	normalizer := mathmd.NewNormalizer(normalizerOptions(cfg.Pipeline)...)
	pal := newPalette(env.Color && !flags.common.noColor)

	inputs, err := resolveInputs(positional, cfg, env)
	if err != nil {
		return err
	}

	var results []fileResult
	if slices.Contains(inputs, stdinArg) {
		if len(inputs) > 1 {
			return fmt.Errorf("%w: %s cannot be combined with other inputs", ErrUsage, stdinArg)
		}
		res, err := checkStream(env.Stdin, normalizer)
		if err != nil {
			return err
		}
		results = []fileResult{res}
	} else {
		jobs, err := discoverFiles(inputs, outputMode{}, cfg.Input.Extensions)
		if err != nil {
			return err
		}
		results = runBatch(ctx, jobs, workers, env.Now, func(job fileJob) fileResult {
			return checkFile(job, normalizer)
		})
	}

	summary := printCheckResults(results, flags.common.verbose, pal, env)
	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d file(s) could not be checked", ErrReadInput, summary.Failed)
	}
	if summary.Changed > 0 {
		return fmt.Errorf("%w: %d file(s) would change%s", ErrNotCanonical, summary.Changed, hints.ForNonCanonical())
	}
	return nil
}

// checkStream checks a document read from r.
func checkStream(r io.Reader, n *mathmd.Normalizer) (fileResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return fileResult{}, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	report := n.Check(string(data))
	return fileResult{InputPath: stdinName, Report: &report, Changed: !report.Canonical}, nil
}

// printCheckResults writes non-canonical inputs to stdout, one per line, so
// the output can be piped. Verbose mode adds a per-file summary on stderr.
func printCheckResults(results []fileResult, verbose bool, pal palette, env *Environment) ResultSummary {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "%s %s: %v\n", pal.failed.Sprint("FAILED"), r.InputPath, r.Err)
			continue
		}
		if r.Changed {
			fmt.Fprintln(env.Stdout, r.InputPath)
		}
		if verbose && r.Report != nil {
			status := pal.ok.Sprint("ok")
			if r.Changed {
				status = pal.changed.Sprint("changed")
			}
			fmt.Fprintf(env.Stderr, "%s %s: %d inline, %d block, %d table(s)\n",
				status, r.InputPath, r.Report.InlineSpans, r.Report.BlockSpans, len(r.Report.Tables))
		}
	}
	return countResults(results)
}
