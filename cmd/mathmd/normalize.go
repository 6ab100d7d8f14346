package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	mathmd "github.com/alnah/go-mathmd"
	"github.com/alnah/go-mathmd/internal/config"
	"github.com/alnah/go-mathmd/internal/fileutil"
	"github.com/alnah/go-mathmd/internal/hints"
)

// stdinArg names standard input on the command line.
const stdinArg = "-"

// runNormalize orchestrates the normalize command.
//
// Inputs: no arguments or "-" reads stdin; a single file without --output
// or --in-place prints to stdout; anything else is a batch written to an
// output directory or back in place.
func runNormalize(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseNormalizeFlags(args, env.Stdout)
	if err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg, err := resolveConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	if err := mergeNormalizeFlags(flags, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	workers, err := resolveWorkerCount(flags.workers, envCfg)
	if err != nil {
		return err
	}

	normalizer := mathmd.NewNormalizer(normalizerOptions(cfg.Pipeline)...)
	mode := outputMode{dir: cfg.Output.DefaultDir, inPlace: cfg.Output.InPlace}

	inputs, err := resolveInputs(positional, cfg, env)
	if err != nil {
		return err
	}

	if slices.Contains(inputs, stdinArg) {
		if len(inputs) > 1 {
			return fmt.Errorf("%w: %s cannot be combined with other inputs", ErrUsage, stdinArg)
		}
		if flags.output != "" || flags.inPlace {
			return fmt.Errorf("%w: standard input is always written to standard output", ErrUsage)
		}
		return normalizeStream(env.Stdin, env.Stdout, normalizer)
	}

	jobs, err := discoverFiles(inputs, mode, cfg.Input.Extensions)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("%w: no %s files found in %s", ErrNoInput, strings.Join(cfg.Input.Extensions, ", "), strings.Join(inputs, ", "))
	}

	if mode.dir == "" && !mode.inPlace {
		if len(jobs) > 1 {
			return fmt.Errorf("%w (%d files)%s", ErrMultipleInputs, len(jobs), hints.ForMultipleInputs())
		}
		return normalizePath(jobs[0].InputPath, env.Stdout, normalizer)
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d\n", workers)
	}

	results := runBatch(ctx, jobs, workers, env.Now, func(job fileJob) fileResult {
		return normalizeFile(job, normalizer)
	})

	pal := newPalette(env.Color && !flags.common.noColor)
	if failed := printNormalizeResults(results, flags.common.quiet, flags.common.verbose, pal, env); failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

// resolveConfig loads the config named by --config or MATHMD_CONFIG, falling
// back to defaults, then layers environment values over it.
func resolveConfig(flagConfig string, envCfg *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				var searched []string
				if !fileutil.IsFilePath(name) {
					searched = config.SearchPaths(name)
				}
				return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(searched))
			}
			return nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergePipelineFlags applies explicitly set pipeline flags over cfg.
func mergePipelineFlags(f *pipelineFlags, cfg *config.Config) {
	if f.noShorthand {
		cfg.Pipeline.Shorthand = false
	}
	if f.noTables {
		cfg.Pipeline.Tables = false
	}
	if f.nfcSet {
		cfg.Pipeline.UnicodeNFC = f.nfc
	}
	if f.alignSet {
		cfg.Pipeline.AlignTables = f.alignTables
	}
	if f.separator != "" {
		cfg.Pipeline.Separator = f.separator
	}
}

// mergeNormalizeFlags applies CLI flags over cfg. --output and --in-place
// replace each other's config counterpart but cannot both be given.
func mergeNormalizeFlags(f *normalizeFlags, cfg *config.Config) error {
	if f.output != "" && f.inPlace {
		return ErrConflictingOutput
	}

	mergePipelineFlags(&f.pipeline, cfg)

	if f.output != "" {
		cfg.Output.DefaultDir = f.output
		cfg.Output.InPlace = false
	}
	if f.inPlace {
		cfg.Output.InPlace = true
		cfg.Output.DefaultDir = ""
	}
	return nil
}

// normalizerOptions maps the pipeline config section to library options.
// The separator is validated by config.Validate before this runs.
func normalizerOptions(p config.PipelineConfig) []mathmd.Option {
	opts := []mathmd.Option{
		mathmd.WithShorthand(p.Shorthand),
		mathmd.WithTables(p.Tables),
		mathmd.WithUnicodeNFC(p.UnicodeNFC),
		mathmd.WithAlignedTables(p.AlignTables),
	}
	if p.Separator != "" {
		opts = append(opts, mathmd.WithSeparator(p.Separator))
	}
	return opts
}

// resolveWorkerCount picks the worker count: flag > MATHMD_WORKERS > auto.
func resolveWorkerCount(flagWorkers int, envCfg *envConfig) (int, error) {
	if err := validateWorkers(flagWorkers); err != nil {
		return 0, err
	}
	n := flagWorkers
	if n == 0 {
		n = envCfg.Workers
	}
	return mathmd.ResolveWorkers(n), nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > mathmd.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, mathmd.MaxWorkers)
	}
	return nil
}

// resolveInputs returns positional args, or the configured input directory,
// or stdin when something is piped in.
func resolveInputs(args []string, cfg *config.Config, env *Environment) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg.Input.DefaultDir != "" {
		return []string{cfg.Input.DefaultDir}, nil
	}
	if env.StdinIsTerminal {
		return nil, fmt.Errorf("%w%s", ErrNoInput, hints.ForNoInput())
	}
	return []string{stdinArg}, nil
}

// normalizeStream normalizes everything read from r and writes it to w.
func normalizeStream(r io.Reader, w io.Writer, n *mathmd.Normalizer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	if _, err := io.WriteString(w, n.Normalize(string(data))); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// normalizePath normalizes a single file to w.
func normalizePath(path string, w io.Writer, n *mathmd.Normalizer) error {
	data, err := os.ReadFile(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	if _, err := io.WriteString(w, n.Normalize(string(data))); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
