package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	noColor bool
}

// pipelineFlags toggle pipeline stages. Tri-state booleans are resolved
// through FlagSet.Changed so an unset flag leaves config and env values alone.
type pipelineFlags struct {
	noShorthand bool
	noTables    bool
	nfc         bool
	alignTables bool
	separator   string

	nfcSet   bool
	alignSet bool
}

// normalizeFlags holds all flags for the normalize command.
type normalizeFlags struct {
	common   commonFlags
	pipeline pipelineFlags
	output   string
	inPlace  bool
	workers  int
}

// checkFlags holds all flags for the check command.
type checkFlags struct {
	common   commonFlags
	pipeline pipelineFlags
	workers  int
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored output")
}

func addPipelineFlags(fs *flag.FlagSet, f *pipelineFlags) {
	fs.BoolVar(&f.noShorthand, "no-shorthand", false, "skip shorthand expansion")
	fs.BoolVar(&f.noTables, "no-tables", false, "skip table synthesis")
	fs.BoolVar(&f.nfc, "nfc", false, "apply Unicode NFC normalization first")
	fs.BoolVar(&f.alignTables, "align-tables", false, "pad table cells to equal display width")
	fs.StringVar(&f.separator, "separator", "", "table alignment marker (default :---)")
}

// recordChanged notes which tri-state flags were given explicitly.
func (f *pipelineFlags) recordChanged(fs *flag.FlagSet) {
	f.nfcSet = fs.Changed("nfc")
	f.alignSet = fs.Changed("align-tables")
}

// parseNormalizeFlags parses flags for the normalize command.
// Returns the parsed flags and remaining positional arguments.
func parseNormalizeFlags(args []string, usageOut io.Writer) (*normalizeFlags, []string, error) {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printNormalizeUsage(usageOut) }

	f := &normalizeFlags{}
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.BoolVarP(&f.inPlace, "in-place", "i", false, "rewrite input files in place")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	addCommonFlags(fs, &f.common)
	addPipelineFlags(fs, &f.pipeline)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	f.pipeline.recordChanged(fs)

	return f, fs.Args(), nil
}

// parseCheckFlags parses flags for the check command.
func parseCheckFlags(args []string, usageOut io.Writer) (*checkFlags, []string, error) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printCheckUsage(usageOut) }

	f := &checkFlags{}
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	addCommonFlags(fs, &f.common)
	addPipelineFlags(fs, &f.pipeline)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	f.pipeline.recordChanged(fs)

	return f, fs.Args(), nil
}

// parseFlagSet wraps pflag errors so they map to the usage exit code.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
