package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mathmd/internal/yamlutil"
)

// runConfig prints the effective configuration as YAML: the config file
// named by --config or MATHMD_CONFIG, with environment overrides applied.
// The output is a valid config file.
func runConfig(args []string, env *Environment) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printConfigUsage(env.Stdout) }

	var configName string
	fs.StringVarP(&configName, "config", "c", "", "config file name or path")
	if err := parseFlagSet(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: config takes no arguments", ErrUsage)
	}

	warnUnknownEnvVars(env.Stderr)
	cfg, err := resolveConfig(configName, loadEnvConfig())
	if err != nil {
		return err
	}

	out, err := yamlutil.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(out)
	return err
}
