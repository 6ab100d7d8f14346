package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-mathmd/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MATHMD_CONFIG: config file name or path
	InputDir   string // MATHMD_INPUT_DIR: default input directory
	OutputDir  string // MATHMD_OUTPUT_DIR: default output directory
	Workers    int    // MATHMD_WORKERS: parallel workers
	NFC        *bool  // MATHMD_NFC: Unicode NFC preprocessing (nil = unset)
}

// knownEnvVars lists valid MATHMD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MATHMD_CONFIG":     true,
	"MATHMD_INPUT_DIR":  true,
	"MATHMD_OUTPUT_DIR": true,
	"MATHMD_WORKERS":    true,
	"MATHMD_NFC":        true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and booleans are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MATHMD_CONFIG"),
		InputDir:   os.Getenv("MATHMD_INPUT_DIR"),
		OutputDir:  os.Getenv("MATHMD_OUTPUT_DIR"),
	}

	if workers := os.Getenv("MATHMD_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if nfc := os.Getenv("MATHMD_NFC"); nfc != "" {
		if b, err := strconv.ParseBool(nfc); err == nil {
			cfg.NFC = &b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MATHMD_* variables.
// Helps catch typos like MATHMD_WORKER instead of MATHMD_WORKERS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MATHMD_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values over the loaded config.
// Order: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
// An output directory from the environment does not override an in-place config.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && !cfg.Output.InPlace {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.NFC != nil {
		cfg.Pipeline.UnicodeNFC = *env.NFC
	}
}
