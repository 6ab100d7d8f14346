package main

// Notes:
// - Tests use t.Setenv() which prevents t.Parallel().
// - Malformed MATHMD_WORKERS and MATHMD_NFC values are ignored, not errors.

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alnah/go-mathmd/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("MATHMD_CONFIG", "work")
		t.Setenv("MATHMD_INPUT_DIR", "/input")
		t.Setenv("MATHMD_OUTPUT_DIR", "/output")
		t.Setenv("MATHMD_WORKERS", "4")
		t.Setenv("MATHMD_NFC", "true")

		cfg := loadEnvConfig()

		if cfg.ConfigPath != "work" {
			t.Errorf("ConfigPath = %q, want work", cfg.ConfigPath)
		}
		if cfg.InputDir != "/input" {
			t.Errorf("InputDir = %q, want /input", cfg.InputDir)
		}
		if cfg.OutputDir != "/output" {
			t.Errorf("OutputDir = %q, want /output", cfg.OutputDir)
		}
		if cfg.Workers != 4 {
			t.Errorf("Workers = %d, want 4", cfg.Workers)
		}
		if cfg.NFC == nil || !*cfg.NFC {
			t.Errorf("NFC = %v, want true", cfg.NFC)
		}
	})

	t.Run("explicit false NFC", func(t *testing.T) {
		t.Setenv("MATHMD_NFC", "0")

		cfg := loadEnvConfig()
		if cfg.NFC == nil || *cfg.NFC {
			t.Errorf("NFC = %v, want pointer to false", cfg.NFC)
		}
	})

	t.Run("malformed values ignored", func(t *testing.T) {
		t.Setenv("MATHMD_WORKERS", "-2")
		t.Setenv("MATHMD_NFC", "maybe")

		cfg := loadEnvConfig()
		if cfg.Workers != 0 {
			t.Errorf("Workers = %d, want 0", cfg.Workers)
		}
		if cfg.NFC != nil {
			t.Errorf("NFC = %v, want nil", *cfg.NFC)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("MATHMD_WORKER", "2")
	t.Setenv("MATHMD_WORKERS", "2")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	got := buf.String()
	if !strings.Contains(got, "MATHMD_WORKER (typo?)") {
		t.Errorf("warnings = %q, want one for MATHMD_WORKER", got)
	}
	if strings.Contains(got, "MATHMD_WORKERS") {
		t.Errorf("warnings = %q, known variable should not warn", got)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Priority over the config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	yes := true

	tests := []struct {
		name  string
		env   envConfig
		setup func(*config.Config)
		check func(*testing.T, *config.Config)
	}{
		{
			name: "empty env keeps config",
			env:  envConfig{},
			setup: func(c *config.Config) {
				c.Input.DefaultDir = "notes"
			},
			check: func(t *testing.T, c *config.Config) {
				if c.Input.DefaultDir != "notes" || c.Pipeline.UnicodeNFC {
					t.Errorf("config changed: %+v", c)
				}
			},
		},
		{
			name: "env overrides config",
			env:  envConfig{InputDir: "/in", OutputDir: "/out", NFC: &yes},
			setup: func(c *config.Config) {
				c.Input.DefaultDir = "notes"
				c.Output.DefaultDir = "build"
			},
			check: func(t *testing.T, c *config.Config) {
				if c.Input.DefaultDir != "/in" {
					t.Errorf("Input.DefaultDir = %q, want /in", c.Input.DefaultDir)
				}
				if c.Output.DefaultDir != "/out" {
					t.Errorf("Output.DefaultDir = %q, want /out", c.Output.DefaultDir)
				}
				if !c.Pipeline.UnicodeNFC {
					t.Error("Pipeline.UnicodeNFC = false, want true")
				}
			},
		},
		{
			name: "output dir does not override in place",
			env:  envConfig{OutputDir: "/out"},
			setup: func(c *config.Config) {
				c.Output.InPlace = true
			},
			check: func(t *testing.T, c *config.Config) {
				if c.Output.DefaultDir != "" {
					t.Errorf("Output.DefaultDir = %q, want empty with inPlace", c.Output.DefaultDir)
				}
				if err := c.Validate(); err != nil {
					t.Errorf("Validate() error = %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			tt.setup(cfg)
			applyEnvConfig(&tt.env, cfg)
			tt.check(t, cfg)
		})
	}
}
