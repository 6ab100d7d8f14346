package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/alnah/go-mathmd"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Input.DefaultDir != "" {
		t.Errorf("Input.DefaultDir = %q, want empty", cfg.Input.DefaultDir)
	}
	if !slices.Equal(cfg.Input.Extensions, DefaultExtensions) {
		t.Errorf("Input.Extensions = %v, want %v", cfg.Input.Extensions, DefaultExtensions)
	}
	if cfg.Output.DefaultDir != "" || cfg.Output.InPlace {
		t.Errorf("Output = %+v, want zero value", cfg.Output)
	}
	if !cfg.Pipeline.Shorthand || !cfg.Pipeline.Tables {
		t.Errorf("Pipeline = %+v, want shorthand and tables enabled", cfg.Pipeline)
	}
	if cfg.Pipeline.UnicodeNFC || cfg.Pipeline.AlignTables {
		t.Errorf("Pipeline = %+v, want NFC and alignment disabled", cfg.Pipeline)
	}
	if cfg.Pipeline.Separator != mathmd.DefaultSeparator {
		t.Errorf("Pipeline.Separator = %q, want %q", cfg.Pipeline.Separator, mathmd.DefaultSeparator)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}

	// Extensions must not alias the package-level slice.
	cfg.Input.Extensions[0] = ".changed"
	if DefaultExtensions[0] == ".changed" {
		t.Error("DefaultConfig shares its Extensions slice with DefaultExtensions")
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit returns error", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if err != nil && !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "input dir too long",
			mutate:  func(c *Config) { c.Input.DefaultDir = strings.Repeat("a", MaxDirLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "output dir too long",
			mutate:  func(c *Config) { c.Output.DefaultDir = strings.Repeat("a", MaxDirLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "extension without dot",
			mutate:  func(c *Config) { c.Input.Extensions = []string{"md"} },
			wantErr: ErrInvalidField,
		},
		{
			name:    "extension with separator",
			mutate:  func(c *Config) { c.Input.Extensions = []string{"./md"} },
			wantErr: ErrInvalidField,
		},
		{
			name:    "bare dot extension",
			mutate:  func(c *Config) { c.Input.Extensions = []string{"."} },
			wantErr: ErrInvalidField,
		},
		{
			name: "too many extensions",
			mutate: func(c *Config) {
				c.Input.Extensions = slices.Repeat([]string{".md"}, MaxExtensions+1)
			},
			wantErr: ErrInvalidField,
		},
		{
			name: "in place with output dir",
			mutate: func(c *Config) {
				c.Output.InPlace = true
				c.Output.DefaultDir = "out"
			},
			wantErr: ErrInvalidField,
		},
		{
			name:    "invalid separator",
			mutate:  func(c *Config) { c.Pipeline.Separator = "==" },
			wantErr: mathmd.ErrInvalidSeparator,
		},
		{
			name:   "empty separator means default",
			mutate: func(c *Config) { c.Pipeline.Separator = "" },
		},
		{
			name:   "plain separator",
			mutate: func(c *Config) { c.Pipeline.Separator = "---" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	writeConfig := func(t *testing.T, name, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), name)
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		return path
	}

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "test.yaml", `input:
  defaultDir: "notes"
  extensions: [".md"]
output:
  defaultDir: "out"
pipeline:
  shorthand: false
  alignTables: true
  separator: "---"
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input.DefaultDir != "notes" {
			t.Errorf("Input.DefaultDir = %q, want %q", cfg.Input.DefaultDir, "notes")
		}
		if !slices.Equal(cfg.Input.Extensions, []string{".md"}) {
			t.Errorf("Input.Extensions = %v, want [.md]", cfg.Input.Extensions)
		}
		if cfg.Output.DefaultDir != "out" {
			t.Errorf("Output.DefaultDir = %q, want %q", cfg.Output.DefaultDir, "out")
		}
		if cfg.Pipeline.Shorthand {
			t.Error("Pipeline.Shorthand = true, want false")
		}
		if !cfg.Pipeline.AlignTables {
			t.Error("Pipeline.AlignTables = false, want true")
		}
		if cfg.Pipeline.Separator != "---" {
			t.Errorf("Pipeline.Separator = %q, want %q", cfg.Pipeline.Separator, "---")
		}
	})

	t.Run("missing keys keep defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "partial.yaml", "pipeline:\n  unicodeNFC: true\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if !cfg.Pipeline.UnicodeNFC {
			t.Error("Pipeline.UnicodeNFC = false, want true")
		}
		if !cfg.Pipeline.Tables || !cfg.Pipeline.Shorthand {
			t.Errorf("Pipeline = %+v, want defaults kept", cfg.Pipeline)
		}
		if cfg.Pipeline.Separator != mathmd.DefaultSeparator {
			t.Errorf("Pipeline.Separator = %q, want default", cfg.Pipeline.Separator)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "invalid.yaml", "pipeline: [unclosed")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "unknown.yaml", "pipeline:\n  tables: true\n  style: fancy\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "bad.yaml", "pipeline:\n  separator: \"|\"\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, mathmd.ErrInvalidSeparator) {
			t.Errorf("error = %v, want ErrInvalidSeparator", err)
		}
	})
}

func TestResolveConfigPath(t *testing.T) {
	// Not parallel: changes the working directory and XDG_CONFIG_HOME.
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	t.Run("finds local yml", func(t *testing.T) {
		if err := os.WriteFile("local.yml", []byte("pipeline:\n  tables: false\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig("local")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Pipeline.Tables {
			t.Error("Pipeline.Tables = true, want false")
		}
	})

	t.Run("finds user config dir", func(t *testing.T) {
		base, err := os.UserConfigDir()
		if err != nil || !strings.HasPrefix(base, dir) {
			t.Skip("user config dir does not follow XDG_CONFIG_HOME on this platform")
		}
		userDir := filepath.Join(base, configDirName)
		if err := os.MkdirAll(userDir, 0750); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(filepath.Join(userDir, "user.yaml"), []byte("output:\n  inPlace: true\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig("user")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if !cfg.Output.InPlace {
			t.Error("Output.InPlace = false, want true")
		}
	})

	t.Run("lists tried paths when missing", func(t *testing.T) {
		_, err := resolveConfigPath("absent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		for _, want := range []string{"absent.yaml", "absent.yml", filepath.Join(configDirName, "absent.yaml")} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error %q should mention %q", err, want)
			}
		}
	})
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("work")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least the local candidates", paths)
	}
	if paths[0] != "work.yaml" || paths[1] != "work.yml" {
		t.Errorf("local candidates = %v, want [work.yaml work.yml]", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, configDirName) {
			t.Errorf("user candidate %q should live under %s", p, configDirName)
		}
	}
}
