package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mathmd"
	"github.com/alnah/go-mathmd/internal/fileutil"
	"github.com/alnah/go-mathmd/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxDirLength       = 4096 // PATH_MAX on Linux
	MaxExtensionLength = 16   // ".markdown" with room to spare
	MaxExtensions      = 16
)

// configDirName is the directory under os.UserConfigDir searched by name.
const configDirName = "go-mathmd"

// DefaultExtensions are the file extensions picked up from directories.
var DefaultExtensions = []string{".md", ".markdown", ".txt"}

// Config holds all configuration for document normalization.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string   `yaml:"defaultDir"` // Default input directory (empty = must specify)
	Extensions []string `yaml:"extensions"` // Extensions picked up from directories
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = stdout or in place)
	InPlace    bool   `yaml:"inPlace"`    // Rewrite input files
}

// PipelineConfig selects normalization stages and table formatting.
type PipelineConfig struct {
	Shorthand   bool   `yaml:"shorthand"`
	Tables      bool   `yaml:"tables"`
	UnicodeNFC  bool   `yaml:"unicodeNFC"`
	AlignTables bool   `yaml:"alignTables"`
	Separator   string `yaml:"separator"` // ":---" (default) or "---"
}

// Validate checks field lengths and values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxDirLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxDirLength); err != nil {
		return err
	}

	if len(c.Input.Extensions) > MaxExtensions {
		return fmt.Errorf("%w: input.extensions: %d entries (max %d)", ErrInvalidField, len(c.Input.Extensions), MaxExtensions)
	}
	for i, ext := range c.Input.Extensions {
		field := fmt.Sprintf("input.extensions[%d]", i)
		if err := validateFieldLength(field, ext, MaxExtensionLength); err != nil {
			return err
		}
		if len(ext) < 2 || ext[0] != '.' || strings.ContainsAny(ext[1:], "./\\") {
			return fmt.Errorf("%w: %s: %q (must look like .md)", ErrInvalidField, field, ext)
		}
	}

	if c.Output.InPlace && c.Output.DefaultDir != "" {
		return fmt.Errorf("%w: output.inPlace and output.defaultDir are mutually exclusive", ErrInvalidField)
	}

	if c.Pipeline.Separator != "" {
		if err := mathmd.ValidateSeparator(c.Pipeline.Separator); err != nil {
			return fmt.Errorf("pipeline.separator: %w", err)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// every stage enabled, unaligned tables, output to stdout.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{Extensions: append([]string(nil), DefaultExtensions...)},
		Output: OutputConfig{},
		Pipeline: PipelineConfig{
			Shorthand: true,
			Tables:    true,
			Separator: mathmd.DefaultSeparator,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// ./<name>.yaml, ./<name>.yml, then the same names under the user config
// directory (~/.config/go-mathmd/ on Linux).
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
