package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mathmd/internal/fileutil"
)

// fileJob represents a single file to process.
// OutputPath is empty when the result goes to stdout or nowhere (check).
type fileJob struct {
	InputPath  string
	OutputPath string
	InPlace    bool
}

// outputMode says where normalized files go.
type outputMode struct {
	dir     string
	inPlace bool
}

// discoverFiles expands inputs into file jobs. Files named explicitly are
// taken whatever their extension; directories are walked for files matching
// exts, skipping hidden directories and the output directory itself.
// A file reached twice is processed once.
func discoverFiles(inputs []string, mode outputMode, exts []string) ([]fileJob, error) {
	var jobs []fileJob
	seen := make(map[string]bool)
	outputs := make(map[string]string)

	add := func(path, baseDir string) error {
		clean := filepath.Clean(path)
		if seen[clean] {
			return nil
		}
		seen[clean] = true

		job := fileJob{InputPath: path, InPlace: mode.inPlace}
		switch {
		case mode.inPlace:
			job.OutputPath = path
		case mode.dir != "":
			job.OutputPath = resolveOutputPath(path, mode.dir, baseDir)
			if prev, dup := outputs[job.OutputPath]; dup {
				return fmt.Errorf("%w: %s and %s both map to %s", ErrUsage, prev, path, job.OutputPath)
			}
			outputs[job.OutputPath] = path
		}
		jobs = append(jobs, job)
		return nil
	}

	skipDir := ""
	if mode.dir != "" {
		if abs, err := filepath.Abs(mode.dir); err == nil {
			skipDir = abs
		}
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if err := add(input, ""); err != nil {
				return nil, err
			}
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() {
				if path != input && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				if skipDir != "" && path != input {
					if abs, err := filepath.Abs(path); err == nil && abs == skipDir {
						return filepath.SkipDir
					}
				}
				return nil
			}
			if !fileutil.HasExtension(path, exts) {
				return nil
			}
			return add(path, input)
		})
		if err != nil {
			return nil, err
		}
	}

	return jobs, nil
}

// resolveOutputPath places a file under outputDir, mirroring its position
// relative to baseInputDir when it was found by walking a directory.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, relPath)
		}
	}
	return filepath.Join(outputDir, filepath.Base(inputPath))
}
