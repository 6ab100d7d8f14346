package hints

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	userPath := filepath.Join("home", "ann", ".config", "go-mathmd", "work.yaml")

	tests := []struct {
		name         string
		paths        []string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "suggests user config path",
			paths:        []string{"work.yaml", "work.yml", userPath},
			wantContains: []string{"hint:", "--config", "or create " + userPath},
		},
		{
			name:         "no user path searched",
			paths:        []string{"work.yaml"},
			wantContains: []string{"--config"},
			wantExcludes: []string{"or create"},
		},
		{
			name:         "nil paths",
			paths:        nil,
			wantContains: []string{"--config"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ForConfigNotFound(tt.paths)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ForConfigNotFound() = %q, want it to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("ForConfigNotFound() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hint string
		want string
	}{
		{name: "output directory", hint: ForOutputDirectory(), want: "writable"},
		{name: "multiple inputs", hint: ForMultipleInputs(), want: "--output DIR or --in-place"},
		{name: "no input", hint: ForNoInput(), want: "use - to read stdin"},
		{name: "non canonical", hint: ForNonCanonical(), want: "--in-place"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.hint, "\n  hint: ") {
				t.Errorf("hint %q lacks the hint prefix", tt.hint)
			}
			if !strings.Contains(tt.hint, tt.want) {
				t.Errorf("hint %q should contain %q", tt.hint, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := formatHints([]string{"a", "b"}); got != "\n  hint: a; b" {
		t.Errorf("formatHints() = %q", got)
	}
}
