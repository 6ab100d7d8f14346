//go:build bench

package pipeline

import (
	"fmt"
	"strings"
	"testing"
)

// BenchmarkNormalize benchmarks the full pipeline on representative inputs.
func BenchmarkNormalize(b *testing.B) {
	p := New(DefaultOptions())

	inputs := []struct {
		name    string
		content string
	}{
		{"minimal", "# Hello\n\nWorld"},
		{"mixed", mixedDocument},
		{"inline_math", strings.Repeat("Let \\(x_i\\) and $y$ be given. ", 50)},
		{"tables", generateCommaRows(200, 4)},
		{"shorthand", strings.Repeat("∫0∞ e^x dx + √(a+b)\n", 100)},
		{"currency", strings.Repeat("Prices are $5, $10 and $15.\n", 200)},
	}

	for _, input := range inputs {
		b.Run(input.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = p.Normalize(input.content)
			}
		})
	}
}

// BenchmarkNormalizeBySize benchmarks scaling with document size.
// Runtime should grow linearly.
func BenchmarkNormalizeBySize(b *testing.B) {
	p := New(DefaultOptions())

	for _, n := range []int{1, 10, 100, 1000} {
		content := strings.Repeat(mixedDocument+"\n\n", n)
		b.Run(fmt.Sprintf("copies_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(content)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = p.Normalize(content)
			}
		})
	}
}

// BenchmarkUnclosedDelimiters benchmarks lines full of openers without
// closers, the worst case for span matching.
func BenchmarkUnclosedDelimiters(b *testing.B) {
	p := New(DefaultOptions())

	for _, n := range []int{100, 1000, 10000} {
		line := strings.Repeat("$ \\( \\[ ", n)
		b.Run(fmt.Sprintf("openers_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = p.Normalize(line)
			}
		})
	}
}

func generateCommaRows(rows, cols int) string {
	var sb strings.Builder
	for r := 0; r < rows; r++ {
		cells := make([]string, cols)
		for c := range cells {
			cells[c] = fmt.Sprintf("cell %d-%d", r, c)
		}
		sb.WriteString(strings.Join(cells, ", "))
		sb.WriteString("\n")
	}
	return sb.String()
}
