package pipeline

import "strings"

// SpanKind tags a math span as inline or block.
type SpanKind int

const (
	SpanInline SpanKind = iota
	SpanBlock
)

// String returns "inline" or "block".
func (k SpanKind) String() string {
	if k == SpanBlock {
		return "block"
	}
	return "inline"
}

// MathSpan is one delimited piece of math found in a document.
type MathSpan struct {
	Kind    SpanKind
	Content string
	Line    int // zero-based line where the span starts
}

// ExtractMathSpans lists the math spans of a document in order:
// $$ blocks on their own lines, one-line $$ ... $$ spans and inline $ spans.
// Spans inside code are ignored. The document is not modified.
func ExtractMathSpans(doc string) []MathSpan {
	lines := strings.Split(normalizeLineEndings(doc), "\n")
	kinds := classifyLines(lines)

	var spans []MathSpan
	blockStart := -1
	for i, line := range lines {
		switch kinds[i] {
		case kindMathFence:
			if blockStart < 0 {
				blockStart = i
				continue
			}
			spans = append(spans, MathSpan{
				Kind:    SpanBlock,
				Content: strings.Join(lines[blockStart+1:i], "\n"),
				Line:    blockStart,
			})
			blockStart = -1
		case kindText:
			lineNo := i
			rewriteInline(line, func(kind SpanKind, content string) {
				spans = append(spans, MathSpan{Kind: kind, Content: content, Line: lineNo})
			})
		}
	}
	return spans
}
