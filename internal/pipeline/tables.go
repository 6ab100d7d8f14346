package pipeline

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultSeparator is the alignment marker written under each header cell.
const DefaultSeparator = ":---"

// columnTolerance is how far a row's token count may drift from the baseline.
const columnTolerance = 1

var (
	// LaTeX control word such as \frac or \int
	latexCommand = regexp.MustCompile(`\\[A-Za-z]+`)

	// Cell made only of numbers, operators and grouping
	equationCell = regexp.MustCompile(`^[0-9\s.+\-*/^=<>≤≥≠±×÷()]+$`)
)

// Line is one newline-delimited unit of a document.
type Line struct {
	Raw     string
	Trimmed string
	Tokens  []string // set once the line is tokenized
}

func newLine(raw string) Line {
	return Line{Raw: raw, Trimmed: strings.TrimSpace(raw)}
}

// tableBuffer accumulates candidate rows whose token counts stay within
// columnTolerance of the first row's.
type tableBuffer struct {
	rows     []Line
	baseline int
}

func (t *tableBuffer) empty() bool {
	return len(t.rows) == 0
}

func (t *tableBuffer) open(l Line) {
	t.rows = append(t.rows[:0], l)
	t.baseline = len(l.Tokens)
}

func (t *tableBuffer) accepts(n int) bool {
	d := n - t.baseline
	return d >= -columnTolerance && d <= columnTolerance
}

// add appends a row, dropping a single empty token left by a trailing comma.
func (t *tableBuffer) add(l Line) {
	if n := len(l.Tokens); n == t.baseline+1 && l.Tokens[n-1] == "" {
		l.Tokens = l.Tokens[:n-1]
	}
	t.rows = append(t.rows, l)
}

func (t *tableBuffer) reset() {
	t.rows = t.rows[:0]
	t.baseline = 0
}

// isTable reports whether the buffered run should become a table.
func (t *tableBuffer) isTable() bool {
	shaped := (len(t.rows) >= 2 && t.baseline >= 2) || (len(t.rows) == 1 && t.baseline >= 3)
	if !shaped {
		return false
	}
	if len(t.rows) == 1 && isSentence(t.rows[0]) {
		return false
	}
	return !t.mathHeavy()
}

// mathHeavy reports whether most buffered rows read as equations.
func (t *tableBuffer) mathHeavy() bool {
	n := 0
	for _, row := range t.rows {
		if isEquationRow(row.Tokens) {
			n++
		}
	}
	return 2*n > len(t.rows)
}

// cells returns every row with exactly baseline cells: short rows are padded
// with empty cells, overflow is merged into the last cell.
func (t *tableBuffer) cells() [][]string {
	out := make([][]string, len(t.rows))
	for i, row := range t.rows {
		tokens := row.Tokens
		switch {
		case len(tokens) < t.baseline:
			padded := make([]string, t.baseline)
			copy(padded, tokens)
			tokens = padded
		case len(tokens) > t.baseline:
			merged := make([]string, 0, t.baseline)
			merged = append(merged, tokens[:t.baseline-1]...)
			tokens = append(merged, strings.Join(tokens[t.baseline-1:], ", "))
		}
		out[i] = tokens
	}
	return out
}

// isEquationRow reports whether every cell is arithmetic and at least one
// holds an operator.
func isEquationRow(tokens []string) bool {
	hasOperator := false
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if !equationCell.MatchString(tok) {
			return false
		}
		if strings.ContainsAny(tok, "=<>≤≥≠+*/^×÷") {
			hasOperator = true
		}
	}
	return hasOperator
}

// isSentence reports whether a lone candidate row is prose punctuation-wise.
func isSentence(l Line) bool {
	last := l.Tokens[len(l.Tokens)-1]
	return strings.HasSuffix(last, ".") || strings.HasSuffix(last, "!") || strings.HasSuffix(last, "?")
}

// looksLikeMath reports whether a trimmed line is delimited math or carries
// a LaTeX command.
func looksLikeMath(trimmed string) bool {
	return strings.HasPrefix(trimmed, "$") ||
		strings.HasSuffix(trimmed, "$") ||
		latexCommand.MatchString(trimmed)
}

// passesThrough reports whether a text line must never join a table.
func passesThrough(trimmed string) bool {
	return trimmed == "" ||
		strings.HasPrefix(trimmed, "|") ||
		looksLikeMath(trimmed) ||
		isMarkdownStructure(trimmed)
}

// TableSynthesizer converts runs of comma-separated lines into GFM tables.
type TableSynthesizer struct {
	// Separator is the alignment marker per column (DefaultSeparator if empty).
	Separator string

	// Align pads cells so the pipes line up in a monospace editor.
	Align bool
}

// Apply implements Stage.
func (s *TableSynthesizer) Apply(doc string) string {
	lines := strings.Split(doc, "\n")
	kinds := classifyLines(lines)

	sep := s.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	e := &tableEmitter{out: make([]string, 0, len(lines)), separator: sep, align: s.Align}

	var buf tableBuffer
	for i, raw := range lines {
		line := newLine(raw)
		if kinds[i] != kindText || passesThrough(line.Trimmed) {
			e.flush(&buf)
			e.emit(raw)
			continue
		}

		line.Tokens = SplitColumns(raw)
		switch {
		case len(line.Tokens) < 2:
			e.flush(&buf)
			e.emit(raw)
		case buf.empty():
			buf.open(line)
		case buf.accepts(len(line.Tokens)):
			buf.add(line)
		default:
			e.flush(&buf)
			buf.open(line)
		}
	}
	e.flush(&buf)

	return strings.Join(e.finish(), "\n")
}

// SynthesizeTables runs a TableSynthesizer with default settings.
func SynthesizeTables(doc string) string {
	return (&TableSynthesizer{}).Apply(doc)
}

// tableEmitter collects output lines and keeps one blank line after tables.
type tableEmitter struct {
	out          []string
	separator    string
	align        bool
	blankPending bool
}

func (e *tableEmitter) emit(line string) {
	if e.blankPending {
		e.blankPending = false
		if !isBlankLine(line) {
			e.out = append(e.out, "")
		}
	}
	e.out = append(e.out, line)
}

// flush writes the buffered run as a table or, failing the checks, verbatim.
func (e *tableEmitter) flush(buf *tableBuffer) {
	if buf.empty() {
		return
	}
	defer buf.reset()

	if !buf.isTable() {
		for _, row := range buf.rows {
			e.emit(row.Raw)
		}
		return
	}
	for _, row := range formatTable(buf.cells(), e.separator, e.align) {
		e.emit(row)
	}
	e.blankPending = true
}

func (e *tableEmitter) finish() []string {
	if e.blankPending {
		e.out = append(e.out, "")
		e.blankPending = false
	}
	return e.out
}

// formatTable renders rows as a GFM pipe table; the first row is the header.
func formatTable(rows [][]string, separator string, align bool) []string {
	cols := len(rows[0])
	for _, row := range rows {
		for j := range row {
			row[j] = escapePipes(row[j])
		}
	}

	widths := make([]int, cols)
	if align {
		for j := range widths {
			widths[j] = runewidth.StringWidth(separator)
		}
		for _, row := range rows {
			for j, cell := range row {
				widths[j] = max(widths[j], runewidth.StringWidth(cell))
			}
		}
	}

	seps := make([]string, cols)
	for j := range seps {
		seps[j] = separator + strings.Repeat("-", max(widths[j]-runewidth.StringWidth(separator), 0))
	}

	out := make([]string, 0, len(rows)+1)
	out = append(out, formatRow(rows[0], widths))
	out = append(out, formatRow(seps, widths))
	for _, row := range rows[1:] {
		out = append(out, formatRow(row, widths))
	}
	return out
}

func formatRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for j, cell := range cells {
		padded[j] = runewidth.FillRight(cell, widths[j])
	}
	return "| " + strings.Join(padded, " | ") + " |"
}

// escapePipes escapes | characters that are not already escaped.
func escapePipes(cell string) string {
	if !strings.Contains(cell, "|") {
		return cell
	}
	var b strings.Builder
	for i := 0; i < len(cell); i++ {
		if cell[i] == '|' && (i == 0 || cell[i-1] != '\\') {
			b.WriteByte('\\')
		}
		b.WriteByte(cell[i])
	}
	return b.String()
}
