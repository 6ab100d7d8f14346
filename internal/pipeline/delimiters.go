package pipeline

import (
	"strings"
)

// Canonicalizer rewrites LaTeX-style math delimiters into the canonical
// $ ... $ and $$ ... $$ forms.
type Canonicalizer struct{}

// Apply implements Stage.
func (c *Canonicalizer) Apply(doc string) string {
	return CanonicalizeDelimiters(doc)
}

// CanonicalizeDelimiters converts \[ \] pairs to $$ blocks on their own lines,
// \( \) pairs to inline $ spans, pads inline spans with one space inside each
// delimiter and puts adjacent inline spans in separate paragraphs.
// Unmatched delimiters are left as they are. Code is never touched.
func CanonicalizeDelimiters(doc string) string {
	lines := strings.Split(doc, "\n")
	kinds := classifyLines(lines)

	// Display brackets may span lines, so convert whole runs of non-code lines.
	out := make([]string, 0, len(lines))
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		segment := convertDisplayBrackets(strings.Join(lines[start:end], "\n"))
		out = append(out, strings.Split(segment, "\n")...)
		start = -1
	}
	for i, line := range lines {
		if kinds[i] == kindFence || kinds[i] == kindCode {
			flush(i)
			out = append(out, line)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(lines))

	kinds = classifyLines(out)
	for i, line := range out {
		if kinds[i] == kindText {
			out[i] = rewriteInline(line, nil)
		}
	}
	return strings.Join(out, "\n")
}

// convertDisplayBrackets turns each matched \[ ... \] into a $$ block.
func convertDisplayBrackets(s string) string {
	if !strings.Contains(s, `\[`) {
		return s
	}

	out := make([]byte, 0, len(s)+16)
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '`':
			n := runLength(s, i, '`')
			end := closingBacktickRun(s, i+n, n)
			if end < 0 {
				out = append(out, s[i:i+n]...)
				i += n
				continue
			}
			out = append(out, s[i:end+n]...)
			i = end + n

		case c == '\\' && i+1 < len(s):
			if s[i+1] != '[' {
				out = append(out, s[i], s[i+1])
				i += 2
				continue
			}
			closeAt := indexEscaped(s, i+2, ']', false)
			if closeAt < 0 {
				// No closer after this opener means none after any later one.
				return string(append(out, s[i:]...))
			}
			end := closeAt + 2
			content := strings.TrimSpace(s[i+2 : closeAt])
			prefix := currentLine(out)
			suffix := restOfLine(s, end)
			if !convertibleBlock(content, prefix, suffix) {
				out = append(out, s[i:end]...)
				i = end
				continue
			}

			out = trimRightBlank(out)
			if strings.TrimSpace(prefix) != "" {
				out = append(out, '\n')
			}
			out = append(out, blockDelimiter+"\n"...)
			out = append(out, content...)
			out = append(out, "\n"+blockDelimiter...)
			i = end
			if strings.TrimSpace(suffix) != "" {
				out = append(out, '\n')
				i = skipBlank(s, i)
			}

		default:
			out = append(out, c)
			i++
		}
	}
	return string(out)
}

// convertibleBlock reports whether a \[ \] pair can become a $$ block
// without creating lines that a later pass would read differently.
func convertibleBlock(content, prefix, suffix string) bool {
	if content == "" || strings.ContainsAny(content, "$`") || strings.Contains(content, `\[`) {
		return false
	}
	for _, line := range strings.Split(content, "\n") {
		if !safeOwnLine(line) {
			return false
		}
	}
	return safeOwnLine(prefix) && safeOwnLine(suffix)
}

// safeOwnLine reports whether s can stand on its own line without turning
// into a code fence or a block math delimiter.
func safeOwnLine(s string) bool {
	trimmed := strings.TrimSpace(s)
	return !fencedCodeBlock.MatchString(trimmed) && trimmed != blockDelimiter
}

// rewriteInline canonicalizes the inline math on one text line.
// \( \) spans are converted first, then $ spans are paired over the result,
// so a converted span pairs the same way on every later run.
// If onSpan is non-nil it receives every math span found, in order.
func rewriteInline(line string, onSpan func(SpanKind, string)) string {
	if !strings.ContainsAny(line, `$\`) {
		return line
	}
	return pairDollars(convertParens(line), onSpan)
}

// convertParens rewrites each \( \) span to "$ content $". A span directly
// followed by a digit gets a space after its closer so the closer is not
// read as a currency sign.
func convertParens(line string) string {
	if !strings.Contains(line, `\(`) {
		return line
	}

	var b strings.Builder
	b.Grow(len(line) + 8)

	noParen := false
	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == '`':
			i = copyCodeSpan(&b, line, i)

		case c == '\\' && i+1 < len(line):
			if line[i+1] != '(' || noParen {
				b.WriteString(line[i : i+2])
				i += 2
				continue
			}
			content, next, found := parenSpan(line, i)
			if !found {
				noParen = true
				b.WriteString(line[i : i+2])
				i += 2
				continue
			}
			if !inlineContent(content) {
				b.WriteString(line[i:next])
				i = next
				continue
			}
			writeInlineSpan(&b, content, nil)
			i = next
			if i < len(line) && isDigit(line[i]) {
				b.WriteByte(' ')
			}

		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// pairDollars pads every $ span on the line and splits adjacent spans into
// separate paragraphs. \( \) spans still present are kept as they are.
func pairDollars(line string, onSpan func(SpanKind, string)) string {
	if !strings.Contains(line, "$") {
		return line
	}

	var b strings.Builder
	b.Grow(len(line) + 8)

	// Once a closer search fails, every later search on the line fails too.
	noDollar, noParen, noDisplay := false, false, false

	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == '`':
			i = copyCodeSpan(&b, line, i)

		case c == '\\' && i+1 < len(line):
			if line[i+1] != '(' || noParen {
				b.WriteString(line[i : i+2])
				i += 2
				continue
			}
			_, next, found := parenSpan(line, i)
			if !found {
				noParen = true
				b.WriteString(line[i : i+2])
				i += 2
				continue
			}
			b.WriteString(line[i:next])
			i = next

		case c == '$':
			if strings.HasPrefix(line[i:], blockDelimiter) {
				end := -1
				if !noDisplay {
					end = strings.Index(line[i+2:], blockDelimiter)
				}
				if end < 0 {
					noDisplay = true
					b.WriteString(blockDelimiter)
					i += 2
					continue
				}
				next := i + 2 + end + 2
				if onSpan != nil {
					onSpan(SpanBlock, strings.TrimSpace(line[i+2:i+2+end]))
				}
				b.WriteString(line[i:next])
				i = next
				continue
			}
			if noDollar || currencyAt(line, i) {
				b.WriteByte(c)
				i++
				continue
			}
			content, next, found := dollarSpan(line, i)
			if !found {
				noDollar = true
				b.WriteByte(c)
				i++
				continue
			}
			if !inlineContent(content) {
				b.WriteByte(c)
				i++
				continue
			}
			writeInlineSpan(&b, content, onSpan)
			i = next
			if adjacentSpanAt(line, i) {
				b.WriteString("\n\n")
			}

		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// copyCodeSpan writes the code span starting at the backtick run at i, or
// just the run if it is never closed, and returns the index after it.
func copyCodeSpan(b *strings.Builder, line string, i int) int {
	n := runLength(line, i, '`')
	end := closingBacktickRun(line, i+n, n)
	if end < 0 {
		b.WriteString(line[i : i+n])
		return i + n
	}
	b.WriteString(line[i : end+n])
	return end + n
}

// inlineContent reports whether trimmed span content can become inline math.
// Content holding a $ or a backtick is left literal so code spans keep
// pairing the same way after conversion.
func inlineContent(content string) bool {
	return content != "" && !strings.ContainsAny(content, "$`")
}

// writeInlineSpan writes content as "$ content $".
func writeInlineSpan(b *strings.Builder, content string, onSpan func(SpanKind, string)) {
	if onSpan != nil {
		onSpan(SpanInline, content)
	}
	b.WriteString("$ ")
	b.WriteString(content)
	b.WriteString(" $")
}

// dollarSpan finds the inline span opened by the $ at i.
// A $ closes the span unless it is escaped or is a currency sign.
// Returns the trimmed content and the index after the closing $.
func dollarSpan(line string, i int) (content string, next int, found bool) {
	if currencyAt(line, i) {
		return "", 0, false
	}
	for k := i + 1; k < len(line); k++ {
		switch line[k] {
		case '\\':
			k++
		case '$':
			if currencyAt(line, k) {
				continue
			}
			return strings.TrimSpace(line[i+1 : k]), k + 1, true
		}
	}
	return "", 0, false
}

// currencyAt reports whether the $ at i is directly followed by a digit.
// Such a $ is an amount like $5 and never opens or closes a span.
func currencyAt(line string, i int) bool {
	return i+1 < len(line) && isDigit(line[i+1])
}

// parenSpan finds the \) closing the \( at i.
func parenSpan(line string, i int) (content string, next int, found bool) {
	closeAt := indexEscaped(line, i+2, ')', true)
	if closeAt < 0 {
		return "", 0, false
	}
	return strings.TrimSpace(line[i+2 : closeAt]), closeAt + 2, true
}

// adjacentSpanAt reports whether a complete inline $ span starts exactly at i.
func adjacentSpanAt(line string, i int) bool {
	if i >= len(line) || line[i] != '$' || strings.HasPrefix(line[i:], blockDelimiter) {
		return false
	}
	content, _, found := dollarSpan(line, i)
	return found && inlineContent(content)
}

// indexEscaped returns the index of the backslash in the first unescaped
// "\" + closer at or after from, or -1. With sameLine, the search stops at
// the end of the current line.
func indexEscaped(s string, from int, closer byte, sameLine bool) int {
	for k := from; k < len(s); k++ {
		switch s[k] {
		case '\n':
			if sameLine {
				return -1
			}
		case '\\':
			if k+1 < len(s) && s[k+1] == closer {
				return k
			}
			k++
		}
	}
	return -1
}

// runLength counts consecutive c bytes starting at i.
func runLength(s string, i int, c byte) int {
	n := 0
	for i+n < len(s) && s[i+n] == c {
		n++
	}
	return n
}

// closingBacktickRun finds a run of exactly n backticks on the same line.
func closingBacktickRun(s string, from, n int) int {
	for k := from; k < len(s) && s[k] != '\n'; {
		if s[k] != '`' {
			k++
			continue
		}
		m := runLength(s, k, '`')
		if m == n {
			return k
		}
		k += m
	}
	return -1
}

// currentLine returns the bytes written since the last newline.
func currentLine(out []byte) string {
	for k := len(out) - 1; k >= 0; k-- {
		if out[k] == '\n' {
			return string(out[k+1:])
		}
	}
	return string(out)
}

// restOfLine returns s from i to the next newline.
func restOfLine(s string, i int) string {
	if end := strings.IndexByte(s[i:], '\n'); end >= 0 {
		return s[i : i+end]
	}
	return s[i:]
}

// trimRightBlank drops trailing spaces and tabs.
func trimRightBlank(out []byte) []byte {
	for len(out) > 0 && (out[len(out)-1] == ' ' || out[len(out)-1] == '\t') {
		out = out[:len(out)-1]
	}
	return out
}

// skipBlank advances past spaces and tabs.
func skipBlank(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
