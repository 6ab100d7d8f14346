package pipeline

import "strings"

// SplitColumns splits a line into comma-separated column tokens.
//
// A comma separates columns only outside double quotes, outside $ math and
// when no (, [ or { is open. A $ starts math only if it closes later on the
// line and is not a currency sign; any other $ is a plain character. Quote
// characters delimit cells and are dropped; \" and \, outside math stand
// for a literal quote and comma. Closing brackets never push a depth below
// zero. Tokens are trimmed.
func SplitColumns(line string) []string {
	var (
		tokens  []string
		cur     strings.Builder
		inQuote bool
		depth   [3]int // parens, brackets, braces
	)

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line):
			next := line[i+1]
			if next == '"' || next == ',' {
				cur.WriteByte(next)
			} else {
				cur.WriteByte(c)
				cur.WriteByte(next)
			}
			i++

		case c == '"':
			inQuote = !inQuote

		case inQuote:
			cur.WriteByte(c)

		case c == '$':
			if _, next, found := dollarSpan(line, i); found {
				cur.WriteString(line[i:next])
				i = next - 1
				continue
			}
			cur.WriteByte(c)

		case c == ',' && depth == [3]int{}:
			tokens = append(tokens, strings.TrimSpace(cur.String()))
			cur.Reset()

		default:
			if k := strings.IndexByte("([{", c); k >= 0 {
				depth[k]++
			} else if k := strings.IndexByte(")]}", c); k >= 0 && depth[k] > 0 {
				depth[k]--
			}
			cur.WriteByte(c)
		}
	}

	return append(tokens, strings.TrimSpace(cur.String()))
}
