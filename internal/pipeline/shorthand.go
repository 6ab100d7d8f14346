package pipeline

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// ∫ followed by two one-character bounds, then the integrand, = or end of line
	boundedIntegral = regexp.MustCompile(`∫([\p{L}\p{N}∞])([\p{L}\p{N}∞])(?:\s+|([(=])|$)`)

	// ∫01x: numeric bounds glued to an integrand that starts with a letter
	gluedIntegral = regexp.MustCompile(`∫([\p{N}∞])([\p{N}∞])([\p{L}\\])`)

	// ∫ left over after bounded integrals are expanded
	bareIntegral = regexp.MustCompile(`∫\s*`)

	// vtAB: vector between one or two named points
	vectorShorthand = regexp.MustCompile(`vt([A-Z]{1,2})`)

	// gABC: angle at three named points
	angleShorthand = regexp.MustCompile(`g([A-Z]{3})`)
)

// mathSymbols maps Unicode math characters to LaTeX macros.
var mathSymbols = map[rune]string{
	'∞': `\infty`, 'π': `\pi`, '±': `\pm`, '∓': `\mp`,
	'≤': `\le`, '≥': `\ge`, '≠': `\ne`, '≈': `\approx`,
	'×': `\times`, '÷': `\div`, '·': `\cdot`, '→': `\to`,
	'′': `'`, '″': `''`, '∈': `\in`, '∑': `\sum`,
	'α': `\alpha`, 'β': `\beta`, 'γ': `\gamma`, 'δ': `\delta`,
	'ε': `\varepsilon`, 'θ': `\theta`, 'λ': `\lambda`, 'μ': `\mu`,
	'σ': `\sigma`, 'φ': `\varphi`, 'ω': `\omega`,
	'Δ': `\Delta`, 'Σ': `\Sigma`, 'Ω': `\Omega`,
}

// Expander turns shorthand notation into LaTeX and wraps the touched lines
// as display math.
type Expander struct{}

// Apply implements Stage.
func (e *Expander) Apply(doc string) string {
	return ExpandShorthand(doc)
}

// ExpandShorthand runs ExpandLine on every text line that is not already
// math: lines inside $$ blocks or code, table rows and lines holding a $
// are left alone.
func ExpandShorthand(doc string) string {
	if !containsShorthand(doc) {
		return doc
	}

	lines := strings.Split(doc, "\n")
	kinds := classifyLines(lines)
	for i, line := range lines {
		if kinds[i] != kindText || strings.HasPrefix(strings.TrimSpace(line), "|") {
			continue
		}
		if expanded, ok := ExpandLine(line); ok {
			lines[i] = expanded
		}
	}
	return strings.Join(lines, "\n")
}

// ExpandLine applies the shorthand rules to one line, in order: integrals,
// roots, vectors, angles. If any rule fired, Unicode symbols are turned into
// macros and the trimmed line is returned as "$$ line $$" with ok true.
// A line that already contains $ is returned unchanged.
func ExpandLine(line string) (string, bool) {
	if strings.Contains(line, "$") {
		return line, false
	}

	out, fired := expandIntegrals(line)
	var ok bool
	if out, ok = expandRoots(out); ok {
		fired = true
	}
	if out, ok = replaceBounded(out, vectorShorthand, `\overrightarrow`); ok {
		fired = true
	}
	if out, ok = replaceBounded(out, angleShorthand, `\widehat`); ok {
		fired = true
	}
	if !fired {
		return line, false
	}

	return blockDelimiter + " " + strings.TrimSpace(translateSymbols(out)) + " " + blockDelimiter, true
}

// containsShorthand is a fast pre-check before splitting the document.
func containsShorthand(doc string) bool {
	return strings.ContainsAny(doc, "∫√") ||
		vectorShorthand.MatchString(doc) ||
		angleShorthand.MatchString(doc)
}

// expandIntegrals rewrites ∫ab into \int_{a}^{b} and a bare ∫ into \int.
// Letter bounds glued to more letters (∫sin x) are read as a bare integral.
func expandIntegrals(line string) (string, bool) {
	if !strings.Contains(line, "∫") {
		return line, false
	}
	line = boundedIntegral.ReplaceAllString(line, `\int_{${1}}^{${2}} ${3}`)
	line = gluedIntegral.ReplaceAllString(line, `\int_{${1}}^{${2}} ${3}`)
	line = bareIntegral.ReplaceAllString(line, `\int `)
	return line, true
}

// expandRoots rewrites √x, √(expr) and √{expr} into \sqrt{...}.
// A √ with nothing usable after it, or an unclosed group, is kept.
func expandRoots(line string) (string, bool) {
	if !strings.Contains(line, "√") {
		return line, false
	}

	var b strings.Builder
	fired := false
	rest := line
	for {
		idx := strings.Index(rest, "√")
		if idx < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:idx])
		after := rest[idx+len("√"):]
		radicand, consumed := rootOperand(after)
		if consumed == 0 {
			b.WriteString("√")
			rest = after
			continue
		}
		inner, _ := expandRoots(radicand)
		b.WriteString(`\sqrt{`)
		b.WriteString(inner)
		b.WriteString("}")
		fired = true
		rest = after[consumed:]
	}
	return b.String(), fired
}

// rootOperand reads the radicand following a √: a parenthesized or braced
// group (nesting respected) or a run of letters and digits. It returns the
// radicand and the number of bytes consumed, 0 if there is none.
func rootOperand(s string) (string, int) {
	start := 0
	for start < len(s) && s[start] == ' ' {
		start++
	}
	if start == len(s) {
		return "", 0
	}

	if open := s[start]; open == '(' || open == '{' {
		closer := byte(')')
		if open == '{' {
			closer = '}'
		}
		depth := 0
		for k := start; k < len(s); k++ {
			switch s[k] {
			case open:
				depth++
			case closer:
				depth--
				if depth == 0 {
					inner := strings.TrimSpace(s[start+1 : k])
					if inner == "" {
						return "", 0
					}
					return inner, k + 1
				}
			}
		}
		return "", 0
	}

	end := start
	for end < len(s) {
		r, size := utf8.DecodeRuneInString(s[end:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		end += size
	}
	if end == start {
		return "", 0
	}
	return s[start:end], end
}

// replaceBounded replaces each match of re whose first group is the
// argument with macro{group}, skipping matches glued to surrounding words.
func replaceBounded(line string, re *regexp.Regexp, macro string) (string, bool) {
	matches := re.FindAllStringSubmatchIndex(line, -1)
	if matches == nil {
		return line, false
	}

	var b strings.Builder
	fired := false
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if !wordBoundaryBefore(line, start) || !wordBoundaryAfter(line, end) {
			continue
		}
		b.WriteString(line[last:start])
		b.WriteString(macro)
		b.WriteString("{")
		b.WriteString(line[m[2]:m[3]])
		b.WriteString("}")
		last = end
		fired = true
	}
	b.WriteString(line[last:])
	return b.String(), fired
}

func wordBoundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\\'
}

func wordBoundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !unicode.IsLetter(r)
}

// translateSymbols swaps Unicode math characters for LaTeX macros. A macro
// directly followed by a letter gets a separating space.
func translateSymbols(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		macro, ok := mathSymbols[r]
		if !ok {
			b.WriteRune(r)
			continue
		}
		b.WriteString(macro)
		if strings.HasPrefix(macro, `\`) {
			next, _ := utf8.DecodeRuneInString(s[i+utf8.RuneLen(r):])
			if unicode.IsLetter(next) {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}
