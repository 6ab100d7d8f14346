package pipeline

import (
	"regexp"
	"strings"
)

// lineKind tells the stages which lines they may rewrite.
type lineKind int

const (
	kindText      lineKind = iota // ordinary Markdown text
	kindFence                     // ``` or ~~~ delimiter line
	kindCode                      // inside a fenced code block
	kindMathFence                 // lone $$ line that opens or closes a block
	kindMath                      // inside a $$ block
)

// blockDelimiter is the canonical block math delimiter line.
const blockDelimiter = "$$"

var (
	// Fenced code block delimiter (backticks or tildes), up to 3 spaces of indent
	fencedCodeBlock = regexp.MustCompile("^ {0,3}(```+|~~~+)")

	// Header pattern (ATX style)
	headerPattern = regexp.MustCompile(`^#{1,6}(\s|$)`)

	// Blockquote pattern
	blockquotePattern = regexp.MustCompile(`^>`)

	// List item patterns (unordered and ordered)
	unorderedListPattern = regexp.MustCompile(`^[-*+]\s`)
	orderedListPattern   = regexp.MustCompile(`^[0-9]+[.)]\s`)
)

// classifyLines marks code fences, code lines and paired $$ blocks.
// A $$ line without a partner (or separated from it by a code fence)
// stays kindText so it is emitted literally.
func classifyLines(lines []string) []lineKind {
	kinds := make([]lineKind, len(lines))

	inCode := false
	var marker string
	for i, line := range lines {
		if m := fencedCodeBlock.FindStringSubmatch(line); m != nil {
			switch {
			case !inCode:
				inCode = true
				marker = m[1]
				kinds[i] = kindFence
				continue
			case sameFence(marker, m[1]) && isClosingFence(line):
				inCode = false
				kinds[i] = kindFence
				continue
			}
		}
		if inCode {
			kinds[i] = kindCode
		}
	}

	open := -1
	for i, line := range lines {
		if kinds[i] != kindText {
			open = -1
			continue
		}
		if !isLoneBlockDelimiter(line) {
			continue
		}
		if open < 0 {
			open = i
			continue
		}
		kinds[open] = kindMathFence
		kinds[i] = kindMathFence
		for j := open + 1; j < i; j++ {
			kinds[j] = kindMath
		}
		open = -1
	}

	return kinds
}

// sameFence reports whether closing can close a fence opened with opening:
// same character, at least as long.
func sameFence(opening, closing string) bool {
	return closing[0] == opening[0] && len(closing) >= len(opening)
}

// isClosingFence reports whether a fence line carries no info string.
func isClosingFence(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.Trim(trimmed, string(trimmed[0])) == ""
}

// isLoneBlockDelimiter reports whether the line holds only "$$".
func isLoneBlockDelimiter(line string) bool {
	return strings.TrimSpace(line) == blockDelimiter
}

// isMarkdownStructure reports whether a trimmed line is a heading,
// blockquote or list item.
func isMarkdownStructure(trimmed string) bool {
	return headerPattern.MatchString(trimmed) ||
		blockquotePattern.MatchString(trimmed) ||
		unorderedListPattern.MatchString(trimmed) ||
		orderedListPattern.MatchString(trimmed)
}

// isBlankLine returns true if the line is empty or contains only whitespace.
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}
