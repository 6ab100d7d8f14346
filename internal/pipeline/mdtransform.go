package pipeline

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)
)

// Preprocessor prepares raw input before the delimiter stage.
// Stages only ever see \n line endings; Pipeline.Normalize restores the
// document's own ending afterwards.
type Preprocessor struct {
	// UnicodeNFC composes characters (e.g. "e" + U+0301) before matching.
	UnicodeNFC bool
}

// Apply normalizes line endings and, if enabled, applies NFC.
func (p *Preprocessor) Apply(doc string) string {
	if strings.IndexByte(doc, '\r') >= 0 {
		doc = normalizeLineEndings(doc)
	}
	if p.UnicodeNFC {
		doc = norm.NFC.String(doc)
	}
	return doc
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// lineEnding returns the first line ending used in doc, "\n" if there is none.
func lineEnding(doc string) string {
	i := strings.IndexByte(doc, '\r')
	switch {
	case i < 0:
		return "\n"
	case i+1 < len(doc) && doc[i+1] == '\n':
		return "\r\n"
	default:
		return "\r"
	}
}

// restoreLineEndings rewrites the \n endings of content to eol.
func restoreLineEndings(content, eol string) string {
	if eol == "\n" {
		return content
	}
	return strings.ReplaceAll(content, "\n", eol)
}
