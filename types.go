package mathmd

import (
	"fmt"
	"regexp"

	"github.com/alnah/go-mathmd/internal/pipeline"
)

// DefaultSeparator is the alignment marker written under each table header cell.
const DefaultSeparator = pipeline.DefaultSeparator

// separatorPattern accepts GFM delimiter cells: ---, :---, ---:, :---:.
var separatorPattern = regexp.MustCompile(`^:?-{3,}:?$`)

// ValidateSeparator checks that sep is a valid GFM alignment marker.
func ValidateSeparator(sep string) error {
	if !separatorPattern.MatchString(sep) {
		return fmt.Errorf("%w: %q (expected e.g. %q or %q)", ErrInvalidSeparator, sep, "---", DefaultSeparator)
	}
	return nil
}

// Option configures a Normalizer.
type Option func(*normalizerConfig)

// normalizerConfig holds the settings a Normalizer is built from.
type normalizerConfig struct {
	shorthand   bool
	tables      bool
	unicodeNFC  bool
	alignTables bool
	separator   string
}

func defaultConfig() normalizerConfig {
	return normalizerConfig{
		shorthand: true,
		tables:    true,
		separator: DefaultSeparator,
	}
}

// WithShorthand enables or disables shorthand expansion (∫ab, √x, vtAB, gABC).
// Enabled by default.
func WithShorthand(enabled bool) Option {
	return func(c *normalizerConfig) {
		c.shorthand = enabled
	}
}

// WithTables enables or disables table synthesis. Enabled by default.
func WithTables(enabled bool) Option {
	return func(c *normalizerConfig) {
		c.tables = enabled
	}
}

// WithUnicodeNFC composes the input to Unicode NFC before any other stage.
func WithUnicodeNFC(enabled bool) Option {
	return func(c *normalizerConfig) {
		c.unicodeNFC = enabled
	}
}

// WithAlignedTables pads synthesized table cells so pipes line up in a
// monospace editor. Widths are display widths, so CJK and symbols count right.
func WithAlignedTables(enabled bool) Option {
	return func(c *normalizerConfig) {
		c.alignTables = enabled
	}
}

// WithSeparator sets the alignment marker written under each header cell.
// Panics if sep is not a valid marker (programmer error, see ValidateSeparator).
func WithSeparator(sep string) Option {
	if err := ValidateSeparator(sep); err != nil {
		panic("mathmd: WithSeparator: " + err.Error())
	}
	return func(c *normalizerConfig) {
		c.separator = sep
	}
}

// Report describes a document as Check sees it.
type Report struct {
	// Canonical is true when normalizing the document would not change it.
	Canonical bool

	// Normalized is the canonical form of the document.
	Normalized string

	// InlineSpans and BlockSpans count math spans in the canonical form.
	InlineSpans int
	BlockSpans  int

	// Tables lists the GFM tables a renderer will find in the canonical form.
	Tables []TableSummary
}

// TableSummary is the shape of one GFM table.
type TableSummary struct {
	Columns int
	Rows    int // data rows, header excluded
}
