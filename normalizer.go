package mathmd

import (
	"github.com/alnah/go-mathmd/internal/pipeline"
)

// Normalizer runs the normalization pipeline with a fixed configuration.
// Create with NewNormalizer. A Normalizer is safe for concurrent use.
type Normalizer struct {
	pipeline  *pipeline.Pipeline
	inspector pipeline.Inspector
}

// defaultNormalizer backs the package-level Normalize.
var defaultNormalizer = NewNormalizer()

// Normalize returns the canonical form of doc using the default settings.
func Normalize(doc string) string {
	return defaultNormalizer.Normalize(doc)
}

// NewNormalizer creates a Normalizer. Without options every stage is enabled
// and tables are written unaligned with DefaultSeparator.
func NewNormalizer(opts ...Option) *Normalizer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Normalizer{
		pipeline: pipeline.New(pipeline.Options{
			Shorthand:   cfg.shorthand,
			Tables:      cfg.tables,
			UnicodeNFC:  cfg.unicodeNFC,
			AlignTables: cfg.alignTables,
			Separator:   cfg.separator,
		}),
		inspector: pipeline.NewGoldmarkInspector(),
	}
}

// Normalize returns the canonical form of doc.
// Recovers from internal panics by returning doc unchanged, so no input is lost.
func (n *Normalizer) Normalize(doc string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = doc
		}
	}()

	return n.pipeline.Normalize(doc)
}

// Check normalizes doc and reports whether it was already canonical, along
// with the math spans and tables found in the canonical form.
func (n *Normalizer) Check(doc string) Report {
	normalized := n.Normalize(doc)
	inspection := n.inspect(normalized)

	tables := make([]TableSummary, len(inspection.Tables))
	for i, t := range inspection.Tables {
		tables[i] = TableSummary(t)
	}

	return Report{
		Canonical:   normalized == doc,
		Normalized:  normalized,
		InlineSpans: inspection.InlineMath,
		BlockSpans:  inspection.BlockMath,
		Tables:      tables,
	}
}

// inspect guards the goldmark walk the same way Normalize guards the pipeline.
func (n *Normalizer) inspect(doc string) (res pipeline.Inspection) {
	defer func() {
		if r := recover(); r != nil {
			res = pipeline.Inspection{}
		}
	}()

	return n.inspector.Inspect(doc)
}
