package pipeline

// Stage is one text-to-text step of the normalization pipeline.
type Stage interface {
	Apply(doc string) string
}

// Compile-time interface implementation checks.
var (
	_ Stage = (*Preprocessor)(nil)
	_ Stage = (*Canonicalizer)(nil)
	_ Stage = (*Expander)(nil)
	_ Stage = (*TableSynthesizer)(nil)
)

// Options selects optional pipeline behavior.
type Options struct {
	Shorthand   bool   // expand ∫ab, √x, vtAB, gABC
	Tables      bool   // synthesize GFM tables from comma runs
	UnicodeNFC  bool   // NFC-normalize input first
	AlignTables bool   // pad table cells to equal display width
	Separator   string // alignment marker, DefaultSeparator if empty
}

// DefaultOptions enables every stage with unaligned tables.
func DefaultOptions() Options {
	return Options{
		Shorthand: true,
		Tables:    true,
		Separator: DefaultSeparator,
	}
}

// Pipeline runs its stages in a fixed order:
// preprocess, canonicalize delimiters, expand shorthand, synthesize tables.
// A Pipeline holds no mutable state and is safe for concurrent use.
type Pipeline struct {
	stages []Stage
}

// New builds a Pipeline for the given options.
func New(opts Options) *Pipeline {
	stages := []Stage{
		&Preprocessor{UnicodeNFC: opts.UnicodeNFC},
		&Canonicalizer{},
	}
	if opts.Shorthand {
		stages = append(stages, &Expander{})
	}
	if opts.Tables {
		stages = append(stages, &TableSynthesizer{Separator: opts.Separator, Align: opts.AlignTables})
	}
	return &Pipeline{stages: stages}
}

// Normalize returns the canonical form of doc.
// Normalize(Normalize(doc)) == Normalize(doc).
//
// Stages work on \n line endings. A document no stage changes comes back
// byte for byte, mixed endings included; otherwise the output uses the
// first line ending found in doc.
func (p *Pipeline) Normalize(doc string) string {
	lf := normalizeLineEndings(doc)
	out := lf
	for _, s := range p.stages {
		out = s.Apply(out)
	}
	if out == lf {
		return doc
	}
	return restoreLineEndings(out, lineEnding(doc))
}
