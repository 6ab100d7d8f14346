// Package mathmd normalizes Markdown pasted from AI chat interfaces so that
// math and tabular data render correctly in a Markdown+KaTeX viewer.
//
// # Quick Start
//
// Normalize a document with the default settings:
//
//	canonical := mathmd.Normalize(pasted)
//
// Normalization is pure and idempotent: Normalize(Normalize(doc)) equals
// Normalize(doc), and nothing outside the recognized patterns is changed.
//
// # Normalization Pipeline
//
// Every document goes through the same ordered stages:
//
//  1. Preprocessing (line endings to LF, optional Unicode NFC)
//  2. Delimiter canonicalization: \[ \] becomes a $$ block, \( \) becomes
//     "$ x $", inline spans are padded, adjacent spans are split apart
//  3. Shorthand expansion: ∫ab, √x, vtAB and gABC become LaTeX and the line
//     is wrapped as "$$ ... $$"
//  4. Table synthesis: runs of comma-separated lines become GFM pipe tables
//
// Fenced code, inline code and $$ blocks are never rewritten.
//
// # Configuration
//
// Use functional options to customize a Normalizer:
//
//	n := mathmd.NewNormalizer(
//	    mathmd.WithShorthand(false),
//	    mathmd.WithAlignedTables(true),
//	    mathmd.WithSeparator("---"),
//	)
//	out := n.Normalize(doc)
//
// A Normalizer is immutable and safe for concurrent use.
//
// # Checking Documents
//
// Check reports whether a document is already canonical, and what a GFM
// renderer will find in its canonical form:
//
//	report := n.Check(doc)
//	if !report.Canonical {
//	    fmt.Println("needs normalization")
//	}
//
// # Parallel Processing
//
// Normalization is CPU-bound. ResolveWorkers picks a worker count for batch
// jobs from GOMAXPROCS when none is given.
package mathmd
