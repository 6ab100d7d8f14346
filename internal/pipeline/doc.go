// Package pipeline implements the document normalization pipeline.
//
// The pipeline turns pasted chat-assistant output into canonical Markdown+LaTeX:
//   - Preprocessing (line endings, optional Unicode NFC)
//   - Delimiter canonicalization (\[ \] and \( \) to $$ and $, span spacing)
//   - Shorthand expansion (∫ab, √x, vtAB, gABC to LaTeX macros)
//   - Table synthesis (comma-separated runs to GFM pipe tables)
//
// Every stage is a pure function of its input string. Stages skip fenced code
// blocks and block math, so each can be run on its own output without change.
//
// Rendering is not done here. Inspect parses a canonical document with
// Goldmark only to report what a downstream renderer will see.
package pipeline
