package pipeline

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// TableInfo describes one table as a GFM parser sees it.
type TableInfo struct {
	Columns int
	Rows    int // data rows, header excluded
}

// Inspection summarizes what a downstream renderer will find in a document.
type Inspection struct {
	Tables     []TableInfo
	InlineMath int
	BlockMath  int
}

// Inspector abstracts document inspection.
type Inspector interface {
	Inspect(doc string) Inspection
}

var _ Inspector = (*GoldmarkInspector)(nil)

// GoldmarkInspector parses documents with goldmark's GFM table extension.
// Only the parser is used; nothing is rendered.
type GoldmarkInspector struct {
	md goldmark.Markdown
}

// NewGoldmarkInspector creates a GoldmarkInspector.
func NewGoldmarkInspector() *GoldmarkInspector {
	return &GoldmarkInspector{
		md: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Inspect is a convenience wrapper around a fresh GoldmarkInspector.
func Inspect(doc string) Inspection {
	return NewGoldmarkInspector().Inspect(doc)
}

// Inspect counts the GFM tables and math spans of doc.
func (g *GoldmarkInspector) Inspect(doc string) Inspection {
	var res Inspection

	root := g.md.Parser().Parse(text.NewReader([]byte(doc)))
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		table, ok := n.(*extast.Table)
		if !ok {
			return ast.WalkContinue, nil
		}
		info := TableInfo{Columns: len(table.Alignments)}
		for c := table.FirstChild(); c != nil; c = c.NextSibling() {
			if _, ok := c.(*extast.TableRow); ok {
				info.Rows++
			}
		}
		res.Tables = append(res.Tables, info)
		return ast.WalkSkipChildren, nil
	})

	for _, span := range ExtractMathSpans(doc) {
		if span.Kind == SpanBlock {
			res.BlockMath++
		} else {
			res.InlineMath++
		}
	}
	return res
}
