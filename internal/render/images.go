package render

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var imageParser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

// Images returns the destinations of the image references in a markdown
// text, in document order.
func Images(markdown string) []string {
	src := []byte(markdown)
	doc := imageParser.Parse(text.NewReader(src))

	var out []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if img, ok := n.(*ast.Image); ok {
			out = append(out, string(img.Destination))
		}
		return ast.WalkContinue, nil
	})
	return out
}
