package render

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RenderHTML converts rendered markdown into a standalone HTML fragment
// for export or embedding.
func RenderHTML(markdownText string) string {
	if markdownText == "" {
		return ""
	}

	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	mdParser := parser.NewWithExtensions(extensions)

	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: htmlFlags,
	})

	return string(markdown.ToHTML([]byte(markdownText), mdParser, renderer))
}
