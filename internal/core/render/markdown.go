package render

import (
	"encoding/json"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// renderMarkdown converts markdown source to HTML. A fresh parser is
// built per call: gomarkdown parsers carry state and cannot be reused.
func renderMarkdown(source string) string {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(source))

	opts := html.RendererOptions{Flags: html.CommonFlags}
	renderer := html.NewRenderer(opts)
	return string(markdown.Render(doc, renderer))
}

// formatJSON pretty-prints raw JSON, or returns the input unchanged
// when it does not parse.
func formatJSON(raw []byte) string {
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return string(raw)
	}
	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(out)
}

// isJSONLike reports whether text looks like a JSON document, used to
// decide whether tool output gets syntax highlighting.
func isJSONLike(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	first := trimmed[0]
	if first != '{' && first != '[' {
		return false
	}
	return json.Valid([]byte(trimmed))
}
