// Package normalize converts dictionary records into Markdown.
// Records are laid out as an HTML list first and handed to html-to-markdown,
// which takes care of escaping Markdown syntax inside words.
package normalize

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/dictexport/core"
)

// MarkdownNormalizer converts records to Markdown using html-to-markdown.
type MarkdownNormalizer struct{}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// Normalize renders one bullet per record: the word in bold, then its translation.
func (n *MarkdownNormalizer) Normalize(records []core.Record) (string, error) {
	var b strings.Builder
	b.WriteString("<h1>Dictionary</h1><ul>")
	for _, r := range records {
		b.WriteString("<li><strong>")
		b.WriteString(html.EscapeString(r.Word))
		b.WriteString("</strong>")
		if r.Translation != "" {
			b.WriteString(": ")
			b.WriteString(html.EscapeString(r.Translation))
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")

	markdown, err := htmltomarkdown.ConvertString(b.String())
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}
