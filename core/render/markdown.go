// Package render provides output renderers for dictionary exports.
// This file implements the Markdown renderer on top of the normalizer.
package render

import (
	"github.com/gaurav-prasanna/dictexport/core"
	"github.com/gaurav-prasanna/dictexport/core/normalize"
)

// MarkdownRenderer writes records as a bulleted Markdown list.
type MarkdownRenderer struct {
	normalizer *normalize.MarkdownNormalizer
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{normalizer: normalize.New()}
}

// Render converts records to Markdown.
func (r *MarkdownRenderer) Render(records []core.Record) ([]byte, error) {
	md, err := r.normalizer.Normalize(records)
	if err != nil {
		return nil, err
	}
	return []byte(md + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
