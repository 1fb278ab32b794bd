package render

import (
	"strings"

	"github.com/gaurav-prasanna/dictexport/core"
)

// Separator joins a word and its translation on one line.
const Separator = "="

// TextRenderer produces one word=translation line per record.
// Separators or newlines inside a word or translation are written as-is;
// such lines cannot be split back unambiguously.
type TextRenderer struct{}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render joins the records with newlines, without a trailing newline.
func (r *TextRenderer) Render(records []core.Record) ([]byte, error) {
	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = rec.Word + Separator + rec.Translation
	}
	return []byte(strings.Join(lines, "\n")), nil
}

// Extension returns the file extension for text output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}
