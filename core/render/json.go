// JSON renderer.
// Writes the record list as an indented JSON array of {word, translation}.

package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/dictexport/core"
)

// JSONRenderer produces the structured-record export.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals records with two-space indentation. Markup characters in
// words stay literal instead of becoming \u003c escapes.
func (r *JSONRenderer) Render(records []core.Record) ([]byte, error) {
	if records == nil {
		records = []core.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
