package output

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/dictexport/core"
	"github.com/gaurav-prasanna/dictexport/logging"
)

// Scope selects the file name convention.
type Scope int

const (
	// CurrentPage exports only the loaded page.
	CurrentPage Scope = iota
	// AllPages exports every page from the current one to the last.
	AllPages
)

// FileName returns the export file name for a scope and extension.
func FileName(scope Scope, ext string) string {
	if scope == AllPages {
		return "dictionary_all" + ext
	}
	return "dictionary" + ext
}

// Exporter renders records and hands them to a sink.
type Exporter struct {
	sink   core.FileSink
	logger zerolog.Logger
}

// NewExporter creates an Exporter writing to sink.
func NewExporter(sink core.FileSink) *Exporter {
	return &Exporter{sink: sink, logger: logging.NewLogger("export")}
}

// Export refuses empty input; otherwise it renders records and saves them
// under the scope's file name, returning the written path.
func (e *Exporter) Export(records []core.Record, renderer core.Renderer, scope Scope) (string, error) {
	if len(records) == 0 {
		where := "on this page"
		if scope == AllPages {
			where = "on any page"
		}
		return "", fmt.Errorf("%w %s", core.ErrNoRecords, where)
	}

	data, err := renderer.Render(records)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	path, err := e.sink.Save(FileName(scope, renderer.Extension()), data)
	if err != nil {
		return "", err
	}
	e.logger.Info().
		Int("records", len(records)).
		Str("path", path).
		Msg("Export written")
	return path, nil
}
