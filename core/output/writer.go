// Package output handles file naming and writing for dictionary exports.
// Current-page exports are saved as dictionary.<ext>, all-pages exports as
// dictionary_all.<ext>.
package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer writes finished exports to disk. It implements core.FileSink.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Save writes data to name inside the output directory. The file is first
// written under a temporary name so a failed write never leaves a partial export.
func (w *Writer) Save(name string, data []byte) (string, error) {
	path := filepath.Join(w.OutputDir, filepath.Base(name))

	tmp, err := os.CreateTemp(w.OutputDir, "."+filepath.Base(name)+".*")
	if err != nil {
		return "", fmt.Errorf("creating file %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}
