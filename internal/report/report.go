// Package report produces the exercise progress report as a CSV artifact.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Row is one line of the progress report.
type Row struct {
	Exercise string
	Value    string
}

// Writer persists progress rows in delimited tabular form at a fixed path.
type Writer struct {
	path string
}

// NewWriter creates a writer targeting path. The parent directory is
// created on first write.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the artifact location.
func (w *Writer) Path() string {
	return w.path
}

// Write persists the rows as CSV with a header, returning the output
// path and the number of data records written.
func (w *Writer) Write(rows []Row) (string, int, error) {
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", 0, fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(w.path)
	if err != nil {
		return "", 0, fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"Exercise", "Value"}); err != nil {
		return "", 0, fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Exercise, r.Value}); err != nil {
			return "", 0, fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", 0, fmt.Errorf("flush report: %w", err)
	}

	return w.path, len(rows), nil
}
