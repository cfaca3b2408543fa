package plan

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer persists plans as text files at a fixed path.
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

// Write renders and persists the plan, returning the output path.
func (w *Writer) Write(p Plan) (string, error) {
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := os.WriteFile(w.path, []byte(p.Render()), 0o644); err != nil {
		return "", fmt.Errorf("write plan: %w", err)
	}
	return w.path, nil
}
