package report

import (
	"context"
	"fmt"

	"github.com/gymbro-ai/gymbro/internal/tools"
	"github.com/gymbro-ai/gymbro/internal/workoutlog"
)

// ToolName is the registry name for the progress report tool.
const ToolName = "generate_progress_report"

// Source supplies the exercise data to report on. Implemented by
// [workoutlog.Store].
type Source interface {
	Latest() ([]workoutlog.Entry, error)
}

// Tool returns the generate_progress_report tool definition reading from
// src and writing through w.
func Tool(src Source, w *Writer) *tools.Tool {
	return &tools.Tool{
		Name:        ToolName,
		Description: "Generate a CSV report with the user's exercise progress data.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			entries, err := src.Latest()
			if err != nil {
				return "", fmt.Errorf("read workout log: %w", err)
			}

			rows := make([]Row, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, Row{Exercise: e.Exercise, Value: e.Value})
			}

			path, n, err := w.Write(rows)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Progress report generated successfully and saved to %s (%d records)", path, n), nil
		},
	}
}
