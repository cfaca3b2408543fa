package plan

import (
	"context"
	"fmt"
	"strings"

	"github.com/gymbro-ai/gymbro/internal/facts"
	"github.com/gymbro-ai/gymbro/internal/tools"
)

// ToolName is the registry name for the workout plan tool.
const ToolName = "generate_workout_plan"

// Tool returns the generate_workout_plan tool definition backed by the
// given writer.
func Tool(w *Writer) *tools.Tool {
	return &tools.Tool{
		Name:        ToolName,
		Description: "Generate a personalized 3-day workout plan based on the user's fitness level and goals. Use the level and goals discussed in the conversation.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"fitness_level": map[string]any{
					"type":        "string",
					"enum":        []string{facts.LevelBeginner, facts.LevelIntermediate, facts.LevelAdvanced},
					"description": "The user's fitness level as discussed in conversation",
				},
				"fitness_goals": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "The user's fitness goals (e.g., \"build muscle\", \"lose weight\")",
				},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			level := stringArg(args, "fitness_level")
			if level == "" {
				level = facts.DefaultLevel
			}
			goals := goalsArg(args, "fitness_goals")
			if goals == "" {
				goals = facts.DefaultGoals
			}

			path, err := w.Write(Build(level, goals))
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Workout plan generated successfully and saved to %s", path), nil
		},
	}
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return strings.TrimSpace(s)
}

// goalsArg flattens the fitness_goals argument, which models send either
// as an array of strings or as a single comma-separated string.
func goalsArg(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case []string:
		return strings.Join(v, ", ")
	case []any:
		var parts []string
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}
