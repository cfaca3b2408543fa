package router

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/gymbro-ai/gymbro/internal/llm"
	"github.com/gymbro-ai/gymbro/internal/tools"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRegistry() *tools.Registry {
	reg := tools.NewRegistry()
	reg.Register(&tools.Tool{
		Name: "generate_workout_plan",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"fitness_level": map[string]any{
					"type": "string",
					"enum": []string{"beginner", "intermediate", "advanced"},
				},
				"fitness_goals": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) { return "plan", nil },
	})
	reg.Register(&tools.Tool{
		Name: "generate_progress_report",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) { return "report", nil },
	})
	return reg
}

func TestHeuristic(t *testing.T) {
	r := New(discard(), testRegistry())

	tests := []struct {
		name     string
		message  string
		wantKind Kind
		wantTool string
	}{
		{name: "workout plan request", message: "Create a workout plan for me", wantKind: KindInvokeTool, wantTool: "generate_workout_plan"},
		{name: "routine request", message: "can you suggest a routine?", wantKind: KindInvokeTool, wantTool: "generate_workout_plan"},
		{name: "training plan request", message: "I need a training plan", wantKind: KindInvokeTool, wantTool: "generate_workout_plan"},
		{name: "progress request", message: "show me my progress", wantKind: KindInvokeTool, wantTool: "generate_progress_report"},
		{name: "csv request", message: "export a csv please", wantKind: KindInvokeTool, wantTool: "generate_progress_report"},
		{name: "tracking request", message: "how do you track my workouts?", wantKind: KindInvokeTool, wantTool: "generate_progress_report"},
		{name: "case insensitive", message: "WORKOUT PLAN NOW", wantKind: KindInvokeTool, wantTool: "generate_workout_plan"},
		{name: "plain chat", message: "what should I eat before the gym?", wantKind: KindChat},
		{name: "facts only", message: "I'm a beginner and want to build muscle", wantKind: KindChat},
		{name: "empty message", message: "", wantKind: KindChat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Heuristic(tt.message)
			if got.Kind != tt.wantKind {
				t.Fatalf("Kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if got.Tool != tt.wantTool {
				t.Errorf("Tool = %q, want %q", got.Tool, tt.wantTool)
			}
		})
	}
}

func TestHeuristicDeterministic(t *testing.T) {
	r := New(discard(), testRegistry())

	msg := "give me a workout plan and a progress report"
	first := r.Heuristic(msg)
	for i := 0; i < 10; i++ {
		again := r.Heuristic(msg)
		if again.Kind != first.Kind || again.Tool != first.Tool {
			t.Fatalf("decision changed between runs: %+v vs %+v", first, again)
		}
	}

	// Both rule sets match; declaration order breaks the tie.
	if first.Tool != "generate_workout_plan" {
		t.Errorf("tie-break should favor the first declared rule, got %q", first.Tool)
	}
}

func TestFromToolCallsValid(t *testing.T) {
	r := New(discard(), testRegistry())

	calls := []llm.ToolCall{{Function: llm.ToolCallFunction{
		Name:      "generate_workout_plan",
		Arguments: map[string]any{"fitness_level": "beginner"},
	}}}

	dec := r.FromToolCalls(calls, "whatever the user said")
	if dec.Kind != KindInvokeTool || dec.Tool != "generate_workout_plan" {
		t.Fatalf("decision = %+v", dec)
	}
	if dec.Fallback {
		t.Error("valid call should not be marked as fallback")
	}
	if dec.Args["fitness_level"] != "beginner" {
		t.Errorf("arguments not carried: %v", dec.Args)
	}
}

func TestFromToolCallsUnknownToolFallsBack(t *testing.T) {
	r := New(discard(), testRegistry())

	calls := []llm.ToolCall{{Function: llm.ToolCallFunction{
		Name: "order_protein_shake",
	}}}

	dec := r.FromToolCalls(calls, "Create a workout plan for me")
	if !dec.Fallback {
		t.Error("expected fallback to be marked")
	}
	if dec.Kind != KindInvokeTool || dec.Tool != "generate_workout_plan" {
		t.Errorf("heuristic fallback decision = %+v", dec)
	}
}

func TestFromToolCallsInvalidArgsFallsBack(t *testing.T) {
	r := New(discard(), testRegistry())

	calls := []llm.ToolCall{{Function: llm.ToolCallFunction{
		Name:      "generate_workout_plan",
		Arguments: map[string]any{"fitness_level": "superhuman"},
	}}}

	dec := r.FromToolCalls(calls, "tell me about protein")
	if !dec.Fallback {
		t.Error("expected fallback to be marked")
	}
	if dec.Kind != KindChat {
		t.Errorf("fallback on non-tool message should be CHAT, got %+v", dec)
	}
}

func TestFromToolCallsEmpty(t *testing.T) {
	r := New(discard(), testRegistry())

	dec := r.FromToolCalls(nil, "hello")
	if dec.Kind != KindChat || dec.Fallback {
		t.Errorf("decision = %+v, want plain CHAT", dec)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "", want: ModeHeuristic},
		{input: "heuristic", want: ModeHeuristic},
		{input: "native", want: ModeNative},
		{input: "NATIVE", want: ModeNative},
		{input: "model_native", want: ModeNative},
		{input: "magic", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
