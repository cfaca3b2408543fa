package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gymbro-ai/gymbro/internal/agent"
	"github.com/gymbro-ai/gymbro/internal/llm"
	"github.com/gymbro-ai/gymbro/internal/plan"
	"github.com/gymbro-ai/gymbro/internal/router"
	"github.com/gymbro-ai/gymbro/internal/tools"
)

type fakeModel struct {
	reply string
	calls int
}

func (f *fakeModel) Chat(ctx context.Context, model string, messages []llm.Message, toolDefs []map[string]any, opts *llm.Options) (*llm.ChatResponse, error) {
	f.calls++
	return &llm.ChatResponse{Message: llm.Message{Role: "assistant", Content: f.reply}, Done: true}, nil
}

type fakePinger struct{ err error }

func (f *fakePinger) Ping(ctx context.Context) error { return f.err }

func newChatSession(t *testing.T, model agent.ModelClient) *agent.Session {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	reg := tools.NewRegistry()
	reg.Register(plan.Tool(plan.NewWriter(filepath.Join(t.TempDir(), "workout_plan.txt"))))

	return agent.NewSession(logger, model, router.New(logger, reg), reg, tools.NewExecutor(logger, reg), agent.Config{
		Model:              "llama3.2",
		MaxContextMessages: 6,
		Mode:               router.ModeHeuristic,
	})
}

func TestRunChatExitSentinel(t *testing.T) {
	model := &fakeModel{reply: "Hydration first, then lifting."}
	session := newChatSession(t, model)

	var out strings.Builder
	stdin := strings.NewReader("hello coach\nexit\n")

	if err := runChat(context.Background(), stdin, &out, session, &fakePinger{}); err != nil {
		t.Fatalf("runChat failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Welcome to Gymbro",
		"You: ",
		"Hydration first, then lifting.",
		"Thanks for using Gymbro",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if model.calls != 1 {
		t.Errorf("model calls = %d, the exit sentinel must not start a turn", model.calls)
	}
}

func TestRunChatEOF(t *testing.T) {
	session := newChatSession(t, &fakeModel{reply: "ok"})

	var out strings.Builder
	if err := runChat(context.Background(), strings.NewReader(""), &out, session, &fakePinger{}); err != nil {
		t.Fatalf("runChat failed: %v", err)
	}
	if !strings.Contains(out.String(), "Thanks for using Gymbro") {
		t.Error("EOF should end with the farewell")
	}
}

func TestRunChatBlankLinesSkipped(t *testing.T) {
	model := &fakeModel{reply: "ok"}
	session := newChatSession(t, model)

	var out strings.Builder
	stdin := strings.NewReader("\n   \nquit\n")

	if err := runChat(context.Background(), stdin, &out, session, &fakePinger{}); err != nil {
		t.Fatalf("runChat failed: %v", err)
	}
	if model.calls != 0 {
		t.Errorf("blank lines started %d turns", model.calls)
	}
}

func TestRunChatPingWarning(t *testing.T) {
	session := newChatSession(t, &fakeModel{reply: "ok"})

	var out strings.Builder
	probe := &fakePinger{err: errors.New("connection refused")}

	if err := runChat(context.Background(), strings.NewReader("bye\n"), &out, session, probe); err != nil {
		t.Fatalf("runChat failed: %v", err)
	}
	if !strings.Contains(out.String(), "Could not reach Ollama") {
		t.Error("ping failure should print the Ollama advice")
	}
}
