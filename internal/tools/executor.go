package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Executor runs a selected tool and converts the outcome into
// user-visible text. A tool failure never propagates as an error to the
// session — it becomes the turn's reply.
type Executor struct {
	logger *slog.Logger
	reg    *Registry
}

// NewExecutor creates an executor over the given registry.
func NewExecutor(logger *slog.Logger, reg *Registry) *Executor {
	return &Executor{logger: logger, reg: reg}
}

// Execute runs one tool invocation and returns the confirmation or error
// text to show the user, plus whether the tool succeeded. The invocation
// must already be validated; an unknown name at this point is a wiring
// bug and is reported like any other tool failure.
func (e *Executor) Execute(ctx context.Context, name string, args map[string]any) (string, bool) {
	t, ok := e.reg.Get(name)
	if !ok {
		e.logger.Error("tool not registered", "tool", name)
		return fmt.Sprintf("Sorry, I don't have a tool called %q.", name), false
	}

	start := time.Now()
	result, err := t.Handler(ctx, args)
	elapsed := time.Since(start)

	if err != nil {
		e.logger.Error("tool execution failed",
			"tool", name,
			"duration", elapsed,
			"error", err,
		)
		return fmt.Sprintf("Sorry, I couldn't complete that: %v. You can try again or check the output location.", err), false
	}

	e.logger.Info("tool executed", "tool", name, "duration", elapsed)
	return result, true
}
