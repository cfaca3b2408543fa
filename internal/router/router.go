// Package router decides, per turn, whether to answer conversationally
// or to invoke a tool.
package router

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gymbro-ai/gymbro/internal/llm"
	"github.com/gymbro-ai/gymbro/internal/tools"
)

// Mode selects the routing strategy for the session lifetime.
type Mode int

const (
	// ModeHeuristic matches keyword rules locally and never consults the
	// model for the routing decision. This is the reliable choice for
	// models too small to honor structured tool calling.
	ModeHeuristic Mode = iota

	// ModeNative trusts the model's own tool-call signal, with heuristic
	// fallback when that signal is malformed.
	ModeNative
)

func (m Mode) String() string {
	if m == ModeNative {
		return "native"
	}
	return "heuristic"
}

// ParseMode converts a config string to a Mode. Empty selects heuristic.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "heuristic":
		return ModeHeuristic, nil
	case "native", "model", "model_native":
		return ModeNative, nil
	default:
		return ModeHeuristic, fmt.Errorf("unknown routing mode %q (valid: heuristic, native)", s)
	}
}

// Kind tags a routing decision.
type Kind int

const (
	// KindChat answers conversationally. Unrecognized intent is not an
	// error — it is this default.
	KindChat Kind = iota

	// KindInvokeTool runs the named tool this turn.
	KindInvokeTool
)

// Decision is the outcome of routing one user message.
type Decision struct {
	Kind Kind
	Tool string
	Args map[string]any

	// Rule names the heuristic rule that matched, for logging.
	Rule string

	// Fallback marks a native-mode decision that degraded to heuristic
	// evaluation because the model's tool-call signal was malformed.
	Fallback bool
}

// Rule is one entry in the ordered heuristic rule table. The first rule
// whose keyword appears in the message wins; ties break by declaration
// order.
type Rule struct {
	Name     string
	Tool     string
	Keywords []string
}

// DefaultRules returns the standing rule table. Keyword sets come from
// the coach's two tools: plan requests and progress/tracking requests.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "workout_plan",
			Tool:     "generate_workout_plan",
			Keywords: []string{"workout plan", "routine", "workout routine", "training plan", "program"},
		},
		{
			Name:     "progress_report",
			Tool:     "generate_progress_report",
			Keywords: []string{"progress", "report", "csv", "track"},
		},
	}
}

// Router evaluates routing decisions. It holds no per-turn state; every
// decision is a fresh function of the message.
type Router struct {
	logger *slog.Logger
	rules  []Rule
	reg    *tools.Registry
}

// New creates a router over the default rule table.
func New(logger *slog.Logger, reg *tools.Registry) *Router {
	return &Router{logger: logger, rules: DefaultRules(), reg: reg}
}

// NewWithRules creates a router with a custom rule table.
func NewWithRules(logger *slog.Logger, reg *tools.Registry, rules []Rule) *Router {
	return &Router{logger: logger, rules: rules, reg: reg}
}

// Heuristic routes by keyword match. It is a pure, deterministic function
// of the message text and the rule table.
func (r *Router) Heuristic(message string) Decision {
	lower := strings.ToLower(message)

	for _, rule := range r.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return Decision{
					Kind: KindInvokeTool,
					Tool: rule.Tool,
					Args: map[string]any{},
					Rule: rule.Name,
				}
			}
		}
	}

	return Decision{Kind: KindChat}
}

// FromToolCalls routes a native-mode response. The first tool call is
// validated against the registry schema; an unknown tool or invalid
// arguments never surface as an error — the same message is re-evaluated
// heuristically for this turn only.
func (r *Router) FromToolCalls(calls []llm.ToolCall, message string) Decision {
	if len(calls) == 0 {
		return Decision{Kind: KindChat}
	}

	call := calls[0]
	name := call.Function.Name
	args := call.Function.Arguments
	if args == nil {
		args = map[string]any{}
	}

	if err := r.reg.Validate(name, args); err != nil {
		r.logger.Warn("malformed tool call, falling back to heuristic routing",
			"tool", name,
			"error", err,
		)
		d := r.Heuristic(message)
		d.Fallback = true
		return d
	}

	return Decision{Kind: KindInvokeTool, Tool: name, Args: args, Rule: "model_native"}
}
