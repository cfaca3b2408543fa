// Package agent implements the per-turn orchestration core: one session,
// one state machine, one request/response cycle at a time.
package agent

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gymbro-ai/gymbro/internal/facts"
	"github.com/gymbro-ai/gymbro/internal/llm"
	"github.com/gymbro-ai/gymbro/internal/memory"
	"github.com/gymbro-ai/gymbro/internal/prompts"
	"github.com/gymbro-ai/gymbro/internal/router"
	"github.com/gymbro-ai/gymbro/internal/tools"
)

// modelFailureReply is what the user sees when the model collaborator is
// unreachable. The turn still completes; nothing is retried.
const modelFailureReply = "I'm having trouble reaching the model right now. Please try again in a moment."

// emptyReply covers the rare case of a model returning neither text nor
// a usable tool call.
const emptyReply = "I've processed your request. How can I help you further?"

// ModelClient is the model chat collaborator. Implemented by
// [llm.Client]; tests substitute scripted fakes.
type ModelClient interface {
	Chat(ctx context.Context, model string, messages []llm.Message, toolDefs []map[string]any, opts *llm.Options) (*llm.ChatResponse, error)
}

// Config holds the session-lifetime settings.
type Config struct {
	Model              string
	Temperature        float64
	NumPredict         int
	NumCtx             int
	MaxContextMessages int
	Mode               router.Mode
}

// PendingToolCall records the single tool invocation for the current
// turn. It never survives the turn that created it.
type PendingToolCall struct {
	Tool string
	Args map[string]any
}

// Session owns the conversation state and sequences each turn through
// the state machine: AwaitingInput → ExtractingFacts → BuildingContext →
// Routing → Chatting|InvokingTool → Responding → AwaitingInput.
//
// Execution is strictly sequential: one turn owns the state until its
// Responding step completes. There is no internal locking because there
// are never overlapping turns.
type Session struct {
	logger *slog.Logger
	id     uuid.UUID
	model  ModelClient
	router *router.Router
	reg    *tools.Registry
	exec   *tools.Executor
	cfg    Config

	history *memory.History
	facts   facts.Set
	pending *PendingToolCall
	state   State
	turns   int
}

// NewSession creates a session with empty history and no facts.
func NewSession(logger *slog.Logger, model ModelClient, rt *router.Router, reg *tools.Registry, exec *tools.Executor, cfg Config) *Session {
	return &Session{
		logger:  logger,
		id:      uuid.New(),
		model:   model,
		router:  rt,
		reg:     reg,
		exec:    exec,
		cfg:     cfg,
		history: memory.NewHistory(),
		state:   StateAwaitingInput,
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// State returns the current state-machine state.
func (s *Session) State() State { return s.state }

// Facts returns a copy of the current fact set.
func (s *Session) Facts() facts.Set { return s.facts.Clone() }

// History returns a copy of the full stored history.
func (s *Session) History() []memory.Message { return s.history.Messages() }

// Pending returns the in-flight tool call, nil outside InvokingTool.
func (s *Session) Pending() *PendingToolCall { return s.pending }

// Turn runs one complete request/response cycle and returns the
// assistant reply. Model and tool failures are turn-scoped: they come
// back as reply text, never as an error. The only error returned is
// context cancellation before the turn started.
func (s *Session) Turn(ctx context.Context, input string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.turns++
	turn := s.turns

	s.transition(StateExtractingFacts)
	s.history.Append(memory.RoleUser, input)
	before := s.facts
	s.facts = facts.Extract(input, s.facts)
	if !s.facts.Equal(before) {
		s.logger.Info("facts updated",
			"turn", turn,
			"level", s.facts.Level,
			"goals", s.facts.Goals,
		)
	}

	s.transition(StateBuildingContext)
	view := s.contextView()

	s.transition(StateRouting)
	var reply string
	if s.cfg.Mode == router.ModeNative {
		reply = s.nativeTurn(ctx, view, input)
	} else {
		reply = s.heuristicTurn(ctx, view, input)
	}
	if reply == "" {
		reply = emptyReply
	}

	s.transition(StateResponding)
	s.history.Append(memory.RoleAssistant, reply)
	s.pending = nil
	s.transition(StateAwaitingInput)

	s.logger.Debug("turn completed", "turn", turn, "history", s.history.Len())
	return reply, nil
}

// heuristicTurn routes by the local rule table. The model is consulted
// only when the decision is CHAT.
func (s *Session) heuristicTurn(ctx context.Context, view []llm.Message, input string) string {
	dec := s.router.Heuristic(input)
	if dec.Kind == router.KindInvokeTool {
		s.logger.Info("routing decision", "mode", "heuristic", "decision", "invoke_tool", "tool", dec.Tool, "rule", dec.Rule)
		return s.invokeTool(ctx, dec)
	}

	s.logger.Info("routing decision", "mode", "heuristic", "decision", "chat")
	return s.chat(ctx, view)
}

// nativeTurn lets the model signal tool calls. The routing call doubles
// as the chat call: plain text means CHAT and is the reply directly. A
// malformed signal degrades to heuristic evaluation of the same message.
func (s *Session) nativeTurn(ctx context.Context, view []llm.Message, input string) string {
	s.transition(StateChatting)
	resp, err := s.model.Chat(ctx, s.cfg.Model, view, s.reg.Definitions(), s.options())
	if err != nil {
		s.logger.Error("model call failed", "error", err)
		return modelFailureReply
	}

	if len(resp.Message.ToolCalls) == 0 {
		s.logger.Info("routing decision", "mode", "native", "decision", "chat")
		return resp.Message.Content
	}

	s.transition(StateRouting)
	dec := s.router.FromToolCalls(resp.Message.ToolCalls, input)
	if dec.Kind == router.KindInvokeTool {
		s.logger.Info("routing decision", "mode", "native", "decision", "invoke_tool", "tool", dec.Tool, "fallback", dec.Fallback)
		return s.invokeTool(ctx, dec)
	}

	// Fallback said CHAT. The model's content was consumed by the
	// malformed tool call, so ask again without tools if nothing usable
	// remains.
	s.logger.Info("routing decision", "mode", "native", "decision", "chat", "fallback", dec.Fallback)
	if resp.Message.Content != "" {
		return resp.Message.Content
	}
	return s.chat(ctx, view)
}

// chat makes a single plain model call with the bounded context view.
func (s *Session) chat(ctx context.Context, view []llm.Message) string {
	s.transition(StateChatting)
	resp, err := s.model.Chat(ctx, s.cfg.Model, view, nil, s.options())
	if err != nil {
		s.logger.Error("model call failed", "error", err)
		return modelFailureReply
	}
	return resp.Message.Content
}

// invokeTool executes exactly one tool for this turn. Known facts fill
// any argument the routing decision left unset, so a heuristic decision
// (which carries no arguments) still produces a personalized result.
func (s *Session) invokeTool(ctx context.Context, dec router.Decision) string {
	s.transition(StateInvokingTool)

	args := dec.Args
	if args == nil {
		args = map[string]any{}
	}
	s.fillFactArgs(dec.Tool, args)
	s.pending = &PendingToolCall{Tool: dec.Tool, Args: args}

	text, ok := s.exec.Execute(ctx, dec.Tool, args)
	if !ok {
		s.logger.Warn("tool outcome was a failure", "tool", dec.Tool)
	}
	return text
}

// fillFactArgs injects stored facts into recognized argument slots that
// the decision did not populate.
func (s *Session) fillFactArgs(tool string, args map[string]any) {
	t, ok := s.reg.Get(tool)
	if !ok {
		return
	}
	props, _ := t.Parameters["properties"].(map[string]any)

	if _, declared := props["fitness_level"]; declared {
		if v, _ := args["fitness_level"].(string); v == "" {
			args["fitness_level"] = s.facts.LevelOrDefault()
		}
	}
	if _, declared := props["fitness_goals"]; declared {
		if _, present := args["fitness_goals"]; !present {
			args["fitness_goals"] = s.facts.GoalsOrDefault()
		}
	}
}

// contextView builds the bounded prompt view: persona preamble with the
// current facts folded in, then the most recent configured number of
// history messages.
func (s *Session) contextView() []llm.Message {
	preamble := prompts.System(s.facts.Level, s.facts.Goals)
	window := memory.Window(preamble, s.history, s.cfg.MaxContextMessages)

	msgs := make([]llm.Message, len(window))
	for i, m := range window {
		msgs[i] = llm.Message{Role: string(m.Role), Content: m.Content}
	}
	return msgs
}

func (s *Session) options() *llm.Options {
	return &llm.Options{
		Temperature: s.cfg.Temperature,
		NumPredict:  s.cfg.NumPredict,
		NumCtx:      s.cfg.NumCtx,
	}
}

func (s *Session) transition(next State) {
	s.logger.Debug("state transition", "from", s.state.String(), "to", next.String())
	s.state = next
}
