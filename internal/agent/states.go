package agent

// State identifies where a turn is in its lifecycle. AwaitingInput is
// both the initial and the recurring state; the session ends externally
// via the exit sentinel, never from inside the machine.
type State int

const (
	StateAwaitingInput State = iota
	StateExtractingFacts
	StateBuildingContext
	StateRouting
	StateChatting
	StateInvokingTool
	StateResponding
)

func (s State) String() string {
	switch s {
	case StateAwaitingInput:
		return "awaiting_input"
	case StateExtractingFacts:
		return "extracting_facts"
	case StateBuildingContext:
		return "building_context"
	case StateRouting:
		return "routing"
	case StateChatting:
		return "chatting"
	case StateInvokingTool:
		return "invoking_tool"
	case StateResponding:
		return "responding"
	default:
		return "unknown"
	}
}
