// Package memory owns the session's conversation history and the bounded
// prompt view built from it.
package memory

// Role identifies who authored a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one conversational turn. Messages are immutable once
// appended; Seq is the sole ordering guarantee.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	Seq     int    `json:"seq"`
}

// History is the append-only message sequence for a single session.
// It is unbounded; truncation happens only in the prompt view (see
// [Window]), never in storage.
type History struct {
	msgs []Message
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Append adds a message and assigns its sequence index.
func (h *History) Append(role Role, content string) Message {
	m := Message{Role: role, Content: content, Seq: len(h.msgs)}
	h.msgs = append(h.msgs, m)
	return m
}

// Messages returns a copy of the full history in sequence order.
func (h *History) Messages() []Message {
	out := make([]Message, len(h.msgs))
	copy(out, h.msgs)
	return out
}

// Len returns the number of stored messages.
func (h *History) Len() int {
	return len(h.msgs)
}

// Last returns the most recent message, or false for an empty history.
func (h *History) Last() (Message, bool) {
	if len(h.msgs) == 0 {
		return Message{}, false
	}
	return h.msgs[len(h.msgs)-1], true
}
