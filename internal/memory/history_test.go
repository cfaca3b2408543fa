package memory

import "testing"

func TestHistoryAppendAssignsSequence(t *testing.T) {
	h := NewHistory()

	first := h.Append(RoleUser, "hello")
	second := h.Append(RoleAssistant, "hi there")
	third := h.Append(RoleUser, "how are you?")

	if first.Seq != 0 || second.Seq != 1 || third.Seq != 2 {
		t.Errorf("sequence indices = %d, %d, %d", first.Seq, second.Seq, third.Seq)
	}
	if h.Len() != 3 {
		t.Errorf("Len = %d, want 3", h.Len())
	}
}

func TestHistoryMessagesIsACopy(t *testing.T) {
	h := NewHistory()
	h.Append(RoleUser, "original")

	msgs := h.Messages()
	msgs[0].Content = "mutated"

	if got := h.Messages()[0].Content; got != "original" {
		t.Errorf("stored message was mutated through the copy: %q", got)
	}
}

func TestHistoryLast(t *testing.T) {
	h := NewHistory()

	if _, ok := h.Last(); ok {
		t.Error("Last on empty history should report false")
	}

	h.Append(RoleUser, "one")
	h.Append(RoleAssistant, "two")

	last, ok := h.Last()
	if !ok || last.Content != "two" || last.Role != RoleAssistant {
		t.Errorf("Last = %+v, ok = %v", last, ok)
	}
}
