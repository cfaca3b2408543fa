package memory

// Window builds the bounded prompt view: the preamble as a leading system
// message, followed by the most recent max history messages in original
// order. The preamble does not count against max. A max of zero or less
// disables truncation.
//
// The view is read-only with respect to the history: truncation never
// removes stored messages. Truncation is strictly by message count; token
// budgeting belongs to the model server (num_ctx).
func Window(preamble string, h *History, max int) []Message {
	msgs := h.Messages()
	if max > 0 && len(msgs) > max {
		msgs = msgs[len(msgs)-max:]
	}

	view := make([]Message, 0, len(msgs)+1)
	view = append(view, Message{Role: RoleSystem, Content: preamble})
	view = append(view, msgs...)
	return view
}
