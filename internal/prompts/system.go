// Package prompts contains the prompt text sent to the model.
//
// Prompt text is Go code rather than config files because it is program
// logic: it is interpolated with session facts and validated by tests.
package prompts

import (
	"fmt"
	"strings"
)

// basePersona is the coach persona. Tool rules matter even in heuristic
// routing — they discourage the model from narrating tool use it cannot
// perform.
const basePersona = `You are Gymbro, a supportive AI fitness coach.

Goals:
- Help users improve fitness through clear, practical advice.
- Ask about fitness level and goals if unknown.
- Be concise, encouraging, and actionable.

Tools:
- generate_workout_plan: Use ONLY when the user asks for a workout plan or routine.
- generate_progress_report: Use ONLY when the user asks for progress or tracking.

Rules:
- Do not use tools unless explicitly requested.
- Remember user fitness level and goals from the conversation.`

const conciseness = "Keep responses concise: 3-6 sentences unless the user asks for more detail."

// System returns the full system preamble for one turn. Known facts are
// appended so the model sees them even after the originating message has
// scrolled out of the context window.
func System(level string, goals []string) string {
	var b strings.Builder
	b.WriteString(basePersona)
	b.WriteString("\n\n")
	b.WriteString(conciseness)

	if level != "" {
		fmt.Fprintf(&b, "\n\nCurrent user fitness level: %s", level)
	}
	if len(goals) > 0 {
		fmt.Fprintf(&b, "\n\nCurrent user fitness goals: %s", strings.Join(goals, ", "))
	}

	return b.String()
}
