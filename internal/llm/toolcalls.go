package llm

import (
	"encoding/json"
	"strings"
)

// ParseTextToolCalls extracts tool calls that the model wrote into the
// content text rather than the native tool_calls field. Handled shapes:
//
//   - raw object: {"name": "...", "arguments": {...}}
//   - array: [{"name": "...", "arguments": {...}}]
//   - tagged: <tool_call>{...}</tool_call>
func ParseTextToolCalls(content string) []ToolCall {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	if i := strings.Index(content, "<tool_call>"); i != -1 {
		content = content[i+len("<tool_call>"):]
		if j := strings.Index(content, "</tool_call>"); j != -1 {
			content = content[:j]
		}
		content = strings.TrimSpace(content)
	}

	type rawCall struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}

	var many []rawCall
	if err := json.Unmarshal([]byte(content), &many); err == nil && len(many) > 0 {
		var calls []ToolCall
		for _, rc := range many {
			if rc.Name == "" {
				continue
			}
			calls = append(calls, ToolCall{Function: ToolCallFunction{Name: rc.Name, Arguments: rc.Arguments}})
		}
		return calls
	}

	var one rawCall
	if err := json.Unmarshal([]byte(content), &one); err == nil && one.Name != "" {
		return []ToolCall{{Function: ToolCallFunction{Name: one.Name, Arguments: one.Arguments}}}
	}

	return nil
}
