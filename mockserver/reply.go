package mockserver

import (
	"encoding/json"
	"strings"

	"github.com/aidarkhanov/nanoid"

	"github.com/kbukum/promptprobe/llm"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

const loremText = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod " +
	"tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis " +
	"nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat."

// echoLimit caps how much of a prompt is echoed back.
const echoLimit = 200

func newID(prefix string, size int) string {
	id, err := nanoid.Generate(idAlphabet, size)
	if err != nil {
		return prefix + "0"
	}
	return prefix + id
}

// reply builds the assistant answer for req: a tool call when tools are on
// offer and the conversation is not already answering one, text otherwise.
func reply(req chatRequest, mode string) (string, []llm.ToolCall) {
	last := lastMessage(req.Messages)

	if len(req.Tools) > 0 && last.Role != llm.RoleTool {
		if tool, ok := chooseTool(req.Tools, req.ToolChoice); ok {
			args, _ := json.Marshal(sampleArguments(tool.Function.Parameters))
			return "", []llm.ToolCall{{
				ID:   newID("call_", 24),
				Type: "function",
				Function: llm.FunctionCall{
					Name:      tool.Function.Name,
					Arguments: string(args),
				},
			}}
		}
	}

	var text string
	switch {
	case mode == ReplyLorem:
		text = loremText
	case last.Role == llm.RoleTool:
		text = "Tool result: " + truncate(last.Content, echoLimit)
	default:
		text = "You said: " + truncate(last.Content, echoLimit)
	}

	if req.MaxTokens > 0 {
		text = limitWords(text, req.MaxTokens)
	}
	if req.ResponseFormat != nil && req.ResponseFormat.Type == "json_object" {
		b, _ := json.Marshal(map[string]string{"reply": text})
		text = string(b)
	}
	return text, nil
}

func lastMessage(msgs []llm.Message) llm.Message {
	if len(msgs) == 0 {
		return llm.Message{}
	}
	return msgs[len(msgs)-1]
}

// chooseTool honors a forced function choice, "none", and "auto" (the first tool).
func chooseTool(tools []llm.Tool, choice any) (llm.Tool, bool) {
	switch c := choice.(type) {
	case string:
		if c == "none" {
			return llm.Tool{}, false
		}
	case map[string]any:
		fn, _ := c["function"].(map[string]any)
		name, _ := fn["name"].(string)
		for _, t := range tools {
			if t.Function.Name == name {
				return t, true
			}
		}
		return llm.Tool{}, false
	}
	return tools[0], true
}

// sampleArguments fills every property of a JSON Schema object with a
// placeholder of the right type; enums use their first value.
func sampleArguments(schema map[string]any) map[string]any {
	args := map[string]any{}
	props, _ := schema["properties"].(map[string]any)
	for name, raw := range props {
		prop, _ := raw.(map[string]any)
		if enum, ok := prop["enum"].([]any); ok && len(enum) > 0 {
			args[name] = enum[0]
			continue
		}
		switch prop["type"] {
		case "number", "integer":
			args[name] = 1
		case "boolean":
			args[name] = true
		case "array":
			args[name] = []any{}
		case "object":
			args[name] = sampleArguments(prop)
		default:
			args[name] = "sample " + name
		}
	}
	return args
}

// fragments splits text into word-sized stream deltas that concatenate back
// to text.
func fragments(text string) []string {
	if text == "" {
		return nil
	}
	return strings.SplitAfter(text, " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func limitWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ")
}

func countWords(msgs []llm.Message) int {
	n := 0
	for _, m := range msgs {
		n += len(strings.Fields(m.Content))
	}
	return n
}
