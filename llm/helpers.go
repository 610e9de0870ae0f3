package llm

import "strings"

// Collect drains a stream and concatenates its fragments in arrival order.
// The text received before a failure is returned together with the error.
func Collect(ch <-chan StreamChunk) (string, error) {
	return CollectFunc(ch, nil)
}

// CollectFunc is Collect with a callback invoked for every non-empty fragment
// as it arrives, for callers that print while accumulating.
func CollectFunc(ch <-chan StreamChunk, fn func(fragment string)) (string, error) {
	var sb strings.Builder
	var err error
	for chunk := range ch {
		if chunk.Err != nil {
			err = chunk.Err
			continue
		}
		if chunk.Content == "" {
			continue
		}
		sb.WriteString(chunk.Content)
		if fn != nil {
			fn(chunk.Content)
		}
	}
	return sb.String(), err
}

// ExtractJSON pulls a JSON object out of a reply that may wrap it in a
// markdown fence or surrounding prose. Input without braces is returned trimmed.
func ExtractJSON(s string) string {
	s = strings.TrimSpace(s)

	// Strip markdown code fences
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s[3:], "\n"); idx >= 0 {
			s = s[3+idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	// Find first { and last }
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
