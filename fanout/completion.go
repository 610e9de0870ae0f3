package fanout

import (
	"context"

	"github.com/kbukum/promptprobe/llm"
	"github.com/kbukum/promptprobe/provider"
)

// Completer is the client a completion task calls; *llm.Adapter satisfies it.
type Completer = provider.Streamable[llm.CompletionRequest, llm.CompletionResponse, llm.StreamChunk]

// CompletionOptions selects how a completion task talks to the endpoint.
type CompletionOptions struct {
	// Stream accumulates the text of a streamed response instead of decoding
	// a single JSON body.
	Stream bool
	// OnFragment, when set, sees each streamed fragment as it arrives.
	// It is called from the submission's goroutine.
	OnFragment func(index int, fragment string)
}

// CompletionTask returns a Task that sends req and yields the response text.
// req is shared by every submission and never modified.
func CompletionTask(c Completer, req llm.CompletionRequest, opts CompletionOptions) Task[string] {
	return func(ctx context.Context, index int) (string, error) {
		if !opts.Stream {
			resp, err := c.Execute(ctx, req)
			if err != nil {
				return "", err
			}
			return resp.Content, nil
		}

		ch, err := c.Stream(ctx, req)
		if err != nil {
			return "", err
		}
		var onFragment func(string)
		if opts.OnFragment != nil {
			onFragment = func(f string) { opts.OnFragment(index, f) }
		}
		return llm.CollectFunc(ch, onFragment)
	}
}
