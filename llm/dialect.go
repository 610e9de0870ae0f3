package llm

import (
	"fmt"
	"sort"
	"sync"
)

// Dialect maps universal LLM types to/from a specific provider's HTTP format.
//
// Dialect implementations live in their own packages (see llm/openai) and
// register themselves at init time. Streaming is always delivered as
// Server-Sent Events "data:" frames.
type Dialect interface {
	// Name returns the dialect identifier (e.g., "openai").
	Name() string

	// ChatPath returns the API endpoint path for chat completion (e.g., "/chat/completions").
	ChatPath() string

	// HealthPath returns the health-check endpoint path. Empty means no health endpoint.
	HealthPath() string

	// BuildRequest maps a universal CompletionRequest to the provider's JSON request body.
	BuildRequest(req CompletionRequest) (any, error)

	// ParseResponse maps the provider's JSON response body to a universal CompletionResponse.
	ParseResponse(body []byte) (*CompletionResponse, error)

	// ParseStreamChunk extracts content from a single stream data frame.
	// It returns done for the end-of-stream sentinel and an error for a frame
	// that cannot be decoded. Callers skip such frames.
	ParseStreamChunk(data []byte) (content string, done bool, err error)
}

// --- Dialect Registry ---

var (
	dialectsMu sync.RWMutex
	dialects   = map[string]Dialect{}
)

// RegisterDialect adds a dialect to the global registry.
// Typically called from init() in dialect packages:
//
//	func init() {
//	    llm.RegisterDialect("openai", &Dialect{})
//	}
func RegisterDialect(name string, d Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[name] = d
}

// GetDialect retrieves a dialect by name from the global registry.
func GetDialect(name string) (Dialect, error) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[name]
	if !ok {
		return nil, fmt.Errorf("llm: unknown dialect %q (forgot to import driver?)", name)
	}
	return d, nil
}

// Dialects returns the sorted names of all registered dialects.
func Dialects() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
