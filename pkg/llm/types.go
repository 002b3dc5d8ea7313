// Package llm implements the process-wide LLM Client: a single
// OpenAI-compatible chat-completion call wrapped in exponential-backoff
// retry and a shared circuit breaker.
package llm

import "time"

// Message is one turn of a chat-completion request.
type Message struct {
	Role    string // "system", "user", or "assistant"
	Content string
}

// Sentinel error-string tags returned (not wrapped, since callers must
// propagate these strings untouched) when a call cannot be completed.
const (
	TagTimeout     = "[LLM_TIMEOUT]"
	TagHTTPError   = "[LLM_HTTP_ERROR]"
	TagConnError   = "[LLM_CONNECTION_ERROR]"
	TagCircuitOpen = "[LLM_CIRCUIT_OPEN]"
)

// CompletionStats reports per-call timing/retry metadata for observability:
// average LLM latency and retry counts are exposed through it.
type CompletionStats struct {
	RetryCount int
	Duration   time.Duration
}
