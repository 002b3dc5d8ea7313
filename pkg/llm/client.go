package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/consilium-ai/consilium/pkg/config"
)

// Client issues OpenAI-compatible chat-completion calls over plain
// net/http+encoding/json, a hand-rolled HTTP-POST-with-bearer-token client
// wrapped in a retry policy and a single shared CircuitBreaker.
type Client struct {
	httpClient *http.Client
	breaker    *CircuitBreaker

	baseURL     string
	model       string
	apiKey      string
	maxRetries  int
	baseDelay   time.Duration
	maxDelay    time.Duration
	callTimeout time.Duration
}

// NewClient builds a Client for one LLM endpoint, sharing breaker across all
// agents that call it (spec: "Single per-process circuit breaker shared
// across all agents").
func NewClient(endpoint *config.LLMEndpointConfig, apiKey string, resilience *config.ResilienceConfig, breaker *CircuitBreaker) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 180 * time.Second},
		breaker:     breaker,
		baseURL:     strings.TrimSuffix(endpoint.BaseURL, "/"),
		model:       endpoint.Model,
		apiKey:      apiKey,
		maxRetries:  resilience.MaxRetries,
		baseDelay:   time.Duration(resilience.BaseDelayMillis) * time.Millisecond,
		maxDelay:    time.Duration(resilience.MaxDelayMillis) * time.Millisecond,
		callTimeout: time.Duration(endpoint.TimeoutSeconds) * time.Second,
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []chatMsg `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

type chatMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMsg `json:"message"`
	} `json:"choices"`
}

// Complete performs a single logical LLM call: it consults the circuit
// breaker once, then retries the HTTP request under the retry policy
// (timeout/connection-reset/5xx only, exponential backoff capped at
// MaxDelay). It returns either the model's text or one of the sentinel
// error-string tags, never a Go error, since agents propagate the tag
// string untouched.
func (c *Client) Complete(ctx context.Context, messages []Message, maxTokens int) (string, CompletionStats) {
	start := time.Now()

	if !c.breaker.Allow() {
		return TagCircuitOpen, CompletionStats{Duration: time.Since(start)}
	}

	var lastTag string
	retryCount := 0

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.baseDelay * (1 << uint(attempt-1))
			if delay > c.maxDelay {
				delay = c.maxDelay
			}
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return TagTimeout, CompletionStats{RetryCount: retryCount, Duration: time.Since(start)}
			}
			retryCount++
		}

		text, tag, retryable := c.attempt(ctx, messages, maxTokens)
		if tag == "" {
			c.breaker.RecordSuccess()
			return text, CompletionStats{RetryCount: retryCount, Duration: time.Since(start)}
		}

		lastTag = tag
		if !retryable {
			c.breaker.RecordFailure()
			return tag, CompletionStats{RetryCount: retryCount, Duration: time.Since(start)}
		}
	}

	c.breaker.RecordFailure()
	return lastTag, CompletionStats{RetryCount: retryCount, Duration: time.Since(start)}
}

// attempt performs exactly one HTTP round trip and classifies the outcome
// into (text, tag, retryable). tag == "" means success.
func (c *Client) attempt(ctx context.Context, messages []Message, maxTokens int) (text, tag string, retryable bool) {
	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	msgs := make([]chatMsg, len(messages))
	for i, m := range messages {
		msgs[i] = chatMsg{Role: m.Role, Content: m.Content}
	}

	body, err := json.Marshal(chatRequest{Model: c.model, Messages: msgs, MaxTokens: maxTokens})
	if err != nil {
		return "", TagHTTPError, false
	}

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", TagHTTPError, false
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		tag, retryable := classifyTransportError(err)
		return "", tag, retryable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return "", TagHTTPError, true
	case resp.StatusCode >= 400:
		return "", TagHTTPError, false
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", TagHTTPError, false
	}
	if len(parsed.Choices) == 0 {
		return "", TagHTTPError, false
	}
	return parsed.Choices[0].Message.Content, "", false
}

// classifyTransportError maps a transport-level error to (tag, retryable):
// timeout and connection-reset retry; connection-refused (endpoint down)
// does not.
func classifyTransportError(err error) (tag string, retryable bool) {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return TagTimeout, true
	}
	if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "connection reset") {
		return TagConnError, true
	}
	if strings.Contains(err.Error(), "connection refused") || strings.Contains(err.Error(), "no such host") {
		return TagConnError, false
	}
	return fmt.Sprintf("%s %v", TagConnError, err), false
}
