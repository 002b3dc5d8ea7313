package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consilium-ai/consilium/pkg/config"
)

func testResilience() *config.ResilienceConfig {
	return &config.ResilienceConfig{
		MaxRetries:         3,
		BaseDelayMillis:    1,
		MaxDelayMillis:     5,
		FailureThreshold:   5,
		RecoveryTimeoutSec: 60,
	}
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	endpoint := &config.LLMEndpointConfig{BaseURL: srv.URL, Model: "test-model", TimeoutSeconds: 5}
	breaker := NewCircuitBreaker(5, time.Minute)
	return NewClient(endpoint, "", testResilience(), breaker)
}

func TestClient_Complete_SuccessOnFirstAttempt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello"}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	text, stats := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, 100)

	assert.Equal(t, "hello", text)
	assert.Equal(t, 0, stats.RetryCount)
}

func TestClient_Complete_RetriesOnFiveHundredThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	text, stats := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, 100)

	assert.Equal(t, "ok", text)
	assert.Equal(t, 2, stats.RetryCount)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_Complete_NoRetryOn400(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	text, stats := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, 100)

	assert.Equal(t, TagHTTPError, text)
	assert.Equal(t, 0, stats.RetryCount)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_Complete_ExhaustsRetriesOnPersistent500(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	text, stats := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, 100)

	assert.Equal(t, TagHTTPError, text)
	assert.Equal(t, 3, stats.RetryCount)
}

func TestClient_Complete_CircuitOpenShortCircuits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	endpoint := &config.LLMEndpointConfig{BaseURL: srv.URL, Model: "test-model", TimeoutSeconds: 5}
	breaker := NewCircuitBreaker(1, time.Minute)
	c := NewClient(endpoint, "", &config.ResilienceConfig{MaxRetries: 0, BaseDelayMillis: 1, MaxDelayMillis: 5}, breaker)

	_, _ = c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, 100)
	require.Equal(t, config.CircuitOpen, breaker.State())

	text, _ := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}}, 100)
	assert.Equal(t, TagCircuitOpen, text)
}
