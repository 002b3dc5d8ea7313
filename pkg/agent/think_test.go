package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consilium-ai/consilium/pkg/config"
	"github.com/consilium-ai/consilium/pkg/llm"
)

func newTestLLMClient(t *testing.T, responses []string) *llm.Client {
	t.Helper()
	var n int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := responses[n]
		if n < len(responses)-1 {
			n++
		}
		body, _ := json.Marshal(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": resp}}},
		})
		w.Write(body)
	}))
	t.Cleanup(srv.Close)

	endpoint := &config.LLMEndpointConfig{BaseURL: srv.URL, Model: "test-model", TimeoutSeconds: 5}
	breaker := llm.NewCircuitBreaker(5, time.Minute)
	resilience := &config.ResilienceConfig{MaxRetries: 1, BaseDelayMillis: 1, MaxDelayMillis: 5}
	return llm.NewClient(endpoint, "", resilience, breaker)
}

func newTestToolServer(t *testing.T, files map[string]string) *ToolClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Path string `json:"path"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		switch {
		case strings.HasSuffix(r.URL.Path, "/list_dir"):
			items := make([]map[string]string, 0, len(files))
			for name := range files {
				items = append(items, map[string]string{"name": name, "type": "file"})
			}
			body, _ := json.Marshal(map[string]any{"items": items})
			w.Write(body)
		case strings.HasSuffix(r.URL.Path, "/read_file"):
			body, _ := json.Marshal(map[string]string{"content": files[req.Path]})
			w.Write(body)
		}
	}))
	t.Cleanup(srv.Close)

	return NewToolClient(&config.ToolServerConfig{BaseURL: srv.URL, TimeoutSecs: 5}, "")
}

func TestThink_NoReadFileLinesReturnsPass1(t *testing.T) {
	llmClient := newTestLLMClient(t, []string{"the answer is 42"})
	tools := newTestToolServer(t, map[string]string{})
	a := NewAgent(config.AgentRoleDev, "dev-1", "you are a dev agent", llmClient, tools, 500)

	out := a.Think(context.Background(), "what is the answer")

	assert.Equal(t, "the answer is 42", out)
}

func TestThink_ReadFileLinesTriggerPass2(t *testing.T) {
	llmClient := newTestLLMClient(t, []string{
		"READ_FILE: main.go\nREAD_FILE: util.go",
		"final answer after reading files",
	})
	tools := newTestToolServer(t, map[string]string{
		"main.go": "package main",
		"util.go": "package util",
	})
	a := NewAgent(config.AgentRoleDev, "dev-1", "you are a dev agent", llmClient, tools, 500)

	out := a.Think(context.Background(), "review this code")

	assert.Equal(t, "final answer after reading files", out)
}

func TestExtractReadFilePaths_DedupesAndCaps(t *testing.T) {
	text := strings.Join([]string{
		"READ_FILE: a.go", "READ_FILE: b.go", "READ_FILE: a.go",
		"READ_FILE: c.go", "READ_FILE: d.go", "READ_FILE: e.go",
		"READ_FILE: f.go", "READ_FILE: g.go",
	}, "\n")

	paths := extractReadFilePaths(text)

	require.Len(t, paths, maxReadFiles)
	assert.Equal(t, []string{"a.go", "b.go", "c.go", "d.go", "e.go", "f.go"}, paths)
}

func TestExtractReadFilePaths_NoMatchesReturnsNil(t *testing.T) {
	paths := extractReadFilePaths("just a plain final answer")
	assert.Nil(t, paths)
}
