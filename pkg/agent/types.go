// Package agent implements the Agent: a stateful role instance that holds
// sliding-window timing metrics and exposes Think (two-pass file-request
// loop) and Triage (single strict-format escalation call) over an LLM Client
// and a read-only Tool Server.
package agent

import (
	"sync"
	"time"

	"github.com/consilium-ai/consilium/pkg/config"
	"github.com/consilium-ai/consilium/pkg/llm"
)

// timingWindowSize is the sliding-window sample count.
const timingWindowSize = 20

// timingWindow is a fixed-capacity ring buffer of the latest call durations.
type timingWindow struct {
	mu      sync.Mutex
	samples [timingWindowSize]time.Duration
	count   int
	next    int
}

func (w *timingWindow) record(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.samples[w.next] = d
	w.next = (w.next + 1) % timingWindowSize
	if w.count < timingWindowSize {
		w.count++
	}
}

// mean returns the average of the samples currently held, or 0 if empty.
func (w *timingWindow) mean() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.count == 0 {
		return 0
	}
	var sum time.Duration
	for i := 0; i < w.count; i++ {
		sum += w.samples[i]
	}
	return sum / time.Duration(w.count)
}

// Agent is one named panel role: a thin wrapper around an LLM Client and a
// Tool Server client, with its own retry counter and timing window.
type Agent struct {
	Role   config.AgentRole
	Name   string
	System string // role-specialized system prompt

	llmClient  *llm.Client
	tools      *ToolClient
	maxTokens  int
	retryCount int

	timing timingWindow

	snapshotOnce sync.Once
	snapshot     string
	snapshotErr  error
}

// NewAgent builds an Agent for role with the given system prompt, LLM
// client, and tool server client. tools may be nil for agents that never
// call Think (e.g. a director agent consulted only through its own adapter).
func NewAgent(role config.AgentRole, name, system string, llmClient *llm.Client, tools *ToolClient, maxTokens int) *Agent {
	return &Agent{
		Role:      role,
		Name:      name,
		System:    system,
		llmClient: llmClient,
		tools:     tools,
		maxTokens: maxTokens,
	}
}

// MeanLatency returns the mean duration of the latest (up to 20) LLM calls.
func (a *Agent) MeanLatency() time.Duration {
	return a.timing.mean()
}

// TriageResult is the parsed outcome of one Triage call.
type TriageResult struct {
	Answer          string
	NeedsConsilium  bool
	Reason          string
	SuggestedAgents []config.AgentRole
	RawResponse     string
}
