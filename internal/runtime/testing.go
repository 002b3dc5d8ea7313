package runtime

import (
	"time"

	"github.com/consilium-ai/consilium/pkg/config"
	"github.com/consilium-ai/consilium/pkg/consilium"
	"github.com/consilium-ai/consilium/pkg/director"
	"github.com/consilium-ai/consilium/pkg/kb"
	"github.com/consilium-ai/consilium/pkg/llm"
	"github.com/consilium-ai/consilium/pkg/tasklog"
)

// NewForTest builds a Runtime from already-constructed components, skipping
// New's config-directory/env-var loading path. Intended for pkg/api's
// handler tests, which wire each component by hand against httptest.Server
// stand-ins the way pkg/mcp/testing.go's NewTestClientFactory lets tests
// inject sessions without going through Initialize().
func NewForTest(
	cfg *config.Config,
	kbStore *kb.Store,
	consiliumInst *consilium.Consilium,
	activeDirector *director.ActiveDirector,
	llmBreaker *llm.CircuitBreaker,
	directorBreaker *director.CircuitBreaker,
	adapterMetrics *director.AdapterMetrics,
	runLog *tasklog.Log,
	eventLog *director.EventLog,
) *Runtime {
	return &Runtime{
		Config:          cfg,
		KBStore:         kbStore,
		Consilium:       consiliumInst,
		ActiveDirector:  activeDirector,
		LLMBreaker:      llmBreaker,
		DirectorBreaker: directorBreaker,
		AdapterMetrics:  adapterMetrics,
		RunLog:          runLog,
		EventLog:        eventLog,
		startedAt:       time.Now(),
	}
}
