package director

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consilium-ai/consilium/pkg/config"
	"github.com/consilium-ai/consilium/pkg/sanitize"
)

type fakeTransport struct {
	content          string
	promptTokens     int
	completionTokens int
	err              error
}

func (f *fakeTransport) complete(ctx context.Context, systemPrompt, userPrompt string) (string, int, int, error) {
	return f.content, f.promptTokens, f.completionTokens, f.err
}

func testCapsule() sanitize.DecisionCapsule {
	return sanitize.DecisionCapsule{
		ProblemSummary: "rotate the auth token before the deploy window closes",
		Facts:          []string{"Confidence: 0.60", "Agents: 3"},
		AgentSummaries: map[config.AgentRole]string{config.AgentRoleSecurity: "rotate immediately"},
		RiskLevel:      config.RiskLevelHigh,
		Confidence:     0.60,
	}
}

func TestAdapter_Call_ParsesSuccessfulJSONResponse(t *testing.T) {
	transport := &fakeTransport{
		content:          `{"decision":"Rotate the token now","risks":["downtime"],"recommendations":["notify oncall"],"next_step":"rotate","confidence":0.9,"reasoning":"clear cut","decisionClass":"security"}`,
		promptTokens:     100,
		completionTokens: 50,
	}
	adapter := NewAdapter(transport, NewAdapterMetrics())

	decision, stats := adapter.Call(context.Background(), testCapsule())

	require.False(t, stats.Error)
	assert.Equal(t, "Rotate the token now", decision.Decision)
	assert.Equal(t, 0.9, decision.Confidence)
	assert.Equal(t, config.DecisionClassSecurity, decision.DecisionClass)
	assert.Equal(t, 150, stats.Tokens)
}

func TestAdapter_Call_TransportErrorYieldsFallback(t *testing.T) {
	transport := &fakeTransport{err: errors.New("connection refused")}
	adapter := NewAdapter(transport, NewAdapterMetrics())

	decision, stats := adapter.Call(context.Background(), testCapsule())

	assert.True(t, stats.Error)
	assert.Equal(t, fallbackConfidence, decision.Confidence)
	assert.Contains(t, decision.Reasoning, "connection refused")
}

func TestAdapter_Call_InvalidJSONYieldsFallback(t *testing.T) {
	transport := &fakeTransport{content: "not json at all"}
	adapter := NewAdapter(transport, NewAdapterMetrics())

	decision, stats := adapter.Call(context.Background(), testCapsule())

	assert.True(t, stats.Error)
	assert.Equal(t, fallbackConfidence, decision.Confidence)
}

func TestAdapter_Call_MissingDecisionFieldYieldsFallback(t *testing.T) {
	transport := &fakeTransport{content: `{"confidence":0.9}`}
	adapter := NewAdapter(transport, NewAdapterMetrics())

	decision, stats := adapter.Call(context.Background(), testCapsule())

	assert.True(t, stats.Error)
	assert.Equal(t, fallbackConfidence, decision.Confidence)
}

func TestAdapter_Call_UnknownDecisionClassFallsBackToUnknown(t *testing.T) {
	transport := &fakeTransport{content: `{"decision":"ok","confidence":0.5,"decisionClass":"not_a_real_class"}`}
	adapter := NewAdapter(transport, NewAdapterMetrics())

	decision, _ := adapter.Call(context.Background(), testCapsule())

	assert.Equal(t, config.DecisionClassUnknown, decision.DecisionClass)
}

func TestAdapter_Call_ComputesCostFromTokenCounts(t *testing.T) {
	transport := &fakeTransport{
		content:          `{"decision":"ok","confidence":0.5}`,
		promptTokens:     1000,
		completionTokens: 1000,
	}
	adapter := NewAdapter(transport, NewAdapterMetrics())

	_, stats := adapter.Call(context.Background(), testCapsule())

	assert.InDelta(t, promptCostPer1K+completionCostPer1K, stats.Cost, 1e-9)
}

func TestAdapter_Call_RecordsMetricsEvenOnFallback(t *testing.T) {
	transport := &fakeTransport{err: errors.New("timeout")}
	metrics := NewAdapterMetrics()
	adapter := NewAdapter(transport, metrics)

	_, _ = adapter.Call(context.Background(), testCapsule())

	snap := metrics.Snapshot()
	assert.Equal(t, 1, snap.CallsToday)
}

func TestAdapter_Call_ConfidenceIsClampedTo01(t *testing.T) {
	transport := &fakeTransport{content: `{"decision":"ok","confidence":1.5}`}
	adapter := NewAdapter(transport, NewAdapterMetrics())

	decision, _ := adapter.Call(context.Background(), testCapsule())

	assert.Equal(t, 1.0, decision.Confidence)
}
