package director

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consilium-ai/consilium/pkg/config"
	"github.com/consilium-ai/consilium/pkg/consilium"
	"github.com/consilium-ai/consilium/pkg/sanitize"
	"github.com/consilium-ai/consilium/pkg/tasklog"
)

func newTestActiveDirector(t *testing.T, mode config.DirectorMode, transport transport) (*ActiveDirector, *tasklog.Log) {
	t.Helper()
	cfg := config.DefaultDirectorConfig()
	cfg.Mode = mode

	runLog := tasklog.NewLog(filepath.Join(t.TempDir(), "task-runs.jsonl"))
	breaker := NewCircuitBreaker(mode, *cfg.Limits, cfg.RollingWindowSize, nil)
	adapter := NewAdapter(transport, NewAdapterMetrics())
	sanitizer := sanitize.New()

	return NewActiveDirector(adapter, breaker, sanitizer, runLog, cfg), runLog
}

func calmConsiliumResult() *consilium.ConsiliumResult {
	return &consilium.ConsiliumResult{
		Opinions: map[config.AgentRole]consilium.AgentOpinion{
			config.AgentRoleDev: {Role: config.AgentRoleDev, OpinionText: "looks fine", Confidence: 0.9},
		},
		Routing: consilium.RoutingInfo{Confidence: 0.90, DomainsMatched: 1},
	}
}

func riskyConsiliumResult() *consilium.ConsiliumResult {
	return &consilium.ConsiliumResult{
		Opinions: map[config.AgentRole]consilium.AgentOpinion{
			config.AgentRoleSecurity: {Role: config.AgentRoleSecurity, OpinionText: "needs review", Confidence: 0.5},
			config.AgentRoleDev:      {Role: config.AgentRoleDev, OpinionText: "proceed", Confidence: 0.5},
		},
		Routing: consilium.RoutingInfo{Confidence: 0.5, DomainsMatched: 2},
	}
}

func TestActiveDirector_Consult_CalmTaskSkipsDirectorAndLogsCalmTask(t *testing.T) {
	d, runLog := newTestActiveDirector(t, config.DirectorModeActive, &fakeTransport{})

	outcome := d.Consult(context.Background(), "task-1", "improve layout spacing", calmConsiliumResult())

	assert.False(t, outcome.Called)
	assert.Equal(t, config.RiskLevelLow, outcome.RiskLevel)

	records, err := runLog.Tail(10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].PreFilter.Passed)
	assert.Contains(t, records[0].PreFilter.ReasonTokens, "calm_task")
}

func TestActiveDirector_Consult_DirectorOffModeNeverCalls(t *testing.T) {
	d, runLog := newTestActiveDirector(t, config.DirectorModeOff, &fakeTransport{})

	outcome := d.Consult(context.Background(), "task-2", "rotate the auth token urgently", riskyConsiliumResult())

	assert.False(t, outcome.Called)

	records, err := runLog.Tail(10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Director.Called)
}

func TestActiveDirector_Consult_AppliesOverrideWhenGatesPass(t *testing.T) {
	transport := &fakeTransport{
		content:          `{"decision":"rotate now","confidence":0.95,"next_step":"rotate","reasoning":"high confidence"}`,
		promptTokens:     50,
		completionTokens: 30,
	}
	d, runLog := newTestActiveDirector(t, config.DirectorModeActive, transport)

	outcome := d.Consult(context.Background(), "task-3", "rotate the auth token urgently", riskyConsiliumResult())

	require.True(t, outcome.Called)
	assert.True(t, outcome.OverrideApplied)
	require.NotNil(t, outcome.Decision)
	assert.Equal(t, "rotate now", outcome.Decision.Decision)

	records, err := runLog.Tail(10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Director.Called)
	assert.True(t, records[0].Director.OverrideApplied)
	require.NotNil(t, records[0].Director.DirectorConfidence)
	assert.Equal(t, 0.95, *records[0].Director.DirectorConfidence)
}

func TestActiveDirector_Consult_AttachesNonAuthoritativeReviewWhenGateFails(t *testing.T) {
	transport := &fakeTransport{
		content:          `{"decision":"proceed anyway","confidence":0.55,"next_step":"proceed","reasoning":"marginal improvement"}`,
		promptTokens:     50,
		completionTokens: 30,
	}
	d, runLog := newTestActiveDirector(t, config.DirectorModeActive, transport)

	outcome := d.Consult(context.Background(), "task-4", "rotate the auth token urgently", riskyConsiliumResult())

	require.True(t, outcome.Called)
	assert.False(t, outcome.OverrideApplied)
	require.NotNil(t, outcome.Decision)

	records, err := runLog.Tail(10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Director.OverrideApplied)
}

func TestActiveDirector_Consult_ShadowModeNeverAppliesOverrideWithoutSecurityHighBypass(t *testing.T) {
	transport := &fakeTransport{
		content:          `{"decision":"rotate now","confidence":0.95,"next_step":"rotate","reasoning":"high confidence"}`,
		promptTokens:     50,
		completionTokens: 30,
	}
	d, _ := newTestActiveDirector(t, config.DirectorModeShadow, transport)

	// Medium risk (low confidence, no security opinion, no high-risk
	// keyword): the security+HIGH bypass never triggers, so this call stays
	// under shadow mode's effective mode and can never apply an override.
	mediumRiskResult := &consilium.ConsiliumResult{
		Opinions: map[config.AgentRole]consilium.AgentOpinion{
			config.AgentRoleDev: {Role: config.AgentRoleDev, OpinionText: "proceed", Confidence: 0.5},
		},
		Routing: consilium.RoutingInfo{Confidence: 0.5, DomainsMatched: 1},
	}

	outcome := d.Consult(context.Background(), "task-5", "improve layout spacing", mediumRiskResult)

	require.True(t, outcome.Called)
	assert.False(t, outcome.OverrideApplied)
}
