package consilium

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consilium-ai/consilium/pkg/agent"
	"github.com/consilium-ai/consilium/pkg/config"
	"github.com/consilium-ai/consilium/pkg/kb"
	"github.com/consilium-ai/consilium/pkg/llm"
)

// fixedResponseAgent builds a real *agent.Agent backed by an httptest server
// that always answers with responseText, so Think is deterministic in tests.
func fixedResponseAgent(t *testing.T, role config.AgentRole, responseText string) *agent.Agent {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": responseText}}},
		})
		w.Write(body)
	}))
	t.Cleanup(srv.Close)

	endpoint := &config.LLMEndpointConfig{BaseURL: srv.URL, Model: "test-model", TimeoutSeconds: 5}
	breaker := llm.NewCircuitBreaker(5, time.Minute)
	resilience := &config.ResilienceConfig{MaxRetries: 1, BaseDelayMillis: 1, MaxDelayMillis: 5}
	llmClient := llm.NewClient(endpoint, "", resilience, breaker)

	return agent.NewAgent(role, string(role)+"-1", "system prompt for "+string(role), llmClient, nil, 500)
}

func testDomainsForConsilium() *config.DomainTriggerRegistry {
	return config.NewDomainTriggerRegistry(map[config.AgentRole]config.DomainTriggerConfig{
		config.AgentRoleSecurity: {Strong: []string{"vulnerability"}},
	})
}

func TestConsult_StaticRoutingFanOutCollectsAllOpinions(t *testing.T) {
	agents := map[config.AgentRole]*agent.Agent{
		config.AgentRoleDev:      fixedResponseAgent(t, config.AgentRoleDev, "looks good, confidence 8"),
		config.AgentRoleSecurity: fixedResponseAgent(t, config.AgentRoleSecurity, "no issues, confidence 7"),
	}
	store := kb.NewStore(5, 4000, 10)

	c := NewConsilium(agents, store, 5, 4000, nil, testDomainsForConsilium(),
		StaticRouting{Mode: config.ModeStandard, Agents: []config.AgentRole{config.AgentRoleDev, config.AgentRoleSecurity}},
		nil)

	result, err := c.Consult(context.Background(), "refactor the auth module", false, false)

	require.NoError(t, err)
	assert.Len(t, result.Opinions, 2)
	assert.Contains(t, result.Opinions, config.AgentRoleDev)
	assert.Contains(t, result.Opinions, config.AgentRoleSecurity)
	assert.Equal(t, 0.8, result.Opinions[config.AgentRoleDev].Confidence)
	assert.Empty(t, result.DirectorDecision)
}

func TestConsult_DirectorIncludedSequencedAfterFanOut(t *testing.T) {
	agents := map[config.AgentRole]*agent.Agent{
		config.AgentRoleDev:      fixedResponseAgent(t, config.AgentRoleDev, "dev opinion, confidence 6"),
		config.AgentRoleDirector: fixedResponseAgent(t, config.AgentRoleDirector, "DECISION: ship it\nRATIONALE: fine\nRISKS: none\nNEXT_STEPS: deploy"),
	}
	store := kb.NewStore(5, 4000, 10)

	c := NewConsilium(agents, store, 5, 4000, nil, testDomainsForConsilium(),
		StaticRouting{Mode: config.ModeCritical, Agents: []config.AgentRole{config.AgentRoleDev, config.AgentRoleDirector}},
		nil)

	result, err := c.Consult(context.Background(), "production outage", false, false)

	require.NoError(t, err)
	assert.Contains(t, result.DirectorDecision, "DECISION: ship it")
	assert.NotContains(t, result.Opinions, config.AgentRoleDirector)
	assert.NotEqual(t, "No director decision", result.Recommendation.DecisionSummary)
}

func TestConsult_AgentFailureYieldsErrorOpinionWithoutAborting(t *testing.T) {
	failingSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(failingSrv.Close)

	endpoint := &config.LLMEndpointConfig{BaseURL: failingSrv.URL, Model: "test-model", TimeoutSeconds: 5}
	breaker := llm.NewCircuitBreaker(5, time.Minute)
	resilience := &config.ResilienceConfig{MaxRetries: 0, BaseDelayMillis: 1, MaxDelayMillis: 1}
	failingClient := llm.NewClient(endpoint, "", resilience, breaker)
	failingAgent := agent.NewAgent(config.AgentRoleQA, "qa-1", "qa system", failingClient, nil, 500)

	agents := map[config.AgentRole]*agent.Agent{
		config.AgentRoleDev: fixedResponseAgent(t, config.AgentRoleDev, "fine, confidence 9"),
		config.AgentRoleQA:  failingAgent,
	}
	store := kb.NewStore(5, 4000, 10)

	c := NewConsilium(agents, store, 5, 4000, nil, testDomainsForConsilium(),
		StaticRouting{Mode: config.ModeStandard, Agents: []config.AgentRole{config.AgentRoleDev, config.AgentRoleQA}},
		nil)

	result, err := c.Consult(context.Background(), "some task", false, false)

	require.NoError(t, err)
	assert.Len(t, result.Opinions, 2)
	assert.Contains(t, result.Opinions[config.AgentRoleQA].OpinionText, "Error:")
	assert.Equal(t, 0.0, result.Opinions[config.AgentRoleQA].Confidence)
}

func TestConsult_HealthCheckFailurePreemptsFanOut(t *testing.T) {
	downSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(downSrv.Close)

	endpoint := &config.LLMEndpointConfig{BaseURL: downSrv.URL, Model: "test-model", TimeoutSeconds: 5}
	breaker := llm.NewCircuitBreaker(5, time.Minute)
	resilience := &config.ResilienceConfig{MaxRetries: 0, BaseDelayMillis: 1, MaxDelayMillis: 1}
	probeClient := llm.NewClient(endpoint, "", resilience, breaker)

	agents := map[config.AgentRole]*agent.Agent{
		config.AgentRoleDev: fixedResponseAgent(t, config.AgentRoleDev, "should never be called"),
	}
	store := kb.NewStore(5, 4000, 10)

	c := NewConsilium(agents, store, 5, 4000, nil, testDomainsForConsilium(),
		StaticRouting{Mode: config.ModeFast, Agents: []config.AgentRole{config.AgentRoleDev}},
		probeClient)

	result, err := c.Consult(context.Background(), "anything", false, true)

	assert.Nil(t, result)
	require.Error(t, err)
	var healthErr *HealthCheckError
	assert.ErrorAs(t, err, &healthErr)
}
