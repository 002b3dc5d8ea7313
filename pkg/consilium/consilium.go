package consilium

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/consilium-ai/consilium/pkg/agent"
	"github.com/consilium-ai/consilium/pkg/config"
	"github.com/consilium-ai/consilium/pkg/kb"
	"github.com/consilium-ai/consilium/pkg/llm"
	"github.com/consilium-ai/consilium/pkg/router"
)

// maxWorkers bounds the fan-out worker pool to min(numAgents, 6).
const maxWorkers = 6

const directorDecisionSummaryChars = 300

// Consilium coordinates one task's panel consultation: it owns every panel
// agent (including the internal "director" role agent, distinct from the
// external Director Adapter in pkg/director), the shared KB Store, and the
// Router's trigger tables. Grounded on pkg/agent/orchestrator/runner.go's
// SubAgentRunner concurrency shape (reservation-free here since the worker
// count is fixed up front, not dynamically dispatched).
type Consilium struct {
	agents           map[config.AgentRole]*agent.Agent
	kbStore          *kb.Store
	kbTopK           int
	kbMaxChars       int
	criticalTriggers []string
	domains          *config.DomainTriggerRegistry
	staticRouting    StaticRouting
	probeClient      *llm.Client
}

// NewConsilium builds a Consilium from its constituent agents and shared
// infrastructure. probeClient is used only for the optional health check.
func NewConsilium(
	agents map[config.AgentRole]*agent.Agent,
	kbStore *kb.Store,
	kbTopK, kbMaxChars int,
	criticalTriggers []string,
	domains *config.DomainTriggerRegistry,
	staticRouting StaticRouting,
	probeClient *llm.Client,
) *Consilium {
	return &Consilium{
		agents:           agents,
		kbStore:          kbStore,
		kbTopK:           kbTopK,
		kbMaxChars:       kbMaxChars,
		criticalTriggers: criticalTriggers,
		domains:          domains,
		staticRouting:    staticRouting,
		probeClient:      probeClient,
	}
}

// Consult runs the full panel consultation algorithm.
func (c *Consilium) Consult(ctx context.Context, task string, smartRouting, checkHealth bool) (*ConsiliumResult, error) {
	start := time.Now()

	if checkHealth {
		if err := c.healthCheck(ctx); err != nil {
			return nil, err
		}
	}

	var (
		mode            config.Mode
		selectedAgents  []config.AgentRole
		includeDirector bool
		routingInfo     RoutingInfo
	)

	if smartRouting {
		decision := router.Route(task, c.criticalTriggers, c.domains)
		mode = decision.Mode
		routingInfo = routingDecisionToInfo(decision)
		for role := range decision.Agents {
			if role == config.AgentRoleDirector {
				includeDirector = true
				continue
			}
			selectedAgents = append(selectedAgents, role)
		}
	} else {
		mode = c.staticRouting.Mode
		routingInfo = RoutingInfo{SmartRouting: false, Mode: mode}
		for _, role := range c.staticRouting.Agents {
			if role == config.AgentRoleDirector {
				includeDirector = true
				continue
			}
			selectedAgents = append(selectedAgents, role)
		}
	}

	opinions, kbStats := c.fanOut(ctx, task, selectedAgents)
	agentsParallel := time.Since(start)

	var directorDecision string
	var directorDuration time.Duration
	if includeDirector {
		directorStart := time.Now()
		if directorAgent, ok := c.agents[config.AgentRoleDirector]; ok {
			directorDecision = directorAgent.Think(ctx, buildDirectorPrompt(task, opinions))
		}
		directorDuration = time.Since(directorStart)
	}

	result := &ConsiliumResult{
		Task:             task,
		Mode:             mode,
		Opinions:         opinions,
		DirectorDecision: directorDecision,
		Recommendation:   buildRecommendation(opinions, directorDecision),
		Routing:          routingInfo,
		KBConfig: KBRetrievalConfig{
			TopK:          c.kbTopK,
			MaxChars:      c.kbMaxChars,
			KBVersionHash: c.kbStore.VersionHash(),
		},
		KBStatsPerAgent: kbStats,
		Timing: Timing{
			AgentsParallel: agentsParallel,
			Director:       directorDuration,
			Total:          time.Since(start),
		},
	}
	return result, nil
}

// fanOut consults every selected agent in parallel, bounded by a worker
// pool of size min(len(agents), 6).
func (c *Consilium) fanOut(ctx context.Context, task string, roles []config.AgentRole) (map[config.AgentRole]AgentOpinion, map[config.AgentRole]kb.RetrievalResult) {
	opinions := make(map[config.AgentRole]AgentOpinion, len(roles))
	kbStats := make(map[config.AgentRole]kb.RetrievalResult, len(roles))

	if len(roles) == 0 {
		return opinions, kbStats
	}

	workers := len(roles)
	if workers > maxWorkers {
		workers = maxWorkers
	}

	jobs := make(chan config.AgentRole, len(roles))
	for _, role := range roles {
		jobs <- role
	}
	close(jobs)

	type outcome struct {
		role     config.AgentRole
		opinion  AgentOpinion
		kbResult kb.RetrievalResult
	}
	results := make(chan outcome, len(roles))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for role := range jobs {
				opinion, kbResult := c.runAgent(ctx, task, role)
				results <- outcome{role: role, opinion: opinion, kbResult: kbResult}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		opinions[r.role] = r.opinion
		kbStats[r.role] = r.kbResult
	}
	return opinions, kbStats
}

// runAgent retrieves the role's KB context, invokes Think, and absorbs any
// failure into an error opinion rather than aborting the consult.
func (c *Consilium) runAgent(ctx context.Context, task string, role config.AgentRole) (AgentOpinion, kb.RetrievalResult) {
	retrieval := c.kbStore.Retrieve(role, task)

	a, ok := c.agents[role]
	if !ok {
		return AgentOpinion{
			Role:        role,
			OpinionText: fmt.Sprintf("Error: no agent registered for role %s", role),
			Confidence:  0,
			KBStats:     retrieval,
		}, retrieval
	}

	specialized := specializeTask(task, role, retrieval, c.kbMaxChars)

	opinionText := func() (text string) {
		defer func() {
			if r := recover(); r != nil {
				text = fmt.Sprintf("Error: %v", r)
			}
		}()
		return a.Think(ctx, specialized)
	}()

	if strings.HasPrefix(opinionText, "[LLM_") {
		return AgentOpinion{
			Role:        role,
			OpinionText: fmt.Sprintf("Error: %s", opinionText),
			Confidence:  0,
			KBStats:     retrieval,
		}, retrieval
	}

	truncated := truncateOpinion(opinionText)
	return AgentOpinion{
		Role:        role,
		OpinionText: truncated,
		Confidence:  extractConfidence(truncated),
		KBStats:     retrieval,
	}, retrieval
}

// buildRecommendation aggregates collected opinions into the final
// recommendation.
func buildRecommendation(opinions map[config.AgentRole]AgentOpinion, directorDecision string) Recommendation {
	var sum float64
	agentsInvolved := make([]config.AgentRole, 0, len(opinions))
	for role, op := range opinions {
		sum += op.Confidence
		agentsInvolved = append(agentsInvolved, role)
	}

	avg := defaultConfidence
	if len(opinions) > 0 {
		avg = sum / float64(len(opinions))
	}

	summary := "No director decision"
	if directorDecision != "" {
		summary = truncateTo(directorDecision, directorDecisionSummaryChars)
	}

	return Recommendation{
		ConfidenceLevel: avg,
		TeamConsensus:   avg > teamConsensusThresh,
		DecisionSummary: summary,
		AgentsInvolved:  agentsInvolved,
	}
}

func truncateTo(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return text[:n]
}

// healthCheck probes the LLM with a minimal 1-token request before spending
// any fan-out work.
func (c *Consilium) healthCheck(ctx context.Context) error {
	if c.probeClient == nil {
		return nil
	}
	text, _ := c.probeClient.Complete(ctx, []llm.Message{{Role: "user", Content: "ping"}}, 1)
	if strings.HasPrefix(text, "[LLM_") {
		return &HealthCheckError{ProbeResult: text}
	}
	return nil
}
