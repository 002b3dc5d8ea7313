// Package consilium implements the Consilium coordinator: it fans a task
// out to the routed panel agents in parallel, collects their opinions, and
// (when routed) sequences a director-agent call after the fan-out join.
package consilium

import (
	"time"

	"github.com/consilium-ai/consilium/pkg/config"
	"github.com/consilium-ai/consilium/pkg/kb"
	"github.com/consilium-ai/consilium/pkg/router"
)

// AgentOpinion is one panel agent's contribution to a Consult call.
type AgentOpinion struct {
	Role        config.AgentRole
	OpinionText string // truncated to 500 chars
	Confidence  float64
	KBStats     kb.RetrievalResult
}

// Recommendation is the aggregate judgment built from all collected
// opinions and (if called) the director agent's decision text.
type Recommendation struct {
	ConfidenceLevel float64
	TeamConsensus   bool
	DecisionSummary string
	AgentsInvolved  []config.AgentRole
}

// RoutingInfo records how agents were selected for this Consult call.
type RoutingInfo struct {
	SmartRouting    bool
	Mode            config.Mode
	Confidence      float64
	DomainsMatched  int
	TriggersMatched map[config.AgentRole][]string
	Downgraded      bool
	Reason          string
}

// KBRetrievalConfig mirrors the store's configured limits, recorded
// alongside per-agent retrieval stats for observability.
type KBRetrievalConfig struct {
	TopK          int
	MaxChars      int
	KBVersionHash string
}

// Timing reports wall-clock durations for the fan-out and director phases;
// sections are additive only through Total.
type Timing struct {
	AgentsParallel time.Duration
	Director       time.Duration
	Total          time.Duration
}

// ConsiliumResult is the full output of one Consult call.
type ConsiliumResult struct {
	Task             string
	Mode             config.Mode
	Opinions         map[config.AgentRole]AgentOpinion
	DirectorDecision string // empty if the director agent was not included
	Recommendation   Recommendation
	Routing          RoutingInfo
	KBConfig         KBRetrievalConfig
	KBStatsPerAgent  map[config.AgentRole]kb.RetrievalResult
	Timing           Timing
}

// HealthCheckError is returned by Consult when checkHealth is requested and
// the LLM probe fails; it carries the probe's raw result for diagnostics.
type HealthCheckError struct {
	ProbeResult string
}

func (e *HealthCheckError) Error() string {
	return "LLM health check failed: " + e.ProbeResult
}

// StaticRouting is the fallback agent selection used when smartRouting is
// false: a statically configured {mode, agentList} pair.
type StaticRouting struct {
	Mode   config.Mode
	Agents []config.AgentRole
}

// routingDecisionToInfo adapts a router.RoutingDecision into the
// ConsiliumResult's RoutingInfo shape.
func routingDecisionToInfo(d router.RoutingDecision) RoutingInfo {
	return RoutingInfo{
		SmartRouting:    true,
		Mode:            d.Mode,
		Confidence:      d.Confidence,
		DomainsMatched:  d.DomainsMatched,
		TriggersMatched: d.TriggersMatched,
		Downgraded:      d.Downgraded,
		Reason:          d.Reason,
	}
}
