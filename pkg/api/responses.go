package api

import (
	"github.com/consilium-ai/consilium/pkg/config"
	"github.com/consilium-ai/consilium/pkg/consilium"
	"github.com/consilium-ai/consilium/pkg/director"
)

// OpinionResponse is one panel agent's contribution, as returned over HTTP.
type OpinionResponse struct {
	Role        config.AgentRole `json:"role"`
	OpinionText string           `json:"opinionText"`
	Confidence  float64          `json:"confidence"`
}

// RoutingResponse reports how agents were selected for a consult call.
type RoutingResponse struct {
	SmartRouting    bool                          `json:"smartRouting"`
	Mode            config.Mode                   `json:"mode"`
	Confidence      float64                       `json:"confidence"`
	DomainsMatched  int                           `json:"domainsMatched"`
	TriggersMatched map[config.AgentRole][]string `json:"triggersMatched,omitempty"`
	Downgraded      bool                          `json:"downgraded"`
	Reason          string                        `json:"reason,omitempty"`
}

// RecommendationResponse is the aggregate judgment built from the panel's
// opinions.
type RecommendationResponse struct {
	ConfidenceLevel float64            `json:"confidenceLevel"`
	TeamConsensus   bool               `json:"teamConsensus"`
	DecisionSummary string             `json:"decisionSummary"`
	AgentsInvolved  []config.AgentRole `json:"agentsInvolved"`
}

// DirectorOutcomeResponse reports whether the Active Director was called
// and whether its override applied. Decision is present whenever the
// Director was called; it replaces the panel's recommendation only when
// OverrideApplied is true.
type DirectorOutcomeResponse struct {
	Called          bool                     `json:"called"`
	OverrideApplied bool                     `json:"overrideApplied"`
	RiskLevel       config.RiskLevel         `json:"riskLevel"`
	Decision        *director.DirectorDecision `json:"decision,omitempty"`
}

// ConsultResponse is returned by POST /v1/consult.
type ConsultResponse struct {
	Task             string                           `json:"task"`
	Mode             config.Mode                      `json:"mode"`
	Opinions         map[config.AgentRole]OpinionResponse `json:"opinions"`
	DirectorDecision string                           `json:"directorDecision,omitempty"`
	Recommendation   RecommendationResponse           `json:"recommendation"`
	Routing          RoutingResponse                  `json:"routing"`
	Director         DirectorOutcomeResponse          `json:"director"`
}

func newConsultResponse(result *consilium.ConsiliumResult, outcome director.Outcome) ConsultResponse {
	opinions := make(map[config.AgentRole]OpinionResponse, len(result.Opinions))
	for role, op := range result.Opinions {
		opinions[role] = OpinionResponse{Role: op.Role, OpinionText: op.OpinionText, Confidence: op.Confidence}
	}

	return ConsultResponse{
		Task:             result.Task,
		Mode:             result.Mode,
		Opinions:         opinions,
		DirectorDecision: result.DirectorDecision,
		Recommendation: RecommendationResponse{
			ConfidenceLevel: result.Recommendation.ConfidenceLevel,
			TeamConsensus:   result.Recommendation.TeamConsensus,
			DecisionSummary: result.Recommendation.DecisionSummary,
			AgentsInvolved:  result.Recommendation.AgentsInvolved,
		},
		Routing: RoutingResponse{
			SmartRouting:    result.Routing.SmartRouting,
			Mode:            result.Routing.Mode,
			Confidence:      result.Routing.Confidence,
			DomainsMatched:  result.Routing.DomainsMatched,
			TriggersMatched: result.Routing.TriggersMatched,
			Downgraded:      result.Routing.Downgraded,
			Reason:          result.Routing.Reason,
		},
		Director: DirectorOutcomeResponse{
			Called:          outcome.Called,
			OverrideApplied: outcome.OverrideApplied,
			RiskLevel:       outcome.RiskLevel,
			Decision:        outcome.Decision,
		},
	}
}

// ConfigStatsResponse mirrors config.Stats.
type ConfigStatsResponse struct {
	KBSources    int `json:"kbSources"`
	Domains      int `json:"domains"`
	LLMProviders int `json:"llmProviders"`
}

// DirectorMetricsResponse mirrors director.RollingMetrics.
type DirectorMetricsResponse struct {
	CallsInWindow int     `json:"callsInWindow"`
	OverrideRate  float64 `json:"overrideRate"`
	ErrorRate     float64 `json:"errorRate"`
	AvgLatency    float64 `json:"avgLatency"`
	Cost24h       float64 `json:"cost24h"`
}

// AdapterMetricsResponse mirrors director.MetricsSnapshot.
type AdapterMetricsResponse struct {
	CallsToday  int     `json:"callsToday"`
	TotalTokens int     `json:"totalTokens"`
	TotalCost   float64 `json:"totalCost"`
}

// StatusResponse is returned by GET /v1/status.
type StatusResponse struct {
	UptimeSeconds   float64                  `json:"uptimeSeconds"`
	Config          ConfigStatsResponse      `json:"config"`
	KBVersionHash   string                   `json:"kbVersionHash"`
	LLMBreakerState config.CircuitState      `json:"llmBreakerState"`
	DirectorMode    config.DirectorMode      `json:"directorMode"`
	DirectorMetrics DirectorMetricsResponse  `json:"directorMetrics"`
	AdapterMetrics  AdapterMetricsResponse   `json:"adapterMetrics"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
