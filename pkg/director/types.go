// Package director implements the Director Adapter and the Active Director
// policy layer around it: a bounded Decision Capsule is sent to an
// external, more capable LLM, and a cost/quality governor (Pre-Filter,
// Circuit Breaker, Override Gate) decides whether the Director's answer may
// replace the Consilium panel's recommendation.
package director

import (
	"time"

	"github.com/consilium-ai/consilium/pkg/config"
)

// DirectorDecision is the Director LLM's structured response.
type DirectorDecision struct {
	Decision        string               `json:"decision"`
	Risks           []string             `json:"risks"`
	Recommendations []string             `json:"recommendations"`
	NextStep        string               `json:"next_step"`
	Confidence      float64              `json:"confidence"`
	Reasoning       string               `json:"reasoning"`
	DecisionClass   config.DecisionClass `json:"decisionClass,omitempty"`
}

const (
	decisionMaxChars = 200
	nextStepMaxChars = 100
)

// CallStats is one Director call's cost/latency/outcome, fed into both the
// circuit breaker's rolling window and the task-run log.
type CallStats struct {
	Tokens  int
	Cost    float64
	Latency time.Duration
	Error   bool
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
