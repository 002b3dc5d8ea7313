package director

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/consilium-ai/consilium/pkg/config"
	"github.com/consilium-ai/consilium/pkg/sanitize"
)

// Cost model: gpt-4o-mini-era list prices, kept as literal constants.
const (
	promptCostPer1K     = 0.00015
	completionCostPer1K = 0.0006
	fallbackConfidence  = 0.3
)

// transport is the one external call abstraction, so Adapter can be tested
// against a fake without a real openai-go/v3 client.
type transport interface {
	complete(ctx context.Context, systemPrompt, userPrompt string) (content string, promptTokens, completionTokens int, err error)
}

// Adapter is the Director Adapter: Call(DecisionCapsule) → DirectorDecision,
// via a sanitize.Sanitizer-compacted capsule and a transport (openai-go/v3
// in production).
type Adapter struct {
	transport transport
	metrics   *AdapterMetrics
}

// NewAdapter builds an Adapter around a transport and a shared metrics
// tracker.
func NewAdapter(t transport, metrics *AdapterMetrics) *Adapter {
	return &Adapter{transport: t, metrics: metrics}
}

// Call sends one DecisionCapsule to the Director LLM and returns its parsed
// decision plus this call's cost/latency stats. A transport error or an
// unparseable/invalid JSON response yields the fallback decision
// (confidence=0.3) rather than propagating an error, so the Active Director
// always has something to log and attach.
func (a *Adapter) Call(ctx context.Context, capsule sanitize.DecisionCapsule) (DirectorDecision, CallStats) {
	start := time.Now()
	prompt := buildDirectorPrompt(capsule)

	content, promptTokens, completionTokens, err := a.transport.complete(ctx, directorSystemPrompt, prompt)
	latency := time.Since(start)
	tokens := promptTokens + completionTokens
	cost := float64(promptTokens)*promptCostPer1K/1000 + float64(completionTokens)*completionCostPer1K/1000

	a.metrics.RecordCall(tokens, cost)

	if err != nil {
		return fallbackDecision(err), CallStats{Tokens: tokens, Cost: cost, Latency: latency, Error: true}
	}

	decision, parseErr := parseDirectorResponse(content)
	if parseErr != nil {
		return fallbackDecision(parseErr), CallStats{Tokens: tokens, Cost: cost, Latency: latency, Error: true}
	}
	return decision, CallStats{Tokens: tokens, Cost: cost, Latency: latency}
}

func fallbackDecision(err error) DirectorDecision {
	return DirectorDecision{
		Decision:        "Director unavailable - proceed with local decision",
		Risks:           []string{"Director service unavailable", "Decision made locally"},
		Recommendations: []string{"Manual review recommended", "Retry Director call later"},
		NextStep:        "Proceed with caution using local agents",
		Confidence:      fallbackConfidence,
		Reasoning:       fmt.Sprintf("Director call failed: %v", err),
		DecisionClass:   config.DecisionClassUnknown,
	}
}

type directorResponseJSON struct {
	Decision        string   `json:"decision"`
	Risks           []string `json:"risks"`
	Recommendations []string `json:"recommendations"`
	NextStep        string   `json:"next_step"`
	Confidence      float64  `json:"confidence"`
	Reasoning       string   `json:"reasoning"`
	DecisionClass   string   `json:"decisionClass"`
}

func parseDirectorResponse(content string) (DirectorDecision, error) {
	var raw directorResponseJSON
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return DirectorDecision{}, fmt.Errorf("director: invalid JSON response: %w", err)
	}
	if raw.Decision == "" {
		return DirectorDecision{}, fmt.Errorf("director: response missing \"decision\" field")
	}

	class := config.DecisionClass(raw.DecisionClass)
	if !class.IsValid() {
		class = config.DecisionClassUnknown
	}

	return DirectorDecision{
		Decision:        truncate(raw.Decision, decisionMaxChars),
		Risks:           raw.Risks,
		Recommendations: raw.Recommendations,
		NextStep:        truncate(raw.NextStep, nextStepMaxChars),
		Confidence:      clamp01(raw.Confidence),
		Reasoning:       raw.Reasoning,
		DecisionClass:   class,
	}, nil
}
