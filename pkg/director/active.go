package director

import (
	"context"
	"fmt"
	"time"

	"github.com/consilium-ai/consilium/pkg/config"
	"github.com/consilium-ai/consilium/pkg/consilium"
	"github.com/consilium-ai/consilium/pkg/sanitize"
	"github.com/consilium-ai/consilium/pkg/tasklog"
)

// ActiveDirector orchestrates Steps A-F around one Director Adapter: risk
// determination, the Pre-Filter, the circuit breaker gate, the Override
// Gate, soft-override-candidate bookkeeping, and the task-run log write.
type ActiveDirector struct {
	adapter   *Adapter
	breaker   *CircuitBreaker
	sanitizer *sanitize.Sanitizer
	runLog    *tasklog.Log
	cfg       *config.DirectorYAMLConfig
}

// NewActiveDirector wires an Adapter, a CircuitBreaker, a Sanitizer, and the
// task-run log together.
func NewActiveDirector(adapter *Adapter, breaker *CircuitBreaker, sanitizer *sanitize.Sanitizer, runLog *tasklog.Log, cfg *config.DirectorYAMLConfig) *ActiveDirector {
	return &ActiveDirector{adapter: adapter, breaker: breaker, sanitizer: sanitizer, runLog: runLog, cfg: cfg}
}

// Outcome is what Consult returns: whether the Director was called, whether
// its override was applied, and, whenever it was called, its decision. The
// decision replaces the Consilium recommendation only when OverrideApplied
// is true; otherwise it is non-authoritative.
type Outcome struct {
	Called          bool
	OverrideApplied bool
	Decision        *DirectorDecision
	RiskLevel       config.RiskLevel
}

// Consult runs Steps A-F for one task against one Consilium result.
func (d *ActiveDirector) Consult(ctx context.Context, taskID, task string, result *consilium.ConsiliumResult) Outcome {
	roles := make([]config.AgentRole, 0, len(result.Opinions))
	for role := range result.Opinions {
		roles = append(roles, role)
	}

	risk := DetermineRisk(task, roles, result.Routing.Confidence, result.Routing.DomainsMatched, d.cfg.HighRiskKeywords)
	preFilter := PreFilter(risk, result.Routing.Confidence, result.Routing.DomainsMatched, d.cfg)

	record := tasklog.TaskRunRecord{
		TaskID:              taskID,
		Timestamp:           time.Now(),
		TaskSummary:         tasklog.SummarizeTask(d.sanitizer.Redact(task)),
		Domains:             roles,
		RiskLevel:           risk,
		ConsiliumConfidence: result.Routing.Confidence,
		PreFilter: tasklog.PreFilterRecord{
			Passed:       preFilter.Skip,
			ReasonTokens: preFilter.ReasonTokens,
			Thresholds:   preFilter.Thresholds,
		},
	}

	if preFilter.Skip {
		d.writeLog(record)
		return Outcome{Called: false, RiskLevel: risk}
	}

	_, hasSecurity := result.Opinions[config.AgentRoleSecurity]
	securityHigh := risk == config.RiskLevelHigh && hasSecurity

	call, effectiveMode := d.breaker.ShouldCallDirector(securityHigh)
	if !call {
		record.Director = tasklog.DirectorRunRecord{Called: false}
		d.writeLog(record)
		return Outcome{Called: false, RiskLevel: risk}
	}

	capsule := d.buildCapsule(task, result, risk)
	decision, stats := d.adapter.Call(ctx, capsule)

	rawMode := d.breaker.Mode()
	gate := EvaluateOverrideGate(rawMode, effectiveMode, risk, result.Routing.Confidence, decision.Confidence, d.cfg)

	now := time.Now()
	d.breaker.RecordCall(gate.Applied, stats.Cost, stats.Latency.Seconds(), stats.Error, securityHigh, now)

	tokens := d.adapter.metrics.PerCallTokenDelta()
	cost := stats.Cost
	latency := stats.Latency.Seconds()
	directorConf := decision.Confidence
	confDiff := decision.Confidence - result.Routing.Confidence

	record.Director = tasklog.DirectorRunRecord{
		Called:                   true,
		OverrideApplied:          gate.Applied,
		SoftOverrideCandidate:    gate.SoftOverrideCandidate,
		ShadowSoftAllowCandidate: gate.ShadowSoftAllowCandidate,
		OverrideReason:           gate.Reason,
		DirectorConfidence:       &directorConf,
		ConfidenceDiff:           &confDiff,
		Tokens:                   &tokens,
		Cost:                     &cost,
		LatencySeconds:           &latency,
	}
	d.writeLog(record)

	return Outcome{Called: true, OverrideApplied: gate.Applied, Decision: &decision, RiskLevel: risk}
}

// buildCapsule assembles the Decision Capsule's facts: confidence, agent
// count, downgrade flag, and a security-review flag when security opined.
func (d *ActiveDirector) buildCapsule(task string, result *consilium.ConsiliumResult, risk config.RiskLevel) sanitize.DecisionCapsule {
	opinions := make(map[config.AgentRole]string, len(result.Opinions))
	for role, op := range result.Opinions {
		opinions[role] = op.OpinionText
	}

	facts := []string{
		fmt.Sprintf("Confidence: %.2f", result.Routing.Confidence),
		fmt.Sprintf("Agents: %d", len(result.Opinions)),
	}
	if result.Routing.Downgraded {
		facts = append(facts, "Task downgraded")
	}
	if _, ok := result.Opinions[config.AgentRoleSecurity]; ok {
		facts = append(facts, "Security review required")
	}

	return d.sanitizer.Compact(task, result.Routing.Confidence, result.Routing.DomainsMatched, facts, opinions, risk)
}

func (d *ActiveDirector) writeLog(record tasklog.TaskRunRecord) {
	if d.runLog == nil {
		return
	}
	_ = d.runLog.Append(record)
}
