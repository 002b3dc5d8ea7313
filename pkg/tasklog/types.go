// Package tasklog implements the append-only Task Run Log: one JSON object
// per line per task, capped to a 100-char task summary and never carrying
// the task body. A mutex-guarded writer appends newline-delimited JSON to a
// single file under one O_APPEND|O_CREATE|O_WRONLY open, with a bounded
// tail reader for the admin API.
package tasklog

import (
	"time"

	"github.com/consilium-ai/consilium/pkg/config"
)

// PreFilterRecord captures the Active Director's Step B decision.
type PreFilterRecord struct {
	Passed       bool               `json:"passed"`
	ReasonTokens []string           `json:"reasonTokens"`
	Thresholds   map[string]float64 `json:"thresholds"`
}

// DirectorRunRecord captures everything about the Director call for one
// task, or its absence. Per invariant (4), when Called is false every
// numeric field below stays nil.
type DirectorRunRecord struct {
	Called                   bool     `json:"called"`
	OverrideApplied          bool     `json:"overrideApplied"`
	SoftOverrideCandidate    bool     `json:"softOverrideCandidate"`
	ShadowSoftAllowCandidate bool     `json:"shadowSoftAllowCandidate"`
	OverrideReason           string   `json:"overrideReason,omitempty"`
	DirectorConfidence       *float64 `json:"directorConfidence"`
	ConfidenceDiff           *float64 `json:"confidenceDiff"`
	Tokens                   *int     `json:"tokens"`
	Cost                     *float64 `json:"cost"`
	LatencySeconds           *float64 `json:"latencySeconds"`
}

// TaskRunRecord is the append-only log schema. TaskSummary is the only
// place task text may appear, capped to 100 chars.
type TaskRunRecord struct {
	TaskID              string             `json:"taskId"`
	Timestamp           time.Time          `json:"timestamp"`
	TaskSummary         string             `json:"taskSummary"`
	Domains             []config.AgentRole `json:"domains"`
	RiskLevel           config.RiskLevel   `json:"riskLevel"`
	ConsiliumConfidence float64            `json:"consiliumConfidence"`
	PreFilter           PreFilterRecord    `json:"preFilter"`
	Director            DirectorRunRecord  `json:"director"`
}

const taskSummaryMaxChars = 100

// SummarizeTask trims task text to the TaskRunRecord's 100-char bound
// (invariant (1): task text never appears in the log beyond this summary).
func SummarizeTask(task string) string {
	if len(task) <= taskSummaryMaxChars {
		return task
	}
	return task[:taskSummaryMaxChars]
}
