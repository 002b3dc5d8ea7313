package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/consilium-ai/consilium/pkg/config"
)

func TestRedact_CredentialEmailSSN(t *testing.T) {
	s := New()

	out := s.Redact("api_key: sk-abc123 contact me@example.com ssn 123-45-6789")

	assert.NotContains(t, out, "sk-abc123")
	assert.NotContains(t, out, "me@example.com")
	assert.NotContains(t, out, "123-45-6789")
	assert.Contains(t, out, "[REDACTED]")
}

func TestRedact_LeavesPlainTextUntouched(t *testing.T) {
	s := New()
	out := s.Redact("this is a perfectly normal sentence about testing")
	assert.Equal(t, "this is a perfectly normal sentence about testing", out)
}

func TestCompact_ProblemSummaryTrimmedAndTagged(t *testing.T) {
	s := New()
	longTask := strings.Repeat("x", 300)

	capsule := s.Compact(longTask, 0.82, 2, nil, nil, config.RiskLevelMedium)

	assert.Contains(t, capsule.ProblemSummary, "[conf:0.82, domains:2]")
	assert.LessOrEqual(t, len(capsule.ProblemSummary), problemSummaryTaskChars+len(" [conf:0.82, domains:2]"))
}

func TestCompact_FactsCappedAtEight(t *testing.T) {
	s := New()
	facts := make([]string, 20)
	for i := range facts {
		facts[i] = "fact"
	}

	capsule := s.Compact("task", 0.5, 1, facts, nil, config.RiskLevelLow)

	assert.Len(t, capsule.Facts, maxFacts)
}

func TestCompact_AgentSummaryBudgetsDifferBySecurityRole(t *testing.T) {
	s := New()
	opinions := map[config.AgentRole]string{
		config.AgentRoleSecurity: strings.Repeat("we recommend rotating credentials immediately. ", 10),
		config.AgentRoleDev:      strings.Repeat("we recommend refactoring this module. ", 10),
	}

	capsule := s.Compact("task", 0.5, 1, nil, opinions, config.RiskLevelHigh)

	assert.LessOrEqual(t, len(capsule.AgentSummaries[config.AgentRoleSecurity]), securitySummaryBudget)
	assert.LessOrEqual(t, len(capsule.AgentSummaries[config.AgentRoleDev]), defaultSummaryBudget)
}

func TestCompact_NormalizesCodeBackticksAndPaths(t *testing.T) {
	s := New()
	opinion := "you should check ```def f(): pass``` and `inline` and src/pkg/file.go"

	capsule := s.Compact("task", 0.5, 0, nil, map[config.AgentRole]string{config.AgentRoleDev: opinion}, config.RiskLevelLow)

	out := capsule.AgentSummaries[config.AgentRoleDev]
	assert.NotContains(t, out, "def f(): pass")
	assert.NotContains(t, out, "src/pkg/file.go")
}
