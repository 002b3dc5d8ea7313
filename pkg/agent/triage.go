package agent

import (
	"context"
	"regexp"
	"strings"

	"github.com/consilium-ai/consilium/pkg/config"
	"github.com/consilium-ai/consilium/pkg/llm"
)

const triageSystemPrompt = `You are a fast triage agent. Respond in exactly this format:
ANSWER: <text or 'ESCALATE'>
NEEDS_CONSILIUM: <yes|no>
REASON: <one sentence>
SUGGESTED_AGENTS: <comma list or 'none'>`

var (
	answerRe          = regexp.MustCompile(`(?mi)^ANSWER:\s*(.*)$`)
	needsConsiliumRe  = regexp.MustCompile(`(?mi)^NEEDS_CONSILIUM:\s*(yes|no)\b`)
	reasonRe          = regexp.MustCompile(`(?mi)^REASON:\s*(.*)$`)
	suggestedAgentsRe = regexp.MustCompile(`(?mi)^SUGGESTED_AGENTS:\s*(.*)$`)
)

// escalationKeywords is the bilingual fallback table used when
// NEEDS_CONSILIUM is absent from the raw response.
var escalationKeywords = []string{
	"security", "auth", "vuln", "injection", "incident", "migration",
	"безопасность", "авториз", "уязвим", "инъекц", "инцидент", "миграц",
}

// Triage makes one short LLM call in the strict ANSWER/NEEDS_CONSILIUM/
// REASON/SUGGESTED_AGENTS format and parses it with tolerant regexes,
// falling back to a bilingual keyword scan when NEEDS_CONSILIUM is absent
//.
func (a *Agent) Triage(ctx context.Context, task string) TriageResult {
	raw := a.call(ctx, []llm.Message{
		{Role: "system", Content: triageSystemPrompt},
		{Role: "user", Content: task},
	})

	return parseTriage(raw)
}

func parseTriage(raw string) TriageResult {
	result := TriageResult{RawResponse: raw}

	if m := answerRe.FindStringSubmatch(raw); m != nil {
		result.Answer = strings.TrimSpace(m[1])
	}
	if m := reasonRe.FindStringSubmatch(raw); m != nil {
		result.Reason = strings.TrimSpace(m[1])
	}
	if m := suggestedAgentsRe.FindStringSubmatch(raw); m != nil {
		result.SuggestedAgents = parseAgentList(m[1])
	}

	if m := needsConsiliumRe.FindStringSubmatch(raw); m != nil {
		result.NeedsConsilium = strings.EqualFold(strings.TrimSpace(m[1]), "yes")
		return result
	}

	result.NeedsConsilium = keywordEscalate(raw)
	if result.Reason == "" {
		result.Reason = "keyword fallback: NEEDS_CONSILIUM absent from response"
	}
	return result
}

func parseAgentList(raw string) []config.AgentRole {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "none") {
		return nil
	}

	var roles []config.AgentRole
	for _, part := range strings.Split(raw, ",") {
		role := config.AgentRole(strings.ToLower(strings.TrimSpace(part)))
		if role != "" && role.IsValid() {
			roles = append(roles, role)
		}
	}
	return roles
}

func keywordEscalate(raw string) bool {
	lowered := strings.ToLower(raw)
	for _, kw := range escalationKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
