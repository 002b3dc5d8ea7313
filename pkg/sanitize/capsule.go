package sanitize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/consilium-ai/consilium/pkg/config"
)

// DecisionCapsule is the size-bounded, sanitized payload sent to the
// Director LLM. Compact normalizes code fences, inline code and file paths
// in agent opinions to "[code]"/"[ref]"/"[file]"; the problem summary and
// facts are redacted but not normalized.
type DecisionCapsule struct {
	ProblemSummary  string
	Facts           []string
	AgentSummaries  map[config.AgentRole]string
	RiskLevel       config.RiskLevel
	Confidence      float64
	OverrideContext map[string]any
}

const (
	problemSummaryTaskChars = 150
	maxFacts                = 8
	securitySummaryBudget   = 120
	defaultSummaryBudget    = 80
)

var (
	codeFenceRe = regexp.MustCompile("(?s)```.*?```")
	backtickRe  = regexp.MustCompile("`[^`]*`")
	filePathRe  = regexp.MustCompile(`\b(?:[\w.\-]+/)+[\w.\-]+\.[A-Za-z0-9]+\b`)
	sentenceRe  = regexp.MustCompile(`[^.!?]*\b(?:recommend|suggest|should|must|need to)\b[^.!?]*[.!?]?`)
)

// Compact builds a DecisionCapsule from raw routing/agent data, applying
// summary trimming, an 8-bullet fact cap, per-agent summary reduction to a
// single recommendation sentence, and code/backtick/file-path
// normalization, then mandatory redaction of every string field via Redact.
func (s *Sanitizer) Compact(
	taskText string,
	confidence float64,
	domainsMatched int,
	facts []string,
	agentOpinions map[config.AgentRole]string,
	riskLevel config.RiskLevel,
) DecisionCapsule {
	trimmedTask := taskText
	if len(trimmedTask) > problemSummaryTaskChars {
		trimmedTask = trimmedTask[:problemSummaryTaskChars]
	}
	problemSummary := s.Redact(fmt.Sprintf("%s [conf:%.2f, domains:%d]", trimmedTask, confidence, domainsMatched))

	if len(facts) > maxFacts {
		facts = facts[:maxFacts]
	}
	boundedFacts := make([]string, len(facts))
	for i, f := range facts {
		boundedFacts[i] = s.Redact(f)
	}

	summaries := make(map[config.AgentRole]string, len(agentOpinions))
	for role, opinion := range agentOpinions {
		budget := defaultSummaryBudget
		if role == config.AgentRoleSecurity {
			budget = securitySummaryBudget
		}
		summaries[role] = s.reduceOpinion(opinion, budget)
	}

	return DecisionCapsule{
		ProblemSummary: problemSummary,
		Facts:          boundedFacts,
		AgentSummaries: summaries,
		RiskLevel:      riskLevel,
		Confidence:     confidence,
	}
}

// reduceOpinion reduces a free-form agent opinion to one recommendation
// sentence, normalizes code/backticks/paths, redacts, and truncates to
// budget characters.
func (s *Sanitizer) reduceOpinion(opinion string, budget int) string {
	normalized := codeFenceRe.ReplaceAllString(opinion, "[code]")
	normalized = backtickRe.ReplaceAllString(normalized, "[ref]")
	normalized = filePathRe.ReplaceAllString(normalized, "[file]")

	sentence := normalized
	if m := sentenceRe.FindString(normalized); m != "" {
		sentence = strings.TrimSpace(m)
	}

	sentence = s.Redact(sentence)
	if len(sentence) > budget {
		sentence = sentence[:budget]
	}
	return sentence
}
