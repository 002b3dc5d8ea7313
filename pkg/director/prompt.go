package director

import (
	"fmt"
	"strings"

	"github.com/consilium-ai/consilium/pkg/sanitize"
)

const directorSystemPrompt = "You are an expert AI Director making architectural decisions."

// directorPromptTemplate mirrors director_adapter.py's create_director_prompt
// exactly: the same TASK SUMMARY/FACTS/AGENT SUMMARIES/RISK LEVEL/CONFIDENCE
// sections and the same required JSON response shape.
const directorPromptTemplate = `You are the Director of a multi-agent AI system. Your role is to make final decisions based on agent summaries.

TASK SUMMARY:
%s

FACTS:
%s

AGENT SUMMARIES:
%s

RISK LEVEL: %s
CONFIDENCE: %.2f

Please provide your decision in this EXACT JSON format:
{
  "decision": "Clear, actionable decision (max 200 chars)",
  "risks": ["Risk 1", "Risk 2"],
  "recommendations": ["Rec 1", "Rec 2", "Rec 3"],
  "next_step": "One specific next action (max 100 chars)",
  "confidence": 0.85,
  "reasoning": "Brief explanation of decision logic"
}

Focus on:
1. Architecture and security implications
2. Risk mitigation
3. One clear next step
4. Practical recommendations`

func buildDirectorPrompt(capsule sanitize.DecisionCapsule) string {
	var facts strings.Builder
	for _, f := range capsule.Facts {
		fmt.Fprintf(&facts, "- %s\n", f)
	}

	var summaries strings.Builder
	for role, summary := range capsule.AgentSummaries {
		fmt.Fprintf(&summaries, "%s: %s\n", role, summary)
	}

	return fmt.Sprintf(
		directorPromptTemplate,
		capsule.ProblemSummary,
		strings.TrimRight(facts.String(), "\n"),
		strings.TrimRight(summaries.String(), "\n"),
		capsule.RiskLevel,
		capsule.Confidence,
	)
}
