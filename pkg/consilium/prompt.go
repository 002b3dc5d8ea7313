package consilium

import (
	"fmt"
	"strings"

	"github.com/consilium-ai/consilium/pkg/config"
	"github.com/consilium-ai/consilium/pkg/kb"
)

// rolePreambles are the fixed per-role specializations prepended to the
// task before KB annotation.
var rolePreambles = map[config.AgentRole]string{
	config.AgentRoleArchitect: "As a Software Architect, analyze this from the perspective of system design, scalability, and maintainability:",
	config.AgentRoleSecurity:  "As a Security Specialist, analyze this for potential security risks, vulnerabilities, and best practices:",
	config.AgentRoleQA:        "As a QA Engineer, analyze this for edge cases, test coverage, and potential bugs:",
	config.AgentRoleDev:       "As a Developer, provide a practical implementation perspective:",
	config.AgentRoleSEO:       "As an SEO Expert, analyze this for search engine optimization, discoverability, metadata, and content strategy:",
	config.AgentRoleUX:        "As a UX/UI Designer, analyze this for user experience, interface design, accessibility, and usability:",
}

// specializeTask builds one agent's prompt: its fixed preamble concatenated
// with the task, annotated with the role's KB retrieval ("top N/M chunks,
// U/Max chars").
func specializeTask(task string, role config.AgentRole, retrieval kb.RetrievalResult, maxChars int) string {
	preamble, ok := rolePreambles[role]
	var baseTask string
	if ok {
		baseTask = fmt.Sprintf("%s\n\n%s", preamble, task)
	} else {
		baseTask = task
	}

	if retrieval.Text == "" {
		return baseTask
	}

	return fmt.Sprintf(
		"%s\n\n=== YOUR KNOWLEDGE BASE (top %d/%d chunks, %d/%d chars) ===\n%s\n\nUse this knowledge base to inform your analysis.",
		baseTask, retrieval.ChunksUsed, retrieval.TotalChunks, retrieval.CharsUsed, maxChars, retrieval.Text,
	)
}

const directorPromptTemplate = `You are the Project Director. You have received opinions from your team:

%s

Original task: %s

Based on these opinions, provide:
1. DECISION: Your strategic decision
2. RATIONALE: Why you chose this approach
3. RISKS: Key risks to monitor
4. NEXT_STEPS: Recommended next actions

Be concise and decisive.`

// buildDirectorPrompt concatenates all (role, opinion) pairs plus the
// task and the four required headings.
func buildDirectorPrompt(task string, opinions map[config.AgentRole]AgentOpinion) string {
	roles := make([]config.AgentRole, 0, len(opinions))
	for role := range opinions {
		roles = append(roles, role)
	}

	var b strings.Builder
	for i, role := range roles {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "=== %s ===\n%s", strings.ToUpper(string(role)), opinions[role].OpinionText)
	}

	return fmt.Sprintf(directorPromptTemplate, b.String(), task)
}
