// Package sanitize implements mandatory Decision Capsule redaction and
// compaction before a Director LLM call: a fail-closed regex sweep plus the
// capsule compaction rules (problem-summary trimming, per-agent summary
// reduction, code/backtick/path elision) the Director Adapter applies before
// sending anything off-process.
package sanitize

import (
	"log/slog"
	"regexp"

	"github.com/consilium-ai/consilium/pkg/config"
)

// Sanitizer holds the compiled built-in redaction patterns. Created once at
// startup and reused as a stateless, thread-safe singleton.
type Sanitizer struct {
	patterns []*compiledPattern
}

type compiledPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// New compiles the sanitization pattern table from config.GetBuiltinConfig.
// Invalid patterns are logged and skipped rather than failing startup.
func New() *Sanitizer {
	s := &Sanitizer{}
	for name, p := range config.GetBuiltinConfig().SanitizePatterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			slog.Error("failed to compile sanitize pattern, skipping", "pattern", name, "error", err)
			continue
		}
		s.patterns = append(s.patterns, &compiledPattern{name: name, regex: re, replacement: p.Replacement})
	}
	return s
}

// Redact applies every compiled pattern to text, replacing matches with
// their configured replacement ("[REDACTED]" for the built-in set). This is
// the mandatory pre-send step: it must run over every string field of a
// DecisionCapsule before the capsule reaches the Director LLM.
func (s *Sanitizer) Redact(text string) string {
	for _, p := range s.patterns {
		text = p.regex.ReplaceAllString(text, p.replacement)
	}
	return text
}
