package config

import "sync"

// BuiltinConfig holds all built-in configuration data: default KB sources,
// router trigger tables, LLM providers, Director constants, and the
// Decision Capsule sanitization pattern table. Operator YAML merges over
// these via dario.cat/mergo.
type BuiltinConfig struct {
	KBSources        map[AgentRole]KBSourceConfig
	Router           RouterConfig
	LLMProviders     map[string]LLMEndpointConfig
	Director         DirectorYAMLConfig
	SanitizePatterns map[string]MaskingPattern
}

// MaskingPattern defines a regex-based sanitization pattern, consumed by
// pkg/sanitize to build its compiled redaction table.
type MaskingPattern struct {
	Pattern     string
	Replacement string
	Description string
}

var (
	builtinConfig     *BuiltinConfig
	builtinConfigOnce sync.Once
)

// GetBuiltinConfig returns the singleton built-in configuration (thread-safe,
// lazy-initialized).
func GetBuiltinConfig() *BuiltinConfig {
	builtinConfigOnce.Do(initBuiltinConfig)
	return builtinConfig
}

func initBuiltinConfig() {
	builtinConfig = &BuiltinConfig{
		KBSources:        initBuiltinKBSources(),
		Router:           initBuiltinRouter(),
		LLMProviders:     initBuiltinLLMProviders(),
		Director:         *DefaultDirectorConfig(),
		SanitizePatterns: initBuiltinSanitizePatterns(),
	}
}

// initBuiltinKBSources returns the default role->path KB mapping. All roles
// that can appear in a RoutingDecision get an entry, including director: the
// Director consults its own KB when building its prompt's background.
func initBuiltinKBSources() map[AgentRole]KBSourceConfig {
	return map[AgentRole]KBSourceConfig{
		AgentRoleDev:       {Path: "kb/dev.md"},
		AgentRoleSecurity:  {Path: "kb/security.md"},
		AgentRoleArchitect: {Path: "kb/architect.md"},
		AgentRoleQA:        {Path: "kb/qa.md"},
		AgentRoleUX:        {Path: "kb/ux.md"},
		AgentRoleSEO:       {Path: "kb/seo.md"},
		AgentRoleDirector:  {Path: "kb/director.md"},
	}
}

// initBuiltinRouter returns the built-in trigger tables the Router scores
// queries against.
func initBuiltinRouter() RouterConfig {
	return RouterConfig{
		CriticalTriggers: []string{
			"incident", "outage", "breach", "attack", "compromised",
			"emergency", "critical", "urgent", "production down",
		},
		Domains: map[AgentRole]DomainTriggerConfig{
			AgentRoleSecurity: {
				Strong: []string{"vulnerability", "exploit", "injection", "xss", "csrf", "auth", "authentication", "encryption", "breach", "penetration"},
				Weak:   []string{"security", "token", "password", "permission", "access", "certificate", "ssl", "tls"},
			},
			AgentRoleArchitect: {
				Strong: []string{"architecture", "microservice", "scalability", "distributed", "infrastructure", "migration"},
				Weak:   []string{"design", "pattern", "structure", "system", "service", "deployment"},
			},
			AgentRoleQA: {
				Strong: []string{"regression", "test coverage", "flaky", "test suite", "qa automation"},
				Weak:   []string{"test", "testing", "bug", "quality", "verify", "validation"},
			},
			AgentRoleSEO: {
				Strong: []string{"search ranking", "serp", "backlink", "meta description", "sitemap"},
				Weak:   []string{"seo", "keyword", "search engine", "indexing", "crawler"},
			},
			AgentRoleUX: {
				Strong: []string{"usability", "accessibility", "user research", "wireframe", "user flow"},
				Weak:   []string{"ux", "ui", "design", "interface", "interaction", "layout"},
			},
		},
	}
}

// initBuiltinLLMProviders returns placeholder endpoint configuration;
// operators supply real URLs/keys via consilium.yaml and .env.
func initBuiltinLLMProviders() map[string]LLMEndpointConfig {
	return map[string]LLMEndpointConfig{
		"main": {
			BaseURL:            "http://localhost:11434/v1",
			Model:              "llama3",
			APIKeyEnv:          "LLM_API_KEY",
			DefaultMaxTokens:   1024,
			DefaultTemperature: 0.2,
			TimeoutSeconds:     180,
		},
		"director": {
			BaseURL:            "https://api.openai.com/v1",
			Model:              "gpt-4o",
			APIKeyEnv:          "OPENAI_API_KEY",
			DefaultMaxTokens:   800,
			DefaultTemperature: 0.1,
			TimeoutSeconds:     60,
			CostPer1KTokens:    0.005,
		},
	}
}

// initBuiltinSanitizePatterns returns the Decision Capsule sanitization
// pattern table: api_key/token/password/secret, email addresses, and
// SSN-like patterns, each replaced with [REDACTED].
func initBuiltinSanitizePatterns() map[string]MaskingPattern {
	return map[string]MaskingPattern{
		"credential": {
			Pattern:     `(?i)(?:api[_-]?key|token|password|secret)[:=]\s*\S+`,
			Replacement: "[REDACTED]",
			Description: "API keys, tokens, passwords, secrets",
		},
		"email": {
			Pattern:     `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`,
			Replacement: "[REDACTED]",
			Description: "Email addresses",
		},
		"ssn": {
			Pattern:     `\b\d{3}-\d{2}-\d{4}\b`,
			Replacement: "[REDACTED]",
			Description: "SSN-like patterns",
		},
	}
}
