package config

// Defaults contains system-wide default configuration values. These are
// used when consilium.yaml doesn't specify a value explicitly.
type Defaults struct {
	// ConsiliumMode is the static fallback mode used when smart routing is
	// disabled for a Consult call.
	ConsiliumMode Mode `yaml:"consilium_mode,omitempty"`

	// KBTopK is the max number of chunks returned per retrieval.
	KBTopK int `yaml:"kb_top_k,omitempty" validate:"omitempty,min=1"`

	// KBMaxChars is the max characters returned per retrieval.
	KBMaxChars int `yaml:"kb_max_chars,omitempty" validate:"omitempty,min=1"`

	// KBCacheSize is the Retrieval Cache's LRU capacity.
	KBCacheSize int `yaml:"kb_cache_size,omitempty" validate:"omitempty,min=1"`
}

// DefaultDefaults returns the built-in system-wide defaults, used as the
// base that consilium.yaml's `defaults:` block merges over.
func DefaultDefaults() *Defaults {
	return &Defaults{
		ConsiliumMode: ModeFast,
		KBTopK:        5,
		KBMaxChars:    4000,
		KBCacheSize:   128,
	}
}

// DefaultResilienceConfig returns the built-in LLM client retry/breaker
// tuning, matching the spec's suggested defaults (§4.3).
func DefaultResilienceConfig() *ResilienceConfig {
	return &ResilienceConfig{
		MaxRetries:         3,
		BaseDelayMillis:    500,
		MaxDelayMillis:     8000,
		FailureThreshold:   5,
		RecoveryTimeoutSec: 60,
	}
}

// DefaultDirectorConfig returns the built-in Active Director constants.
func DefaultDirectorConfig() *DirectorYAMLConfig {
	return &DirectorYAMLConfig{
		Mode:            DirectorModeShadow,
		PrefilterConfLT: 0.75,
		LowConfLT:       0.70,
		DiffGTE:         0.10,
		MultiDomainGTE:  3,
		Limits: &DirectorLimitsConfig{
			OverrideRateMax: 0.75,
			DailyCostMax:    0.01,
			ErrorRateMax:    0.10,
			LatencyMaxSecs:  6.0,
		},
		HighRiskKeywords:    []string{"auth", "token", "password", "payment", "migration", "vulnerability", "security"},
		RollingWindowSize:   20,
		RecoveryMinCalls:    10,
		RecoveryMaxOverride: 0.65,
	}
}

// DefaultToolServerConfig returns the built-in Tool Server client tuning.
func DefaultToolServerConfig() *ToolServerConfig {
	return &ToolServerConfig{
		TimeoutSecs: 15,
	}
}
