package config

// KBSourceConfig maps an agent role to the markdown file backing its
// knowledge base. A missing file is not an error: the role's chunk list
// is simply empty.
type KBSourceConfig struct {
	Path string `yaml:"path" validate:"required"`
}

// DomainTriggerConfig holds the strong/weak token tables the Router scores
// a single non-dev domain against.
type DomainTriggerConfig struct {
	Strong []string `yaml:"strong,omitempty"`
	Weak   []string `yaml:"weak,omitempty"`
}

// RouterConfig is the full set of trigger tables the Router scores a task
// against. Loaded as data (not code) so operators can tune trigger words
// without a rebuild; defaults ship baked in via builtin.go.
type RouterConfig struct {
	CriticalTriggers []string                       `yaml:"critical_triggers,omitempty"`
	Domains          map[AgentRole]DomainTriggerConfig `yaml:"domains,omitempty"`
}

// DirectorLimitsConfig holds the Active Director circuit breaker's base
// limits. Softened (×1.2) automatically for security+HIGH contexts.
type DirectorLimitsConfig struct {
	OverrideRateMax float64 `yaml:"override_rate_max,omitempty"`
	DailyCostMax    float64 `yaml:"daily_cost_max,omitempty"`
	ErrorRateMax    float64 `yaml:"error_rate_max,omitempty"`
	LatencyMaxSecs  float64 `yaml:"latency_max_seconds,omitempty"`
}

// DirectorYAMLConfig configures the Director Adapter and Active Director.
type DirectorYAMLConfig struct {
	Mode                DirectorMode          `yaml:"mode,omitempty"`
	PrefilterConfLT     float64               `yaml:"prefilter_conf_lt,omitempty"`
	LowConfLT           float64               `yaml:"low_conf_lt,omitempty"`
	DiffGTE             float64               `yaml:"diff_gte,omitempty"`
	MultiDomainGTE      int                   `yaml:"multi_domain_gte,omitempty"`
	Limits              *DirectorLimitsConfig `yaml:"limits,omitempty"`
	HighRiskKeywords    []string              `yaml:"high_risk_keywords,omitempty"`
	RollingWindowSize   int                   `yaml:"rolling_window_size,omitempty"`
	RecoveryMinCalls    int                   `yaml:"recovery_min_calls,omitempty"`
	RecoveryMaxOverride float64               `yaml:"recovery_max_override_rate,omitempty"`
}

// LLMEndpointConfig defines a single HTTP LLM endpoint (main panel LLM or
// the external Director LLM).
type LLMEndpointConfig struct {
	BaseURL            string  `yaml:"base_url" validate:"required"`
	Model              string  `yaml:"model" validate:"required"`
	APIKeyEnv          string  `yaml:"api_key_env,omitempty"`
	DefaultMaxTokens   int     `yaml:"default_max_tokens,omitempty" validate:"omitempty,min=1"`
	DefaultTemperature float64 `yaml:"default_temperature,omitempty"`
	TimeoutSeconds     int     `yaml:"timeout_seconds,omitempty" validate:"omitempty,min=1"`
	CostPer1KTokens    float64 `yaml:"cost_per_1k_tokens,omitempty"`
}

// ToolServerConfig defines the read-only Tool Server endpoint agents use for
// list_dir/read_file calls during Think's two-pass loop.
type ToolServerConfig struct {
	BaseURL     string `yaml:"base_url,omitempty"`
	TokenEnv    string `yaml:"token_env,omitempty"`
	TimeoutSecs int    `yaml:"timeout_seconds,omitempty" validate:"omitempty,min=1"`
}

// ResilienceConfig configures the process-wide LLM circuit breaker and retry
// policy shared by every agent's LLM client.
type ResilienceConfig struct {
	MaxRetries         int     `yaml:"max_retries,omitempty" validate:"omitempty,min=0"`
	BaseDelayMillis    int     `yaml:"base_delay_millis,omitempty" validate:"omitempty,min=1"`
	MaxDelayMillis     int     `yaml:"max_delay_millis,omitempty" validate:"omitempty,min=1"`
	FailureThreshold   int     `yaml:"failure_threshold,omitempty" validate:"omitempty,min=1"`
	RecoveryTimeoutSec int     `yaml:"recovery_timeout_seconds,omitempty" validate:"omitempty,min=1"`
}
