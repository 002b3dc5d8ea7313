package config

// Config is the umbrella configuration object that encapsulates all
// registries, defaults, and configuration state. This is the primary object
// returned by Initialize() and threaded through internal/runtime.Runtime.
type Config struct {
	configDir string

	Defaults   *Defaults
	Director   *DirectorYAMLConfig
	ToolServer *ToolServerConfig
	Resilience *ResilienceConfig

	// CriticalTriggers is the Router's critical-trigger token table, merged
	// from built-in defaults and any consilium.yaml `router.critical_triggers`
	// override.
	CriticalTriggers []string

	KBSourceRegistry      *KBSourceRegistry
	DomainTriggerRegistry *DomainTriggerRegistry
	LLMProviderRegistry   *LLMProviderRegistry
}

// Stats contains statistics about loaded configuration, exposed at the
// /v1/status admin endpoint.
type Stats struct {
	KBSources    int
	Domains      int
	LLMProviders int
}

// Stats returns configuration statistics for logging/monitoring.
func (c *Config) Stats() Stats {
	return Stats{
		KBSources:    c.KBSourceRegistry.Len(),
		Domains:      c.DomainTriggerRegistry.Len(),
		LLMProviders: c.LLMProviderRegistry.Len(),
	}
}

// ConfigDir returns the configuration directory path.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// GetLLMProvider retrieves an LLM provider configuration by name. This is a
// convenience method wrapping LLMProviderRegistry.Get().
func (c *Config) GetLLMProvider(name string) (*LLMEndpointConfig, error) {
	return c.LLMProviderRegistry.Get(name)
}
