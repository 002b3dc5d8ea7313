package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// ConsiliumYAMLConfig represents the complete consilium.yaml file structure.
type ConsiliumYAMLConfig struct {
	Defaults   *Defaults                     `yaml:"defaults"`
	Director   *DirectorYAMLConfig           `yaml:"director"`
	ToolServer *ToolServerConfig             `yaml:"tool_server"`
	Resilience *ResilienceConfig            `yaml:"resilience"`
	KBSources  map[AgentRole]KBSourceConfig  `yaml:"kb_sources"`
	Router     *RouterConfig                 `yaml:"router"`
	LLM        map[string]LLMEndpointConfig  `yaml:"llm"`
}

// Initialize loads, validates, and returns ready-to-use configuration. This
// is the primary entry point for configuration loading.
//
// Steps performed:
//  1. Load consilium.yaml from configDir
//  2. Expand environment variables
//  3. Merge built-in + user-defined configuration
//  4. Build in-memory registries
//  5. Apply default values
//  6. Validate all configuration
//  7. Return Config ready for use
func Initialize(ctx context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("Initializing configuration")

	cfg, err := load(ctx, configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	stats := cfg.Stats()
	log.Info("Configuration initialized successfully",
		"kb_sources", stats.KBSources,
		"domains", stats.Domains,
		"llm_providers", stats.LLMProviders)

	return cfg, nil
}

func load(_ context.Context, configDir string) (*Config, error) {
	loader := &configLoader{configDir: configDir}

	userConfig, err := loader.loadConsiliumYAML()
	if err != nil {
		return nil, NewLoadError("consilium.yaml", err)
	}

	builtin := GetBuiltinConfig()

	kbSources := mergeKBSources(builtin.KBSources, userConfig.KBSources)
	userDomains := map[AgentRole]DomainTriggerConfig{}
	userCritical := builtin.Router.CriticalTriggers
	if userConfig.Router != nil {
		userDomains = userConfig.Router.Domains
		if len(userConfig.Router.CriticalTriggers) > 0 {
			userCritical = userConfig.Router.CriticalTriggers
		}
	}
	domains := mergeDomains(builtin.Router.Domains, userDomains)
	llmProviders := mergeLLMProviders(builtin.LLMProviders, userConfig.LLM)

	kbSourceRegistry := NewKBSourceRegistry(kbSources)
	domainTriggerRegistry := NewDomainTriggerRegistry(domains)
	llmProviderRegistry := NewLLMProviderRegistry(llmProviders)

	defaults := DefaultDefaults()
	if userConfig.Defaults != nil {
		if err := mergo.Merge(defaults, userConfig.Defaults, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge defaults: %w", err)
		}
	}

	director := DefaultDirectorConfig()
	if userConfig.Director != nil {
		if err := mergo.Merge(director, userConfig.Director, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge director config: %w", err)
		}
	}
	toolServer := DefaultToolServerConfig()
	if userConfig.ToolServer != nil {
		if err := mergo.Merge(toolServer, userConfig.ToolServer, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge tool server config: %w", err)
		}
	}

	resilience := DefaultResilienceConfig()
	if userConfig.Resilience != nil {
		if err := mergo.Merge(resilience, userConfig.Resilience, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge resilience config: %w", err)
		}
	}

	return &Config{
		configDir:             configDir,
		Defaults:              defaults,
		Director:              director,
		ToolServer:            toolServer,
		Resilience:            resilience,
		CriticalTriggers:      userCritical,
		KBSourceRegistry:      kbSourceRegistry,
		DomainTriggerRegistry: domainTriggerRegistry,
		LLMProviderRegistry:   llmProviderRegistry,
	}, nil
}

func validate(cfg *Config) error {
	v := NewValidator(cfg)
	return v.ValidateAll()
}

type configLoader struct {
	configDir string
}

func (l *configLoader) loadYAML(filename string, target any) error {
	path := filepath.Join(l.configDir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return err
	}

	// Expand ${VAR} and $VAR references from the environment; unset
	// variables expand to the empty string.
	data = ExpandEnv(data)

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return nil
}

func (l *configLoader) loadConsiliumYAML() (*ConsiliumYAMLConfig, error) {
	var cfg ConsiliumYAMLConfig
	cfg.KBSources = make(map[AgentRole]KBSourceConfig)
	cfg.LLM = make(map[string]LLMEndpointConfig)

	path := filepath.Join(l.configDir, "consilium.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// consilium.yaml is optional: an operator may run entirely on
		// built-in defaults plus environment variables.
		return &cfg, nil
	}

	if err := l.loadYAML("consilium.yaml", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
