// Package runtime wires every Consilium component into one process: the
// Router's trigger tables, the Consilium panel, the KB Store, the shared LLM
// Client/breaker, and the Active Director around its own Adapter and circuit
// breaker. Both cmd/consilium-server and cmd/consilium-cli build one Runtime
// from a config directory and drive it through Consult.
//
// Construction proceeds component by component, config first, then the KB
// store, the LLM client, the panel agents, and finally the Director, the
// same load order cmd/consilium-server follows at startup.
package runtime

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/consilium-ai/consilium/pkg/agent"
	"github.com/consilium-ai/consilium/pkg/config"
	"github.com/consilium-ai/consilium/pkg/consilium"
	"github.com/consilium-ai/consilium/pkg/director"
	"github.com/consilium-ai/consilium/pkg/kb"
	"github.com/consilium-ai/consilium/pkg/llm"
	"github.com/consilium-ai/consilium/pkg/sanitize"
	"github.com/consilium-ai/consilium/pkg/tasklog"
)

const (
	taskRunLogFile      = "task_run.jsonl"
	breakerEventLogFile = "director_circuit_breaker.jsonl"
)

// roleSystemPrompts seed each Agent's system prompt; Consilium's own
// specializeTask adds the per-call task-specific preamble on top of this.
var roleSystemPrompts = map[config.AgentRole]string{
	config.AgentRoleDev:       "You are the Developer agent on a multi-agent engineering review panel. Give concrete, implementation-focused opinions.",
	config.AgentRoleSecurity:  "You are the Security agent on a multi-agent engineering review panel. Focus on vulnerabilities, exploits, and mitigations.",
	config.AgentRoleArchitect: "You are the Architect agent on a multi-agent engineering review panel. Focus on system design, scalability, and maintainability.",
	config.AgentRoleQA:        "You are the QA agent on a multi-agent engineering review panel. Focus on test coverage, edge cases, and regressions.",
	config.AgentRoleUX:        "You are the UX agent on a multi-agent engineering review panel. Focus on usability and accessibility.",
	config.AgentRoleSEO:       "You are the SEO agent on a multi-agent engineering review panel. Focus on discoverability and content strategy.",
	config.AgentRoleDirector:  "You are the Director agent on a multi-agent engineering review panel. Synthesize the team's opinions into one decision.",
}

// Runtime is every long-lived component the admin API and CLI share.
type Runtime struct {
	Config         *config.Config
	KBStore        *kb.Store
	Consilium      *consilium.Consilium
	ActiveDirector *director.ActiveDirector
	LLMBreaker     *llm.CircuitBreaker
	DirectorBreaker *director.CircuitBreaker
	AdapterMetrics *director.AdapterMetrics
	RunLog         *tasklog.Log
	EventLog       *director.EventLog

	startedAt time.Time
}

// New loads configuration from configDir and constructs every component:
// Router tables, Consilium panel agents, KB Store, Director Adapter and
// Active Director. Env-sourced values (OPENAI_API_KEY, LLM_URL,
// DIRECTOR_LLM_URL, DIRECTOR_MODEL, TOOL_SERVER_URL, TOOL_SERVER_TOKEN) are
// read directly and override the loaded config where set.
func New(ctx context.Context, configDir string) (*Runtime, error) {
	cfg, err := config.Initialize(ctx, configDir)
	if err != nil {
		return nil, fmt.Errorf("runtime: %w", err)
	}

	kbStore := kb.NewStore(cfg.Defaults.KBTopK, cfg.Defaults.KBMaxChars, cfg.Defaults.KBCacheSize)
	if err := kbStore.Load(cfg.KBSourceRegistry); err != nil {
		return nil, fmt.Errorf("runtime: loading KB store: %w", err)
	}

	llmBreaker := llm.NewCircuitBreaker(cfg.Resilience.FailureThreshold, time.Duration(cfg.Resilience.RecoveryTimeoutSec)*time.Second)

	mainProvider, err := cfg.GetLLMProvider("main")
	if err != nil {
		return nil, fmt.Errorf("runtime: %w", err)
	}
	mainProviderOverridden := *mainProvider
	if url := os.Getenv("LLM_URL"); url != "" {
		mainProviderOverridden.BaseURL = url
	}
	mainClient := llm.NewClient(&mainProviderOverridden, os.Getenv(mainProvider.APIKeyEnv), cfg.Resilience, llmBreaker)

	var toolClient *agent.ToolClient
	if toolURL := os.Getenv("TOOL_SERVER_URL"); toolURL != "" || cfg.ToolServer.BaseURL != "" {
		toolCfg := *cfg.ToolServer
		if toolURL != "" {
			toolCfg.BaseURL = toolURL
		}
		toolClient = agent.NewToolClient(&toolCfg, os.Getenv("TOOL_SERVER_TOKEN"))
	}

	agents := make(map[config.AgentRole]*agent.Agent, len(roleSystemPrompts))
	for role, system := range roleSystemPrompts {
		agents[role] = agent.NewAgent(role, string(role), system, mainClient, toolClient, mainProvider.DefaultMaxTokens)
	}

	staticRouting := consilium.StaticRouting{Mode: cfg.Defaults.ConsiliumMode, Agents: []config.AgentRole{config.AgentRoleDev}}
	consiliumInst := consilium.NewConsilium(
		agents,
		kbStore,
		cfg.Defaults.KBTopK,
		cfg.Defaults.KBMaxChars,
		cfg.CriticalTriggers,
		cfg.DomainTriggerRegistry,
		staticRouting,
		mainClient,
	)

	directorProvider, err := cfg.GetLLMProvider("director")
	if err != nil {
		return nil, fmt.Errorf("runtime: %w", err)
	}
	directorBaseURL := directorProvider.BaseURL
	if url := os.Getenv("DIRECTOR_LLM_URL"); url != "" {
		directorBaseURL = url
	}
	directorModel := directorProvider.Model
	if model := os.Getenv("DIRECTOR_MODEL"); model != "" {
		directorModel = model
	}
	directorAPIKey := os.Getenv("OPENAI_API_KEY")
	if keyEnv := directorProvider.APIKeyEnv; keyEnv != "" && keyEnv != "OPENAI_API_KEY" {
		if v := os.Getenv(keyEnv); v != "" {
			directorAPIKey = v
		}
	}

	adapterMetrics := director.NewAdapterMetrics()
	adapter := director.NewOpenAIAdapter(directorBaseURL, directorAPIKey, directorModel, adapterMetrics)

	runLog := tasklog.NewLog(filepath.Join(configDir, taskRunLogFile))
	eventLog := director.NewEventLog(filepath.Join(configDir, breakerEventLogFile))

	directorBreaker := director.NewCircuitBreaker(cfg.Director.Mode, *cfg.Director.Limits, cfg.Director.RollingWindowSize, eventLog)
	sanitizer := sanitize.New()
	activeDirector := director.NewActiveDirector(adapter, directorBreaker, sanitizer, runLog, cfg.Director)

	return &Runtime{
		Config:          cfg,
		KBStore:         kbStore,
		Consilium:       consiliumInst,
		ActiveDirector:  activeDirector,
		LLMBreaker:      llmBreaker,
		DirectorBreaker: directorBreaker,
		AdapterMetrics:  adapterMetrics,
		RunLog:          runLog,
		EventLog:        eventLog,
		startedAt:       time.Now(),
	}, nil
}

// ConsultOutcome bundles a Consilium result with whatever the Active Director
// decided, the shape POST /v1/consult returns.
type ConsultOutcome struct {
	Result   *consilium.ConsiliumResult
	Director director.Outcome
}

// Consult runs the full pipeline for one task: Router + Consilium fan-out,
// then the Active Director's Steps A-F against the result. When the
// Director's override gate fires, its decision replaces the Consilium
// recommendation's decision summary as the authoritative answer. taskID is
// caller-supplied, e.g. a UUID minted by pkg/api.
func (r *Runtime) Consult(ctx context.Context, taskID, task string) (*ConsultOutcome, error) {
	result, err := r.Consilium.Consult(ctx, task, true, false)
	if err != nil {
		return nil, err
	}

	outcome := r.ActiveDirector.Consult(ctx, taskID, task, result)
	if outcome.OverrideApplied && outcome.Decision != nil {
		result.Recommendation.DecisionSummary = outcome.Decision.Decision
	}
	return &ConsultOutcome{Result: result, Director: outcome}, nil
}

// Stats is the admin API's GET /v1/status payload.
type Stats struct {
	UptimeSeconds   float64
	ConfigStats     config.Stats
	KBVersionHash   string
	LLMBreakerState config.CircuitState
	DirectorMode    config.DirectorMode
	DirectorMetrics director.RollingMetrics
	AdapterMetrics  director.MetricsSnapshot
}

// Status reports every read-locked status surface in one call.
func (r *Runtime) Status() Stats {
	breakerStatus := r.DirectorBreaker.Status()
	return Stats{
		UptimeSeconds:   time.Since(r.startedAt).Seconds(),
		ConfigStats:     r.Config.Stats(),
		KBVersionHash:   r.KBStore.VersionHash(),
		LLMBreakerState: r.LLMBreaker.State(),
		DirectorMode:    breakerStatus.Mode,
		DirectorMetrics: breakerStatus.Metrics,
		AdapterMetrics:  r.AdapterMetrics.Snapshot(),
	}
}

// TaskRuns tails the last limit entries of the task-run log.
func (r *Runtime) TaskRuns(limit int) ([]tasklog.TaskRunRecord, error) {
	return r.RunLog.Tail(limit)
}
