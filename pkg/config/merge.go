package config

// mergeKBSources merges built-in and user-defined KB source mappings.
// User-defined paths override built-in paths for the same role.
func mergeKBSources(builtin map[AgentRole]KBSourceConfig, user map[AgentRole]KBSourceConfig) map[AgentRole]*KBSourceConfig {
	result := make(map[AgentRole]*KBSourceConfig, len(builtin))
	for role, src := range builtin {
		srcCopy := src
		result[role] = &srcCopy
	}
	for role, src := range user {
		srcCopy := src
		result[role] = &srcCopy
	}
	return result
}

// mergeDomains merges built-in and user-defined router domain tables.
// A user-defined domain entirely replaces the built-in entry of the same
// role (strong/weak tables are not merged token-by-token).
func mergeDomains(builtin map[AgentRole]DomainTriggerConfig, user map[AgentRole]DomainTriggerConfig) map[AgentRole]DomainTriggerConfig {
	result := make(map[AgentRole]DomainTriggerConfig, len(builtin))
	for role, dom := range builtin {
		result[role] = dom
	}
	for role, dom := range user {
		result[role] = dom
	}
	return result
}

// mergeLLMProviders merges built-in and user-defined LLM provider
// configurations. User-defined providers override built-in providers with
// the same name.
func mergeLLMProviders(builtin map[string]LLMEndpointConfig, user map[string]LLMEndpointConfig) map[string]*LLMEndpointConfig {
	result := make(map[string]*LLMEndpointConfig, len(builtin))
	for name, p := range builtin {
		pCopy := p
		result[name] = &pCopy
	}
	for name, p := range user {
		pCopy := p
		result[name] = &pCopy
	}
	return result
}
