// Package router implements the Router: a pure classification function that
// maps a free-form task into an execution mode and agent set.
package router

import "github.com/consilium-ai/consilium/pkg/config"

// RoutingDecision is immutable after construction.
type RoutingDecision struct {
	Mode            config.Mode
	Agents          map[config.AgentRole]bool
	Confidence      float64
	DomainsMatched  int
	TriggersMatched map[config.AgentRole][]string
	Downgraded      bool
	Reason          string
}

// HasAgent reports whether role is part of this decision's agent set.
func (d RoutingDecision) HasAgent(role config.AgentRole) bool {
	return d.Agents[role]
}
