package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/consilium-ai/consilium/pkg/config"
)

const (
	strongBaseScore   = 0.8
	weakBaseScore     = 0.4
	perMatchStep      = 0.1
	perMatchCap       = 0.2
	criticalMode3Plus = 0.7
)

// domainScore is a domain's scoring result for one Route call.
type domainScore struct {
	role   config.AgentRole
	score  float64
	tokens []string
}

// Route classifies query into a RoutingDecision using case-insensitive
// substring matching against the critical-trigger table and the per-domain
// strong/weak token tables. It is a pure function: identical inputs always
// produce an identical decision.
func Route(query string, criticalTriggers []string, domains *config.DomainTriggerRegistry) RoutingDecision {
	lowered := strings.ToLower(query)

	if trigger, ok := matchAny(lowered, criticalTriggers); ok {
		agents := map[config.AgentRole]bool{config.AgentRoleDev: true, config.AgentRoleDirector: true}
		for _, role := range config.AllDomainRoles {
			agents[role] = true
		}
		return RoutingDecision{
			Mode:           config.ModeCritical,
			Agents:         agents,
			Confidence:     1.0,
			DomainsMatched: len(config.AllDomainRoles),
			Reason:         fmt.Sprintf("critical trigger matched: %q", trigger),
		}
	}

	var matched []domainScore
	triggersMatched := make(map[config.AgentRole][]string)

	for _, role := range config.AllDomainRoles {
		dom, err := domains.Get(role)
		if err != nil {
			continue
		}

		strongTokens := matchAllTokens(lowered, dom.Strong)
		weakTokens := matchAllTokens(lowered, dom.Weak)

		var score float64
		switch {
		case len(strongTokens) > 0:
			score = strongBaseScore + minFloat(float64(len(strongTokens))*perMatchStep, perMatchCap)
		case len(weakTokens) > 0:
			score = weakBaseScore + minFloat(float64(len(weakTokens))*perMatchStep, perMatchCap)
		default:
			continue
		}

		tokens := append(append([]string{}, strongTokens...), weakTokens...)
		triggersMatched[role] = tokens
		matched = append(matched, domainScore{role: role, score: score, tokens: tokens})
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].role < matched[j].role })

	d := len(matched)

	if d == 0 {
		return RoutingDecision{
			Mode:           config.ModeFast,
			Agents:         map[config.AgentRole]bool{config.AgentRoleDev: true},
			Confidence:     1.0,
			DomainsMatched: 0,
			Reason:         "no domain triggers matched; default FAST",
		}
	}

	var sum float64
	for _, m := range matched {
		sum += m.score
	}
	confidence := sum / float64(d)

	agents := map[config.AgentRole]bool{config.AgentRoleDev: true}
	for _, m := range matched {
		agents[m.role] = true
	}

	topTokens := topTokensOf(matched)

	switch {
	case d == 1:
		return RoutingDecision{
			Mode: config.ModeStandard, Agents: agents, Confidence: confidence,
			DomainsMatched: d, TriggersMatched: triggersMatched,
			Reason: fmt.Sprintf("single domain matched (%s); top tokens: %s", matched[0].role, topTokens),
		}
	case d == 2:
		return RoutingDecision{
			Mode: config.ModeStandard, Agents: agents, Confidence: confidence,
			DomainsMatched: d, TriggersMatched: triggersMatched,
			Reason: fmt.Sprintf("two domains matched; top tokens: %s", topTokens),
		}
	default: // d >= 3
		if confidence >= criticalMode3Plus {
			agents[config.AgentRoleDirector] = true
			return RoutingDecision{
				Mode: config.ModeCritical, Agents: agents, Confidence: confidence,
				DomainsMatched: d, TriggersMatched: triggersMatched,
				Reason: fmt.Sprintf("%d domains matched with confidence %.2f; top tokens: %s", d, confidence, topTokens),
			}
		}
		return RoutingDecision{
			Mode: config.ModeStandard, Agents: agents, Confidence: confidence,
			DomainsMatched: d, TriggersMatched: triggersMatched, Downgraded: true,
			Reason: fmt.Sprintf("%d domains matched but confidence %.2f < 0.7; downgraded from CRITICAL; top tokens: %s", d, confidence, topTokens),
		}
	}
}

func matchAny(lowered string, triggers []string) (string, bool) {
	for _, t := range triggers {
		if strings.Contains(lowered, strings.ToLower(t)) {
			return t, true
		}
	}
	return "", false
}

func matchAllTokens(lowered string, tokens []string) []string {
	var out []string
	for _, t := range tokens {
		if strings.Contains(lowered, strings.ToLower(t)) {
			out = append(out, t)
		}
	}
	return out
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func topTokensOf(matched []domainScore) string {
	var all []string
	for _, m := range matched {
		all = append(all, m.tokens...)
	}
	if len(all) > 5 {
		all = all[:5]
	}
	return strings.Join(all, ", ")
}
