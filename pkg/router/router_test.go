package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/consilium-ai/consilium/pkg/config"
)

func testDomains() *config.DomainTriggerRegistry {
	return config.NewDomainTriggerRegistry(map[config.AgentRole]config.DomainTriggerConfig{
		config.AgentRoleSecurity: {
			Strong: []string{"vulnerability", "exploit", "auth"},
			Weak:   []string{"token", "password"},
		},
		config.AgentRoleArchitect: {
			Strong: []string{"architecture", "migration"},
			Weak:   []string{"design", "system"},
		},
		config.AgentRoleQA: {
			Strong: []string{"regression"},
			Weak:   []string{"test", "bug"},
		},
		config.AgentRoleSEO: {
			Strong: []string{"serp"},
			Weak:   []string{"seo", "keyword"},
		},
		config.AgentRoleUX: {
			Strong: []string{"usability"},
			Weak:   []string{"ux", "wireframe"},
		},
	})
}

var criticalTriggers = []string{"incident", "outage", "breach", "attack", "compromised", "emergency", "critical", "urgent", "production down"}

func TestRoute_IsDeterministic(t *testing.T) {
	domains := testDomains()
	a := Route("auth vulnerability in login", criticalTriggers, domains)
	b := Route("auth vulnerability in login", criticalTriggers, domains)
	assert.Equal(t, a, b)
}

func TestRoute_CriticalTriggerPreempts(t *testing.T) {
	domains := testDomains()
	d := Route("we have a production outage right now", criticalTriggers, domains)

	assert.Equal(t, config.ModeCritical, d.Mode)
	assert.Equal(t, 1.0, d.Confidence)
	for _, role := range []config.AgentRole{config.AgentRoleDev, config.AgentRoleSecurity, config.AgentRoleQA, config.AgentRoleArchitect, config.AgentRoleSEO, config.AgentRoleUX, config.AgentRoleDirector} {
		assert.True(t, d.HasAgent(role), "expected %s in agent set", role)
	}
}

func TestRoute_NoMatchDefaultsFast(t *testing.T) {
	domains := testDomains()
	d := Route("what's the weather like today", criticalTriggers, domains)

	assert.Equal(t, config.ModeFast, d.Mode)
	assert.Equal(t, 1.0, d.Confidence)
	assert.True(t, d.HasAgent(config.AgentRoleDev))
	assert.Equal(t, 1, len(d.Agents))
}

func TestRoute_SingleDomainMatchIsStandard(t *testing.T) {
	domains := testDomains()
	d := Route("please fix this auth vulnerability", criticalTriggers, domains)

	assert.Equal(t, config.ModeStandard, d.Mode)
	assert.Equal(t, 1, d.DomainsMatched)
	assert.True(t, d.HasAgent(config.AgentRoleDev))
	assert.True(t, d.HasAgent(config.AgentRoleSecurity))
	assert.False(t, d.HasAgent(config.AgentRoleDirector))
}

func TestRoute_ThreeDomainsHighConfidenceEscalatesToCritical(t *testing.T) {
	domains := testDomains()
	d := Route("auth vulnerability exploit, architecture migration review, and regression testing", criticalTriggers, domains)

	assert.Equal(t, 3, d.DomainsMatched)
	if d.Confidence >= 0.7 {
		assert.Equal(t, config.ModeCritical, d.Mode)
		assert.True(t, d.HasAgent(config.AgentRoleDirector))
		assert.False(t, d.Downgraded)
	}
}

func TestRoute_ThreeDomainsLowConfidenceDowngrades(t *testing.T) {
	domains := testDomains()
	// Three domains matched via weak-only tokens keep confidence < 0.7.
	d := Route("token password design system test bug seo keyword", criticalTriggers, domains)

	assert.GreaterOrEqual(t, d.DomainsMatched, 3)
	assert.Less(t, d.Confidence, 0.7)
	assert.Equal(t, config.ModeStandard, d.Mode)
	assert.True(t, d.Downgraded)
	assert.False(t, d.HasAgent(config.AgentRoleDirector))
}

func TestRoute_DevAlwaysPresent(t *testing.T) {
	domains := testDomains()
	for _, q := range []string{"random text", "auth vulnerability", "production down now"} {
		d := Route(q, criticalTriggers, domains)
		assert.True(t, d.HasAgent(config.AgentRoleDev), "query=%q", q)
	}
}
