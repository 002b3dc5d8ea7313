package director

import (
	"fmt"
	"strings"

	"github.com/consilium-ai/consilium/pkg/config"
)

// DetermineRisk implements the Active Director's Step A risk classification.
func DetermineRisk(task string, opinionRoles []config.AgentRole, confidence float64, domainsMatched int, highRiskKeywords []string) config.RiskLevel {
	for _, role := range opinionRoles {
		if role == config.AgentRoleSecurity {
			return config.RiskLevelHigh
		}
	}

	lower := strings.ToLower(task)
	for _, kw := range highRiskKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return config.RiskLevelHigh
		}
	}

	if confidence < 0.70 || domainsMatched >= 3 {
		return config.RiskLevelMedium
	}
	return config.RiskLevelLow
}

// PreFilterResult is Step B's outcome.
type PreFilterResult struct {
	Skip         bool
	ReasonTokens []string
	Thresholds   map[string]float64
}

// PreFilter implements the Active Director's Step B: the cheap gate
// deciding whether Director is called at all. Director is skipped iff
// risk != HIGH AND confidence >= prefilter_conf_lt AND domainsMatched <
// multi_domain_gte.
func PreFilter(risk config.RiskLevel, confidence float64, domainsMatched int, cfg *config.DirectorYAMLConfig) PreFilterResult {
	thresholds := map[string]float64{
		"prefilter_conf_lt": cfg.PrefilterConfLT,
		"multi_domain_gte":  float64(cfg.MultiDomainGTE),
	}

	var reasons []string
	if risk == config.RiskLevelHigh {
		reasons = append(reasons, "high_risk")
	}
	if confidence < cfg.PrefilterConfLT {
		reasons = append(reasons, fmt.Sprintf("conf<%.2f(%.2f)", cfg.PrefilterConfLT, confidence))
	}
	if domainsMatched >= cfg.MultiDomainGTE {
		reasons = append(reasons, fmt.Sprintf("multi_domain(%d)", domainsMatched))
	}

	if len(reasons) == 0 {
		return PreFilterResult{
			Skip: true,
			ReasonTokens: []string{
				"calm_task",
				"risk=" + strings.ToLower(string(risk)),
				fmt.Sprintf("conf=%.2f", confidence),
				fmt.Sprintf("domains=%d", domainsMatched),
			},
			Thresholds: thresholds,
		}
	}
	return PreFilterResult{Skip: false, ReasonTokens: reasons, Thresholds: thresholds}
}
