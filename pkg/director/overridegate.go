package director

import "github.com/consilium-ai/consilium/pkg/config"

// confidenceEpsilon absorbs float64 rounding so a gap that equals diff_gte
// in decimal (1.0-0.9 against 0.10) still counts as meeting it.
const confidenceEpsilon = 1e-9

// OverrideDecision is the Step D/E outcome.
type OverrideDecision struct {
	Applied                  bool
	SoftOverrideCandidate    bool
	ShadowSoftAllowCandidate bool
	Reason                   string
}

// EvaluateOverrideGate implements the Active Director's Step D/E.
//
// rawMode is the breaker's actual mode before any security+HIGH bypass;
// effectiveMode is what ShouldCallDirector resolved this call to run under
// (bypassed shadow behaves as active). Override is allowed only when
// effectiveMode is active AND both the risk side (riskLevel==HIGH OR
// consiliumConfidence < low_conf_lt, strict <) and the improvement side
// (directorConfidence - consiliumConfidence >= diff_gte) hold.
func EvaluateOverrideGate(rawMode, effectiveMode config.DirectorMode, riskLevel config.RiskLevel, consiliumConfidence, directorConfidence float64, cfg *config.DirectorYAMLConfig) OverrideDecision {
	riskSide := riskLevel == config.RiskLevelHigh || consiliumConfidence < cfg.LowConfLT
	diff := directorConfidence - consiliumConfidence
	improvementSide := diff >= cfg.DiffGTE-confidenceEpsilon

	if effectiveMode == config.DirectorModeActive && riskSide && improvementSide {
		return OverrideDecision{Applied: true, Reason: "risk and improvement gate both passed"}
	}

	decision := OverrideDecision{}
	if improvementSide {
		decision.SoftOverrideCandidate = true
		if rawMode == config.DirectorModeShadow {
			decision.ShadowSoftAllowCandidate = true
		}
	}
	return decision
}
