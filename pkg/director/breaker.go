package director

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/consilium-ai/consilium/pkg/config"
)

// softenFactor widens every circuit breaker limit by 1.2x for security+HIGH
// contexts.
const softenFactor = 1.2

// minCallsToEvaluate is the minimum number of recorded calls before there is
// enough signal to evaluate rollback/recovery.
const minCallsToEvaluate = 5

// CircuitBreaker is the Director's own circuit breaker, distinct from
// pkg/llm's CircuitBreaker: it governs whether the Director may be
// called/trusted at all, not raw HTTP retry/backoff. A mutex-guarded status
// with RLock'd accessors, driving a four-limit rollback/recovery
// hysteresis.
type CircuitBreaker struct {
	mu     sync.RWMutex
	mode   config.DirectorMode
	window *rollingWindow
	limits config.DirectorLimitsConfig
	log    *EventLog
}

// NewCircuitBreaker builds a breaker starting in initialMode.
func NewCircuitBreaker(initialMode config.DirectorMode, limits config.DirectorLimitsConfig, windowSize int, log *EventLog) *CircuitBreaker {
	return &CircuitBreaker{mode: initialMode, window: newRollingWindow(windowSize), limits: limits, log: log}
}

// Mode returns the current mode under a read lock.
func (b *CircuitBreaker) Mode() config.DirectorMode {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.mode
}

// ShouldCallDirector implements the off/shadow/active mode branch, including
// the security+HIGH bypass of shadow mode. It returns
// whether to call the Director at all, and the effective mode that call
// should be evaluated under (bypassed shadow behaves as active).
func (b *CircuitBreaker) ShouldCallDirector(securityHigh bool) (call bool, effectiveMode config.DirectorMode) {
	mode := b.Mode()

	switch mode {
	case config.DirectorModeOff:
		return false, mode
	case config.DirectorModeShadow:
		if securityHigh {
			return true, config.DirectorModeActive
		}
		return true, config.DirectorModeShadow
	case config.DirectorModeActive:
		return true, config.DirectorModeActive
	default:
		return false, mode
	}
}

// Status is the admin API's snapshot of breaker health.
type Status struct {
	Mode    config.DirectorMode
	Metrics RollingMetrics
	Limits  config.DirectorLimitsConfig
}

// Status returns the breaker's current mode, rolling metrics, and base
// limits under a read lock.
func (b *CircuitBreaker) Status() Status {
	b.mu.RLock()
	mode := b.mode
	b.mu.RUnlock()
	return Status{Mode: mode, Metrics: b.window.snapshot(), Limits: b.limits}
}

// RecordCall records one Director call's outcome and re-evaluates the
// breaker's mode via rollback/recovery hysteresis.
func (b *CircuitBreaker) RecordCall(overrideApplied bool, cost, latencySeconds float64, errored, securityHigh bool, now time.Time) {
	b.window.record(callRecord{
		timestamp:       now,
		overrideApplied: overrideApplied,
		cost:            cost,
		latencySeconds:  latencySeconds,
		errored:         errored,
	})

	metrics := b.window.snapshot()
	if metrics.CallsInWindow < minCallsToEvaluate {
		return
	}

	limits := b.limits
	if securityHigh {
		limits = softenLimits(limits)
	}
	violations := violationReasons(metrics, limits)

	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case len(violations) > 0 && b.mode == config.DirectorModeActive:
		old := b.mode
		b.mode = config.DirectorModeShadow
		b.logTransition(old, b.mode, "circuit breaker triggered: "+strings.Join(violations, "; "))
	case len(violations) == 0 && b.mode == config.DirectorModeShadow:
		if metrics.CallsInWindow >= 10 && metrics.OverrideRate < 0.65 && metrics.ErrorRate == 0 {
			old := b.mode
			b.mode = config.DirectorModeActive
			b.logTransition(old, b.mode, "metrics stabilized (override<0.65, errors=0, 10+ calls)")
		}
	}
}

func (b *CircuitBreaker) logTransition(oldMode, newMode config.DirectorMode, reason string) {
	if b.log == nil {
		return
	}
	_ = b.log.Append(ModeChangeEvent{
		Timestamp: time.Now(),
		Event:     "director_mode_change",
		OldMode:   oldMode,
		NewMode:   newMode,
		Reason:    reason,
	})
}

func softenLimits(l config.DirectorLimitsConfig) config.DirectorLimitsConfig {
	return config.DirectorLimitsConfig{
		OverrideRateMax: l.OverrideRateMax * softenFactor,
		DailyCostMax:    l.DailyCostMax * softenFactor,
		ErrorRateMax:    l.ErrorRateMax * softenFactor,
		LatencyMaxSecs:  l.LatencyMaxSecs * softenFactor,
	}
}

func violationReasons(m RollingMetrics, limits config.DirectorLimitsConfig) []string {
	var v []string
	if m.OverrideRate > limits.OverrideRateMax {
		v = append(v, fmt.Sprintf("override_rate=%.2f>%.2f", m.OverrideRate, limits.OverrideRateMax))
	}
	if m.ErrorRate > limits.ErrorRateMax {
		v = append(v, fmt.Sprintf("error_rate=%.2f>%.2f", m.ErrorRate, limits.ErrorRateMax))
	}
	if m.AvgLatency > limits.LatencyMaxSecs {
		v = append(v, fmt.Sprintf("latency=%.1fs>%.1fs", m.AvgLatency, limits.LatencyMaxSecs))
	}
	if m.Cost24h > limits.DailyCostMax {
		v = append(v, fmt.Sprintf("daily_cost=$%.4f>$%.4f", m.Cost24h, limits.DailyCostMax))
	}
	return v
}
