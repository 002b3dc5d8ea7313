package llm

import (
	"sync"
	"time"

	"github.com/consilium-ai/consilium/pkg/config"
)

// CircuitBreaker is the process-wide breaker shared across all agents: a
// mutex-guarded state machine tracking closed/open/half-open transitions
// over a rolling failure count.
type CircuitBreaker struct {
	mu sync.Mutex

	state            config.CircuitState
	failureThreshold int
	recoveryTimeout  time.Duration

	failureCount int
	blockedCount int
	openedAt     time.Time
}

// NewCircuitBreaker constructs a breaker starting CLOSED.
func NewCircuitBreaker(failureThreshold int, recoveryTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		state:            config.CircuitClosed,
		failureThreshold: failureThreshold,
		recoveryTimeout:  recoveryTimeout,
	}
}

// Allow reports whether a call may proceed, transitioning OPEN → HALF_OPEN
// once RecoveryTimeout has elapsed. Must be called once per LLM attempt
// (not per retry within one call).
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case config.CircuitClosed:
		return true
	case config.CircuitHalfOpen:
		return true
	case config.CircuitOpen:
		if time.Since(cb.openedAt) >= cb.recoveryTimeout {
			cb.state = config.CircuitHalfOpen
			return true
		}
		cb.blockedCount++
		return false
	default:
		return true
	}
}

// RecordSuccess resets failure tracking and closes the breaker.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failureCount = 0
	cb.state = config.CircuitClosed
}

// RecordFailure increments the failure count and trips the breaker open once
// the threshold is reached (or immediately, from HALF_OPEN).
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == config.CircuitHalfOpen {
		cb.state = config.CircuitOpen
		cb.openedAt = time.Now()
		return
	}

	cb.failureCount++
	if cb.failureCount >= cb.failureThreshold {
		cb.state = config.CircuitOpen
		cb.openedAt = time.Now()
	}
}

// State returns the current breaker state, safe to call from status
// endpoints.
func (cb *CircuitBreaker) State() config.CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Counters exposes failure/blocked counts for observability endpoints.
func (cb *CircuitBreaker) Counters() (failureCount, blockedCount int) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failureCount, cb.blockedCount
}
