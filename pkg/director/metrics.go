package director

import (
	"sync"
	"time"
)

// AdapterMetrics accumulates process-wide Director usage: calls_today,
// total_tokens, total_cost, reset on local-date rollover. One instance is
// shared by the whole process.
type AdapterMetrics struct {
	mu          sync.Mutex
	callsToday  int
	totalTokens int
	totalCost   float64
	lastReset   string
}

// NewAdapterMetrics builds a metrics tracker seeded with today's date.
func NewAdapterMetrics() *AdapterMetrics {
	return &AdapterMetrics{lastReset: time.Now().Format("2006-01-02")}
}

func (m *AdapterMetrics) resetIfNewDayLocked() {
	today := time.Now().Format("2006-01-02")
	if m.lastReset != today {
		m.callsToday = 0
		m.totalTokens = 0
		m.totalCost = 0
		m.lastReset = today
	}
}

// RecordCall adds one call's token/cost usage, applying the daily reset
// first if the local date has rolled over since the last call.
func (m *AdapterMetrics) RecordCall(tokens int, cost float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetIfNewDayLocked()
	m.callsToday++
	m.totalTokens += tokens
	m.totalCost += cost
}

// MetricsSnapshot is a point-in-time read of AdapterMetrics.
type MetricsSnapshot struct {
	CallsToday  int
	TotalTokens int
	TotalCost   float64
}

// Snapshot returns the current metrics after applying any pending daily
// reset.
func (m *AdapterMetrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetIfNewDayLocked()
	return MetricsSnapshot{CallsToday: m.callsToday, TotalTokens: m.totalTokens, TotalCost: m.totalCost}
}

// PerCallTokenDelta is the per-call token delta logged in a TaskRunRecord:
// avg_tokens_per_call once more than one call has happened today, otherwise
// the raw total_tokens.
func (m *AdapterMetrics) PerCallTokenDelta() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetIfNewDayLocked()
	if m.callsToday > 1 {
		return m.totalTokens / m.callsToday
	}
	return m.totalTokens
}
