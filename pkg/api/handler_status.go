package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// statusHandler handles GET /v1/status: RuntimeStats plus the LLM breaker
// state and Director circuit mode/rolling metrics, all read under a lock.
func (s *Server) statusHandler(c *gin.Context) {
	stats := s.rt.Status()

	c.JSON(http.StatusOK, &StatusResponse{
		UptimeSeconds: stats.UptimeSeconds,
		Config: ConfigStatsResponse{
			KBSources:    stats.ConfigStats.KBSources,
			Domains:      stats.ConfigStats.Domains,
			LLMProviders: stats.ConfigStats.LLMProviders,
		},
		KBVersionHash:   stats.KBVersionHash,
		LLMBreakerState: stats.LLMBreakerState,
		DirectorMode:    stats.DirectorMode,
		DirectorMetrics: DirectorMetricsResponse{
			CallsInWindow: stats.DirectorMetrics.CallsInWindow,
			OverrideRate:  stats.DirectorMetrics.OverrideRate,
			ErrorRate:     stats.DirectorMetrics.ErrorRate,
			AvgLatency:    stats.DirectorMetrics.AvgLatency,
			Cost24h:       stats.DirectorMetrics.Cost24h,
		},
		AdapterMetrics: AdapterMetricsResponse{
			CallsToday:  stats.AdapterMetrics.CallsToday,
			TotalTokens: stats.AdapterMetrics.TotalTokens,
			TotalCost:   stats.AdapterMetrics.TotalCost,
		},
	})
}

const defaultTaskRunsLimit = 50

// taskRunsHandler handles GET /v1/task-runs?limit=N, tailing the last N
// lines of the task-run log. A missing or invalid limit falls back to
// defaultTaskRunsLimit rather than rejecting the request.
func (s *Server) taskRunsHandler(c *gin.Context) {
	limit := defaultTaskRunsLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := s.rt.TaskRuns(limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"taskRuns": records})
}
