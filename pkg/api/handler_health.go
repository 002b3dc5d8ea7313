package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// healthHandler handles GET /health: a liveness-only check with no external
// dependency checks, so an orchestrator never restarts the process over a
// flaky LLM/Tool Server/Director endpoint.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, &HealthResponse{Status: "healthy"})
}
