package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// consultHandler handles POST /v1/consult: runs the full Router + Consilium
// fan-out, then the Active Director's Steps A-F, and returns the combined
// result. The task-run log's taskID is minted here with google/uuid.
func (s *Server) consultHandler(c *gin.Context) {
	var req ConsultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	taskID := req.SessionID
	if taskID == "" {
		taskID = uuid.NewString()
	}

	outcome, err := s.rt.Consult(c.Request.Context(), taskID, req.Task)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newConsultResponse(outcome.Result, outcome.Director))
}
