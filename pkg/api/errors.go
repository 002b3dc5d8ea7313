package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/consilium-ai/consilium/pkg/config"
	"github.com/consilium-ai/consilium/pkg/consilium"
)

// writeError maps a domain error to an HTTP status and a JSON error body
// using the gin.H{"error": ...} convention throughout.
func writeError(c *gin.Context, err error) {
	var loadErr *config.LoadError
	if errors.As(err, &loadErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var healthErr *consilium.HealthCheckError
	if errors.As(err, &healthErr) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	slog.Error("unexpected consult error", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
