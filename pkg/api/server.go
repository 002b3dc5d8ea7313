// Package api provides the Gin HTTP admin/API surface for a Consilium
// runtime: POST /v1/consult, GET /v1/status, GET /v1/task-runs, and
// GET /health. The Server wraps a minimal Gin router directly around
// internal/runtime.Runtime.
package api

import (
	"context"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/consilium-ai/consilium/internal/runtime"
)

// Server is the HTTP API server wrapping one Runtime.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	rt         *runtime.Runtime
}

// NewServer builds a Gin engine, registers every route, and returns a
// Server ready to Start or StartWithListener.
func NewServer(rt *runtime.Runtime) *Server {
	engine := gin.Default()

	s := &Server{engine: engine, rt: rt}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.healthHandler)

	v1 := s.engine.Group("/v1")
	v1.POST("/consult", s.consultHandler)
	v1.GET("/status", s.statusHandler)
	v1.GET("/task-runs", s.taskRunsHandler)
}

// Start starts the HTTP server on addr (blocking).
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{Addr: addr, Handler: s.engine}
	return s.httpServer.ListenAndServe()
}

// StartWithListener starts the HTTP server on a pre-created listener. Used
// by handler tests to serve on a random OS-assigned port via httptest.
func (s *Server) StartWithListener(ln net.Listener) error {
	s.httpServer = &http.Server{Handler: s.engine}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
