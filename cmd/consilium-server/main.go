// consilium-server runs the Consilium admin/API HTTP daemon: POST
// /v1/consult, GET /v1/status, GET /v1/task-runs, GET /health.
//
// Resolves the config directory from a flag or env var, loads a .env file
// from that directory with godotenv, and sets gin's mode from GIN_MODE
// before building the internal/runtime.Runtime that backs the server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"flag"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/consilium-ai/consilium/internal/runtime"
	"github.com/consilium-ai/consilium/pkg/api"
	"github.com/consilium-ai/consilium/pkg/version"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configDir := flag.String("config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")
	flag.Parse()

	envPath := filepath.Join(*configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		log.Printf("Warning: Could not load %s file: %v", envPath, err)
		log.Printf("Continuing with existing environment variables...")
	} else {
		log.Printf("Loaded environment from %s", envPath)
	}

	httpPort := getEnv("HTTP_PORT", "8080")
	gin.SetMode(getEnv("GIN_MODE", "debug"))

	log.Printf("Starting %s", version.Full())
	log.Printf("HTTP Port: %s", httpPort)
	log.Printf("Config Directory: %s", *configDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := runtime.New(ctx, *configDir)
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	stats := rt.Config.Stats()
	log.Printf("✓ Runtime initialized: %d KB sources, %d domains, %d LLM providers",
		stats.KBSources, stats.Domains, stats.LLMProviders)

	srv := api.NewServer(rt)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on :%s", httpPort)
		log.Printf("Health check available at: http://localhost:%s/health", httpPort)
		errCh <- srv.Start(":" + httpPort)
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during graceful shutdown: %v", err)
	}
}
