package cmd

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/consilium-ai/consilium/internal/runtime"
)

// newRuntime loads .env from --config-dir the same way cmd/consilium-server
// does, then builds a Runtime against it.
func newRuntime(ctx context.Context) (*runtime.Runtime, error) {
	envPath := filepath.Join(configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		log.Printf("Warning: could not load %s: %v", envPath, err)
	}

	rt, err := runtime.New(ctx, configDir)
	if err != nil {
		return nil, fmt.Errorf("initializing runtime: %w", err)
	}
	return rt, nil
}
