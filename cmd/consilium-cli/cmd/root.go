// Package cmd implements the consilium-cli commands. Grounded on the
// example pack's cobra+glamour CLI (trix's cmd/ask.go, cmd/version.go): a
// package-level rootCmd every subcommand registers itself onto from init(),
// persistent flags for config-dir/output shared across subcommands, and a
// glamour.TermRenderer for markdown-rendered output with a plain-text
// fallback.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time; defaults for local builds.
var Version = "0.1.0"

var (
	configDir string
	output    string
)

var rootCmd = &cobra.Command{
	Use:   "consilium-cli",
	Short: "Operator CLI for a Consilium multi-agent runtime",
	Long: `consilium-cli builds the same internal/runtime.Runtime a
consilium-server process runs, against the given --config-dir, and drives it
directly for ad-hoc consult/status/task-runs commands without needing a
running server.`,
}

// Execute runs the root command; called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", getEnv("CONFIG_DIR", "./deploy/config"), "Path to configuration directory")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "Output format: text or json")
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
