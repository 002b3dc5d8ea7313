package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print runtime status: config stats, KB version, breaker states",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		rt, err := newRuntime(ctx)
		if err != nil {
			return err
		}

		stats := rt.Status()

		if output == "json" {
			enc, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(enc))
			return nil
		}

		fmt.Printf("Uptime:            %.0fs\n", stats.UptimeSeconds)
		fmt.Printf("KB sources:        %d\n", stats.ConfigStats.KBSources)
		fmt.Printf("Domains:           %d\n", stats.ConfigStats.Domains)
		fmt.Printf("LLM providers:     %d\n", stats.ConfigStats.LLMProviders)
		fmt.Printf("KB version hash:   %s\n", stats.KBVersionHash)
		fmt.Printf("LLM breaker:       %s\n", stats.LLMBreakerState)
		fmt.Printf("Director mode:     %s\n", stats.DirectorMode)
		fmt.Printf("Director calls (window): %d  override rate: %.2f  error rate: %.2f\n",
			stats.DirectorMetrics.CallsInWindow, stats.DirectorMetrics.OverrideRate, stats.DirectorMetrics.ErrorRate)
		fmt.Printf("Adapter calls today: %d  tokens: %d  cost: %.4f\n",
			stats.AdapterMetrics.CallsToday, stats.AdapterMetrics.TotalTokens, stats.AdapterMetrics.TotalCost)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
