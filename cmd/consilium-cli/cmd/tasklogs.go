package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var taskRunsLimit int

var taskRunsCmd = &cobra.Command{
	Use:   "task-runs",
	Short: "Tail the task-run log",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		rt, err := newRuntime(ctx)
		if err != nil {
			return err
		}

		records, err := rt.TaskRuns(taskRunsLimit)
		if err != nil {
			return fmt.Errorf("reading task-run log: %w", err)
		}

		if output == "json" {
			enc, err := json.MarshalIndent(records, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(enc))
			return nil
		}

		for _, rec := range records {
			fmt.Printf("[%s] task=%q director_called=%v override=%v risk=%s\n",
				rec.TaskID, rec.TaskSummary, rec.Director.Called, rec.Director.OverrideApplied, rec.RiskLevel)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(taskRunsCmd)
	taskRunsCmd.Flags().IntVar(&taskRunsLimit, "limit", 50, "Number of task runs to show")
}
