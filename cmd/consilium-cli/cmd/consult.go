package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/consilium-ai/consilium/internal/runtime"
)

var consultCmd = &cobra.Command{
	Use:   "consult [task]",
	Short: "Run a task through the agent panel and Active Director",
	Long: `Submit a task to the Consilium panel: the Router picks agents and mode,
each agent replies, the panel aggregates a recommendation, and the Active
Director may review or override it.

Example:
  consilium-cli consult "should we roll back the payments deploy?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task := strings.Join(args, " ")
		ctx := context.Background()

		rt, err := newRuntime(ctx)
		if err != nil {
			return err
		}

		fmt.Println("Consulting the panel...")
		outcome, err := rt.Consult(ctx, uuid.NewString(), task)
		if err != nil {
			return fmt.Errorf("consult failed: %w", err)
		}

		if output == "json" {
			enc, err := json.MarshalIndent(outcome, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(enc))
			return nil
		}

		printConsultOutcome(outcome)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(consultCmd)
}

// printConsultOutcome renders a consult outcome as markdown through glamour,
// falling back to plain text if the renderer can't be built (trix's
// printResponse pattern in cmd/ask.go).
func printConsultOutcome(outcome *runtime.ConsultOutcome) {
	var b strings.Builder
	fmt.Fprintf(&b, "# Consult result\n\n")
	fmt.Fprintf(&b, "**Mode:** %s  **Confidence:** %.2f  **Consensus:** %v\n\n",
		outcome.Result.Mode, outcome.Result.Recommendation.ConfidenceLevel, outcome.Result.Recommendation.TeamConsensus)
	fmt.Fprintf(&b, "%s\n\n", outcome.Result.Recommendation.DecisionSummary)

	fmt.Fprintf(&b, "## Panel opinions\n\n")
	for role, op := range outcome.Result.Opinions {
		fmt.Fprintf(&b, "### %s (confidence %.2f)\n\n%s\n\n", role, op.Confidence, op.OpinionText)
	}

	if outcome.Director.Called {
		fmt.Fprintf(&b, "## Director review\n\n")
		fmt.Fprintf(&b, "- Risk level: %s\n", outcome.Director.RiskLevel)
		fmt.Fprintf(&b, "- Override applied: %v\n", outcome.Director.OverrideApplied)
		if outcome.Director.Decision != nil {
			fmt.Fprintf(&b, "- Decision: %s\n", outcome.Director.Decision.Decision)
		}
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Println(b.String())
		return
	}
	rendered, err := renderer.Render(b.String())
	if err != nil {
		fmt.Println(b.String())
		return
	}
	fmt.Print(rendered)
}
