package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/consilium-ai/consilium/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s (%s)\n", version.Full(), Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
