package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "havengate",
	Short: "Governance gate for a conversational wellness assistant",
	Long: "Sits between users and the model: classifies message risk, applies the\n" +
		"tier matrix before any model work begins, and runs every activity through\n" +
		"a fixed-order pipeline with output validation and a safety filter.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
