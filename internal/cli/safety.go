package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dkarpele/havengate/internal/model"
	"github.com/dkarpele/havengate/internal/safety"
)

var (
	safetyOutput string
	safetyConfig string
	safetyFormat string
)

func init() {
	safetyCmd.Flags().StringVar(&safetyOutput, "output", "", "Model output to scan alongside the message")
	safetyCmd.Flags().StringVar(&safetyConfig, "safety", "", "Path to safety pattern YAML")
	safetyCmd.Flags().StringVarP(&safetyFormat, "format", "f", "text", "Output format (text|json)")
	rootCmd.AddCommand(safetyCmd)
}

var safetyCmd = &cobra.Command{
	Use:   "safety <message>",
	Short: "Dry-run the safety filter over a message",
	Long: "Scans the message (and, with --output, a model output) against the\n" +
		"safety pattern tables and prints the verdict without running an\n" +
		"activity. Exits 1 unless the verdict is allow.",
	Args: cobra.ExactArgs(1),
	RunE: runSafety,
}

func runSafety(cmd *cobra.Command, args []string) error {
	filter, err := safety.Load(safetyConfig)
	if err != nil {
		return err
	}

	res := filter.Check(args[0], safetyOutput)

	if safetyFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		fmt.Printf("verdict: %s\n", res.Outcome)
		if res.Category != "" {
			fmt.Printf("category: %s\n", res.Category)
		}
		if res.Message != "" {
			fmt.Printf("message: %s\n", res.Message)
		}
	}

	if res.Outcome != model.SafetyAllow {
		os.Exit(1)
	}
	return nil
}
