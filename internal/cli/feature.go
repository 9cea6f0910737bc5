package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dkarpele/havengate/internal/model"
	"github.com/dkarpele/havengate/internal/tier"
)

func init() {
	rootCmd.AddCommand(featureCmd)
}

var featureCmd = &cobra.Command{
	Use:   "feature <tier> [feature]",
	Short: "Check tier feature visibility",
	Long: "With a feature name, reports whether the tier may use it (exit 0/1).\n" +
		"Without one, lists the features visible to the tier.",
	Args: cobra.RangeArgs(1, 2),
	RunE: runFeature,
}

func runFeature(cmd *cobra.Command, args []string) error {
	t, ok := model.ParseTier(args[0])
	if !ok {
		return fmt.Errorf("unknown tier %q", args[0])
	}

	if len(args) == 1 {
		for _, f := range tier.Features(t) {
			fmt.Println(f)
		}
		return nil
	}

	if tier.CheckFeatureAccess(t, args[1]) {
		fmt.Println("allowed")
		return nil
	}
	fmt.Println("denied")
	os.Exit(1)
	return nil
}
