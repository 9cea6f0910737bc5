package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dkarpele/havengate/internal/thinkmode"
)

var (
	modesPath      string
	modesRequested string
)

func init() {
	modesCmd.Flags().StringVar(&modesPath, "modes", "", "Path to thinking-mode tables YAML")
	modesCmd.Flags().StringVar(&modesRequested, "request", "", "Resolve as if the caller requested this mode")
	rootCmd.AddCommand(modesCmd)
}

var modesCmd = &cobra.Command{
	Use:   "modes [activity]",
	Short: "Show thinking-mode policy",
	Long: "Without arguments, lists every activity with its resolved default\n" +
		"mode. With an activity id, shows its full mode policy; --request\n" +
		"additionally resolves a caller-requested mode against the gates.",
	Args: cobra.MaximumNArgs(1),
	RunE: runModes,
}

func runModes(cmd *cobra.Command, args []string) error {
	tables, err := thinkmode.Load(modesPath)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		ids := make([]string, 0, len(tables.Defaults))
		for id := range tables.ActivityIDs() {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			mode := tables.Resolve(id, "")
			if mode == "" {
				mode = "(none)"
			}
			fmt.Printf("%-20s %s\n", id, mode)
		}
		return nil
	}

	id := args[0]
	if !tables.ActivityIDs()[id] {
		return fmt.Errorf("no mode policy for activity %q", id)
	}

	fmt.Printf("activity:  %s\n", id)
	fmt.Printf("default:   %s\n", tables.Defaults[id])
	fmt.Printf("allowed:   %s\n", strings.Join(tables.Allowed[id], ", "))
	fmt.Printf("surfacing: %s\n", tables.SurfacingFor(id))
	ov := tables.Overrides[id]
	fmt.Printf("override:  permitted=%v whitelist=[%s]\n", ov.Permitted, strings.Join(ov.Whitelist, ", "))

	if modesRequested != "" {
		mode := tables.Resolve(id, modesRequested)
		if mode == "" {
			mode = "(none)"
		}
		fmt.Printf("resolved:  %s (requested %s)\n", mode, modesRequested)
	}
	return nil
}
