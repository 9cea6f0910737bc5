package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkarpele/havengate/internal/contract"
	"github.com/dkarpele/havengate/internal/thinkmode"
)

var (
	contractsPath   string
	contractsFormat string
)

func init() {
	rootCmd.AddCommand(contractsCmd)
	contractsCmd.Flags().StringVar(&contractsPath, "contracts", "", "Path to contract YAML")
	contractsCmd.Flags().StringVarP(&contractsFormat, "format", "f", "text", "Output format (text|json)")
}

var contractsCmd = &cobra.Command{
	Use:   "contracts",
	Short: "List the activity contract table",
	RunE:  runContracts,
}

func runContracts(cmd *cobra.Command, args []string) error {
	reg, hash, err := contract.LoadWithHash(contractsPath)
	if err != nil {
		return err
	}
	modes, err := thinkmode.Load("")
	if err != nil {
		return err
	}

	if contractsFormat == "json" {
		table := make(map[string]contract.Contract)
		for _, id := range reg.IDs() {
			c, _ := reg.Get(id)
			table[id] = c
		}
		out, _ := json.MarshalIndent(map[string]interface{}{
			"config_hash": hash,
			"contracts":   table,
		}, "", "  ")
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("config: %s\n\n", hash)
	for _, id := range reg.IDs() {
		c, _ := reg.Get(id)
		mode := modes.Resolve(id, "")
		if mode == "" {
			mode = "-"
		}
		fmt.Printf("%-18s %-12s mode=%-14s %s\n", id, c.OutputType, mode, c.Structure)
	}
	return nil
}
