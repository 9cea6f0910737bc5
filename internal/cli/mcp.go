package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	havenmcp "github.com/dkarpele/havengate/internal/mcp"
)

var (
	mcpAuthz     string
	mcpRisk      string
	mcpContracts string
	mcpModes     string
	mcpValidate  string
	mcpSafety    string
	mcpAuditLog  string
	mcpAPIURL    string
	mcpModel     string
	mcpWatch     bool
)

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpAuthz, "config", "", "Path to authorization config YAML")
	mcpCmd.Flags().StringVar(&mcpRisk, "risk-config", "", "Path to risk keyword YAML")
	mcpCmd.Flags().StringVar(&mcpContracts, "contracts", "", "Path to contract YAML")
	mcpCmd.Flags().StringVar(&mcpModes, "modes", "", "Path to thinking-mode YAML")
	mcpCmd.Flags().StringVar(&mcpValidate, "validation", "", "Path to validator override YAML")
	mcpCmd.Flags().StringVar(&mcpSafety, "safety", "", "Path to safety pattern YAML")
	mcpCmd.Flags().StringVar(&mcpAuditLog, "audit-log", "", "Path to hash-chained audit log")
	mcpCmd.Flags().StringVar(&mcpAPIURL, "api-url", "", "OpenAI-compatible completions endpoint for havengate_run")
	mcpCmd.Flags().StringVar(&mcpModel, "model", "llama3.2", "Model name sent to the endpoint")
	mcpCmd.Flags().BoolVar(&mcpWatch, "watch", true, "Hot-reload tables when config files change")
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP tool server for frontend integration",
	Long: "Runs havengate as an MCP (Model Context Protocol) server over stdio.\n" +
		"Exposes the gate as tools: authorize, run, feature, safety, contracts.",
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg := havenmcp.Config{
		AuthzPath:     mcpAuthz,
		RiskPath:      mcpRisk,
		ContractsPath: mcpContracts,
		ModesPath:     mcpModes,
		ValidatePath:  mcpValidate,
		SafetyPath:    mcpSafety,
		AuditLogPath:  mcpAuditLog,
		APIURL:        mcpAPIURL,
		APIKey:        os.Getenv("HAVENGATE_API_KEY"),
		ModelName:     mcpModel,
	}

	srv, err := havenmcp.New(cfg)
	if err != nil {
		return fmt.Errorf("create MCP server: %w", err)
	}
	defer func() { _ = srv.Close() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down MCP server...")
		cancel()
	}()

	if mcpWatch {
		reloader, err := havenmcp.NewReloader(srv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hot-reload disabled: %v\n", err)
		} else {
			go func() { _ = reloader.Run(ctx) }()
		}
	}

	fmt.Fprintf(os.Stderr, "havengate MCP server running on stdio (config %s)\n", srv.ConfigHash())
	return srv.Run(ctx)
}
