package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dkarpele/havengate/internal/audit"
	"github.com/dkarpele/havengate/internal/authz"
	"github.com/dkarpele/havengate/internal/model"
	"github.com/dkarpele/havengate/internal/risk"
)

var (
	authzCaller  string
	authzEmail   string
	authzTier    string
	authzSession string
	authzHistory string
	authzConfig  string
	authzRisk    string
	authzLog     string
)

func init() {
	rootCmd.AddCommand(authorizeCmd)
	authorizeCmd.Flags().StringVar(&authzCaller, "caller", "", "Caller id")
	authorizeCmd.Flags().StringVar(&authzEmail, "email", "", "Caller email")
	authorizeCmd.Flags().StringVar(&authzTier, "tier", "", "Externally resolved tier hint (sanctuary)")
	authorizeCmd.Flags().StringVar(&authzSession, "session", "", "Session id")
	authorizeCmd.Flags().StringVar(&authzHistory, "history", "", "Path to YAML session history")
	authorizeCmd.Flags().StringVar(&authzConfig, "config", "", "Path to authorization config YAML")
	authorizeCmd.Flags().StringVar(&authzRisk, "risk-config", "", "Path to risk keyword YAML")
	authorizeCmd.Flags().StringVar(&authzLog, "audit-log", "", "Path to hash-chained audit log (default: no persistence)")
}

var authorizeCmd = &cobra.Command{
	Use:   "authorize <message>",
	Short: "Decide whether one inbound message may proceed",
	Long: "Resolves the caller's tier, classifies the message risk against the\n" +
		"session context, applies the tier matrix, and prints the decision with\n" +
		"its justification record.\n\n" +
		"Exit code 0 if authorized, 1 if denied.",
	Args: cobra.ExactArgs(1),
	RunE: runAuthorize,
}

func runAuthorize(cmd *cobra.Command, args []string) error {
	cfg, err := authz.LoadConfig(authzConfig)
	if err != nil {
		return err
	}
	classifier, err := risk.Load(authzRisk)
	if err != nil {
		return err
	}

	var sink audit.Sink
	if authzLog != "" {
		log, err := audit.Open(authzLog)
		if err != nil {
			return fmt.Errorf("open audit log: %w", err)
		}
		defer func() { _ = log.Close() }()
		sink = log
	}

	req := authz.Request{
		CallerID:  authzCaller,
		Email:     authzEmail,
		Message:   args[0],
		SessionID: authzSession,
	}
	if t, ok := model.ParseTier(authzTier); ok {
		req.Tier = t
	}
	if authzHistory != "" {
		history, err := loadHistory(authzHistory)
		if err != nil {
			return err
		}
		req.History = history
	}

	decision := authz.New(cfg, classifier, sink).Authorize(req)

	out, _ := json.MarshalIndent(decision, "", "  ")
	fmt.Println(string(out))

	if !decision.Authorized {
		os.Exit(1)
	}
	return nil
}

func loadHistory(path string) ([]model.Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	var msgs []model.Message
	if err := yaml.Unmarshal(data, &msgs); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	return msgs, nil
}
