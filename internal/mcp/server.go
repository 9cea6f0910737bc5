// Package mcp exposes the gate over the Model Context Protocol, so a chat
// frontend or agent host can call authorize, run, and feature checks as
// stdio tools without linking the library.
package mcp

import (
	"context"
	"fmt"
	"os"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dkarpele/havengate/internal/audit"
	"github.com/dkarpele/havengate/internal/authz"
	"github.com/dkarpele/havengate/internal/contract"
	"github.com/dkarpele/havengate/internal/integrity"
	"github.com/dkarpele/havengate/internal/modelcall"
	"github.com/dkarpele/havengate/internal/pipeline"
	"github.com/dkarpele/havengate/internal/risk"
	"github.com/dkarpele/havengate/internal/safety"
	"github.com/dkarpele/havengate/internal/thinkmode"
	"github.com/dkarpele/havengate/internal/validate"
)

// Config holds MCP server configuration. Empty paths fall back to the
// ~/.havengate defaults of each table.
type Config struct {
	AuthzPath     string
	RiskPath      string
	ContractsPath string
	ModesPath     string
	ValidatePath  string
	SafetyPath    string
	AuditLogPath  string

	// Model endpoint for the havengate_run tool. When APIURL is empty the
	// tool reports that no model boundary is configured.
	APIURL    string
	APIKey    string
	ModelName string
}

// Server wraps the MCP SDK server around the gate. The mutex guards the
// policy tables against hot reload; handlers take it for reads.
type Server struct {
	mcpServer *mcpsdk.Server
	cfg       Config

	mu         sync.RWMutex
	authorizer *authz.Authorizer
	runner     *pipeline.Runner
	contracts  *contract.Registry
	modes      *thinkmode.Tables
	filter     *safety.Filter
	configHash string

	auditLog *audit.Log
	client   *modelcall.Client
}

// New creates an MCP server with all policy tables loaded.
func New(cfg Config) (*Server, error) {
	s := &Server{cfg: cfg}

	if cfg.AuditLogPath != "" {
		log, err := audit.Open(cfg.AuditLogPath)
		if err != nil {
			return nil, fmt.Errorf("open audit log: %w", err)
		}
		s.auditLog = log
	}

	if cfg.APIURL != "" {
		s.client = modelcall.New(modelcall.Config{
			APIURL: cfg.APIURL,
			APIKey: cfg.APIKey,
			Model:  cfg.ModelName,
		})
	}

	if err := s.Reload(); err != nil {
		return nil, err
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "havengate",
			Version: "0.3.0",
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Reload rebuilds the authorizer and pipeline from the config files.
// Safe to call while the server is handling requests; a load failure
// leaves the previous tables in place.
func (s *Server) Reload() error {
	cfg, hash, err := authz.LoadConfigWithHash(s.cfg.AuthzPath)
	if err != nil {
		return err
	}
	classifier, err := risk.Load(s.cfg.RiskPath)
	if err != nil {
		return err
	}
	contracts, err := contract.Load(s.cfg.ContractsPath)
	if err != nil {
		return err
	}
	modes, err := thinkmode.Load(s.cfg.ModesPath)
	if err != nil {
		return err
	}
	overrides, err := validate.Load(s.cfg.ValidatePath)
	if err != nil {
		return err
	}
	filter, err := safety.Load(s.cfg.SafetyPath)
	if err != nil {
		return err
	}

	// Cross-table drift is reported, not fatal: a warning-level issue
	// still leaves every lookup fail-closed.
	for _, issue := range integrity.Check(contracts, modes, overrides) {
		fmt.Fprintf(os.Stderr, "havengate mcp: %s\n", issue)
	}

	var sink audit.Sink
	if s.auditLog != nil {
		sink = s.auditLog
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.authorizer = authz.New(cfg, classifier, sink)
	s.contracts = contracts
	s.modes = modes
	s.filter = filter
	s.configHash = hash
	s.runner = pipeline.NewRunner(
		pipeline.WithContracts(contracts),
		pipeline.WithModes(modes),
		pipeline.WithValidator(validate.New(contracts, overrides)),
		pipeline.WithSafety(filter),
	)
	return nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close closes the audit log if configured.
func (s *Server) Close() error {
	if s.auditLog != nil {
		return s.auditLog.Close()
	}
	return nil
}

// ConfigHash returns the hash of the active authorization config.
func (s *Server) ConfigHash() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.configHash
}

// registerTools adds the gate tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "havengate_authorize",
		Description: "Decide whether an inbound message may proceed: resolves the caller tier, classifies risk against the session context, applies the tier matrix, and records an audit entry.",
	}, s.handleAuthorize)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "havengate_run",
		Description: "Run one activity through the full pipeline: contract lookup, mode resolution, prompt assembly, one model call, output validation, safety filter.",
	}, s.handleRun)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "havengate_feature",
		Description: "Check whether a tier may use a feature. Fails closed on unknown tiers and features.",
	}, s.handleFeature)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "havengate_safety",
		Description: "Run the safety filter over a text pair without executing an activity (dry-run).",
	}, s.handleSafety)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "havengate_contracts",
		Description: "List the registered activities with their output types and default modes.",
	}, s.handleContracts)
}
