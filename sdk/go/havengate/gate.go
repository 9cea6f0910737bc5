package havengate

import (
	"context"

	"github.com/dkarpele/havengate/internal/audit"
	"github.com/dkarpele/havengate/internal/authz"
	"github.com/dkarpele/havengate/internal/contract"
	"github.com/dkarpele/havengate/internal/pipeline"
	"github.com/dkarpele/havengate/internal/risk"
	"github.com/dkarpele/havengate/internal/safety"
	"github.com/dkarpele/havengate/internal/thinkmode"
	"github.com/dkarpele/havengate/internal/tier"
	"github.com/dkarpele/havengate/internal/validate"
)

// Gate is the in-process governance boundary. Construction loads every
// policy table once; all methods are then safe for concurrent use, and
// concurrent calls share no mutable state beyond the audit sink.
type Gate struct {
	authorizer *authz.Authorizer
	runner     *pipeline.Runner
	log        *audit.Log
}

// New creates a Gate. Without options, every table loads from its
// ~/.havengate default, falling back to the built-ins, and justification
// records are discarded.
func New(opts ...Option) (*Gate, error) {
	var cfg gateConfig
	for _, o := range opts {
		o(&cfg)
	}

	acfg, err := authz.LoadConfig(cfg.authzPath)
	if err != nil {
		return nil, err
	}
	classifier, err := risk.Load(cfg.riskPath)
	if err != nil {
		return nil, err
	}
	contracts, err := contract.Load(cfg.contractsPath)
	if err != nil {
		return nil, err
	}
	modes, err := thinkmode.Load(cfg.modesPath)
	if err != nil {
		return nil, err
	}
	overrides, err := validate.Load(cfg.validatePath)
	if err != nil {
		return nil, err
	}
	filter, err := safety.Load(cfg.safetyPath)
	if err != nil {
		return nil, err
	}

	g := &Gate{}

	sink := cfg.sink
	if sink == nil && cfg.auditLogPath != "" {
		log, err := audit.Open(cfg.auditLogPath)
		if err != nil {
			return nil, err
		}
		g.log = log
		sink = log
	}

	g.authorizer = authz.New(acfg, classifier, sink)
	g.runner = pipeline.NewRunner(
		pipeline.WithContracts(contracts),
		pipeline.WithModes(modes),
		pipeline.WithValidator(validate.New(contracts, overrides)),
		pipeline.WithSafety(filter),
	)

	return g, nil
}

// Authorize decides whether one inbound message may proceed. Call once
// per message, before any model work begins. Every call produces a
// Decision with a justification record; there is no error path.
func (g *Gate) Authorize(req Request) Decision {
	return g.authorizer.Authorize(req)
}

// RunActivity runs one activity through the fixed-order pipeline.
// modelFn is the caller's opaque boundary to the model service; the
// context governs its timeout and cancellation. On failure the returned
// error is a *StageError naming the stage.
func (g *Gate) RunActivity(ctx context.Context, activityID, userInput, requestedMode string, modelFn ModelFunc) (*Outcome, error) {
	return g.runner.Run(ctx, activityID, userInput, requestedMode, modelFn)
}

// CheckFeatureAccess reports whether a tier may use a feature. For UI
// visibility gating; not part of the request pipeline.
func (g *Gate) CheckFeatureAccess(t Tier, feature string) bool {
	return tier.CheckFeatureAccess(t, feature)
}

// Close releases the audit log when one was opened via WithAuditLog.
func (g *Gate) Close() error {
	if g.log != nil {
		return g.log.Close()
	}
	return nil
}
