// Package authz is the governance gate: it combines tier resolution, context
// evaluation, and risk classification into a single allow/deny decision and
// emits a justification record for every branch.
package authz

import (
	"fmt"

	"github.com/dkarpele/havengate/internal/audit"
	"github.com/dkarpele/havengate/internal/model"
	"github.com/dkarpele/havengate/internal/risk"
	"github.com/dkarpele/havengate/internal/session"
	"github.com/dkarpele/havengate/internal/tier"
)

// Request carries one inbound message for authorization. Tier is an
// optional externally resolved tier (a subscription system may supply
// sanctuary); it can never claim admin.
type Request struct {
	CallerID  string
	Email     string
	Tier      model.Tier
	Message   string
	SessionID string
	History   []model.Message
}

// Decision is the immutable outcome of one authorization call.
// Every well-formed call produces exactly one Decision; there is no
// error path.
type Decision struct {
	Authorized bool            `json:"authorized"`
	Risk       model.RiskLevel `json:"risk"`
	Reason     string          `json:"reason,omitempty"`
	Record     audit.Record    `json:"record"`
}

// Authorizer evaluates access decisions. It is safe for concurrent use:
// every method is a pure function of its inputs except the audit emission,
// which goes to the configured sink.
type Authorizer struct {
	cfg        *Config
	resolver   *tier.Resolver
	classifier *risk.Classifier
	sink       audit.Sink
}

// New creates an Authorizer. A nil config uses defaults; a nil sink
// discards records.
func New(cfg *Config, classifier *risk.Classifier, sink audit.Sink) *Authorizer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if classifier == nil {
		classifier = risk.NewDefault()
	}
	if sink == nil {
		sink = audit.Discard
	}
	return &Authorizer{
		cfg:        cfg,
		resolver:   tier.NewResolver(cfg.AdminEmails),
		classifier: classifier,
		sink:       sink,
	}
}

// Authorize decides whether one inbound message may proceed.
//
// Steps, in fixed order (must not be changed), short-circuiting on the
// first failure:
//
//  1. Resolve tier info. An invalid identity is denied at red — the only
//     path that forces red regardless of content, because an invalid
//     identity is itself the maximal-risk signal.
//  2. Evaluate session context.
//  3. Classify message risk, with the context evaluation as escalation
//     tie-breaker.
//  4. Apply the tier matrix: admin and sanctuary pass at every level;
//     free passes at green or yellow; anonymous passes at green only,
//     and only while the session message count is under the ceiling.
//  5. Emit a justification record, whatever the outcome.
func (a *Authorizer) Authorize(req Request) Decision {
	info := a.resolver.Resolve(req.CallerID, req.Email)

	// Externally resolved sanctuary upgrades a valid free identity.
	if req.Tier == model.TierSanctuary && info.Valid && info.Tier == model.TierFree {
		info.Tier = model.TierSanctuary
	}

	if !info.Valid {
		return a.finish(req, info, model.RiskRed, false, "authentication failed")
	}

	eval := session.Evaluate(req.History)
	level := a.classifier.Classify(req.Message, &eval)

	authorized, reason := a.decide(info.Tier, level, eval.MessageCount)
	return a.finish(req, info, level, authorized, reason)
}

// decide applies the fixed tier matrix. The anonymous ceiling is a
// rate/exposure limit for unauthenticated sessions, not a risk-content
// rule: count must be strictly below the ceiling to pass.
func (a *Authorizer) decide(t model.Tier, level model.RiskLevel, messageCount int) (bool, string) {
	switch t {
	case model.TierAdmin, model.TierSanctuary:
		return true, ""

	case model.TierFree:
		if level.AtLeast(model.RiskOrange) {
			return false, fmt.Sprintf("free tier is limited to green and yellow risk (message classified %s)", level)
		}
		return true, ""

	case model.TierAnonymous:
		if messageCount >= a.cfg.AnonymousMessageCeiling {
			return false, fmt.Sprintf("anonymous session limit reached (%d messages)", messageCount)
		}
		if level != model.RiskGreen {
			return false, fmt.Sprintf("anonymous access is limited to green risk (message classified %s)", level)
		}
		return true, ""
	}

	// Unknown tier fails closed.
	return false, fmt.Sprintf("unknown tier %q", t)
}

func (a *Authorizer) finish(req Request, info model.TierInfo, level model.RiskLevel, authorized bool, reason string) Decision {
	record := audit.NewRecord(req.CallerID, info.Tier, level, authorized, reason, req.SessionID, req.Message)

	// Best-effort: a failing sink must not change the decision.
	_ = a.sink.Record(record)

	return Decision{
		Authorized: authorized,
		Risk:       level,
		Reason:     reason,
		Record:     record,
	}
}
