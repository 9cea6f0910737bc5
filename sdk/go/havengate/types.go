package havengate

import (
	"github.com/dkarpele/havengate/internal/audit"
	"github.com/dkarpele/havengate/internal/authz"
	"github.com/dkarpele/havengate/internal/model"
	"github.com/dkarpele/havengate/internal/pipeline"
	"github.com/dkarpele/havengate/internal/safety"
	"github.com/dkarpele/havengate/internal/validate"
)

// RiskLevel is the ordered severity band assigned to a message.
type RiskLevel = model.RiskLevel

// Risk levels, in ascending severity.
const (
	RiskGreen  = model.RiskGreen
	RiskYellow = model.RiskYellow
	RiskOrange = model.RiskOrange
	RiskRed    = model.RiskRed
)

// Tier is the caller permission class.
type Tier = model.Tier

// Tiers.
const (
	TierAnonymous = model.TierAnonymous
	TierFree      = model.TierFree
	TierSanctuary = model.TierSanctuary
	TierAdmin     = model.TierAdmin
)

// Message is one prior message in a session history.
type Message = model.Message

// Request carries one inbound message for authorization.
type Request = authz.Request

// Decision is the outcome of one authorization call.
type Decision = authz.Decision

// Record is the privacy-preserving justification entry attached to every
// Decision.
type Record = audit.Record

// ModelFunc is the external model boundary supplied per activity run.
type ModelFunc = pipeline.ModelFunc

// Outcome is the result of a successful activity run.
type Outcome = pipeline.Outcome

// Stage names one pipeline step.
type Stage = pipeline.Stage

// StageError is a typed pipeline failure tagged with its stage.
type StageError = pipeline.StageError

// Sink receives justification records; SinkFunc adapts a function.
type (
	Sink     = audit.Sink
	SinkFunc = audit.SinkFunc
)

// SafetyResult is the safety filter's verdict.
type SafetyResult = safety.Result

// ValidationResult reports contract violations in an output.
type ValidationResult = validate.Result
