// Package pipeline runs one activity request through the fixed stage
// order, from input gate to output delivery. Exactly one model call per
// run; the runner never retries or fans out.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/dkarpele/havengate/internal/contract"
	"github.com/dkarpele/havengate/internal/model"
	"github.com/dkarpele/havengate/internal/prompt"
	"github.com/dkarpele/havengate/internal/safety"
	"github.com/dkarpele/havengate/internal/thinkmode"
	"github.com/dkarpele/havengate/internal/validate"
)

// Stage names one step of a pipeline run.
type Stage string

// Pipeline stage order (must not be changed):
//  1. input-gate
//  2. load-contract
//  3. resolve-thinking-mode
//  4. apply-focus
//  5. assemble-prompt
//  6. single-model-call
//  7. output-validation
//  8. safety-layer
//  9. deliver-output
const (
	StageInputGate   Stage = "input-gate"
	StageContract    Stage = "load-contract"
	StageMode        Stage = "resolve-thinking-mode"
	StageFocus       Stage = "apply-focus"
	StagePrompt      Stage = "assemble-prompt"
	StageModelCall   Stage = "single-model-call"
	StageValidation  Stage = "output-validation"
	StageSafetyLayer Stage = "safety-layer"
	StageDeliver     Stage = "deliver-output"
)

// Order is the canonical stage sequence of a successful run.
var Order = []Stage{
	StageInputGate,
	StageContract,
	StageMode,
	StageFocus,
	StagePrompt,
	StageModelCall,
	StageValidation,
	StageSafetyLayer,
	StageDeliver,
}

// StageError is a typed failure tagged with the stage that produced it.
// Every pipeline failure is one of these; the runner never returns an
// untagged error for a well-formed call.
type StageError struct {
	Stage   Stage
	Reason  string
	Details []string
	Err     error
}

func (e *StageError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Stage, e.Reason)
	if len(e.Details) > 0 {
		msg += " (" + strings.Join(e.Details, "; ") + ")"
	}
	return msg
}

func (e *StageError) Unwrap() error { return e.Err }

// ModelFunc is the external model boundary, supplied per run by the
// caller. It is the only suspension point of a pipeline run; the context
// carries the caller's timeout and cancellation.
type ModelFunc func(ctx context.Context, prompt string) (string, error)

// FocusFunc is the emphasis hook applied to the user input before prompt
// assembly. The baseline hook returns the input unchanged.
type FocusFunc func(activityID, modeID, userInput string) string

// Outcome is the result of a successful run. Trace records every stage
// entered, in order.
type Outcome struct {
	Output string        `json:"output"`
	Prompt string        `json:"prompt"`
	Mode   string        `json:"mode,omitempty"`
	Safety safety.Result `json:"safety"`
	Trace  []Stage       `json:"trace"`
}

// Runner executes pipeline runs against immutable policy tables. Safe
// for concurrent use; concurrent runs share no mutable state.
type Runner struct {
	contracts *contract.Registry
	modes     *thinkmode.Tables
	validator *validate.Validator
	filter    *safety.Filter
	focus     FocusFunc
}

// Option configures a Runner.
type Option func(*Runner)

// WithContracts replaces the built-in contract registry.
func WithContracts(r *contract.Registry) Option {
	return func(p *Runner) { p.contracts = r }
}

// WithModes replaces the built-in thinking-mode tables.
func WithModes(t *thinkmode.Tables) Option {
	return func(p *Runner) { p.modes = t }
}

// WithValidator replaces the built-in output validator.
func WithValidator(v *validate.Validator) Option {
	return func(p *Runner) { p.validator = v }
}

// WithSafety replaces the built-in safety filter.
func WithSafety(f *safety.Filter) Option {
	return func(p *Runner) { p.filter = f }
}

// WithFocus installs an emphasis hook for the apply-focus stage.
func WithFocus(f FocusFunc) Option {
	return func(p *Runner) { p.focus = f }
}

// NewRunner builds a Runner over the built-in tables, then applies opts.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		contracts: contract.NewDefault(),
		modes:     thinkmode.DefaultTables(),
		filter:    safety.NewDefault(),
		focus:     func(_, _, input string) string { return input },
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.validator == nil {
		r.validator = validate.New(r.contracts, nil)
	}
	return r
}

// Run executes one activity request through the stage order (must not
// be changed):
//  1. input-gate: reject empty or whitespace-only input.
//  2. load-contract: fail closed if the activity has no contract.
//  3. resolve-thinking-mode: resolve the mode, honoring the override
//     gates; no entry means no mode, not an error.
//  4. apply-focus: run the caller's emphasis hook over the input.
//  5. assemble-prompt: deterministic concatenation.
//  6. single-model-call: the one external call, governed by ctx.
//  7. output-validation: contract checks, all violations reported.
//  8. safety-layer: block fails the run; redirect replaces the output
//     with the category's redirect message and still delivers.
//  9. deliver-output.
func (p *Runner) Run(ctx context.Context, activityID, userInput, requestedMode string, modelFn ModelFunc) (*Outcome, error) {
	out := &Outcome{Trace: make([]Stage, 0, len(Order))}

	out.Trace = append(out.Trace, StageInputGate)
	if strings.TrimSpace(userInput) == "" {
		return nil, &StageError{Stage: StageInputGate, Reason: "missing input"}
	}

	out.Trace = append(out.Trace, StageContract)
	if _, ok := p.contracts.Get(activityID); !ok {
		return nil, &StageError{Stage: StageContract, Reason: "missing contract", Details: []string{activityID}}
	}

	out.Trace = append(out.Trace, StageMode)
	out.Mode = p.modes.Resolve(activityID, requestedMode)

	out.Trace = append(out.Trace, StageFocus)
	focused := p.focus(activityID, out.Mode, userInput)

	out.Trace = append(out.Trace, StagePrompt)
	out.Prompt = prompt.Assemble(activityID, out.Mode, focused)

	out.Trace = append(out.Trace, StageModelCall)
	if modelFn == nil {
		return nil, &StageError{Stage: StageModelCall, Reason: "missing model function"}
	}
	raw, err := modelFn(ctx, out.Prompt)
	if err != nil {
		return nil, &StageError{Stage: StageModelCall, Reason: "model call failed", Err: err}
	}

	out.Trace = append(out.Trace, StageValidation)
	if res := p.validator.Validate(activityID, raw); !res.Valid {
		return nil, &StageError{Stage: StageValidation, Reason: "output validation failed", Details: res.Reasons}
	}

	out.Trace = append(out.Trace, StageSafetyLayer)
	out.Safety = p.filter.Check(userInput, raw)
	switch out.Safety.Outcome {
	case model.SafetyBlock:
		return nil, &StageError{Stage: StageSafetyLayer, Reason: "safety layer blocked", Details: []string{out.Safety.Category}}
	case model.SafetyRedirect:
		raw = out.Safety.Message
	}

	out.Trace = append(out.Trace, StageDeliver)
	out.Output = raw
	return out, nil
}
