package mcp

import (
	"context"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dkarpele/havengate/internal/authz"
	"github.com/dkarpele/havengate/internal/model"
	"github.com/dkarpele/havengate/internal/pipeline"
	"github.com/dkarpele/havengate/internal/tier"
)

// --- Input/Output types ---

// HistoryMessage is one prior session message.
type HistoryMessage struct {
	Text      string `json:"text" jsonschema:"message text"`
	Timestamp string `json:"timestamp,omitempty" jsonschema:"RFC 3339 timestamp"`
	Risk      string `json:"risk,omitempty" jsonschema:"previously assigned risk level"`
}

// AuthorizeInput defines parameters for the havengate_authorize tool.
type AuthorizeInput struct {
	CallerID  string           `json:"caller_id,omitempty" jsonschema:"caller id"`
	Email     string           `json:"email,omitempty" jsonschema:"caller email"`
	Tier      string           `json:"tier,omitempty" jsonschema:"externally resolved tier hint"`
	SessionID string           `json:"session_id,omitempty" jsonschema:"session id"`
	Message   string           `json:"message" jsonschema:"inbound message text"`
	History   []HistoryMessage `json:"history,omitempty" jsonschema:"prior session messages"`
}

// AuthorizeOutput is the gate decision.
type AuthorizeOutput struct {
	Authorized bool   `json:"authorized"`
	Risk       string `json:"risk"`
	Reason     string `json:"reason,omitempty"`
	Tier       string `json:"tier"`
	RecordID   string `json:"record_id"`
}

// RunInput defines parameters for the havengate_run tool.
type RunInput struct {
	Activity string `json:"activity" jsonschema:"activity id"`
	Input    string `json:"input" jsonschema:"user input for the activity"`
	Mode     string `json:"mode,omitempty" jsonschema:"requested thinking mode"`
}

// RunOutput contains the delivered output or the stage failure.
type RunOutput struct {
	Output   string `json:"output,omitempty"`
	Mode     string `json:"mode,omitempty"`
	Safety   string `json:"safety,omitempty"`
	FailedAt string `json:"failed_at,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// FeatureInput defines parameters for the havengate_feature tool.
type FeatureInput struct {
	Tier    string `json:"tier" jsonschema:"caller tier"`
	Feature string `json:"feature" jsonschema:"feature name"`
}

// FeatureOutput reports visibility.
type FeatureOutput struct {
	Allowed bool `json:"allowed"`
}

// SafetyInput defines parameters for the havengate_safety tool.
type SafetyInput struct {
	Input  string `json:"input" jsonschema:"user input text"`
	Output string `json:"output,omitempty" jsonschema:"model output text"`
}

// SafetyOutput is the filter verdict.
type SafetyOutput struct {
	Outcome  string `json:"outcome"`
	Category string `json:"category,omitempty"`
	Message  string `json:"message,omitempty"`
}

// ContractsInput is empty.
type ContractsInput struct{}

// ContractsOutput lists registered activities.
type ContractsOutput struct {
	Activities []ActivityInfo `json:"activities"`
}

// ActivityInfo describes one registered activity.
type ActivityInfo struct {
	ID          string `json:"id"`
	OutputType  string `json:"output_type"`
	DefaultMode string `json:"default_mode,omitempty"`
}

// --- Handlers ---

func (s *Server) handleAuthorize(ctx context.Context, req *mcpsdk.CallToolRequest, input AuthorizeInput) (*mcpsdk.CallToolResult, AuthorizeOutput, error) {
	areq := authz.Request{
		CallerID:  input.CallerID,
		Email:     input.Email,
		Message:   input.Message,
		SessionID: input.SessionID,
	}
	if t, ok := model.ParseTier(input.Tier); ok {
		areq.Tier = t
	}
	for _, h := range input.History {
		areq.History = append(areq.History, model.Message{
			Text:      h.Text,
			Timestamp: h.Timestamp,
			RiskTag:   h.Risk,
		})
	}

	s.mu.RLock()
	decision := s.authorizer.Authorize(areq)
	s.mu.RUnlock()

	out := AuthorizeOutput{
		Authorized: decision.Authorized,
		Risk:       string(decision.Risk),
		Reason:     decision.Reason,
		Tier:       string(decision.Record.Tier),
		RecordID:   decision.Record.ID,
	}
	if !decision.Authorized {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}

func (s *Server) handleRun(ctx context.Context, req *mcpsdk.CallToolRequest, input RunInput) (*mcpsdk.CallToolResult, RunOutput, error) {
	if s.client == nil {
		return nil, RunOutput{}, fmt.Errorf("no model endpoint configured; start the server with --api-url")
	}

	s.mu.RLock()
	runner := s.runner
	s.mu.RUnlock()

	result, err := runner.Run(ctx, input.Activity, input.Input, input.Mode, s.client.Complete)
	if err != nil {
		var se *pipeline.StageError
		if errors.As(err, &se) {
			out := RunOutput{FailedAt: string(se.Stage), Reason: se.Error()}
			return &mcpsdk.CallToolResult{IsError: true}, out, nil
		}
		return nil, RunOutput{}, err
	}

	return nil, RunOutput{
		Output: result.Output,
		Mode:   result.Mode,
		Safety: string(result.Safety.Outcome),
	}, nil
}

func (s *Server) handleFeature(ctx context.Context, req *mcpsdk.CallToolRequest, input FeatureInput) (*mcpsdk.CallToolResult, FeatureOutput, error) {
	t, ok := model.ParseTier(input.Tier)
	if !ok {
		// Unknown tiers fail closed rather than erroring; visibility
		// checks should never take a UI down.
		return nil, FeatureOutput{Allowed: false}, nil
	}
	return nil, FeatureOutput{Allowed: tier.CheckFeatureAccess(t, input.Feature)}, nil
}

func (s *Server) handleSafety(ctx context.Context, req *mcpsdk.CallToolRequest, input SafetyInput) (*mcpsdk.CallToolResult, SafetyOutput, error) {
	s.mu.RLock()
	result := s.filter.Check(input.Input, input.Output)
	s.mu.RUnlock()

	return nil, SafetyOutput{
		Outcome:  string(result.Outcome),
		Category: result.Category,
		Message:  result.Message,
	}, nil
}

func (s *Server) handleContracts(ctx context.Context, req *mcpsdk.CallToolRequest, input ContractsInput) (*mcpsdk.CallToolResult, ContractsOutput, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out ContractsOutput
	for _, id := range s.contracts.IDs() {
		c, _ := s.contracts.Get(id)
		out.Activities = append(out.Activities, ActivityInfo{
			ID:          id,
			OutputType:  string(c.OutputType),
			DefaultMode: s.modes.Resolve(id, ""),
		})
	}
	return nil, out, nil
}
