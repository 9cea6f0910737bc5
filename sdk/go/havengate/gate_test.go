package havengate

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestGate(t *testing.T) *Gate {
	t.Helper()
	dir := t.TempDir()
	g, err := New(
		WithConfig(filepath.Join(dir, "authz.yaml")),
		WithRiskConfig(filepath.Join(dir, "risk.yaml")),
		WithContracts(filepath.Join(dir, "contracts.yaml")),
		WithModes(filepath.Join(dir, "modes.yaml")),
		WithValidation(filepath.Join(dir, "validate.yaml")),
		WithSafetyConfig(filepath.Join(dir, "safety.yaml")),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestAuthorizeRoundTrip(t *testing.T) {
	g := newTestGate(t)

	decision := g.Authorize(Request{
		CallerID: "u1",
		Email:    "sam@example.com",
		Message:  "help me weigh these two offers",
	})
	if !decision.Authorized || decision.Risk != RiskGreen {
		t.Fatalf("unexpected decision: %+v", decision)
	}
	if decision.Record.ID == "" {
		t.Error("decision carries no justification record")
	}
}

func TestAuthorizeSinkReceivesRecords(t *testing.T) {
	dir := t.TempDir()
	var got []Record
	g, err := New(
		WithConfig(filepath.Join(dir, "authz.yaml")),
		WithAuditSink(SinkFunc(func(r Record) error {
			got = append(got, r)
			return nil
		})),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	g.Authorize(Request{CallerID: "u1", Email: "sam@example.com", Message: "morning walk ideas"})
	g.Authorize(Request{CallerID: "u1", Email: "sam@example.com", Message: "I want to end my life"})

	if len(got) != 2 {
		t.Fatalf("sink received %d records, want 2", len(got))
	}
	if !got[0].Authorized || got[1].Authorized {
		t.Errorf("record outcomes wrong: %+v", got)
	}
}

func TestAuthorizeAuditLog(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "gate.jsonl")
	g, err := New(
		WithConfig(filepath.Join(dir, "authz.yaml")),
		WithAuditLog(logPath),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	g.Authorize(Request{CallerID: "u1", Email: "sam@example.com", Message: "morning walk ideas"})
	if err := g.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestRunActivity(t *testing.T) {
	g := newTestGate(t)

	modelFn := func(_ context.Context, prompt string) (string, error) {
		return "Option one gives growth but less stability; option two keeps your routine and colleagues intact.", nil
	}

	out, err := g.RunActivity(context.Background(), "decision-helper",
		"I am deciding between two offers with different tradeoffs.", "", modelFn)
	if err != nil {
		t.Fatalf("RunActivity: %v", err)
	}
	if out.Mode != "pros-cons" {
		t.Errorf("mode = %q, want pros-cons", out.Mode)
	}
	if out.Output == "" {
		t.Error("no output delivered")
	}
}

func TestRunActivityStageError(t *testing.T) {
	g := newTestGate(t)

	_, err := g.RunActivity(context.Background(), "night-review", "review my day", "",
		func(_ context.Context, _ string) (string, error) { return "", nil })

	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StageError", err)
	}
	if se.Stage != "load-contract" {
		t.Errorf("failed at %s, want load-contract", se.Stage)
	}
}

func TestCheckFeatureAccess(t *testing.T) {
	g := newTestGate(t)

	if !g.CheckFeatureAccess(TierSanctuary, "sanctuary_rooms") {
		t.Error("sanctuary denied its own feature")
	}
	if g.CheckFeatureAccess(TierAnonymous, "journaling") {
		t.Error("anonymous granted a free feature")
	}
	if !g.CheckFeatureAccess(TierAdmin, "anything") {
		t.Error("admin not granted unconditionally")
	}
}
