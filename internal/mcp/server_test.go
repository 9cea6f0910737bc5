package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	// Point every table at a missing file so the built-in defaults load
	// regardless of the host's ~/.havengate.
	dir := t.TempDir()
	cfg := Config{
		AuthzPath:     filepath.Join(dir, "authz.yaml"),
		RiskPath:      filepath.Join(dir, "risk.yaml"),
		ContractsPath: filepath.Join(dir, "contracts.yaml"),
		ModesPath:     filepath.Join(dir, "modes.yaml"),
		ValidatePath:  filepath.Join(dir, "validate.yaml"),
		SafetyPath:    filepath.Join(dir, "safety.yaml"),
	}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("failed to create MCP server: %v", err)
	}
	return s
}

func TestAuthorizeAllowed(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	result, out, err := s.handleAuthorize(ctx, &mcpsdk.CallToolRequest{}, AuthorizeInput{
		CallerID: "u1",
		Email:    "sam@example.com",
		Message:  "what should I have for breakfast",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil && result.IsError {
		t.Fatal("expected success, got error result")
	}
	if !out.Authorized || out.Risk != "green" || out.Tier != "free" {
		t.Fatalf("unexpected decision: %+v", out)
	}
	if out.RecordID == "" {
		t.Fatal("decision has no record id")
	}
}

func TestAuthorizeDenied(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	result, out, err := s.handleAuthorize(ctx, &mcpsdk.CallToolRequest{}, AuthorizeInput{
		CallerID: "u1",
		Email:    "sam@example.com",
		Message:  "everything feels hopeless lately",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected IsError result for denied message")
	}
	if out.Authorized || out.Risk != "orange" {
		t.Fatalf("unexpected decision: %+v", out)
	}
}

func TestAuthorizeHistoryCeiling(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	history := make([]HistoryMessage, 5)
	for i := range history {
		history[i] = HistoryMessage{Text: "earlier message"}
	}

	result, out, err := s.handleAuthorize(ctx, &mcpsdk.CallToolRequest{}, AuthorizeInput{
		Message: "what should I have for breakfast",
		History: history,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.IsError || out.Authorized {
		t.Fatalf("anonymous caller at the ceiling was not denied: %+v", out)
	}
}

func TestRunWithoutEndpoint(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, _, err := s.handleRun(ctx, &mcpsdk.CallToolRequest{}, RunInput{
		Activity: "decision-helper",
		Input:    "two offers",
	})
	if err == nil {
		t.Fatal("expected error when no model endpoint is configured")
	}
}

func TestFeatureCheck(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	cases := []struct {
		tier, feature string
		allowed       bool
	}{
		{"anonymous", "chat", true},
		{"anonymous", "journaling", false},
		{"free", "journaling", true},
		{"sanctuary", "sanctuary_rooms", true},
		{"admin", "anything_at_all", true},
		{"royalty", "chat", false},
	}
	for _, tc := range cases {
		_, out, err := s.handleFeature(ctx, &mcpsdk.CallToolRequest{}, FeatureInput{
			Tier:    tc.tier,
			Feature: tc.feature,
		})
		if err != nil {
			t.Fatalf("%s/%s: unexpected error: %v", tc.tier, tc.feature, err)
		}
		if out.Allowed != tc.allowed {
			t.Errorf("%s/%s: allowed = %v, want %v", tc.tier, tc.feature, out.Allowed, tc.allowed)
		}
	}
}

func TestSafetyDryRun(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleSafety(ctx, &mcpsdk.CallToolRequest{}, SafetyInput{
		Input: "I want to kill myself",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Outcome != "redirect" || out.Category != "self-harm" {
		t.Fatalf("unexpected verdict: %+v", out)
	}

	_, ok, err := s.handleSafety(ctx, &mcpsdk.CallToolRequest{}, SafetyInput{
		Input:  "plan my evenings",
		Output: "Here is a wind-down checklist for your schedule.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok.Outcome != "allow" {
		t.Fatalf("benign pair not allowed: %+v", ok)
	}
}

func TestContractsList(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleContracts(ctx, &mcpsdk.CallToolRequest{}, ContractsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Activities) != 12 {
		t.Fatalf("expected 12 activities, got %d", len(out.Activities))
	}
	found := false
	for _, a := range out.Activities {
		if a.ID == "decision-helper" {
			found = true
			if a.OutputType != "analysis" || a.DefaultMode != "pros-cons" {
				t.Errorf("decision-helper entry wrong: %+v", a)
			}
		}
	}
	if !found {
		t.Error("decision-helper missing from listing")
	}
}

func TestReloadPicksUpConfigEdit(t *testing.T) {
	dir := t.TempDir()
	authzPath := filepath.Join(dir, "authz.yaml")
	cfg := Config{
		AuthzPath:     authzPath,
		RiskPath:      filepath.Join(dir, "risk.yaml"),
		ContractsPath: filepath.Join(dir, "contracts.yaml"),
		ModesPath:     filepath.Join(dir, "modes.yaml"),
		ValidatePath:  filepath.Join(dir, "validate.yaml"),
		SafetyPath:    filepath.Join(dir, "safety.yaml"),
	}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	before := s.ConfigHash()

	data := []byte("anonymous_message_ceiling: 2\n")
	if err := os.WriteFile(authzPath, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if s.ConfigHash() == before {
		t.Error("config hash unchanged after reload of edited file")
	}

	// The lowered ceiling must now apply.
	history := []HistoryMessage{{Text: "one"}, {Text: "two"}}
	_, out, err := s.handleAuthorize(context.Background(), &mcpsdk.CallToolRequest{}, AuthorizeInput{
		Message: "what should I have for breakfast",
		History: history,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Authorized {
		t.Error("reloaded ceiling not enforced")
	}
}

func TestReloadKeepsTablesOnBadConfig(t *testing.T) {
	dir := t.TempDir()
	authzPath := filepath.Join(dir, "authz.yaml")
	cfg := Config{
		AuthzPath:     authzPath,
		RiskPath:      filepath.Join(dir, "risk.yaml"),
		ContractsPath: filepath.Join(dir, "contracts.yaml"),
		ModesPath:     filepath.Join(dir, "modes.yaml"),
		ValidatePath:  filepath.Join(dir, "validate.yaml"),
		SafetyPath:    filepath.Join(dir, "safety.yaml"),
	}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := os.WriteFile(authzPath, []byte("admin_emails: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(); err == nil {
		t.Fatal("invalid config did not fail reload")
	}

	// Previous tables still serve.
	_, out, err := s.handleAuthorize(context.Background(), &mcpsdk.CallToolRequest{}, AuthorizeInput{
		CallerID: "u1",
		Email:    "sam@example.com",
		Message:  "what should I have for breakfast",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Authorized {
		t.Error("server stopped serving after failed reload")
	}
}

func TestReloaderDebounce(t *testing.T) {
	dir := t.TempDir()
	authzPath := filepath.Join(dir, "authz.yaml")
	if err := os.WriteFile(authzPath, []byte("anonymous_message_ceiling: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Config{
		AuthzPath:     authzPath,
		RiskPath:      filepath.Join(dir, "risk.yaml"),
		ContractsPath: filepath.Join(dir, "contracts.yaml"),
		ModesPath:     filepath.Join(dir, "modes.yaml"),
		ValidatePath:  filepath.Join(dir, "validate.yaml"),
		SafetyPath:    filepath.Join(dir, "safety.yaml"),
	}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	before := s.ConfigHash()

	r, err := NewReloader(s)
	if err != nil {
		t.Fatalf("NewReloader: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = r.Run(ctx)
		close(done)
	}()

	if err := os.WriteFile(authzPath, []byte("anonymous_message_ceiling: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for s.ConfigHash() == before {
		select {
		case <-deadline:
			t.Fatal("hot reload did not trigger")
		case <-time.After(50 * time.Millisecond):
		}
	}

	cancel()
	<-done
}

func TestToolRegistration(t *testing.T) {
	s := newTestServer(t)
	if s.mcpServer == nil {
		t.Fatal("expected MCP server to be initialized")
	}
}
