// Package scenario runs YAML-defined authorization test cases against the
// live gate configuration, so policy edits can be checked before rollout.
package scenario

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dkarpele/havengate/internal/authz"
	"github.com/dkarpele/havengate/internal/model"
)

// Run evaluates all cases in a scenario against the given authorizer.
// Cases are independent: each builds its own request and session history.
func Run(s *Scenario, a *authz.Authorizer) *RunResult {
	result := &RunResult{
		Name:  s.Name,
		Total: len(s.Cases),
	}

	for i, c := range s.Cases {
		req := authz.Request{
			CallerID:  c.Identity.CallerID,
			Email:     c.Identity.Email,
			Message:   c.Message,
			SessionID: fmt.Sprintf("scenario-%d", i),
			History:   historyMessages(c.History),
		}
		if t, ok := model.ParseTier(c.Identity.Tier); ok {
			req.Tier = t
		}

		decision := a.Authorize(req)

		actual := "deny"
		if decision.Authorized {
			actual = "allow"
		}
		expected := strings.ToLower(strings.TrimSpace(c.Expect))

		cr := CaseResult{
			Index:        i + 1,
			Message:      c.Message,
			Expected:     expected,
			Actual:       actual,
			ExpectedRisk: strings.ToLower(strings.TrimSpace(c.Risk)),
			ActualRisk:   string(decision.Risk),
			Reason:       decision.Reason,
		}

		cr.Passed = actual == expected && (cr.ExpectedRisk == "" || cr.ExpectedRisk == cr.ActualRisk)
		if cr.Passed {
			result.Passed++
		} else {
			result.Failed++
		}

		result.Cases = append(result.Cases, cr)
	}

	return result
}

// LoadAndRun loads a scenario YAML file and runs it against an authorizer
// built from the config at configPath (defaults when empty or missing).
// Scenario runs never emit audit records.
func LoadAndRun(path, configPath string) (*RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	cfg, err := authz.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	result := Run(&s, authz.New(cfg, nil, nil))
	result.File = path

	return result, nil
}

func historyMessages(history []CaseHistory) []model.Message {
	if len(history) == 0 {
		return nil
	}
	msgs := make([]model.Message, 0, len(history))
	for _, h := range history {
		msgs = append(msgs, model.Message{Text: h.Text, RiskTag: h.Risk})
	}
	return msgs
}
