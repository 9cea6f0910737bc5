// Package validate checks produced outputs against their activity
// contracts. Validation is a pure function: both the structural check and
// the per-activity override run, and every violation is reported at once.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dkarpele/havengate/internal/contract"
	"github.com/dkarpele/havengate/internal/model"
)

// minFreeTextLength is the floor for free-text output types.
const minFreeTextLength = 30

// numberedListRe matches a numbered-list marker at a line start.
var numberedListRe = regexp.MustCompile(`(?m)^\s*\d+[.)]\s`)

// checklistMarkerRe matches checklist item markers.
var checklistMarkerRe = regexp.MustCompile(`(?m)^\s*(-\s|\[\s?\]|\d+[.)]\s)`)

// Result reports whether an output satisfies its contract, with one
// human-readable reason per violation.
type Result struct {
	Valid   bool     `json:"valid"`
	Reasons []string `json:"reasons,omitempty"`
}

// OverrideRule layers stricter per-activity requirements on top of the
// structural check.
type OverrideRule struct {
	MinLength int      `yaml:"min_length"`
	Required  []string `yaml:"required"`
	Forbidden []string `yaml:"forbidden"`
}

// Validator checks outputs against the contract registry plus override
// rules. Safe for concurrent use; it holds only immutable tables.
type Validator struct {
	registry  *contract.Registry
	overrides map[string]OverrideRule
}

// New creates a Validator. A nil overrides map uses the built-in rules.
func New(registry *contract.Registry, overrides map[string]OverrideRule) *Validator {
	if overrides == nil {
		overrides = DefaultOverrides
	}
	return &Validator{registry: registry, overrides: overrides}
}

// Validate checks one output against its activity's contract. Empty or
// whitespace-only output fails immediately regardless of type; otherwise
// the structural check and the override rule both run and their failures
// accumulate, so callers see every violation at once.
func (v *Validator) Validate(activityID, output string) Result {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return Result{Reasons: []string{"output is empty"}}
	}

	c, ok := v.registry.Get(activityID)
	if !ok {
		return Result{Reasons: []string{fmt.Sprintf("no contract for activity %q", activityID)}}
	}

	var reasons []string
	reasons = append(reasons, structural(c.OutputType, trimmed)...)
	if rule, ok := v.overrides[activityID]; ok {
		reasons = append(reasons, applyOverride(rule, trimmed)...)
	}

	return Result{Valid: len(reasons) == 0, Reasons: reasons}
}

// structural dispatches on the contract's declared output type.
func structural(t model.OutputType, output string) []string {
	var reasons []string

	switch t {
	case model.OutIdeas:
		if countLines(output) < 3 && !numberedListRe.MatchString(output) {
			reasons = append(reasons, "ideas output needs at least 3 lines or a numbered list")
		}

	case model.OutQuiz:
		if !strings.Contains(output, "?") {
			reasons = append(reasons, "quiz output has no question mark")
		}
		if !strings.Contains(strings.ToLower(output), "answer") {
			reasons = append(reasons, `quiz output has no "answer" section`)
		}

	case model.OutChecklist:
		if countLines(output) < 3 && !checklistMarkerRe.MatchString(output) {
			reasons = append(reasons, "checklist output needs at least 3 lines or item markers")
		}

	default:
		// Free-text types: draft, script, plan, analysis, summary,
		// explanation, guide.
		if len(output) < minFreeTextLength {
			reasons = append(reasons, fmt.Sprintf("%s output shorter than %d characters", t, minFreeTextLength))
		}
	}

	return reasons
}

func applyOverride(rule OverrideRule, output string) []string {
	var reasons []string
	lower := strings.ToLower(output)

	if rule.MinLength > 0 && len(output) < rule.MinLength {
		reasons = append(reasons, fmt.Sprintf("output shorter than required %d characters", rule.MinLength))
	}
	for _, s := range rule.Required {
		if !strings.Contains(lower, strings.ToLower(s)) {
			reasons = append(reasons, fmt.Sprintf("required text %q missing", s))
		}
	}
	for _, s := range rule.Forbidden {
		if s != "" && strings.Contains(lower, strings.ToLower(s)) {
			reasons = append(reasons, fmt.Sprintf("forbidden text %q present", s))
		}
	}

	return reasons
}

func countLines(s string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
