// Package integrity cross-checks the policy tables against each other.
// Each table is individually valid by construction; this catches the
// inter-table drift that single-table loading cannot see, such as a mode
// entry pointing at an activity that has no contract.
package integrity

import (
	"fmt"
	"sort"

	"github.com/dkarpele/havengate/internal/contract"
	"github.com/dkarpele/havengate/internal/model"
	"github.com/dkarpele/havengate/internal/prompt"
	"github.com/dkarpele/havengate/internal/thinkmode"
	"github.com/dkarpele/havengate/internal/validate"
)

// Issue severities. Errors mean a request will fail closed at runtime;
// warnings mean a table entry is inert or unreachable.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Issue is one cross-table finding.
type Issue struct {
	Severity string `json:"severity"`
	Source   string `json:"source"`
	Activity string `json:"activity"`
	Detail   string `json:"detail"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%-7s %-12s %-18s %s", i.Severity, i.Source, i.Activity, i.Detail)
}

// Check runs all cross-table checks and returns findings sorted by
// severity, then activity id. An empty slice means the tables agree.
func Check(contracts *contract.Registry, modes *thinkmode.Tables, overrides map[string]validate.OverrideRule) []Issue {
	var issues []Issue

	contractIDs := make(map[string]bool)
	for _, id := range contracts.IDs() {
		contractIDs[id] = true
	}
	modeIDs := modes.ActivityIDs()

	// Mode defaults must reference contracted activities; a request for
	// such an activity resolves a mode but then fails at load-contract.
	for id := range modeIDs {
		if !contractIDs[id] {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Source:   "modes",
				Activity: id,
				Detail:   "mode entry references an activity with no contract",
			})
		}
	}

	// Allowed/override/surfacing entries for activities without a
	// defaults entry never take effect: resolution starts at Defaults.
	for id := range modes.Allowed {
		if _, ok := modes.Defaults[id]; !ok {
			issues = append(issues, orphan("modes", id, "allowed-modes"))
		}
	}
	for id := range modes.Overrides {
		if _, ok := modes.Defaults[id]; !ok {
			issues = append(issues, orphan("modes", id, "override"))
		}
	}
	for id := range modes.Surfacing {
		if _, ok := modes.Defaults[id]; !ok {
			issues = append(issues, orphan("modes", id, "surfacing"))
		}
	}

	// A real default mode missing from the allowed set always falls back
	// to no mode; the default entry is dead weight.
	for id, def := range modes.Defaults {
		if def == thinkmode.NoMode {
			continue
		}
		if !contains(modes.Allowed[id], def) {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Source:   "modes",
				Activity: id,
				Detail:   fmt.Sprintf("default mode %q is not in the allowed set", def),
			})
		}
	}

	// Whitelisted-but-not-allowed modes can never win an override.
	for id, ov := range modes.Overrides {
		for _, m := range ov.Whitelist {
			if !contains(modes.Allowed[id], m) {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Source:   "modes",
					Activity: id,
					Detail:   fmt.Sprintf("whitelisted mode %q is not in the allowed set", m),
				})
			}
		}
		// Overrides surface only for explicit activities.
		if ov.Permitted && modes.SurfacingFor(id) != model.SurfacingExplicit {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Source:   "modes",
				Activity: id,
				Detail:   "override permitted but surfacing is implicit; overrides are unreachable",
			})
		}
	}

	// Contracted activities without a dedicated prompt fragment run on
	// the generic fallback fragment.
	for id := range contractIDs {
		if !prompt.HasFragment(id) {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Source:   "prompts",
				Activity: id,
				Detail:   "no dedicated prompt fragment; generic fallback in use",
			})
		}
	}

	// Validator override rules for unknown activities never run.
	for id := range overrides {
		if !contractIDs[id] {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Source:   "validation",
				Activity: id,
				Detail:   "override rule references an activity with no contract",
			})
		}
	}

	sort.Slice(issues, func(a, b int) bool {
		if issues[a].Severity != issues[b].Severity {
			return issues[a].Severity == SeverityError
		}
		if issues[a].Activity != issues[b].Activity {
			return issues[a].Activity < issues[b].Activity
		}
		return issues[a].Detail < issues[b].Detail
	})

	return issues
}

// CheckDefaults runs Check over the built-in tables. Used by tests and
// the doctor command's baseline mode.
func CheckDefaults() []Issue {
	return Check(contract.NewDefault(), thinkmode.DefaultTables(), validate.DefaultOverrides)
}

// Errors reports how many findings are errors.
func Errors(issues []Issue) int {
	n := 0
	for _, i := range issues {
		if i.Severity == SeverityError {
			n++
		}
	}
	return n
}

func orphan(source, id, table string) Issue {
	return Issue{
		Severity: SeverityWarning,
		Source:   source,
		Activity: id,
		Detail:   fmt.Sprintf("%s entry has no defaults entry and never takes effect", table),
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
