package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dkarpele/havengate/internal/audit"
	"github.com/dkarpele/havengate/internal/authz"
	"github.com/dkarpele/havengate/internal/contract"
	"github.com/dkarpele/havengate/internal/integrity"
	"github.com/dkarpele/havengate/internal/risk"
	"github.com/dkarpele/havengate/internal/safety"
	"github.com/dkarpele/havengate/internal/thinkmode"
	"github.com/dkarpele/havengate/internal/validate"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration health and cross-table consistency",
	RunE:  runDoctor,
}

type checkResult struct {
	label  string
	ok     bool
	detail string
	fix    string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	var checks []checkResult

	// 1. Config directory.
	home, homeErr := os.UserHomeDir()
	configDir := ""
	if homeErr == nil {
		configDir = filepath.Join(home, ".havengate")
	}
	if configDir != "" {
		if info, err := os.Stat(configDir); err == nil && info.IsDir() {
			checks = append(checks, checkResult{label: "config directory", ok: true, detail: configDir})
		} else {
			checks = append(checks, checkResult{
				label:  "config directory",
				ok:     true,
				detail: "missing (built-in defaults in use)",
			})
		}
	} else {
		checks = append(checks, checkResult{label: "config directory", ok: false, detail: "cannot determine home directory"})
	}

	// 2. Each config table must load: defaults on absence, hard error on
	// an unparsable file.
	cfg, cfgHash, err := authz.LoadConfigWithHash("")
	checks = append(checks, loadCheck("authz.yaml", cfgHash, err))

	contracts, contractHash, err := contract.LoadWithHash("")
	checks = append(checks, loadCheck("contracts.yaml", contractHash, err))

	modes, modeHash, err := thinkmode.LoadWithHash("")
	checks = append(checks, loadCheck("modes.yaml", modeHash, err))

	if _, err := risk.Load(""); err != nil {
		checks = append(checks, checkResult{label: "risk.yaml", ok: false, detail: err.Error()})
	} else {
		checks = append(checks, checkResult{label: "risk.yaml", ok: true, detail: "loads"})
	}

	overrides, err := validate.Load("")
	if err != nil {
		checks = append(checks, checkResult{label: "validate.yaml", ok: false, detail: err.Error()})
	} else {
		checks = append(checks, checkResult{label: "validate.yaml", ok: true, detail: "loads"})
	}

	if _, err := safety.Load(""); err != nil {
		checks = append(checks, checkResult{label: "safety.yaml", ok: false, detail: err.Error()})
	} else {
		checks = append(checks, checkResult{label: "safety.yaml", ok: true, detail: "loads"})
	}

	// 3. Cross-table consistency over whatever actually loaded.
	if contracts != nil && modes != nil {
		issues := integrity.Check(contracts, modes, overrides)
		nErr := integrity.Errors(issues)
		switch {
		case nErr > 0:
			checks = append(checks, checkResult{
				label:  "table consistency",
				ok:     false,
				detail: fmt.Sprintf("%d errors, %d warnings", nErr, len(issues)-nErr),
			})
		case len(issues) > 0:
			checks = append(checks, checkResult{
				label:  "table consistency",
				ok:     true,
				detail: fmt.Sprintf("%d warnings", len(issues)),
			})
		default:
			checks = append(checks, checkResult{label: "table consistency", ok: true, detail: "tables agree"})
		}
		for _, i := range issues {
			fmt.Println("  " + i.String())
		}
	}

	// 4. Authorization parameters sanity.
	if cfg != nil {
		if cfg.AnonymousMessageCeiling > 0 && len(cfg.AdminEmails) > 0 {
			checks = append(checks, checkResult{
				label:  "authz parameters",
				ok:     true,
				detail: fmt.Sprintf("ceiling=%d, %d admin emails", cfg.AnonymousMessageCeiling, len(cfg.AdminEmails)),
			})
		} else {
			checks = append(checks, checkResult{
				label:  "authz parameters",
				ok:     false,
				detail: "ceiling or admin list empty",
				fix:    "review ~/.havengate/authz.yaml",
			})
		}
	}

	// 5. Audit chain, when a log exists.
	logPath := audit.DefaultPath()
	if _, err := os.Stat(logPath); err == nil {
		result := audit.Verify(logPath)
		if result.Valid {
			checks = append(checks, checkResult{
				label:  "audit chain",
				ok:     true,
				detail: fmt.Sprintf("%d entries verified", result.Lines),
			})
		} else {
			checks = append(checks, checkResult{
				label:  "audit chain",
				ok:     false,
				detail: fmt.Sprintf("broken at line %d: %s", result.ErrorLine, result.Error),
			})
		}
	} else {
		checks = append(checks, checkResult{label: "audit chain", ok: true, detail: "no log yet"})
	}

	// Print results.
	hasFailures := false
	for _, c := range checks {
		mark := "✓"
		if !c.ok {
			mark = "✗"
			hasFailures = true
		}
		line := fmt.Sprintf("%s %-20s %s", mark, c.label+":", c.detail)
		if !c.ok && c.fix != "" {
			line += fmt.Sprintf("  ->  %s", c.fix)
		}
		fmt.Println(line)
	}

	if hasFailures {
		fmt.Println()
		fmt.Println("Some checks failed.")
		return fmt.Errorf("doctor found issues")
	}

	fmt.Println()
	fmt.Println("All checks passed.")
	return nil
}

func loadCheck(label, hash string, err error) checkResult {
	if err != nil {
		return checkResult{label: label, ok: false, detail: err.Error()}
	}
	return checkResult{label: label, ok: true, detail: hash[:15] + "..."}
}
