package validate

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultOverrides holds the built-in per-activity rules layered on top of
// the structural checks. Activities absent here get structural checks only.
var DefaultOverrides = map[string]OverrideRule{
	"boundary-script": {
		MinLength: 60,
		Forbidden: []string{"you always", "you never"},
	},
	"coping-guide": {
		MinLength: 120,
	},
	"journal-starter": {
		MinLength: 60,
	},
	"self-check-quiz": {
		Forbidden: []string{"diagnos", "disorder"},
	},
}

type overrideFile struct {
	Overrides map[string]OverrideRule `yaml:"overrides"`
}

// Load reads override rules from path, merging them over the built-in
// table. Empty path falls back to ~/.havengate/validate.yaml. A missing
// file returns the defaults; invalid YAML is an error.
func Load(path string) (map[string]OverrideRule, error) {
	if path == "" {
		path = DefaultPath()
	}

	merged := make(map[string]OverrideRule, len(DefaultOverrides))
	for id, rule := range DefaultOverrides {
		merged[id] = rule
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return merged, nil
		}
		return nil, fmt.Errorf("read override config: %w", err)
	}

	var f overrideFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse override config: %w", err)
	}
	for id, rule := range f.Overrides {
		merged[id] = rule
	}

	return merged, nil
}

// DefaultPath returns ~/.havengate/validate.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "validate.yaml"
	}
	return filepath.Join(home, ".havengate", "validate.yaml")
}
