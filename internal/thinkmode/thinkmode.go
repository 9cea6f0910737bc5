// Package thinkmode chooses the reasoning mode an activity runs in. Policy
// lives in four tables keyed by the same activity-id namespace as the
// contract registry; resolution is a pure function over them.
package thinkmode

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dkarpele/havengate/internal/model"
)

// NoMode is the sentinel default meaning "run without a mode".
const NoMode = "default"

// Override declares whether callers may request a mode for an activity,
// and which mode ids they may request.
type Override struct {
	Permitted bool     `yaml:"permitted"`
	Whitelist []string `yaml:"whitelist"`
}

// Tables holds the four independent thinking-mode policy tables.
type Tables struct {
	// Defaults maps activity id to its default mode id, or NoMode.
	Defaults map[string]string `yaml:"defaults"`
	// Allowed maps activity id to the set of modes valid for it.
	Allowed map[string][]string `yaml:"allowed"`
	// Overrides maps activity id to its caller-override policy.
	Overrides map[string]Override `yaml:"overrides"`
	// Surfacing maps activity id to whether the mode is exposed.
	Surfacing map[string]model.Surfacing `yaml:"surfacing"`
}

// Resolve picks the mode for an activity. Empty string means no mode.
//
// The caller's requested mode wins only when four independent gates all
// pass: the activity surfaces modes explicitly, overrides are permitted,
// the requested id is on the override whitelist, and it is in the
// activity's allowed set. Being whitelisted does not by itself make a
// mode allowed — defense in depth, both tables must agree.
//
// Otherwise the activity's default applies when it is a real mode present
// in the allowed set; anything else resolves to no mode.
func (t *Tables) Resolve(activityID, requested string) string {
	def, ok := t.Defaults[activityID]
	if !ok {
		return ""
	}

	if requested != "" &&
		t.Surfacing[activityID] == model.SurfacingExplicit &&
		t.Overrides[activityID].Permitted &&
		contains(t.Overrides[activityID].Whitelist, requested) &&
		contains(t.Allowed[activityID], requested) {
		return requested
	}

	if def != NoMode && contains(t.Allowed[activityID], def) {
		return def
	}

	return ""
}

// SurfacingFor returns the surfacing policy for an activity,
// defaulting to hidden for activities without an entry.
func (t *Tables) SurfacingFor(activityID string) model.Surfacing {
	if s, ok := t.Surfacing[activityID]; ok {
		return s
	}
	return model.SurfacingHidden
}

// ActivityIDs returns the ids present in any of the four tables.
func (t *Tables) ActivityIDs() map[string]bool {
	ids := make(map[string]bool)
	for id := range t.Defaults {
		ids[id] = true
	}
	for id := range t.Allowed {
		ids[id] = true
	}
	for id := range t.Overrides {
		ids[id] = true
	}
	for id := range t.Surfacing {
		ids[id] = true
	}
	return ids
}

// Load reads mode tables from a YAML file. Empty path falls back to
// ~/.havengate/modes.yaml. Missing file returns the defaults; file entries
// merge over the built-ins per table.
func Load(path string) (*Tables, error) {
	t, _, err := LoadWithHash(path)
	return t, err
}

// LoadWithHash loads mode tables and returns the SHA-256 hash of the raw
// YAML bytes (hash of empty input when defaults are used).
func LoadWithHash(path string) (*Tables, string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultTables(), emptyHash(), nil
		}
		path = filepath.Join(home, ".havengate", "modes.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultTables(), emptyHash(), nil
		}
		return nil, "", fmt.Errorf("thinkmode: read tables: %w", err)
	}

	h := sha256.Sum256(data)
	hash := "sha256:" + hex.EncodeToString(h[:])

	var overrides Tables
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, "", fmt.Errorf("thinkmode: parse tables: %w", err)
	}

	merged := DefaultTables()
	for id, v := range overrides.Defaults {
		merged.Defaults[id] = v
	}
	for id, v := range overrides.Allowed {
		merged.Allowed[id] = v
	}
	for id, v := range overrides.Overrides {
		merged.Overrides[id] = v
	}
	for id, v := range overrides.Surfacing {
		switch v {
		case model.SurfacingHidden, model.SurfacingImplicit, model.SurfacingExplicit:
			merged.Surfacing[id] = v
		default:
			return nil, "", fmt.Errorf("thinkmode: activity %q has unknown surfacing %q", id, v)
		}
	}

	return merged, hash, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func emptyHash() string {
	h := sha256.Sum256(nil)
	return "sha256:" + hex.EncodeToString(h[:])
}
