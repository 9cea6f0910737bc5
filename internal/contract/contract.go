// Package contract holds the per-activity output contracts. The registry is
// an immutable map loaded once; lookups fail closed, because no activity may
// run without a declared contract.
package contract

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dkarpele/havengate/internal/model"
)

// Contract declares the expected shape and constraints of one activity's
// output. Pure configuration, keyed externally by activity id.
type Contract struct {
	OutputType             model.OutputType `yaml:"output_type" json:"output_type"`
	Structure              string           `yaml:"structure" json:"structure"`
	AllowedTransformations []string         `yaml:"allowed_transformations" json:"allowed_transformations"`
	DisallowedBehaviors    []string         `yaml:"disallowed_behaviors" json:"disallowed_behaviors"`
	CompletionCriteria     []string         `yaml:"completion_criteria" json:"completion_criteria"`
}

// Registry is an immutable activity-id → Contract lookup table.
type Registry struct {
	contracts map[string]Contract
}

// NewRegistry creates a Registry, copying the given table.
func NewRegistry(contracts map[string]Contract) *Registry {
	m := make(map[string]Contract, len(contracts))
	for id, c := range contracts {
		m[id] = c
	}
	return &Registry{contracts: m}
}

// NewDefault creates a Registry with the built-in activity table.
func NewDefault() *Registry {
	return NewRegistry(DefaultContracts)
}

// Get returns the contract for an activity id. The second return is false
// for unknown ids — an absent contract is a hard stop for the pipeline.
func (r *Registry) Get(activityID string) (Contract, bool) {
	c, ok := r.contracts[activityID]
	return c, ok
}

// IDs returns all registered activity ids, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.contracts))
	for id := range r.contracts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Load reads a contract table from a YAML file. Empty path falls back to
// ~/.havengate/contracts.yaml. Missing file returns the defaults; entries
// in the file are merged over the built-in table by activity id.
func Load(path string) (*Registry, error) {
	reg, _, err := LoadWithHash(path)
	return reg, err
}

// LoadWithHash loads a contract table and returns the SHA-256 hash of the
// raw YAML bytes (hash of empty input when defaults are used).
func LoadWithHash(path string) (*Registry, string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return NewDefault(), emptyHash(), nil
		}
		path = filepath.Join(home, ".havengate", "contracts.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDefault(), emptyHash(), nil
		}
		return nil, "", fmt.Errorf("contract: read table: %w", err)
	}

	h := sha256.Sum256(data)
	hash := "sha256:" + hex.EncodeToString(h[:])

	var overrides map[string]Contract
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, "", fmt.Errorf("contract: parse table: %w", err)
	}

	merged := make(map[string]Contract, len(DefaultContracts)+len(overrides))
	for id, c := range DefaultContracts {
		merged[id] = c
	}
	for id, c := range overrides {
		if !model.KnownOutputType(c.OutputType) {
			return nil, "", fmt.Errorf("contract: activity %q has unknown output type %q", id, c.OutputType)
		}
		merged[id] = c
	}

	return NewRegistry(merged), hash, nil
}

func emptyHash() string {
	h := sha256.Sum256(nil)
	return "sha256:" + hex.EncodeToString(h[:])
}
