package authz

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dkarpele/havengate/internal/tier"
)

// Config holds the configurable authorization parameters.
type Config struct {
	// AdminEmails is the privileged allow-list, matched case-insensitively.
	AdminEmails []string `yaml:"admin_emails"`

	// AnonymousMessageCeiling is the exposure limit for unauthenticated
	// sessions: anonymous access is denied once the session reaches this
	// many messages, even at green risk.
	AnonymousMessageCeiling int `yaml:"anonymous_message_ceiling"`
}

// DefaultConfig returns the built-in authorization parameters.
func DefaultConfig() *Config {
	return &Config{
		AdminEmails:             tier.DefaultAdminEmails,
		AnonymousMessageCeiling: 5,
	}
}

// LoadConfig loads authorization configuration from a YAML file.
// Empty path falls back to ~/.havengate/authz.yaml.
// Missing file returns defaults. Invalid YAML returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg, _, err := LoadConfigWithHash(path)
	return cfg, err
}

// LoadConfigWithHash loads authorization configuration and returns the
// SHA-256 hash of the raw YAML bytes on disk. When no file exists
// (defaults used), the hash is the SHA-256 of empty input.
func LoadConfigWithHash(path string) (*Config, string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), emptyHash(), nil
		}
		path = filepath.Join(home, ".havengate", "authz.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), emptyHash(), nil
		}
		return nil, "", fmt.Errorf("authz: read config: %w", err)
	}

	h := sha256.Sum256(data)
	hash := "sha256:" + hex.EncodeToString(h[:])

	// Start with defaults, YAML overwrites only specified fields
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, "", fmt.Errorf("authz: parse config: %w", err)
	}

	return cfg, hash, nil
}

func emptyHash() string {
	h := sha256.Sum256(nil)
	return "sha256:" + hex.EncodeToString(h[:])
}
