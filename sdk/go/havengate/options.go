package havengate

import "github.com/dkarpele/havengate/internal/audit"

// Option configures a Gate at creation time.
type Option func(*gateConfig)

type gateConfig struct {
	authzPath     string
	riskPath      string
	contractsPath string
	modesPath     string
	validatePath  string
	safetyPath    string
	auditLogPath  string
	sink          audit.Sink
}

// WithConfig sets the path to the authorization config YAML.
func WithConfig(path string) Option {
	return func(c *gateConfig) { c.authzPath = path }
}

// WithRiskConfig sets the path to the risk keyword YAML.
func WithRiskConfig(path string) Option {
	return func(c *gateConfig) { c.riskPath = path }
}

// WithContracts sets the path to the activity contract YAML.
func WithContracts(path string) Option {
	return func(c *gateConfig) { c.contractsPath = path }
}

// WithModes sets the path to the thinking-mode tables YAML.
func WithModes(path string) Option {
	return func(c *gateConfig) { c.modesPath = path }
}

// WithValidation sets the path to the validator override YAML.
func WithValidation(path string) Option {
	return func(c *gateConfig) { c.validatePath = path }
}

// WithSafetyConfig sets the path to the safety pattern YAML.
func WithSafetyConfig(path string) Option {
	return func(c *gateConfig) { c.safetyPath = path }
}

// WithAuditLog persists justification records to a hash-chained JSONL log
// at the given path.
func WithAuditLog(path string) Option {
	return func(c *gateConfig) { c.auditLogPath = path }
}

// WithAuditSink hands justification records to a caller-supplied sink,
// e.g. a log stream or datastore. Takes precedence over WithAuditLog.
func WithAuditSink(sink audit.Sink) Option {
	return func(c *gateConfig) { c.sink = sink }
}
