package safety

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPatterns returns the built-in pattern table, one regexp source
// list per category. Returns a fresh map so callers can mutate before
// compiling without touching the defaults.
func DefaultPatterns() map[string][]string {
	return map[string][]string{
		CategoryMinors: {
			`\b(child|children|minor|minors|underage|under-age|kid|kids)\b[^.\n]{0,80}\b(sexual|sexually|nude|naked|explicit|erotic)\b`,
			`\b(sexual|sexually|nude|naked|explicit|erotic)\b[^.\n]{0,80}\b(child|children|minor|minors|underage|under-age|kid|kids)\b`,
		},
		CategorySelfHarm: {
			`\bkill myself\b`,
			`\bhow to (hurt|harm|cut) myself\b`,
			`\b(best|painless|easiest) way to die\b`,
			`\bend (my|it all) .{0,20}(tonight|now|today)\b`,
			`\bsuicide (method|plan|note)\b`,
		},
		CategoryHarmOthers: {
			`\bwant to (hurt|kill|attack|poison) (him|her|them|someone)\b`,
			`\bmake (him|her|them|someone) (pay|suffer)\b`,
			`\bhow to (hurt|harm|kill) (a person|people|somebody|someone)\b`,
		},
		CategoryIllegal: {
			`\bhow to (make|build|get) (a bomb|explosives|a weapon|an untraceable)\b`,
			`\bhow to (buy|get|cook|make) (drugs|meth|fentanyl)\b`,
			`\bwithout getting caught\b`,
			`\bhow to (hack|break) into\b`,
		},
	}
}

// redirectMessages maps each redirecting category to the text delivered
// in place of the model output.
var redirectMessages = map[string]string{
	CategorySelfHarm:   "It sounds like you might be going through something serious. This assistant cannot help with that, but a crisis line can: call or text 988 to reach someone who will listen right now.",
	CategoryHarmOthers: "This assistant cannot help with harming anyone. If you are feeling this strongly about someone, talking it through with a counselor or a trusted person is a safer next step.",
	CategoryIllegal:    "This assistant cannot help with that request. If something difficult is driving it, that part is worth talking about with someone you trust.",
}

// RedirectMessage returns the redirect text for a category, empty for
// categories that do not redirect.
func RedirectMessage(category string) string {
	return redirectMessages[category]
}

type patternFile struct {
	Patterns map[string][]string `yaml:"patterns"`
}

// Load reads a pattern table from path and builds a Filter. Empty path
// falls back to ~/.havengate/safety.yaml. Listed categories replace the
// built-in list for that category; unlisted categories keep their
// defaults. A missing file returns the default Filter; invalid YAML or an
// uncompilable pattern is an error.
func Load(path string) (*Filter, error) {
	if path == "" {
		path = DefaultPath()
	}

	merged := DefaultPatterns()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(merged)
		}
		return nil, fmt.Errorf("read safety config: %w", err)
	}

	var f patternFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse safety config: %w", err)
	}
	for category, exprs := range f.Patterns {
		merged[category] = exprs
	}

	return New(merged)
}

// DefaultPath returns ~/.havengate/safety.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "safety.yaml"
	}
	return filepath.Join(home, ".havengate", "safety.yaml")
}
