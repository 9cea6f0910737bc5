package risk

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dkarpele/havengate/internal/model"
)

// Sets holds the raw keyword phrases organized by risk level.
// Green has no set: it is the absence of a match.
type Sets struct {
	Red    []string `yaml:"red"`
	Orange []string `yaml:"orange"`
	Yellow []string `yaml:"yellow"`
}

// Classifier maps free text to a risk level via ordered keyword scans.
type Classifier struct {
	red    []string
	orange []string
	yellow []string
	raw    Sets
}

// New creates a Classifier from raw sets, lowercasing phrases once.
func New(s Sets) *Classifier {
	return &Classifier{
		red:    lowerAll(s.Red),
		orange: lowerAll(s.Orange),
		yellow: lowerAll(s.Yellow),
		raw:    s,
	}
}

// NewDefault creates a Classifier with the built-in keyword sets.
func NewDefault() *Classifier {
	return New(DefaultSets)
}

// Load reads keyword sets from a YAML file. Empty path falls back to
// ~/.havengate/risk.yaml. Missing file returns the defaults.
func Load(path string) (*Classifier, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return NewDefault(), nil
		}
		path = filepath.Join(home, ".havengate", "risk.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDefault(), nil
		}
		return nil, err
	}

	s := DefaultSets
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return New(s), nil
}

// Classify maps message text to a risk level.
//
// Scan order (must not be changed): red set, then orange, then yellow.
// First case-insensitive substring match wins, so red-level language
// overrides any weaker phrase that also appears. With no keyword match,
// an escalating context evaluation still promotes to yellow; otherwise
// the message is green.
func (c *Classifier) Classify(text string, eval *model.ContextEval) model.RiskLevel {
	lower := strings.ToLower(text)

	if matchAny(lower, c.red) {
		return model.RiskRed
	}
	if matchAny(lower, c.orange) {
		return model.RiskOrange
	}
	if matchAny(lower, c.yellow) {
		return model.RiskYellow
	}

	if eval != nil && eval.Trajectory == model.TrajectoryEscalating {
		return model.RiskYellow
	}

	return model.RiskGreen
}

// Raw returns the raw phrase sets, for serialization and diagnostics.
func (c *Classifier) Raw() Sets {
	return c.raw
}

func matchAny(lower string, phrases []string) bool {
	for _, p := range phrases {
		if p != "" && strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func lowerAll(phrases []string) []string {
	out := make([]string, len(phrases))
	for i, p := range phrases {
		out[i] = strings.ToLower(p)
	}
	return out
}
