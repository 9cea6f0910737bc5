package risk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dkarpele/havengate/internal/model"
)

func TestClassifyOrderedSets(t *testing.T) {
	c := NewDefault()

	tests := []struct {
		text string
		want model.RiskLevel
	}{
		{"I want to end it all", model.RiskRed},
		{"Lately everything feels hopeless", model.RiskOrange},
		{"I am anxious about the interview", model.RiskYellow},
		{"What should I cook for dinner?", model.RiskGreen},
		{"", model.RiskGreen},
	}

	for _, tt := range tests {
		if got := c.Classify(tt.text, nil); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestRedDominatesWeakerMatches(t *testing.T) {
	c := NewDefault()

	// Contains a yellow phrase ("anxious") and a red phrase ("want to end it").
	// The red scan runs first, so red wins regardless of weaker signals.
	tests := []string{
		"I feel anxious and want to end it",
		"so stressed, hopeless, and I want to die",
		"I am DEPRESSED and thinking about SUICIDE",
	}

	for _, text := range tests {
		if got := c.Classify(text, nil); got != model.RiskRed {
			t.Errorf("Classify(%q) = %s, want red", text, got)
		}
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	c := NewDefault()
	if got := c.Classify("I WANT TO DIE", nil); got != model.RiskRed {
		t.Errorf("uppercase red phrase classified as %s", got)
	}
}

func TestEscalatingContextPromotesToYellow(t *testing.T) {
	c := NewDefault()

	eval := model.NewContextEval()
	eval.Trajectory = model.TrajectoryEscalating
	if got := c.Classify("tell me about breathing exercises", &eval); got != model.RiskYellow {
		t.Errorf("escalating context: got %s, want yellow", got)
	}

	// Stable context does not promote.
	eval.Trajectory = model.TrajectoryStable
	if got := c.Classify("tell me about breathing exercises", &eval); got != model.RiskGreen {
		t.Errorf("stable context: got %s, want green", got)
	}

	// Keyword matches still dominate the context fallback.
	eval.Trajectory = model.TrajectoryEscalating
	if got := c.Classify("I feel worthless", &eval); got != model.RiskOrange {
		t.Errorf("orange keyword with escalating context: got %s, want orange", got)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.Classify("I want to die", nil); got != model.RiskRed {
		t.Errorf("defaults not applied: got %s", got)
	}
}

func TestLoadOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "risk.yaml")
	content := "red:\n  - forbidden phrase\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.Classify("this has the FORBIDDEN PHRASE inside", nil); got != model.RiskRed {
		t.Errorf("override red set not applied: got %s", got)
	}
}

func TestLoadInvalidYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "risk.yaml")
	if err := os.WriteFile(path, []byte("red: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func FuzzClassify(f *testing.F) {
	f.Add("I want to end it")
	f.Add("hello world")
	f.Add("ANXIOUS")
	f.Add("\x00\xff weird bytes")

	c := NewDefault()
	f.Fuzz(func(t *testing.T, text string) {
		got := c.Classify(text, nil)
		if _, ok := model.ParseRiskLevel(string(got)); !ok {
			t.Errorf("Classify returned invalid level %q", got)
		}
	})
}

func BenchmarkClassify(b *testing.B) {
	c := NewDefault()
	text := "I had a long day and I am a bit stressed about tomorrow's meeting"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Classify(text, nil)
	}
}
