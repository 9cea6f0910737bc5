package model

import "testing"

func TestRiskLevelOrdering(t *testing.T) {
	ordered := []RiskLevel{RiskGreen, RiskYellow, RiskOrange, RiskRed}
	for i := 1; i < len(ordered); i++ {
		if RiskRank[ordered[i]] <= RiskRank[ordered[i-1]] {
			t.Errorf("expected %s > %s in rank order", ordered[i], ordered[i-1])
		}
	}
}

func TestRiskLevelAtLeast(t *testing.T) {
	tests := []struct {
		level RiskLevel
		min   RiskLevel
		want  bool
	}{
		{RiskRed, RiskYellow, true},
		{RiskYellow, RiskYellow, true},
		{RiskGreen, RiskYellow, false},
		{RiskOrange, RiskRed, false},
		{RiskRed, RiskRed, true},
	}

	for _, tt := range tests {
		if got := tt.level.AtLeast(tt.min); got != tt.want {
			t.Errorf("%s.AtLeast(%s) = %v, want %v", tt.level, tt.min, got, tt.want)
		}
	}
}

func TestParseRiskLevelRejectsUnknown(t *testing.T) {
	for _, s := range []string{"", "GREEN", "purple", "critical"} {
		if _, ok := ParseRiskLevel(s); ok {
			t.Errorf("ParseRiskLevel(%q) accepted an invalid level", s)
		}
	}
	for _, s := range []string{"green", "yellow", "orange", "red"} {
		if _, ok := ParseRiskLevel(s); !ok {
			t.Errorf("ParseRiskLevel(%q) rejected a valid level", s)
		}
	}
}

func TestParseTier(t *testing.T) {
	for _, s := range []string{"anonymous", "free", "sanctuary", "admin"} {
		if _, ok := ParseTier(s); !ok {
			t.Errorf("ParseTier(%q) rejected a valid tier", s)
		}
	}
	if _, ok := ParseTier("premium"); ok {
		t.Error("ParseTier accepted an unknown tier")
	}
}

func TestKnownOutputTypeClosedSet(t *testing.T) {
	known := []OutputType{
		OutDraft, OutScript, OutPlan, OutAnalysis, OutSummary,
		OutIdeas, OutExplanation, OutChecklist, OutGuide, OutQuiz,
	}
	for _, o := range known {
		if !KnownOutputType(o) {
			t.Errorf("KnownOutputType(%q) = false", o)
		}
	}
	if KnownOutputType("poem") {
		t.Error("KnownOutputType accepted a type outside the closed set")
	}
}

func TestNewContextEvalDefaults(t *testing.T) {
	ce := NewContextEval()
	if ce.Trajectory != TrajectoryStable {
		t.Errorf("default trajectory = %q, want stable", ce.Trajectory)
	}
	if ce.CrisisFlagged {
		t.Error("default crisis flag should be false")
	}
	if ce.PriorRisks == nil || len(ce.PriorRisks) != 0 {
		t.Error("default prior risks should be an empty, non-nil slice")
	}
}
