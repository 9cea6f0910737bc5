package model

// RiskLevel classifies message severity. Levels are totally ordered:
// green < yellow < orange < red.
type RiskLevel string

const (
	RiskGreen  RiskLevel = "green"
	RiskYellow RiskLevel = "yellow"
	RiskOrange RiskLevel = "orange"
	RiskRed    RiskLevel = "red"
)

// RiskRank maps risk levels to comparable integers for ordering checks.
var RiskRank = map[RiskLevel]int{
	RiskGreen:  0,
	RiskYellow: 1,
	RiskOrange: 2,
	RiskRed:    3,
}

// AtLeast reports whether r is at or above the given level.
func (r RiskLevel) AtLeast(min RiskLevel) bool {
	return RiskRank[r] >= RiskRank[min]
}

// ParseRiskLevel maps a string to a RiskLevel.
// Returns false for anything outside the four known levels.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	switch RiskLevel(s) {
	case RiskGreen, RiskYellow, RiskOrange, RiskRed:
		return RiskLevel(s), true
	}
	return "", false
}

// Tier is the caller permission class.
type Tier string

const (
	TierAnonymous Tier = "anonymous"
	TierFree      Tier = "free"
	TierSanctuary Tier = "sanctuary"
	TierAdmin     Tier = "admin"
)

// ParseTier maps a string to a Tier. Unknown strings fail.
func ParseTier(s string) (Tier, bool) {
	switch Tier(s) {
	case TierAnonymous, TierFree, TierSanctuary, TierAdmin:
		return Tier(s), true
	}
	return "", false
}

// TierInfo is the resolved identity of a caller for one request.
type TierInfo struct {
	Tier     Tier   `json:"tier"`
	Valid    bool   `json:"valid"`
	Email    string `json:"email"`
	CallerID string `json:"caller_id"`
}

// Trajectory tags the emotional direction of a session.
type Trajectory string

const (
	TrajectoryStable       Trajectory = "stable"
	TrajectoryEscalating   Trajectory = "escalating"
	TrajectoryDeEscalating Trajectory = "de-escalating"
)

// Message is one prior message in a session history, as handed to the
// context evaluator. Timestamp is RFC 3339 when present; RiskTag carries a
// previously assigned risk level, if any.
type Message struct {
	Text      string `json:"text" yaml:"text"`
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	RiskTag   string `json:"risk,omitempty" yaml:"risk,omitempty"`
}

// OutputType is the declared shape of an activity's output.
type OutputType string

const (
	OutDraft       OutputType = "draft"
	OutScript      OutputType = "script"
	OutPlan        OutputType = "plan"
	OutAnalysis    OutputType = "analysis"
	OutSummary     OutputType = "summary"
	OutIdeas       OutputType = "ideas"
	OutExplanation OutputType = "explanation"
	OutChecklist   OutputType = "checklist"
	OutGuide       OutputType = "guide"
	OutQuiz        OutputType = "quiz"
)

// KnownOutputType reports whether t is in the closed output-type set.
func KnownOutputType(t OutputType) bool {
	switch t {
	case OutDraft, OutScript, OutPlan, OutAnalysis, OutSummary,
		OutIdeas, OutExplanation, OutChecklist, OutGuide, OutQuiz:
		return true
	}
	return false
}

// Surfacing controls whether a thinking mode is exposed to the caller.
type Surfacing string

const (
	SurfacingHidden   Surfacing = "hidden"
	SurfacingImplicit Surfacing = "implicit"
	SurfacingExplicit Surfacing = "explicit"
)

// SafetyOutcome is the terminal content-policy decision.
type SafetyOutcome string

const (
	SafetyAllow    SafetyOutcome = "allow"
	SafetyBlock    SafetyOutcome = "block"
	SafetyRedirect SafetyOutcome = "redirect"
)
