package scenario

// CaseIdentity is the caller identity under test.
type CaseIdentity struct {
	CallerID string `yaml:"caller_id,omitempty"`
	Email    string `yaml:"email,omitempty"`
	Tier     string `yaml:"tier,omitempty"`
}

// CaseHistory is one prior session message.
type CaseHistory struct {
	Text string `yaml:"text"`
	Risk string `yaml:"risk,omitempty"`
}

// Case is one authorization test case within a scenario.
type Case struct {
	Identity CaseIdentity  `yaml:"identity"`
	Message  string        `yaml:"message"`
	History  []CaseHistory `yaml:"history,omitempty"`
	Expect   string        `yaml:"expect"`
	Risk     string        `yaml:"risk,omitempty"`
}

// Scenario is a named collection of authorization test cases.
type Scenario struct {
	Name  string `yaml:"name"`
	Cases []Case `yaml:"cases"`
}

// CaseResult is the outcome of evaluating one test case.
type CaseResult struct {
	Index        int    `json:"index"`
	Passed       bool   `json:"passed"`
	Message      string `json:"message"`
	Expected     string `json:"expected"`
	Actual       string `json:"actual"`
	ExpectedRisk string `json:"expected_risk,omitempty"`
	ActualRisk   string `json:"actual_risk"`
	Reason       string `json:"reason,omitempty"`
}

// RunResult is the outcome of running all cases in one scenario file.
type RunResult struct {
	File   string       `json:"file"`
	Name   string       `json:"name"`
	Total  int          `json:"total"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Cases  []CaseResult `json:"cases"`
}
