package model

import "time"

// ContextEval is a derived, read-only snapshot of one session's history.
// Created fresh per authorization call and never mutated or persisted here.
type ContextEval struct {
	MessageCount  int           `json:"message_count"`
	Trajectory    Trajectory    `json:"trajectory"`
	CrisisFlagged bool          `json:"crisis_flagged"`
	PriorRisks    []RiskLevel   `json:"prior_risks"`
	SinceLast     time.Duration `json:"since_last"`
}

// NewContextEval returns an evaluation with safe defaults: stable
// trajectory, no crisis flag, empty history.
func NewContextEval() ContextEval {
	return ContextEval{
		Trajectory: TrajectoryStable,
		PriorRisks: []RiskLevel{},
	}
}
