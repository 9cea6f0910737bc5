// Package session derives read-only context evaluations from a session's
// message history. Evaluation is a pure function of the history: nothing is
// cached, mutated, or persisted here.
package session

import (
	"time"

	"github.com/dkarpele/havengate/internal/model"
)

// Evaluate summarizes a session history into an aggregate snapshot.
//
// Message count is the history length. Elapsed time is measured from the
// last message's timestamp when it parses as RFC 3339, and reported as 0
// otherwise. Risk tags on prior messages are collected in order, dropping
// anything that is not one of the four levels.
//
// Trajectory and the crisis flag are conservative placeholders (always
// "stable" / false). Their contracts — the three-way tag and the boolean —
// are fixed, so a real trend model can replace them without touching any
// consumer.
func Evaluate(history []model.Message) model.ContextEval {
	return evaluateAt(history, time.Now().UTC())
}

func evaluateAt(history []model.Message, now time.Time) model.ContextEval {
	eval := model.NewContextEval()
	eval.MessageCount = len(history)

	for _, m := range history {
		if level, ok := model.ParseRiskLevel(m.RiskTag); ok {
			eval.PriorRisks = append(eval.PriorRisks, level)
		}
	}

	if len(history) > 0 {
		last := history[len(history)-1]
		if ts, err := time.Parse(time.RFC3339, last.Timestamp); err == nil {
			if d := now.Sub(ts); d > 0 {
				eval.SinceLast = d
			}
		}
	}

	return eval
}
