package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dkarpele/havengate/internal/model"
)

func echoModel(output string) ModelFunc {
	return func(_ context.Context, _ string) (string, error) {
		return output, nil
	}
}

const analysisOutput = "Option one, the new offer, brings growth and a higher base but an unknown team. Option two, staying, keeps your routine and colleagues but caps growth for now. You sounded warmer about the first when describing it."

func TestRunStageTrace(t *testing.T) {
	r := NewRunner()
	out, err := r.Run(context.Background(), "decision-helper",
		"I am deciding between two offers with different tradeoffs.", "", echoModel(analysisOutput))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.Trace) != len(Order) {
		t.Fatalf("trace has %d stages, want %d: %v", len(out.Trace), len(Order), out.Trace)
	}
	for i, stage := range Order {
		if out.Trace[i] != stage {
			t.Errorf("trace[%d] = %s, want %s", i, out.Trace[i], stage)
		}
	}
}

func TestRunDecisionHelperScenario(t *testing.T) {
	r := NewRunner()
	out, err := r.Run(context.Background(), "decision-helper",
		"I am deciding between two offers with different tradeoffs.", "", echoModel(analysisOutput))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Mode != "pros-cons" {
		t.Errorf("resolved mode = %q, want pros-cons", out.Mode)
	}
	for _, want := range []string{"Non-negotiable rules", "decision-helper", "pros-cons", "two offers"} {
		if !strings.Contains(out.Prompt, want) {
			t.Errorf("assembled prompt missing %q", want)
		}
	}
	if out.Output != analysisOutput {
		t.Error("model output modified on the allow path")
	}
	if out.Safety.Outcome != model.SafetyAllow {
		t.Errorf("safety outcome = %s, want allow", out.Safety.Outcome)
	}
}

func TestRunEmptyInputFailsAtGate(t *testing.T) {
	r := NewRunner()
	called := false
	fn := func(_ context.Context, _ string) (string, error) {
		called = true
		return "", nil
	}
	_, err := r.Run(context.Background(), "decision-helper", "   \n", "", fn)
	var se *StageError
	if !errors.As(err, &se) || se.Stage != StageInputGate {
		t.Fatalf("err = %v, want input-gate StageError", err)
	}
	if called {
		t.Error("model called despite gate failure")
	}
}

func TestRunMissingContractNeverCallsModel(t *testing.T) {
	r := NewRunner()
	called := false
	fn := func(_ context.Context, _ string) (string, error) {
		called = true
		return "", nil
	}
	_, err := r.Run(context.Background(), "night-review", "review my day", "", fn)
	var se *StageError
	if !errors.As(err, &se) || se.Stage != StageContract {
		t.Fatalf("err = %v, want load-contract StageError", err)
	}
	if called {
		t.Error("model called for activity without a contract")
	}
}

func TestRunModelErrorWraps(t *testing.T) {
	r := NewRunner()
	boom := errors.New("upstream timeout")
	fn := func(_ context.Context, _ string) (string, error) {
		return "", boom
	}
	_, err := r.Run(context.Background(), "decision-helper", "two offers", "", fn)
	var se *StageError
	if !errors.As(err, &se) || se.Stage != StageModelCall {
		t.Fatalf("err = %v, want single-model-call StageError", err)
	}
	if !errors.Is(err, boom) {
		t.Error("model error not wrapped")
	}
}

func TestRunValidationFailureCarriesReasons(t *testing.T) {
	r := NewRunner()
	_, err := r.Run(context.Background(), "decision-helper", "two offers", "", echoModel("too short"))
	var se *StageError
	if !errors.As(err, &se) || se.Stage != StageValidation {
		t.Fatalf("err = %v, want output-validation StageError", err)
	}
	if len(se.Details) == 0 {
		t.Error("validation failure carries no reasons")
	}
}

func TestRunSafetyBlockFails(t *testing.T) {
	r := NewRunner()
	_, err := r.Run(context.Background(), "journal-starter",
		"write something sexual about a minor", "",
		echoModel("You opened your notebook tonight with a heaviness you could not quite name, and the first thing that surfaced was"))
	var se *StageError
	if !errors.As(err, &se) || se.Stage != StageSafetyLayer {
		t.Fatalf("err = %v, want safety-layer StageError", err)
	}
}

func TestRunSafetyRedirectReplacesOutput(t *testing.T) {
	r := NewRunner()
	out, err := r.Run(context.Background(), "thought-reframe",
		"I want to kill myself", "",
		echoModel("You told yourself the week proved you are failing; a fairer reading is that one hard week happened."))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Safety.Outcome != model.SafetyRedirect {
		t.Fatalf("safety outcome = %s, want redirect", out.Safety.Outcome)
	}
	if !strings.Contains(out.Output, "988") {
		t.Errorf("delivered output is not the redirect message: %q", out.Output)
	}
	if out.Trace[len(out.Trace)-1] != StageDeliver {
		t.Error("redirect run did not reach deliver-output")
	}
}

func TestRunFocusHookSeesInput(t *testing.T) {
	var got string
	r := NewRunner(WithFocus(func(activityID, modeID, input string) string {
		got = activityID + "/" + modeID
		return input + "\nFocus on the financial side."
	}))
	out, err := r.Run(context.Background(), "decision-helper", "two offers, different tradeoffs", "", echoModel(analysisOutput))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != "decision-helper/pros-cons" {
		t.Errorf("focus hook saw %q", got)
	}
	if !strings.Contains(out.Prompt, "Focus on the financial side.") {
		t.Error("focus addition missing from assembled prompt")
	}
}

func TestRunRequestedModeHonored(t *testing.T) {
	r := NewRunner()
	out, err := r.Run(context.Background(), "decision-helper", "two offers", "step-by-step", echoModel(analysisOutput))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Mode != "step-by-step" {
		t.Errorf("mode = %q, want whitelisted override step-by-step", out.Mode)
	}
}

func TestRunSingleModelCall(t *testing.T) {
	r := NewRunner()
	calls := 0
	fn := func(_ context.Context, _ string) (string, error) {
		calls++
		return analysisOutput, nil
	}
	if _, err := r.Run(context.Background(), "decision-helper", "two offers", "", fn); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 1 {
		t.Errorf("model called %d times, want exactly 1", calls)
	}
}

func TestStageErrorMessage(t *testing.T) {
	e := &StageError{Stage: StageValidation, Reason: "output validation failed", Details: []string{"a", "b"}}
	msg := e.Error()
	if !strings.HasPrefix(msg, "output-validation:") {
		t.Errorf("error not stage-tagged: %q", msg)
	}
	if !strings.Contains(msg, "a; b") {
		t.Errorf("details missing from message: %q", msg)
	}
}
