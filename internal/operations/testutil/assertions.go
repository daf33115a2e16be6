package testutil

import (
	"strings"
	"testing"

	"salesaudit/internal/operations"
)

// AssertStepStatus verifies a step has the expected status
func AssertStepStatus(t *testing.T, step *operations.StepState, expected operations.StepStatus) {
	t.Helper()
	if step == nil {
		t.Fatal("step state is nil")
	}
	if step.Status != expected {
		t.Errorf("step %s status = %v, want %v", step.ID, step.Status, expected)
	}
}

// resultStep returns the state of stepID from a run result
func resultStep(t *testing.T, result *operations.Result, stepID string) *operations.StepState {
	t.Helper()
	if result == nil {
		t.Fatal("result is nil")
	}
	for _, step := range result.Steps {
		if step.ID == stepID {
			return step
		}
	}
	t.Fatalf("step %s not found", stepID)
	return nil
}

// AssertStageCompleted verifies a step of the run completed
func AssertStageCompleted(t *testing.T, result *operations.Result, stepID string) {
	t.Helper()
	step := resultStep(t, result, stepID)
	AssertStepStatus(t, step, operations.StepStatusCompleted)
	if step.EndTime == nil {
		t.Errorf("step %s has no end time", stepID)
	}
}

// AssertStageFailed verifies a step of the run failed with an error
func AssertStageFailed(t *testing.T, result *operations.Result, stepID string) {
	t.Helper()
	step := resultStep(t, result, stepID)
	AssertStepStatus(t, step, operations.StepStatusFailed)
	if step.Error == nil {
		t.Errorf("failed step %s has no error", stepID)
	}
}

// AssertStageSkipped verifies a step of the run never executed
func AssertStageSkipped(t *testing.T, result *operations.Result, stepID string) {
	t.Helper()
	step := resultStep(t, result, stepID)
	AssertStepStatus(t, step, operations.StepStatusSkipped)
	if step.StartTime != nil {
		t.Errorf("skipped step %s has a start time", stepID)
	}
}

// AssertErrorContains verifies an error contains the given substring
func AssertErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("error %q does not contain %q", err.Error(), substr)
	}
}

// AssertErrorType verifies an operation error has the expected type
func AssertErrorType(t *testing.T, err error, expectedType operations.ErrorType) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := operations.GetErrorType(err); got != expectedType {
		t.Errorf("error type = %v, want %v", got, expectedType)
	}
}
