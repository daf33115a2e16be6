package operations_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"salesaudit/internal/operations"
)

func TestOperationState(t *testing.T) {
	state := operations.NewOperationState("op-1")

	assert.Equal(t, "op-1", state.ID)
	assert.Equal(t, operations.OperationStatusPending, state.Status)
	assert.Empty(t, state.Steps)

	state.AddStage(operations.NewStepState("extract", "Extract"))
	state.AddStage(operations.NewStepState("load", "Load"))
	state.Start()
	assert.Equal(t, operations.OperationStatusRunning, state.Status)

	assert.Equal(t, "Load", state.GetStage("load").Name)
	assert.Nil(t, state.GetStage("missing"))

	state.SetContext("key", 42)
	v, ok := state.GetContext("key")
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	_, ok = state.GetContext("absent")
	assert.False(t, ok)

	assert.False(t, state.HasFailures())
	state.GetStage("load").Fail(errors.New("boom"))
	assert.True(t, state.HasFailures())

	state.Fail(errors.New("boom"))
	assert.Equal(t, operations.OperationStatusFailed, state.Status)
	assert.NotNil(t, state.EndTime)
	assert.GreaterOrEqual(t, state.Duration().Nanoseconds(), int64(0))
}

func TestOperationStateComplete(t *testing.T) {
	state := operations.NewOperationState("op-2")
	state.Start()
	state.Complete()

	assert.Equal(t, operations.OperationStatusCompleted, state.Status)
	assert.NotNil(t, state.EndTime)
	assert.Nil(t, state.Error)
}
