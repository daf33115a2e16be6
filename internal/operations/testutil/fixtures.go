package testutil

import (
	"context"
	"errors"

	"salesaudit/internal/operations"
)

// CreateTestRegistry creates a registry with three chained steps
func CreateTestRegistry() *operations.Registry {
	registry := operations.NewRegistry()
	registry.Register(CreateSuccessfulStage("stage1", "step 1"))
	registry.Register(CreateSuccessfulStage("stage2", "step 2", "stage1"))
	registry.Register(CreateSuccessfulStage("stage3", "step 3", "stage2"))
	return registry
}

// CreateSuccessfulStage creates a step that always succeeds
func CreateSuccessfulStage(id, name string, deps ...string) *MockStage {
	return &MockStage{
		IDValue:           id,
		NameValue:         name,
		DependenciesValue: deps,
	}
}

// CreateFailingStage creates a step that always fails
func CreateFailingStage(id, name string, err error, deps ...string) *MockStage {
	if err == nil {
		err = errors.New("step failed")
	}

	return &MockStage{
		IDValue:           id,
		NameValue:         name,
		DependenciesValue: deps,
		ExecuteFunc: func(ctx context.Context, state *operations.OperationState) error {
			return err
		},
	}
}

// CreateContextAwareStage creates a step that writes a value into the operation context
func CreateContextAwareStage(id, name string, writeKey string, writeValue interface{}, deps ...string) *MockStage {
	return &MockStage{
		IDValue:           id,
		NameValue:         name,
		DependenciesValue: deps,
		ExecuteFunc: func(ctx context.Context, state *operations.OperationState) error {
			state.SetContext(writeKey, writeValue)
			return nil
		},
	}
}
