package operations

// Step identifiers
const (
	StepIDExtract   = "extract"
	StepIDTransform = "transform"
	StepIDLoad      = "load"
)

// Step names
const (
	StepNameExtract   = "Extract"
	StepNameTransform = "Transform"
	StepNameLoad      = "Load"
)

// Context keys for operation state
const (
	ContextKeyTable   = "table"
	ContextKeySummary = "summary"
)

// RunStatus is the outcome of a pipeline run
type RunStatus string

const (
	StatusCompleted   RunStatus = "completed"
	StatusNoInput     RunStatus = "no_input"
	StatusLoadFailed  RunStatus = "load_failed"
	StatusWriteFailed RunStatus = "write_failed"
)

// ExitCode maps a run status to a process exit code
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusCompleted:
		return 0
	case StatusNoInput:
		return 2
	case StatusWriteFailed:
		return 3
	default:
		return 1
	}
}
