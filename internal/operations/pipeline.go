package operations

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"salesaudit/internal/dataprocessing"
	"salesaudit/internal/exporter"
	"salesaudit/internal/infrastructure"
	"salesaudit/pkg/contracts/domain"
)

// Options are the run parameters. They are fixed when the pipeline is built.
type Options struct {
	InputFile   string
	OutputFile  string
	PreviewRows int
	PreviewOut  io.Writer // nil disables the preview
}

// Result is the outcome of a pipeline run
type Result struct {
	ID       string                     `json:"id"`
	Status   RunStatus                  `json:"status"`
	Summary  *dataprocessing.RunSummary `json:"summary,omitempty"`
	Steps    []*StepState               `json:"steps"`
	Duration time.Duration              `json:"duration"`
	Err      error                      `json:"-"`
}

// Pipeline runs the extract, transform and load steps once, in dependency order
type Pipeline struct {
	registry *Registry
	tracer   *OperationTracer
	logger   *slog.Logger
	failures map[string]RunStatus
}

// NewPipeline builds the standard sales audit pipeline
func NewPipeline(opts Options, logger *slog.Logger, providers *infrastructure.OTelProviders) (*Pipeline, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	registry := NewRegistry()
	steps := []Step{
		NewExtractStage(dataprocessing.NewLoader(logger), opts.InputFile, logger),
		NewTransformStage(dataprocessing.NewEnricher(logger), logger),
		NewLoadStage(exporter.NewCSVWriter(logger), opts.OutputFile, opts.PreviewRows, opts.PreviewOut, logger),
	}
	for _, step := range steps {
		if err := registry.Register(step); err != nil {
			return nil, err
		}
	}

	p, err := NewPipelineWithRegistry(registry, logger, providers)
	if err != nil {
		return nil, err
	}
	p.failures = map[string]RunStatus{
		StepIDExtract:   StatusLoadFailed,
		StepIDTransform: StatusLoadFailed,
		StepIDLoad:      StatusWriteFailed,
	}
	return p, nil
}

// NewPipelineWithRegistry creates a pipeline over arbitrary steps. Any step
// failure is reported as StatusLoadFailed.
func NewPipelineWithRegistry(registry *Registry, logger *slog.Logger, providers *infrastructure.OTelProviders) (*Pipeline, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	tracer, err := NewOperationTracer(providers)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		registry: registry,
		tracer:   tracer,
		logger:   infrastructure.WithComponent(logger, "pipeline"),
		failures: map[string]RunStatus{},
	}, nil
}

// Run executes every step once. Step failures are captured in the result;
// the returned error is only set when the pipeline cannot be scheduled.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	ctx = infrastructure.EnsureTraceID(ctx)

	steps, err := p.registry.GetDependencyOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to order pipeline steps: %w", err)
	}

	state := NewOperationState(infrastructure.GetTraceID(ctx))
	for _, step := range steps {
		state.AddStage(NewStepState(step.ID(), step.Name()))
	}
	state.Start()

	result := &Result{ID: state.ID, Status: StatusCompleted}

	for _, step := range steps {
		stepState := state.GetStage(step.ID())

		if result.Err != nil {
			stepState.Skip(fmt.Sprintf("skipped after %s failure", failedStep(state)))
			continue
		}

		if err := p.executeStep(ctx, state, step, stepState); err != nil {
			if GetErrorType(err) == ErrorTypeNoInput {
				result.Status = StatusNoInput
				continue
			}
			result.Err = err
			result.Status = p.failureStatus(step.ID())
		}
	}

	if result.Err != nil {
		state.Fail(result.Err)
	} else {
		state.Complete()
	}

	if v, ok := state.GetContext(ContextKeySummary); ok {
		result.Summary, _ = v.(*dataprocessing.RunSummary)
	}
	result.Steps = state.Steps
	result.Duration = state.Duration()

	if result.Status == StatusNoInput {
		p.logger.InfoContext(ctx, "No records to process; transform and load were skipped")
	}
	p.logger.DebugContext(ctx, "pipeline finished",
		slog.String("operation_id", state.ID),
		slog.String("status", string(result.Status)),
		slog.Duration("duration", result.Duration))

	return result, nil
}

// executeStep validates and runs one step inside its own span
func (p *Pipeline) executeStep(ctx context.Context, state *OperationState, step Step, stepState *StepState) error {
	stepCtx, span := p.tracer.TraceStageExecution(ctx, state.ID, step.ID())
	defer span.End()

	if err := step.Validate(state); err != nil {
		if GetErrorType(err) == ErrorTypeNoInput {
			stepState.Skip(err.Error())
			p.tracer.RecordStageCompletion(stepCtx, span, step.ID(), stepState.Status, 0)
			return err
		}
		stepState.Start()
		stepState.Fail(err)
		p.tracer.RecordStageError(stepCtx, span, step.ID(), err)
		p.tracer.RecordStageCompletion(stepCtx, span, step.ID(), stepState.Status, stepState.Duration())
		return err
	}

	p.logger.DebugContext(stepCtx, "step started",
		slog.String("operation_id", state.ID),
		slog.String("step", step.ID()))

	stepState.Start()
	if err := step.Execute(stepCtx, state); err != nil {
		stepState.Fail(err)
		p.tracer.RecordStageError(stepCtx, span, step.ID(), err)
		p.tracer.RecordStageCompletion(stepCtx, span, step.ID(), stepState.Status, stepState.Duration())
		p.logger.DebugContext(stepCtx, "step failed",
			slog.String("step", step.ID()),
			slog.String("error", err.Error()))
		return err
	}
	stepState.Complete()
	if table, ok := tableFrom(state); ok {
		stepState.Rows = table.Len()
	}

	switch step.ID() {
	case StepIDExtract:
		if v, ok := state.GetContext(ContextKeyTable); ok {
			if table, ok := v.(*domain.SalesTable); ok {
				p.tracer.RecordRecordsLoaded(stepCtx, span, table.Len())
			}
		}
	case StepIDTransform:
		if v, ok := state.GetContext(ContextKeySummary); ok {
			summary, _ := v.(*dataprocessing.RunSummary)
			p.tracer.RecordEnrichment(stepCtx, span, summary)
		}
	}

	p.tracer.RecordStageCompletion(stepCtx, span, step.ID(), stepState.Status, stepState.Duration())
	p.logger.DebugContext(stepCtx, "step completed",
		slog.String("step", step.ID()),
		slog.Duration("duration", stepState.Duration()))
	return nil
}

func (p *Pipeline) failureStatus(stepID string) RunStatus {
	if status, ok := p.failures[stepID]; ok {
		return status
	}
	return StatusLoadFailed
}

func failedStep(state *OperationState) string {
	for _, s := range state.Steps {
		if s.Status == StepStatusFailed {
			return s.ID
		}
	}
	return ""
}
