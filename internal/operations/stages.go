package operations

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"salesaudit/internal/dataprocessing"
	"salesaudit/internal/exporter"
	"salesaudit/internal/infrastructure"
	"salesaudit/pkg/contracts/domain"
)

// TableLoader reads a sales source
type TableLoader interface {
	Load(ctx context.Context, path string) (*domain.SalesTable, error)
}

// TableWriter persists an enriched sales table
type TableWriter interface {
	WriteTable(path string, table *domain.SalesTable) error
}

// ExtractStage loads the input file into the operation context
type ExtractStage struct {
	BaseStage
	loader    TableLoader
	inputFile string
	logger    *slog.Logger
}

// NewExtractStage creates a new extract Step
func NewExtractStage(loader TableLoader, inputFile string, logger *slog.Logger) *ExtractStage {
	return &ExtractStage{
		BaseStage: NewBaseStage(StepIDExtract, StepNameExtract, nil),
		loader:    loader,
		inputFile: inputFile,
		logger:    infrastructure.WithComponent(logger, StepIDExtract),
	}
}

// Execute loads the table. A missing source produces an empty table, which
// later steps treat as no input.
func (s *ExtractStage) Execute(ctx context.Context, state *OperationState) error {
	table, err := s.loader.Load(ctx, s.inputFile)
	if err != nil {
		s.logger.ErrorContext(ctx, fmt.Sprintf("Failed to load data: %v", err))
		return NewExecutionError(s.ID(), err)
	}

	state.SetContext(ContextKeyTable, table)
	return nil
}

// TransformStage enriches the loaded table
type TransformStage struct {
	BaseStage
	processor dataprocessing.Processor
	logger    *slog.Logger
}

// NewTransformStage creates a new transform Step
func NewTransformStage(processor dataprocessing.Processor, logger *slog.Logger) *TransformStage {
	return &TransformStage{
		BaseStage: NewBaseStage(StepIDTransform, StepNameTransform, []string{StepIDExtract}),
		processor: processor,
		logger:    infrastructure.WithComponent(logger, StepIDTransform),
	}
}

// Validate requires a non-empty table
func (s *TransformStage) Validate(state *OperationState) error {
	return requireRecords(s.ID(), state)
}

// Execute applies the business rules and stores the run summary
func (s *TransformStage) Execute(ctx context.Context, state *OperationState) error {
	table, _ := tableFrom(state)

	summary, err := s.processor.Process(ctx, table)
	if err != nil {
		s.logger.ErrorContext(ctx, fmt.Sprintf("Failed to transform data: %v", err))
		return NewExecutionError(s.ID(), err)
	}

	state.SetContext(ContextKeySummary, summary)
	return nil
}

// LoadStage writes the enriched table and prints the operator preview
type LoadStage struct {
	BaseStage
	writer      TableWriter
	outputFile  string
	previewRows int
	previewOut  io.Writer
	logger      *slog.Logger
}

// NewLoadStage creates a new load Step. A nil previewOut disables the preview.
func NewLoadStage(writer TableWriter, outputFile string, previewRows int, previewOut io.Writer, logger *slog.Logger) *LoadStage {
	return &LoadStage{
		BaseStage:   NewBaseStage(StepIDLoad, StepNameLoad, []string{StepIDTransform}),
		writer:      writer,
		outputFile:  outputFile,
		previewRows: previewRows,
		previewOut:  previewOut,
		logger:      infrastructure.WithComponent(logger, StepIDLoad),
	}
}

// Validate requires a non-empty table
func (s *LoadStage) Validate(state *OperationState) error {
	return requireRecords(s.ID(), state)
}

// Execute writes the table. Write failures are reported once and returned
// without retry.
func (s *LoadStage) Execute(ctx context.Context, state *OperationState) error {
	table, _ := tableFrom(state)

	if err := s.writer.WriteTable(s.outputFile, table); err != nil {
		s.logger.ErrorContext(ctx, fmt.Sprintf("Failed to save data: %v", err))
		return NewExecutionError(s.ID(), err)
	}

	infrastructure.Success(ctx, s.logger, fmt.Sprintf("Data saved to %s", s.outputFile),
		slog.Int("rows", table.Len()))

	if s.previewOut != nil && s.previewRows > 0 {
		if err := exporter.WritePreview(s.previewOut, table, s.previewRows); err != nil {
			s.logger.WarnContext(ctx, "Failed to print preview", slog.String("error", err.Error()))
		}
	}
	return nil
}

// tableFrom returns the table stored by the extract step
func tableFrom(state *OperationState) (*domain.SalesTable, bool) {
	v, ok := state.GetContext(ContextKeyTable)
	if !ok {
		return nil, false
	}
	table, ok := v.(*domain.SalesTable)
	return table, ok && table != nil
}

func requireRecords(stepID string, state *OperationState) error {
	table, ok := tableFrom(state)
	if !ok {
		return NewDependencyError(stepID, StepIDExtract, "no table in operation context")
	}
	if table.IsEmpty() {
		return NewNoInputError(stepID)
	}
	return nil
}
