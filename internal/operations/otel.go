package operations

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"salesaudit/internal/dataprocessing"
	"salesaudit/internal/infrastructure"
)

// OperationTracer provides OpenTelemetry instrumentation for pipeline steps
type OperationTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewOperationTracer creates a new operation tracer. Nil providers yield a
// tracer that records nothing.
func NewOperationTracer(providers *infrastructure.OTelProviders) (*OperationTracer, error) {
	var (
		tracer trace.Tracer = tracenoop.NewTracerProvider().Tracer(infrastructure.ServiceName)
		meter  metric.Meter = metricnoop.NewMeterProvider().Meter(infrastructure.MeterName)
	)
	if providers != nil {
		if providers.Tracer != nil {
			tracer = providers.Tracer
		}
		if providers.Meter != nil {
			meter = providers.Meter
		}
	}

	metrics, err := infrastructure.NewPipelineMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	return &OperationTracer{
		tracer:  tracer,
		metrics: metrics,
	}, nil
}

// TraceStageExecution creates a span for an individual Step execution
func (pt *OperationTracer) TraceStageExecution(ctx context.Context, operationID, stepID string) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, stepID,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.String("step.id", stepID),
		),
	)
}

// RecordStageCompletion records the outcome of a Step on its span and in the stage metrics
func (pt *OperationTracer) RecordStageCompletion(ctx context.Context, span trace.Span, stepID string, status StepStatus, duration time.Duration) {
	span.SetAttributes(
		attribute.String("step.status", string(status)),
		attribute.Float64("step.duration_seconds", duration.Seconds()),
	)

	pt.metrics.StageDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("step", stepID),
			attribute.String("status", string(status)),
		),
	)

	if status == StepStatusFailed {
		span.SetStatus(codes.Error, "step execution failed")
		return
	}
	span.SetStatus(codes.Ok, "")
}

// RecordStageError records a Step error on the span and counts it
func (pt *OperationTracer) RecordStageError(ctx context.Context, span trace.Span, stepID string, err error) {
	span.RecordError(err, trace.WithAttributes(
		attribute.String("error.type", string(GetErrorType(err))),
	))

	pt.metrics.StageErrors.Add(ctx, 1,
		metric.WithAttributes(attribute.String("step", stepID)),
	)
}

// RecordRecordsLoaded counts the records read by the extract step
func (pt *OperationTracer) RecordRecordsLoaded(ctx context.Context, span trace.Span, count int) {
	span.SetAttributes(attribute.Int("records.loaded", count))
	pt.metrics.RecordsLoaded.Add(ctx, int64(count))
}

// RecordEnrichment counts enriched records per performance tag, audit flags
// and unknown order dates
func (pt *OperationTracer) RecordEnrichment(ctx context.Context, span trace.Span, summary *dataprocessing.RunSummary) {
	if summary == nil {
		return
	}

	span.SetAttributes(
		attribute.Int("records.enriched", summary.Rows),
		attribute.Int("records.flagged", summary.Flagged),
	)

	for tag, count := range summary.TagCounts {
		pt.metrics.RecordsEnriched.Add(ctx, int64(count),
			metric.WithAttributes(attribute.String("performance_tag", string(tag))),
		)
	}
	pt.metrics.AuditFlags.Add(ctx, int64(summary.Flagged))
	pt.metrics.UnknownDates.Add(ctx, int64(summary.UnknownDates))
}
