package infrastructure

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func testLogger() *slog.Logger {
	return NewConsoleLogger(&bytes.Buffer{}, slog.LevelDebug)
}

// TestOTelInitialization tests OpenTelemetry initialization
func TestOTelInitialization(t *testing.T) {
	providers, err := InitializeOTel(nil, testLogger())
	require.NoError(t, err)
	require.NotNil(t, providers)

	assert.NotNil(t, providers.TracerProvider)
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Registry)

	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestOTelInitialization_UnsupportedExporter(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "zipkin"

	_, err := InitializeOTel(cfg, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported trace exporter")
}

func TestStdoutTracing(t *testing.T) {
	var spans bytes.Buffer
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "stdout"
	cfg.TraceWriter = &spans

	providers, err := InitializeOTel(cfg, testLogger())
	require.NoError(t, err)

	_, span := providers.Tracer.Start(context.Background(), "transform")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))
	assert.Contains(t, spans.String(), `"Name": "transform"`)
}

func TestPipelineMetrics_Textfile(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), testLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	m, err := NewPipelineMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordsLoaded.Add(ctx, 4)
	m.RecordsEnriched.Add(ctx, 3, metric.WithAttributes(attribute.String("performance_tag", "HEALTHY: STANDARD")))
	m.AuditFlags.Add(ctx, 1)
	m.StageDuration.Record(ctx, 0.25, metric.WithAttributes(attribute.String("stage", "transform")))

	path := filepath.Join(t.TempDir(), "salesaudit.prom")
	require.NoError(t, providers.WriteMetricsTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "salesaudit_records_loaded")
	assert.Contains(t, text, "salesaudit_audit_flags")
	assert.Contains(t, text, `performance_tag="HEALTHY: STANDARD"`)
	assert.Contains(t, text, "salesaudit_stage_duration_seconds")
}

func TestWriteMetricsTextfile_Uninitialized(t *testing.T) {
	var p *OTelProviders
	assert.Error(t, p.WriteMetricsTextfile(filepath.Join(t.TempDir(), "x.prom")))
	assert.NoError(t, p.Shutdown(context.Background()))
}
