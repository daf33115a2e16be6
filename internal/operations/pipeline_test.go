package operations_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesaudit/internal/infrastructure"
	"salesaudit/internal/operations"
	optestutil "salesaudit/internal/operations/testutil"
	"salesaudit/internal/shared/testutil"
	"salesaudit/pkg/contracts/domain"
)

func runPipeline(t *testing.T, opts operations.Options, providers *infrastructure.OTelProviders) (*operations.Result, *testutil.BufferedSlogHandler) {
	t.Helper()

	logger, logs := testutil.NewTestLogger(t)
	pipeline, err := operations.NewPipeline(opts, logger, providers)
	require.NoError(t, err)

	result, err := pipeline.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)
	return result, logs
}

func stepStatuses(result *operations.Result) []operations.StepStatus {
	statuses := make([]operations.StepStatus, len(result.Steps))
	for i, s := range result.Steps {
		statuses[i] = s.Status
	}
	return statuses
}

func TestPipeline_Completed(t *testing.T) {
	var preview bytes.Buffer
	output := filepath.Join(t.TempDir(), "Processed_Profitability_Audit.csv")

	result, logs := runPipeline(t, operations.Options{
		InputFile:   testutil.WriteSampleSalesCSV(t),
		OutputFile:  output,
		PreviewRows: 5,
		PreviewOut:  &preview,
	}, nil)

	assert.Equal(t, operations.StatusCompleted, result.Status)
	assert.NoError(t, result.Err)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, []operations.StepStatus{
		operations.StepStatusCompleted,
		operations.StepStatusCompleted,
		operations.StepStatusCompleted,
	}, stepStatuses(result))
	for _, step := range result.Steps {
		assert.Equal(t, len(testutil.SampleSalesRows), step.Rows, step.ID)
	}

	require.NotNil(t, result.Summary)
	assert.Equal(t, len(testutil.SampleSalesRows), result.Summary.Rows)
	assert.Equal(t, 1, result.Summary.Flagged)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, len(testutil.SampleSalesRows)+1)
	assert.True(t, strings.HasSuffix(lines[0], "Margin_Percent,Performance_Tag,Audit_Alert"))

	assert.Contains(t, preview.String(), "PREVIEW OF PROCESSED DATA:")

	testutil.AssertLogContains(t, logs, slog.LevelInfo, "Ingesting data from")
	testutil.AssertLogContains(t, logs, slog.LevelInfo, "Starting Data Transformation...")
	testutil.AssertLogContains(t, logs, infrastructure.LevelSuccess, "Ingested 6 rows.")
	testutil.AssertLogContains(t, logs, infrastructure.LevelSuccess, "Transformation Complete. Enriched with Performance Tags.")
	testutil.AssertLogContains(t, logs, infrastructure.LevelSuccess, "Data saved to "+output)
	testutil.AssertNoErrors(t, logs)
}

func TestPipeline_MissingInput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.csv")

	result, logs := runPipeline(t, operations.Options{
		InputFile:  filepath.Join(dir, "missing.csv"),
		OutputFile: output,
	}, nil)

	assert.Equal(t, operations.StatusNoInput, result.Status)
	assert.Equal(t, 2, result.Status.ExitCode())
	assert.NoError(t, result.Err)
	assert.Equal(t, []operations.StepStatus{
		operations.StepStatusCompleted,
		operations.StepStatusSkipped,
		operations.StepStatusSkipped,
	}, stepStatuses(result))
	optestutil.AssertStageCompleted(t, result, operations.StepIDExtract)
	optestutil.AssertStageSkipped(t, result, operations.StepIDTransform)
	optestutil.AssertStageSkipped(t, result, operations.StepIDLoad)
	assert.Nil(t, result.Summary)

	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err), "no output must be written")

	testutil.AssertLogContains(t, logs, slog.LevelError, "not found.")
	assert.False(t, logs.ContainsMessage("Starting Data Transformation..."))
}

func TestPipeline_HeaderOnlyInput(t *testing.T) {
	result, _ := runPipeline(t, operations.Options{
		InputFile:  testutil.WriteSalesCSV(t, "sales.csv", testutil.SalesHeader+"\n"),
		OutputFile: filepath.Join(t.TempDir(), "out.csv"),
	}, nil)

	assert.Equal(t, operations.StatusNoInput, result.Status)
}

func TestPipeline_LoadFailed(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.csv")

	result, _ := runPipeline(t, operations.Options{
		InputFile:  testutil.WriteSalesCSV(t, "sales.csv", testutil.SalesCSV("Category,Sales", "Books,10")),
		OutputFile: output,
	}, nil)

	assert.Equal(t, operations.StatusLoadFailed, result.Status)
	assert.Equal(t, 1, result.Status.ExitCode())
	require.Error(t, result.Err)
	assert.Equal(t, []operations.StepStatus{
		operations.StepStatusFailed,
		operations.StepStatusSkipped,
		operations.StepStatusSkipped,
	}, stepStatuses(result))
	optestutil.AssertStageFailed(t, result, operations.StepIDExtract)
	optestutil.AssertStageSkipped(t, result, operations.StepIDTransform)
	optestutil.AssertStageSkipped(t, result, operations.StepIDLoad)

	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}

func TestPipeline_TransformFailed(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.csv")

	result, logs := runPipeline(t, operations.Options{
		InputFile: testutil.WriteSalesCSV(t, "sales.csv",
			testutil.SalesCSV(testutil.SalesHeader, "2024-01-05,Books,0.5,1e308,0,North")),
		OutputFile: output,
	}, nil)

	assert.Equal(t, operations.StatusLoadFailed, result.Status)
	assert.Equal(t, 1, result.Status.ExitCode())
	require.Error(t, result.Err)
	optestutil.AssertStageCompleted(t, result, operations.StepIDExtract)
	optestutil.AssertStageFailed(t, result, operations.StepIDTransform)
	optestutil.AssertStageSkipped(t, result, operations.StepIDLoad)

	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err), "no output must be written")
	testutil.AssertLogContains(t, logs, slog.LevelError, "Failed to transform data:")
}

func TestPipeline_WriteFailed(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	var preview bytes.Buffer
	result, logs := runPipeline(t, operations.Options{
		InputFile:   testutil.WriteSampleSalesCSV(t),
		OutputFile:  filepath.Join(blocker, "out.csv"),
		PreviewRows: 5,
		PreviewOut:  &preview,
	}, nil)

	assert.Equal(t, operations.StatusWriteFailed, result.Status)
	assert.Equal(t, 3, result.Status.ExitCode())
	require.Error(t, result.Err)
	optestutil.AssertStageCompleted(t, result, operations.StepIDExtract)
	optestutil.AssertStageCompleted(t, result, operations.StepIDTransform)
	optestutil.AssertStageFailed(t, result, operations.StepIDLoad)

	// the summary of the transform step survives a write failure
	require.NotNil(t, result.Summary)
	assert.Empty(t, preview.String(), "preview is only printed after a successful save")
	testutil.AssertLogContains(t, logs, slog.LevelError, "Failed to save data:")
}

func TestPipeline_WithTelemetry(t *testing.T) {
	var traces bytes.Buffer
	cfg := infrastructure.DefaultOTelConfig()
	cfg.TraceExporter = "stdout"
	cfg.TraceWriter = &traces

	logger, _ := testutil.NewTestLogger(t)
	providers, err := infrastructure.InitializeOTel(cfg, logger)
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	result, _ := runPipeline(t, operations.Options{
		InputFile:  testutil.WriteSampleSalesCSV(t),
		OutputFile: filepath.Join(t.TempDir(), "out.csv"),
	}, providers)
	require.Equal(t, operations.StatusCompleted, result.Status)

	metricsFile := filepath.Join(t.TempDir(), "salesaudit.prom")
	require.NoError(t, providers.WriteMetricsTextfile(metricsFile))

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "salesaudit_records_loaded")
	assert.Contains(t, text, "salesaudit_audit_flags")
	assert.Contains(t, text, "salesaudit_stage_duration_seconds")

	for _, span := range []string{`"Name": "extract"`, `"Name": "transform"`, `"Name": "load"`} {
		assert.Contains(t, traces.String(), span)
	}
}

func TestPipeline_CustomSteps(t *testing.T) {
	registry := operations.NewRegistry()
	table := domain.NewSalesTable("memory", domain.RequiredColumns)
	table.Records = append(table.Records, domain.SalesRecord{Sales: 10})

	extract := optestutil.CreateContextAwareStage("extract", "Extract", operations.ContextKeyTable, table)
	failing := optestutil.CreateFailingStage("transform", "Transform", errors.New("boom"), "extract")
	after := optestutil.CreateSuccessfulStage("load", "Load", "transform")
	require.NoError(t, registry.Register(extract))
	require.NoError(t, registry.Register(failing))
	require.NoError(t, registry.Register(after))

	logger, _ := testutil.NewTestLogger(t)
	pipeline, err := operations.NewPipelineWithRegistry(registry, logger, nil)
	require.NoError(t, err)

	result, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, operations.StatusLoadFailed, result.Status)
	assert.EqualError(t, result.Err, "boom")
	assert.Equal(t, 1, extract.ExecuteCalls)
	assert.Equal(t, 1, failing.ExecuteCalls)
	assert.Equal(t, 0, after.ExecuteCalls)
	assert.Equal(t, operations.StepStatusSkipped, result.Steps[2].Status)
	assert.Contains(t, result.Steps[2].Message, "transform")
}

func TestPipeline_UnschedulableSteps(t *testing.T) {
	registry := operations.NewRegistry()
	require.NoError(t, registry.Register(optestutil.CreateSuccessfulStage("load", "Load", "missing")))

	logger, _ := testutil.NewTestLogger(t)
	pipeline, err := operations.NewPipelineWithRegistry(registry, logger, nil)
	require.NoError(t, err)

	_, err = pipeline.Run(context.Background())
	require.Error(t, err)
}
