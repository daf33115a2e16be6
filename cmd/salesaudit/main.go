package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"salesaudit/internal/config"
	"salesaudit/internal/exporter"
	"salesaudit/internal/infrastructure"
	"salesaudit/internal/operations"
	"salesaudit/pkg/contracts"
)

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one audit and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("salesaudit", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "optional YAML config file")
	inFile := fs.String("in", config.DefaultInputFile, "input sales file (.csv or .xlsx)")
	outFile := fs.String("out", config.DefaultOutputFile, "output file (.csv or .xlsx)")
	previewRows := fs.Int("preview", config.DefaultPreviewRows, "number of rows to preview after saving (0 disables)")
	summaryFile := fs.String("summary", "", "optional path of a JSON run summary")
	metricsFile := fs.String("metrics", "", "optional path of a Prometheus textfile")
	showVersion := fs.Bool("version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if *showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}

	startTime := time.Now()
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	// Only flags given on the command line override env and file values
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "in":
			cfg.Pipeline.InputFile = *inFile
		case "out":
			cfg.Pipeline.OutputFile = *outFile
		case "preview":
			cfg.Pipeline.PreviewRows = *previewRows
		case "summary":
			cfg.Pipeline.SummaryFile = *summaryFile
		case "metrics":
			cfg.Telemetry.MetricsFile = *metricsFile
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil || logger == nil {
		logger = slog.Default()
		logger.Warn("Failed to initialize logger, using default", "error", err)
	}
	defer infrastructure.CloseLogFile()

	logger.Debug("starting",
		slog.String("app", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("input", cfg.Pipeline.InputFile),
		slog.String("output", cfg.Pipeline.OutputFile))

	providers, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		logger.Warn("Telemetry disabled", slog.String("error", err.Error()))
		providers = nil
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(ctx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pipeline, err := operations.NewPipeline(operations.Options{
		InputFile:   cfg.Pipeline.InputFile,
		OutputFile:  cfg.Pipeline.OutputFile,
		PreviewRows: cfg.Pipeline.PreviewRows,
		PreviewOut:  stdout,
	}, logger, providers)
	if err != nil {
		logger.Error("Failed to build pipeline", slog.String("error", err.Error()))
		return operations.StatusLoadFailed.ExitCode()
	}

	result, err := pipeline.Run(ctx)
	if err != nil {
		logger.Error("Pipeline could not run", slog.String("error", err.Error()))
		return operations.StatusLoadFailed.ExitCode()
	}

	if cfg.Pipeline.SummaryFile != "" && result.Summary != nil {
		if err := exporter.WriteSummaryJSON(cfg.Pipeline.SummaryFile, result.Summary); err != nil {
			logger.Warn("Failed to write run summary", slog.String("error", err.Error()))
		} else {
			logger.Info("Run summary written", slog.String("path", cfg.Pipeline.SummaryFile))
		}
	}

	if cfg.Telemetry.MetricsFile != "" && providers != nil {
		if sm, err := infrastructure.NewSystemMetrics(providers.Meter); err == nil {
			stats := sm.Collect(ctx, startTime)
			logger.Debug("process stats", slog.Any("stats", stats.FormatStats()))
		}
		if err := providers.WriteMetricsTextfile(cfg.Telemetry.MetricsFile); err != nil {
			logger.Warn("Failed to write metrics", slog.String("error", err.Error()))
		}
	}

	logger.Debug("run finished",
		slog.String("status", string(result.Status)),
		slog.Int("exit_code", result.Status.ExitCode()))
	return result.Status.ExitCode()
}
