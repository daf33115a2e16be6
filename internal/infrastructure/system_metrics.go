package infrastructure

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// SystemMetrics records a snapshot of process resource usage at the end of a run
type SystemMetrics struct {
	goRoutines      metric.Int64Gauge
	memoryUsage     metric.Int64Gauge
	memoryAllocated metric.Int64Gauge
	memorySystem    metric.Int64Gauge
	gcCount         metric.Int64Gauge
	runDuration     metric.Float64Gauge
}

// NewSystemMetrics creates the process gauges on meter
func NewSystemMetrics(meter metric.Meter) (*SystemMetrics, error) {
	goRoutines, err := meter.Int64Gauge(
		"salesaudit_goroutines",
		metric.WithDescription("Number of goroutines when the run finished"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create goroutines gauge: %w", err)
	}

	memoryUsage, err := meter.Int64Gauge(
		"salesaudit_heap_alloc",
		metric.WithDescription("Bytes of allocated heap objects"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create heap gauge: %w", err)
	}

	memoryAllocated, err := meter.Int64Gauge(
		"salesaudit_total_alloc",
		metric.WithDescription("Cumulative bytes allocated during the run"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create allocation gauge: %w", err)
	}

	memorySystem, err := meter.Int64Gauge(
		"salesaudit_sys_memory",
		metric.WithDescription("Bytes of memory obtained from the OS"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create system memory gauge: %w", err)
	}

	gcCount, err := meter.Int64Gauge(
		"salesaudit_gc_cycles",
		metric.WithDescription("Completed garbage collection cycles"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gc gauge: %w", err)
	}

	runDuration, err := meter.Float64Gauge(
		"salesaudit_run_duration",
		metric.WithDescription("Wall time of the whole run"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run duration gauge: %w", err)
	}

	return &SystemMetrics{
		goRoutines:      goRoutines,
		memoryUsage:     memoryUsage,
		memoryAllocated: memoryAllocated,
		memorySystem:    memorySystem,
		gcCount:         gcCount,
		runDuration:     runDuration,
	}, nil
}

// SystemStats holds the sampled values
type SystemStats struct {
	GoRoutines      int64
	MemoryUsage     int64
	MemoryAllocated int64
	MemorySystem    int64
	GCCount         uint32
	RunDuration     time.Duration
	Timestamp       time.Time
}

// Collect samples the runtime and records the gauges
func (sm *SystemMetrics) Collect(ctx context.Context, startTime time.Time) *SystemStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	stats := &SystemStats{
		GoRoutines:      int64(runtime.NumGoroutine()),
		MemoryUsage:     int64(memStats.Alloc),
		MemoryAllocated: int64(memStats.TotalAlloc),
		MemorySystem:    int64(memStats.Sys),
		GCCount:         memStats.NumGC,
		RunDuration:     time.Since(startTime),
		Timestamp:       time.Now(),
	}

	sm.goRoutines.Record(ctx, stats.GoRoutines)
	sm.memoryUsage.Record(ctx, stats.MemoryUsage)
	sm.memoryAllocated.Record(ctx, stats.MemoryAllocated)
	sm.memorySystem.Record(ctx, stats.MemorySystem)
	sm.gcCount.Record(ctx, int64(stats.GCCount))
	sm.runDuration.Record(ctx, stats.RunDuration.Seconds())

	return stats
}

// FormatStats returns the stats as log-friendly values
func (stats *SystemStats) FormatStats() map[string]interface{} {
	return map[string]interface{}{
		"goroutines":       stats.GoRoutines,
		"heap_alloc_mb":    float64(stats.MemoryUsage) / 1024 / 1024,
		"total_alloc_mb":   float64(stats.MemoryAllocated) / 1024 / 1024,
		"sys_memory_mb":    float64(stats.MemorySystem) / 1024 / 1024,
		"gc_cycles":        stats.GCCount,
		"run_duration_sec": stats.RunDuration.Seconds(),
	}
}
