package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	apperrors "salesaudit/internal/errors"
	"salesaudit/internal/infrastructure"
	"salesaudit/pkg/contracts/domain"
)

// Processor defines the interface for the transformation stage
type Processor interface {
	// Process enriches every record of the table in place
	Process(ctx context.Context, table *domain.SalesTable) (*RunSummary, error)
}

// Enricher applies the margin, performance and audit rules to a table
type Enricher struct {
	logger *slog.Logger
}

// NewEnricher creates a new enricher
func NewEnricher(logger *slog.Logger) *Enricher {
	return &Enricher{logger: infrastructure.WithComponent(logger, "transform")}
}

// Process enriches each record in place and summarises the result.
// Records are never added or removed. Every derivation is row-local.
func (e *Enricher) Process(ctx context.Context, table *domain.SalesTable) (*RunSummary, error) {
	if table == nil {
		return nil, apperrors.NewValidationError("no table to transform")
	}

	e.logger.InfoContext(ctx, "Starting Data Transformation...", slog.Int("rows", table.Len()))

	for i := range table.Records {
		r := &table.Records[i]
		if !isFinite(r.Sales) || !isFinite(r.Profit) || !isFinite(r.Discount) {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("record %d has a non-finite numeric field", i), nil).
				WithContext("record", i)
		}
		EnrichRecord(r)
		if !isFinite(r.MarginPercent) {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("record %d has a margin outside the float64 range", i), nil).
				WithContext("record", i)
		}
	}

	summary := Summarize(table)

	infrastructure.Success(ctx, e.logger, "Transformation Complete. Enriched with Performance Tags.",
		slog.Int("rows", summary.Rows),
		slog.Int("flagged", summary.Flagged),
		slog.Int("unknown_dates", summary.UnknownDates))

	return summary, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
