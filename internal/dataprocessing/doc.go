// Package dataprocessing loads sales tables and applies the profitability
// audit rules to them.
//
// # Architecture
//
// The package is organized into three components:
//
// 1. Loader: reads a CSV or xlsx source into a domain.SalesTable, coercing
// dates permissively and numbers strictly
// 2. Rules: MarginPercent, ClassifyPerformance and AuditDiscount, the
// row-local business rules
// 3. Enricher: applies the rules to every record and produces a RunSummary
//
// # Data Flow
//
//	CSV/xlsx → Loader → SalesTable → Enricher → enriched SalesTable + RunSummary
//
// # Classification
//
// Performance tags come from an ordered decision table evaluated first-match:
//
//	Profit < 0                       CRITICAL: NEGATIVE MARGIN
//	Margin < 10 and Profit > 0       WARNING: LOW MARGIN
//	10 <= Margin < 25                HEALTHY: STANDARD
//	Margin >= 25                     PERFORMER: HIGH MARGIN
//	otherwise                        HEALTHY: STANDARD
//
// A record is flagged FLAG: BAD DISCOUNT STRATEGY exactly when
// Discount > 30 and Profit < 0.
//
// # Error Handling
//
// A missing source is not an error: Load returns an empty table. Unparseable
// dates become unknown dates. Unparseable numbers and missing required
// columns fail the load.
package dataprocessing
