// Package exporter writes enriched sales tables.
//
// CSVWriter serializes a table to comma-separated text, or to a workbook when
// the target ends in .xlsx. Output is written to a temporary file and renamed
// into place, so a failed write never leaves a partial file. Every source
// column is kept in order and the derived Margin_Percent, Performance_Tag and
// Audit_Alert columns follow, unless the source already had them.
//
// WritePreview prints an aligned excerpt of the processed table for the
// operator, and WriteSummaryJSON persists a run summary.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(logger)
//	if err := writer.WriteTable("Processed_Profitability_Audit.csv", table); err != nil {
//	    return err
//	}
//	exporter.WritePreview(os.Stdout, table, exporter.DefaultPreviewRows)
package exporter
