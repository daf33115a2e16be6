package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"salesaudit/pkg/contracts/domain"
)

// xlsxSheetName is the sheet holding the processed table
const xlsxSheetName = "Processed"

// writeXLSX writes the table as a single-sheet workbook. Numeric columns are
// stored as numbers, everything else as text.
func writeXLSX(out io.Writer, table *domain.SalesTable) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(xlsxSheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	layout := newColumnLayout(table)

	header := make([]interface{}, len(layout.header))
	for i, h := range layout.header {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i := range table.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, layout.values(&table.Records[i])); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	return f.Write(out)
}
