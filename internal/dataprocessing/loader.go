package dataprocessing

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "salesaudit/internal/errors"
	"salesaudit/internal/infrastructure"
	"salesaudit/pkg/contracts/domain"
)

const utf8BOM = "\ufeff"

// Loader reads a sales source into an in-memory table
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new loader
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{logger: infrastructure.WithComponent(logger, "loader")}
}

// Load reads the source at path. A source that does not exist or cannot be
// opened yields an empty table and a nil error so callers can detect
// "nothing to do" uniformly. Spreadsheets (.xlsx) are read from their first
// sheet; anything else is read as comma-separated text.
func (l *Loader) Load(ctx context.Context, path string) (*domain.SalesTable, error) {
	l.logger.InfoContext(ctx, fmt.Sprintf("Ingesting data from %s...", path))

	rows, excelDates, err := l.readRows(path)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrTypeSourceNotFound) {
			l.logger.ErrorContext(ctx, fmt.Sprintf("File %s not found.", path), slog.String("error", err.Error()))
			return domain.NewSalesTable(path, nil), nil
		}
		return nil, err
	}

	table, dateErrs, err := buildTable(path, rows, excelDates)
	if err != nil {
		return nil, err
	}

	if len(dateErrs) > 0 {
		for _, de := range dateErrs {
			l.logger.DebugContext(ctx, de.Error(), slog.Any("row", de.Context["row"]))
		}
		l.logger.WarnContext(ctx, "Order dates could not be parsed and were set to unknown",
			slog.Int("count", len(dateErrs)))
	}
	infrastructure.Success(ctx, l.logger, fmt.Sprintf("Ingested %d rows.", table.Len()),
		slog.String("source", path),
		slog.Int("rows", table.Len()))

	return table, nil
}

// readRows returns the raw rows of the source, header first.
// The boolean reports whether dates may be spreadsheet serial numbers.
func (l *Loader) readRows(path string) ([][]string, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, apperrors.NewSourceNotFoundError(path, err)
	}
	if info.IsDir() {
		return nil, false, apperrors.NewSourceNotFoundError(path, errors.New("is a directory"))
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err := readXLSXRows(path)
		return rows, true, err
	}
	rows, err := readCSVRows(path)
	return rows, false, err
}

// readCSVRows reads every record of a comma-separated file
func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewSourceNotFoundError(path, err)
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV reads comma-separated records from r. Rows may be shorter than the
// header; buildTable pads them.
func ReadCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read CSV", err)
	}
	return rows, nil
}

// readXLSXRows reads the first sheet of a workbook with raw cell values,
// so numbers keep their full precision.
func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewSourceNotFoundError(path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q", sheets[0]), err)
	}
	return rows, nil
}

// buildTable coerces raw rows into a sales table. It also returns one
// MalformedDate error per record whose order date is unknown.
func buildTable(source string, rows [][]string, excelDates bool) (*domain.SalesTable, []*apperrors.AppError, error) {
	if len(rows) == 0 {
		return domain.NewSalesTable(source, nil), nil, nil
	}

	header := normalizeHeader(rows[0])
	table := domain.NewSalesTable(source, header)

	index := make(map[string]int, len(domain.RequiredColumns))
	for _, col := range domain.RequiredColumns {
		i := table.ColumnIndex(col)
		if i < 0 {
			return nil, nil, apperrors.NewValidationError(fmt.Sprintf("missing required column %q", col)).
				WithContext("source", source)
		}
		index[col] = i
	}

	var dateErrs []*apperrors.AppError
	table.Records = make([]domain.SalesRecord, 0, len(rows)-1)

	for n, raw := range rows[1:] {
		line := n + 2 // 1-based, header is line 1
		// Spreadsheets report empty rows; delimited text rows are kept even when every cell is blank
		if len(raw) == 0 || (excelDates && isBlankRow(raw)) {
			continue
		}
		if len(raw) > len(header) {
			return nil, nil, apperrors.NewParsingError(
				fmt.Sprintf("row %d has %d fields, header has %d", line, len(raw), len(header)), nil)
		}

		cells := make([]string, len(header))
		copy(cells, raw)

		record := domain.SalesRecord{
			Category: cells[index[domain.ColumnCategory]],
			Cells:    cells,
		}

		dateCell := cells[index[domain.ColumnOrderDate]]
		date, ok := ParseOrderDate(dateCell)
		if !ok && excelDates {
			date, ok = parseExcelSerialDate(dateCell)
		}
		if !ok {
			dateErrs = append(dateErrs, apperrors.NewMalformedDateError(dateCell, line))
		}
		record.OrderDate = date

		for _, f := range []struct {
			col string
			dst *float64
		}{
			{domain.ColumnSales, &record.Sales},
			{domain.ColumnProfit, &record.Profit},
			{domain.ColumnDiscount, &record.Discount},
		} {
			v, err := ParseNumber(cells[index[f.col]])
			if err != nil {
				var appErr *apperrors.AppError
				if errors.As(err, &appErr) {
					appErr.WithContext("row", line).WithContext("column", f.col)
				}
				return nil, nil, fmt.Errorf("row %d column %s: %w", line, f.col, err)
			}
			*f.dst = v
		}

		table.Records = append(table.Records, record)
	}

	return table, dateErrs, nil
}

// normalizeHeader trims whitespace and a leading byte order mark
func normalizeHeader(raw []string) []string {
	header := make([]string, len(raw))
	for i, h := range raw {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		header[i] = strings.TrimSpace(h)
	}
	return header
}

// isBlankRow reports whether every cell of a row is empty
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
