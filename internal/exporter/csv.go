package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "salesaudit/internal/errors"
	"salesaudit/internal/infrastructure"
	"salesaudit/pkg/contracts/domain"
)

// CSVWriter writes enriched sales tables to delimited text or xlsx files
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new table writer
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	return &CSVWriter{logger: infrastructure.WithComponent(logger, "writer")}
}

// WriteOptions configures table writing behavior
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteTable writes the enriched table to path with default options
func (w *CSVWriter) WriteTable(path string, table *domain.SalesTable) error {
	return w.WriteTableWithOptions(path, table, WriteOptions{})
}

// WriteTableWithOptions writes the enriched table to path. The file is
// written to a temporary sibling and renamed into place, so a failed write
// leaves any previous file untouched and no partial output behind.
func (w *CSVWriter) WriteTableWithOptions(path string, table *domain.SalesTable, options WriteOptions) error {
	if table == nil {
		return apperrors.NewSinkWriteError(path, fmt.Errorf("no table to write"))
	}

	w.logger.Info("Writing output file",
		slog.String("file_path", path),
		slog.Int("record_count", table.Len()))

	write := func(f io.Writer) error {
		return writeCSV(f, table, options)
	}
	if isXLSX(path) {
		write = func(f io.Writer) error {
			return writeXLSX(f, table)
		}
	}

	if err := writeAtomic(path, write); err != nil {
		return apperrors.NewSinkWriteError(path, err)
	}
	return nil
}

// writeCSV writes the header and every record as comma-separated text
func writeCSV(out io.Writer, table *domain.SalesTable, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	layout := newColumnLayout(table)
	writer := csv.NewWriter(out)

	if err := writer.Write(layout.header); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	row := make([]string, len(layout.header))
	for i := range table.Records {
		for j, v := range layout.values(&table.Records[i]) {
			row[j] = formatCell(v)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// writeAtomic creates the parent directory, streams content into a
// temporary file beside path and renames it over path on success
func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := write(tmp); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}

	committed = true
	return nil
}

func isXLSX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// columnLayout maps the output header to the typed fields of a record
type columnLayout struct {
	header []string
	typed  map[int]func(r *domain.SalesRecord) interface{}
}

// newColumnLayout builds the output layout. Derived columns already present
// in the source header are overwritten in place, the rest are appended.
func newColumnLayout(table *domain.SalesTable) columnLayout {
	header := table.OutputHeader()

	fields := map[string]func(r *domain.SalesRecord) interface{}{
		domain.ColumnOrderDate:      func(r *domain.SalesRecord) interface{} { return formatDate(r.OrderDate) },
		domain.ColumnCategory:       func(r *domain.SalesRecord) interface{} { return r.Category },
		domain.ColumnSales:          func(r *domain.SalesRecord) interface{} { return r.Sales },
		domain.ColumnProfit:         func(r *domain.SalesRecord) interface{} { return r.Profit },
		domain.ColumnDiscount:       func(r *domain.SalesRecord) interface{} { return r.Discount },
		domain.ColumnMarginPercent:  func(r *domain.SalesRecord) interface{} { return r.MarginPercent },
		domain.ColumnPerformanceTag: func(r *domain.SalesRecord) interface{} { return string(r.PerformanceTag) },
		domain.ColumnAuditAlert:     func(r *domain.SalesRecord) interface{} { return string(r.AuditAlert) },
	}

	layout := columnLayout{
		header: header,
		typed:  make(map[int]func(r *domain.SalesRecord) interface{}, len(fields)),
	}
	// only the first occurrence of a duplicated column name is interpreted
	for i, col := range header {
		if field, ok := fields[col]; ok {
			layout.typed[i] = field
			delete(fields, col)
		}
	}
	return layout
}

// values returns the output row of a record. Columns the pipeline does not
// interpret come from the raw input cells unchanged.
func (l columnLayout) values(r *domain.SalesRecord) []interface{} {
	row := make([]interface{}, len(l.header))
	for i := range l.header {
		if field, ok := l.typed[i]; ok {
			row[i] = field(r)
			continue
		}
		if i < len(r.Cells) {
			row[i] = r.Cells[i]
		} else {
			row[i] = ""
		}
	}
	return row
}
