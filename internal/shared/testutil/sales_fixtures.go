package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SalesHeader is the column layout of the sample sales files
const SalesHeader = "Order Date,Category,Sales,Profit,Discount,Region"

// SampleSalesRows covers each performance tag, the audit flag and an
// unparseable date.
var SampleSalesRows = []string{
	"2024-01-05,Electronics,1000,-50,10,North",
	"2024-01-06,Furniture,1000,50,40,South",
	"2024-01-07,Electronics,1000,-50,40,East",
	"not a date,Office Supplies,0,0,5,West",
	"01/09/2024,Books,1000,300,0,North",
	"2024-01-10,Books,200,30,15,South",
}

// SalesCSV joins a header and rows into CSV text
func SalesCSV(header string, rows ...string) string {
	return header + "\n" + strings.Join(rows, "\n") + "\n"
}

// WriteSalesCSV writes CSV content into a temporary directory and returns its path
func WriteSalesCSV(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", path, err)
	}
	return path
}

// WriteSampleSalesCSV writes the sample sales file and returns its path
func WriteSampleSalesCSV(t *testing.T) string {
	t.Helper()
	return WriteSalesCSV(t, "sales.csv", SalesCSV(SalesHeader, SampleSalesRows...))
}
