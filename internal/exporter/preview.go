package exporter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"salesaudit/pkg/contracts/domain"
)

// DefaultPreviewRows is the number of rows shown when no count is configured
const DefaultPreviewRows = 5

// WritePreview prints the first n records of the table as an aligned text
// table of the preview columns. It is operator-facing output only.
func WritePreview(w io.Writer, table *domain.SalesTable, n int) error {
	if n < 0 {
		n = 0
	}
	if n > table.Len() {
		n = table.Len()
	}

	if _, err := fmt.Fprintf(w, "%s\nPREVIEW OF PROCESSED DATA:\n", strings.Repeat("-", 30)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(domain.PreviewColumns, "\t"))

	for i := 0; i < n; i++ {
		r := &table.Records[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.Category,
			formatFloat(r.Sales),
			formatFloat(r.Profit),
			formatFloat(r.MarginPercent),
			r.PerformanceTag)
	}

	return tw.Flush()
}
