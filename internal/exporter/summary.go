package exporter

import (
	"encoding/json"
	"fmt"
	"io"

	"salesaudit/internal/dataprocessing"
	apperrors "salesaudit/internal/errors"
)

// WriteSummaryJSON writes the run summary as indented JSON to path
func WriteSummaryJSON(path string, summary *dataprocessing.RunSummary) error {
	if summary == nil {
		return apperrors.NewSinkWriteError(path, fmt.Errorf("no summary to write"))
	}

	err := writeAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	})
	if err != nil {
		return apperrors.NewSinkWriteError(path, err)
	}
	return nil
}
