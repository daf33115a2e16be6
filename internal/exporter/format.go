package exporter

import (
	"strconv"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// formatFloat formats a float64 with the shortest representation that
// parses back to the same value
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatDate formats an order date. Unknown dates are blank and the time of
// day is only written when present.
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(dateLayout)
	}
	return t.Format(dateTimeLayout)
}

// formatCell renders a row value as text
func formatCell(v interface{}) string {
	switch val := v.(type) {
	case float64:
		return formatFloat(val)
	case string:
		return val
	default:
		return ""
	}
}
