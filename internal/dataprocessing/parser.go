package dataprocessing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "salesaudit/internal/errors"
)

// dateLayouts are tried in order when coercing an order date.
// Month-first forms come before day-first ones, matching common US exports.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006/01/02",
	"2006/1/2",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04:05",
	"01/02/2006 15:04",
	"1/2/2006 15:04",
	"01-02-2006",
	"02-Jan-2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"20060102",
}

// groupedNumber matches a number with comma thousands separators
var groupedNumber = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d*)?$`)

// ParseOrderDate coerces a date-like string permissively.
// The second return value is false when the value is blank or matches no
// known layout; callers keep the row with an unknown date.
func ParseOrderDate(value string) (*time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// parseExcelSerialDate interprets a spreadsheet serial day number as a date
func parseExcelSerialDate(value string) (*time.Time, bool) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || serial <= 0 {
		return nil, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// ParseNumber coerces a numeric cell. Blank cells are zero and surrounding
// whitespace is ignored. Commas are accepted only as thousands separators in
// groups of three; any other comma is an error. NaN and infinities are rejected.
func ParseNumber(value string) (float64, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0, nil
	}
	if strings.Contains(cleaned, ",") {
		if !groupedNumber.MatchString(cleaned) {
			return 0, apperrors.NewParsingError("not a number: "+strconv.Quote(value), nil)
		}
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, apperrors.NewParsingError("not a number: "+strconv.Quote(value), err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, apperrors.NewParsingError("non-finite number: "+strconv.Quote(value), nil)
	}
	return f, nil
}
