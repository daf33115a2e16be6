package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "salesaudit/internal/errors"
)

func TestParseOrderDate(t *testing.T) {
	jan9 := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value string
		want  time.Time
		ok    bool
	}{
		{"iso date", "2024-01-09", jan9, true},
		{"iso date with spaces", "  2024-01-09 ", jan9, true},
		{"iso datetime", "2024-01-09 14:30:00", time.Date(2024, 1, 9, 14, 30, 0, 0, time.UTC), true},
		{"us slash", "01/09/2024", jan9, true},
		{"us slash short", "1/9/2024", jan9, true},
		{"us slash short with seconds", "1/15/2024 10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"us slash with minutes", "01/15/2024 10:30", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"slash year first", "2024/01/09", jan9, true},
		{"month name", "Jan 9, 2024", jan9, true},
		{"day month name", "09-Jan-2024", jan9, true},
		{"compact", "20240109", jan9, true},
		{"blank", "", time.Time{}, false},
		{"whitespace", "   ", time.Time{}, false},
		{"garbage", "not a date", time.Time{}, false},
		{"impossible day", "2024-02-31", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseOrderDate(tt.value)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "want %v, got %v", tt.want, *got)
		})
	}
}

func TestParseExcelSerialDate(t *testing.T) {
	got, ok := parseExcelSerialDate("45300")
	require.True(t, ok)
	assert.Equal(t, "2024-01-09", got.Format("2006-01-02"))

	for _, v := range []string{"", "abc", "0", "-4"} {
		got, ok := parseExcelSerialDate(v)
		assert.False(t, ok, "value %q", v)
		assert.Nil(t, got)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    float64
		wantErr bool
	}{
		{"integer", "1000", 1000, false},
		{"decimal", "12.5", 12.5, false},
		{"negative", "-50", -50, false},
		{"thousands separator", "1,234.5", 1234.5, false},
		{"millions separator", "-1,234,567", -1234567, false},
		{"signed grouped decimal", "+12,000.", 12000, false},
		{"decimal comma", "1,5", 0, true},
		{"european grouping", "1.234,56", 0, true},
		{"irregular grouping", "12,34,5", 0, true},
		{"leading comma", ",123", 0, true},
		{"surrounding spaces", "  42 ", 42, false},
		{"blank is zero", "", 0, false},
		{"whitespace is zero", "  ", 0, false},
		{"exponent", "1e3", 1000, false},
		{"text", "abc", 0, true},
		{"currency", "$10", 0, true},
		{"nan", "NaN", 0, true},
		{"infinity", "Inf", 0, true},
		{"negative infinity", "-Inf", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNumber(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
