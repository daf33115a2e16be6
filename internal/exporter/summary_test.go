package exporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesaudit/internal/dataprocessing"
	apperrors "salesaudit/internal/errors"
)

func TestWriteSummaryJSON(t *testing.T) {
	summary := dataprocessing.Summarize(enrichedSample(t))
	path := filepath.Join(t.TempDir(), "reports", "summary.json")

	require.NoError(t, WriteSummaryJSON(path, summary))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, float64(6), decoded["rows"])
	assert.Equal(t, float64(1), decoded["flagged"])
	assert.Equal(t, float64(1), decoded["unknown_dates"])
	assert.Equal(t, "2024-01-05T00:00:00Z", decoded["first_order_date"])

	counts, ok := decoded["tag_counts"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), counts["CRITICAL: NEGATIVE MARGIN"])
	assert.Equal(t, float64(0), counts["WARNING: LOW MARGIN"])
}

func TestWriteSummaryJSON_NilSummary(t *testing.T) {
	err := WriteSummaryJSON(filepath.Join(t.TempDir(), "summary.json"), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSinkWrite))
}
