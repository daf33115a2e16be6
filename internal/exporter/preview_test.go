package exporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesaudit/pkg/contracts/domain"
)

func TestWritePreview(t *testing.T) {
	table := enrichedSample(t)

	var buf bytes.Buffer
	require.NoError(t, WritePreview(&buf, table, DefaultPreviewRows))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3+DefaultPreviewRows)

	assert.Equal(t, strings.Repeat("-", 30), lines[0])
	assert.Equal(t, "PREVIEW OF PROCESSED DATA:", lines[1])
	assert.Equal(t, domain.PreviewColumns, strings.Fields(lines[2]))

	assert.True(t, strings.HasPrefix(lines[3], "Electronics"))
	assert.Contains(t, lines[3], "CRITICAL: NEGATIVE MARGIN")
	assert.Contains(t, lines[7], "PERFORMER: HIGH MARGIN")
	assert.NotContains(t, buf.String(), "Audit_Alert")

	// columns are aligned
	col := strings.Index(lines[2], "Sales")
	assert.Equal(t, "1000", strings.Fields(lines[3][col:])[0])
}

func TestWritePreview_Bounds(t *testing.T) {
	table := enrichedSample(t)

	tests := []struct {
		name string
		n    int
		rows int
	}{
		{"zero rows", 0, 0},
		{"negative count", -3, 0},
		{"more than available", 100, table.Len()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WritePreview(&buf, table, tt.n))

			lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			assert.Len(t, lines, 3+tt.rows)
		})
	}
}

func TestWritePreview_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePreview(&buf, domain.NewSalesTable("empty", nil), DefaultPreviewRows))
	assert.Contains(t, buf.String(), "PREVIEW OF PROCESSED DATA:")
}
