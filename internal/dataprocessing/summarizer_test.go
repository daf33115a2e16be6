package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesaudit/pkg/contracts/domain"
)

func TestSummarize(t *testing.T) {
	jan := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	table := domain.NewSalesTable("sales.csv", domain.RequiredColumns)
	table.Records = []domain.SalesRecord{
		{OrderDate: &mar, Sales: 1000, Profit: -50, Discount: 40},
		{OrderDate: &jan, Sales: 1000, Profit: 300},
		{Sales: 0, Profit: 0},
	}
	for i := range table.Records {
		EnrichRecord(&table.Records[i])
	}

	s := Summarize(table)

	assert.Equal(t, "sales.csv", s.Source)
	assert.Equal(t, 3, s.Rows)
	assert.Equal(t, 1, s.Flagged)
	assert.Equal(t, 1, s.UnknownDates)
	assert.Equal(t, 2000.0, s.TotalSales)
	assert.Equal(t, 250.0, s.TotalProfit)
	assert.InDelta(t, 12.5, s.OverallMarginPercent, 1e-9)

	assert.Equal(t, 1, s.TagCounts[domain.TagCriticalNegativeMargin])
	assert.Equal(t, 1, s.TagCounts[domain.TagPerformerHighMargin])
	assert.Equal(t, 1, s.TagCounts[domain.TagHealthyStandard])
	assert.Equal(t, 0, s.TagCounts[domain.TagWarningLowMargin])

	require.NotNil(t, s.FirstOrderDate)
	require.NotNil(t, s.LastOrderDate)
	assert.True(t, s.FirstOrderDate.Equal(jan))
	assert.True(t, s.LastOrderDate.Equal(mar))
}

func TestSummarize_NilTable(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.Rows)
	assert.Len(t, s.TagCounts, len(domain.PerformanceTags()))
	assert.Nil(t, s.FirstOrderDate)
	assert.Equal(t, 0.0, s.OverallMarginPercent)
}
