package dataprocessing

import (
	"time"

	"salesaudit/pkg/contracts/domain"
)

// RunSummary aggregates the outcome of a transformation
type RunSummary struct {
	Source               string                        `json:"source"`
	Rows                 int                           `json:"rows"`
	TagCounts            map[domain.PerformanceTag]int `json:"tag_counts"`
	Flagged              int                           `json:"flagged"`
	UnknownDates         int                           `json:"unknown_dates"`
	TotalSales           float64                       `json:"total_sales"`
	TotalProfit          float64                       `json:"total_profit"`
	OverallMarginPercent float64                       `json:"overall_margin_percent"`
	FirstOrderDate       *time.Time                    `json:"first_order_date,omitempty"`
	LastOrderDate        *time.Time                    `json:"last_order_date,omitempty"`
}

// Summarize computes a summary of an enriched table
func Summarize(table *domain.SalesTable) *RunSummary {
	summary := &RunSummary{
		TagCounts: make(map[domain.PerformanceTag]int, len(domain.PerformanceTags())),
	}
	for _, tag := range domain.PerformanceTags() {
		summary.TagCounts[tag] = 0
	}
	if table == nil {
		return summary
	}

	summary.Source = table.Source
	summary.Rows = table.Len()

	for i := range table.Records {
		r := &table.Records[i]

		summary.TagCounts[r.PerformanceTag]++
		if r.AuditAlert.IsFlagged() {
			summary.Flagged++
		}
		summary.TotalSales += r.Sales
		summary.TotalProfit += r.Profit

		if r.OrderDate == nil {
			summary.UnknownDates++
			continue
		}
		if summary.FirstOrderDate == nil || r.OrderDate.Before(*summary.FirstOrderDate) {
			d := *r.OrderDate
			summary.FirstOrderDate = &d
		}
		if summary.LastOrderDate == nil || r.OrderDate.After(*summary.LastOrderDate) {
			d := *r.OrderDate
			summary.LastOrderDate = &d
		}
	}

	summary.OverallMarginPercent = MarginPercent(summary.TotalSales, summary.TotalProfit)
	return summary
}
