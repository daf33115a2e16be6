package dataprocessing

import (
	"salesaudit/pkg/contracts/domain"
)

// Business thresholds. They are fixed constants, not configuration.
const (
	// LowMarginPercent is the margin below which a profitable sale is a low-margin warning
	LowMarginPercent = 10.0
	// HighMarginPercent is the margin at or above which a sale is a high performer
	HighMarginPercent = 25.0
	// BadDiscountPercent is the discount above which a loss-making sale is flagged
	BadDiscountPercent = 30.0
)

// DefaultPerformanceTag is assigned when no performance rule matches
const DefaultPerformanceTag = domain.TagHealthyStandard

// performanceRule is one row of the classification decision table
type performanceRule struct {
	name  string
	tag   domain.PerformanceTag
	match func(profit, margin float64) bool
}

// performanceRules is evaluated top to bottom and the first match wins.
// The order is part of the contract: a record with zero profit must never
// reach the low-margin rule, and reordering changes results at the boundaries.
var performanceRules = []performanceRule{
	{
		name:  "negative_profit",
		tag:   domain.TagCriticalNegativeMargin,
		match: func(profit, _ float64) bool { return profit < 0 },
	},
	{
		name:  "low_margin",
		tag:   domain.TagWarningLowMargin,
		match: func(profit, margin float64) bool { return margin < LowMarginPercent && profit > 0 },
	},
	{
		name:  "standard_margin",
		tag:   domain.TagHealthyStandard,
		match: func(_, margin float64) bool { return margin >= LowMarginPercent && margin < HighMarginPercent },
	},
	{
		name:  "high_margin",
		tag:   domain.TagPerformerHighMargin,
		match: func(_, margin float64) bool { return margin >= HighMarginPercent },
	},
}

// MarginPercent returns profit as a percentage of sales.
// Non-positive sales yield 0. A ratio too large for float64 overflows to
// ±Inf; the Enricher rejects such records.
func MarginPercent(sales, profit float64) float64 {
	if sales > 0 {
		return (profit / sales) * 100
	}
	return 0.0
}

// ClassifyPerformance returns the tag of the first rule matching profit and
// margin, or DefaultPerformanceTag when none does.
func ClassifyPerformance(profit, margin float64) domain.PerformanceTag {
	tag, _ := classify(profit, margin)
	return tag
}

// classify also returns the name of the matching rule, "default" for the fallback
func classify(profit, margin float64) (domain.PerformanceTag, string) {
	for _, rule := range performanceRules {
		if rule.match(profit, margin) {
			return rule.tag, rule.name
		}
	}
	return DefaultPerformanceTag, "default"
}

// PerformanceRules returns the rule names in evaluation order
func PerformanceRules() []string {
	names := make([]string, len(performanceRules))
	for i, rule := range performanceRules {
		names[i] = rule.name
	}
	return names
}

// AuditDiscount flags a record whose discount exceeds BadDiscountPercent
// while it loses money. Both comparisons are strict.
func AuditDiscount(discount, profit float64) domain.AuditAlert {
	if discount > BadDiscountPercent && profit < 0 {
		return domain.AlertBadDiscountStrategy
	}
	return domain.AlertPassed
}

// EnrichRecord derives margin, performance tag and audit alert in place.
// The margin is computed before classification, which reads it.
func EnrichRecord(r *domain.SalesRecord) {
	r.MarginPercent = MarginPercent(r.Sales, r.Profit)
	r.PerformanceTag = ClassifyPerformance(r.Profit, r.MarginPercent)
	r.AuditAlert = AuditDiscount(r.Discount, r.Profit)
}
