package domain

import (
	"time"
)

// Input and derived column names of the sales table.
const (
	ColumnOrderDate      = "Order Date"
	ColumnCategory       = "Category"
	ColumnSales          = "Sales"
	ColumnProfit         = "Profit"
	ColumnDiscount       = "Discount"
	ColumnMarginPercent  = "Margin_Percent"
	ColumnPerformanceTag = "Performance_Tag"
	ColumnAuditAlert     = "Audit_Alert"
)

// RequiredColumns lists the columns every sales source must provide.
var RequiredColumns = []string{
	ColumnOrderDate,
	ColumnCategory,
	ColumnSales,
	ColumnProfit,
	ColumnDiscount,
}

// DerivedColumns lists the columns added by the transformation, in output order.
var DerivedColumns = []string{
	ColumnMarginPercent,
	ColumnPerformanceTag,
	ColumnAuditAlert,
}

// PreviewColumns is the fixed column subset shown in the operator preview.
var PreviewColumns = []string{
	ColumnCategory,
	ColumnSales,
	ColumnProfit,
	ColumnMarginPercent,
	ColumnPerformanceTag,
}

// PerformanceTag is the business-health label assigned to a sales record.
type PerformanceTag string

const (
	TagCriticalNegativeMargin PerformanceTag = "CRITICAL: NEGATIVE MARGIN"
	TagWarningLowMargin       PerformanceTag = "WARNING: LOW MARGIN"
	TagHealthyStandard        PerformanceTag = "HEALTHY: STANDARD"
	TagPerformerHighMargin    PerformanceTag = "PERFORMER: HIGH MARGIN"
)

// PerformanceTags returns every tag in rule priority order.
func PerformanceTags() []PerformanceTag {
	return []PerformanceTag{
		TagCriticalNegativeMargin,
		TagWarningLowMargin,
		TagHealthyStandard,
		TagPerformerHighMargin,
	}
}

// IsValid reports whether t is one of the fixed performance tags.
func (t PerformanceTag) IsValid() bool {
	switch t {
	case TagCriticalNegativeMargin, TagWarningLowMargin, TagHealthyStandard, TagPerformerHighMargin:
		return true
	}
	return false
}

// AuditAlert is the anomaly flag raised for loss-making, heavily discounted sales.
type AuditAlert string

const (
	AlertBadDiscountStrategy AuditAlert = "FLAG: BAD DISCOUNT STRATEGY"
	AlertPassed              AuditAlert = "PASSED"
)

// IsValid reports whether a is one of the fixed audit alerts.
func (a AuditAlert) IsValid() bool {
	return a == AlertBadDiscountStrategy || a == AlertPassed
}

// IsFlagged reports whether the alert marks a bad discount strategy.
func (a AuditAlert) IsFlagged() bool {
	return a == AlertBadDiscountStrategy
}

// SalesRecord represents one row of the sales table.
// Cells keeps the raw input row so columns the pipeline does not
// interpret are written back unchanged.
type SalesRecord struct {
	OrderDate *time.Time `json:"order_date,omitempty"` // nil when the input date could not be parsed
	Category  string     `json:"category"`
	Sales     float64    `json:"sales"`
	Profit    float64    `json:"profit"`
	Discount  float64    `json:"discount"`

	MarginPercent  float64        `json:"margin_percent"`
	PerformanceTag PerformanceTag `json:"performance_tag"`
	AuditAlert     AuditAlert     `json:"audit_alert"`

	Cells []string `json:"-"`
}

// HasOrderDate reports whether the order date was parsed successfully.
func (r *SalesRecord) HasOrderDate() bool {
	return r.OrderDate != nil
}

// SalesTable is an in-memory columnar sales dataset.
// Header preserves the source column order; Records are in source row order.
type SalesTable struct {
	Source  string        `json:"source"`
	Header  []string      `json:"header"`
	Records []SalesRecord `json:"records"`
}

// NewSalesTable creates an empty table for the given source.
func NewSalesTable(source string, header []string) *SalesTable {
	return &SalesTable{
		Source:  source,
		Header:  header,
		Records: []SalesRecord{},
	}
}

// Len returns the number of records in the table.
func (t *SalesTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// IsEmpty reports whether the table holds no records.
func (t *SalesTable) IsEmpty() bool {
	return t.Len() == 0
}

// ColumnIndex returns the position of name in the header, or -1.
func (t *SalesTable) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// OutputHeader returns the header of the enriched table: the source columns
// followed by any derived column not already present in the source.
func (t *SalesTable) OutputHeader() []string {
	header := make([]string, len(t.Header), len(t.Header)+len(DerivedColumns))
	copy(header, t.Header)
	for _, col := range DerivedColumns {
		if t.ColumnIndex(col) < 0 {
			header = append(header, col)
		}
	}
	return header
}
