package domain

import "strings"

// DefaultCategory is the bucket used for records without a category.
const DefaultCategory = "Uncategorized"

// StatusSuccess marks records whose source scrape completed normally.
const StatusSuccess = "success"

// SalesRecord represents one product's sales data across the two
// comparison periods. Records are constructed once per upload and are
// never mutated afterwards; derived metrics are computed on demand.
type SalesRecord struct {
	Keyword      string `json:"keyword" csv:"Keyword" validate:"required"`
	ProductURL   string `json:"product_url" csv:"Product URL"`
	ItemID       string `json:"item_id,omitempty" csv:"Item ID"`
	Price        float64 `json:"price" csv:"Price"`
	PriceKnown   bool    `json:"price_known" csv:"-"`
	PeriodASales int     `json:"period_a_sales" csv:"Period A Sales" validate:"min=0"`
	PeriodBSales int     `json:"period_b_sales" csv:"Period B Sales" validate:"min=0"`
	DateChecked  string  `json:"date_checked,omitempty" csv:"Date Checked"`
	Status       string  `json:"status,omitempty" csv:"Status"`
	Category     string  `json:"category,omitempty" csv:"Category"`
}

// Growth returns the absolute sales difference between the two periods.
func (r SalesRecord) Growth() int {
	return r.PeriodBSales - r.PeriodASales
}

// GrowthPct returns the percentage change relative to period A and a flag
// reporting whether the value is defined. The percentage is undefined when
// period A is zero and period B is positive (a new product has no baseline);
// when both periods are zero the change is defined and zero.
func (r SalesRecord) GrowthPct() (float64, bool) {
	return growthPct(r.PeriodASales, r.PeriodBSales)
}

// TotalSales returns the combined sales across both periods.
func (r SalesRecord) TotalSales() int {
	return r.PeriodASales + r.PeriodBSales
}

// RevenueA returns period A revenue. Zero when the price is unknown.
func (r SalesRecord) RevenueA() float64 {
	return float64(r.PeriodASales) * r.Price
}

// RevenueB returns period B revenue. Zero when the price is unknown.
func (r SalesRecord) RevenueB() float64 {
	return float64(r.PeriodBSales) * r.Price
}

// TotalRevenue returns combined revenue across both periods.
func (r SalesRecord) TotalRevenue() float64 {
	return float64(r.TotalSales()) * r.Price
}

// RevenueGrowth returns the revenue difference between the two periods.
func (r SalesRecord) RevenueGrowth() float64 {
	return r.RevenueB() - r.RevenueA()
}

// CategoryOrDefault returns the record's category, falling back to
// DefaultCategory when the column was absent or blank.
func (r SalesRecord) CategoryOrDefault() string {
	if c := strings.TrimSpace(r.Category); c != "" {
		return c
	}
	return DefaultCategory
}

// IsSuccess reports whether the source scrape for this record succeeded.
// The comparison is case-insensitive; the engine itself never filters by
// status, callers decide.
func (r SalesRecord) IsSuccess() bool {
	return strings.EqualFold(strings.TrimSpace(r.Status), StatusSuccess)
}

// growthPct implements the shared zero-denominator policy used at both the
// record and the aggregate level.
func growthPct(periodA, periodB int) (float64, bool) {
	if periodA > 0 {
		return float64(periodB-periodA) / float64(periodA) * 100, true
	}
	if periodB > 0 {
		return 0, false
	}
	return 0, true
}

// AggregateGrowthPct applies the record-level percentage policy to summed
// period totals, used for category rollups and dataset summaries.
func AggregateGrowthPct(sumA, sumB int) (float64, bool) {
	return growthPct(sumA, sumB)
}
