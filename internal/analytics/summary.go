package analytics

import (
	"context"
	"log/slog"

	"salespulse/pkg/contracts/domain"
)

// DatasetSummary holds the dashboard's key-metrics strip: whole-dataset
// totals across both periods.
type DatasetSummary struct {
	Products         int     `json:"products"`
	PeriodASales     int     `json:"period_a_sales"`
	PeriodBSales     int     `json:"period_b_sales"`
	TotalSales       int     `json:"total_sales"`
	TotalRevenue     float64 `json:"total_revenue"`
	Growth           int     `json:"growth"`
	GrowthPct        float64 `json:"growth_pct"`
	GrowthPctDefined bool    `json:"growth_pct_defined"`
}

// Summarize computes whole-dataset totals. Empty input yields a zero
// summary with a defined growth percentage of zero.
func (e *Engine) Summarize(ctx context.Context, records []domain.SalesRecord) DatasetSummary {
	summary := DatasetSummary{Products: len(records)}

	for _, rec := range records {
		summary.PeriodASales += rec.PeriodASales
		summary.PeriodBSales += rec.PeriodBSales
		summary.TotalRevenue += rec.TotalRevenue()
	}

	summary.TotalSales = summary.PeriodASales + summary.PeriodBSales
	summary.Growth = summary.PeriodBSales - summary.PeriodASales
	summary.GrowthPct, summary.GrowthPctDefined = domain.AggregateGrowthPct(summary.PeriodASales, summary.PeriodBSales)

	e.logger.DebugContext(ctx, "summarized dataset",
		slog.Int("products", summary.Products),
		slog.Int("total_sales", summary.TotalSales))

	return summary
}
