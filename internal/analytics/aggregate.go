package analytics

import (
	"context"
	"log/slog"

	"salespulse/pkg/contracts/domain"
)

// CategoryAggregate holds the rollup for a single category.
type CategoryAggregate struct {
	Category         string  `json:"category"`
	Count            int     `json:"count"`
	SumPeriodASales  int     `json:"sum_period_a_sales"`
	SumPeriodBSales  int     `json:"sum_period_b_sales"`
	SumGrowth        int     `json:"sum_growth"`
	SumRevenue       float64 `json:"sum_revenue"`
	GrowthPct        float64 `json:"growth_pct"`
	GrowthPctDefined bool    `json:"growth_pct_defined"`
}

// AggregateByCategory groups records by category, defaulting blank
// categories to "Uncategorized". Result order is the first-seen category
// order in the input, so identical inputs always produce identical output.
// Empty input yields an empty slice, not an error.
func (e *Engine) AggregateByCategory(ctx context.Context, records []domain.SalesRecord) []CategoryAggregate {
	index := make(map[string]int, len(records))
	aggregates := make([]CategoryAggregate, 0)

	for _, rec := range records {
		category := rec.CategoryOrDefault()
		i, seen := index[category]
		if !seen {
			i = len(aggregates)
			index[category] = i
			aggregates = append(aggregates, CategoryAggregate{Category: category})
		}

		agg := &aggregates[i]
		agg.Count++
		agg.SumPeriodASales += rec.PeriodASales
		agg.SumPeriodBSales += rec.PeriodBSales
		agg.SumGrowth += rec.Growth()
		agg.SumRevenue += rec.TotalRevenue()
	}

	for i := range aggregates {
		agg := &aggregates[i]
		agg.GrowthPct, agg.GrowthPctDefined = domain.AggregateGrowthPct(agg.SumPeriodASales, agg.SumPeriodBSales)
	}

	e.logger.DebugContext(ctx, "aggregated records by category",
		slog.Int("record_count", len(records)),
		slog.Int("category_count", len(aggregates)))

	return aggregates
}
