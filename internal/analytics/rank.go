package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"salespulse/pkg/contracts/domain"
)

// Metric identifies the value a ranking is ordered by.
type Metric string

const (
	MetricPeriodASales Metric = "period_a_sales"
	MetricPeriodBSales Metric = "period_b_sales"
	MetricGrowth       Metric = "growth"
	MetricGrowthPct    Metric = "growth_pct"
	MetricTotalSales   Metric = "total_sales"
	MetricTotalRevenue Metric = "total_revenue"
)

// Metrics lists every recognized ranking metric.
func Metrics() []Metric {
	return []Metric{
		MetricPeriodASales,
		MetricPeriodBSales,
		MetricGrowth,
		MetricGrowthPct,
		MetricTotalSales,
		MetricTotalRevenue,
	}
}

// Valid reports whether m is a recognized metric name.
func (m Metric) Valid() bool {
	switch m {
	case MetricPeriodASales, MetricPeriodBSales, MetricGrowth,
		MetricGrowthPct, MetricTotalSales, MetricTotalRevenue:
		return true
	}
	return false
}

// RankedRecord pairs a record with the metric value it was ranked by.
// ValueDefined is false only for growth_pct on zero-baseline records.
type RankedRecord struct {
	Record       domain.SalesRecord `json:"record"`
	Value        float64            `json:"value"`
	ValueDefined bool               `json:"value_defined"`
}

// RankTopPerformers returns the top n records ordered descending by metric.
// Ties are broken by keyword ascending so the ordering is stable across
// runs. Records with an undefined growth percentage sort last when ranking
// by growth_pct; they are never an error.
func (e *Engine) RankTopPerformers(ctx context.Context, records []domain.SalesRecord, metric Metric, n int) ([]RankedRecord, error) {
	if !metric.Valid() {
		return nil, fmt.Errorf("rank top performers: %w: %q", ErrInvalidMetric, metric)
	}
	if n <= 0 {
		return nil, fmt.Errorf("rank top performers: %w: n must be positive, got %d", ErrInvalidArgument, n)
	}

	ranked := make([]RankedRecord, 0, len(records))
	for _, rec := range records {
		value, defined := metricValue(rec, metric)
		ranked = append(ranked, RankedRecord{Record: rec, Value: value, ValueDefined: defined})
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.ValueDefined != b.ValueDefined {
			return a.ValueDefined // undefined values sort last
		}
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		return a.Record.Keyword < b.Record.Keyword
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}

	e.logger.DebugContext(ctx, "ranked top performers",
		slog.String("metric", string(metric)),
		slog.Int("requested", n),
		slog.Int("returned", len(ranked)))

	return ranked, nil
}

// metricValue extracts the ranking value for a record. The defined flag is
// false only for the growth_pct metric on zero-baseline records.
func metricValue(rec domain.SalesRecord, metric Metric) (float64, bool) {
	switch metric {
	case MetricPeriodASales:
		return float64(rec.PeriodASales), true
	case MetricPeriodBSales:
		return float64(rec.PeriodBSales), true
	case MetricGrowth:
		return float64(rec.Growth()), true
	case MetricGrowthPct:
		return rec.GrowthPct()
	case MetricTotalSales:
		return float64(rec.TotalSales()), true
	case MetricTotalRevenue:
		return rec.TotalRevenue(), true
	}
	return 0, false
}
