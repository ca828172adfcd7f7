package analytics

import (
	"context"
	"fmt"
	"log/slog"

	"salespulse/pkg/contracts/domain"
)

// DeepDiveSummary is the aggregated view of a single product. When the key
// matches multiple records (duplicates exist in real exports) their sales
// are summed and MatchedCount reports how many rows contributed.
type DeepDiveSummary struct {
	Key              string         `json:"key"`
	MatchedCount     int            `json:"matched_count"`
	Keyword          string         `json:"keyword"`
	ProductURL       string         `json:"product_url"`
	TotalPeriodA     int            `json:"total_period_a"`
	TotalPeriodB     int            `json:"total_period_b"`
	Growth           int            `json:"growth"`
	GrowthPct        float64        `json:"growth_pct"`
	GrowthPctDefined bool           `json:"growth_pct_defined"`
	TotalRevenue     float64        `json:"total_revenue"`
	Classification   Classification `json:"classification"`
}

// ProductDeepDive locates every record whose keyword or product URL equals
// key and returns their combined summary, classified with the engine's
// default thresholds. Returns ErrNotFound when nothing matches.
func (e *Engine) ProductDeepDive(ctx context.Context, records []domain.SalesRecord, key string) (*DeepDiveSummary, error) {
	if key == "" {
		return nil, fmt.Errorf("product deep dive: %w: key must not be empty", ErrInvalidArgument)
	}

	summary := &DeepDiveSummary{Key: key}
	for _, rec := range records {
		if rec.Keyword != key && rec.ProductURL != key {
			continue
		}
		if summary.MatchedCount == 0 {
			summary.Keyword = rec.Keyword
			summary.ProductURL = rec.ProductURL
		}
		summary.MatchedCount++
		summary.TotalPeriodA += rec.PeriodASales
		summary.TotalPeriodB += rec.PeriodBSales
		summary.TotalRevenue += rec.TotalRevenue()
	}

	if summary.MatchedCount == 0 {
		return nil, fmt.Errorf("product deep dive for %q: %w", key, ErrNotFound)
	}

	summary.Growth = summary.TotalPeriodB - summary.TotalPeriodA
	summary.GrowthPct, summary.GrowthPctDefined = domain.AggregateGrowthPct(summary.TotalPeriodA, summary.TotalPeriodB)

	combined := domain.SalesRecord{
		Keyword:      summary.Keyword,
		PeriodASales: summary.TotalPeriodA,
		PeriodBSales: summary.TotalPeriodB,
	}
	summary.Classification = classify(combined, summary.GrowthPct, summary.GrowthPctDefined, e.cfg.Thresholds)

	e.logger.DebugContext(ctx, "product deep dive",
		slog.String("key", key),
		slog.Int("matched_count", summary.MatchedCount),
		slog.String("classification", string(summary.Classification)))

	return summary, nil
}
