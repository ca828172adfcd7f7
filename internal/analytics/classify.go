package analytics

import (
	"context"
	"fmt"
	"log/slog"

	"salespulse/pkg/contracts/domain"
)

// Classification is the growth label assigned to a record.
type Classification string

const (
	ClassGrowing   Classification = "Growing"
	ClassDeclining Classification = "Declining"
	ClassStable    Classification = "Stable"
	ClassNew       Classification = "New"
	ClassInactive  Classification = "Inactive"
)

// Classifications lists every label in display order.
func Classifications() []Classification {
	return []Classification{ClassGrowing, ClassDeclining, ClassStable, ClassNew, ClassInactive}
}

// ClassifiedRecord pairs a record with its growth label and the percentage
// the label was derived from.
type ClassifiedRecord struct {
	Record           domain.SalesRecord `json:"record"`
	Classification   Classification     `json:"classification"`
	GrowthPct        float64            `json:"growth_pct"`
	GrowthPctDefined bool               `json:"growth_pct_defined"`
}

// ClassificationResult holds the full partition of the input. Items
// preserves input order; Counts reports the size of each group.
type ClassificationResult struct {
	Items      []ClassifiedRecord     `json:"items"`
	Counts     map[Classification]int `json:"counts"`
	Thresholds Thresholds             `json:"thresholds"`
}

// ClassifyGrowth assigns exactly one label to every record: New when the
// growth percentage is undefined (zero baseline, positive period B),
// Inactive when both periods are zero, Growing at or above GrowingMin,
// Declining at or below DecliningMax, Stable strictly between. The five
// groups are disjoint and together cover the whole input.
func (e *Engine) ClassifyGrowth(ctx context.Context, records []domain.SalesRecord, thresholds Thresholds) (*ClassificationResult, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("classify growth: %w: growing_min %.2f must exceed declining_max %.2f",
			ErrInvalidArgument, thresholds.GrowingMin, thresholds.DecliningMax)
	}

	result := &ClassificationResult{
		Items:      make([]ClassifiedRecord, 0, len(records)),
		Counts:     make(map[Classification]int, 5),
		Thresholds: thresholds,
	}

	for _, rec := range records {
		pct, defined := rec.GrowthPct()
		label := classify(rec, pct, defined, thresholds)
		result.Items = append(result.Items, ClassifiedRecord{
			Record:           rec,
			Classification:   label,
			GrowthPct:        pct,
			GrowthPctDefined: defined,
		})
		result.Counts[label]++
	}

	e.logger.DebugContext(ctx, "classified record growth",
		slog.Int("record_count", len(records)),
		slog.Int("growing", result.Counts[ClassGrowing]),
		slog.Int("declining", result.Counts[ClassDeclining]),
		slog.Int("stable", result.Counts[ClassStable]),
		slog.Int("new", result.Counts[ClassNew]),
		slog.Int("inactive", result.Counts[ClassInactive]))

	return result, nil
}

func classify(rec domain.SalesRecord, pct float64, defined bool, t Thresholds) Classification {
	switch {
	case !defined:
		return ClassNew
	case rec.PeriodASales == 0 && rec.PeriodBSales == 0:
		return ClassInactive
	case pct >= t.GrowingMin:
		return ClassGrowing
	case pct <= t.DecliningMax:
		return ClassDeclining
	default:
		return ClassStable
	}
}
