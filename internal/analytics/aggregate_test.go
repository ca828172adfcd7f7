package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/pkg/contracts/domain"
)

func catRec(keyword, category string, periodA, periodB int) domain.SalesRecord {
	r := rec(keyword, periodA, periodB)
	r.Category = category
	return r
}

func TestEngine_AggregateByCategory(t *testing.T) {
	ctx := context.Background()
	engine := testEngine(t)

	t.Run("empty input yields empty result", func(t *testing.T) {
		got := engine.AggregateByCategory(ctx, nil)
		assert.Empty(t, got)
	})

	t.Run("single category rollup", func(t *testing.T) {
		records := []domain.SalesRecord{
			catRec("pan", "Kitchen", 10, 15),
			catRec("pot", "Kitchen", 5, 0),
		}

		got := engine.AggregateByCategory(ctx, records)
		require.Len(t, got, 1)

		kitchen := got[0]
		assert.Equal(t, "Kitchen", kitchen.Category)
		assert.Equal(t, 2, kitchen.Count)
		assert.Equal(t, 15, kitchen.SumPeriodASales)
		assert.Equal(t, 15, kitchen.SumPeriodBSales)
		assert.Equal(t, 0, kitchen.SumGrowth)
		assert.True(t, kitchen.GrowthPctDefined)
		assert.Equal(t, float64(0), kitchen.GrowthPct)
	})

	t.Run("first-seen order preserved", func(t *testing.T) {
		records := []domain.SalesRecord{
			catRec("a", "Garden", 1, 1),
			catRec("b", "Kitchen", 1, 1),
			catRec("c", "Garden", 1, 1),
			catRec("d", "Auto", 1, 1),
		}

		got := engine.AggregateByCategory(ctx, records)
		require.Len(t, got, 3)
		assert.Equal(t, "Garden", got[0].Category)
		assert.Equal(t, "Kitchen", got[1].Category)
		assert.Equal(t, "Auto", got[2].Category)
	})

	t.Run("blank category defaults to Uncategorized", func(t *testing.T) {
		records := []domain.SalesRecord{
			catRec("a", "", 4, 8),
			catRec("b", "  ", 2, 2),
		}

		got := engine.AggregateByCategory(ctx, records)
		require.Len(t, got, 1)
		assert.Equal(t, domain.DefaultCategory, got[0].Category)
		assert.Equal(t, 2, got[0].Count)
	})

	t.Run("undefined aggregate growth pct on zero baseline", func(t *testing.T) {
		records := []domain.SalesRecord{
			catRec("a", "Toys", 0, 3),
			catRec("b", "Toys", 0, 2),
		}

		got := engine.AggregateByCategory(ctx, records)
		require.Len(t, got, 1)
		assert.False(t, got[0].GrowthPctDefined)
	})

	t.Run("every record counted exactly once", func(t *testing.T) {
		records := []domain.SalesRecord{
			catRec("a", "X", 1, 1),
			catRec("b", "Y", 1, 1),
			catRec("c", "", 1, 1),
			catRec("d", "X", 1, 1),
			catRec("e", "Z", 1, 1),
		}

		got := engine.AggregateByCategory(ctx, records)
		total := 0
		for _, agg := range got {
			total += agg.Count
		}
		assert.Equal(t, len(records), total)
	})
}
