package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/pkg/contracts/domain"
)

func TestEngine_ClassifyGrowth(t *testing.T) {
	ctx := context.Background()
	engine := testEngine(t)

	t.Run("default thresholds example", func(t *testing.T) {
		records := []domain.SalesRecord{
			rec("A", 10, 20),
			rec("B", 0, 5),
			rec("C", 5, 0),
		}

		got, err := engine.ClassifyGrowth(ctx, records, DefaultThresholds())
		require.NoError(t, err)
		require.Len(t, got.Items, 3)

		assert.Equal(t, ClassGrowing, got.Items[0].Classification)
		assert.Equal(t, float64(100), got.Items[0].GrowthPct)
		assert.Equal(t, ClassNew, got.Items[1].Classification)
		assert.False(t, got.Items[1].GrowthPctDefined)
		assert.Equal(t, ClassDeclining, got.Items[2].Classification)
		assert.Equal(t, float64(-100), got.Items[2].GrowthPct)
	})

	t.Run("stable and inactive", func(t *testing.T) {
		records := []domain.SalesRecord{
			rec("flat", 100, 105), // +5%, inside the band
			rec("dead", 0, 0),
		}

		got, err := engine.ClassifyGrowth(ctx, records, DefaultThresholds())
		require.NoError(t, err)
		assert.Equal(t, ClassStable, got.Items[0].Classification)
		assert.Equal(t, ClassInactive, got.Items[1].Classification)
	})

	t.Run("boundary values", func(t *testing.T) {
		records := []domain.SalesRecord{
			rec("up", 100, 110),   // exactly +10%
			rec("down", 100, 90),  // exactly -10%
		}

		got, err := engine.ClassifyGrowth(ctx, records, DefaultThresholds())
		require.NoError(t, err)
		assert.Equal(t, ClassGrowing, got.Items[0].Classification)
		assert.Equal(t, ClassDeclining, got.Items[1].Classification)
	})

	t.Run("partition is total and counts match", func(t *testing.T) {
		records := []domain.SalesRecord{
			rec("a", 10, 20),
			rec("b", 0, 5),
			rec("c", 5, 0),
			rec("d", 0, 0),
			rec("e", 100, 103),
			rec("f", 50, 80),
		}

		got, err := engine.ClassifyGrowth(ctx, records, DefaultThresholds())
		require.NoError(t, err)
		assert.Len(t, got.Items, len(records))

		total := 0
		for _, label := range Classifications() {
			total += got.Counts[label]
		}
		assert.Equal(t, len(records), total)
	})

	t.Run("inverted thresholds rejected", func(t *testing.T) {
		_, err := engine.ClassifyGrowth(ctx, nil, Thresholds{GrowingMin: -5, DecliningMax: 5})
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("equal thresholds rejected", func(t *testing.T) {
		_, err := engine.ClassifyGrowth(ctx, nil, Thresholds{GrowingMin: 0, DecliningMax: 0})
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("idempotent", func(t *testing.T) {
		records := []domain.SalesRecord{
			rec("a", 3, 9),
			rec("b", 0, 4),
		}

		first, err := engine.ClassifyGrowth(ctx, records, DefaultThresholds())
		require.NoError(t, err)
		second, err := engine.ClassifyGrowth(ctx, records, DefaultThresholds())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
