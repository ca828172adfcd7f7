package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSalesRecord_GrowthPct(t *testing.T) {
	tests := []struct {
		name        string
		periodA     int
		periodB     int
		wantPct     float64
		wantDefined bool
	}{
		{name: "positive growth", periodA: 10, periodB: 20, wantPct: 100, wantDefined: true},
		{name: "full decline", periodA: 5, periodB: 0, wantPct: -100, wantDefined: true},
		{name: "zero baseline is undefined", periodA: 0, periodB: 5, wantPct: 0, wantDefined: false},
		{name: "both zero is defined zero", periodA: 0, periodB: 0, wantPct: 0, wantDefined: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := SalesRecord{Keyword: "x", PeriodASales: tt.periodA, PeriodBSales: tt.periodB}

			pct, defined := r.GrowthPct()
			assert.Equal(t, tt.wantDefined, defined)
			assert.Equal(t, tt.wantPct, pct)
			assert.Equal(t, tt.periodB-tt.periodA, r.Growth())
		})
	}
}

func TestSalesRecord_Revenue(t *testing.T) {
	r := SalesRecord{Keyword: "x", PeriodASales: 3, PeriodBSales: 7, Price: 2.5, PriceKnown: true}

	assert.InDelta(t, 7.5, r.RevenueA(), 0.001)
	assert.InDelta(t, 17.5, r.RevenueB(), 0.001)
	assert.InDelta(t, 25.0, r.TotalRevenue(), 0.001)
	assert.InDelta(t, 10.0, r.RevenueGrowth(), 0.001)
	assert.Equal(t, 10, r.TotalSales())
}

func TestSalesRecord_CategoryOrDefault(t *testing.T) {
	assert.Equal(t, "Kitchen", SalesRecord{Category: "Kitchen"}.CategoryOrDefault())
	assert.Equal(t, DefaultCategory, SalesRecord{}.CategoryOrDefault())
	assert.Equal(t, DefaultCategory, SalesRecord{Category: "   "}.CategoryOrDefault())
}

func TestSalesRecord_IsSuccess(t *testing.T) {
	assert.True(t, SalesRecord{Status: "success"}.IsSuccess())
	assert.True(t, SalesRecord{Status: " Success "}.IsSuccess())
	assert.False(t, SalesRecord{Status: "failed"}.IsSuccess())
	assert.False(t, SalesRecord{}.IsSuccess())
}
