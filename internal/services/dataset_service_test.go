package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/analytics"
	"salespulse/internal/config"
)

const sampleCSV = `Keyword,Product URL,Dec 2025 Sales,Jan 2026 Sales,Date Checked,Status,Category
garlic press,https://www.ebay.com/itm/111,10,20,2026-02-01,success,Kitchen
spice rack,https://www.ebay.com/itm/222,5,0,2026-02-01,success,Kitchen
broken check,https://www.ebay.com/itm/333,7,7,2026-02-01,failed,Garage
`

func testService(t *testing.T) *DatasetService {
	t.Helper()
	return NewDatasetService(config.Default(), nil, nil)
}

func createSample(t *testing.T, svc *DatasetService) string {
	t.Helper()
	meta, err := svc.Create(context.Background(), "january-check", "csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)
	return meta.ID
}

func TestDatasetService_Create(t *testing.T) {
	svc := testService(t)

	meta, err := svc.Create(context.Background(), "january-check", "csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.NotEmpty(t, meta.ID)
	assert.Equal(t, "january-check", meta.Name)
	assert.Equal(t, 3, meta.Records)
	assert.Equal(t, 0, meta.Rejected)
	assert.Equal(t, "Dec 2025", meta.PeriodALabel)
	assert.Equal(t, "Jan 2026", meta.PeriodBLabel)
	assert.True(t, meta.HasCategory)
}

func TestDatasetService_Create_EmptyUpload(t *testing.T) {
	svc := testService(t)

	_, err := svc.Create(context.Background(), "empty", "csv", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestDatasetService_Create_UnknownFormat(t *testing.T) {
	svc := testService(t)

	_, err := svc.Create(context.Background(), "odd", "parquet", strings.NewReader(sampleCSV))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestDatasetService_ListAndGet(t *testing.T) {
	svc := testService(t)
	id := createSample(t, svc)

	list := svc.List(context.Background())
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)

	meta, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, meta.ID)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrDatasetNotFound)
}

func TestDatasetService_Delete(t *testing.T) {
	svc := testService(t)
	id := createSample(t, svc)

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.ErrorIs(t, svc.Delete(context.Background(), id), ErrDatasetNotFound)
	assert.Empty(t, svc.List(context.Background()))
}

func TestDatasetService_Summary(t *testing.T) {
	svc := testService(t)
	id := createSample(t, svc)

	summary, err := svc.Summary(context.Background(), id, QueryOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Products)
	assert.Equal(t, 22, summary.PeriodASales)
	assert.Equal(t, 27, summary.PeriodBSales)
}

func TestDatasetService_Summary_StatusFilter(t *testing.T) {
	svc := testService(t)
	id := createSample(t, svc)

	summary, err := svc.Summary(context.Background(), id, QueryOptions{Status: "success"})
	require.NoError(t, err)

	// The failed check row is excluded.
	assert.Equal(t, 2, summary.Products)
	assert.Equal(t, 15, summary.PeriodASales)
	assert.Equal(t, 20, summary.PeriodBSales)
}

func TestDatasetService_TopPerformers(t *testing.T) {
	svc := testService(t)
	id := createSample(t, svc)

	ranked, err := svc.TopPerformers(context.Background(), id, analytics.MetricPeriodBSales, 2, QueryOptions{})
	require.NoError(t, err)

	require.Len(t, ranked, 2)
	assert.Equal(t, "garlic press", ranked[0].Record.Keyword)

	_, err = svc.TopPerformers(context.Background(), id, analytics.Metric("velocity"), 2, QueryOptions{})
	assert.ErrorIs(t, err, analytics.ErrInvalidMetric)
}

func TestDatasetService_Categories(t *testing.T) {
	svc := testService(t)
	id := createSample(t, svc)

	aggregates, err := svc.Categories(context.Background(), id, QueryOptions{})
	require.NoError(t, err)

	require.Len(t, aggregates, 2)
	assert.Equal(t, "Kitchen", aggregates[0].Category)
	assert.Equal(t, 2, aggregates[0].Count)
	assert.Equal(t, "Garage", aggregates[1].Category)
}

func TestDatasetService_Classifications(t *testing.T) {
	svc := testService(t)
	id := createSample(t, svc)

	result, err := svc.Classifications(context.Background(), id, QueryOptions{})
	require.NoError(t, err)

	require.Len(t, result.Items, 3)
	total := 0
	for _, count := range result.Counts {
		total += count
	}
	assert.Equal(t, 3, total)
}

func TestDatasetService_Classifications_CustomThresholds(t *testing.T) {
	svc := testService(t)
	id := createSample(t, svc)

	// A wide band turns the doubled garlic press Stable.
	result, err := svc.Classifications(context.Background(), id, QueryOptions{
		Thresholds: &analytics.Thresholds{GrowingMin: 150, DecliningMax: -150},
	})
	require.NoError(t, err)
	assert.InDelta(t, 150, result.Thresholds.GrowingMin, 0.001)

	// Inverted overrides are rejected.
	_, err = svc.Classifications(context.Background(), id, QueryOptions{
		Thresholds: &analytics.Thresholds{GrowingMin: -5, DecliningMax: 5},
	})
	assert.ErrorIs(t, err, analytics.ErrInvalidArgument)
}

func TestDatasetService_ProductDeepDive(t *testing.T) {
	svc := testService(t)
	id := createSample(t, svc)

	summary, err := svc.ProductDeepDive(context.Background(), id, "garlic press", QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.MatchedCount)
	assert.Equal(t, 10, summary.TotalPeriodA)
	assert.Equal(t, 20, summary.TotalPeriodB)

	_, err = svc.ProductDeepDive(context.Background(), id, "unknown widget", QueryOptions{})
	assert.ErrorIs(t, err, analytics.ErrNotFound)
}

func TestDatasetService_Rejections(t *testing.T) {
	svc := testService(t)

	input := sampleCSV + "off-market,https://shop.example/x,1,2,2026-02-01,success,Misc\n"
	meta, err := svc.Create(context.Background(), "with-reject", "csv", strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, meta.Rejected)

	rejected, err := svc.Rejections(context.Background(), meta.ID)
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Contains(t, rejected[0].Reason, "ebay.com")
}
