package http

import (
	"context"
	"io"

	"salespulse/internal/analytics"
	"salespulse/internal/dataprocessing"
	"salespulse/internal/services"
)

// DatasetServiceInterface defines the dataset operations the handlers need.
// Kept as an interface so handler tests can substitute fakes.
type DatasetServiceInterface interface {
	Create(ctx context.Context, name, format string, r io.Reader) (*services.DatasetMeta, error)
	List(ctx context.Context) []services.DatasetMeta
	Get(ctx context.Context, id string) (*services.DatasetMeta, error)
	Delete(ctx context.Context, id string) error
	Rejections(ctx context.Context, id string) ([]dataprocessing.RejectedRow, error)

	Summary(ctx context.Context, id string, opts services.QueryOptions) (*analytics.DatasetSummary, error)
	TopPerformers(ctx context.Context, id string, metric analytics.Metric, n int, opts services.QueryOptions) ([]analytics.RankedRecord, error)
	Categories(ctx context.Context, id string, opts services.QueryOptions) ([]analytics.CategoryAggregate, error)
	Classifications(ctx context.Context, id string, opts services.QueryOptions) (*analytics.ClassificationResult, error)
	ProductDeepDive(ctx context.Context, id, key string, opts services.QueryOptions) (*analytics.DeepDiveSummary, error)
}
