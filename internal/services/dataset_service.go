package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"salespulse/internal/analytics"
	"salespulse/internal/config"
	"salespulse/internal/dataprocessing"
	"salespulse/internal/infrastructure"
	"salespulse/pkg/contracts/domain"
)

// DatasetMeta describes one loaded dataset without its records.
type DatasetMeta struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	Records      int       `json:"records"`
	Rejected     int       `json:"rejected"`
	PeriodALabel string    `json:"period_a_label"`
	PeriodBLabel string    `json:"period_b_label"`
	HasPrice     bool      `json:"has_price"`
	HasCategory  bool      `json:"has_category"`
}

// dataset is an immutable snapshot of one parsed upload. Records are never
// modified after creation, so reads need no copying.
type dataset struct {
	meta     DatasetMeta
	records  []domain.SalesRecord
	rejected []dataprocessing.RejectedRow
}

// QueryOptions narrow analytics queries.
type QueryOptions struct {
	// Status keeps only records whose check status matches, e.g. "success".
	// Empty keeps everything.
	Status string
	// Thresholds override the configured classification bands when set.
	Thresholds *analytics.Thresholds
}

// DatasetService owns the in-memory dataset store and fronts the analytics
// engine. All methods are safe for concurrent use.
type DatasetService struct {
	logger      *slog.Logger
	parser      *dataprocessing.Parser
	engine      *analytics.Engine
	metrics     *infrastructure.BusinessMetrics
	defaultTopN int

	mu       sync.RWMutex
	datasets map[string]*dataset
}

// NewDatasetService creates a dataset service from application config.
func NewDatasetService(cfg *config.Config, logger *slog.Logger, metrics *infrastructure.BusinessMetrics) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "dataset_service"))

	parser := dataprocessing.NewParser(logger, dataprocessing.ParserConfig{
		MarketplaceDomain: cfg.Ingest.MarketplaceDomain,
		MaxRows:           cfg.Ingest.MaxRows,
	})

	engine := analytics.NewEngine(logger, analytics.Config{
		DefaultTopN: cfg.Analytics.DefaultTopN,
		Thresholds: analytics.Thresholds{
			GrowingMin:   cfg.Analytics.GrowingMin,
			DecliningMax: cfg.Analytics.DecliningMax,
		},
	})

	return &DatasetService{
		logger:      logger,
		parser:      parser,
		engine:      engine,
		metrics:     metrics,
		defaultTopN: cfg.Analytics.DefaultTopN,
		datasets:    make(map[string]*dataset),
	}
}

// Create parses an upload and stores it as a new dataset. Format is "csv"
// or "xlsx". The returned meta carries the generated dataset ID.
func (s *DatasetService) Create(ctx context.Context, name, format string, r io.Reader) (*DatasetMeta, error) {
	start := time.Now()

	var result *dataprocessing.ParseResult
	var err error

	switch strings.ToLower(format) {
	case "csv", "":
		format = "csv"
		result, err = s.parser.ParseCSV(ctx, r)
	case "xlsx":
		result, err = s.parser.ParseWorkbook(ctx, r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, format)
	}

	infrastructure.RecordIngestMetrics(ctx, s.metrics, format, lenRecords(result), lenRejected(result), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("parse upload: %w", err)
	}
	if len(result.Records) == 0 {
		return nil, ErrEmptyDataset
	}

	ds := &dataset{
		meta: DatasetMeta{
			ID:           uuid.New().String(),
			Name:         name,
			CreatedAt:    time.Now().UTC(),
			Records:      len(result.Records),
			Rejected:     len(result.Rejected),
			PeriodALabel: result.PeriodALabel,
			PeriodBLabel: result.PeriodBLabel,
			HasPrice:     result.HasPrice,
			HasCategory:  result.HasCategory,
		},
		records:  result.Records,
		rejected: result.Rejected,
	}

	s.mu.Lock()
	s.datasets[ds.meta.ID] = ds
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.DatasetsActive.Add(ctx, 1)
	}

	s.logger.InfoContext(ctx, "dataset created",
		slog.String("dataset_id", ds.meta.ID),
		slog.String("name", name),
		slog.String("format", format),
		slog.Int("records", ds.meta.Records),
		slog.Int("rejected", ds.meta.Rejected))

	meta := ds.meta
	return &meta, nil
}

// List returns metadata for all datasets, newest first.
func (s *DatasetService) List(ctx context.Context) []DatasetMeta {
	s.mu.RLock()
	metas := make([]DatasetMeta, 0, len(s.datasets))
	for _, ds := range s.datasets {
		metas = append(metas, ds.meta)
	}
	s.mu.RUnlock()

	sort.Slice(metas, func(i, j int) bool {
		if metas[i].CreatedAt.Equal(metas[j].CreatedAt) {
			return metas[i].ID < metas[j].ID
		}
		return metas[i].CreatedAt.After(metas[j].CreatedAt)
	})
	return metas
}

// Get returns metadata for one dataset.
func (s *DatasetService) Get(ctx context.Context, id string) (*DatasetMeta, error) {
	ds, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	meta := ds.meta
	return &meta, nil
}

// Rejections returns the rejected rows recorded while parsing a dataset.
func (s *DatasetService) Rejections(ctx context.Context, id string) ([]dataprocessing.RejectedRow, error) {
	ds, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return ds.rejected, nil
}

// Delete removes a dataset.
func (s *DatasetService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.datasets[id]
	if ok {
		delete(s.datasets, id)
	}
	s.mu.Unlock()

	if !ok {
		return ErrDatasetNotFound
	}

	if s.metrics != nil {
		s.metrics.DatasetsActive.Add(ctx, -1)
	}

	s.logger.InfoContext(ctx, "dataset deleted", slog.String("dataset_id", id))
	return nil
}

// Summary returns key metrics for one dataset.
func (s *DatasetService) Summary(ctx context.Context, id string, opts QueryOptions) (*analytics.DatasetSummary, error) {
	records, err := s.recordsFor(id, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	summary := s.engine.Summarize(ctx, records)
	infrastructure.RecordAnalyticsMetrics(ctx, s.metrics, "summary", time.Since(start), nil)

	return &summary, nil
}

// TopPerformers ranks dataset records by the given metric. A non-positive
// n falls back to the configured default.
func (s *DatasetService) TopPerformers(ctx context.Context, id string, metric analytics.Metric, n int, opts QueryOptions) ([]analytics.RankedRecord, error) {
	records, err := s.recordsFor(id, opts)
	if err != nil {
		return nil, err
	}

	if n <= 0 {
		n = s.defaultTopN
	}

	start := time.Now()
	ranked, err := s.engine.RankTopPerformers(ctx, records, metric, n)
	infrastructure.RecordAnalyticsMetrics(ctx, s.metrics, "top_performers", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return ranked, nil
}

// Categories aggregates dataset records by category.
func (s *DatasetService) Categories(ctx context.Context, id string, opts QueryOptions) ([]analytics.CategoryAggregate, error) {
	records, err := s.recordsFor(id, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	aggregates := s.engine.AggregateByCategory(ctx, records)
	infrastructure.RecordAnalyticsMetrics(ctx, s.metrics, "categories", time.Since(start), nil)

	return aggregates, nil
}

// Classifications buckets dataset records into growth classes. Threshold
// overrides in opts take precedence over the configured defaults.
func (s *DatasetService) Classifications(ctx context.Context, id string, opts QueryOptions) (*analytics.ClassificationResult, error) {
	records, err := s.recordsFor(id, opts)
	if err != nil {
		return nil, err
	}

	thresholds := s.engine.Thresholds()
	if opts.Thresholds != nil {
		thresholds = *opts.Thresholds
	}

	start := time.Now()
	result, err := s.engine.ClassifyGrowth(ctx, records, thresholds)
	infrastructure.RecordAnalyticsMetrics(ctx, s.metrics, "classifications", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ProductDeepDive sums all records matching the given keyword or URL.
func (s *DatasetService) ProductDeepDive(ctx context.Context, id, key string, opts QueryOptions) (*analytics.DeepDiveSummary, error) {
	records, err := s.recordsFor(id, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	summary, err := s.engine.ProductDeepDive(ctx, records, key)
	infrastructure.RecordAnalyticsMetrics(ctx, s.metrics, "deep_dive", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// lookup fetches a dataset under the read lock.
func (s *DatasetService) lookup(id string) (*dataset, error) {
	s.mu.RLock()
	ds, ok := s.datasets[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrDatasetNotFound
	}
	return ds, nil
}

// recordsFor returns a dataset's records with the status filter applied.
// The stored slice is immutable; filtering allocates a fresh one.
func (s *DatasetService) recordsFor(id string, opts QueryOptions) ([]domain.SalesRecord, error) {
	ds, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	if opts.Status == "" {
		return ds.records, nil
	}

	filtered := make([]domain.SalesRecord, 0, len(ds.records))
	for _, rec := range ds.records {
		if strings.EqualFold(rec.Status, opts.Status) {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}

func lenRecords(r *dataprocessing.ParseResult) int {
	if r == nil {
		return 0
	}
	return len(r.Records)
}

func lenRejected(r *dataprocessing.ParseResult) int {
	if r == nil {
		return 0
	}
	return len(r.Rejected)
}
