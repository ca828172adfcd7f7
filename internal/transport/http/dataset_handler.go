package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"salespulse/internal/analytics"
	apierrors "salespulse/internal/errors"
	custommw "salespulse/internal/middleware"
	"salespulse/internal/services"
)

// DatasetHandler handles dataset HTTP requests with RFC 7807 compliance
type DatasetHandler struct {
	service      DatasetServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	params       *custommw.QueryParamValidator
	maxBodySize  int64
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(service DatasetServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxBodySize int64) *DatasetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if maxBodySize <= 0 {
		maxBodySize = 10 << 20
	}
	return &DatasetHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dataset_handler")),
		errorHandler: errorHandler,
		params:       custommw.NewQueryParamValidator(logger, errorHandler),
		maxBodySize:  maxBodySize,
	}
}

// Routes returns the dataset routes with proper Chi patterns
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.CreateDataset)
	r.Get("/", h.ListDatasets)

	r.Route("/{datasetID}", func(r chi.Router) {
		r.Use(h.DatasetCtx)
		r.Get("/", h.GetDataset)
		r.Delete("/", h.DeleteDataset)
		r.Get("/summary", h.GetSummary)
		r.Get("/top", h.GetTopPerformers)
		r.Get("/categories", h.GetCategories)
		r.Get("/classifications", h.GetClassifications)
		r.Get("/product", h.GetProductDeepDive)
		r.Get("/rejections", h.GetRejections)
	})

	return r
}

// DatasetCtx middleware validates the dataset ID parameter
func (h *DatasetHandler) DatasetCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "datasetID") == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("dataset_id", "Dataset ID is required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CreateDataset handles POST /api/datasets. The body is the raw export;
// the format comes from the Content-Type header or the format query param.
func (h *DatasetHandler) CreateDataset(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	if r.ContentLength > h.maxBodySize {
		h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "sales-export"
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = formatFromContentType(r.Header.Get("Content-Type"))
	}

	body := http.MaxBytesReader(w, r.Body, h.maxBodySize)
	defer body.Close()

	meta, err := h.service.Create(r.Context(), name, format, body)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "dataset upload failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
			slog.String("format", format),
		)
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	h.logger.InfoContext(r.Context(), "dataset uploaded",
		slog.String("dataset_id", meta.ID),
		slog.String("request_id", reqID),
		slog.Int("records", meta.Records),
	)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   meta,
	})
}

// ListDatasets handles GET /api/datasets
func (h *DatasetHandler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	datasets := h.service.List(r.Context())

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   datasets,
		"count":  len(datasets),
	})
}

// GetDataset handles GET /api/datasets/{datasetID}
func (h *DatasetHandler) GetDataset(w http.ResponseWriter, r *http.Request) {
	meta, err := h.service.Get(r.Context(), chi.URLParam(r, "datasetID"))
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   meta,
	})
}

// DeleteDataset handles DELETE /api/datasets/{datasetID}
func (h *DatasetHandler) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "datasetID")); err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.Status(r, http.StatusNoContent)
	render.NoContent(w, r)
}

// GetSummary handles GET /api/datasets/{datasetID}/summary
func (h *DatasetHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	opts, ok := h.queryOptions(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), chi.URLParam(r, "datasetID"), opts)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// GetTopPerformers handles GET /api/datasets/{datasetID}/top
func (h *DatasetHandler) GetTopPerformers(w http.ResponseWriter, r *http.Request) {
	opts, ok := h.queryOptions(w, r)
	if !ok {
		return
	}

	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = string(analytics.MetricGrowth)
	}

	n, ok := h.params.ValidateInt(w, r, "n", 1, 1000, 0)
	if !ok {
		return
	}

	ranked, err := h.service.TopPerformers(r.Context(), chi.URLParam(r, "datasetID"), analytics.Metric(metric), n, opts)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   ranked,
		"count":  len(ranked),
		"metric": metric,
	})
}

// GetCategories handles GET /api/datasets/{datasetID}/categories
func (h *DatasetHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	opts, ok := h.queryOptions(w, r)
	if !ok {
		return
	}

	aggregates, err := h.service.Categories(r.Context(), chi.URLParam(r, "datasetID"), opts)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   aggregates,
		"count":  len(aggregates),
	})
}

// GetClassifications handles GET /api/datasets/{datasetID}/classifications
func (h *DatasetHandler) GetClassifications(w http.ResponseWriter, r *http.Request) {
	opts, ok := h.queryOptions(w, r)
	if !ok {
		return
	}

	result, err := h.service.Classifications(r.Context(), chi.URLParam(r, "datasetID"), opts)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

// GetProductDeepDive handles GET /api/datasets/{datasetID}/product?key=
func (h *DatasetHandler) GetProductDeepDive(w http.ResponseWriter, r *http.Request) {
	opts, ok := h.queryOptions(w, r)
	if !ok {
		return
	}

	key := strings.TrimSpace(r.URL.Query().Get("key"))
	if key == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("key", "Product keyword or URL is required"))
		return
	}

	summary, err := h.service.ProductDeepDive(r.Context(), chi.URLParam(r, "datasetID"), key, opts)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// GetRejections handles GET /api/datasets/{datasetID}/rejections
func (h *DatasetHandler) GetRejections(w http.ResponseWriter, r *http.Request) {
	rejected, err := h.service.Rejections(r.Context(), chi.URLParam(r, "datasetID"))
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   rejected,
		"count":  len(rejected),
	})
}

// queryOptions parses the shared status and threshold query parameters.
func (h *DatasetHandler) queryOptions(w http.ResponseWriter, r *http.Request) (services.QueryOptions, bool) {
	opts := services.QueryOptions{
		Status: r.URL.Query().Get("status"),
	}

	query := r.URL.Query()
	if query.Get("growing_min") == "" && query.Get("declining_max") == "" {
		return opts, true
	}

	defaults := analytics.DefaultThresholds()
	growingMin, ok := h.params.ValidateFloat(w, r, "growing_min", defaults.GrowingMin)
	if !ok {
		return opts, false
	}
	decliningMax, ok := h.params.ValidateFloat(w, r, "declining_max", defaults.DecliningMax)
	if !ok {
		return opts, false
	}

	opts.Thresholds = &analytics.Thresholds{
		GrowingMin:   growingMin,
		DecliningMax: decliningMax,
	}
	return opts, true
}

// mapServiceError maps service and engine errors to API errors.
func (h *DatasetHandler) mapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrDatasetNotFound):
		return apierrors.ErrDatasetNotFound
	case errors.Is(err, services.ErrEmptyDataset):
		return apierrors.ErrEmptyDataset
	case errors.Is(err, services.ErrInvalidFormat):
		return apierrors.NewWithDetails(
			http.StatusBadRequest,
			"INVALID_FORMAT",
			"Unsupported upload format",
			err.Error(),
		)
	case errors.Is(err, analytics.ErrInvalidMetric):
		return apierrors.ErrInvalidMetric
	case errors.Is(err, analytics.ErrNotFound):
		return apierrors.ErrProductNotFound
	case errors.Is(err, analytics.ErrInvalidArgument):
		return apierrors.NewWithDetails(
			http.StatusBadRequest,
			"INVALID_PARAMETER",
			"Invalid analytics parameter",
			err.Error(),
		)
	default:
		return err
	}
}

// formatFromContentType maps an upload content type to a parser format.
func formatFromContentType(contentType string) string {
	switch {
	case strings.Contains(contentType, "spreadsheetml"),
		strings.Contains(contentType, "ms-excel"):
		return "xlsx"
	default:
		return "csv"
	}
}
