package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "salespulse/internal/errors"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestID_Generates(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetReqID(r.Context())
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/datasets", nil)

	RequestID(inner).ServeHTTP(rec, req)

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
}

func TestRequestID_PreservesIncoming(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/datasets", nil)
	req.Header.Set("X-Request-ID", "fixed-id")

	RequestID(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))
}

func TestRecoverer(t *testing.T) {
	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/datasets", nil)

	Recoverer(slog.Default())(panicky).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 1, slog.Default())
	handler := rl.Handler(okHandler())

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	// Burst of 1 exhausted, second immediate request is rejected.
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))
}

func TestCORS_Preflight(t *testing.T) {
	handler := CORS(CORSConfig{
		AllowedOrigins: []string{"http://localhost:8080"},
	})(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/datasets", nil)
	req.Header.Set("Origin", "http://localhost:8080")

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:8080", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	SecurityHeaders(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestValidationMiddleware_MetricRule(t *testing.T) {
	m := NewValidationMiddleware(slog.Default(), apierrors.NewErrorHandler(slog.Default(), false))

	type query struct {
		Metric string `json:"metric" validate:"metric"`
	}

	require.NoError(t, m.ValidateStruct(query{Metric: "growth_pct"}))
	assert.Error(t, m.ValidateStruct(query{Metric: "velocity"}))
}

func TestQueryParamValidator_ValidateInt(t *testing.T) {
	v := NewQueryParamValidator(slog.Default(), apierrors.NewErrorHandler(slog.Default(), false))

	req := httptest.NewRequest(http.MethodGet, "/?n=5", nil)
	got, ok := v.ValidateInt(httptest.NewRecorder(), req, "n", 1, 100, 10)
	require.True(t, ok)
	assert.Equal(t, 5, got)

	// Missing param falls back to the default.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	got, ok = v.ValidateInt(httptest.NewRecorder(), req, "n", 1, 100, 10)
	require.True(t, ok)
	assert.Equal(t, 10, got)

	// Out of range fails.
	req = httptest.NewRequest(http.MethodGet, "/?n=1000", nil)
	rec := httptest.NewRecorder()
	_, ok = v.ValidateInt(rec, req, "n", 1, 100, 10)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryParamValidator_ValidateFloat(t *testing.T) {
	v := NewQueryParamValidator(slog.Default(), apierrors.NewErrorHandler(slog.Default(), false))

	req := httptest.NewRequest(http.MethodGet, "/?growing_min=12.5", nil)
	got, ok := v.ValidateFloat(httptest.NewRecorder(), req, "growing_min", 10)
	require.True(t, ok)
	assert.InDelta(t, 12.5, got, 0.001)

	req = httptest.NewRequest(http.MethodGet, "/?growing_min=abc", nil)
	rec := httptest.NewRecorder()
	_, ok = v.ValidateFloat(rec, req, "growing_min", 10)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContentTypeValidator(t *testing.T) {
	handler := ContentTypeValidator("text/csv", "application/json")(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/datasets", nil)
	req.Header.Set("Content-Type", "text/csv")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/datasets", nil)
	req.Header.Set("Content-Type", "image/png")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}
