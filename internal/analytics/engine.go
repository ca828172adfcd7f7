package analytics

import (
	"errors"
	"log/slog"
)

// Engine computes comparative sales analytics over in-memory record
// collections. All operations are pure: they never mutate their input and
// always produce the same output for the same input and parameters, so the
// surrounding dashboard can re-invoke them on every interaction.
type Engine struct {
	logger *slog.Logger
	cfg    Config
}

// Config holds engine defaults applied when a caller omits parameters.
type Config struct {
	DefaultTopN int        // ranking size when the caller passes no limit
	Thresholds  Thresholds // classification thresholds
}

// Thresholds configures growth classification boundaries, in percent.
type Thresholds struct {
	GrowingMin   float64 `json:"growing_min"`   // at or above: Growing
	DecliningMax float64 `json:"declining_max"` // at or below: Declining
}

// Validate checks that the thresholds describe a non-empty Stable band.
func (t Thresholds) Validate() error {
	if t.GrowingMin <= t.DecliningMax {
		return ErrInvalidArgument
	}
	return nil
}

// Engine operation errors. Handlers map these to API errors; all of them
// are recoverable by re-invoking with corrected parameters.
var (
	ErrInvalidMetric   = errors.New("invalid ranking metric")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("no matching records")
)

// NewEngine creates an analytics engine with the given configuration.
func NewEngine(logger *slog.Logger, cfg Config) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DefaultTopN <= 0 {
		cfg.DefaultTopN = 10
	}
	if cfg.Thresholds == (Thresholds{}) {
		cfg.Thresholds = DefaultThresholds()
	}

	return &Engine{
		logger: logger.With(slog.String("component", "analytics_engine")),
		cfg:    cfg,
	}
}

// Thresholds returns the engine's configured classification thresholds.
func (e *Engine) Thresholds() Thresholds {
	return e.cfg.Thresholds
}

// DefaultThresholds returns the standard +/-10% classification band.
func DefaultThresholds() Thresholds {
	return Thresholds{GrowingMin: 10, DecliningMax: -10}
}

// DefaultConfig returns the engine defaults used by the dashboard.
func DefaultConfig() Config {
	return Config{
		DefaultTopN: 10,
		Thresholds:  DefaultThresholds(),
	}
}
