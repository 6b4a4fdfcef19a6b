package metrics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	CityRequestsTotal        metric.Int64Counter
	CityNotFoundTotal        metric.Int64Counter
	RecommendDurationSeconds metric.Float64Histogram
	RecommendCacheHitsTotal  metric.Int64Counter
	DatasetCitiesLoaded      metric.Int64Gauge
}

var (
	appMetrics *AppMetrics
	initErr    error
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider, so call it
// after the provider has been installed.
func InitAppMetrics() error {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("go-tourism-api")
		appMetrics, initErr = newAppMetrics(meter)
	})
	return initErr
}

func newAppMetrics(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	m.CityRequestsTotal, err = meter.Int64Counter(
		"city_requests_total",
		metric.WithDescription("Total number of city queries served, by operation"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create city_requests_total: %w", err)
	}

	m.CityNotFoundTotal, err = meter.Int64Counter(
		"city_not_found_total",
		metric.WithDescription("Total number of lookups for unknown cities"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create city_not_found_total: %w", err)
	}

	m.RecommendDurationSeconds, err = meter.Float64Histogram(
		"recommend_duration_seconds",
		metric.WithDescription("Time spent ranking places for a recommendation"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create recommend_duration_seconds: %w", err)
	}

	m.RecommendCacheHitsTotal, err = meter.Int64Counter(
		"recommend_cache_hits_total",
		metric.WithDescription("Recommendations served from cache"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create recommend_cache_hits_total: %w", err)
	}

	m.DatasetCitiesLoaded, err = meter.Int64Gauge(
		"dataset_cities_loaded",
		metric.WithDescription("Number of cities held in memory"),
		metric.WithUnit("{city}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create dataset_cities_loaded: %w", err)
	}
	return m, nil
}

// Get returns the globally initialized AppMetrics instance, or nil if
// InitAppMetrics has not run. All recording helpers accept a nil receiver.
func Get() *AppMetrics {
	return appMetrics
}

func (m *AppMetrics) CityRequest(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.CityRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

func (m *AppMetrics) CityNotFound(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.CityNotFoundTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

func (m *AppMetrics) RecommendDuration(ctx context.Context, d time.Duration) {
	if m == nil {
		return
	}
	m.RecommendDurationSeconds.Record(ctx, d.Seconds())
}

func (m *AppMetrics) RecommendCacheHit(ctx context.Context) {
	if m == nil {
		return
	}
	m.RecommendCacheHitsTotal.Add(ctx, 1)
}

func (m *AppMetrics) CitiesLoaded(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.DatasetCitiesLoaded.Record(ctx, int64(n))
}
