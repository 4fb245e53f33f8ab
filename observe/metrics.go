// Package observe provides the observability primitives of sonicpath:
// OpenTelemetry metrics for the sorting pipeline, the Prometheus exporter
// bridge and structured logger construction.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all sonicpath metrics.
const meterName = "github.com/katalvlaran/sonicpath"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use.
type Metrics struct {
	// --- Latency histograms per pipeline stage ---

	// EmbedDuration tracks the feature-embedding stage.
	EmbedDuration metric.Float64Histogram

	// OptimizeDuration tracks the route optimization stage.
	OptimizeDuration metric.Float64Histogram

	// FetchDuration tracks feature retrieval from a provider. Use with
	// attribute.String("provider", ...).
	FetchDuration metric.Float64Histogram

	// --- Counters ---

	// SortRuns counts completed sort runs. Use with attributes:
	//   attribute.String("strategy", ...), attribute.String("status", ...)
	SortRuns metric.Int64Counter

	// SortErrors counts failed sort runs by stage. Use with attribute:
	//   attribute.String("stage", ...)
	SortErrors metric.Int64Counter

	// OptimizeAccepted counts accepted segment reversals.
	OptimizeAccepted metric.Int64Counter

	// --- Quality ---

	// Improvement records the relative path-length gain over input order.
	Improvement metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds) for
// pipeline stages, from sub-millisecond optimizer runs to long fetches.
var latencyBuckets = []float64{
	0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
}

// ratioBuckets covers the [0,1] improvement ratio.
var ratioBuckets = []float64{0, 0.05, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.8, 1}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.EmbedDuration, err = m.Float64Histogram("sonicpath.embed.duration",
		metric.WithDescription("Latency of the feature embedding stage."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.OptimizeDuration, err = m.Float64Histogram("sonicpath.optimize.duration",
		metric.WithDescription("Latency of the route optimization stage."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.FetchDuration, err = m.Float64Histogram("sonicpath.fetch.duration",
		metric.WithDescription("Latency of track and feature retrieval by provider."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Improvement, err = m.Float64Histogram("sonicpath.optimize.improvement",
		metric.WithDescription("Relative path length reduction versus input order."),
		metric.WithUnit("1"),
		metric.WithExplicitBucketBoundaries(ratioBuckets...),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.SortRuns, err = m.Int64Counter("sonicpath.sort.runs",
		metric.WithDescription("Total sort runs by strategy and status."),
	); err != nil {
		return nil, err
	}
	if met.SortErrors, err = m.Int64Counter("sonicpath.sort.errors",
		metric.WithDescription("Total failed sort runs by stage."),
	); err != nil {
		return nil, err
	}
	if met.OptimizeAccepted, err = m.Int64Counter("sonicpath.optimize.accepted",
		metric.WithDescription("Total accepted segment reversals."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Panics if instrument creation
// fails (should not happen with the global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordRun records a sort-run counter increment with the standard attributes.
func (m *Metrics) RecordRun(ctx context.Context, strategy, status string) {
	m.SortRuns.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("strategy", strategy),
			attribute.String("status", status),
		),
	)
}

// RecordError records a failed run attributed to the stage that failed.
func (m *Metrics) RecordError(ctx context.Context, stage string) {
	m.SortErrors.Add(ctx, 1,
		metric.WithAttributes(attribute.String("stage", stage)),
	)
}

// RecordFetch records one provider retrieval latency in seconds.
func (m *Metrics) RecordFetch(ctx context.Context, provider string, seconds float64) {
	m.FetchDuration.Record(ctx, seconds,
		metric.WithAttributes(attribute.String("provider", provider)),
	)
}
