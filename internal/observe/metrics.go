// Package observe provides application-wide observability primitives for
// rapport: OpenTelemetry metrics, distributed tracing, structured logging,
// and HTTP middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/MrWong99/rapport/pkg/depth"
)

// meterName is the instrumentation scope name used for all rapport metrics.
const meterName = "github.com/MrWong99/rapport"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Histograms ---

	// AnalysisDuration tracks transcript scoring latency.
	AnalysisDuration metric.Float64Histogram

	// OverallScore tracks the distribution of overall connection scores.
	OverallScore metric.Int64Histogram

	// DimensionScore tracks per-dimension score distributions. Use with
	// attribute: attribute.String("dimension", ...)
	DimensionScore metric.Int64Histogram

	// --- Counters ---

	// Analyses counts completed analyses. Use with attributes:
	//   attribute.String("surface", ...), attribute.String("label", ...)
	Analyses metric.Int64Counter

	// TurnsParsed counts transcript turns parsed across all analyses.
	TurnsParsed metric.Int64Counter

	// --- Gauges ---

	// ActiveWSSessions tracks the number of live WebSocket sessions.
	ActiveWSSessions metric.Int64UpDownCounter

	// --- HTTP middleware ---

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds). Scoring
// is a pure in-memory scan, so the buckets skew far smaller than typical
// HTTP latencies.
var latencyBuckets = []float64{
	0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1,
}

// scoreBuckets defines histogram bucket boundaries for 0–100 scores, with
// edges on the red/yellow/green label thresholds.
var scoreBuckets = []float64{
	10, 20, 30, 40, 50, 60, 70, 80, 90,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.AnalysisDuration, err = m.Float64Histogram("rapport.analysis.duration",
		metric.WithDescription("Latency of transcript scoring."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.OverallScore, err = m.Int64Histogram("rapport.analysis.overall_score",
		metric.WithDescription("Distribution of overall connection scores."),
		metric.WithExplicitBucketBoundaries(scoreBuckets...),
	); err != nil {
		return nil, err
	}
	if met.DimensionScore, err = m.Int64Histogram("rapport.analysis.dimension_score",
		metric.WithDescription("Distribution of per-dimension scores."),
		metric.WithExplicitBucketBoundaries(scoreBuckets...),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.Analyses, err = m.Int64Counter("rapport.analyses",
		metric.WithDescription("Total completed analyses by surface and overall label."),
	); err != nil {
		return nil, err
	}
	if met.TurnsParsed, err = m.Int64Counter("rapport.turns.parsed",
		metric.WithDescription("Total transcript turns parsed."),
	); err != nil {
		return nil, err
	}

	// Gauges (UpDownCounters).
	if met.ActiveWSSessions, err = m.Int64UpDownCounter("rapport.ws.active_sessions",
		metric.WithDescription("Number of live WebSocket sessions."),
	); err != nil {
		return nil, err
	}

	// HTTP middleware histogram.
	if met.HTTPRequestDuration, err = m.Float64Histogram("rapport.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
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
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
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

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordAnalysis records the full instrument set for one completed analysis:
// the analysis counter, scoring latency, score distributions, and the parsed
// turn count.
func (m *Metrics) RecordAnalysis(ctx context.Context, surface string, a *depth.Analysis, elapsed time.Duration) {
	m.Analyses.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("surface", surface),
			attribute.String("label", string(a.Overall.Label)),
		),
	)
	m.AnalysisDuration.Record(ctx, elapsed.Seconds(),
		metric.WithAttributes(attribute.String("surface", surface)),
	)
	m.OverallScore.Record(ctx, int64(a.Overall.Value))
	for _, dim := range depth.Dimensions {
		m.DimensionScore.Record(ctx, int64(a.Scores[dim].Value),
			metric.WithAttributes(attribute.String("dimension", string(dim))),
		)
	}
	m.TurnsParsed.Add(ctx, int64(a.Stats.Turns))
}
