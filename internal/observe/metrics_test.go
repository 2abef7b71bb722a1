package observe

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/MrWong99/rapport/pkg/depth"
)

// newTestMetrics returns a Metrics instance backed by a ManualReader for
// programmatic metric inspection.
func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

// collect gathers all metric data from the reader.
func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return rm
}

// findMetric searches for a metric by name across all scope metrics.
func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestNewMetrics_CreatesWithoutError(t *testing.T) {
	m, _ := newTestMetrics(t)
	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}
}

func TestDurationHistograms(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	histograms := []struct {
		name string
		h    metric.Float64Histogram
	}{
		{"rapport.analysis.duration", m.AnalysisDuration},
		{"rapport.http.request.duration", m.HTTPRequestDuration},
	}

	for _, tc := range histograms {
		tc.h.Record(ctx, 0.0003)
		tc.h.Record(ctx, 0.0041)
	}

	rm := collect(t, reader)

	for _, tc := range histograms {
		t.Run(tc.name, func(t *testing.T) {
			met := findMetric(rm, tc.name)
			if met == nil {
				t.Fatalf("metric %q not found", tc.name)
			}
			hist, ok := met.Data.(metricdata.Histogram[float64])
			if !ok {
				t.Fatalf("metric %q is not a histogram", tc.name)
			}
			if len(hist.DataPoints) == 0 {
				t.Fatalf("metric %q has no data points", tc.name)
			}
			if got := hist.DataPoints[0].Count; got != 2 {
				t.Errorf("sample count = %d, want 2", got)
			}
		})
	}
}

func TestScoreHistograms(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.OverallScore.Record(ctx, 61)
	m.OverallScore.Record(ctx, 13)
	m.DimensionScore.Record(ctx, 100,
		metric.WithAttributes(attribute.String("dimension", "acknowledgment")),
	)

	rm := collect(t, reader)

	for _, tc := range []struct {
		name string
		want uint64
	}{
		{"rapport.analysis.overall_score", 2},
		{"rapport.analysis.dimension_score", 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			met := findMetric(rm, tc.name)
			if met == nil {
				t.Fatalf("metric %q not found", tc.name)
			}
			hist, ok := met.Data.(metricdata.Histogram[int64])
			if !ok {
				t.Fatalf("metric %q is not an int64 histogram", tc.name)
			}
			if len(hist.DataPoints) == 0 {
				t.Fatalf("metric %q has no data points", tc.name)
			}
			if got := hist.DataPoints[0].Count; got != tc.want {
				t.Errorf("sample count = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestAnalysesCounter(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	attrs := metric.WithAttributes(
		attribute.String("surface", "web"),
		attribute.String("label", "green"),
	)
	m.Analyses.Add(ctx, 1, attrs)
	m.Analyses.Add(ctx, 1, attrs)
	m.Analyses.Add(ctx, 1, metric.WithAttributes(
		attribute.String("surface", "web"),
		attribute.String("label", "red"),
	))

	rm := collect(t, reader)
	met := findMetric(rm, "rapport.analyses")
	if met == nil {
		t.Fatal("metric not found")
	}
	sum, ok := met.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("metric is not a sum")
	}

	// Find the data point with label=green.
	for _, dp := range sum.DataPoints {
		for _, kv := range dp.Attributes.ToSlice() {
			if string(kv.Key) == "label" && kv.Value.AsString() == "green" {
				if dp.Value != 2 {
					t.Errorf("counter value = %d, want 2", dp.Value)
				}
				return
			}
		}
	}
	t.Error("data point with label=green not found")
}

func TestRecordAnalysis(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	a := &depth.Analysis{
		Scores: map[depth.Dimension]depth.Score{
			depth.DimCuriosity:      {Value: 50, Label: depth.LabelYellow},
			depth.DimAcknowledgment: {Value: 100, Label: depth.LabelGreen},
			depth.DimSpace:          {Value: 100, Label: depth.LabelGreen},
			depth.DimContinuity:     {Value: 0, Label: depth.LabelRed},
			depth.DimReciprocity:    {Value: 57, Label: depth.LabelYellow},
		},
		Overall: depth.Score{Value: 61, Label: depth.LabelYellow},
		Stats:   depth.Stats{Turns: 3, HumanTurns: 2, AITurns: 1},
	}
	m.RecordAnalysis(ctx, "cli", a, 850*time.Microsecond)

	rm := collect(t, reader)

	analyses := findMetric(rm, "rapport.analyses")
	if analyses == nil {
		t.Fatal("rapport.analyses not found")
	}
	sum, ok := analyses.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("rapport.analyses is not a sum")
	}
	if len(sum.DataPoints) != 1 || sum.DataPoints[0].Value != 1 {
		t.Errorf("analyses data points = %+v, want single point of 1", sum.DataPoints)
	}

	turns := findMetric(rm, "rapport.turns.parsed")
	if turns == nil {
		t.Fatal("rapport.turns.parsed not found")
	}
	tsum, ok := turns.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("rapport.turns.parsed is not a sum")
	}
	if got := tsum.DataPoints[0].Value; got != 3 {
		t.Errorf("turns parsed = %d, want 3", got)
	}

	// One histogram point per dimension attribute value.
	dims := findMetric(rm, "rapport.analysis.dimension_score")
	if dims == nil {
		t.Fatal("rapport.analysis.dimension_score not found")
	}
	dhist, ok := dims.Data.(metricdata.Histogram[int64])
	if !ok {
		t.Fatal("rapport.analysis.dimension_score is not an int64 histogram")
	}
	if got := len(dhist.DataPoints); got != len(depth.Dimensions) {
		t.Errorf("dimension data points = %d, want %d", got, len(depth.Dimensions))
	}

	overall := findMetric(rm, "rapport.analysis.overall_score")
	if overall == nil {
		t.Fatal("rapport.analysis.overall_score not found")
	}
	ohist, ok := overall.Data.(metricdata.Histogram[int64])
	if !ok {
		t.Fatal("rapport.analysis.overall_score is not an int64 histogram")
	}
	if got := ohist.DataPoints[0].Sum; got != 61 {
		t.Errorf("overall score sum = %d, want 61", got)
	}
}

func TestActiveWSSessionsGauge(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.ActiveWSSessions.Add(ctx, 1)
	m.ActiveWSSessions.Add(ctx, 1)
	m.ActiveWSSessions.Add(ctx, -1)

	rm := collect(t, reader)
	met := findMetric(rm, "rapport.ws.active_sessions")
	if met == nil {
		t.Fatal("metric not found")
	}
	sum, ok := met.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("metric is not a sum")
	}
	if len(sum.DataPoints) == 0 {
		t.Fatal("no data points")
	}
	if got := sum.DataPoints[0].Value; got != 1 {
		t.Errorf("gauge value = %d, want 1", got)
	}
}

func TestDefaultMetrics_ReturnsSameInstance(t *testing.T) {
	// DefaultMetrics uses the global OTel provider so we just check
	// that repeated calls return the same pointer.
	a := DefaultMetrics()
	b := DefaultMetrics()
	if a != b {
		t.Error("DefaultMetrics returned different pointers")
	}
}
