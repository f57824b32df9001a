package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRecordJob(t *testing.T) {
	ctx := context.Background()
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))

	obs, err := newWithProvider(provider, "test")
	require.NoError(t, err)

	obs.RecordJob(ctx, "submit-registration", "completed", 120*time.Millisecond)
	obs.RecordJob(ctx, "submit-registration", "failed", 30*time.Millisecond)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	found := map[string]metricdata.Metrics{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		found[m.Name] = m
	}

	counter, ok := found["jobs.processed"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range counter.DataPoints {
		total += dp.Value
	}
	assert.Equal(t, int64(2), total)

	hist, ok := found["jobs.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.Len(t, hist.DataPoints, 2)

	require.NoError(t, obs.Shutdown(ctx))
}

func TestNilObservabilityIsNoop(t *testing.T) {
	var obs *Observability

	assert.NotPanics(t, func() {
		obs.RecordJob(context.Background(), "admin-login", "completed", time.Millisecond)
	})
	assert.NoError(t, obs.Shutdown(context.Background()))
}
