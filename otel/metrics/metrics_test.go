package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestRecordRequest(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	require.NoError(t, Init("metrics-test"))

	ctx := context.Background()
	IncrementInFlightRequests(ctx, "GET", "/bookings/my/")
	RecordRequest(ctx, "GET", "/bookings/my/", 200, OutcomeSuccess, 25*time.Millisecond)
	RecordRequest(ctx, "GET", "/bookings/my/", 401, OutcomeUnauthorized, 5*time.Millisecond)
	DecrementInFlightRequests(ctx, "GET", "/bookings/my/")

	got := collect(t, reader)

	total, ok := got["hostel_client_requests_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var sum int64
	for _, dp := range total.DataPoints {
		sum += dp.Value
	}
	assert.Equal(t, int64(2), sum)
	assert.Len(t, total.DataPoints, 2, "one series per outcome")

	inFlight, ok := got["hostel_client_requests_in_flight"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, inFlight.DataPoints, 1)
	assert.Equal(t, int64(0), inFlight.DataPoints[0].Value)

	duration, ok := got["hostel_client_request_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.Len(t, duration.DataPoints, 2)
}
