package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Request outcomes, as reported in the "outcome" attribute.
const (
	OutcomeSuccess        = "success"
	OutcomeUnauthorized   = "unauthorized"
	OutcomeHTTPError      = "http_error"
	OutcomeTransportError = "transport_error"
)

var (
	meter metric.Meter

	clientRequestsTotal    metric.Int64Counter
	clientRequestDuration  metric.Float64Histogram
	clientRequestsInFlight metric.Int64UpDownCounter
)

// Init creates the client instruments on the global meter provider. Until it
// is called every Record/Increment/Decrement is a no-op.
func Init(serviceName string) error {
	meter = otel.Meter(serviceName)

	var err error

	clientRequestsTotal, err = meter.Int64Counter(
		"hostel_client_requests_total",
		metric.WithDescription("Total number of requests sent to the hostel API"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create hostel_client_requests_total counter: %w", err)
	}

	clientRequestDuration, err = meter.Float64Histogram(
		"hostel_client_request_duration_seconds",
		metric.WithDescription("Hostel API request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create hostel_client_request_duration_seconds histogram: %w", err)
	}

	clientRequestsInFlight, err = meter.Int64UpDownCounter(
		"hostel_client_requests_in_flight",
		metric.WithDescription("Number of hostel API requests currently in flight"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create hostel_client_requests_in_flight counter: %w", err)
	}

	return nil
}

// RecordRequest records one finished request. route is the path template
// (e.g. "/bookings/{id}/approve/"), never the concrete path.
func RecordRequest(ctx context.Context, method, route string, statusCode int, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", statusCode),
		attribute.String("outcome", outcome),
	)

	if clientRequestsTotal != nil {
		clientRequestsTotal.Add(ctx, 1, attrs)
	}
	if clientRequestDuration != nil {
		clientRequestDuration.Record(ctx, duration.Seconds(), attrs)
	}
}

func IncrementInFlightRequests(ctx context.Context, method, route string) {
	addInFlight(ctx, method, route, 1)
}

func DecrementInFlightRequests(ctx context.Context, method, route string) {
	addInFlight(ctx, method, route, -1)
}

func addInFlight(ctx context.Context, method, route string, delta int64) {
	if clientRequestsInFlight == nil {
		return
	}
	clientRequestsInFlight.Add(ctx, delta, metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
	))
}
