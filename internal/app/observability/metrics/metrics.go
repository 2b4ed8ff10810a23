package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	CheckInsTotal       metric.Int64Counter
	BadgesAwardedTotal  metric.Int64Counter
	PointsAdjustedTotal metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments once, from the
// globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("visitecacapava")
		var err error
		m := &AppMetrics{}

		m.HTTPRequestsTotal, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_requests_total: %v", err)
		}

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_request_duration_seconds: %v", err)
		}

		m.CheckInsTotal, err = meter.Int64Counter(
			"checkins_total",
			metric.WithDescription("Total number of successful tourist check-ins"),
			metric.WithUnit("{checkin}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create checkins_total: %v", err)
		}

		m.BadgesAwardedTotal, err = meter.Int64Counter(
			"badges_awarded_total",
			metric.WithDescription("Total number of badges unlocked by check-ins"),
			metric.WithUnit("{badge}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create badges_awarded_total: %v", err)
		}

		m.PointsAdjustedTotal, err = meter.Int64Counter(
			"points_adjustments_total",
			metric.WithDescription("Total number of manual points adjustments"),
			metric.WithUnit("{adjustment}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create points_adjustments_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the global metrics instance, or nil when InitAppMetrics has
// not run (e.g. in unit tests).
func Get() *AppMetrics {
	return appMetrics
}
