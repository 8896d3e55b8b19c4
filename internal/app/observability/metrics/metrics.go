package metrics

import (
	"context"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "claims-templui"

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal      metric.Int64Counter
	HTTPRequestDuration    metric.Float64Histogram
	AuthRequestsTotal      metric.Int64Counter
	GuardRedirectsTotal    metric.Int64Counter
	BackendRequestsTotal   metric.Int64Counter
	BackendRequestDuration metric.Float64Histogram
	ReportRendersTotal     metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments once, from the global MeterProvider.
// Without a configured provider the instruments are no-ops.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter(meterName)
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

		m.AuthRequestsTotal, err = meter.Int64Counter(
			"auth_requests_total",
			metric.WithDescription("Total number of login, register and logout attempts"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create auth_requests_total: %v", err)
		}

		m.GuardRedirectsTotal, err = meter.Int64Counter(
			"guard_redirects_total",
			metric.WithDescription("Navigations redirected by a route guard"),
			metric.WithUnit("{redirect}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create guard_redirects_total: %v", err)
		}

		m.BackendRequestsTotal, err = meter.Int64Counter(
			"backend_requests_total",
			metric.WithDescription("Requests sent to the claims backend"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create backend_requests_total: %v", err)
		}

		m.BackendRequestDuration, err = meter.Float64Histogram(
			"backend_request_duration_seconds",
			metric.WithDescription("Duration of claims backend requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create backend_request_duration_seconds: %v", err)
		}

		m.ReportRendersTotal, err = meter.Int64Counter(
			"report_renders_total",
			metric.WithDescription("PDF damage reports generated"),
			metric.WithUnit("{report}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create report_renders_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the application instruments, creating them on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}

// RecordAuth counts an auth attempt by action ("login", "register", "logout") and outcome.
func (m *AppMetrics) RecordAuth(ctx context.Context, action, outcome string) {
	m.AuthRequestsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("outcome", outcome),
	))
}

// RecordGuardRedirect counts a navigation turned away by guard.
func (m *AppMetrics) RecordGuardRedirect(ctx context.Context, guard, target string) {
	m.GuardRedirectsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("guard", guard),
		attribute.String("target", target),
	))
}
