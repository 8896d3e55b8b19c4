package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-claims-templui/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-claims-templui/internal/app/observability/tracer"
	"github.com/FACorreiaa/go-claims-templui/internal/pkg/config"
)

// ObservabilityShutdownFunc is the function type returned by InitObservability
type ObservabilityShutdownFunc func(context.Context) error

// InitObservability initializes OpenTelemetry and application metrics
func InitObservability(cfg config.ObservabilityConfig, version string, logger *zap.Logger) (ObservabilityShutdownFunc, error) {
	otelShutdown, err := tracer.InitOtelProviders(tracer.Options{
		ServiceName:  cfg.ServiceName,
		Version:      version,
		OTLPEndpoint: cfg.OTLPEndpoint,
		MetricsAddr:  cfg.MetricsAddr,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics.InitAppMetrics()
	logger.Info("Observability initialized", zap.String("metrics_endpoint", cfg.MetricsAddr+"/metrics"))

	return otelShutdown, nil
}
