package observability

import (
	"github.com/smallbiznis/estimator/internal/observability/logger"
	"github.com/smallbiznis/estimator/internal/observability/metrics"
	"github.com/smallbiznis/estimator/internal/observability/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("observability",
	fx.Provide(
		LoadConfig,
		loggerConfig,
		logger.New,
		tracingConfig,
		tracing.NewProvider,
		metricsConfig,
		metrics.NewProvider,
		metrics.New,
		metrics.NewHTTPMetrics,
	),
	fx.Invoke(logStartup),
)

// logStartup forces the tracer provider to be built so the Gin tracing
// middleware picks up the global provider.
func logStartup(cfg Config, log *zap.Logger, _ *sdktrace.TracerProvider) {
	log.Info("observability configured",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.Bool("otlp_export", cfg.ExportEnabled),
		zap.String("metrics_namespace", cfg.MetricsNamespace),
	)
}

func loggerConfig(cfg Config) logger.Config {
	return logger.Config{
		ServiceName:         cfg.ServiceName,
		Environment:         cfg.Environment,
		Version:             cfg.Version,
		Level:               cfg.LogLevel,
		Format:              cfg.LogFormat,
		Debug:               cfg.Debug(),
		IncludeCaller:       true,
		IncludeStackOnError: cfg.Debug(),
	}
}

func tracingConfig(cfg Config) tracing.Config {
	return tracing.Config{
		Enabled:          cfg.ExportEnabled,
		ServiceName:      cfg.ServiceName,
		ServiceVersion:   cfg.Version,
		Environment:      cfg.Environment,
		ExporterEndpoint: cfg.ExporterEndpoint,
		ExporterProtocol: cfg.ExporterProtocol,
		SamplingRatio:    cfg.SamplingRatio,
	}
}

func metricsConfig(cfg Config) metrics.Config {
	return metrics.Config{
		Enabled:          cfg.ExportEnabled,
		ExporterEndpoint: cfg.ExporterEndpoint,
		ExporterProtocol: cfg.ExporterProtocol,
		ServiceName:      cfg.ServiceName,
		Namespace:        cfg.MetricsNamespace,
	}
}
