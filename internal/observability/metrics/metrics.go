package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	// Namespace prefixes instrument names. Defaults to "estimator".
	Namespace string
}

// Metrics exposes estimate lifecycle instruments.
type Metrics struct {
	estimateUpdates       metric.Int64Counter
	estimateFinalisations metric.Int64Counter
	blockers              metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "estimator"
	}
	namespace := strings.TrimSpace(cfg.Namespace)
	if namespace == "" {
		namespace = "estimator"
	}
	meter := provider.Meter(name)

	estimateUpdates, err := meter.Int64Counter(namespace+"_estimate_updates_total",
		metric.WithDescription("Estimate updates by plan."))
	if err != nil {
		return nil, err
	}
	estimateFinalisations, err := meter.Int64Counter(namespace+"_estimate_finalisations_total",
		metric.WithDescription("Finalisation outcomes by plan and status."))
	if err != nil {
		return nil, err
	}
	blockers, err := meter.Int64Counter(namespace+"_blockers_total",
		metric.WithDescription("Blocking reasons produced by estimate updates."))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		estimateUpdates:       estimateUpdates,
		estimateFinalisations: estimateFinalisations,
		blockers:              blockers,
	}, nil
}

// RecordEstimateUpdate counts an estimate update and the blockers it produced.
func (m *Metrics) RecordEstimateUpdate(ctx context.Context, planID string, blockerCount int) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("plan_id", strings.TrimSpace(planID)))
	m.estimateUpdates.Add(ctx, 1, metric.WithAttributes(attrs...))
	if blockerCount > 0 {
		m.blockers.Add(ctx, int64(blockerCount), metric.WithAttributes(attrs...))
	}
}

// RecordFinalisation counts finalisation outcomes by resulting status.
func (m *Metrics) RecordFinalisation(ctx context.Context, planID, status string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("plan_id", strings.TrimSpace(planID)),
		attribute.String("status", strings.TrimSpace(status)),
	)
	m.estimateFinalisations.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"plan_id":     {},
	"status":      {},
	"route":       {},
	"method":      {},
	"status_code": {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
