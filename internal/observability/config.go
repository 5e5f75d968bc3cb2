package observability

import (
	"strings"

	"github.com/smallbiznis/estimator/internal/config"
)

const (
	defaultServiceName   = "estimator"
	defaultSamplingRatio = 0.1
)

// Config is the observability view of the application config.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	ExportEnabled    bool
	ExporterEndpoint string
	ExporterProtocol string
	SamplingRatio    float64

	// MetricsNamespace prefixes the estimate lifecycle instruments.
	MetricsNamespace string
}

func LoadConfig(cfg config.Config) Config {
	serviceName := strings.TrimSpace(cfg.AppName)
	if serviceName == "" {
		serviceName = defaultServiceName
	}
	namespace := strings.TrimSpace(cfg.MetricsNamespace)
	if namespace == "" {
		namespace = serviceName
	}
	ratio := cfg.OTelSamplingRatio
	if ratio < 0 || ratio > 1 {
		ratio = defaultSamplingRatio
	}
	endpoint := strings.TrimSpace(cfg.OTLPEndpoint)

	return Config{
		ServiceName:      serviceName,
		Environment:      strings.TrimSpace(cfg.Environment),
		Version:          strings.TrimSpace(cfg.AppVersion),
		LogLevel:         normalize(cfg.LogLevel, "info"),
		LogFormat:        normalize(cfg.LogFormat, "json"),
		ExportEnabled:    cfg.OTelEnabled,
		ExporterEndpoint: endpoint,
		ExporterProtocol: normalize(cfg.OTLPProtocol, "grpc"),
		SamplingRatio:    ratio,
		MetricsNamespace: namespace,
	}
}

// Debug is on for debug logging and for local environments.
func (c Config) Debug() bool {
	if c.LogLevel == "debug" {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

func normalize(value, def string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return def
	}
	return value
}
