package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	DefaultEmployerID  string
	DefaultPlanID      string
	CORSAllowedOrigins []string
	SeedOnStartup      bool
	PricingConfigPath  string

	LogLevel          string
	LogFormat         string
	OTLPEndpoint      string
	OTLPProtocol      string
	OTelEnabled       bool
	OTelSamplingRatio float64
	MetricsNamespace  string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBPath            string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewPricingPolicyHolder),
)

const (
	DefaultEmployerID = "employer_demo"
	DefaultPlanID     = "plan_a_standard"
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	otlpEndpoint := strings.TrimSpace(getenv("OTEL_EXPORTER_OTLP_ENDPOINT", getenv("OTLP_ENDPOINT", "")))

	return Config{
		AppName:            getenv("APP_SERVICE", "estimator"),
		AppVersion:         getenv("APP_VERSION", "0.1.0"),
		Environment:        getenv("ENVIRONMENT", "development"),
		HTTPAddr:           getenv("HTTP_ADDR", ":3002"),
		DefaultEmployerID:  strings.TrimSpace(getenv("DEFAULT_EMPLOYER_ID", DefaultEmployerID)),
		DefaultPlanID:      strings.TrimSpace(getenv("DEFAULT_PLAN_ID", DefaultPlanID)),
		CORSAllowedOrigins: parseList(getenv("CORS_ALLOWED_ORIGINS", "*")),
		SeedOnStartup:      getenvBool("SEED_ON_STARTUP", true),
		PricingConfigPath:  strings.TrimSpace(getenv("PRICING_CONFIG_PATH", "")),
		LogLevel:           getenv("LOG_LEVEL", "info"),
		LogFormat:          getenv("LOG_FORMAT", "json"),
		OTLPEndpoint:       otlpEndpoint,
		OTLPProtocol:       getenv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"),
		OTelEnabled:        getenvBool("OTEL_ENABLED", otlpEndpoint != ""),
		OTelSamplingRatio:  getenvFloat("OTEL_SAMPLING_RATIO", 0.1),
		MetricsNamespace:   strings.TrimSpace(getenv("METRICS_NAMESPACE", "estimator")),
		DBType:             strings.ToLower(getenv("DATABASE_TYPE", "sqlite")),
		DBHost:             getenv("DATABASE_HOST", "localhost"),
		DBPort:             getenv("DATABASE_PORT", "5432"),
		DBName:             getenv("DATABASE_NAME", "estimator"),
		DBUser:             getenv("DATABASE_USER", "postgres"),
		DBPassword:         getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:          getenv("DATABASE_SSLMODE", "disable"),
		DBPath:             getenv("DATABASE_PATH", ".data/dev.db"),
		DBMaxIdleConn:      getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:      getenvInt("DATABASE_MAX_OPEN_CONN", 20),
		DBConnMaxLifetime:  getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),
		DBConnMaxIdleTime:  getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 60),
		RedisAddr:          strings.TrimSpace(getenv("REDIS_ADDR", "")),
		RedisPassword:      getenv("REDIS_PASSWORD", ""),
		RedisDB:            getenvInt("REDIS_DB", 0),
	}
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
