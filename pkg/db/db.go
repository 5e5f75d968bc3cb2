package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallbiznis/estimator/internal/config"
	"github.com/smallbiznis/estimator/internal/observability/logger"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormprom "gorm.io/plugin/prometheus"
)

var Module = fx.Module("db",
	fx.Provide(FromAppConfig),
	fx.Provide(New),
)

type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config Config
	App    config.Config
	Log    *zap.Logger
}

// New opens the configured database with zap logging, tracing and pool
// metrics attached.
func New(p Params) (*gorm.DB, error) {
	dialector, err := Dialect(p.Config)
	if err != nil {
		return nil, err
	}

	gormCfg := logger.DefaultGormLoggerConfig()
	if !p.App.IsProduction() {
		gormCfg.LogParams = true
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.NewGormLogger(p.Log, gormCfg),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", p.Config.Type, err)
	}

	name := strings.TrimSpace(p.Config.Name)
	if name == "" {
		name = "estimator"
	}
	if err := conn.Use(otelgorm.NewPlugin(otelgorm.WithDBName(name))); err != nil {
		return nil, fmt.Errorf("register otelgorm: %w", err)
	}
	if err := conn.Use(gormprom.New(gormprom.Config{
		DBName:          name,
		RefreshInterval: 15,
	})); err != nil {
		return nil, fmt.Errorf("register gorm prometheus: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	if p.Config.MaxIdleConn > 0 {
		sqlDB.SetMaxIdleConns(p.Config.MaxIdleConn)
	}
	if p.Config.MaxOpenConn > 0 {
		sqlDB.SetMaxOpenConns(p.Config.MaxOpenConn)
	}
	if p.Config.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(p.Config.ConnMaxLifetime)
	}
	if p.Config.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(p.Config.ConnMaxIdleTime)
	}

	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return sqlDB.PingContext(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return sqlDB.Close()
		},
	})

	p.Log.Info("database configured",
		zap.String("type", p.Config.Type),
		zap.String("name", name),
	)
	return conn, nil
}
