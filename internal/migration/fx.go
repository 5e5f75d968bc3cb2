package migration

import (
	"context"

	"github.com/smallbiznis/estimator/internal/config"
	"github.com/smallbiznis/estimator/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
		if err := Run(conn, cfg.DBType); err != nil {
			return err
		}
		if !cfg.SeedOnStartup {
			return nil
		}

		seeded, err := seed.Catalog(context.Background(), conn)
		if err != nil {
			return err
		}
		if seeded {
			log.Named("migrations").Info("seeded demo catalog")
		}
		return nil
	}),
)
