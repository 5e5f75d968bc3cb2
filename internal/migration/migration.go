package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	catalogdomain "github.com/smallbiznis/estimator/internal/catalog/domain"
	estimatedomain "github.com/smallbiznis/estimator/internal/estimate/domain"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

const migrationsDir = "migrations"

// Models lists every persisted model, in dependency order.
func Models() []any {
	return []any{
		&catalogdomain.Provider{},
		&catalogdomain.Plan{},
		&catalogdomain.OptionGroup{},
		&catalogdomain.OptionValue{},
		&catalogdomain.Addon{},
		&estimatedomain.Estimate{},
		&estimatedomain.Blocker{},
	}
}

// Run applies the schema. Postgres uses the versioned SQL migrations; other
// dialects are created with AutoMigrate from the models.
func Run(conn *gorm.DB, dbType string) error {
	if conn == nil {
		return errors.New("migration database handle is required")
	}

	switch strings.ToLower(strings.TrimSpace(dbType)) {
	case "postgres":
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	default:
		return AutoMigrate(conn)
	}
}

func AutoMigrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Closing the migrator would close the shared *sql.DB.

	return nil
}
