// Package testdb opens migrated, seeded in-memory databases for tests.
package testdb

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/smallbiznis/estimator/internal/migration"
	"github.com/smallbiznis/estimator/internal/seed"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open returns an empty migrated database private to the test.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	// The in-memory database lives only while a connection is open.
	sqlDB.SetMaxIdleConns(4)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := migration.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

// OpenSeeded returns a migrated database holding the demo catalog.
func OpenSeeded(t testing.TB) *gorm.DB {
	t.Helper()

	db := Open(t)
	if _, err := seed.Catalog(context.Background(), db); err != nil {
		t.Fatalf("failed to seed database: %v", err)
	}
	return db
}
