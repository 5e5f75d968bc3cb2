package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	FindByEmployer(ctx context.Context, db *gorm.DB, employerID string) (*Estimate, error)
	Insert(ctx context.Context, db *gorm.DB, estimate *Estimate) error
	Update(ctx context.Context, db *gorm.DB, estimate *Estimate) error
	ListBlockers(ctx context.Context, db *gorm.DB, estimateID string) ([]Blocker, error)
	// ReplaceBlockers deletes every blocker of the estimate and inserts
	// reasons in order. Callers run it inside a transaction.
	ReplaceBlockers(ctx context.Context, db *gorm.DB, estimateID string, reasons []string, now time.Time) error
}
