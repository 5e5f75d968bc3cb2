package repository

import (
	"context"
	"time"

	estimatedomain "github.com/smallbiznis/estimator/internal/estimate/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() estimatedomain.Repository {
	return &repo{}
}

func (r *repo) FindByEmployer(ctx context.Context, db *gorm.DB, employerID string) (*estimatedomain.Estimate, error) {
	var e estimatedomain.Estimate
	err := db.WithContext(ctx).Raw(
		`SELECT id, employer_id, plan_id, status, selections, pricing,
		 submitted_at, finalised_at, created_at, updated_at
		 FROM estimates WHERE employer_id = ? LIMIT 1`,
		employerID,
	).Scan(&e).Error
	if err != nil {
		return nil, err
	}
	if e.ID == "" {
		return nil, nil
	}
	return &e, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, e *estimatedomain.Estimate) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO estimates (
			id, employer_id, plan_id, status, selections, pricing,
			submitted_at, finalised_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.EmployerID,
		e.PlanID,
		e.Status,
		e.Selections,
		e.Pricing,
		e.SubmittedAt,
		e.FinalisedAt,
		e.CreatedAt,
		e.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, e *estimatedomain.Estimate) error {
	return db.WithContext(ctx).Exec(
		`UPDATE estimates SET
			plan_id = ?, status = ?, selections = ?, pricing = ?,
			submitted_at = ?, finalised_at = ?, updated_at = ?
		 WHERE id = ?`,
		e.PlanID,
		e.Status,
		e.Selections,
		e.Pricing,
		e.SubmittedAt,
		e.FinalisedAt,
		e.UpdatedAt,
		e.ID,
	).Error
}

func (r *repo) ListBlockers(ctx context.Context, db *gorm.DB, estimateID string) ([]estimatedomain.Blocker, error) {
	var items []estimatedomain.Blocker
	err := db.WithContext(ctx).Raw(
		`SELECT id, estimate_id, reason, position, created_at
		 FROM estimate_blockers WHERE estimate_id = ? ORDER BY position ASC`,
		estimateID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ReplaceBlockers(ctx context.Context, db *gorm.DB, estimateID string, reasons []string, now time.Time) error {
	if err := db.WithContext(ctx).Exec(
		`DELETE FROM estimate_blockers WHERE estimate_id = ?`,
		estimateID,
	).Error; err != nil {
		return err
	}

	for i, reason := range reasons {
		if err := db.WithContext(ctx).Exec(
			`INSERT INTO estimate_blockers (id, estimate_id, reason, position, created_at)
			 VALUES (?, ?, ?, ?, ?)`,
			estimatedomain.BlockerID(estimateID, i),
			estimateID,
			reason,
			i,
			now,
		).Error; err != nil {
			return err
		}
	}
	return nil
}
