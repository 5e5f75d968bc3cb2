package repository

import (
	"context"

	catalogdomain "github.com/smallbiznis/estimator/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() catalogdomain.Repository {
	return &repo{}
}

func (r *repo) ListProviders(ctx context.Context, db *gorm.DB) ([]catalogdomain.Provider, error) {
	var items []catalogdomain.Provider
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, location, logo_url FROM providers ORDER BY id ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListPlansByProvider(ctx context.Context, db *gorm.DB, providerID string) ([]catalogdomain.Plan, error) {
	var items []catalogdomain.Plan
	err := db.WithContext(ctx).Raw(
		`SELECT id, provider_id, name, description, base_price_cents, currency,
		 approval_type, min_participants, lead_time_days
		 FROM plans WHERE provider_id = ? ORDER BY id ASC`,
		providerID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindPlan(ctx context.Context, db *gorm.DB, id string) (*catalogdomain.Plan, error) {
	var p catalogdomain.Plan
	err := db.WithContext(ctx).Raw(
		`SELECT id, provider_id, name, description, base_price_cents, currency,
		 approval_type, min_participants, lead_time_days
		 FROM plans WHERE id = ?`,
		id,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == "" {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) FirstPlan(ctx context.Context, db *gorm.DB) (*catalogdomain.Plan, error) {
	var p catalogdomain.Plan
	err := db.WithContext(ctx).Raw(
		`SELECT id, provider_id, name, description, base_price_cents, currency,
		 approval_type, min_participants, lead_time_days
		 FROM plans ORDER BY id ASC LIMIT 1`,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == "" {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) ListOptionGroups(ctx context.Context, db *gorm.DB, planID string) ([]catalogdomain.OptionGroup, error) {
	var items []catalogdomain.OptionGroup
	err := db.WithContext(ctx).Raw(
		`SELECT id, plan_id, code, description, required, position
		 FROM plan_option_groups WHERE plan_id = ? ORDER BY position ASC, id ASC`,
		planID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListOptionValues(ctx context.Context, db *gorm.DB, groupIDs ...string) ([]catalogdomain.OptionValue, error) {
	if len(groupIDs) == 0 {
		return []catalogdomain.OptionValue{}, nil
	}
	var items []catalogdomain.OptionValue
	err := db.WithContext(ctx).Raw(
		`SELECT id, option_group_id, value, price_cents, currency, position
		 FROM plan_option_values WHERE option_group_id IN ?
		 ORDER BY option_group_id ASC, position ASC, id ASC`,
		groupIDs,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindOptionValue(ctx context.Context, db *gorm.DB, groupID, value string) (*catalogdomain.OptionValue, error) {
	var v catalogdomain.OptionValue
	err := db.WithContext(ctx).Raw(
		`SELECT id, option_group_id, value, price_cents, currency, position
		 FROM plan_option_values WHERE option_group_id = ? AND value = ?
		 ORDER BY position ASC, id ASC LIMIT 1`,
		groupID,
		value,
	).Scan(&v).Error
	if err != nil {
		return nil, err
	}
	if v.ID == "" {
		return nil, nil
	}
	return &v, nil
}

func (r *repo) ListAddons(ctx context.Context, db *gorm.DB, planID string) ([]catalogdomain.Addon, error) {
	var items []catalogdomain.Addon
	err := db.WithContext(ctx).Raw(
		`SELECT id, plan_id, name, price_cents, currency
		 FROM plan_addons WHERE plan_id = ? ORDER BY id ASC`,
		planID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListAddonsByIDs(ctx context.Context, db *gorm.DB, planID string, ids []string) ([]catalogdomain.Addon, error) {
	if len(ids) == 0 {
		return []catalogdomain.Addon{}, nil
	}
	var items []catalogdomain.Addon
	err := db.WithContext(ctx).Raw(
		`SELECT id, plan_id, name, price_cents, currency
		 FROM plan_addons WHERE plan_id = ? AND id IN ? ORDER BY id ASC`,
		planID,
		ids,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
