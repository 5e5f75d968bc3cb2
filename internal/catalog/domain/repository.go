package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	ListProviders(ctx context.Context, db *gorm.DB) ([]Provider, error)
	ListPlansByProvider(ctx context.Context, db *gorm.DB, providerID string) ([]Plan, error)
	FindPlan(ctx context.Context, db *gorm.DB, id string) (*Plan, error)
	FirstPlan(ctx context.Context, db *gorm.DB) (*Plan, error)
	ListOptionGroups(ctx context.Context, db *gorm.DB, planID string) ([]OptionGroup, error)
	ListOptionValues(ctx context.Context, db *gorm.DB, groupIDs ...string) ([]OptionValue, error)
	FindOptionValue(ctx context.Context, db *gorm.DB, groupID, value string) (*OptionValue, error)
	ListAddons(ctx context.Context, db *gorm.DB, planID string) ([]Addon, error)
	ListAddonsByIDs(ctx context.Context, db *gorm.DB, planID string, ids []string) ([]Addon, error)
}
