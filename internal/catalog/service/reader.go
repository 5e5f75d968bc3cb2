package service

import (
	"context"
	"strings"
	"time"

	catalogdomain "github.com/smallbiznis/estimator/internal/catalog/domain"
	"github.com/smallbiznis/estimator/internal/config"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type ReaderParams struct {
	fx.In

	DB     *gorm.DB
	Repo   catalogdomain.Repository
	Policy *config.PricingPolicyHolder
}

// NewReader provides the catalog Reader, cached for the policy's
// catalog_cache_ttl.
func NewReader(p ReaderParams) catalogdomain.Reader {
	return NewCachedReader(NewDBReader(p.DB, p.Repo), func() time.Duration {
		return p.Policy.Get().CatalogCacheTTL
	})
}

type dbReader struct {
	db   *gorm.DB
	repo catalogdomain.Repository
}

func NewDBReader(db *gorm.DB, repo catalogdomain.Repository) catalogdomain.Reader {
	return &dbReader{db: db, repo: repo}
}

func (r *dbReader) GetPlan(ctx context.Context, id string) (*catalogdomain.Plan, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	return r.repo.FindPlan(ctx, r.db, id)
}

func (r *dbReader) ListOptionGroups(ctx context.Context, planID string) ([]catalogdomain.OptionGroup, error) {
	return r.repo.ListOptionGroups(ctx, r.db, planID)
}

func (r *dbReader) ListOptionValues(ctx context.Context, groupID string) ([]catalogdomain.OptionValue, error) {
	return r.repo.ListOptionValues(ctx, r.db, groupID)
}

func (r *dbReader) FindOptionValue(ctx context.Context, groupID, value string) (*catalogdomain.OptionValue, error) {
	return r.repo.FindOptionValue(ctx, r.db, groupID, value)
}

func (r *dbReader) ListAddons(ctx context.Context, planID string, ids []string) ([]catalogdomain.Addon, error) {
	if len(ids) == 0 {
		return []catalogdomain.Addon{}, nil
	}
	return r.repo.ListAddonsByIDs(ctx, r.db, planID, ids)
}

func (r *dbReader) ListPlanAddons(ctx context.Context, planID string) ([]catalogdomain.Addon, error) {
	return r.repo.ListAddons(ctx, r.db, planID)
}
