package service

import (
	"context"
	"slices"
	"time"

	"github.com/smallbiznis/estimator/internal/cache"
	catalogdomain "github.com/smallbiznis/estimator/internal/catalog/domain"
)

// CachedReader memoises catalog lookups. Misses on a plan are not cached.
type CachedReader struct {
	inner catalogdomain.Reader
	ttl   func() time.Duration

	plans  cache.Cache[string, catalogdomain.Plan]
	groups cache.Cache[string, []catalogdomain.OptionGroup]
	values cache.Cache[string, []catalogdomain.OptionValue]
	addons cache.Cache[string, []catalogdomain.Addon]
}

// NewCachedReader wraps inner. A ttl of zero or less disables caching.
func NewCachedReader(inner catalogdomain.Reader, ttl func() time.Duration) *CachedReader {
	if ttl == nil {
		ttl = func() time.Duration { return 0 }
	}
	return &CachedReader{
		inner:  inner,
		ttl:    ttl,
		plans:  cache.NewTTLCache[string, catalogdomain.Plan](),
		groups: cache.NewTTLCache[string, []catalogdomain.OptionGroup](),
		values: cache.NewTTLCache[string, []catalogdomain.OptionValue](),
		addons: cache.NewTTLCache[string, []catalogdomain.Addon](),
	}
}

func (r *CachedReader) GetPlan(ctx context.Context, id string) (*catalogdomain.Plan, error) {
	ttl := r.ttl()
	if ttl <= 0 {
		return r.inner.GetPlan(ctx, id)
	}
	if plan, ok := r.plans.Get(id); ok {
		return &plan, nil
	}
	plan, err := r.inner.GetPlan(ctx, id)
	if err != nil || plan == nil {
		return plan, err
	}
	r.plans.Set(id, *plan, ttl)
	return plan, nil
}

func (r *CachedReader) ListOptionGroups(ctx context.Context, planID string) ([]catalogdomain.OptionGroup, error) {
	ttl := r.ttl()
	if ttl <= 0 {
		return r.inner.ListOptionGroups(ctx, planID)
	}
	if items, ok := r.groups.Get(planID); ok {
		return slices.Clone(items), nil
	}
	items, err := r.inner.ListOptionGroups(ctx, planID)
	if err != nil {
		return nil, err
	}
	r.groups.Set(planID, slices.Clone(items), ttl)
	return items, nil
}

func (r *CachedReader) ListOptionValues(ctx context.Context, groupID string) ([]catalogdomain.OptionValue, error) {
	ttl := r.ttl()
	if ttl <= 0 {
		return r.inner.ListOptionValues(ctx, groupID)
	}
	if items, ok := r.values.Get(groupID); ok {
		return slices.Clone(items), nil
	}
	items, err := r.inner.ListOptionValues(ctx, groupID)
	if err != nil {
		return nil, err
	}
	r.values.Set(groupID, slices.Clone(items), ttl)
	return items, nil
}

func (r *CachedReader) FindOptionValue(ctx context.Context, groupID, value string) (*catalogdomain.OptionValue, error) {
	if r.ttl() <= 0 {
		return r.inner.FindOptionValue(ctx, groupID, value)
	}
	items, err := r.ListOptionValues(ctx, groupID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Value == value {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (r *CachedReader) ListAddons(ctx context.Context, planID string, ids []string) ([]catalogdomain.Addon, error) {
	if len(ids) == 0 {
		return []catalogdomain.Addon{}, nil
	}
	if r.ttl() <= 0 {
		return r.inner.ListAddons(ctx, planID, ids)
	}
	all, err := r.ListPlanAddons(ctx, planID)
	if err != nil {
		return nil, err
	}
	items := make([]catalogdomain.Addon, 0, len(ids))
	for _, addon := range all {
		if slices.Contains(ids, addon.ID) {
			items = append(items, addon)
		}
	}
	return items, nil
}

func (r *CachedReader) ListPlanAddons(ctx context.Context, planID string) ([]catalogdomain.Addon, error) {
	ttl := r.ttl()
	if ttl <= 0 {
		return r.inner.ListPlanAddons(ctx, planID)
	}
	if items, ok := r.addons.Get(planID); ok {
		return slices.Clone(items), nil
	}
	items, err := r.inner.ListPlanAddons(ctx, planID)
	if err != nil {
		return nil, err
	}
	r.addons.Set(planID, slices.Clone(items), ttl)
	return items, nil
}

// Purge drops every cached entry.
func (r *CachedReader) Purge() {
	r.plans.Purge()
	r.groups.Purge()
	r.values.Purge()
	r.addons.Purge()
}

var _ catalogdomain.Reader = (*CachedReader)(nil)
