package service

import (
	"context"
	"testing"

	catalogdomain "github.com/smallbiznis/estimator/internal/catalog/domain"
	"github.com/smallbiznis/estimator/internal/catalog/repository"
	"github.com/smallbiznis/estimator/internal/config"
	"github.com/smallbiznis/estimator/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(db *gorm.DB, defaultPlanID string) catalogdomain.Service {
	return New(Params{
		DB:     db,
		Log:    zap.NewNop(),
		Config: config.Config{DefaultPlanID: defaultPlanID},
		Repo:   repository.Provide(),
	})
}

func TestListProviders(t *testing.T) {
	svc := newTestService(testdb.OpenSeeded(t), config.DefaultPlanID)

	resp, err := svc.ListProviders(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Items, 4)

	byID := map[string]catalogdomain.ProviderResponse{}
	for _, p := range resp.Items {
		byID[p.ID] = p
	}
	assert.Equal(t, "Berlin", byID["prov_a"].Location)
	require.NotNil(t, byID["prov_a"].LogoURL)
	assert.Equal(t, "https://example.com/logos/venue-a.svg", *byID["prov_a"].LogoURL)
	assert.Equal(t, "", byID["prov_legacy"].Location)
	assert.Nil(t, byID["prov_legacy"].LogoURL)
}

func TestListPlansIncludesOptionsAndAddons(t *testing.T) {
	svc := newTestService(testdb.OpenSeeded(t), config.DefaultPlanID)

	resp, err := svc.ListPlans(context.Background(), "prov_a")
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)

	premium := resp.Items[0]
	assert.Equal(t, "plan_a_premium", premium.ID)
	assert.Equal(t, catalogdomain.ApprovalManagerReview, premium.ApprovalType)
	assert.Equal(t, int64(70000), premium.BasePriceCents)
	require.Len(t, premium.Options, 2)
	assert.Equal(t, "seating_type", premium.Options[0].Code)
	assert.True(t, premium.Options[0].Required)
	assert.Equal(t, []string{"open", "reserved"}, premium.Options[0].Values)
	assert.Equal(t, []string{"none", "light", "full"}, premium.Options[1].Values)
	require.Len(t, premium.Addons, 2)
	assert.Equal(t, "addon_av", premium.Addons[0].ID)
	assert.Equal(t, int64(15000), premium.Addons[0].PriceCents)

	standard := resp.Items[1]
	assert.Equal(t, "plan_a_standard", standard.ID)
	assert.Empty(t, standard.Options)
	assert.NotNil(t, standard.Options)
	assert.NotNil(t, standard.Addons)
}

func TestListPlansNullDescription(t *testing.T) {
	svc := newTestService(testdb.OpenSeeded(t), config.DefaultPlanID)

	resp, err := svc.ListPlans(context.Background(), "prov_legacy")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	require.Len(t, resp.Items[0].Options, 1)
	assert.Nil(t, resp.Items[0].Options[0].Description)
	assert.Equal(t, []string{"tier_3"}, resp.Items[0].Options[0].Values)
}

func TestListPlansRequiresProvider(t *testing.T) {
	svc := newTestService(testdb.OpenSeeded(t), config.DefaultPlanID)

	_, err := svc.ListPlans(context.Background(), "  ")
	assert.ErrorIs(t, err, catalogdomain.ErrInvalidProvider)

	resp, err := svc.ListPlans(context.Background(), "prov_unknown")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestDefaultPlan(t *testing.T) {
	db := testdb.OpenSeeded(t)

	plan, err := newTestService(db, "plan_b_flex").DefaultPlan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "plan_b_flex", plan.ID)

	plan, err = newTestService(db, "plan_gone").DefaultPlan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "plan_a_premium", plan.ID)
}

func TestDefaultPlanEmptyCatalog(t *testing.T) {
	_, err := newTestService(testdb.Open(t), config.DefaultPlanID).DefaultPlan(context.Background())
	assert.ErrorIs(t, err, catalogdomain.ErrNoPlans)
}

func TestDBReaderFiltersAddonsByPlan(t *testing.T) {
	reader := NewDBReader(testdb.OpenSeeded(t), repository.Provide())
	ctx := context.Background()

	addons, err := reader.ListAddons(ctx, "plan_a_premium", []string{"addon_photo", "addon_host", "nope", "addon_av"})
	require.NoError(t, err)
	require.Len(t, addons, 2)
	assert.Equal(t, "addon_av", addons[0].ID)
	assert.Equal(t, "addon_photo", addons[1].ID)

	addons, err = reader.ListAddons(ctx, "plan_a_premium", nil)
	require.NoError(t, err)
	assert.Empty(t, addons)

	plan, err := reader.GetPlan(ctx, "plan_missing")
	require.NoError(t, err)
	assert.Nil(t, plan)

	value, err := reader.FindOptionValue(ctx, "opt_grp_b_flex_date", "7")
	require.NoError(t, err)
	require.NotNil(t, value)
	require.NotNil(t, value.PriceCents)
	assert.Equal(t, int64(2000), *value.PriceCents)

	value, err = reader.FindOptionValue(ctx, "opt_grp_b_flex_date", "14")
	require.NoError(t, err)
	assert.Nil(t, value)
}
