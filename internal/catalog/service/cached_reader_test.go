package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	catalogdomain "github.com/smallbiznis/estimator/internal/catalog/domain"
	"github.com/smallbiznis/estimator/internal/catalog/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedTTL(d time.Duration) func() time.Duration {
	return func() time.Duration { return d }
}

func TestCachedReaderMemoisesPlan(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mocks.NewMockReader(ctrl)
	inner.EXPECT().GetPlan(gomock.Any(), "plan_a_premium").
		Return(&catalogdomain.Plan{ID: "plan_a_premium", BasePriceCents: 70000}, nil).
		Times(1)

	reader := NewCachedReader(inner, fixedTTL(time.Minute))
	for i := 0; i < 3; i++ {
		plan, err := reader.GetPlan(context.Background(), "plan_a_premium")
		require.NoError(t, err)
		assert.Equal(t, int64(70000), plan.BasePriceCents)
	}
}

func TestCachedReaderDoesNotCacheMissingPlan(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mocks.NewMockReader(ctrl)
	inner.EXPECT().GetPlan(gomock.Any(), "plan_missing").Return(nil, nil).Times(2)

	reader := NewCachedReader(inner, fixedTTL(time.Minute))
	for i := 0; i < 2; i++ {
		plan, err := reader.GetPlan(context.Background(), "plan_missing")
		require.NoError(t, err)
		assert.Nil(t, plan)
	}
}

func TestCachedReaderServesValuesAndAddonsFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	delta := int64(5000)
	inner := mocks.NewMockReader(ctrl)
	inner.EXPECT().ListOptionValues(gomock.Any(), "opt_grp_a_prem_seating").Return([]catalogdomain.OptionValue{
		{ID: "opt_val_a_prem_seating_open", OptionGroupID: "opt_grp_a_prem_seating", Value: "open"},
		{ID: "opt_val_a_prem_seating_reserved", OptionGroupID: "opt_grp_a_prem_seating", Value: "reserved", PriceCents: &delta},
	}, nil).Times(1)
	inner.EXPECT().ListPlanAddons(gomock.Any(), "plan_a_premium").Return([]catalogdomain.Addon{
		{ID: "addon_av", PlanID: "plan_a_premium", PriceCents: 15000},
		{ID: "addon_photo", PlanID: "plan_a_premium", PriceCents: 8000},
	}, nil).Times(1)

	reader := NewCachedReader(inner, fixedTTL(time.Minute))
	ctx := context.Background()

	v, err := reader.FindOptionValue(ctx, "opt_grp_a_prem_seating", "reserved")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, int64(5000), *v.PriceCents)

	v, err = reader.FindOptionValue(ctx, "opt_grp_a_prem_seating", "standing")
	require.NoError(t, err)
	assert.Nil(t, v)

	addons, err := reader.ListAddons(ctx, "plan_a_premium", []string{"addon_photo", "addon_host"})
	require.NoError(t, err)
	require.Len(t, addons, 1)
	assert.Equal(t, "addon_photo", addons[0].ID)

	addons, err = reader.ListAddons(ctx, "plan_a_premium", []string{"addon_av"})
	require.NoError(t, err)
	require.Len(t, addons, 1)
}

func TestCachedReaderBypassesWhenDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mocks.NewMockReader(ctrl)
	inner.EXPECT().ListOptionGroups(gomock.Any(), "plan_b_flex").Return(nil, nil).Times(2)
	inner.EXPECT().ListAddons(gomock.Any(), "plan_b_flex", []string{"addon_host"}).Return(nil, nil).Times(1)

	reader := NewCachedReader(inner, fixedTTL(0))
	ctx := context.Background()
	_, _ = reader.ListOptionGroups(ctx, "plan_b_flex")
	_, _ = reader.ListOptionGroups(ctx, "plan_b_flex")
	_, err := reader.ListAddons(ctx, "plan_b_flex", []string{"addon_host"})
	require.NoError(t, err)
}

func TestCachedReaderPurge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mocks.NewMockReader(ctrl)
	inner.EXPECT().ListOptionGroups(gomock.Any(), "plan_a_premium").
		Return([]catalogdomain.OptionGroup{{ID: "opt_grp_a_prem_seating"}}, nil).
		Times(2)

	reader := NewCachedReader(inner, fixedTTL(time.Minute))
	_, _ = reader.ListOptionGroups(context.Background(), "plan_a_premium")
	reader.Purge()
	groups, err := reader.ListOptionGroups(context.Background(), "plan_a_premium")
	require.NoError(t, err)
	assert.Len(t, groups, 1)
}
