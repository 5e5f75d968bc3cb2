package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	catalogdomain "github.com/smallbiznis/estimator/internal/catalog/domain"
	catalogrepository "github.com/smallbiznis/estimator/internal/catalog/repository"
	catalogservice "github.com/smallbiznis/estimator/internal/catalog/service"
	"github.com/smallbiznis/estimator/internal/config"
	pricingdomain "github.com/smallbiznis/estimator/internal/pricing/domain"
	"github.com/smallbiznis/estimator/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T, policy config.PricingPolicy) *Engine {
	t.Helper()
	db := testdb.OpenSeeded(t)
	reader := catalogservice.NewDBReader(db, catalogrepository.Provide())
	return New(Params{
		Log:    zap.NewNop(),
		Reader: reader,
		Policy: config.NewStaticPricingPolicy(policy),
	}).(*Engine)
}

func TestPriceScenarios(t *testing.T) {
	engine := newTestEngine(t, config.DefaultPricingPolicy())
	ctx := context.Background()

	tests := []struct {
		name       string
		planID     string
		selections pricingdomain.Selections
		want       pricingdomain.Pricing
	}{
		{
			name:       "standard plan without options",
			planID:     "plan_a_standard",
			selections: pricingdomain.Selections{Addons: []string{}},
			want:       pricingdomain.Pricing{Base: 50000, Addons: 0, Total: 50000, Currency: "EUR"},
		},
		{
			name:   "premium plan with add-on and priced options",
			planID: "plan_a_premium",
			selections: pricingdomain.Selections{
				Addons:  []string{"addon_av"},
				Options: map[string]string{"seating_type": "reserved", "food_package": "full"},
			},
			want: pricingdomain.Pricing{Base: 70000, Addons: 15000, Total: 110000, Currency: "EUR"},
		},
		{
			name:   "missing required option still prices",
			planID: "plan_a_premium",
			selections: pricingdomain.Selections{
				Addons:  []string{},
				Options: map[string]string{"food_package": "full"},
			},
			want: pricingdomain.Pricing{Base: 70000, Addons: 0, Total: 90000, Currency: "EUR"},
		},
		{
			name:   "flex plan date window delta",
			planID: "plan_b_flex",
			selections: pricingdomain.Selections{
				Addons:  []string{},
				Options: map[string]string{"seating_type": "open", "date_flex_window_days": "30"},
			},
			want: pricingdomain.Pricing{Base: 55000, Addons: 0, Total: 60000, Currency: "EUR"},
		},
		{
			name:   "foreign and unknown add-ons contribute nothing",
			planID: "plan_a_premium",
			selections: pricingdomain.Selections{
				Addons:  []string{"addon_photo", "addon_host", "addon_missing"},
				Options: map[string]string{"seating_type": "open"},
			},
			want: pricingdomain.Pricing{Base: 70000, Addons: 8000, Total: 78000, Currency: "EUR"},
		},
		{
			name:   "unknown option values and keys are ignored",
			planID: "plan_c_corporate",
			selections: pricingdomain.Selections{
				Options: map[string]string{"food_package": "banquet", "priority_level": "3", "colour": "red"},
			},
			want: pricingdomain.Pricing{Base: 80000, Addons: 0, Total: 90000, Currency: "EUR"},
		},
		{
			name:   "zero priced add-on",
			planID: "plan_legacy_basic",
			selections: pricingdomain.Selections{
				Addons:  []string{"addon_free_wifi"},
				Options: map[string]string{"catering_license_tier": "tier_3"},
			},
			want: pricingdomain.Pricing{Base: 35000, Addons: 0, Total: 35000, Currency: "EUR"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Price(ctx, tt.planID, tt.selections)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriceTotalIsSumOfParts(t *testing.T) {
	engine := newTestEngine(t, config.DefaultPricingPolicy())

	got, err := engine.Price(context.Background(), "plan_c_corporate", pricingdomain.Selections{
		Addons:  []string{"addon_av_corp", "addon_host_corp"},
		Options: map[string]string{"food_package": "light", "priority_level": "2"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(28000), got.Addons)
	assert.Equal(t, got.Base+got.Addons+12000+5000, got.Total)
}

func TestPricePlanNotFound(t *testing.T) {
	engine := newTestEngine(t, config.DefaultPricingPolicy())

	_, err := engine.Price(context.Background(), "plan_missing", pricingdomain.Selections{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pricingdomain.ErrPlanNotFound))
	assert.Equal(t, "Plan plan_missing not found", err.Error())
}

type stubReader struct {
	catalogdomain.Reader
	plan   *catalogdomain.Plan
	addons []catalogdomain.Addon
	groups []catalogdomain.OptionGroup
	value  *catalogdomain.OptionValue
}

func (r *stubReader) GetPlan(context.Context, string) (*catalogdomain.Plan, error) {
	return r.plan, nil
}

func (r *stubReader) ListAddons(context.Context, string, []string) ([]catalogdomain.Addon, error) {
	return r.addons, nil
}

func (r *stubReader) ListOptionGroups(context.Context, string) ([]catalogdomain.OptionGroup, error) {
	return r.groups, nil
}

func (r *stubReader) FindOptionValue(context.Context, string, string) (*catalogdomain.OptionValue, error) {
	return r.value, nil
}

func TestPriceEnforceCurrency(t *testing.T) {
	usd := "USD"
	reader := &stubReader{
		plan:   &catalogdomain.Plan{ID: "plan_x", BasePriceCents: 1000, Currency: "EUR"},
		addons: []catalogdomain.Addon{{ID: "addon_usd", PlanID: "plan_x", PriceCents: 500, Currency: "USD"}},
		groups: []catalogdomain.OptionGroup{{ID: "grp_seating", PlanID: "plan_x", Code: "seating_type"}},
		value:  &catalogdomain.OptionValue{ID: "val_reserved", OptionGroupID: "grp_seating", Value: "reserved", PriceCents: cents(300), Currency: &usd},
	}
	sel := pricingdomain.Selections{
		Addons:  []string{"addon_usd"},
		Options: map[string]string{"seating_type": "reserved"},
	}

	permissive := New(Params{Log: zap.NewNop(), Reader: reader, Policy: config.NewStaticPricingPolicy(config.DefaultPricingPolicy())})
	got, err := permissive.Price(context.Background(), "plan_x", sel)
	require.NoError(t, err)
	assert.Equal(t, pricingdomain.Pricing{Base: 1000, Addons: 500, Total: 1800, Currency: "EUR"}, got)

	strict := New(Params{Log: zap.NewNop(), Reader: reader, Policy: config.NewStaticPricingPolicy(config.PricingPolicy{EnforceCurrency: true})})
	got, err = strict.Price(context.Background(), "plan_x", sel)
	require.NoError(t, err)
	assert.Equal(t, pricingdomain.Pricing{Base: 1000, Addons: 0, Total: 1000, Currency: "EUR"}, got)
}

func TestPriceIgnoresNumericOptionValue(t *testing.T) {
	engine := newTestEngine(t, config.DefaultPricingPolicy())

	var sel pricingdomain.Selections
	require.NoError(t, json.Unmarshal([]byte(`{"seating_type":"open","date_flex_window_days":7}`), &sel))

	got, err := engine.Price(context.Background(), "plan_b_flex", sel)
	require.NoError(t, err)
	assert.Equal(t, int64(55000), got.Total)
}

func cents(v int64) *int64 { return &v }
