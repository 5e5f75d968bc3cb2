package seed

import (
	"context"
	"errors"
	"time"

	catalogdomain "github.com/smallbiznis/estimator/internal/catalog/domain"
	"github.com/smallbiznis/estimator/internal/config"
	estimatedomain "github.com/smallbiznis/estimator/internal/estimate/domain"
	pricingdomain "github.com/smallbiznis/estimator/internal/pricing/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DemoEstimateID = "est_demo"
	currencyEUR    = "EUR"
)

// Catalog seeds the demo providers, plans, options, add-ons and the starter
// estimate. It does nothing when providers already exist and reports whether
// rows were written.
func Catalog(ctx context.Context, db *gorm.DB) (bool, error) {
	if db == nil {
		return false, errors.New("seed database handle is required")
	}

	seeded := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&catalogdomain.Provider{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		if err := tx.Create(providers()).Error; err != nil {
			return err
		}
		if err := tx.Create(plans()).Error; err != nil {
			return err
		}
		groups, values := options()
		if err := tx.Create(groups).Error; err != nil {
			return err
		}
		if err := tx.Create(values).Error; err != nil {
			return err
		}
		if err := tx.Create(addons()).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		demo := &estimatedomain.Estimate{
			ID:         DemoEstimateID,
			EmployerID: config.DefaultEmployerID,
			PlanID:     "plan_a_standard",
			Status:     estimatedomain.StatusDraft,
			Selections: datatypes.NewJSONType(pricingdomain.Selections{
				Addons:  []string{},
				Options: map[string]string{},
			}),
			Pricing: datatypes.NewJSONType(pricingdomain.Pricing{
				Base:     50000,
				Addons:   0,
				Total:    50000,
				Currency: currencyEUR,
			}),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(demo).Error; err != nil {
			return err
		}

		seeded = true
		return nil
	})
	return seeded, err
}

func providers() []catalogdomain.Provider {
	return []catalogdomain.Provider{
		{ID: "prov_a", Name: "Venue A", Location: "Berlin", LogoURL: ptr("https://example.com/logos/venue-a.svg")},
		{ID: "prov_b", Name: "Venue B", Location: "Munich", LogoURL: ptr("https://example.com/logos/venue-b.svg")},
		{ID: "prov_c", Name: "Venue C", Location: "Hamburg", LogoURL: ptr("https://example.com/logos/venue-c.svg")},
		// Legacy provider with missing location and logo.
		{ID: "prov_legacy", Name: "Legacy Events Ltd", Location: "", LogoURL: nil},
	}
}

func plans() []catalogdomain.Plan {
	return []catalogdomain.Plan{
		{
			ID:              "plan_a_standard",
			ProviderID:      "prov_a",
			Name:            "Venue A - Standard",
			Description:     "Simple package with no options or add-ons",
			BasePriceCents:  50000,
			Currency:        currencyEUR,
			ApprovalType:    catalogdomain.ApprovalNone,
			MinParticipants: 25,
			LeadTimeDays:    14,
		},
		{
			ID:              "plan_a_premium",
			ProviderID:      "prov_a",
			Name:            "Venue A - Premium",
			Description:     "Premium package with seating and food options, plus add-ons",
			BasePriceCents:  70000,
			Currency:        currencyEUR,
			ApprovalType:    catalogdomain.ApprovalManagerReview,
			MinParticipants: 30,
			LeadTimeDays:    21,
		},
		{
			ID:              "plan_b_essentials",
			ProviderID:      "prov_b",
			Name:            "Venue B - Essentials",
			Description:     "Essential package with required seating type selection",
			BasePriceCents:  45000,
			Currency:        currencyEUR,
			ApprovalType:    catalogdomain.ApprovalNone,
			MinParticipants: 20,
			LeadTimeDays:    10,
		},
		{
			ID:              "plan_b_flex",
			ProviderID:      "prov_b",
			Name:            "Venue B - Flex",
			Description:     "Flexible package with seating and date flexibility options",
			BasePriceCents:  55000,
			Currency:        currencyEUR,
			ApprovalType:    catalogdomain.ApprovalNone,
			MinParticipants: 25,
			LeadTimeDays:    7,
		},
		{
			ID:              "plan_c_corporate",
			ProviderID:      "prov_c",
			Name:            "Venue C - Corporate",
			Description:     "Corporate package with food options and premium add-ons",
			BasePriceCents:  80000,
			Currency:        currencyEUR,
			ApprovalType:    catalogdomain.ApprovalManagerReview,
			MinParticipants: 40,
			LeadTimeDays:    28,
		},
		{
			ID:              "plan_legacy_basic",
			ProviderID:      "prov_legacy",
			Name:            "Legacy Basic Package",
			Description:     "Basic package with legacy configuration options",
			BasePriceCents:  35000,
			Currency:        currencyEUR,
			ApprovalType:    catalogdomain.ApprovalNone,
			MinParticipants: 15,
			LeadTimeDays:    5,
		},
	}
}

type valueDef struct {
	suffix string
	value  string
	delta  *int64
}

type groupDef struct {
	id          string
	planID      string
	code        string
	description *string
	required    bool
	values      []valueDef
}

func options() ([]catalogdomain.OptionGroup, []catalogdomain.OptionValue) {
	seating := ptr("Choose your seating arrangement")
	food := ptr("Select food package")

	defs := []groupDef{
		{"opt_grp_a_prem_seating", "plan_a_premium", "seating_type", seating, true, []valueDef{
			{"open", "open", nil}, {"reserved", "reserved", cents(5000)},
		}},
		{"opt_grp_a_prem_food", "plan_a_premium", "food_package", food, false, []valueDef{
			{"none", "none", nil}, {"light", "light", cents(10000)}, {"full", "full", cents(20000)},
		}},
		{"opt_grp_b_ess_seating", "plan_b_essentials", "seating_type", seating, true, []valueDef{
			{"open", "open", nil}, {"reserved", "reserved", cents(3000)},
		}},
		{"opt_grp_b_flex_seating", "plan_b_flex", "seating_type", seating, true, []valueDef{
			{"open", "open", nil}, {"reserved", "reserved", cents(4000)},
		}},
		{"opt_grp_b_flex_date", "plan_b_flex", "date_flex_window_days", ptr("Date flexibility window"), false, []valueDef{
			{"0", "0", nil}, {"7", "7", cents(2000)}, {"30", "30", cents(5000)},
		}},
		{"opt_grp_c_corp_food", "plan_c_corporate", "food_package", food, false, []valueDef{
			{"none", "none", nil}, {"light", "light", cents(12000)}, {"full", "full", cents(25000)},
		}},
		{"opt_grp_c_priority", "plan_c_corporate", "priority_level", ptr("Service priority level"), false, []valueDef{
			{"1", "1", nil}, {"2", "2", cents(5000)}, {"3", "3", cents(10000)},
		}},
		// Required group on a legacy plan with a single allowed value.
		{"opt_grp_legacy_license", "plan_legacy_basic", "catering_license_tier", nil, true, []valueDef{
			{"t3", "tier_3", nil},
		}},
	}

	planPosition := map[string]int{}
	groups := make([]catalogdomain.OptionGroup, 0, len(defs))
	values := []catalogdomain.OptionValue{}
	for _, def := range defs {
		groups = append(groups, catalogdomain.OptionGroup{
			ID:          def.id,
			PlanID:      def.planID,
			Code:        def.code,
			Description: def.description,
			Required:    def.required,
			Position:    planPosition[def.planID],
		})
		planPosition[def.planID]++

		prefix := "opt_val_" + def.id[len("opt_grp_"):] + "_"
		for i, v := range def.values {
			ov := catalogdomain.OptionValue{
				ID:            prefix + v.suffix,
				OptionGroupID: def.id,
				Value:         v.value,
				PriceCents:    v.delta,
				Position:      i,
			}
			if v.delta != nil {
				ov.Currency = ptr(currencyEUR)
			}
			values = append(values, ov)
		}
	}
	return groups, values
}

func addons() []catalogdomain.Addon {
	return []catalogdomain.Addon{
		{ID: "addon_av", PlanID: "plan_a_premium", Name: "Extra AV", PriceCents: 15000, Currency: currencyEUR},
		{ID: "addon_photo", PlanID: "plan_a_premium", Name: "Photography", PriceCents: 8000, Currency: currencyEUR},
		{ID: "addon_host", PlanID: "plan_b_flex", Name: "VIP host", PriceCents: 5000, Currency: currencyEUR},
		{ID: "addon_av_corp", PlanID: "plan_c_corporate", Name: "Extra AV", PriceCents: 18000, Currency: currencyEUR},
		{ID: "addon_host_corp", PlanID: "plan_c_corporate", Name: "VIP host", PriceCents: 10000, Currency: currencyEUR},
		{ID: "addon_free_wifi", PlanID: "plan_legacy_basic", Name: "Complimentary WiFi", PriceCents: 0, Currency: currencyEUR},
	}
}

func ptr[T any](v T) *T { return &v }

func cents(v int64) *int64 { return &v }
