package service

import (
	"context"

	catalogdomain "github.com/smallbiznis/estimator/internal/catalog/domain"
	"github.com/smallbiznis/estimator/internal/config"
	pricingdomain "github.com/smallbiznis/estimator/internal/pricing/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log    *zap.Logger
	Reader catalogdomain.Reader
	Policy *config.PricingPolicyHolder
}

type Engine struct {
	log    *zap.Logger
	reader catalogdomain.Reader
	policy *config.PricingPolicyHolder
}

func New(p Params) pricingdomain.Engine {
	return &Engine{
		log:    p.Log.Named("pricing.engine"),
		reader: p.Reader,
		policy: p.Policy,
	}
}

// Price computes base + add-ons + option deltas for the plan. Add-ons of
// other plans and unknown option values contribute nothing. With currency
// enforcement on, items priced in another currency are left out of the
// totals; validation reports them as blockers.
func (e *Engine) Price(ctx context.Context, planID string, selections pricingdomain.Selections) (pricingdomain.Pricing, error) {
	plan, err := e.reader.GetPlan(ctx, planID)
	if err != nil {
		return pricingdomain.Pricing{}, err
	}
	if plan == nil {
		return pricingdomain.Pricing{}, &pricingdomain.PlanNotFoundError{PlanID: planID}
	}

	enforceCurrency := e.policy.Get().EnforceCurrency

	var addonsTotal int64
	if ids := selections.AddonIDs(); len(ids) > 0 {
		addons, err := e.reader.ListAddons(ctx, plan.ID, ids)
		if err != nil {
			return pricingdomain.Pricing{}, err
		}
		for _, addon := range addons {
			if enforceCurrency && addon.Currency != plan.Currency {
				e.log.Debug("skipping add-on in foreign currency",
					zap.String("plan_id", plan.ID),
					zap.String("addon_id", addon.ID),
					zap.String("currency", addon.Currency),
				)
				continue
			}
			addonsTotal += addon.PriceCents
		}
	}

	groups, err := e.reader.ListOptionGroups(ctx, plan.ID)
	if err != nil {
		return pricingdomain.Pricing{}, err
	}

	var deltas int64
	for _, group := range groups {
		value, ok := selections.Value(group.Code)
		if !ok {
			continue
		}
		optionValue, err := e.reader.FindOptionValue(ctx, group.ID, value)
		if err != nil {
			return pricingdomain.Pricing{}, err
		}
		if optionValue == nil || optionValue.PriceCents == nil {
			continue
		}
		if enforceCurrency && optionValue.Currency != nil && *optionValue.Currency != plan.Currency {
			e.log.Debug("skipping option delta in foreign currency",
				zap.String("plan_id", plan.ID),
				zap.String("option", group.Code),
				zap.String("currency", *optionValue.Currency),
			)
			continue
		}
		deltas += *optionValue.PriceCents
	}

	return pricingdomain.Pricing{
		Base:     plan.BasePriceCents,
		Addons:   addonsTotal,
		Total:    plan.BasePriceCents + addonsTotal + deltas,
		Currency: plan.Currency,
	}, nil
}
