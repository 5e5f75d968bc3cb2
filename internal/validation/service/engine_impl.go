package service

import (
	"context"

	catalogdomain "github.com/smallbiznis/estimator/internal/catalog/domain"
	"github.com/smallbiznis/estimator/internal/config"
	pricingdomain "github.com/smallbiznis/estimator/internal/pricing/domain"
	validationdomain "github.com/smallbiznis/estimator/internal/validation/domain"
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

func New(p Params) validationdomain.Engine {
	return &Engine{
		log:    p.Log.Named("validation.engine"),
		reader: p.Reader,
		policy: p.Policy,
	}
}

// Validate checks selections against the plan's option groups and add-ons.
// Unknown selection keys are ignored. Errors are returned only when the
// catalog cannot be read.
func (e *Engine) Validate(ctx context.Context, planID string, selections pricingdomain.Selections) (validationdomain.Result, error) {
	plan, err := e.reader.GetPlan(ctx, planID)
	if err != nil {
		return validationdomain.Result{}, err
	}
	if plan == nil {
		return validationdomain.Result{
			IsValid:  false,
			Blockers: []string{validationdomain.PlanNotFound(planID)},
		}, nil
	}

	enforceCurrency := e.policy.Get().EnforceCurrency
	blockers := []string{}

	groups, err := e.reader.ListOptionGroups(ctx, plan.ID)
	if err != nil {
		return validationdomain.Result{}, err
	}
	for _, group := range groups {
		value, ok := selections.Value(group.Code)
		if !ok {
			if group.Required {
				blockers = append(blockers, validationdomain.MissingRequiredField(group.Code))
			}
			continue
		}
		optionValue, err := e.reader.FindOptionValue(ctx, group.ID, value)
		if err != nil {
			return validationdomain.Result{}, err
		}
		if optionValue == nil {
			blockers = append(blockers, validationdomain.InvalidValue(group.Code, value))
			continue
		}
		if enforceCurrency && optionValue.Currency != nil && *optionValue.Currency != plan.Currency {
			mismatch := &pricingdomain.CurrencyMismatchError{
				ItemID:       "option " + group.Code + "=" + value,
				Currency:     *optionValue.Currency,
				PlanCurrency: plan.Currency,
			}
			blockers = append(blockers, mismatch.Error())
		}
	}

	if ids := selections.AddonIDs(); len(ids) > 0 {
		addons, err := e.reader.ListAddons(ctx, plan.ID, ids)
		if err != nil {
			return validationdomain.Result{}, err
		}
		known := make(map[string]catalogdomain.Addon, len(addons))
		for _, addon := range addons {
			known[addon.ID] = addon
		}

		invalid := []string{}
		for _, id := range ids {
			if _, ok := known[id]; !ok {
				invalid = append(invalid, id)
			}
		}
		if len(invalid) > 0 {
			blockers = append(blockers, validationdomain.InvalidAddons(invalid))
		}

		if enforceCurrency {
			for _, addon := range addons {
				if addon.Currency == plan.Currency {
					continue
				}
				mismatch := &pricingdomain.CurrencyMismatchError{
					ItemID:       "add-on " + addon.ID,
					Currency:     addon.Currency,
					PlanCurrency: plan.Currency,
				}
				blockers = append(blockers, mismatch.Error())
			}
		}
	}

	return validationdomain.Result{
		IsValid:  len(blockers) == 0,
		Blockers: blockers,
	}, nil
}
