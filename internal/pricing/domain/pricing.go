package domain

import (
	"context"
	"errors"
	"fmt"
)

// Pricing amounts are integer minor units of Currency.
type Pricing struct {
	Base     int64  `json:"base"`
	Addons   int64  `json:"addons"`
	Total    int64  `json:"total"`
	Currency string `json:"currency"`
}

type Engine interface {
	Price(ctx context.Context, planID string, selections Selections) (Pricing, error)
}

var (
	ErrPlanNotFound     = errors.New("plan_not_found")
	ErrCurrencyMismatch = errors.New("currency_mismatch")
)

type PlanNotFoundError struct {
	PlanID string
}

func (e *PlanNotFoundError) Error() string {
	return fmt.Sprintf("Plan %s not found", e.PlanID)
}

func (e *PlanNotFoundError) Is(target error) bool {
	return target == ErrPlanNotFound
}

// CurrencyMismatchError reports a priced item whose currency differs from the plan's.
type CurrencyMismatchError struct {
	ItemID       string
	Currency     string
	PlanCurrency string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("Currency mismatch for %s: %s (plan uses %s)", e.ItemID, e.Currency, e.PlanCurrency)
}

func (e *CurrencyMismatchError) Is(target error) bool {
	return target == ErrCurrencyMismatch
}
