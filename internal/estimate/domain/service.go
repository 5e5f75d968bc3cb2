package domain

import (
	"context"
	"errors"
	"strings"

	pricingdomain "github.com/smallbiznis/estimator/internal/pricing/domain"
)

type Service interface {
	Get(ctx context.Context) (*View, error)
	Update(ctx context.Context, req UpdateRequest) (*View, error)
	Finalise(ctx context.Context) (*FinaliseResult, error)
}

type UpdateRequest struct {
	PlanID     string                   `json:"plan_id"`
	Selections pricingdomain.Selections `json:"selections"`
}

type PlanRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type View struct {
	ID              string                   `json:"id"`
	Status          Status                   `json:"status"`
	Plan            PlanRef                  `json:"plan"`
	Selections      pricingdomain.Selections `json:"selections"`
	Pricing         pricingdomain.Pricing    `json:"pricing"`
	BlockingReasons []string                 `json:"blocking_reasons"`
}

type FinaliseResult struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
}

var (
	ErrInvalidPlanID     = errors.New("invalid_plan_id")
	ErrInvalidSelections = errors.New("invalid_selections")
	ErrEstimateNotFound  = errors.New("estimate_not_found")
	ErrEstimateBlocked   = errors.New("estimate_blocked")
	ErrPlanMissing       = errors.New("estimate_plan_missing")
)

// BlockedError carries the persisted reasons that prevent finalisation.
type BlockedError struct {
	Reasons []string
}

func (e *BlockedError) Error() string {
	return "Cannot finalise estimate: " + strings.Join(e.Reasons, "; ")
}

func (e *BlockedError) Is(target error) bool {
	return target == ErrEstimateBlocked
}
