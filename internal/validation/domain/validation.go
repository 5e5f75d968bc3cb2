package domain

import (
	"context"
	"fmt"
	"strings"

	pricingdomain "github.com/smallbiznis/estimator/internal/pricing/domain"
)

// Result lists every reason the selections cannot be finalised.
type Result struct {
	IsValid  bool     `json:"is_valid"`
	Blockers []string `json:"blockers"`
}

type Engine interface {
	Validate(ctx context.Context, planID string, selections pricingdomain.Selections) (Result, error)
}

func PlanNotFound(planID string) string {
	return fmt.Sprintf("Plan %s not found", planID)
}

func MissingRequiredField(code string) string {
	return "Missing required field: " + code
}

func InvalidValue(code, value string) string {
	return fmt.Sprintf(`Invalid value "%s" for %s`, value, code)
}

func InvalidAddons(ids []string) string {
	return "Invalid add-on IDs for this plan: " + strings.Join(ids, ", ")
}
