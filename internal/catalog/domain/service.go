package domain

import (
	"context"
	"errors"
)

type Service interface {
	ListProviders(ctx context.Context) (*ListProvidersResponse, error)
	ListPlans(ctx context.Context, providerID string) (*ListPlansResponse, error)
	DefaultPlan(ctx context.Context) (*Plan, error)
}

type ProviderResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	LogoURL  *string `json:"logo_url"`
}

type ListProvidersResponse struct {
	Items []ProviderResponse `json:"items"`
}

type PlanOption struct {
	Code        string   `json:"code"`
	Description *string  `json:"description"`
	Required    bool     `json:"required"`
	Values      []string `json:"values"`
}

type PlanAddon struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Currency   string `json:"currency"`
}

type PlanResponse struct {
	ID              string       `json:"id"`
	ProviderID      string       `json:"provider_id"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	BasePriceCents  int64        `json:"base_price_cents"`
	Currency        string       `json:"currency"`
	ApprovalType    ApprovalType `json:"approval_type"`
	MinParticipants int          `json:"min_participants"`
	LeadTimeDays    int          `json:"lead_time_days"`
	Options         []PlanOption `json:"options"`
	Addons          []PlanAddon  `json:"addons"`
}

type ListPlansResponse struct {
	Items []PlanResponse `json:"items"`
}

var (
	ErrInvalidProvider = errors.New("invalid_provider")
	ErrNoPlans         = errors.New("no_plans_available")
)
