package domain

import "context"

//go:generate mockgen -source=reader.go -destination=../mocks/mock_reader.go -package=mocks

// Reader is the read-only catalog view used by pricing and validation.
// GetPlan and FindOptionValue return nil, nil when nothing matches.
type Reader interface {
	GetPlan(ctx context.Context, id string) (*Plan, error)
	ListOptionGroups(ctx context.Context, planID string) ([]OptionGroup, error)
	ListOptionValues(ctx context.Context, groupID string) ([]OptionValue, error)
	FindOptionValue(ctx context.Context, groupID, value string) (*OptionValue, error)
	// ListAddons returns the add-ons among ids that belong to planID.
	// Unknown ids and ids of other plans are dropped.
	ListAddons(ctx context.Context, planID string, ids []string) ([]Addon, error)
	ListPlanAddons(ctx context.Context, planID string) ([]Addon, error)
}
