package service

import (
	"context"
	"strings"

	catalogdomain "github.com/smallbiznis/estimator/internal/catalog/domain"
	"github.com/smallbiznis/estimator/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Config config.Config
	Repo   catalogdomain.Repository
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	repo          catalogdomain.Repository
	defaultPlanID string
}

func New(p Params) catalogdomain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("catalog.service"),
		repo:          p.Repo,
		defaultPlanID: strings.TrimSpace(p.Config.DefaultPlanID),
	}
}

func (s *Service) ListProviders(ctx context.Context) (*catalogdomain.ListProvidersResponse, error) {
	items, err := s.repo.ListProviders(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := &catalogdomain.ListProvidersResponse{
		Items: make([]catalogdomain.ProviderResponse, 0, len(items)),
	}
	for _, p := range items {
		resp.Items = append(resp.Items, catalogdomain.ProviderResponse{
			ID:       p.ID,
			Name:     p.Name,
			Location: p.Location,
			LogoURL:  p.LogoURL,
		})
	}
	return resp, nil
}

func (s *Service) ListPlans(ctx context.Context, providerID string) (*catalogdomain.ListPlansResponse, error) {
	providerID = strings.TrimSpace(providerID)
	if providerID == "" {
		return nil, catalogdomain.ErrInvalidProvider
	}

	plans, err := s.repo.ListPlansByProvider(ctx, s.db, providerID)
	if err != nil {
		return nil, err
	}

	resp := &catalogdomain.ListPlansResponse{
		Items: make([]catalogdomain.PlanResponse, 0, len(plans)),
	}
	for i := range plans {
		item, err := s.planResponse(ctx, &plans[i])
		if err != nil {
			return nil, err
		}
		resp.Items = append(resp.Items, *item)
	}
	return resp, nil
}

// DefaultPlan returns the configured default plan, falling back to the first
// plan by id when it is not in the catalog.
func (s *Service) DefaultPlan(ctx context.Context) (*catalogdomain.Plan, error) {
	if s.defaultPlanID != "" {
		plan, err := s.repo.FindPlan(ctx, s.db, s.defaultPlanID)
		if err != nil {
			return nil, err
		}
		if plan != nil {
			return plan, nil
		}
		s.log.Warn("configured default plan not found, using first plan",
			zap.String("plan_id", s.defaultPlanID),
		)
	}

	plan, err := s.repo.FirstPlan(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, catalogdomain.ErrNoPlans
	}
	return plan, nil
}

func (s *Service) planResponse(ctx context.Context, plan *catalogdomain.Plan) (*catalogdomain.PlanResponse, error) {
	groups, err := s.repo.ListOptionGroups(ctx, s.db, plan.ID)
	if err != nil {
		return nil, err
	}

	groupIDs := make([]string, 0, len(groups))
	for _, g := range groups {
		groupIDs = append(groupIDs, g.ID)
	}
	values, err := s.repo.ListOptionValues(ctx, s.db, groupIDs...)
	if err != nil {
		return nil, err
	}
	valuesByGroup := make(map[string][]string, len(groups))
	for _, v := range values {
		valuesByGroup[v.OptionGroupID] = append(valuesByGroup[v.OptionGroupID], v.Value)
	}

	addons, err := s.repo.ListAddons(ctx, s.db, plan.ID)
	if err != nil {
		return nil, err
	}

	resp := &catalogdomain.PlanResponse{
		ID:              plan.ID,
		ProviderID:      plan.ProviderID,
		Name:            plan.Name,
		Description:     plan.Description,
		BasePriceCents:  plan.BasePriceCents,
		Currency:        plan.Currency,
		ApprovalType:    plan.ApprovalType,
		MinParticipants: plan.MinParticipants,
		LeadTimeDays:    plan.LeadTimeDays,
		Options:         make([]catalogdomain.PlanOption, 0, len(groups)),
		Addons:          make([]catalogdomain.PlanAddon, 0, len(addons)),
	}
	for _, g := range groups {
		vals := valuesByGroup[g.ID]
		if vals == nil {
			vals = []string{}
		}
		resp.Options = append(resp.Options, catalogdomain.PlanOption{
			Code:        g.Code,
			Description: g.Description,
			Required:    g.Required,
			Values:      vals,
		})
	}
	for _, a := range addons {
		resp.Addons = append(resp.Addons, catalogdomain.PlanAddon{
			ID:         a.ID,
			Name:       a.Name,
			PriceCents: a.PriceCents,
			Currency:   a.Currency,
		})
	}
	return resp, nil
}
