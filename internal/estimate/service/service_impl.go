package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/estimator/internal/catalog/domain"
	"github.com/smallbiznis/estimator/internal/clock"
	"github.com/smallbiznis/estimator/internal/config"
	"github.com/smallbiznis/estimator/internal/employer"
	estimatedomain "github.com/smallbiznis/estimator/internal/estimate/domain"
	"github.com/smallbiznis/estimator/internal/lock"
	"github.com/smallbiznis/estimator/internal/observability/metrics"
	pricingdomain "github.com/smallbiznis/estimator/internal/pricing/domain"
	validationdomain "github.com/smallbiznis/estimator/internal/validation/domain"
	pkgdb "github.com/smallbiznis/estimator/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Config     config.Config
	GenID      *snowflake.Node
	Clock      clock.Clock
	Locker     lock.Locker
	Repo       estimatedomain.Repository
	Catalog    catalogdomain.Service
	Reader     catalogdomain.Reader
	Pricing    pricingdomain.Engine
	Validation validationdomain.Engine
	Metrics    *metrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	locker     lock.Locker
	repo       estimatedomain.Repository
	catalog    catalogdomain.Service
	reader     catalogdomain.Reader
	pricing    pricingdomain.Engine
	validation validationdomain.Engine
	metrics    *metrics.Metrics

	defaultEmployerID string
}

func New(p Params) estimatedomain.Service {
	defaultEmployerID := strings.TrimSpace(p.Config.DefaultEmployerID)
	if defaultEmployerID == "" {
		defaultEmployerID = config.DefaultEmployerID
	}
	return &Service{
		db:                p.DB,
		log:               p.Log.Named("estimate.service"),
		genID:             p.GenID,
		clock:             p.Clock,
		locker:            p.Locker,
		repo:              p.Repo,
		catalog:           p.Catalog,
		reader:            p.Reader,
		pricing:           p.Pricing,
		validation:        p.Validation,
		metrics:           p.Metrics,
		defaultEmployerID: defaultEmployerID,
	}
}

// Get returns the employer's estimate, creating a draft on the default plan
// when none exists yet.
func (s *Service) Get(ctx context.Context) (*estimatedomain.View, error) {
	employerID := s.employerID(ctx)

	entity, err := s.repo.FindByEmployer(ctx, s.db, employerID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		entity, err = s.createDefault(ctx, employerID)
		if err != nil {
			return nil, err
		}
	}

	blockers, err := s.repo.ListBlockers(ctx, s.db, entity.ID)
	if err != nil {
		return nil, err
	}
	return s.toView(ctx, entity, reasonsOf(blockers))
}

func (s *Service) createDefault(ctx context.Context, employerID string) (*estimatedomain.Estimate, error) {
	release, err := s.locker.Acquire(ctx, lockKey(employerID))
	if err != nil {
		return nil, err
	}
	defer release()

	var created *estimatedomain.Estimate
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByEmployer(ctx, tx, employerID)
		if err != nil {
			return err
		}
		if existing != nil {
			created = existing
			return nil
		}

		plan, err := s.catalog.DefaultPlan(ctx)
		if err != nil {
			return err
		}
		selections := normalizeSelections(pricingdomain.Selections{})
		pricing, err := s.pricing.Price(ctx, plan.ID, selections)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		created = &estimatedomain.Estimate{
			ID:         s.newEstimateID(),
			EmployerID: employerID,
			PlanID:     plan.ID,
			Status:     estimatedomain.StatusDraft,
			Selections: datatypes.NewJSONType(selections),
			Pricing:    datatypes.NewJSONType(pricing),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return s.repo.Insert(ctx, tx, created)
	})
	if err != nil && pkgdb.IsDuplicateKeyErr(err) {
		// Another instance created it first.
		return s.repo.FindByEmployer(ctx, s.db, employerID)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("created default estimate",
		zap.String("estimate_id", created.ID),
		zap.String("employer_id", employerID),
		zap.String("plan_id", created.PlanID),
	)
	return created, nil
}

// Update re-validates and re-prices the employer's estimate against planID.
// Blockers are returned as data; a missing plan fails the whole update.
func (s *Service) Update(ctx context.Context, req estimatedomain.UpdateRequest) (*estimatedomain.View, error) {
	planID := strings.TrimSpace(req.PlanID)
	if planID == "" {
		return nil, estimatedomain.ErrInvalidPlanID
	}
	selections := normalizeSelections(req.Selections)
	employerID := s.employerID(ctx)

	release, err := s.locker.Acquire(ctx, lockKey(employerID))
	if err != nil {
		return nil, err
	}
	defer release()

	var (
		entity  *estimatedomain.Estimate
		reasons []string
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByEmployer(ctx, tx, employerID)
		if err != nil {
			return err
		}

		result, err := s.validation.Validate(ctx, planID, selections)
		if err != nil {
			return fmt.Errorf("validate selections: %w", err)
		}
		pricing, err := s.pricing.Price(ctx, planID, selections)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		if existing == nil {
			entity = &estimatedomain.Estimate{
				ID:         s.newEstimateID(),
				EmployerID: employerID,
				CreatedAt:  now,
			}
		} else {
			entity = existing
		}
		entity.PlanID = planID
		entity.Status = estimatedomain.StatusDraft
		entity.Selections = datatypes.NewJSONType(selections)
		entity.Pricing = datatypes.NewJSONType(pricing)
		entity.SubmittedAt = nil
		entity.FinalisedAt = nil
		entity.UpdatedAt = now

		if existing == nil {
			if err := s.repo.Insert(ctx, tx, entity); err != nil {
				return err
			}
		} else if err := s.repo.Update(ctx, tx, entity); err != nil {
			return err
		}

		reasons = result.Blockers
		return s.repo.ReplaceBlockers(ctx, tx, entity.ID, reasons, now)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordEstimateUpdate(ctx, planID, len(reasons))
	s.log.Info("estimate updated",
		zap.String("estimate_id", entity.ID),
		zap.String("plan_id", planID),
		zap.Int("blockers", len(reasons)),
		zap.Int64("total", entity.Pricing.Data().Total),
	)
	return s.toView(ctx, entity, reasons)
}

// Finalise submits the estimate. Plans with manager review move to
// pending_approval; all others are finalised immediately.
func (s *Service) Finalise(ctx context.Context) (*estimatedomain.FinaliseResult, error) {
	employerID := s.employerID(ctx)

	release, err := s.locker.Acquire(ctx, lockKey(employerID))
	if err != nil {
		return nil, err
	}
	defer release()

	var entity *estimatedomain.Estimate
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByEmployer(ctx, tx, employerID)
		if err != nil {
			return err
		}
		if existing == nil {
			return estimatedomain.ErrEstimateNotFound
		}

		blockers, err := s.repo.ListBlockers(ctx, tx, existing.ID)
		if err != nil {
			return err
		}
		if len(blockers) > 0 {
			return &estimatedomain.BlockedError{Reasons: reasonsOf(blockers)}
		}

		plan, err := s.reader.GetPlan(ctx, existing.PlanID)
		if err != nil {
			return err
		}
		if plan == nil {
			return fmt.Errorf("%w: %s", estimatedomain.ErrPlanMissing, existing.PlanID)
		}

		now := s.clock.Now()
		existing.SubmittedAt = &now
		if plan.ApprovalType == catalogdomain.ApprovalManagerReview {
			existing.Status = estimatedomain.StatusPendingApproval
			existing.FinalisedAt = nil
		} else {
			existing.Status = estimatedomain.StatusFinalised
			existing.FinalisedAt = &now
		}
		existing.UpdatedAt = now

		if err := s.repo.Update(ctx, tx, existing); err != nil {
			return err
		}
		entity = existing
		return nil
	})
	if err != nil {
		var blocked *estimatedomain.BlockedError
		if errors.As(err, &blocked) {
			s.log.Info("finalise blocked", zap.Int("blockers", len(blocked.Reasons)))
		}
		return nil, err
	}

	s.metrics.RecordFinalisation(ctx, entity.PlanID, string(entity.Status))
	s.log.Info("estimate finalised",
		zap.String("estimate_id", entity.ID),
		zap.String("status", string(entity.Status)),
	)
	return &estimatedomain.FinaliseResult{ID: entity.ID, Status: entity.Status}, nil
}

func (s *Service) toView(ctx context.Context, e *estimatedomain.Estimate, reasons []string) (*estimatedomain.View, error) {
	plan, err := s.reader.GetPlan(ctx, e.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: %s", estimatedomain.ErrPlanMissing, e.PlanID)
	}
	if reasons == nil {
		reasons = []string{}
	}
	return &estimatedomain.View{
		ID:              e.ID,
		Status:          e.Status,
		Plan:            estimatedomain.PlanRef{ID: plan.ID, Name: plan.Name},
		Selections:      normalizeSelections(e.Selections.Data()),
		Pricing:         e.Pricing.Data(),
		BlockingReasons: reasons,
	}, nil
}

func (s *Service) employerID(ctx context.Context) string {
	return employer.IDOrDefault(ctx, s.defaultEmployerID)
}

func (s *Service) newEstimateID() string {
	return "est_" + s.genID.Generate().String()
}

func lockKey(employerID string) string {
	return "estimate:" + employerID
}

func normalizeSelections(in pricingdomain.Selections) pricingdomain.Selections {
	out := pricingdomain.Selections{
		Addons:  in.AddonIDs(),
		Options: make(map[string]string, len(in.Options)),
	}
	for code, value := range in.Options {
		out.Options[code] = value
	}
	return out
}

func reasonsOf(blockers []estimatedomain.Blocker) []string {
	reasons := make([]string, 0, len(blockers))
	for _, b := range blockers {
		reasons = append(reasons, b.Reason)
	}
	return reasons
}
