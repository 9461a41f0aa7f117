package service

import (
	"context"
	"fmt"

	"github.com/promptpix/promptpix/internal/models"
	"github.com/promptpix/promptpix/internal/repository"
)

// PlanService exposes the purchasable credit packages.
type PlanService struct {
	plans *repository.PlanRepository
}

func NewPlanService(plans *repository.PlanRepository) *PlanService {
	return &PlanService{plans: plans}
}

// defaultPlans mirror the pricing page; amounts are whole currency units.
var defaultPlans = []models.Plan{
	{ID: "basic", Label: "Basic", Amount: 10, Credits: 100, IsActive: true},
	{ID: "advanced", Label: "Advanced", Amount: 50, Credits: 500, IsActive: true},
	{ID: "business", Label: "Business", Amount: 250, Credits: 5000, IsActive: true},
}

// EnsureDefaults seeds the plan table on first start.
func (s *PlanService) EnsureDefaults(ctx context.Context) error {
	for _, plan := range defaultPlans {
		if err := s.plans.Seed(ctx, plan); err != nil {
			return fmt.Errorf("ensure plan %s: %w", plan.ID, err)
		}
	}
	return nil
}

func (s *PlanService) List(ctx context.Context) ([]models.Plan, error) {
	return s.plans.ListActive(ctx)
}

func (s *PlanService) Get(ctx context.Context, id string) (*models.Plan, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil || !plan.IsActive {
		return nil, ErrNotFound
	}
	return plan, nil
}
