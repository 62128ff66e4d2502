package services

import (
	"context"
	"errors"

	"flexfit-api/internal/adapters/persistence/models"
	"flexfit-api/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Plan service errors
var (
	ErrPlanNotFoundSvc = errors.New("plan not found")
	ErrInvalidPlan     = errors.New("invalid plan")
)

// PlanService handles the membership plan catalog business logic
type PlanService struct {
	planRepo repositories.PlanRepository
}

// NewPlanService creates a new plan service
func NewPlanService(planRepo repositories.PlanRepository) *PlanService {
	return &PlanService{planRepo: planRepo}
}

// CreatePlanInput represents create plan input
type CreatePlanInput struct {
	Name         string   `json:"name" validate:"required,max=100"`
	Description  string   `json:"description"`
	Price        float64  `json:"price" validate:"gte=0"`
	DurationDays int      `json:"duration_days" validate:"gt=0"`
	Features     []string `json:"features"`
}

// UpdatePlanInput represents update plan input
type UpdatePlanInput struct {
	Name         string   `json:"name" validate:"required,max=100"`
	Description  string   `json:"description"`
	Price        float64  `json:"price" validate:"gte=0"`
	DurationDays int      `json:"duration_days" validate:"gt=0"`
	Features     []string `json:"features"`
}

// ListPlans returns the live catalog ordered by price ascending, with
// features expanded. A plan whose features column cannot be parsed fails
// the whole read.
func (s *PlanService) ListPlans(ctx context.Context) ([]*models.PlanResponse, error) {
	plans, err := s.planRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.PlanResponse, len(plans))
	for i, plan := range plans {
		resp, err := plan.ToResponse()
		if err != nil {
			return nil, err
		}
		responses[i] = resp
	}
	return responses, nil
}

// CreatePlan creates a new membership plan
func (s *PlanService) CreatePlan(ctx context.Context, input *CreatePlanInput) (*models.PlanResponse, error) {
	plan := &models.MembershipPlan{
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		DurationDays: input.DurationDays,
	}
	if err := plan.SetFeatures(input.Features); err != nil {
		return nil, err
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}

	return plan.ToResponse()
}

// UpdatePlan updates an existing membership plan
func (s *PlanService) UpdatePlan(ctx context.Context, id uint, input *UpdatePlanInput) (*models.PlanResponse, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFoundSvc
		}
		return nil, err
	}

	plan.Name = input.Name
	plan.Description = input.Description
	plan.Price = input.Price
	plan.DurationDays = input.DurationDays
	if err := plan.SetFeatures(input.Features); err != nil {
		return nil, err
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}

	return plan.ToResponse()
}

// DeletePlan retires a plan from the catalog. Existing subscriptions keep
// referencing the soft-deleted row.
func (s *PlanService) DeletePlan(ctx context.Context, id uint) error {
	_, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanNotFoundSvc
		}
		return err
	}

	return s.planRepo.Delete(ctx, id)
}
