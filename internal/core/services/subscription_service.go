package services

import (
	"context"
	"errors"
	"time"

	"flexfit-api/internal/adapters/persistence/models"
	"flexfit-api/internal/adapters/persistence/repositories"
	"flexfit-api/internal/core/domain"

	"gorm.io/gorm"
)

// SubscriptionService handles the subscription ledger business logic
type SubscriptionService struct {
	subscriptionRepo repositories.SubscriptionRepository
	planRepo         repositories.PlanRepository
	now              func() time.Time
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(
	subscriptionRepo repositories.SubscriptionRepository,
	planRepo repositories.PlanRepository,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		now:              time.Now,
	}
}

// GetCurrent returns the member's current subscription with the plan
// snapshot, or nil when the member holds none.
func (s *SubscriptionService) GetCurrent(ctx context.Context, userID uint) (*models.SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.GetCurrent(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, nil
	}
	return sub.ToResponse()
}

// Subscribe starts a new subscription period for the member on the given
// plan: start = now, end = start + plan duration in days. Any subscription
// still active for the member is superseded, so renewal is simply calling
// Subscribe again.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, planID uint) (*models.SubscriptionResponse, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFoundSvc
		}
		return nil, err
	}

	start := s.now()
	sub := &models.Subscription{
		UserID:    userID,
		PlanID:    plan.ID,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, plan.DurationDays),
		Status:    domain.SubscriptionActive,
	}

	if err := s.subscriptionRepo.CreateSuperseding(ctx, sub); err != nil {
		return nil, err
	}

	sub.Plan = plan
	return sub.ToResponse()
}

// ListAll returns every subscription with member and plan details, for the
// admin ledger view.
func (s *SubscriptionService) ListAll(ctx context.Context) ([]*models.SubscriptionResponse, error) {
	subs, err := s.subscriptionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.SubscriptionResponse, len(subs))
	for i, sub := range subs {
		resp, err := sub.ToResponse()
		if err != nil {
			return nil, err
		}
		responses[i] = resp
	}
	return responses, nil
}

// ExpireLapsed flips lapsed subscriptions to expired; used by the cron sweep
func (s *SubscriptionService) ExpireLapsed(ctx context.Context) (int64, error) {
	return s.subscriptionRepo.ExpireLapsed(ctx, s.now())
}
