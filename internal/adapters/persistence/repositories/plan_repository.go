package repositories

import (
	"context"

	"flexfit-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// planRepository implements PlanRepository interface
type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

// Create creates a new membership plan
func (r *planRepository) Create(ctx context.Context, plan *models.MembershipPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

// GetByID gets a live plan by ID
func (r *planRepository) GetByID(ctx context.Context, id uint) (*models.MembershipPlan, error) {
	var plan models.MembershipPlan
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Update updates a plan
func (r *planRepository) Update(ctx context.Context, plan *models.MembershipPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

// Delete soft deletes a plan, removing it from the catalog
func (r *planRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.MembershipPlan{}, id).Error
}

// List lists live plans ordered by price ascending
func (r *planRepository) List(ctx context.Context) ([]*models.MembershipPlan, error) {
	var plans []*models.MembershipPlan
	err := r.db.WithContext(ctx).Order("price ASC").Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}
