package repositories

import (
	"context"
	"errors"
	"time"

	"flexfit-api/internal/adapters/persistence/models"
	"flexfit-api/internal/core/domain"

	"gorm.io/gorm"
)

// subscriptionRepository implements SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// CreateSuperseding inserts a new subscription after expiring any still
// active subscription of the same member, atomically. At most one active
// subscription per member can exist afterwards.
func (r *subscriptionRepository) CreateSuperseding(ctx context.Context, sub *models.Subscription) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Subscription{}).
			Where("user_id = ? AND status = ?", sub.UserID, domain.SubscriptionActive).
			Update("status", domain.SubscriptionExpired).Error
		if err != nil {
			return err
		}
		return tx.Create(sub).Error
	})
}

// GetCurrent returns the latest-started subscription still covering now,
// with the plan preloaded (soft-deleted plans included), or nil.
func (r *subscriptionRepository) GetCurrent(ctx context.Context, userID uint, now time.Time) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND end_date >= ?", userID, now).
		Order("start_date DESC").
		Preload("Plan", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// ListAll returns every subscription with member and plan, newest first
func (r *subscriptionRepository) ListAll(ctx context.Context) ([]*models.Subscription, error) {
	var subs []*models.Subscription
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Plan", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		Order("start_date DESC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

// ExpireLapsed flips active subscriptions whose end date has passed to
// expired and reports how many rows changed.
func (r *subscriptionRepository) ExpireLapsed(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("status = ? AND end_date < ?", domain.SubscriptionActive, now).
		Update("status", domain.SubscriptionExpired)
	return result.RowsAffected, result.Error
}
