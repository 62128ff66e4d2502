package repositories

import (
	"context"
	"time"

	"flexfit-api/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	CreateWithProfile(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	DeleteCascade(ctx context.Context, id uint) error
	ListMembers(ctx context.Context) ([]*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	EmailTakenByOther(ctx context.Context, email string, userID uint) (bool, error)
}

// ProfileRepository defines profile repository interface
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// PlanRepository defines membership plan repository interface
type PlanRepository interface {
	Create(ctx context.Context, plan *models.MembershipPlan) error
	GetByID(ctx context.Context, id uint) (*models.MembershipPlan, error)
	Update(ctx context.Context, plan *models.MembershipPlan) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.MembershipPlan, error)
}

// SubscriptionRepository defines subscription repository interface
type SubscriptionRepository interface {
	CreateSuperseding(ctx context.Context, sub *models.Subscription) error
	GetCurrent(ctx context.Context, userID uint, now time.Time) (*models.Subscription, error)
	ListAll(ctx context.Context) ([]*models.Subscription, error)
	ExpireLapsed(ctx context.Context, now time.Time) (int64, error)
}
