package services

import (
	"context"
	"log"
	"time"

	"flexfit-api/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs the scheduled maintenance jobs: the hourly subscription
// expiry sweep and the daily refresh-token cleanup.
type CronService struct {
	cron             *cron.Cron
	subscriptionRepo repositories.SubscriptionRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB) *CronService {
	return &CronService{
		cron:             cron.New(),
		subscriptionRepo: repositories.NewSubscriptionRepository(db),
		refreshTokenRepo: repositories.NewRefreshTokenRepository(db),
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() {
	// Hourly: expire subscriptions whose end date has passed
	if _, err := s.cron.AddFunc("@hourly", s.expireSubscriptions); err != nil {
		log.Printf("❌ Failed to schedule subscription sweep: %v", err)
	}

	// Daily: drop expired refresh tokens
	if _, err := s.cron.AddFunc("@daily", s.cleanupRefreshTokens); err != nil {
		log.Printf("❌ Failed to schedule token cleanup: %v", err)
	}

	s.cron.Start()
	log.Println("✅ Cron service started")
}

// Stop stops the scheduler
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 Cron service stopped")
}

func (s *CronService) expireSubscriptions() {
	n, err := s.subscriptionRepo.ExpireLapsed(context.Background(), time.Now())
	if err != nil {
		log.Printf("❌ Subscription sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("✅ Subscription sweep: %d subscription(s) expired", n)
	}
}

func (s *CronService) cleanupRefreshTokens() {
	if err := s.refreshTokenRepo.DeleteExpired(context.Background()); err != nil {
		log.Printf("❌ Refresh token cleanup failed: %v", err)
	}
}
