package services

import (
	"testing"
	"time"

	"flexfit-api/internal/adapters/persistence/models"
	"flexfit-api/internal/core/domain"
	"flexfit-api/internal/pkg/password"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection, so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func createTestMember(t *testing.T, db *gorm.DB, name, email string) *models.User {
	hashed, err := password.Hash("password123")
	require.NoError(t, err)

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     string(domain.RoleMember),
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.Profile{UserID: user.ID}).Error)
	return user
}

func createTestPlan(t *testing.T, db *gorm.DB, name string, price float64, durationDays int) *models.MembershipPlan {
	plan := &models.MembershipPlan{
		Name:         name,
		Description:  name + " plan",
		Price:        price,
		DurationDays: durationDays,
	}
	require.NoError(t, plan.SetFeatures([]string{"Gym access"}))
	require.NoError(t, db.Create(plan).Error)
	return plan
}

func mustTime(t *testing.T, date string) time.Time {
	ts, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return ts
}

func createTestSubscription(t *testing.T, db *gorm.DB, userID, planID uint, start time.Time, days int, status string) *models.Subscription {
	sub := &models.Subscription{
		UserID:    userID,
		PlanID:    planID,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, days),
		Status:    status,
	}
	require.NoError(t, db.Create(sub).Error)
	return sub
}
