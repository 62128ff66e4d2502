package services

import (
	"context"
	"math"
	"time"

	"flexfit-api/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService derives admin reporting figures from the ledger
type DashboardService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db, now: time.Now}
}

// StatsData represents the admin dashboard figures
type StatsData struct {
	TotalMembers        int64           `json:"total_members"`
	ActiveSubscriptions int64           `json:"active_subscriptions"`
	MonthlyRevenue      float64         `json:"monthly_revenue"`
	MembershipGrowth    int             `json:"membership_growth"`
	RecentMembers       []MemberSummary `json:"recent_members"`
}

// MemberSummary represents a recent member row
type MemberSummary struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// GetStats returns the admin dashboard data
func (s *DashboardService) GetStats(ctx context.Context) (*StatsData, error) {
	data := &StatsData{}
	now := s.now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfLastMonth := startOfMonth.AddDate(0, -1, 0)

	// Total members
	err := s.db.WithContext(ctx).Table("users").
		Where("role = ? AND deleted_at IS NULL", string(domain.RoleMember)).
		Count(&data.TotalMembers).Error
	if err != nil {
		return nil, err
	}

	// Active subscriptions (stored flag, maintained by create/supersede/sweep)
	err = s.db.WithContext(ctx).Table("subscriptions").
		Where("status = ?", domain.SubscriptionActive).
		Count(&data.ActiveSubscriptions).Error
	if err != nil {
		return nil, err
	}

	// Revenue from active subscriptions started this calendar month
	err = s.db.WithContext(ctx).Table("subscriptions").
		Joins("JOIN membership_plans ON subscriptions.plan_id = membership_plans.id").
		Where("subscriptions.status = ? AND subscriptions.start_date >= ?",
			domain.SubscriptionActive, startOfMonth).
		Select("COALESCE(SUM(membership_plans.price), 0)").
		Scan(&data.MonthlyRevenue).Error
	if err != nil {
		return nil, err
	}

	// Growth vs members who joined last month; 0 when there were none
	var lastMonthMembers int64
	err = s.db.WithContext(ctx).Table("users").
		Where("role = ? AND deleted_at IS NULL AND created_at >= ? AND created_at < ?",
			string(domain.RoleMember), startOfLastMonth, startOfMonth).
		Count(&lastMonthMembers).Error
	if err != nil {
		return nil, err
	}

	if lastMonthMembers > 0 {
		growth := float64(data.TotalMembers-lastMonthMembers) / float64(lastMonthMembers) * 100
		data.MembershipGrowth = int(math.Round(growth))
	}

	// Recent members
	var recent []MemberSummary
	err = s.db.WithContext(ctx).Table("users").
		Select("id, name, email, created_at").
		Where("role = ? AND deleted_at IS NULL", string(domain.RoleMember)).
		Order("created_at DESC").
		Limit(5).
		Scan(&recent).Error
	if err != nil {
		return nil, err
	}
	data.RecentMembers = recent

	return data, nil
}
