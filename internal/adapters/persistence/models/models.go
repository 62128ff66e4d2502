package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table (role member or admin)
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'member'" json:"role"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Profile       *Profile       `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Subscriptions []Subscription `gorm:"foreignKey:UserID" json:"subscriptions,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// MemberResponse DTO annotates a member with their latest subscription
type MemberResponse struct {
	ID                 uint      `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	CreatedAt          time.Time `json:"created_at"`
	CurrentPlan        string    `json:"current_plan,omitempty"`
	SubscriptionStatus string    `json:"subscription_status,omitempty"`
}

// ToMemberResponse builds the member listing row. Subscriptions must be
// preloaded ordered by start_date descending; the first entry is the latest.
func (u *User) ToMemberResponse() *MemberResponse {
	resp := &MemberResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}

	if len(u.Subscriptions) > 0 {
		latest := u.Subscriptions[0]
		resp.SubscriptionStatus = latest.Status
		if latest.Plan != nil {
			resp.CurrentPlan = latest.Plan.Name
		}
	}

	return resp
}

// Profile represents profiles table (1:1 with users)
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Phone     string    `gorm:"size:30" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Membership Tables
// ============================================================

// MembershipPlan represents membership_plans table.
// Features is a JSON-encoded string array; use SetFeatures/FeatureList
// instead of touching the column directly.
type MembershipPlan struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	Price        float64        `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationDays int            `gorm:"not null" json:"duration_days"`
	Features     string         `gorm:"type:text;not null;default:'[]'" json:"-"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MembershipPlan) TableName() string {
	return "membership_plans"
}

// SetFeatures serializes the feature list into the Features column
func (p *MembershipPlan) SetFeatures(features []string) error {
	if features == nil {
		features = []string{}
	}
	raw, err := json.Marshal(features)
	if err != nil {
		return err
	}
	p.Features = string(raw)
	return nil
}

// FeatureList deserializes the Features column. A malformed column is an
// error, never an empty list: callers must fail the read.
func (p *MembershipPlan) FeatureList() ([]string, error) {
	if p.Features == "" {
		return []string{}, nil
	}
	var features []string
	if err := json.Unmarshal([]byte(p.Features), &features); err != nil {
		return nil, fmt.Errorf("plan %d has malformed features: %w", p.ID, err)
	}
	return features, nil
}

// PlanResponse DTO with features expanded
type PlanResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	DurationDays int       `json:"duration_days"`
	Features     []string  `json:"features"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p *MembershipPlan) ToResponse() (*PlanResponse, error) {
	features, err := p.FeatureList()
	if err != nil {
		return nil, err
	}

	return &PlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		DurationDays: p.DurationDays,
		Features:     features,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}, nil
}

// Subscription represents subscriptions table. Rows are immutable after
// creation except for the status transition active -> expired.
type Subscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	PlanID    uint      `gorm:"index;not null" json:"plan_id"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null;index" json:"end_date"`
	Status    string    `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	User *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Plan *MembershipPlan `gorm:"foreignKey:PlanID" json:"-"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// IsCurrent reports whether the subscription covers the given instant
func (s *Subscription) IsCurrent(now time.Time) bool {
	return !now.After(s.EndDate)
}

// SubscriptionResponse DTO including the resolved plan snapshot
type SubscriptionResponse struct {
	ID        uint          `json:"id"`
	UserID    uint          `json:"user_id"`
	PlanID    uint          `json:"plan_id"`
	StartDate time.Time     `json:"start_date"`
	EndDate   time.Time     `json:"end_date"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	Plan      *PlanResponse `json:"plan,omitempty"`
	UserName  string        `json:"user_name,omitempty"`
	UserEmail string        `json:"user_email,omitempty"`
}

func (s *Subscription) ToResponse() (*SubscriptionResponse, error) {
	resp := &SubscriptionResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		PlanID:    s.PlanID,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}

	if s.Plan != nil {
		plan, err := s.Plan.ToResponse()
		if err != nil {
			return nil, err
		}
		resp.Plan = plan
	}

	if s.User != nil {
		resp.UserName = s.User.Name
		resp.UserEmail = s.User.Email
	}

	return resp, nil
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Profile{},
		&RefreshToken{},
		&MembershipPlan{},
		&Subscription{},
	)
}
