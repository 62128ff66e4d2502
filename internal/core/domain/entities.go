package domain

// Role represents a user role in the system
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Subscription statuses
const (
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)
