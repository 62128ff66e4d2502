package config

import (
	"log"

	"flexfit-api/internal/adapters/persistence/models"
	"flexfit-api/internal/core/domain"
	"flexfit-api/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedPlans(); err != nil {
		return err
	}

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

type seedPlan struct {
	name        string
	description string
	price       float64
	duration    int
	features    []string
}

// seedPlans seeds the default membership catalog, once
func (s *Seeder) seedPlans() error {
	plans := []seedPlan{
		{
			name:        "Basic",
			description: "Perfect for beginners",
			price:       29.99,
			duration:    30,
			features: []string{
				"Access to gym equipment",
				"Basic fitness assessment",
				"Locker room access",
				"Standard gym hours",
			},
		},
		{
			name:        "Pro",
			description: "For serious fitness enthusiasts",
			price:       49.99,
			duration:    30,
			features: []string{
				"All Basic features",
				"Personal trainer sessions",
				"Group fitness classes",
				"Extended gym hours",
			},
		},
		{
			name:        "Elite",
			description: "The ultimate fitness experience",
			price:       99.99,
			duration:    30,
			features: []string{
				"All Pro features",
				"Nutrition consultation",
				"Recovery spa access",
				"24/7 gym access",
			},
		},
	}

	for _, sp := range plans {
		var existing models.MembershipPlan
		err := s.db.Where("name = ?", sp.name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		plan := &models.MembershipPlan{
			Name:         sp.name,
			Description:  sp.description,
			Price:        sp.price,
			DurationDays: sp.duration,
		}
		if err := plan.SetFeatures(sp.features); err != nil {
			return err
		}
		if err := s.db.Create(plan).Error; err != nil {
			return err
		}
		log.Printf("   Created plan: %s", plan.Name)
	}

	return nil
}

// seedAdminUser seeds a default admin account for development.
// In production, create the admin through a secure process instead.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleAdmin)).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     "Administrator",
		Email:    "admin@flexfit.gym",
		Password: hashedPassword,
		Role:     string(domain.RoleAdmin),
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}
