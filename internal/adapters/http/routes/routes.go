package routes

import (
	"time"

	"flexfit-api/internal/adapters/http/handlers"
	"flexfit-api/internal/adapters/http/middleware"
	"flexfit-api/internal/adapters/persistence/repositories"
	"flexfit-api/internal/config"
	"flexfit-api/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	planRepo := repositories.NewPlanRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	memberService := services.NewMemberService(userRepo, profileRepo)
	planService := services.NewPlanService(planRepo)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, planRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	memberHandler := handlers.NewMemberHandler(memberService)
	planHandler := handlers.NewPlanHandler(planService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Plan catalog (public read, cacheable)
	apiV1.Get("/plans", middleware.CacheControl(5*time.Minute), planHandler.List)

	// Member self-service routes (Authenticated)
	userRoutes := apiV1.Group("/user")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Get("/subscription", subscriptionHandler.GetCurrent)
	userRoutes.Post("/subscription", subscriptionHandler.Subscribe)

	// Profile routes (Authenticated)
	profileRoutes := apiV1.Group("/profile")
	profileRoutes.Use(middleware.AuthMiddleware(cfg))
	profileRoutes.Get("/", memberHandler.GetProfile)
	profileRoutes.Put("/", memberHandler.UpdateProfile)

	// Admin routes (Admin only)
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Use(middleware.AdminOnly())
	setupAdminRoutes(adminRoutes, memberHandler, planHandler, subscriptionHandler, dashboardHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (rate limited against brute force)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupAdminRoutes configures admin routes
func setupAdminRoutes(
	router fiber.Router,
	memberHandler *handlers.MemberHandler,
	planHandler *handlers.PlanHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	dashboardHandler *handlers.DashboardHandler,
) {
	// Member directory
	router.Get("/members", memberHandler.List)
	router.Post("/members", memberHandler.Create)
	router.Put("/members/:id", memberHandler.Update)
	router.Delete("/members/:id", memberHandler.Delete)

	// Plan catalog management
	router.Get("/plans", planHandler.List)
	router.Post("/plans", planHandler.Create)
	router.Put("/plans/:id", planHandler.Update)
	router.Delete("/plans/:id", planHandler.Delete)

	// Subscription ledger
	router.Get("/subscriptions", subscriptionHandler.ListAll)

	// Dashboard
	router.Get("/stats", dashboardHandler.Stats)
}
