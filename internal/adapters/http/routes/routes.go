package routes

import (
	"asperda-backend/internal/adapters/http/handlers"
	"asperda-backend/internal/adapters/http/middleware"
	"asperda-backend/internal/adapters/persistence/repositories"
	"asperda-backend/internal/adapters/storage"
	"asperda-backend/internal/config"
	"asperda-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application and returns the blacklist
// service so the cron scheduler can share the same wiring.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) (*services.BlacklistService, repositories.RefreshTokenRepository) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)
	dpcRepo := repositories.NewDpcRepository(db)
	reportRepo := repositories.NewBlacklistReportRepository(db)
	globalRepo := repositories.NewGlobalBlacklistRepository(db)
	financeRepo := repositories.NewFinanceRepository(db)
	rateRepo := repositories.NewSeasonalRateRepository(db)

	// File storage (nil when no endpoint is configured)
	var fileStorage services.FileStorage
	if client := storage.New(cfg.Storage); client != nil {
		fileStorage = client
	}

	// Initialize services
	authService := services.NewAuthService(db, userRepo, refreshTokenRepo, dpcRepo, cfg)
	profileService := services.NewProfileService(userRepo)
	memberService := services.NewMemberService(companyRepo)
	dpcService := services.NewDpcService(dpcRepo, companyRepo)
	blacklistService := services.NewBlacklistService(reportRepo, globalRepo)
	financeService := services.NewFinanceService(financeRepo, fileStorage)
	pricingService := services.NewPricingService(rateRepo, cfg.Settings.DefaultSeasonMultiplier)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	memberHandler := handlers.NewMemberHandler(memberService)
	dpcHandler := handlers.NewDpcHandler(dpcService)
	blacklistHandler := handlers.NewBlacklistHandler(blacklistService, fileStorage)
	financeHandler := handlers.NewFinanceHandler(financeService)
	pricingHandler := handlers.NewPricingHandler(pricingService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	auth := middleware.AuthMiddleware(cfg, profileService)

	// Auth routes (public + protected)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, auth)

	// DPC region routes: listing is public (registration form needs it),
	// writes are super-admin only
	dpcRoutes := apiV1.Group("/dpc")
	dpcRoutes.Get("/", middleware.RegionListCache(), dpcHandler.List)
	dpcRoutes.Post("/", auth, middleware.SuperAdminOnly(), dpcHandler.Create)
	dpcRoutes.Delete("/:id", auth, middleware.SuperAdminOnly(), dpcHandler.Delete)

	// Member administration routes (admins; scope narrows per role)
	memberRoutes := apiV1.Group("/members")
	memberRoutes.Use(auth, middleware.AdminOnly())
	setupMemberRoutes(memberRoutes, memberHandler)

	// Blacklist routes (authenticated; policy decides per operation)
	blacklistRoutes := apiV1.Group("/blacklist")
	blacklistRoutes.Use(auth)
	setupBlacklistRoutes(blacklistRoutes, blacklistHandler)

	// Finance routes (tenant ledger)
	financeRoutes := apiV1.Group("/finance")
	financeRoutes.Use(auth, middleware.NoCacheHeaders())
	setupFinanceRoutes(financeRoutes, financeHandler)

	// Pricing routes (tenant seasonal rates)
	pricingRoutes := apiV1.Group("/pricing")
	pricingRoutes.Use(auth)
	setupPricingRoutes(pricingRoutes, pricingHandler)

	// Dashboard routes
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(auth)
	dashboardRoutes.Get("/", dashboardHandler.GetMyDashboard)
	dashboardRoutes.Get("/admin", middleware.AdminOnly(), dashboardHandler.GetAdminDashboard)
	dashboardRoutes.Get("/tenant", dashboardHandler.GetTenantDashboard)

	return blacklistService, refreshTokenRepo
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, auth fiber.Handler) {
	// Public routes (rate limited against brute force)
	router.Post("/register", middleware.StrictRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", middleware.AuthRateLimiter(), handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", auth, handler.Me)
	router.Post("/logout-all", auth, handler.LogoutAll)
}

// setupMemberRoutes configures member administration routes
func setupMemberRoutes(router fiber.Router, handler *handlers.MemberHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.GetByID)
	router.Put("/:id/approve", handler.Approve)
	router.Put("/:id/deactivate", handler.Deactivate)
	router.Put("/:id/verify", handler.Verify)
}

// setupBlacklistRoutes configures blacklist routes
func setupBlacklistRoutes(router fiber.Router, handler *handlers.BlacklistHandler) {
	// Tenant submission and own reports
	router.Post("/reports", handler.Submit)
	router.Get("/reports/my", handler.ListMine)

	// Review workflow (policy narrows visibility per role)
	router.Get("/reports", middleware.AdminOnly(), handler.ListForReview)
	router.Put("/reports/:id/approve", middleware.AdminOnly(), handler.Approve)
	router.Put("/reports/:id/reject", middleware.AdminOnly(), handler.Reject)

	// Published registry (any authenticated member)
	router.Get("/global", handler.ListGlobal)
	router.Get("/global/search", handler.SearchGlobal)
}

// setupFinanceRoutes configures tenant ledger routes
func setupFinanceRoutes(router fiber.Router, handler *handlers.FinanceHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/summary", handler.GetSummary)
	router.Delete("/:id", handler.Delete)
}

// setupPricingRoutes configures seasonal rate routes
func setupPricingRoutes(router fiber.Router, handler *handlers.PricingHandler) {
	router.Post("/rates", handler.Create)
	router.Get("/rates", handler.List)
	router.Put("/rates/:id", handler.Update)
	router.Delete("/rates/:id", handler.Delete)
}
