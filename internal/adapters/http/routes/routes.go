package routes

import (
	"clubhub-backend/internal/adapters/http/handlers"
	"clubhub-backend/internal/adapters/http/middleware"
	"clubhub-backend/internal/adapters/persistence/repositories"
	"clubhub-backend/internal/config"
	"clubhub-backend/internal/core/services"
	"clubhub-backend/internal/pkg/mail"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps holds the services shared between the HTTP layer and the
// background scheduler, wired once in main.
type Deps struct {
	AuthService    *services.AuthService
	CatalogService *services.CatalogService
	MonitorService *services.MonitorService
	Recommender    *services.RecommenderService
	ClubRepo       repositories.ClubRepository
	TokenRepo      repositories.TokenRecordRepository
}

// BuildDeps initializes repositories and services
func BuildDeps(db *gorm.DB, sender mail.Sender, cfg *config.Config) *Deps {
	userRepo := repositories.NewUserRepository(db)
	tokenRepo := repositories.NewTokenRecordRepository(db)
	emailTokenRepo := repositories.NewEmailTokenRepository(db)
	preVerifiedRepo := repositories.NewPreVerifiedEmailRepository(db)
	clubRepo := repositories.NewClubRepository(db)
	tagRepo := repositories.NewTagRepository(db)

	recommender := services.NewRecommenderService(clubRepo)

	return &Deps{
		AuthService: services.NewAuthService(
			userRepo, tokenRepo, emailTokenRepo, preVerifiedRepo, clubRepo, tagRepo, sender, cfg,
		),
		CatalogService: services.NewCatalogService(clubRepo, tagRepo),
		MonitorService: services.NewMonitorService(userRepo, clubRepo, tokenRepo),
		Recommender:    recommender,
		ClubRepo:       clubRepo,
		TokenRepo:      tokenRepo,
	}
}

// Setup configures all routes for the application
func Setup(app *fiber.App, deps *Deps, cfg *config.Config) {
	healthHandler := handlers.NewHealthHandler()
	userHandler := handlers.NewUserHandler(deps.AuthService, cfg)
	catalogHandler := handlers.NewCatalogHandler(deps.CatalogService, deps.Recommender)
	monitorHandler := handlers.NewMonitorHandler(deps.MonitorService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api")

	userRoutes := api.Group("/user")
	setupUserRoutes(userRoutes, userHandler, deps.AuthService)

	catalogRoutes := api.Group("/catalog")
	setupCatalogRoutes(catalogRoutes, catalogHandler)

	monitorRoutes := api.Group("/monitor")
	monitorRoutes.Use(middleware.AccessTokenRequired(deps.AuthService))
	monitorRoutes.Use(middleware.AdminOnly())
	monitorRoutes.Get("/overview", monitorHandler.GetOverview)
}

// setupUserRoutes configures the user/auth routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler, authService *services.AuthService) {
	// Public routes
	router.Post("/email-exists", handler.EmailExists)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Get("/confirm/:token", handler.ConfirmEmail)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/request-reset", middleware.StrictRateLimiter(), handler.RequestReset)
	router.Post("/confirm-reset", middleware.StrictRateLimiter(), handler.ConfirmReset)

	// Refresh-token protected routes
	router.Post("/refresh", middleware.RefreshTokenRequired(authService), handler.Refresh)
	router.Delete("/revoke-refresh", middleware.RefreshTokenRequired(authService), handler.RevokeRefresh)

	// Access-token protected routes
	router.Delete("/revoke-access", middleware.AccessTokenRequired(authService), handler.RevokeAccess)
}

// setupCatalogRoutes configures the public catalog routes
func setupCatalogRoutes(router fiber.Router, handler *handlers.CatalogHandler) {
	router.Get("/clubs", handler.ListClubs)
	router.Get("/clubs/:slug", handler.GetClub)
	router.Get("/clubs/:slug/recommendations", handler.GetRecommendations)
	router.Get("/tags", handler.ListTags)
}
