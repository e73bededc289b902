package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/casaline/listing-portal/docs"
	"github.com/casaline/listing-portal/internal/api/handler"
	"github.com/casaline/listing-portal/internal/api/middleware"
	"github.com/casaline/listing-portal/internal/core/domain"
	"github.com/casaline/listing-portal/internal/core/service"
	"github.com/casaline/listing-portal/internal/infrastructure/config"
	mongorepo "github.com/casaline/listing-portal/internal/infrastructure/db/mongo"
	redisrepo "github.com/casaline/listing-portal/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(db)
	profileRepo := mongorepo.NewProfileRepository(db)
	listingRepo := mongorepo.NewListingRepository(db)
	upgradeRepo := mongorepo.NewUpgradeRequestRepository(db)
	planRepo := mongorepo.NewPlanRepository(db)
	entitlementCache := redisrepo.NewEntitlementCache(rdb, cfg.Entitlement.CacheTTL)

	// --- Services ---
	subscriptionService := service.NewSubscriptionService(profileRepo, log)
	authService := service.NewAuthService(userRepo, profileRepo, entitlementCache, cfg.JWTSecret, cfg.TokenTTL, log)
	entitlementService := service.NewEntitlementService(userRepo, profileRepo, listingRepo, subscriptionService, entitlementCache, log)
	listingService := service.NewListingService(listingRepo, profileRepo, subscriptionService, log)
	upgradeService := service.NewUpgradeService(upgradeRepo, planRepo, profileRepo, log)
	approvalService := service.NewApprovalService(userRepo, profileRepo, upgradeRepo, subscriptionService, entitlementCache, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	listingHandler := handler.NewListingHandler(listingService)
	entitlementHandler := handler.NewEntitlementHandler(entitlementService)
	upgradeHandler := handler.NewUpgradeHandler(upgradeService)
	adminHandler := handler.NewAdminHandler(approvalService)
	planHandler := handler.NewPlanHandler(planRepo)

	auth := middleware.Auth(cfg.JWTSecret)

	anyRole := []domain.Role{domain.RoleAdministrator, domain.RoleAgent}
	agentOnly := []domain.Role{domain.RoleAgent}
	adminOnly := []domain.Role{domain.RoleAdministrator}
	approvedOnly := []domain.AgentStatus{domain.StatusApproved}

	guardAny := middleware.Guard(entitlementService, anyRole, nil)
	guardAgent := middleware.Guard(entitlementService, agentOnly, nil)
	guardApprovedAgent := middleware.Guard(entitlementService, agentOnly, approvedOnly)
	guardAdmin := middleware.Guard(entitlementService, adminOnly, nil)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, auth)

	// --- Plan catalog (public: shown on the upgrade page before login) ---
	e.GET("/v1/plans", planHandler.List)

	// --- Listings ---
	listings := e.Group("/v1/listings", auth)
	listings.GET("", listingHandler.List, guardAny)
	listings.GET("/:id", listingHandler.Get, guardAny)
	listings.POST("", listingHandler.Create, guardApprovedAgent)
	// Agents remove their own; administrators moderate any.
	listings.DELETE("/:id", listingHandler.Remove, guardAny)

	// --- Entitlement dashboard (pending agents see their own status too) ---
	e.GET("/v1/entitlement", entitlementHandler.Summary, auth, guardAgent)

	// --- Upgrade requests ---
	upgrades := e.Group("/v1/upgrade-requests", auth, guardApprovedAgent)
	upgrades.POST("", upgradeHandler.Submit)
	upgrades.GET("", upgradeHandler.ListOwn)

	// --- Administrator review queues ---
	admin := e.Group("/v1/admin", auth, guardAdmin)
	admin.GET("/signups", adminHandler.ListPendingSignups)
	admin.POST("/signups/:user_id/approve", adminHandler.ApproveSignup)
	admin.POST("/signups/:user_id/reject", adminHandler.RejectSignup)
	admin.GET("/upgrade-requests", adminHandler.ListUpgradeRequests)
	admin.POST("/upgrade-requests/:id/approve", adminHandler.ApproveUpgrade)
	admin.POST("/upgrade-requests/:id/reject", adminHandler.RejectUpgrade)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
