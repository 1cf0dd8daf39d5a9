package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/t-ecosystem/market_api/internal/cache"
	"github.com/t-ecosystem/market_api/internal/catalog"
	"github.com/t-ecosystem/market_api/internal/config"
	"github.com/t-ecosystem/market_api/internal/database"
	"github.com/t-ecosystem/market_api/internal/handler"
	"github.com/t-ecosystem/market_api/internal/middleware"
	"github.com/t-ecosystem/market_api/internal/repository"
	"github.com/t-ecosystem/market_api/internal/service"
	"github.com/t-ecosystem/market_api/internal/sse"
	"github.com/t-ecosystem/market_api/internal/utils"
	"github.com/t-ecosystem/market_api/internal/worker"
	"github.com/t-ecosystem/market_api/pkg/stripe"
)

// main is the application entrypoint for the T-Ecosystem store API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting market api")

	utils.SetJWTSecret(cfg.JWTSecret)

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 4. Build the module catalog and recommendation registry
	cat, err := catalog.New(catalog.SeedModules())
	if err != nil {
		log.Error().Err(err).Msg("catalog validation failed")
		os.Exit(1)
	}
	featureMap := catalog.SeedFeatureMap()
	recRegistry := catalog.SeedRecommendations()

	// 5. Initialize payment client
	stripeClient := stripe.NewClient(stripe.Config{
		SecretKey:     cfg.Stripe.SecretKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
	})

	// 6. Initialize repositories and caches
	userRepo := repository.NewUserRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	sessionRepo := repository.NewCheckoutSessionRepository(db)
	entitlementCache := cache.NewEntitlementCache(redisClient)
	installLock := cache.NewInstallLock(redisClient)

	// 7. Initialize SSE hub
	hub := sse.NewHub()

	// 8. Initialize services
	authSvc := service.NewAuthService(userRepo)
	catalogSvc := service.NewCatalogService(cat)
	entitlementSvc := service.NewEntitlementService(cat, purchaseRepo, entitlementCache, installLock, hub)
	accessSvc := service.NewAccessService(featureMap, entitlementSvc)
	recommendationSvc := service.NewRecommendationService(recRegistry)
	checkoutSvc := service.NewCheckoutService(cat, stripeClient, sessionRepo, entitlementSvc, hub, cfg.Stripe)

	// 9. Initialize handlers
	loginLimiter := middleware.NewInvalidAuthRateLimiter()
	handlers := &Handlers{
		Health:         handler.NewHealthHandler(db, redisClient),
		Auth:           handler.NewAuthHandler(authSvc, loginLimiter),
		Module:         handler.NewModuleHandler(catalogSvc),
		Entitlement:    handler.NewEntitlementHandler(entitlementSvc),
		Access:         handler.NewAccessHandler(accessSvc),
		Recommendation: handler.NewRecommendationHandler(recommendationSvc),
		Checkout:       handler.NewCheckoutHandler(checkoutSvc),
		Webhook:        handler.NewWebhookHandler(checkoutSvc),
		SSE:            handler.NewSSEHandler(hub),
	}

	// 10. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, middleware.NewJWTMiddleware())

	// 11. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 12. Start workers
	go worker.NewReconcileWorker(checkoutSvc, cfg.Worker).Start(ctx)

	// 13. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 14. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 15. Cancel context to stop workers
	cancel()

	// 16. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health         *handler.HealthHandler
	Auth           *handler.AuthHandler
	Module         *handler.ModuleHandler
	Entitlement    *handler.EntitlementHandler
	Access         *handler.AccessHandler
	Recommendation *handler.RecommendationHandler
	Checkout       *handler.CheckoutHandler
	Webhook        *handler.WebhookHandler
	SSE            *handler.SSEHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	// Payment provider webhook
	router.POST("/webhook/stripe", handlers.Webhook.HandleStripe)

	router.GET("/v1/health", handlers.Health.Health)

	// Auth
	router.POST("/v1/auth/register", handlers.Auth.Register)
	router.POST("/v1/auth/login", handlers.Auth.Login)

	// Public catalog
	router.GET("/v1/modules", handlers.Module.ListModules)
	router.GET("/v1/modules/:id", handlers.Module.GetModule)
	router.GET("/v1/modules/:id/addons", handlers.Module.ListAddons)

	// SSE stream authenticates via query token
	router.GET("/v1/events", handlers.SSE.Stream)

	// Authenticated surface
	authed := router.Group("/v1")
	authed.Use(jwtMiddleware.Handle())
	{
		authed.GET("/entitlements", handlers.Entitlement.ListEntitlements)
		authed.POST("/modules/:id/install", handlers.Entitlement.InstallModule)
		authed.DELETE("/modules/:id/install", handlers.Entitlement.UninstallModule)
		authed.GET("/access/:featureKey", handlers.Access.CheckFeature)
		authed.POST("/recommendations", handlers.Recommendation.GetRecommendations)
		authed.POST("/checkout/session", handlers.Checkout.CreateSession)
		authed.GET("/checkout/session/:sessionId", handlers.Checkout.GetSession)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
