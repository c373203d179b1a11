package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/cashbook-app/cashbook-sync/internal/adapters/database/sqlite"
	"github.com/cashbook-app/cashbook-sync/internal/adapters/gateway/rest"
	portsrepo "github.com/cashbook-app/cashbook-sync/internal/core/ports/repositories"
	"github.com/cashbook-app/cashbook-sync/internal/core/services"
	"github.com/cashbook-app/cashbook-sync/internal/handlers"
	"github.com/cashbook-app/cashbook-sync/internal/middleware"
	"github.com/cashbook-app/cashbook-sync/internal/platform/config"
	"github.com/cashbook-app/cashbook-sync/internal/utils"
	"github.com/cashbook-app/cashbook-sync/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Open the durable cache database
	db, err := database.NewSQLiteDB(cfg.CacheDBPath)
	if err != nil {
		logger.Error("Failed to open cache database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.CloseDB(db)

	logger.Info("Running cache migrations...")
	if err := sqlite.RunMigrations(cfg.CacheDBPath); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Cache migrations applied.")

	// Telemetry
	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	// Remote backend gateways
	backendClient := rest.NewClient(cfg.BackendBaseURL, cfg.GatewayTimeout)
	gateways := services.Gateways{
		Transactions: rest.NewRestTransactionGateway(backendClient),
		Membership:   rest.NewRestMembershipGateway(backendClient),
	}

	repos := portsrepo.RepositoryProvider{
		Cache: sqlite.NewSQLiteCacheRepository(db),
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, gateways, posthogClient)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors, rate limiting, telemetry)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)
	r.Use(middleware.RateLimit(ipLimiter))

	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
