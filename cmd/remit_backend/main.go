package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/fxdesk/remittance_backend/internal/adapters/a2form"
	"github.com/fxdesk/remittance_backend/internal/adapters/mailer"
	"github.com/fxdesk/remittance_backend/internal/adapters/ratesource"
	"github.com/fxdesk/remittance_backend/internal/adapters/storage"
	"github.com/fxdesk/remittance_backend/internal/adapters/transfer"
	"github.com/fxdesk/remittance_backend/internal/core/services"
	"github.com/fxdesk/remittance_backend/internal/handlers"
	"github.com/fxdesk/remittance_backend/internal/middleware"
	"github.com/fxdesk/remittance_backend/internal/platform/config"
	"github.com/fxdesk/remittance_backend/internal/repositories/database/pgsql"
	"github.com/fxdesk/remittance_backend/internal/utils"
	"github.com/fxdesk/remittance_backend/internal/validation"
	"github.com/fxdesk/remittance_backend/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/redis/go-redis/v9"
)

// @title Remittance Backend API
// @version 1.0
// @description Order intake, pricing and settlement documents for outward remittances.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := validation.RegisterWithGin(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	deps, err := buildDependencies(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize adapters", slog.String("error", err.Error()))
		os.Exit(1)
	}
	deps.Events = posthogClient

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, deps)

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("Invalid REDIS_URL", slog.String("error", err.Error()))
			os.Exit(1)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
		logger.Info("Login rate limit counters stored in redis")
	}
	loginLimiter, err := middleware.NewLimiter(cfg.LoginRateLimit, redisClient, "login")
	if err != nil {
		logger.Error("Failed to create login limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, analytics)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, loginLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildDependencies wires the outbound adapters from configuration.
func buildDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (services.Dependencies, error) {
	objectStorage, err := storage.NewS3StorageFromEnv(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.CloudFrontBaseURL, cfg.PresignExpiry)
	if err != nil {
		return services.Dependencies{}, err
	}

	layout, err := a2form.LoadLayout(cfg.A2LayoutPath)
	if err != nil {
		return services.Dependencies{}, err
	}
	renderer := a2form.NewRenderer(layout, cfg.A2TemplateURL, resty.New().SetTimeout(cfg.DownloadTimeout))

	return services.Dependencies{
		RateSource: ratesource.NewClient(cfg.RateSourceURL, cfg.RateSourceTimeout, cfg.RateCacheTTL),
		Storage:    objectStorage,
		Transfer:   transfer.NewHTTPTransfer(cfg.DownloadTimeout),
		Mailer:     mailer.NewMailer(cfg, logger),
		Renderer:   renderer,
	}, nil
}
