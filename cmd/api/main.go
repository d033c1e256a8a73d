package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"devsa-jobs/internal/config"
	"devsa-jobs/internal/database"
	"devsa-jobs/internal/handler"
	applogger "devsa-jobs/internal/logger"
	"devsa-jobs/internal/metrics"
	"devsa-jobs/internal/middleware"
	"devsa-jobs/internal/pkg/i18n"
	"devsa-jobs/internal/repository"
	"devsa-jobs/internal/service"
	"devsa-jobs/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	applogger.SetupDefault(os.Stdout, cfg.LogLevel)
	i18n.SetDefaultLocale(cfg.Locale)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if cfg.RunMigrations {
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return err
		}
	}

	db, err := config.NewPostgresDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var redisClient *redis.Client
	if client, err := config.NewRedisClient(ctx, cfg); err != nil {
		slog.Warn("redis unavailable, comment cache disabled", slog.Any("error", err))
	} else {
		redisClient = client
		defer redisClient.Close()
	}

	var minioClient *minio.Client
	if client, err := config.NewMinIOClient(ctx, cfg); err != nil {
		slog.Warn("object storage unavailable, profile image upload disabled", slog.Any("error", err))
	} else {
		minioClient = client
	}

	verifier, err := newVerifier(ctx, cfg)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewCollector(registry)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, verifier, recorder, cfg)
	handlers := handler.NewHandlers(services)

	limiter := middleware.NewRateLimiter(middleware.PerMinute(cfg.WriteRateLimit))
	defer limiter.Stop()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    6 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	app.Use(middleware.Metrics(recorder))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(registry)))

	handlers.Register(app.Group("/api/v1"), services.Gate, limiter.Handler())

	relayCtx, cancelRelay := context.WithCancel(ctx)
	relayDone := make(chan struct{})
	go func() {
		defer close(relayDone)
		services.Relay.Run(relayCtx)
	}()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", slog.String("port", cfg.Port), slog.String("environment", cfg.Environment))
		serverErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err = <-serverErr:
	case <-ctx.Done():
		slog.Info("shutting down")
		err = app.ShutdownWithTimeout(10 * time.Second)
	}

	cancelRelay()
	<-relayDone

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newVerifier prefers the OIDC issuer and falls back to the shared-secret
// verifier for local development.
func newVerifier(ctx context.Context, cfg *config.Config) (auth.Verifier, error) {
	if cfg.UsesOIDC() {
		slog.Info("verifying ID tokens with OIDC issuer", slog.String("issuer", cfg.AuthIssuer))
		return auth.NewOIDCVerifier(ctx, cfg.AuthIssuer, cfg.AuthAudience, cfg.SuperAdminEmails)
	}

	slog.Warn("AUTH_ISSUER not set, verifying HS256 tokens with JWT_SECRET")
	return auth.NewJWTVerifier(cfg.JWTSecret, "", cfg.SuperAdminEmails)
}
