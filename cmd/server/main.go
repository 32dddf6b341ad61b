package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/cache"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store/gormstore"
	"github.com/ahmetcoskunkizilkaya/crms-backend/internal/store/memory"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBDriver == config.DriverPostgres && cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	ctx := context.Background()

	// Store
	var (
		st           store.Store
		db           *gorm.DB
		dbLogHandler *logging.DBHandler
		cleanupDone  = make(chan struct{})
	)
	if cfg.DBDriver == config.DriverMemory {
		slog.Warn("using in-memory store; data is lost on restart")
		st = memory.New()
	} else {
		if err := database.Connect(cfg); err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		db = database.DB
		if err := database.Migrate(db); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
		st = gormstore.New(db)

		// DB log handler (ERROR+ async batch) and 30-day retention
		dbLogHandler = logging.NewDBHandler(db)
		logging.Attach(dbLogHandler)
		logging.StartCleanup(db, cleanupDone)
	}

	// Dashboard cache
	var (
		dashCache cache.Cache = cache.Noop{}
		pinger    handlers.Pinger
		redisC    *cache.Redis
	)
	if cfg.RedisURL != "" {
		r, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("redis unavailable, dashboard cache disabled", "error", err)
		} else {
			redisC, dashCache, pinger = r, r, r
			slog.Info("dashboard cache enabled", "ttl", cfg.DashboardCacheTTL)
		}
	}

	svc := services.New(st, dashCache, cfg)

	if err := svc.Auth.BootstrapAdmin(ctx); err != nil {
		slog.Error("admin bootstrap failed", "error", err)
		os.Exit(1)
	}
	if cfg.SeedOnStart {
		if _, err := svc.Seed.Seed(ctx); err != nil {
			slog.Error("seeding failed", "error", err)
		}
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, st, handlers.New(svc, st, pinger))

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "driver", cfg.DBDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	if dbLogHandler != nil {
		dbLogHandler.Stop()
	}
	sentry.Flush(2 * time.Second)

	if redisC != nil {
		if err := redisC.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}
	if db != nil {
		if err := database.Close(db); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}
