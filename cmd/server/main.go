package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weathercast/backend/internal/config"
	"github.com/weathercast/backend/internal/delivery/http"
	"github.com/weathercast/backend/internal/logger"
	"github.com/weathercast/backend/internal/repository/memory"
	"github.com/weathercast/backend/internal/repository/postgres"
	"github.com/weathercast/backend/internal/scheduler"
	"github.com/weathercast/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.New(logger.ParseLevel(cfg.LogLevel))

	// Prediction log storage
	repo, closeRepo := openRepository(cfg, log)
	defer closeRepo()

	// Dependency Injection: Services
	mock := service.NewMockPredictor(nil, nil)
	mlBridge := service.NewMLBridge(service.BridgeConfig{
		Endpoint:        cfg.MLServiceURL,
		FallbackEnabled: cfg.MLFallbackEnabled,
		Timeout:         cfg.MLTimeout,
		BreakerEnabled:  cfg.MLBreakerEnabled,
		RateLimit:       cfg.MLRateLimit,
		RateBurst:       cfg.MLRateBurst,
	}, mock, log)
	predictionSvc := service.NewPredictionService(mlBridge, repo, nil, log)
	modelSvc := service.NewModelService(nil, service.NewForecastGenerator(nil, nil))

	monitor := scheduler.NewMonitor(mlBridge, cfg.HealthInterval, log)
	if err := monitor.Start(); err != nil {
		log.Error("failed to start ml service monitor", logger.Err(err))
		os.Exit(1)
	}
	defer monitor.Stop()

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "Weather Prediction API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	http.SetupRoutes(app, http.NewHandler(predictionSvc, modelSvc, monitor))

	go func() {
		log.Info("server starting", slog.String("port", cfg.Port), slog.String("env", cfg.Env),
			slog.String("ml_service", cfg.MLServiceURL), slog.Bool("fallback", cfg.MLFallbackEnabled))
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server error", logger.Err(err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Warn("server forced to shutdown", logger.Err(err))
	}
	predictionSvc.WaitBackground()
	log.Info("server exited gracefully")
}

// openRepository connects to PostgreSQL when DATABASE_URL is set and falls
// back to the in-memory log otherwise
func openRepository(cfg *config.Config, log *logger.Logger) (service.PredictionRepository, func()) {
	fallback := func() (service.PredictionRepository, func()) {
		log.Info("using in-memory prediction log", slog.Int("max_entries", cfg.HistoryMax))
		return memory.NewRepository(cfg.HistoryMax), func() {}
	}
	if cfg.DatabaseURL == "" {
		return fallback()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err == nil {
		err = pool.Ping(ctx)
	}
	if err != nil {
		log.Warn("could not connect to database", logger.Err(err))
		if pool != nil {
			pool.Close()
		}
		return fallback()
	}

	repo := postgres.NewPostgresRepository(pool)
	if err := repo.Migrate(ctx); err != nil {
		log.Warn("could not migrate database", logger.Err(err))
		pool.Close()
		return fallback()
	}

	log.Info("connected to PostgreSQL")
	return repo, pool.Close
}
