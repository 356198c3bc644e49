package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"movie-discovery-service/internal/config"
	"movie-discovery-service/internal/database"
	"movie-discovery-service/internal/handler"
	"movie-discovery-service/internal/middleware"
	"movie-discovery-service/internal/repository"
	"movie-discovery-service/internal/service"
)

func main() {
	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis (non-fatal if unavailable)
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without cache", "error", err)
	}

	// Initialize layers
	repo := repository.NewMovieRepository(db)
	svc := service.NewDiscoveryService(repo, rdb)
	h := handler.NewDiscoveryHandler(svc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Movie Discovery Service",
		ServerHeader: "Movie-Discovery",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(handler.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	if rdb != nil {
		limiter := middleware.NewRateLimiter(
			middleware.NewRedisCounterStore(rdb),
			cfg.RateLimit.MaxRequests,
			cfg.RateLimit.WindowSec,
		)
		app.Use(limiter.Handler())
	}

	// Swagger docs
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	} else {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	// API routes
	api := app.Group("/api/v1")
	api.Get("/health", h.Health)
	api.Get("/movies", h.ListMovies)
	api.Get("/movies/:id", h.GetMovie)
	api.Get("/movies/:id/similar", h.Similar)
	api.Get("/search", h.Search)
	api.Get("/search/semantic", h.SemanticSearch)
	api.Get("/discover/pick", h.Pick)
	api.Get("/discover/random", h.Random)
	api.Get("/discover/mood/:mood", h.Mood)
	api.Get("/discover/date-night", h.DateNight)
	api.Post("/discover/recommend", h.Recommend)

	admin := api.Group("/admin", middleware.AdminAuth(cfg.AdminAPIToken))
	admin.Post("/movies", h.SeedMovies)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down movie discovery service...")
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting movie discovery service", "addr", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
