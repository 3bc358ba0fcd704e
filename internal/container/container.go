package container

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/go-foodie-tour/app/db"
	"github.com/FACorreiaa/go-foodie-tour/config"
	"github.com/FACorreiaa/go-foodie-tour/internal/api/extraction"
	generativeAI "github.com/FACorreiaa/go-foodie-tour/internal/api/generative_ai"
	"github.com/FACorreiaa/go-foodie-tour/internal/api/tour"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *slog.Logger
	Pool        *pgxpool.Pool
	TourService *tour.ServiceImpl
	TourHandler *tour.HandlerImpl
}

// NewContainer initializes and returns a new dependency container. The pool
// must already be connected.
func NewContainer(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (*Container, error) {
	generator, err := newGenerator(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	extractor := extraction.NewExtractor(extraction.DefaultDishKeywords().With(cfg.DishKeywordMap()))

	tourRepo := tour.NewRepository(pool, logger)
	tourService := tour.NewServiceImpl(tourRepo, generator, extractor, tour.Options{
		CacheTTL:     cfg.Tour.CacheTTL,
		CacheCleanup: cfg.Tour.CacheCleanup,
		Concurrency:  cfg.GenAI.Concurrency,
	}, logger)
	tourHandler := tour.NewHandlerImpl(tourService, logger)

	return &Container{
		Config:      cfg,
		Logger:      logger,
		Pool:        pool,
		TourService: tourService,
		TourHandler: tourHandler,
	}, nil
}

// newGenerator returns nil when no API key is configured; tour planning is
// then unavailable but extraction keeps working.
func newGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (tour.NarrativeGenerator, error) {
	client, err := generativeAI.NewAIClient(ctx, os.Getenv("GOOGLE_GEMINI_API_KEY"), generativeAI.Settings{
		Model:           cfg.GenAI.Model,
		Temperature:     cfg.GenAI.Temperature,
		MaxOutputTokens: cfg.GenAI.MaxOutputTokens,
	})
	if errors.Is(err, generativeAI.ErrMissingAPIKey) {
		logger.Warn("GOOGLE_GEMINI_API_KEY not set, tour planning disabled")
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to create generative AI client", slog.Any("error", err))
		return nil, err
	}
	logger.Info("Generative AI client ready", slog.String("model", client.Model()))
	return client, nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// WaitForDB waits for the database to be ready
func (c *Container) WaitForDB(ctx context.Context) bool {
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}
