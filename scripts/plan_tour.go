//go:build ignore

// Plans a foodie tour from the command line and writes it to foodie_tours.json.
//
//	go run scripts/plan_tour.go -cities "Paris,New York,Tokyo"
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	appLogger "github.com/FACorreiaa/go-foodie-tour/app/logger"
	"github.com/FACorreiaa/go-foodie-tour/config"
	"github.com/FACorreiaa/go-foodie-tour/internal/api/extraction"
	generativeAI "github.com/FACorreiaa/go-foodie-tour/internal/api/generative_ai"
	"github.com/FACorreiaa/go-foodie-tour/internal/api/tour"
	"github.com/FACorreiaa/go-foodie-tour/internal/types"
)

var (
	cities = flag.String("cities", "Paris,New York,Tokyo", "comma separated list of cities")
	out    = flag.String("out", tour.ExportFilename, "output file")
)

// fileRepository stores the planned tour as an export file instead of a table.
type fileRepository struct {
	path string
}

func (f fileRepository) SaveTour(_ context.Context, t types.Tour, _ string) error {
	return tour.SaveExport(f.path, t)
}

func (f fileRepository) GetTour(_ context.Context, id uuid.UUID) (*types.Tour, error) {
	return nil, types.ErrTourNotFound
}

func (f fileRepository) ListTours(_ context.Context, _, _ int) ([]types.TourSummary, int, error) {
	return []types.TourSummary{}, 0, nil
}

func main() {
	flag.Parse()
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}
	logger := appLogger.New(os.Getenv("APP_ENV"), os.Stderr)

	ctx := context.Background()
	client, err := generativeAI.NewAIClient(ctx, os.Getenv("GOOGLE_GEMINI_API_KEY"), generativeAI.Settings{
		Model:           cfg.GenAI.Model,
		Temperature:     cfg.GenAI.Temperature,
		MaxOutputTokens: cfg.GenAI.MaxOutputTokens,
	})
	if err != nil {
		logger.Error("Failed to create generative AI client", slog.Any("error", err))
		os.Exit(1)
	}

	var req types.PlanTourRequest
	for _, c := range strings.Split(*cities, ",") {
		if c = strings.TrimSpace(c); c != "" {
			req.Cities = append(req.Cities, c)
		}
	}

	extractor := extraction.NewExtractor(extraction.DefaultDishKeywords().With(cfg.DishKeywordMap()))
	svc := tour.NewServiceImpl(fileRepository{path: *out}, client, extractor, tour.Options{Concurrency: cfg.GenAI.Concurrency}, logger)

	planned, err := svc.PlanTour(ctx, "cli", req)
	if err != nil {
		logger.Error("Failed to plan tour", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Println(planned.Narrative)
	logger.Info("Foodie tour saved", slog.String("file", *out), slog.Int("totalTokens", planned.Usage.TotalTokens))
}
