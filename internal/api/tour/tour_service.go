package tour

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-foodie-tour/app/observability/metrics"
	"github.com/FACorreiaa/go-foodie-tour/internal/api/extraction"
	"github.com/FACorreiaa/go-foodie-tour/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service plans, extracts and retrieves foodie tours.
type Service interface {
	ExtractTours(ctx context.Context, doc types.NarrativeDocument) (types.CityRecords, error)
	PlanTour(ctx context.Context, userID string, req types.PlanTourRequest) (*types.Tour, error)
	GetTour(ctx context.Context, id uuid.UUID) (*types.Tour, error)
	ListTours(ctx context.Context, page, pageSize int) (*types.PaginatedTours, error)
}

// NarrativeGenerator produces the narrative text for a single prompt.
type NarrativeGenerator interface {
	GenerateNarrative(ctx context.Context, prompt string) (string, types.TokenUsage, error)
}

type Options struct {
	CacheTTL     time.Duration
	CacheCleanup time.Duration
	Concurrency  int
}

type ServiceImpl struct {
	logger      *slog.Logger
	repo        Repository
	generator   NarrativeGenerator
	extractor   *extraction.Extractor
	cache       *cache.Cache
	metrics     *metrics.AppMetrics
	concurrency int
	now         func() time.Time
}

// NewServiceImpl wires the tour service. A nil generator disables PlanTour.
func NewServiceImpl(repo Repository, generator NarrativeGenerator, extractor *extraction.Extractor, opts Options, logger *slog.Logger) *ServiceImpl {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 24 * time.Hour
	}
	if opts.CacheCleanup <= 0 {
		opts.CacheCleanup = time.Hour
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 3
	}
	return &ServiceImpl{
		logger:      logger,
		repo:        repo,
		generator:   generator,
		extractor:   extractor,
		cache:       cache.New(opts.CacheTTL, opts.CacheCleanup),
		metrics:     metrics.Get(),
		concurrency: opts.Concurrency,
		now:         time.Now,
	}
}

// extractionCacheKey hashes the narrative and every city, each prefixed with
// its length, so distinct documents never share a key.
func extractionCacheKey(doc types.NarrativeDocument) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d:%s", len(doc.Narrative), doc.Narrative)
	fmt.Fprintf(h, "%d:", len(doc.Cities))
	for _, city := range doc.Cities {
		fmt.Fprintf(h, "%d:%s", len(city), city)
	}
	return "tours:" + hex.EncodeToString(h.Sum(nil))
}

func (s *ServiceImpl) ExtractTours(ctx context.Context, doc types.NarrativeDocument) (types.CityRecords, error) {
	ctx, span := otel.Tracer("TourService").Start(ctx, "ExtractTours", trace.WithAttributes(
		attribute.StringSlice("cities", doc.Cities),
		attribute.Int("narrative.length", len(doc.Narrative)),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "ExtractTours"))

	if err := types.ValidateCities(doc.Cities); err != nil {
		l.WarnContext(ctx, "Rejected extraction request", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid cities")
		return nil, err
	}

	key := extractionCacheKey(doc)
	if cached, found := s.cache.Get(key); found {
		if records, ok := cached.(types.CityRecords); ok {
			l.DebugContext(ctx, "Serving extraction from cache")
			span.SetAttributes(attribute.Bool("cache.hit", true))
			span.SetStatus(codes.Ok, "Served from cache")
			return records, nil
		}
	}

	records := s.extract(ctx, doc)
	s.cache.Set(key, records, cache.DefaultExpiration)

	span.SetStatus(codes.Ok, "Narrative extracted")
	return records, nil
}

// extract runs the extractor and records its metrics.
func (s *ServiceImpl) extract(ctx context.Context, doc types.NarrativeDocument) types.CityRecords {
	start := time.Now()
	records := s.extractor.Extract(doc)
	s.metrics.ExtractionDurationSeconds.Record(ctx, time.Since(start).Seconds())
	s.metrics.ToursExtractedTotal.Add(ctx, int64(len(records)))

	for _, ct := range records {
		for _, w := range ct.Record.Warnings {
			s.metrics.ExtractionWarningsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(w.Kind))))
			s.logger.WarnContext(ctx, "Extraction warning",
				slog.String("city", ct.City),
				slog.String("kind", string(w.Kind)),
				slog.String("detail", w.Detail))
		}
	}
	return records
}

func (s *ServiceImpl) PlanTour(ctx context.Context, userID string, req types.PlanTourRequest) (*types.Tour, error) {
	ctx, span := otel.Tracer("TourService").Start(ctx, "PlanTour", trace.WithAttributes(
		attribute.StringSlice("cities", req.Cities),
		attribute.String("user.id", userID),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "PlanTour"), slog.String("userID", userID))

	if err := types.ValidateCities(req.Cities); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid cities")
		return nil, err
	}
	if s.generator == nil {
		span.SetStatus(codes.Error, "Generator not configured")
		return nil, types.ErrGenerationUnavailable
	}

	narrative, usage, err := s.generateNarrative(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to generate narrative", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Narrative generation failed")
		return nil, err
	}
	s.metrics.LLMTokensTotal.Add(ctx, int64(usage.TotalTokens))

	doc := types.NarrativeDocument{Narrative: narrative, Cities: req.Cities}
	tour := &types.Tour{
		ID:        uuid.New(),
		Cities:    req.Cities,
		Tours:     s.extract(ctx, doc),
		CreatedAt: s.now().UTC(),
		Usage:     usage,
		Narrative: narrative,
	}

	if err := s.repo.SaveTour(ctx, *tour, userID); err != nil {
		l.ErrorContext(ctx, "Failed to save tour", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save tour")
		return nil, fmt.Errorf("failed to save tour: %w", err)
	}

	l.InfoContext(ctx, "Tour planned",
		slog.String("tourID", tour.ID.String()),
		slog.Int("cities", len(tour.Cities)),
		slog.Int("totalTokens", usage.TotalTokens))
	span.SetAttributes(attribute.String("tour.id", tour.ID.String()))
	span.SetStatus(codes.Ok, "Tour planned")
	return tour, nil
}

// generateNarrative asks the generator for one narrative per city, bounded by
// the configured concurrency, and joins them in request order.
func (s *ServiceImpl) generateNarrative(ctx context.Context, req types.PlanTourRequest) (string, types.TokenUsage, error) {
	parts := make([]string, len(req.Cities))
	usages := make([]types.TokenUsage, len(req.Cities))
	keywords := s.extractor.Keywords()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, city := range req.Cities {
		g.Go(func() error {
			var weather *types.Weather
			if w, ok := req.Weather[city]; ok {
				weather = &w
			}
			dishes, _ := keywords.Lookup(city)

			text, usage, err := s.generator.GenerateNarrative(gctx, getFoodieTourPrompt(city, weather, dishes))
			if err != nil {
				return fmt.Errorf("failed to generate narrative for %s: %w", city, err)
			}
			parts[i] = ensureMarker(extraction.Marker(city), text)
			usages[i] = usage
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", types.TokenUsage{}, err
	}

	var total types.TokenUsage
	for _, u := range usages {
		total = total.Add(u)
	}
	return strings.Join(parts, extraction.NarrativeSeparator), total, nil
}

func (s *ServiceImpl) GetTour(ctx context.Context, id uuid.UUID) (*types.Tour, error) {
	ctx, span := otel.Tracer("TourService").Start(ctx, "GetTour", trace.WithAttributes(
		attribute.String("tour.id", id.String()),
	))
	defer span.End()

	tour, err := s.repo.GetTour(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to get tour")
		return nil, err
	}
	span.SetStatus(codes.Ok, "Tour retrieved")
	return tour, nil
}

func (s *ServiceImpl) ListTours(ctx context.Context, page, pageSize int) (*types.PaginatedTours, error) {
	ctx, span := otel.Tracer("TourService").Start(ctx, "ListTours", trace.WithAttributes(
		attribute.Int("page", page),
		attribute.Int("page_size", pageSize),
	))
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	summaries, total, err := s.repo.ListTours(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list tours", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list tours")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Tours listed")
	return &types.PaginatedTours{
		Tours:    summaries,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
