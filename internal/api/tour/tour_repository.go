package tour

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-foodie-tour/app/observability/metrics"
	"github.com/FACorreiaa/go-foodie-tour/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// DB is the subset of *pgxpool.Pool used by the repository.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository interface {
	SaveTour(ctx context.Context, tour types.Tour, userID string) error
	GetTour(ctx context.Context, id uuid.UUID) (*types.Tour, error)
	ListTours(ctx context.Context, limit, offset int) ([]types.TourSummary, int, error)
}

type RepositoryImpl struct {
	logger *slog.Logger
	db     DB
}

func NewRepository(db DB, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		db:     db,
	}
}

const (
	insertTourQuery = `
        INSERT INTO foodie_tours (
            id, cities, narrative, tours, prompt_tokens, completion_tokens, total_tokens, user_id, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	selectTourQuery = `
        SELECT id, cities, narrative, tours, prompt_tokens, completion_tokens, total_tokens, created_at
        FROM foodie_tours
        WHERE id = $1`

	countToursQuery = `SELECT COUNT(*) FROM foodie_tours`

	listToursQuery = `
        SELECT id, cities, prompt_tokens, completion_tokens, total_tokens, created_at
        FROM foodie_tours
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`
)

func (r *RepositoryImpl) SaveTour(ctx context.Context, tour types.Tour, userID string) error {
	ctx, span := otel.Tracer("TourRepository").Start(ctx, "SaveTour", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("tour.id", tour.ID.String()),
	))
	defer span.End()

	toursJSON, err := json.Marshal(tour.Tours)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to encode tours")
		return fmt.Errorf("failed to encode tours: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.recordDBError(ctx, span, err, "Failed to start transaction")
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	if _, err := tx.Exec(ctx, insertTourQuery,
		tour.ID, tour.Cities, tour.Narrative, toursJSON,
		tour.Usage.PromptTokens, tour.Usage.CompletionTokens, tour.Usage.TotalTokens,
		userID, tour.CreatedAt,
	); err != nil {
		_ = tx.Rollback(ctx)
		r.recordDBError(ctx, span, err, "Failed to insert tour")
		return fmt.Errorf("failed to insert tour: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.recordDBError(ctx, span, err, "Failed to commit transaction")
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.DebugContext(ctx, "Tour saved", slog.String("tourID", tour.ID.String()))
	span.SetStatus(codes.Ok, "Tour saved")
	return nil
}

func (r *RepositoryImpl) GetTour(ctx context.Context, id uuid.UUID) (*types.Tour, error) {
	ctx, span := otel.Tracer("TourRepository").Start(ctx, "GetTour", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("tour.id", id.String()),
	))
	defer span.End()

	var (
		tour      types.Tour
		toursJSON []byte
	)
	err := r.db.QueryRow(ctx, selectTourQuery, id).Scan(
		&tour.ID, &tour.Cities, &tour.Narrative, &toursJSON,
		&tour.Usage.PromptTokens, &tour.Usage.CompletionTokens, &tour.Usage.TotalTokens,
		&tour.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "Tour not found")
			return nil, fmt.Errorf("%w: %s", types.ErrTourNotFound, id)
		}
		r.recordDBError(ctx, span, err, "Failed to query tour")
		return nil, fmt.Errorf("failed to query tour: %w", err)
	}

	if err := json.Unmarshal(toursJSON, &tour.Tours); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to decode tours")
		return nil, fmt.Errorf("failed to decode tours for %s: %w", id, err)
	}
	// key order is not guaranteed once stored; cities is authoritative
	tour.Tours = tour.Tours.OrderedBy(tour.Cities)

	span.SetStatus(codes.Ok, "Tour retrieved")
	return &tour, nil
}

func (r *RepositoryImpl) ListTours(ctx context.Context, limit, offset int) ([]types.TourSummary, int, error) {
	ctx, span := otel.Tracer("TourRepository").Start(ctx, "ListTours", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.Int("limit", limit),
		attribute.Int("offset", offset),
	))
	defer span.End()

	var total int
	if err := r.db.QueryRow(ctx, countToursQuery).Scan(&total); err != nil {
		r.recordDBError(ctx, span, err, "Failed to count tours")
		return nil, 0, fmt.Errorf("failed to count tours: %w", err)
	}

	rows, err := r.db.Query(ctx, listToursQuery, limit, offset)
	if err != nil {
		r.recordDBError(ctx, span, err, "Failed to query tours")
		return nil, 0, fmt.Errorf("failed to query tours: %w", err)
	}
	defer rows.Close()

	summaries := []types.TourSummary{}
	for rows.Next() {
		var s types.TourSummary
		if err := rows.Scan(&s.ID, &s.Cities,
			&s.Usage.PromptTokens, &s.Usage.CompletionTokens, &s.Usage.TotalTokens,
			&s.CreatedAt,
		); err != nil {
			r.recordDBError(ctx, span, err, "Failed to scan tour row")
			return nil, 0, fmt.Errorf("failed to scan tour row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		r.recordDBError(ctx, span, err, "Error iterating tour rows")
		return nil, 0, fmt.Errorf("error iterating tour rows: %w", err)
	}

	span.SetAttributes(attribute.Int("results.count", len(summaries)), attribute.Int("results.total", total))
	span.SetStatus(codes.Ok, "Tours listed")
	return summaries, total, nil
}

func (r *RepositoryImpl) recordDBError(ctx context.Context, span trace.Span, err error, msg string) {
	metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	r.logger.ErrorContext(ctx, msg, slog.Any("error", err))
}
