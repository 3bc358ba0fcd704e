package tour

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	appMiddleware "github.com/FACorreiaa/go-foodie-tour/app/middleware"
	"github.com/FACorreiaa/go-foodie-tour/internal/api"
	"github.com/FACorreiaa/go-foodie-tour/internal/types"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type HandlerImpl struct {
	logger  *slog.Logger
	service Service
}

func NewHandlerImpl(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		logger:  logger,
		service: service,
	}
}

func (h *HandlerImpl) startSpan(r *http.Request, name, route string) (trace.Span, *http.Request) {
	ctx, span := otel.Tracer("TourHandler").Start(r.Context(), name, trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String(route),
	))
	return span, r.WithContext(ctx)
}

func (h *HandlerImpl) fail(w http.ResponseWriter, r *http.Request, span trace.Span, l *slog.Logger, err error, msg string) {
	status := api.StatusForError(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		l.ErrorContext(r.Context(), msg, slog.Any("error", err))
	} else {
		l.WarnContext(r.Context(), msg, slog.Any("error", err))
		msg = err.Error()
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	api.ErrorResponse(w, r, status, msg)
}

// ExtractTours godoc
// @Summary      Extract tours from a narrative
// @Description  Splits a multi-city narrative into per-city dishes, restaurants and itinerary.
// @Tags         Tours
// @Accept       json
// @Produce      json
// @Param        document body types.NarrativeDocument true "Narrative and ordered cities"
// @Success      200 {object} types.ExtractToursResponse "Extracted tours"
// @Failure      400 {object} types.Response "Bad Request"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Router       /tours/extract [post]
func (h *HandlerImpl) ExtractTours(w http.ResponseWriter, r *http.Request) {
	span, r := h.startSpan(r, "ExtractTours", "/api/v1/tours/extract")
	defer span.End()
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "ExtractTours"))

	var doc types.NarrativeDocument
	if err := api.DecodeJSONBody(w, r, &doc); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.service.ExtractTours(ctx, doc)
	if err != nil {
		h.fail(w, r, span, l, err, "Failed to extract tours")
		return
	}

	span.SetStatus(codes.Ok, "Tours extracted")
	api.WriteJSONResponse(w, r, http.StatusOK, types.ExtractToursResponse{Tours: records})
}

// PlanTour godoc
// @Summary      Plan a foodie tour
// @Description  Generates a narrative for each city, extracts it and stores the resulting tour.
// @Tags         Tours
// @Accept       json
// @Produce      json
// @Param        request body types.PlanTourRequest true "Cities and optional weather"
// @Success      201 {object} types.Tour "Planned tour"
// @Failure      400 {object} types.Response "Bad Request"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      503 {object} types.Response "Generation Unavailable"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Security     BearerAuth
// @Router       /tours [post]
func (h *HandlerImpl) PlanTour(w http.ResponseWriter, r *http.Request) {
	span, r := h.startSpan(r, "PlanTour", "/api/v1/tours")
	defer span.End()
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "PlanTour"))

	userID, ok := appMiddleware.GetUserIDFromContext(ctx)
	if !ok || userID == "" {
		l.ErrorContext(ctx, "User ID not found in context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	span.SetAttributes(semconv.EnduserIDKey.String(userID))
	l = l.With(slog.String("userID", userID))

	var req types.PlanTourRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tour, err := h.service.PlanTour(ctx, userID, req)
	if err != nil {
		h.fail(w, r, span, l, err, "Failed to plan tour")
		return
	}

	span.SetStatus(codes.Ok, "Tour planned")
	api.WriteJSONResponse(w, r, http.StatusCreated, tour)
}

// ListTours godoc
// @Summary      List tours
// @Description  Lists stored tours, newest first.
// @Tags         Tours
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(10)
// @Success      200 {object} types.PaginatedTours "Tours"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Security     BearerAuth
// @Router       /tours [get]
func (h *HandlerImpl) ListTours(w http.ResponseWriter, r *http.Request) {
	span, r := h.startSpan(r, "ListTours", "/api/v1/tours")
	defer span.End()
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "ListTours"))

	page, pageSize := api.ParsePagination(r, defaultPageSize, maxPageSize)
	result, err := h.service.ListTours(ctx, page, pageSize)
	if err != nil {
		h.fail(w, r, span, l, err, "Failed to list tours")
		return
	}

	span.SetStatus(codes.Ok, "Tours listed")
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *HandlerImpl) tourFromPath(w http.ResponseWriter, r *http.Request, span trace.Span, l *slog.Logger) (*types.Tour, bool) {
	tourID, err := uuid.Parse(chi.URLParam(r, "tourID"))
	if err != nil {
		l.WarnContext(r.Context(), "Invalid tour ID", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid tour ID format")
		return nil, false
	}

	tour, err := h.service.GetTour(r.Context(), tourID)
	if err != nil {
		h.fail(w, r, span, l, err, "Failed to get tour")
		return nil, false
	}
	return tour, true
}

// GetTour godoc
// @Summary      Get a tour
// @Tags         Tours
// @Produce      json
// @Param        tourID path string true "Tour ID"
// @Success      200 {object} types.Tour "Tour"
// @Failure      400 {object} types.Response "Invalid Tour ID"
// @Failure      404 {object} types.Response "Tour Not Found"
// @Security     BearerAuth
// @Router       /tours/{tourID} [get]
func (h *HandlerImpl) GetTour(w http.ResponseWriter, r *http.Request) {
	span, r := h.startSpan(r, "GetTour", "/api/v1/tours/{tourID}")
	defer span.End()
	l := h.logger.With(slog.String("HandlerImpl", "GetTour"))

	tour, ok := h.tourFromPath(w, r, span, l)
	if !ok {
		return
	}
	span.SetStatus(codes.Ok, "Tour retrieved")
	api.WriteJSONResponse(w, r, http.StatusOK, tour)
}

// ExportTour godoc
// @Summary      Export a tour
// @Description  Downloads a tour as foodie_tours.json.
// @Tags         Tours
// @Produce      json
// @Param        tourID path string true "Tour ID"
// @Success      200 {object} types.TourExport "Tour export"
// @Failure      400 {object} types.Response "Invalid Tour ID"
// @Failure      404 {object} types.Response "Tour Not Found"
// @Security     BearerAuth
// @Router       /tours/{tourID}/export [get]
func (h *HandlerImpl) ExportTour(w http.ResponseWriter, r *http.Request) {
	span, r := h.startSpan(r, "ExportTour", "/api/v1/tours/{tourID}/export")
	defer span.End()
	l := h.logger.With(slog.String("HandlerImpl", "ExportTour"))

	tour, ok := h.tourFromPath(w, r, span, l)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFilename))
	w.WriteHeader(http.StatusOK)
	if err := WriteExport(w, *tour); err != nil {
		l.ErrorContext(r.Context(), "Failed to write export", slog.Any("error", err))
		span.RecordError(err)
		return
	}
	span.SetStatus(codes.Ok, "Tour exported")
}
