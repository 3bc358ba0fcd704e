package tour

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appMiddleware "github.com/FACorreiaa/go-foodie-tour/app/middleware"
	"github.com/FACorreiaa/go-foodie-tour/internal/types"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ExtractTours(ctx context.Context, doc types.NarrativeDocument) (types.CityRecords, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(types.CityRecords), args.Error(1)
}

func (m *MockService) PlanTour(ctx context.Context, userID string, req types.PlanTourRequest) (*types.Tour, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Tour), args.Error(1)
}

func (m *MockService) GetTour(ctx context.Context, id uuid.UUID) (*types.Tour, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Tour), args.Error(1)
}

func (m *MockService) ListTours(ctx context.Context, page, pageSize int) (*types.PaginatedTours, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PaginatedTours), args.Error(1)
}

func newTestRouter(svc Service) http.Handler {
	h := NewHandlerImpl(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Post("/tours/extract", h.ExtractTours)
	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if userID := r.Header.Get("X-Test-User"); userID != "" {
					r = r.WithContext(context.WithValue(r.Context(), appMiddleware.UserIDKey, userID))
				}
				next.ServeHTTP(w, r)
			})
		})
		r.Post("/tours", h.PlanTour)
		r.Get("/tours", h.ListTours)
		r.Get("/tours/{tourID}", h.GetTour)
		r.Get("/tours/{tourID}/export", h.ExportTour)
	})
	return r
}

func TestHandler_ExtractTours(t *testing.T) {
	records := types.CityRecords{{City: "Paris", Record: types.CityRecord{
		Dishes:      []string{},
		Restaurants: []string{},
		Itinerary:   types.NewItinerary(),
	}}}

	t.Run("ok", func(t *testing.T) {
		svc := new(MockService)
		doc := types.NarrativeDocument{Narrative: "PARIS", Cities: []string{"Paris"}}
		svc.On("ExtractTours", mock.Anything, doc).Return(records, nil).Once()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tours/extract", strings.NewReader(`{"narrative":"PARIS","cities":["Paris"]}`))
		newTestRouter(svc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t,
			`{"tours":{"Paris":{"dishes":[],"restaurants":[],"itinerary":{"morning":[],"lunch":[],"dinner":[]}}}}`,
			rr.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("bad body", func(t *testing.T) {
		svc := new(MockService)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tours/extract", strings.NewReader(`{"narrative":`))
		newTestRouter(svc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "ExtractTours", mock.Anything, mock.Anything)
	})

	t.Run("validation error maps to 400", func(t *testing.T) {
		svc := new(MockService)
		svc.On("ExtractTours", mock.Anything, mock.Anything).Return(nil, types.ErrNoCities).Once()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tours/extract", strings.NewReader(`{"narrative":"x","cities":[]}`))
		newTestRouter(svc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		var resp types.Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, types.ErrNoCities.Error(), resp.Error)
	})
}

func TestHandler_PlanTour(t *testing.T) {
	body := `{"cities":["Tokyo"]}`

	t.Run("requires a user", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tours", strings.NewReader(body))
		newTestRouter(new(MockService)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("created", func(t *testing.T) {
		svc := new(MockService)
		tour := &types.Tour{ID: uuid.New(), Cities: []string{"Tokyo"}, CreatedAt: time.Now().UTC()}
		svc.On("PlanTour", mock.Anything, "user-1", types.PlanTourRequest{Cities: []string{"Tokyo"}}).Return(tour, nil).Once()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tours", strings.NewReader(body))
		req.Header.Set("X-Test-User", "user-1")
		newTestRouter(svc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got types.Tour
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, tour.ID, got.ID)
		svc.AssertExpectations(t)
	})

	t.Run("generation unavailable", func(t *testing.T) {
		svc := new(MockService)
		svc.On("PlanTour", mock.Anything, "user-1", mock.Anything).Return(nil, types.ErrGenerationUnavailable).Once()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tours", strings.NewReader(body))
		req.Header.Set("X-Test-User", "user-1")
		newTestRouter(svc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})

	t.Run("unexpected error hides details", func(t *testing.T) {
		svc := new(MockService)
		svc.On("PlanTour", mock.Anything, "user-1", mock.Anything).Return(nil, errors.New("pq: secret detail")).Once()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tours", strings.NewReader(body))
		req.Header.Set("X-Test-User", "user-1")
		newTestRouter(svc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "secret detail")
	})
}

func TestHandler_ListTours(t *testing.T) {
	svc := new(MockService)
	page := &types.PaginatedTours{Tours: []types.TourSummary{}, Total: 0, Page: 2, PageSize: 100}
	svc.On("ListTours", mock.Anything, 2, 100).Return(page, nil).Once()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tours?page=2&page_size=500", nil)
	req.Header.Set("X-Test-User", "user-1")
	newTestRouter(svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"tours":[],"total":0,"page":2,"page_size":100}`, rr.Body.String())
	svc.AssertExpectations(t)
}

func TestHandler_GetTour(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		newTestRouter(new(MockService)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/tours/not-a-uuid", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(MockService)
		id := uuid.New()
		svc.On("GetTour", mock.Anything, id).Return(nil, types.ErrTourNotFound).Once()

		rr := httptest.NewRecorder()
		newTestRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/tours/"+id.String(), nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHandler_ExportTour(t *testing.T) {
	svc := new(MockService)
	tour := sampleTour()
	svc.On("GetTour", mock.Anything, tour.ID).Return(&tour, nil).Once()

	rr := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/tours/"+tour.ID.String()+"/export", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `attachment; filename="foodie_tours.json"`, rr.Header().Get("Content-Disposition"))

	var buf bytes.Buffer
	require.NoError(t, WriteExport(&buf, tour))
	assert.Equal(t, buf.String(), rr.Body.String())
	assert.Contains(t, rr.Body.String(), "Russ & Daughters")
	assert.Contains(t, rr.Body.String(), "\n  \"cities\": [")
	assert.NotContains(t, rr.Body.String(), "narrative")
	svc.AssertExpectations(t)
}
