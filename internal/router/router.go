package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/FACorreiaa/go-foodie-tour/docs"
	"github.com/FACorreiaa/go-foodie-tour/internal/api/tour"
)

// Config contains dependencies needed for the router setup
type Config struct {
	TourHandler            *tour.HandlerImpl
	AuthenticateMiddleware func(http.Handler) http.Handler
	MetricsHandler         http.Handler
	// ExtractRateLimit caps public extraction requests per IP per minute.
	// Zero disables the limit.
	ExtractRateLimit int
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) is applied in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		// Public
		r.Group(func(r chi.Router) {
			if cfg.ExtractRateLimit > 0 {
				r.Use(httprate.LimitByIP(cfg.ExtractRateLimit, time.Minute))
			}
			r.Post("/tours/extract", cfg.TourHandler.ExtractTours)
		})

		// Protected
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)

			r.Post("/tours", cfg.TourHandler.PlanTour)
			r.Get("/tours", cfg.TourHandler.ListTours)
			r.Get("/tours/{tourID}", cfg.TourHandler.GetTour)
			r.Get("/tours/{tourID}/export", cfg.TourHandler.ExportTour)
		})
	})

	return r
}
