package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	ToursExtractedTotal       metric.Int64Counter
	ExtractionDurationSeconds metric.Float64Histogram
	ExtractionWarningsTotal   metric.Int64Counter
	LLMTokensTotal            metric.Int64Counter
	DbQueryErrorsTotal        metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments once, from the globally configured
// MeterProvider. Without a configured provider the instruments are no-ops.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("FoodieTour")
		var err error
		m := &AppMetrics{}

		m.ToursExtractedTotal, err = meter.Int64Counter(
			"tours_extracted_total",
			metric.WithDescription("Total number of city records extracted from narratives"),
			metric.WithUnit("{city}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create tours_extracted_total: %v", err)
		}

		m.ExtractionDurationSeconds, err = meter.Float64Histogram(
			"tour_extraction_duration_seconds",
			metric.WithDescription("Duration of narrative extraction in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create tour_extraction_duration_seconds: %v", err)
		}

		m.ExtractionWarningsTotal, err = meter.Int64Counter(
			"tour_extraction_warnings_total",
			metric.WithDescription("Total number of non-fatal extraction warnings"),
			metric.WithUnit("{warning}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create tour_extraction_warnings_total: %v", err)
		}

		m.LLMTokensTotal, err = meter.Int64Counter(
			"llm_tokens_total",
			metric.WithDescription("Total number of LLM tokens consumed generating narratives"),
			metric.WithUnit("{token}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create llm_tokens_total: %v", err)
		}

		m.DbQueryErrorsTotal, err = meter.Int64Counter(
			"db_query_errors_total",
			metric.WithDescription("Total number of database query errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_errors_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the AppMetrics instance, initializing it on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
