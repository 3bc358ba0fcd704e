package tracer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitTracingAndMetrics(t *testing.T) {
	providers, err := InitTracingAndMetrics("FoodieTourTest")
	require.NoError(t, err)
	t.Cleanup(func() { _ = providers.Shutdown(context.Background()) })

	counter, err := otel.GetMeterProvider().Meter("test").Int64Counter("tours_extracted_total")
	require.NoError(t, err)
	counter.Add(context.Background(), 2)

	rr := httptest.NewRecorder()
	providers.MetricsHandler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body, _ := io.ReadAll(rr.Body)
	assert.Contains(t, string(body), "tours_extracted_total")
}
