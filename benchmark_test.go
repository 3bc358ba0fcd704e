package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	appMiddleware "github.com/FACorreiaa/go-foodie-tour/app/middleware"
	"github.com/FACorreiaa/go-foodie-tour/internal/api/extraction"
	"github.com/FACorreiaa/go-foodie-tour/internal/types"
)

// BenchmarkSuite provides benchmark testing for the API
type BenchmarkSuite struct {
	handler   http.Handler
	authToken string
}

func setupBenchmarkSuite(b *testing.B) *BenchmarkSuite {
	b.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	token, err := appMiddleware.NewToken(e2eSecret, uuid.NewString(), "traveler", jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	if err != nil {
		b.Fatal(err)
	}
	return &BenchmarkSuite{
		handler:   newTestServer(logger, &memoryRepository{}),
		authToken: token,
	}
}

func (suite *BenchmarkSuite) request(method, path string, body []byte, authenticated bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+suite.authToken)
	}
	rr := httptest.NewRecorder()
	suite.handler.ServeHTTP(rr, req)
	return rr
}

// largeNarrative renders a document with entries items per section per city.
func largeNarrative(entries int) types.NarrativeDocument {
	records := types.CityRecords{}
	for _, city := range []string{"Paris", "New York", "Tokyo"} {
		keywords, _ := extraction.DefaultDishKeywords().Lookup(city)
		rec := types.CityRecord{Itinerary: types.NewItinerary()}
		for i := range entries {
			for _, s := range types.Sections {
				rec.Itinerary.Append(s, keywords[i%len(keywords)]+" tasting at Kitchen "+strings.Repeat("x", i%7))
			}
		}
		records = append(records, types.CityTour{City: city, Record: rec})
	}
	return extraction.RenderDocument(records)
}

func BenchmarkExtractEndpoint(b *testing.B) {
	suite := setupBenchmarkSuite(b)
	body, _ := json.Marshal(largeNarrative(5))

	b.ResetTimer()
	for b.Loop() {
		rr := suite.request(http.MethodPost, "/api/v1/tours/extract", body, false)
		if rr.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rr.Code)
		}
	}
}

func BenchmarkExtractEndpointLargePayload(b *testing.B) {
	suite := setupBenchmarkSuite(b)
	body, _ := json.Marshal(largeNarrative(200))

	b.SetBytes(int64(len(body)))
	b.ResetTimer()
	for b.Loop() {
		suite.request(http.MethodPost, "/api/v1/tours/extract", body, false)
	}
}

func BenchmarkPlanTour(b *testing.B) {
	suite := setupBenchmarkSuite(b)
	body, _ := json.Marshal(types.PlanTourRequest{Cities: []string{"Paris", "New York", "Tokyo"}})

	b.ResetTimer()
	for b.Loop() {
		rr := suite.request(http.MethodPost, "/api/v1/tours", body, true)
		if rr.Code != http.StatusCreated {
			b.Fatalf("unexpected status %d", rr.Code)
		}
	}
}

func BenchmarkConcurrentExtract(b *testing.B) {
	suite := setupBenchmarkSuite(b)
	body, _ := json.Marshal(largeNarrative(10))

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			suite.request(http.MethodPost, "/api/v1/tours/extract", body, false)
		}
	})
}

func BenchmarkCityRecordsJSON(b *testing.B) {
	doc := largeNarrative(20)
	records := extraction.NewExtractor(extraction.DefaultDishKeywords()).Extract(doc)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := json.Marshal(records); err != nil {
			b.Fatal(err)
		}
	}
}
