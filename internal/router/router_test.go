package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"scriptlab-backend/internal/handlers"
	"scriptlab-backend/internal/middleware"
	"scriptlab-backend/internal/models"
)

type noopAcquirer struct{}

func (noopAcquirer) Scrape(ctx context.Context, url string) (string, error) { return "", nil }

type noopAnalyzer struct{}

func (noopAnalyzer) Analyze(ctx context.Context, corpus, niche, apiKey string) (*models.AnalysisResult, error) {
	return &models.AnalysisResult{}, nil
}

type noopGenerator struct{}

func (noopGenerator) Generate(ctx context.Context, analysis *models.AnalysisResult, niche string, platforms []string, tone string, settings models.VideoSettings, apiKey string) (*models.GeneratedResult, error) {
	return &models.GeneratedResult{}, nil
}

func newTestRouter() http.Handler {
	h := handlers.NewGenerateHandler(noopAcquirer{}, noopAnalyzer{}, noopGenerator{})
	limiter := middleware.NewRateLimiter(100, time.Minute)
	return New(limiter, h, "http://localhost:5173")
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Errorf("Unexpected health body: %s", rr.Body.String())
	}
}

func TestRouter_GenerateRejectsNonPOST(t *testing.T) {
	r := newTestRouter()

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/api/v1/generate", nil)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected status 405, got %d", rr.Code)
			}
			if !strings.Contains(rr.Body.String(), "Method Not Allowed") {
				t.Errorf("Expected JSON 405 body, got %s", rr.Body.String())
			}
		})
	}
}

func TestRouter_RequestIDHeaderSet(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID to be set on the response")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/generate", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("Expected status 204 for preflight, got %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Errorf("Unexpected allow-origin header: %q", rr.Header().Get("Access-Control-Allow-Origin"))
	}
}
