package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"scriptlab-backend/internal/models"
	"scriptlab-backend/internal/services"
)

// Pipeline collaborators. Concrete implementations live in services; the
// handler only needs their contracts.

type Acquirer interface {
	Scrape(ctx context.Context, url string) (string, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, corpus, niche, apiKey string) (*models.AnalysisResult, error)
}

type Generator interface {
	Generate(ctx context.Context, analysis *models.AnalysisResult, niche string, platforms []string, tone string, settings models.VideoSettings, apiKey string) (*models.GeneratedResult, error)
}

// GenerateHandler orchestrates the pipeline for one request: validate,
// acquire content, analyze, generate, respond. Every stage fails fast; no
// partial results are ever returned.
type GenerateHandler struct {
	scraper   Acquirer
	analyzer  Analyzer
	generator Generator
}

func NewGenerateHandler(scraper Acquirer, analyzer Analyzer, generator Generator) *GenerateHandler {
	return &GenerateHandler{
		scraper:   scraper,
		analyzer:  analyzer,
		generator: generator,
	}
}

func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body."})
		return
	}

	// Validation: reject before any network call is made.
	if req.Niche == "" || len(req.Platforms) == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Please provide a niche and select at least one platform."})
		return
	}
	if req.InputMode == "url" && req.URL == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "URL is required when Input Mode is set to URL."})
		return
	}
	if req.InputMode != "url" && req.RawText == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Raw text is required when Input Mode is set to text."})
		return
	}

	// Content acquisition
	corpus := req.RawText
	if req.InputMode == "url" {
		scraped, err := h.scraper.Scrape(r.Context(), req.URL)
		if err != nil {
			log.Printf("Scraping failed for %s: %v", req.URL, err)
			h.writeServiceError(w, r, err)
			return
		}
		corpus = scraped
	}

	// Second length check, independent of the scraper's own. Covers the
	// raw-text path and any acquisition that nominally succeeded.
	if len(corpus) < services.MinContentLength {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Content is too short or invalid to analyze."})
		return
	}

	// Insight Engine
	analysis, err := h.analyzer.Analyze(r.Context(), corpus, req.Niche, req.GeminiAPIKey)
	if err != nil {
		log.Printf("Analysis failed: %v", err)
		h.writeServiceError(w, r, err)
		return
	}

	// Script Generator
	generated, err := h.generator.Generate(r.Context(), analysis, req.Niche, req.Platforms, req.Tone, req.VideoSettings, req.OpenAIAPIKey)
	if err != nil {
		log.Printf("Generation failed: %v", err)
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ContentJobResult{
		Analysis:  analysis,
		Generated: generated,
	})
}

// writeServiceError reduces a pipeline error to the caller-safe {error,
// detail} shape. Acquisition problems are the caller's to fix (400, paste the
// text manually); credential, upstream and parse failures are server-side
// (500).
func (h *GenerateHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var acqErr *services.AcquisitionError
	if errors.As(err, &acqErr) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Scraping failed: " + acqErr.Message})
		return
	}

	var modelErr *services.ModelError
	if errors.As(err, &modelErr) {
		resp := models.ErrorResponse{Error: modelErr.Message()}
		if modelErr.Detail != "" {
			resp.Detail = modelErr.Detail
		}
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error", Detail: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
