package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"scriptlab-backend/internal/models"
)

const geminiModelName = "gemini-2.5-flash"

// analysisTemperature is kept low: this stage wants consistent, repeatable
// classification rather than creative variance.
const analysisTemperature = 0.3

// GeminiService is the Insight Engine client. It derives the psychological
// analysis (pains, desires, false beliefs, structure, ideas) from a corpus.
type GeminiService struct {
	defaultAPIKey string
}

func NewGeminiService(defaultAPIKey string) *GeminiService {
	return &GeminiService{defaultAPIKey: defaultAPIKey}
}

// Analyze runs the analysis prompt against Gemini and decodes the strict JSON
// reply. apiKey, when non-empty, overrides the process-wide credential.
//
// The client is constructed per call because the SDK binds the credential at
// client creation and requests may carry their own key.
func (s *GeminiService) Analyze(ctx context.Context, corpus, niche, apiKey string) (*models.AnalysisResult, error) {
	key := apiKey
	if key == "" {
		key = s.defaultAPIKey
	}
	if key == "" {
		return nil, &ModelError{Stage: StageAnalysis, Kind: ModelErrMissingCredential}
	}

	prompt, err := renderTemplate(analyzePromptTemplate, map[string]string{
		"NICHE":    niche,
		"RAW_TEXT": corpus,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis prompt: %w", err)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return nil, &ModelError{Stage: StageAnalysis, Kind: ModelErrUpstream, Err: fmt.Errorf("failed to create Gemini client: %w", err)}
	}
	defer client.Close()

	model := client.GenerativeModel(geminiModelName)
	model.SetTemperature(analysisTemperature)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("Gemini analysis call failed: %v", err)
		return nil, &ModelError{Stage: StageAnalysis, Kind: ModelErrUpstream, Detail: err.Error(), Err: err}
	}

	rawText := extractText(resp)
	if strings.TrimSpace(rawText) == "" {
		return nil, &ModelError{Stage: StageAnalysis, Kind: ModelErrEmptyResponse}
	}

	return decodeAnalysis(rawText)
}

// decodeAnalysis strips any markdown fence the model emitted despite the JSON
// response request, then parses the strict AnalysisResult shape.
func decodeAnalysis(rawText string) (*models.AnalysisResult, error) {
	cleaned := stripCodeFence(rawText)

	var analysis models.AnalysisResult
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		log.Printf("Gemini returned unparseable JSON: %v", err)
		return nil, &ModelError{Stage: StageAnalysis, Kind: ModelErrParse, Detail: rawText, Err: err}
	}

	return &analysis, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

// stripCodeFence removes a wrapping ```json ... ``` fence if present.
func stripCodeFence(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
