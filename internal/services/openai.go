package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"scriptlab-backend/internal/models"
)

const generationSystemPrompt = "You are an expert viral content creator and scriptwriter."

// generationTemperature is deliberately high: this stage wants creative
// diversity across variants, not determinism.
const generationTemperature = 0.8

// OpenAIService is the Script Generator client. It turns an analysis plus the
// user's settings into per-platform script variants.
type OpenAIService struct {
	defaultAPIKey string
}

func NewOpenAIService(defaultAPIKey string) *OpenAIService {
	return &OpenAIService{defaultAPIKey: defaultAPIKey}
}

// Generate runs the generation prompt against OpenAI and decodes the strict
// JSON reply. apiKey, when non-empty, overrides the process-wide credential.
func (s *OpenAIService) Generate(
	ctx context.Context,
	analysis *models.AnalysisResult,
	niche string,
	platforms []string,
	tone string,
	settings models.VideoSettings,
	apiKey string,
) (*models.GeneratedResult, error) {
	key := apiKey
	if key == "" {
		key = s.defaultAPIKey
	}
	if key == "" {
		return nil, &ModelError{Stage: StageGeneration, Kind: ModelErrMissingCredential}
	}

	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize analysis: %w", err)
	}
	platformsJSON, err := json.Marshal(platforms)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize platforms: %w", err)
	}

	prompt, err := renderTemplate(generatePromptTemplate, map[string]string{
		"ANALYSIS_JSON": string(analysisJSON),
		"NICHE":         niche,
		"PLATFORMS":     string(platformsJSON),
		"TONE":          tone,
		"DURATION":      settings.Duration,
		"ASPECT_RATIO":  settings.AspectRatio,
		"VISUAL_STYLE":  settings.VisualStyle,
		"CONTENT_FOCUS": settings.ContentFocus,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build generation prompt: %w", err)
	}

	client := openai.NewClient(option.WithAPIKey(key))

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(generationSystemPrompt),
			openai.UserMessage(prompt),
		},
		Model:       openai.ChatModelGPT4o,
		Temperature: openai.Float(generationTemperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{Type: "json_object"},
		},
	})
	if err != nil {
		log.Printf("OpenAI generation call failed: %v", err)
		return nil, &ModelError{Stage: StageGeneration, Kind: ModelErrUpstream, Detail: err.Error(), Err: err}
	}

	if len(resp.Choices) == 0 {
		return nil, &ModelError{Stage: StageGeneration, Kind: ModelErrEmptyResponse}
	}
	rawText := resp.Choices[0].Message.Content
	if strings.TrimSpace(rawText) == "" {
		return nil, &ModelError{Stage: StageGeneration, Kind: ModelErrEmptyResponse}
	}

	return decodeGenerated(rawText)
}

// decodeGenerated parses the per-platform script collection. The model may
// drop optional fields (visual_ideas) without error, but a reply with no
// platform_contents at all is unusable and treated as a parse failure.
func decodeGenerated(rawText string) (*models.GeneratedResult, error) {
	cleaned := stripCodeFence(rawText)

	var generated models.GeneratedResult
	if err := json.Unmarshal([]byte(cleaned), &generated); err != nil {
		log.Printf("OpenAI returned unparseable JSON: %v", err)
		return nil, &ModelError{Stage: StageGeneration, Kind: ModelErrParse, Detail: rawText, Err: err}
	}

	if len(generated.PlatformContents) == 0 {
		return nil, &ModelError{
			Stage:  StageGeneration,
			Kind:   ModelErrParse,
			Detail: rawText,
			Err:    fmt.Errorf("response is missing platform_contents"),
		}
	}

	return &generated, nil
}
