package services

import (
	"context"
	"errors"
	"testing"

	"scriptlab-backend/internal/models"
)

func TestDecodeGenerated_FencedJSON(t *testing.T) {
	raw := "```json\n" + `{
		"platform_contents": [
			{
				"platform": "TikTok",
				"items": [
					{
						"idea_id": "idea_1",
						"variant_index": 1,
						"title": "You are buying the wrong machine",
						"script": "Hook... pain... solution... CTA",
						"caption": "Stop wasting money",
						"hashtags": ["#espresso", "#coffeetok"],
						"visual_ideas": {
							"thumbnail_description": "Split screen of two machines",
							"ai_image_prompt": "9:16 UGC photo of espresso machines"
						}
					},
					{
						"idea_id": "idea_1",
						"variant_index": 2,
						"title": "The $300 machine that beat them all",
						"script": "Hook... pain... solution... CTA",
						"caption": "Proof inside",
						"hashtags": ["#espresso"]
					}
				]
			}
		]
	}` + "\n```"

	generated, err := decodeGenerated(raw)
	if err != nil {
		t.Fatalf("Expected fenced JSON to parse, got error: %v", err)
	}
	if len(generated.PlatformContents) != 1 {
		t.Fatalf("Expected one platform, got %d", len(generated.PlatformContents))
	}

	pc := generated.PlatformContents[0]
	if pc.Platform != "TikTok" {
		t.Errorf("Expected platform 'TikTok', got %q", pc.Platform)
	}
	if len(pc.Items) != 2 {
		t.Fatalf("Expected two variants, got %d", len(pc.Items))
	}
	if pc.Items[0].VisualIdeas == nil {
		t.Error("Expected visual_ideas on the first variant")
	}
	if pc.Items[1].VisualIdeas != nil {
		t.Error("Expected absent visual_ideas to stay nil, not error")
	}
	if pc.Items[1].VariantIndex != 2 {
		t.Errorf("Expected variant_index 2, got %d", pc.Items[1].VariantIndex)
	}
}

func TestDecodeGenerated_MissingPlatformContents(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty object", `{}`},
		{"empty list", `{"platform_contents": []}`},
		{"wrong key", `{"contents": []}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeGenerated(tc.raw)
			if err == nil {
				t.Fatal("Expected parse error for response without platform_contents")
			}

			var modelErr *ModelError
			if !errors.As(err, &modelErr) {
				t.Fatalf("Expected ModelError, got %T", err)
			}
			if modelErr.Kind != ModelErrParse {
				t.Errorf("Expected kind %q, got %q", ModelErrParse, modelErr.Kind)
			}
			if modelErr.Detail != tc.raw {
				t.Errorf("Expected raw text attached as detail, got %q", modelErr.Detail)
			}
		})
	}
}

func TestDecodeGenerated_InvalidJSON(t *testing.T) {
	_, err := decodeGenerated("not json at all")

	var modelErr *ModelError
	if !errors.As(err, &modelErr) {
		t.Fatalf("Expected ModelError, got %v", err)
	}
	if modelErr.Stage != StageGeneration {
		t.Errorf("Expected stage %q, got %q", StageGeneration, modelErr.Stage)
	}
}

func TestGenerate_MissingCredential(t *testing.T) {
	svc := NewOpenAIService("")

	_, err := svc.Generate(context.Background(), &models.AnalysisResult{}, "coffee gear",
		[]string{models.PlatformTikTok}, "casual", models.VideoSettings{}, "")
	if err == nil {
		t.Fatal("Expected error with no credential available")
	}

	var modelErr *ModelError
	if !errors.As(err, &modelErr) {
		t.Fatalf("Expected ModelError, got %T", err)
	}
	if modelErr.Kind != ModelErrMissingCredential {
		t.Errorf("Expected kind %q, got %q", ModelErrMissingCredential, modelErr.Kind)
	}
}
