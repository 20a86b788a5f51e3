package services

import (
	"fmt"
	"regexp"
	"strings"
)

// Prompt templates for the two model stages. Placeholders use the {{NAME}}
// form and are substituted by renderTemplate, which fails loudly instead of
// leaving a placeholder behind or silently dropping a supplied value.

const analyzePromptTemplate = `Role: You are an expert in customer psychology analysis and content strategy.
Task: Deeply analyze the competitor content below and surface the most valuable psychological insights.

INPUT:
- Niche: {{NICHE}}
- Competitor content:
"""
{{RAW_TEXT}}
"""

INSTRUCTIONS (in priority order):
1. Derive the customer psychology behind this content:
   - "pains" must be the underlying hidden fears, not surface-level complaints.
   - "desires" must be the ultimate end-states the audience dreams of, not immediate wants.
   - "false_beliefs" are the limiting beliefs and mental blockers holding the audience back.
2. Classify the content format and break down its persuasion structure: the opening hook (first 3 seconds), the body argument, and the closing call to action.
3. List the factors that make this content attractive and describe its tone of voice.
4. Propose new content ideas grounded in the insights above. Every idea needs a stable id ("idea_1", "idea_2", ...).

RETURN STRICT JSON ONLY (no prose, no markdown):
{
  "summary": "5-10 sentence summary",
  "structure": {
    "format_type": "Review/Story/Tips/...",
    "hook_analysis": "analysis of the first 3 seconds",
    "body_analysis": "analysis of the main argument",
    "cta_analysis": "analysis of the call to action"
  },
  "attraction_factors": ["factor 1", "..."],
  "tone_of_voice": "tone description",
  "insights": {
    "pains": ["hidden pain 1", "hidden pain 2"],
    "desires": ["burning desire 1", "burning desire 2"],
    "false_beliefs": ["false belief 1", "mental blocker 2"]
  },
  "ideas": [
    {
      "id": "idea_1",
      "title": "new idea title",
      "short_description": "short description",
      "video_type": "review|story|tips"
    }
  ]
}`

const generatePromptTemplate = `Role: You are an expert short-form video scriptwriter. Below is a JSON psychology analysis of competitor content: {{ANALYSIS_JSON}}

INPUT SETTINGS:
- Niche: {{NICHE}}
- Platforms: {{PLATFORMS}}
- Tone: {{TONE}}
- Duration: {{DURATION}}
- Aspect Ratio: {{ASPECT_RATIO}}
- Visual Style: {{VISUAL_STYLE}}
- Content Focus: {{CONTENT_FOCUS}}

TASKS:
1. Select the 2-3 strongest ideas from the analysis.
2. Write ORIGINAL content, never a rewrite of the source.
3. For each platform, produce at least 2 variants.
4. The hook must land hard within the first 3 seconds.
5. Weave the identified pains and desires directly into the spoken lines.
6. Every script follows: hook, pain/desire activation, solution, call to action.

RETURN STRICT JSON ONLY (no prose, no markdown):
{
  "platform_contents": [
    {
      "platform": "TikTok",
      "items": [
        {
          "idea_id": "idea_1",
          "variant_index": 1,
          "title": "click-optimized title",
          "script": "detailed script (spoken lines + shot descriptions)...",
          "caption": "engaging caption + CTA",
          "hashtags": ["#tag1", "#tag2"],
          "visual_ideas": {
            "thumbnail_description": "thumbnail text/imagery description",
            "ai_image_prompt": "English image-generation prompt for a {{ASPECT_RATIO}} thumbnail in {{VISUAL_STYLE}} style"
          }
        }
      ]
    }
  ]
}`

var placeholderRegex = regexp.MustCompile(`\{\{([A-Z_]+)\}\}`)

// renderTemplate substitutes {{NAME}} placeholders from vars. Every
// placeholder in the template must have a value and every supplied value must
// match a placeholder, so a template/caller drift fails at call time instead
// of producing a prompt with a hole in it.
func renderTemplate(template string, vars map[string]string) (string, error) {
	seen := make(map[string]bool, len(vars))
	for _, m := range placeholderRegex.FindAllStringSubmatch(template, -1) {
		name := m[1]
		if _, ok := vars[name]; !ok {
			return "", fmt.Errorf("prompt template placeholder {{%s}} has no value", name)
		}
		seen[name] = true
	}
	for name := range vars {
		if !seen[name] {
			return "", fmt.Errorf("prompt value %q matches no template placeholder", name)
		}
	}

	out := template
	for name, val := range vars {
		out = strings.ReplaceAll(out, "{{"+name+"}}", val)
	}
	return out, nil
}
