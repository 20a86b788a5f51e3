package models

// Platform labels accepted by the frontend. Unknown labels are passed through
// to the generation prompt untouched.
const (
	PlatformTikTok        = "TikTok"
	PlatformYouTubeShorts = "YouTube Shorts"
	PlatformFacebookReels = "Facebook Reels"
)

// VideoSettings is carried through unmodified into the generation prompt.
type VideoSettings struct {
	AspectRatio  string `json:"aspectRatio"` // "9:16" | "16:9" | "1:1" | "4:5"
	Duration     string `json:"duration"`    // "short" | "medium" | "long"
	VisualStyle  string `json:"visualStyle"`
	ContentFocus string `json:"contentFocus"`
}

// GenerateRequest is the single-endpoint request body.
type GenerateRequest struct {
	InputMode     string        `json:"inputMode"` // "url" | "text"
	URL           string        `json:"url,omitempty"`
	RawText       string        `json:"rawText,omitempty"`
	Niche         string        `json:"niche"`
	Tone          string        `json:"tone"`
	Platforms     []string      `json:"platforms"`
	VideoSettings VideoSettings `json:"videoSettings"`

	// Optional per-request credentials; take precedence over process defaults.
	GeminiAPIKey string `json:"geminiApiKey,omitempty"`
	OpenAIAPIKey string `json:"openaiApiKey,omitempty"`
}

// ── Analysis (Insight Engine output) ──

type StructureAnalysis struct {
	FormatType   string `json:"format_type"`
	HookAnalysis string `json:"hook_analysis"`
	BodyAnalysis string `json:"body_analysis"`
	CTAAnalysis  string `json:"cta_analysis"`
}

type PsychologyInsights struct {
	Pains        []string `json:"pains"`
	Desires      []string `json:"desires"`
	FalseBeliefs []string `json:"false_beliefs"`
}

type ContentIdea struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	ShortDescription string `json:"short_description"`
	VideoType        string `json:"video_type"`
}

type AnalysisResult struct {
	Summary           string             `json:"summary"`
	Structure         StructureAnalysis  `json:"structure"`
	AttractionFactors []string           `json:"attraction_factors"`
	ToneOfVoice       string             `json:"tone_of_voice"`
	Insights          PsychologyInsights `json:"insights"`
	Ideas             []ContentIdea      `json:"ideas"`
}

// ── Generation (Script Generator output) ──

type VisualIdea struct {
	ThumbnailDescription string `json:"thumbnail_description"`
	AIImagePrompt        string `json:"ai_image_prompt"`
}

// ScriptItem is one creative take on an idea for one platform. IdeaID refers
// back to AnalysisResult.Ideas but referential integrity is not enforced.
type ScriptItem struct {
	IdeaID       string      `json:"idea_id"`
	VariantIndex int         `json:"variant_index"`
	Title        string      `json:"title"`
	Script       string      `json:"script"`
	Caption      string      `json:"caption"`
	Hashtags     []string    `json:"hashtags"`
	VisualIdeas  *VisualIdea `json:"visual_ideas,omitempty"`
}

type PlatformContent struct {
	Platform string       `json:"platform"`
	Items    []ScriptItem `json:"items"`
}

type GeneratedResult struct {
	PlatformContents []PlatformContent `json:"platform_contents"`
}

// ContentJobResult is the complete success response for one request. It is
// never persisted; it exists only for the response write.
type ContentJobResult struct {
	Analysis  *AnalysisResult  `json:"analysis"`
	Generated *GeneratedResult `json:"generated"`
}

// ErrorResponse is the caller-safe failure shape for every error status.
type ErrorResponse struct {
	Error  string      `json:"error"`
	Detail interface{} `json:"detail,omitempty"`
}
