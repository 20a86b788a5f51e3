package services

import "fmt"

// Acquisition failure reasons.
const (
	AcquireReasonNetwork    = "network"
	AcquireReasonTooShort   = "too-short"
	AcquireReasonNoMetadata = "no-transcript-and-no-metadata"
)

// AcquisitionError covers every way the Content Acquirer can fail: network
// errors, an empty transcript whose metadata fallback also came up empty, or
// extracted text below the minimum length. Message is caller-facing.
type AcquisitionError struct {
	Reason  string
	Message string
	Err     error
}

func (e *AcquisitionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("acquisition failed (%s): %s: %v", e.Reason, e.Message, e.Err)
	}
	return fmt.Sprintf("acquisition failed (%s): %s", e.Reason, e.Message)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// Model call stages and failure kinds.
const (
	StageAnalysis   = "analysis"
	StageGeneration = "generation"

	ModelErrMissingCredential = "missing-credential"
	ModelErrEmptyResponse     = "empty-response"
	ModelErrParse             = "parse-error"
	ModelErrUpstream          = "upstream-error"
)

// ModelError classifies failures of either inference stage. Detail carries
// provider-reported detail or, for parse errors, the raw offending text.
type ModelError struct {
	Stage  string
	Kind   string
	Detail string
	Err    error
}

func (e *ModelError) Error() string {
	msg := fmt.Sprintf("%s failed (%s)", e.Stage, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ModelError) Unwrap() error { return e.Err }

// Message returns the caller-facing description for the error response body.
func (e *ModelError) Message() string {
	switch e.Kind {
	case ModelErrMissingCredential:
		if e.Stage == StageAnalysis {
			return "Google Gemini API key is missing. Set it in Settings or the server environment."
		}
		return "OpenAI API key is missing. Set it in Settings or the server environment."
	case ModelErrEmptyResponse:
		return fmt.Sprintf("The %s model returned an empty response.", e.Stage)
	case ModelErrParse:
		return fmt.Sprintf("The %s model returned invalid JSON.", e.Stage)
	default:
		if e.Err != nil {
			return fmt.Sprintf("The %s provider call failed: %s", e.Stage, e.Err.Error())
		}
		return fmt.Sprintf("The %s provider call failed.", e.Stage)
	}
}
