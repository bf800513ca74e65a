package dto

// InvokeLLMRequest is the payload for a model invocation. When
// ResponseJSONSchema is present the model is asked for JSON matching it and
// the response is returned as a structured object; otherwise plain text is
// returned and the call is metered as a companion chat turn.
type InvokeLLMRequest struct {
	Prompt             string         `json:"prompt" validate:"required"`
	ResponseJSONSchema map[string]any `json:"response_json_schema"`
	Model              string         `json:"model"`
}

// InvokeLLMResponse wraps the model output. Exactly one of Text and Object is
// set depending on whether a schema was requested.
type InvokeLLMResponse struct {
	Text   string         `json:"text,omitempty"`
	Object map[string]any `json:"object,omitempty"`
	// Remaining and Warning surface chat-quota state on metered calls.
	Remaining *int   `json:"remaining,omitempty"`
	Warning   string `json:"warning,omitempty"`
}
