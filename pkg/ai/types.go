package ai

import "context"

// Request describes one text-generation call. When SystemPrompt is empty the
// request is sent with the user prompt only.
type Request struct {
	Prompt       string
	SystemPrompt string
	Model        string
	MaxTokens    int
	Temperature  float32
}

// Response carries the raw model output plus timing for the audit trail.
type Response struct {
	Content    string
	Model      string
	DurationMs int64
}

// Client describes a text-generation backend.
type Client interface {
	Generate(ctx context.Context, req Request) (Response, error)
}
