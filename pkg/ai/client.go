package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "eunoia",
		Subsystem: "ai",
		Name:      "generation_duration_seconds",
		Help:      "Duration of LLM generation requests",
	}, []string{"model"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eunoia",
		Subsystem: "ai",
		Name:      "generation_failures_total",
		Help:      "Number of LLM generation failures",
	}, []string{"model"})
)

// ClientConfig defines configuration options for the chat completion client.
// BaseURL points at any OpenAI-compatible endpoint.
type ClientConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIClient implements Client against an OpenAI-compatible chat completion API.
type OpenAIClient struct {
	client *openai.Client
	cfg    ClientConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIClient builds a new client using the provided configuration.
func NewOpenAIClient(cfg ClientConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "glm-4.5-flash"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2048
	}

	tracer := otel.Tracer("github.com/eunoia-app/eunoia-api/pkg/ai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	client := openai.NewClientWithConfig(config)

	return &OpenAIClient{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// Generate sends the prompt to the model and returns the raw completion text.
// An empty req.Model falls back to the configured default.
func (c *OpenAIClient) Generate(parent context.Context, req Request) (Response, error) {
	model := req.Model
	if model == "" {
		model = c.cfg.Model
	}

	ctx, span := c.tracer.Start(parent, "llm.generate", trace.WithAttributes(
		attribute.String("model", model),
	))
	defer span.End()

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.cfg.MaxTokens
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.cfg.Temperature
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages:    messages,
	})
	duration := time.Since(start)
	aiDuration.WithLabelValues(model).Observe(duration.Seconds())
	if err != nil {
		aiFailures.WithLabelValues(model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Response{}, fmt.Errorf("llm generate: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from model")
		aiFailures.WithLabelValues(model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Response{}, err
	}

	return Response{
		Content:    strings.TrimSpace(resp.Choices[0].Message.Content),
		Model:      model,
		DurationMs: duration.Milliseconds(),
	}, nil
}
