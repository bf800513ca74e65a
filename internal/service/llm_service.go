package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gorm.io/datatypes"

	"github.com/eunoia-app/eunoia-api/internal/dto"
	"github.com/eunoia-app/eunoia-api/internal/models"
	"github.com/eunoia-app/eunoia-api/internal/repository"
	"github.com/eunoia-app/eunoia-api/pkg/ai"
)

// ErrPromptRequired is returned when an invocation arrives without a prompt.
var ErrPromptRequired = errors.New("prompt is required")

// LLMService fronts the external text-generation model. Plain-text calls are
// metered as companion chat turns; schema calls return a structured object
// that degrades to a raw-text envelope when the model output cannot be
// parsed.
type LLMService interface {
	Invoke(ctx context.Context, caller Caller, req dto.InvokeLLMRequest) (dto.InvokeLLMResponse, error)
	GenerateJSON(ctx context.Context, purpose, userEmail, prompt string, schema map[string]any) (map[string]any, bool, error)
}

type llmService struct {
	client ai.Client
	usage  UsageService
	audit  repository.LLMInvocationRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewLLMService constructs the LLM service.
func NewLLMService(client ai.Client, usage UsageService, audit repository.LLMInvocationRepository, logger zerolog.Logger) LLMService {
	return &llmService{
		client: client,
		usage:  usage,
		audit:  audit,
		logger: logger.With().Str("component", "llm_service").Logger(),
		now:    time.Now,
	}
}

func (s *llmService) Invoke(ctx context.Context, caller Caller, req dto.InvokeLLMRequest) (dto.InvokeLLMResponse, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return dto.InvokeLLMResponse{}, ErrPromptRequired
	}

	if req.ResponseJSONSchema == nil {
		usage, err := s.usage.ConsumeChat(ctx, caller.ID)
		if err != nil {
			return dto.InvokeLLMResponse{}, err
		}

		resp, err := s.client.Generate(ctx, ai.Request{Prompt: prompt, Model: req.Model})
		s.record(ctx, models.LLMPurposeChat, caller.Email, resp, err, false)
		if err != nil {
			return dto.InvokeLLMResponse{}, err
		}

		out := dto.InvokeLLMResponse{Text: resp.Content, Warning: usage.Warning}
		if usage.Remaining >= 0 {
			remaining := usage.Remaining
			out.Remaining = &remaining
		}
		return out, nil
	}

	object, _, err := s.generate(ctx, models.LLMPurposeChat, caller.Email, prompt, req.Model, req.ResponseJSONSchema)
	if err != nil {
		return dto.InvokeLLMResponse{}, err
	}
	return dto.InvokeLLMResponse{Object: object}, nil
}

// GenerateJSON runs a schema-constrained generation on behalf of a background
// worker. It never consumes chat quota.
func (s *llmService) GenerateJSON(ctx context.Context, purpose, userEmail, prompt string, schema map[string]any) (map[string]any, bool, error) {
	return s.generate(ctx, purpose, userEmail, prompt, "", schema)
}

func (s *llmService) generate(ctx context.Context, purpose, userEmail, prompt, model string, schema map[string]any) (map[string]any, bool, error) {
	resp, err := s.client.Generate(ctx, ai.Request{
		Prompt:       prompt,
		SystemPrompt: schemaSystemPrompt(schema),
		Model:        model,
	})
	if err != nil {
		s.record(ctx, purpose, userEmail, resp, err, false)
		return nil, false, err
	}

	object, parseError := parseModelJSON(resp.Content)
	if parseError {
		s.logger.Warn().Str("purpose", purpose).Msg("model output was not valid JSON, returning raw-text envelope")
	} else {
		s.validateAgainstSchema(purpose, schema, object)
	}
	s.record(ctx, purpose, userEmail, resp, nil, parseError)
	return object, parseError, nil
}

// validateAgainstSchema checks the parsed object against the caller-supplied
// JSON schema. Violations are logged only; the object is returned regardless
// so a drifting model cannot break callers that tolerate loose output.
func (s *llmService) validateAgainstSchema(purpose string, schema, object map[string]any) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return
	}
	compiled, err := jsonschema.CompileString("response_schema.json", string(raw))
	if err != nil {
		s.logger.Debug().Err(err).Str("purpose", purpose).Msg("response schema does not compile")
		return
	}
	var value any = map[string]any(object)
	if err := compiled.Validate(value); err != nil {
		s.logger.Warn().Err(err).Str("purpose", purpose).Msg("model output violates response schema")
	}
}

func (s *llmService) record(ctx context.Context, purpose, userEmail string, resp ai.Response, callErr error, parseError bool) {
	invocation := &models.LLMInvocation{
		Purpose:    purpose,
		Model:      resp.Model,
		UserEmail:  userEmail,
		DurationMs: resp.DurationMs,
		Success:    callErr == nil,
		ParseError: parseError,
	}
	if callErr != nil {
		invocation.Metadata = datatypes.JSONMap{"error": callErr.Error()}
	}
	if err := s.audit.Create(ctx, invocation); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record llm invocation")
	}
}

// schemaSystemPrompt instructs the model to answer with JSON only. The app
// serves a Chinese-speaking audience, so the instruction is bilingual.
func schemaSystemPrompt(schema map[string]any) string {
	raw, err := json.Marshal(schema)
	if err != nil {
		raw = []byte("{}")
	}
	builder := strings.Builder{}
	builder.WriteString("你是一个只输出 JSON 的助手。请严格按照以下 JSON Schema 返回结果，不要输出任何解释或多余文本。\n")
	builder.WriteString("Respond with a single JSON object matching this schema and nothing else:\n")
	builder.Write(raw)
	return builder.String()
}

// parseModelJSON extracts a JSON object from model output. A direct parse is
// tried first, then the substring between the first '{' and the last '}'.
// When both fail the raw text is wrapped in an envelope flagged with
// parse_error so callers still receive something renderable.
func parseModelJSON(content string) (map[string]any, bool) {
	trimmed := strings.TrimSpace(content)

	var direct map[string]any
	if err := json.Unmarshal([]byte(trimmed), &direct); err == nil && direct != nil {
		return direct, false
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		var embedded map[string]any
		if err := json.Unmarshal([]byte(trimmed[start:end+1]), &embedded); err == nil && embedded != nil {
			return embedded, false
		}
	}

	return map[string]any{
		"raw_text":    content,
		"parse_error": true,
	}, true
}
