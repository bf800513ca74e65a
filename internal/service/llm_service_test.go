package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/eunoia-app/eunoia-api/internal/dto"
	"github.com/eunoia-app/eunoia-api/internal/models"
	"github.com/eunoia-app/eunoia-api/pkg/ai"
)

type stubAIClient struct {
	content string
	err     error
	lastReq ai.Request
}

func (c *stubAIClient) Generate(_ context.Context, req ai.Request) (ai.Response, error) {
	c.lastReq = req
	if c.err != nil {
		return ai.Response{}, c.err
	}
	return ai.Response{Content: c.content, Model: "glm-4.5-flash", DurationMs: 12}, nil
}

type stubUsage struct {
	usage       ChatUsage
	err         error
	chatCalls   int
	reportCalls int
}

func (s *stubUsage) ConsumeChat(context.Context, uint) (ChatUsage, error) {
	s.chatCalls++
	return s.usage, s.err
}

func (s *stubUsage) ConsumeReport(context.Context, uint) error {
	s.reportCalls++
	return s.err
}

type stubAudit struct {
	created []*models.LLMInvocation
}

func (s *stubAudit) Create(_ context.Context, invocation *models.LLMInvocation) error {
	s.created = append(s.created, invocation)
	return nil
}

func TestInvokeRequiresPrompt(t *testing.T) {
	svc := NewLLMService(&stubAIClient{}, &stubUsage{}, &stubAudit{}, zerolog.Nop())

	_, err := svc.Invoke(context.Background(), Caller{ID: 1}, dto.InvokeLLMRequest{Prompt: "   "})
	require.ErrorIs(t, err, ErrPromptRequired)
}

func TestInvokePlainTextIsMetered(t *testing.T) {
	client := &stubAIClient{content: "  你好，我在呢。  "}
	usage := &stubUsage{usage: ChatUsage{Remaining: 7}}
	audit := &stubAudit{}
	svc := NewLLMService(client, usage, audit, zerolog.Nop())

	resp, err := svc.Invoke(context.Background(), Caller{ID: 1, Email: "a@example.com"}, dto.InvokeLLMRequest{Prompt: "hi"})
	require.NoError(t, err)
	require.Equal(t, 1, usage.chatCalls)
	require.Equal(t, client.content, resp.Text)
	require.NotNil(t, resp.Remaining)
	require.Equal(t, 7, *resp.Remaining)
	require.Nil(t, resp.Object)

	require.Len(t, audit.created, 1)
	require.True(t, audit.created[0].Success)
	require.Equal(t, "a@example.com", audit.created[0].UserEmail)
}

func TestInvokePlainTextQuotaExceeded(t *testing.T) {
	usage := &stubUsage{err: ErrChatQuotaExceeded}
	client := &stubAIClient{content: "never reached"}
	svc := NewLLMService(client, usage, &stubAudit{}, zerolog.Nop())

	_, err := svc.Invoke(context.Background(), Caller{ID: 1}, dto.InvokeLLMRequest{Prompt: "hi"})
	require.ErrorIs(t, err, ErrChatQuotaExceeded)
	require.Empty(t, client.lastReq.Prompt, "the model is not called once the quota refuses")
}

func TestInvokeSchemaSkipsMetering(t *testing.T) {
	client := &stubAIClient{content: `{"mood": "calm"}`}
	usage := &stubUsage{}
	svc := NewLLMService(client, usage, &stubAudit{}, zerolog.Nop())

	resp, err := svc.Invoke(context.Background(), Caller{ID: 1}, dto.InvokeLLMRequest{
		Prompt:             "analyze",
		ResponseJSONSchema: map[string]any{"type": "object"},
	})
	require.NoError(t, err)
	require.Zero(t, usage.chatCalls)
	require.Equal(t, "calm", resp.Object["mood"])
	require.Nil(t, resp.Remaining)
	require.Contains(t, client.lastReq.SystemPrompt, "JSON")
}

func TestInvokeSchemaUnparsableOutput(t *testing.T) {
	client := &stubAIClient{content: "sorry, something went wrong"}
	audit := &stubAudit{}
	svc := NewLLMService(client, &stubUsage{}, audit, zerolog.Nop())

	resp, err := svc.Invoke(context.Background(), Caller{ID: 1}, dto.InvokeLLMRequest{
		Prompt:             "analyze",
		ResponseJSONSchema: map[string]any{"type": "object"},
	})
	require.NoError(t, err, "a parse failure is not an invocation failure")
	require.Equal(t, true, resp.Object["parse_error"])
	require.Equal(t, client.content, resp.Object["raw_text"])

	require.Len(t, audit.created, 1)
	require.True(t, audit.created[0].ParseError)
	require.True(t, audit.created[0].Success)
}

func TestInvokeClientError(t *testing.T) {
	boom := errors.New("upstream unavailable")
	audit := &stubAudit{}
	svc := NewLLMService(&stubAIClient{err: boom}, &stubUsage{}, audit, zerolog.Nop())

	_, err := svc.Invoke(context.Background(), Caller{ID: 1}, dto.InvokeLLMRequest{Prompt: "hi"})
	require.ErrorIs(t, err, boom)
	require.Len(t, audit.created, 1)
	require.False(t, audit.created[0].Success)
}

func TestParseModelJSON(t *testing.T) {
	object, parseError := parseModelJSON(`{"a": 1}`)
	require.False(t, parseError)
	require.Equal(t, float64(1), object["a"])

	object, parseError = parseModelJSON("```json\n{\"a\": 1}\n```")
	require.False(t, parseError, "fenced output is parsed via substring extraction")
	require.Equal(t, float64(1), object["a"])

	object, parseError = parseModelJSON("好的，这是结果：{\"overall\": \"稳定\"}，希望有帮助")
	require.False(t, parseError)
	require.Equal(t, "稳定", object["overall"])

	object, parseError = parseModelJSON("plain prose with no braces")
	require.True(t, parseError)
	require.Equal(t, "plain prose with no braces", object["raw_text"])
	require.Equal(t, true, object["parse_error"])
}
