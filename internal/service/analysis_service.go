package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/eunoia-app/eunoia-api/internal/models"
	"github.com/eunoia-app/eunoia-api/internal/repository"
)

// AnalysisService runs the background LLM analyses behind emotion reports and
// trend analyses. A record is created in the analyzing state by the gateway;
// the worker here moves it to completed or failed exactly once.
type AnalysisService interface {
	AnalyzeEmotionReport(ctx context.Context, id uint, createdBy string)
	AnalyzeTrend(ctx context.Context, id uint, createdBy string)
}

type analysisService struct {
	repo   repository.AnalysisRepository
	llm    LLMService
	logger zerolog.Logger
	now    func() time.Time
}

// NewAnalysisService constructs the analysis worker service.
func NewAnalysisService(repo repository.AnalysisRepository, llm LLMService, logger zerolog.Logger) AnalysisService {
	return &analysisService{
		repo:   repo,
		llm:    llm,
		logger: logger.With().Str("component", "analysis_service").Logger(),
		now:    time.Now,
	}
}

func (s *analysisService) AnalyzeEmotionReport(ctx context.Context, id uint, createdBy string) {
	report, err := s.repo.GetEmotionReport(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Uint("report_id", id).Msg("failed to load emotion report")
		return
	}

	chats, err := s.repo.ListChatHistories(ctx, createdBy, parseIDList(report.SelectedChatsJSON))
	if err != nil {
		s.logger.Error().Err(err).Uint("report_id", id).Msg("failed to load selected chats")
		s.fail(ctx, id, s.repo.FailEmotionReport)
		return
	}

	result, _, err := s.llm.GenerateJSON(ctx, models.LLMPurposeEmotionReport, createdBy, emotionReportPrompt(chats), emotionReportSchema())
	if err != nil {
		s.logger.Error().Err(err).Uint("report_id", id).Msg("emotion analysis failed")
		s.fail(ctx, id, s.repo.FailEmotionReport)
		return
	}

	s.complete(ctx, id, result, s.repo.CompleteEmotionReport)
}

func (s *analysisService) AnalyzeTrend(ctx context.Context, id uint, createdBy string) {
	trend, err := s.repo.GetTrendAnalysis(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Uint("trend_id", id).Msg("failed to load trend analysis")
		return
	}

	reports, err := s.repo.ListEmotionReports(ctx, createdBy, parseIDList(trend.SelectedReportsJSON))
	if err != nil {
		s.logger.Error().Err(err).Uint("trend_id", id).Msg("failed to load selected reports")
		s.fail(ctx, id, s.repo.FailTrendAnalysis)
		return
	}

	result, _, err := s.llm.GenerateJSON(ctx, models.LLMPurposeTrendAnalysis, createdBy, trendPrompt(reports), trendSchema())
	if err != nil {
		s.logger.Error().Err(err).Uint("trend_id", id).Msg("trend analysis failed")
		s.fail(ctx, id, s.repo.FailTrendAnalysis)
		return
	}

	s.complete(ctx, id, result, s.repo.CompleteTrendAnalysis)
}

func (s *analysisService) complete(ctx context.Context, id uint, result map[string]any, transition func(context.Context, uint, string, time.Time) (bool, error)) {
	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Error().Err(err).Uint("record_id", id).Msg("analysis result not serializable")
		return
	}
	applied, err := transition(ctx, id, string(payload), s.now())
	if err != nil {
		s.logger.Error().Err(err).Uint("record_id", id).Msg("failed to store analysis result")
		return
	}
	if !applied {
		s.logger.Warn().Uint("record_id", id).Msg("analysis result discarded, record already transitioned")
	}
}

func (s *analysisService) fail(ctx context.Context, id uint, transition func(context.Context, uint) (bool, error)) {
	if _, err := transition(ctx, id); err != nil {
		s.logger.Error().Err(err).Uint("record_id", id).Msg("failed to mark analysis as failed")
	}
}

// parseIDList reads a serialized id selection. Numeric strings and JSON
// numbers are both accepted; anything else is skipped.
func parseIDList(raw string) []uint {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var values []any
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	out := make([]uint, 0, len(values))
	for _, value := range values {
		switch v := value.(type) {
		case float64:
			if v > 0 {
				out = append(out, uint(v))
			}
		case string:
			var id uint
			if _, err := fmt.Sscanf(strings.TrimSpace(v), "%d", &id); err == nil && id > 0 {
				out = append(out, id)
			}
		}
	}
	return out
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func emotionReportPrompt(chats []models.ChatHistory) string {
	builder := strings.Builder{}
	builder.WriteString("你是一位专业的青少年心理咨询师，请根据以下对话记录进行深入的情绪分析。\n\n")
	builder.WriteString("# 分析对象\n12-18岁青少年的AI聊天记录\n\n")
	builder.WriteString("# 对话记录\n")
	for i, chat := range chats {
		builder.WriteString(fmt.Sprintf("\n## 对话%d：%s\n使用角色：%s\n", i+1, chat.Title, chat.StyleName))
		var messages []chatMessage
		_ = json.Unmarshal([]byte(chat.MessagesJSON), &messages)
		for _, msg := range messages {
			speaker := "AI"
			if msg.Role == "user" {
				speaker = "用户"
			}
			builder.WriteString(fmt.Sprintf("%s：%s\n", speaker, msg.Content))
		}
	}
	builder.WriteString(`
# 分析要求
请从以下几个维度进行专业分析：

1. **情绪倾向总结**：分析用户在对话中表现出的整体情绪状态，包括情绪的强度、持续性和变化趋势。

2. **主要情绪分布**：识别用户表达的主要情绪类型（如焦虑、沮丧、愤怒、喜悦、恐惧等），评估每种情绪的占比和具体表现。

3. **潜在心理问题**：基于对话内容，谨慎推断可能存在的心理健康问题（如考试焦虑、人际关系困扰、自我认同问题、抑郁倾向等），注意不要过度诊断。

4. **积极建议**：提供3-5条具体、可操作的建议，帮助用户改善情绪状态和心理健康。建议应该温和、鼓励性的，适合青少年理解和实践。

5. **总体评估**：给出一个简明的总体心理健康状态评估，包括积极方面和需要关注的方面。

# 注意事项
- 保持专业、客观、温和的语气
- 避免使用过于医学化的术语
- 关注青少年的特殊心理需求
- 强调积极面，给予希望和鼓励
- 如果发现严重问题，建议寻求专业帮助

请以JSON格式返回分析结果。`)
	return builder.String()
}

func emotionReportSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"emotional_trend": map[string]any{"type": "string"},
			"dominant_emotions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"emotion":     map[string]any{"type": "string"},
						"percentage":  map[string]any{"type": "number"},
						"description": map[string]any{"type": "string"},
					},
				},
			},
			"potential_issues": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"suggestions": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"overall_assessment": map[string]any{"type": "string"},
		},
	}
}

func trendPrompt(reports []models.EmotionReport) string {
	summaries := make([]string, 0, len(reports))
	for i, report := range reports {
		var result map[string]any
		_ = json.Unmarshal([]byte(report.AnalysisResultJSON), &result)
		summaries = append(summaries, fmt.Sprintf("报告%d：总体(%s); 趋势(%s); 建议(%s)",
			i+1,
			stringField(result, "overall_assessment"),
			stringField(result, "emotional_trend"),
			strings.Join(stringSliceField(result, "suggestions"), "; "),
		))
	}

	return strings.Join([]string{
		"你是一名专业的情绪分析师。",
		"基于用户最近的多份情绪报告，进行趋势综合分析。",
		"请给出整体趋势、关键变化点、改进建议、需要关注的信号，输出严格的 JSON。",
		"以下是报告摘要：",
		strings.Join(summaries, "\n"),
	}, "\n\n")
}

func trendSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"overall_trend": map[string]any{"type": "string"},
			"key_changes": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"improvement_areas": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"warning_signs": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"overall_trend"},
	}
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	value, _ := m[key].(string)
	return value
}

func stringSliceField(m map[string]any, key string) []string {
	if m == nil {
		return nil
	}
	values, _ := m[key].([]any)
	out := make([]string, 0, len(values))
	for _, value := range values {
		if text, ok := value.(string); ok {
			out = append(out, text)
		}
	}
	return out
}
