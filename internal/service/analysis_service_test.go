package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/eunoia-app/eunoia-api/internal/dto"
	"github.com/eunoia-app/eunoia-api/internal/models"
	"github.com/eunoia-app/eunoia-api/internal/repository"
)

type stubLLM struct {
	object     map[string]any
	parseError bool
	err        error
	lastPrompt string
}

func (s *stubLLM) Invoke(context.Context, Caller, dto.InvokeLLMRequest) (dto.InvokeLLMResponse, error) {
	panic("not used")
}

func (s *stubLLM) GenerateJSON(_ context.Context, _, _, prompt string, _ map[string]any) (map[string]any, bool, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return nil, false, s.err
	}
	return s.object, s.parseError, nil
}

func jsonID(id uint) string {
	return fmt.Sprintf("%d", id)
}

func newAnalysisFixture(t *testing.T, llm *stubLLM) (AnalysisService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t, &models.EmotionReport{}, &models.TrendAnalysis{}, &models.ChatHistory{})
	svc := NewAnalysisService(repository.NewAnalysisRepository(db), llm, zerolog.Nop())
	return svc, db
}

func TestAnalyzeEmotionReportCompletes(t *testing.T) {
	llm := &stubLLM{object: map[string]any{"overall_assessment": "整体状态平稳"}}
	svc, db := newAnalysisFixture(t, llm)

	chat := models.ChatHistory{
		Title:        "期中考试压力",
		StyleName:    "暖心陪伴",
		MessagesJSON: `[{"role":"user","content":"最近睡不好"},{"role":"assistant","content":"我在听"}]`,
		CreatedBy:    "teen@example.com",
	}
	require.NoError(t, db.Create(&chat).Error)

	report := models.EmotionReport{
		SelectedChatsJSON: `[` + jsonID(chat.ID) + `]`,
		Status:            models.AnalysisStatusAnalyzing,
		CreatedBy:         "teen@example.com",
	}
	require.NoError(t, db.Create(&report).Error)

	svc.AnalyzeEmotionReport(context.Background(), report.ID, "teen@example.com")

	var stored models.EmotionReport
	require.NoError(t, db.First(&stored, report.ID).Error)
	require.Equal(t, models.AnalysisStatusCompleted, stored.Status)
	require.NotNil(t, stored.AnalyzedAt)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(stored.AnalysisResultJSON), &result))
	require.Equal(t, "整体状态平稳", result["overall_assessment"])

	require.Contains(t, llm.lastPrompt, "最近睡不好", "the selected chat transcript feeds the prompt")
	require.Contains(t, llm.lastPrompt, "暖心陪伴")
}

func TestAnalyzeEmotionReportUnparsableStillCompletes(t *testing.T) {
	llm := &stubLLM{
		object:     map[string]any{"raw_text": "sorry", "parse_error": true},
		parseError: true,
	}
	svc, db := newAnalysisFixture(t, llm)

	report := models.EmotionReport{
		SelectedChatsJSON: `[]`,
		Status:            models.AnalysisStatusAnalyzing,
		CreatedBy:         "teen@example.com",
	}
	require.NoError(t, db.Create(&report).Error)

	svc.AnalyzeEmotionReport(context.Background(), report.ID, "teen@example.com")

	var stored models.EmotionReport
	require.NoError(t, db.First(&stored, report.ID).Error)
	require.Equal(t, models.AnalysisStatusCompleted, stored.Status, "a parse failure still produces a renderable report")
	require.Contains(t, stored.AnalysisResultJSON, "parse_error")
}

func TestAnalyzeEmotionReportClientErrorFails(t *testing.T) {
	llm := &stubLLM{err: errors.New("upstream unavailable")}
	svc, db := newAnalysisFixture(t, llm)

	report := models.EmotionReport{
		SelectedChatsJSON: `[]`,
		Status:            models.AnalysisStatusAnalyzing,
		CreatedBy:         "teen@example.com",
	}
	require.NoError(t, db.Create(&report).Error)

	svc.AnalyzeEmotionReport(context.Background(), report.ID, "teen@example.com")

	var stored models.EmotionReport
	require.NoError(t, db.First(&stored, report.ID).Error)
	require.Equal(t, models.AnalysisStatusFailed, stored.Status)
	require.Empty(t, stored.AnalysisResultJSON)
}

func TestAnalyzeEmotionReportAlreadyCompleted(t *testing.T) {
	llm := &stubLLM{object: map[string]any{"overall_assessment": "second run"}}
	svc, db := newAnalysisFixture(t, llm)

	report := models.EmotionReport{
		SelectedChatsJSON:  `[]`,
		Status:             models.AnalysisStatusCompleted,
		AnalysisResultJSON: `{"overall_assessment":"first run"}`,
		CreatedBy:          "teen@example.com",
	}
	require.NoError(t, db.Create(&report).Error)

	svc.AnalyzeEmotionReport(context.Background(), report.ID, "teen@example.com")

	var stored models.EmotionReport
	require.NoError(t, db.First(&stored, report.ID).Error)
	require.Contains(t, stored.AnalysisResultJSON, "first run", "a settled record is never overwritten")
}

func TestAnalyzeEmotionReportIgnoresOtherUsersChats(t *testing.T) {
	llm := &stubLLM{object: map[string]any{"overall_assessment": "ok"}}
	svc, db := newAnalysisFixture(t, llm)

	foreign := models.ChatHistory{
		Title:        "private",
		MessagesJSON: `[{"role":"user","content":"someone else's secret"}]`,
		CreatedBy:    "other@example.com",
	}
	require.NoError(t, db.Create(&foreign).Error)

	report := models.EmotionReport{
		SelectedChatsJSON: `[` + jsonID(foreign.ID) + `]`,
		Status:            models.AnalysisStatusAnalyzing,
		CreatedBy:         "teen@example.com",
	}
	require.NoError(t, db.Create(&report).Error)

	svc.AnalyzeEmotionReport(context.Background(), report.ID, "teen@example.com")

	require.NotContains(t, llm.lastPrompt, "someone else's secret")
}

func TestAnalyzeTrendCompletes(t *testing.T) {
	llm := &stubLLM{object: map[string]any{"overall_trend": "持续好转"}}
	svc, db := newAnalysisFixture(t, llm)

	source := models.EmotionReport{
		Status:             models.AnalysisStatusCompleted,
		AnalysisResultJSON: `{"overall_assessment":"平稳","emotional_trend":"上升","suggestions":["多休息"]}`,
		CreatedBy:          "teen@example.com",
	}
	require.NoError(t, db.Create(&source).Error)

	trend := models.TrendAnalysis{
		SelectedReportsJSON: `["` + jsonID(source.ID) + `"]`,
		Status:              models.AnalysisStatusAnalyzing,
		CreatedBy:           "teen@example.com",
	}
	require.NoError(t, db.Create(&trend).Error)

	svc.AnalyzeTrend(context.Background(), trend.ID, "teen@example.com")

	var stored models.TrendAnalysis
	require.NoError(t, db.First(&stored, trend.ID).Error)
	require.Equal(t, models.AnalysisStatusCompleted, stored.Status)
	require.Contains(t, stored.TrendResultJSON, "持续好转")

	require.Contains(t, llm.lastPrompt, "平稳", "report summaries feed the prompt")
	require.Contains(t, llm.lastPrompt, "多休息")
}

func TestParseIDList(t *testing.T) {
	require.Equal(t, []uint{1, 2, 3}, parseIDList(`[1, "2", 3]`))
	require.Empty(t, parseIDList(`["abc", -1, 0]`))
	require.Nil(t, parseIDList(""))
	require.Nil(t, parseIDList("not json"))
}
