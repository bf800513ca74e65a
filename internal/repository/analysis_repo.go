package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/eunoia-app/eunoia-api/internal/models"
)

// AnalysisRepository gives the background analysis workers typed access to
// emotion reports and trend analyses, including the conditional state
// transitions that guarantee a record completes at most once.
type AnalysisRepository interface {
	GetEmotionReport(ctx context.Context, id uint) (*models.EmotionReport, error)
	GetTrendAnalysis(ctx context.Context, id uint) (*models.TrendAnalysis, error)
	ListChatHistories(ctx context.Context, createdBy string, ids []uint) ([]models.ChatHistory, error)
	ListEmotionReports(ctx context.Context, createdBy string, ids []uint) ([]models.EmotionReport, error)
	CompleteEmotionReport(ctx context.Context, id uint, resultJSON string, at time.Time) (bool, error)
	FailEmotionReport(ctx context.Context, id uint) (bool, error)
	CompleteTrendAnalysis(ctx context.Context, id uint, resultJSON string, at time.Time) (bool, error)
	FailTrendAnalysis(ctx context.Context, id uint) (bool, error)
}

type analysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a GORM-backed analysis repository.
func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) GetEmotionReport(ctx context.Context, id uint) (*models.EmotionReport, error) {
	var report models.EmotionReport
	if err := r.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *analysisRepository) GetTrendAnalysis(ctx context.Context, id uint) (*models.TrendAnalysis, error) {
	var trend models.TrendAnalysis
	if err := r.db.WithContext(ctx).First(&trend, id).Error; err != nil {
		return nil, err
	}
	return &trend, nil
}

func (r *analysisRepository) ListChatHistories(ctx context.Context, createdBy string, ids []uint) ([]models.ChatHistory, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var chats []models.ChatHistory
	err := r.db.WithContext(ctx).
		Where("created_by = ?", createdBy).
		Where("id IN ?", ids).
		Find(&chats).Error
	return chats, err
}

func (r *analysisRepository) ListEmotionReports(ctx context.Context, createdBy string, ids []uint) ([]models.EmotionReport, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var reports []models.EmotionReport
	err := r.db.WithContext(ctx).
		Where("created_by = ?", createdBy).
		Where("id IN ?", ids).
		Find(&reports).Error
	return reports, err
}

// CompleteEmotionReport transitions an analyzing report to completed. The
// WHERE clause on status makes the transition a no-op when another worker got
// there first; the false return tells the caller its result was discarded.
func (r *analysisRepository) CompleteEmotionReport(ctx context.Context, id uint, resultJSON string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.EmotionReport{}).
		Where("id = ? AND status = ?", id, models.AnalysisStatusAnalyzing).
		Updates(map[string]any{
			"status":               models.AnalysisStatusCompleted,
			"analysis_result_json": resultJSON,
			"analyzed_at":          at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *analysisRepository) FailEmotionReport(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.EmotionReport{}).
		Where("id = ? AND status = ?", id, models.AnalysisStatusAnalyzing).
		Update("status", models.AnalysisStatusFailed)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *analysisRepository) CompleteTrendAnalysis(ctx context.Context, id uint, resultJSON string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.TrendAnalysis{}).
		Where("id = ? AND status = ?", id, models.AnalysisStatusAnalyzing).
		Updates(map[string]any{
			"status":            models.AnalysisStatusCompleted,
			"trend_result_json": resultJSON,
			"analyzed_at":       at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *analysisRepository) FailTrendAnalysis(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.TrendAnalysis{}).
		Where("id = ? AND status = ?", id, models.AnalysisStatusAnalyzing).
		Update("status", models.AnalysisStatusFailed)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
