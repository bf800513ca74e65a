package models

import "time"

// Analysis lifecycle states shared by emotion reports and trend analyses.
// A record transitions exactly once from analyzing to completed or failed.
const (
	AnalysisStatusPending   = "pending"
	AnalysisStatusAnalyzing = "analyzing"
	AnalysisStatusCompleted = "completed"
	AnalysisStatusFailed    = "failed"
)

// EmotionReport holds an AI-generated emotion analysis over a selection of
// chat sessions. The selection and the structured result are serialized JSON
// text columns.
type EmotionReport struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Title              string     `gorm:"size:255" json:"title"`
	SelectedChatsJSON  string     `gorm:"column:selected_chats_json;type:text" json:"selected_chats_json"`
	Status             string     `gorm:"size:16;index" json:"status"`
	AnalysisResultJSON string     `gorm:"column:analysis_result_json;type:text" json:"analysis_result_json"`
	IsViewed           bool       `gorm:"not null;default:false" json:"is_viewed"`
	AnalyzedAt         *time.Time `json:"analyzed_at"`
	CreatedBy          string     `gorm:"size:255;index" json:"created_by"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
