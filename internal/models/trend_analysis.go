package models

import "time"

// TrendAnalysis aggregates several emotion reports into a longitudinal trend.
type TrendAnalysis struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	Title               string     `gorm:"size:255" json:"title"`
	SelectedReportsJSON string     `gorm:"column:selected_reports_json;type:text" json:"selected_reports_json"`
	Status              string     `gorm:"size:16;index" json:"status"`
	TrendResultJSON     string     `gorm:"column:trend_result_json;type:text" json:"trend_result_json"`
	AnalyzedAt          *time.Time `json:"analyzed_at"`
	CreatedBy           string     `gorm:"size:255;index" json:"created_by"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
