package models

import (
	"time"

	"gorm.io/datatypes"
)

// Purposes recorded for LLM invocations.
const (
	LLMPurposeChat          = "chat"
	LLMPurposeEmotionReport = "emotion_report"
	LLMPurposeTrendAnalysis = "trend_analysis"
)

// LLMInvocation is an audit row written for every call to the external
// text-generation service.
type LLMInvocation struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	Purpose    string            `gorm:"size:32;index" json:"purpose"`
	Model      string            `gorm:"size:64" json:"model"`
	UserEmail  string            `gorm:"size:255;index" json:"user_email"`
	DurationMs int64             `gorm:"not null;default:0" json:"duration_ms"`
	Success    bool              `gorm:"not null;default:false" json:"success"`
	ParseError bool              `gorm:"not null;default:false" json:"parse_error"`
	Metadata   datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt  time.Time         `json:"created_at"`
}
