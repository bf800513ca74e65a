package models

import "time"

// Community feed categories.
const (
	PostCategoryAIRelief  = "AI Relief"
	PostCategoryTreehole  = "Treehole"
	PostCategorySupport   = "Support Center"
	PostCategoryChallenge = "Challenges"
)

// Post is a community feed entry. Tags, the liker set and the shared persona
// snapshot are stored as serialized JSON text and translated at the codec
// boundary; clients only ever see the structured wire fields.
type Post struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Title               string    `gorm:"size:255;not null" json:"title"`
	Content             string    `gorm:"type:text" json:"content"`
	Category            string    `gorm:"size:64;index" json:"category"`
	ImageURL            string    `gorm:"size:512" json:"image_url"`
	TagsJSON            string    `gorm:"column:tags_json;type:text" json:"tags_json"`
	LikedByJSON         string    `gorm:"column:liked_by_json;type:text" json:"liked_by_json"`
	LikesCount          int       `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount       int       `gorm:"not null;default:0" json:"comments_count"`
	SharedStyleID       *int64    `gorm:"column:shared_style_id" json:"shared_style_id"`
	SharedStyleDataJSON string    `gorm:"column:shared_style_data_json;type:text" json:"shared_style_data_json"`
	CreatedBy           string    `gorm:"size:255;index" json:"created_by"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
