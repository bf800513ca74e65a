package models

import "time"

// Notification event kinds.
const (
	NotificationTypeLike     = "like"
	NotificationTypeFavorite = "favorite"
	NotificationTypeComment  = "comment"
)

// Notification records a social event addressed to a recipient. Listings are
// scoped to the recipient, not the creator.
type Notification struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RecipientEmail string    `gorm:"size:255;index" json:"recipient_email"`
	Type           string    `gorm:"size:32" json:"type"`
	PostID         *int64    `gorm:"column:post_id" json:"post_id"`
	PostTitle      string    `gorm:"size:255" json:"post_title"`
	ActorEmail     string    `gorm:"size:255" json:"actor_email"`
	ActorName      string    `gorm:"size:255" json:"actor_name"`
	CommentContent string    `gorm:"type:text" json:"comment_content"`
	IsRead         bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
