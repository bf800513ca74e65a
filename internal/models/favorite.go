package models

import "time"

// Favorite bookmarks a post for a user. The (post, user) pair is unique;
// creating an existing favorite returns the stored row instead of a duplicate.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"uniqueIndex:idx_favorites_post_user;not null" json:"post_id"`
	PostTitle string    `gorm:"size:255" json:"post_title"`
	CreatedBy string    `gorm:"uniqueIndex:idx_favorites_post_user;size:255" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
