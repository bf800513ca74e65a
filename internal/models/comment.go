package models

import "time"

// Comment is a reply on a community post.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"index;not null" json:"post_id"`
	AuthorName string    `gorm:"size:255" json:"author_name"`
	Content    string    `gorm:"type:text" json:"content"`
	CreatedBy  string    `gorm:"size:255;index" json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
