package models

import "time"

// ChatHistory is one companion-chat session. The ordered message list is a
// serialized JSON text column exposed as a structured array on the wire.
type ChatHistory struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"size:255" json:"title"`
	StyleName     string     `gorm:"size:255" json:"style_name"`
	StyleAvatar   string     `gorm:"size:512" json:"style_avatar"`
	MessagesJSON  string     `gorm:"column:messages_json;type:text" json:"messages_json"`
	LastMessageAt *time.Time `json:"last_message_at"`
	CreatedBy     string     `gorm:"size:255;index" json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
