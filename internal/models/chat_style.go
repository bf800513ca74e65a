package models

import "time"

// ChatStyle is an AI companion persona. A style with IsImported=false is an
// original; imported copies keep a back-reference to the original plus a
// display snapshot of its author. Deleting an original marks every copy with
// IsDeletedByAuthor while the copies themselves remain usable.
type ChatStyle struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"size:255;not null" json:"name"`
	Avatar              string    `gorm:"size:512" json:"avatar"`
	Personality         string    `gorm:"type:text" json:"personality"`
	Background          string    `gorm:"type:text" json:"background"`
	DialogueStyle       string    `gorm:"type:text" json:"dialogue_style"`
	IsDefault           bool      `gorm:"not null;default:false" json:"is_default"`
	IsImported          bool      `gorm:"not null;default:false" json:"is_imported"`
	OriginalStyleID     *uint     `gorm:"index" json:"original_style_id"`
	OriginalAuthorEmail string    `gorm:"size:255" json:"original_author_email"`
	OriginalAuthorName  string    `gorm:"size:255" json:"original_author_name"`
	IsDeletedByAuthor   bool      `gorm:"not null;default:false" json:"is_deleted_by_author"`
	CreatedBy           string    `gorm:"size:255;index" json:"created_by"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
