package models

import "time"

// Course is a static marketplace catalog entry. Trial lesson counts differ by
// subscription tier and the plus discount is a multiplicative factor.
type Course struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Title            string    `gorm:"size:255;not null" json:"title"`
	CoverImage       string    `gorm:"size:512" json:"cover_image"`
	PartnerName      string    `gorm:"size:255" json:"partner_name"`
	Description      string    `gorm:"type:text" json:"description"`
	TotalLessons     int       `gorm:"not null;default:0" json:"total_lessons"`
	PlusTrialLessons int       `gorm:"not null;default:0" json:"plus_trial_lessons"`
	FreeTrialLessons int       `gorm:"not null;default:0" json:"free_trial_lessons"`
	Price            float64   `gorm:"not null;default:0" json:"price"`
	PlusDiscount     float64   `gorm:"not null;default:0" json:"plus_discount"`
	IsFeatured       bool      `gorm:"not null;default:false" json:"is_featured"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
