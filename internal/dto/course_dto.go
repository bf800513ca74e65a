package dto

import "time"

// CourseResponse is the marketplace projection of a course.
type CourseResponse struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	CoverImage       string    `json:"cover_image"`
	PartnerName      string    `json:"partner_name"`
	TotalLessons     int       `json:"total_lessons"`
	PlusTrialLessons int       `json:"plus_trial_lessons"`
	FreeTrialLessons int       `json:"free_trial_lessons"`
	Price            float64   `json:"price"`
	PlusDiscount     float64   `json:"plus_discount"`
	IsFeatured       bool      `json:"is_featured"`
	CreatedAt        time.Time `json:"created_at"`
}

// CourseListResponse wraps featured course listings with cache metadata.
type CourseListResponse struct {
	Items    []CourseResponse `json:"items"`
	CacheHit bool             `json:"cache_hit,omitempty"`
}
