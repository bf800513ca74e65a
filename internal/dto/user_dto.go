package dto

import "time"

// UserResponse is the caller-facing account projection.
type UserResponse struct {
	ID               uint      `json:"id"`
	Email            string    `json:"email"`
	Nickname         string    `json:"nickname"`
	FullName         string    `json:"full_name"`
	AvatarURL        string    `json:"avatar_url"`
	Bio              string    `json:"bio"`
	SubscriptionTier string    `json:"subscription_tier"`
	DailyChatCount   int       `json:"daily_chat_count"`
	DailyReportCount int       `json:"daily_report_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// PublicUserResponse is the projection returned when looking up another
// account by email. It omits usage counters and subscription state.
type PublicUserResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Nickname  string `json:"nickname"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
}

// UpdateProfileRequest carries the mutable profile fields. Pointer fields
// distinguish "leave unchanged" from "set to empty".
type UpdateProfileRequest struct {
	Nickname  *string `json:"nickname" validate:"omitempty,max=255"`
	FullName  *string `json:"full_name" validate:"omitempty,max=255"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,max=512"`
	Bio       *string `json:"bio" validate:"omitempty,max=2000"`
}
