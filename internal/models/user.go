package models

import "time"

// Subscription tiers gating daily usage ceilings.
const (
	SubscriptionTierFree = "free"
	SubscriptionTierPlus = "plus"
)

// User is an account record. The daily counters are only meaningful while
// their paired reset date equals the current UTC date; a stale counter reads
// as zero and is reset on the next metered action.
type User struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	Email                string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash         string    `gorm:"size:255" json:"-"`
	Nickname             string    `gorm:"size:255" json:"nickname"`
	FullName             string    `gorm:"size:255" json:"full_name"`
	AvatarURL            string    `gorm:"size:512" json:"avatar_url"`
	Bio                  string    `gorm:"type:text" json:"bio"`
	SubscriptionTier     string    `gorm:"size:16;not null;default:free" json:"subscription_tier"`
	DailyChatCount       int       `gorm:"not null;default:0" json:"daily_chat_count"`
	DailyChatResetDate   string    `gorm:"size:10" json:"daily_chat_reset_date"`
	DailyReportCount     int       `gorm:"not null;default:0" json:"daily_report_count"`
	DailyReportResetDate string    `gorm:"size:10" json:"daily_report_reset_date"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// IsPlus reports whether the account is on the plus tier.
func (u User) IsPlus() bool {
	return u.SubscriptionTier == SubscriptionTierPlus
}

// EffectiveDailyChatCount returns the chat counter as of the given UTC date.
func (u User) EffectiveDailyChatCount(today string) int {
	if u.DailyChatResetDate != today {
		return 0
	}
	return u.DailyChatCount
}

// EffectiveDailyReportCount returns the report counter as of the given UTC date.
func (u User) EffectiveDailyReportCount(today string) int {
	if u.DailyReportResetDate != today {
		return 0
	}
	return u.DailyReportCount
}
