package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/eunoia-app/eunoia-api/internal/repository"
)

// Daily usage ceilings. Free accounts are hard-limited; plus accounts get a
// soft ceiling on chats that only produces a warning.
const (
	FreeDailyChatLimit   = 30
	PlusDailyChatSoft    = 60
	FreeDailyReportLimit = 1
)

// Quota errors mapped to 429 by handlers.
var (
	ErrChatQuotaExceeded   = errors.New("daily chat limit reached")
	ErrReportQuotaExceeded = errors.New("daily report limit reached")
)

// ChatUsage reports post-consumption quota state for a chat turn.
type ChatUsage struct {
	// Remaining is -1 when the account has no hard ceiling.
	Remaining int
	Warning   string
}

// UsageService meters the daily chat and report allowances.
type UsageService interface {
	ConsumeChat(ctx context.Context, userID uint) (ChatUsage, error)
	ConsumeReport(ctx context.Context, userID uint) error
}

type usageService struct {
	users  repository.UserRepository
	logger zerolog.Logger
	now    func() time.Time
}

// NewUsageService constructs the usage service.
func NewUsageService(users repository.UserRepository, logger zerolog.Logger) UsageService {
	return &usageService{
		users:  users,
		logger: logger.With().Str("component", "usage_service").Logger(),
		now:    time.Now,
	}
}

// ConsumeChat spends one chat turn. Free accounts are refused past their hard
// limit; plus accounts always proceed but receive a warning once past the
// soft ceiling. The counter update is a single conditional statement, so
// concurrent turns cannot overshoot the limit.
func (s *usageService) ConsumeChat(ctx context.Context, userID uint) (ChatUsage, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ChatUsage{}, ErrUserNotFound
		}
		return ChatUsage{}, err
	}

	today := utcDate(s.now())
	limit := FreeDailyChatLimit
	if user.IsPlus() {
		limit = 0 // unmetered, soft ceiling only
	}

	allowed, err := s.users.ConsumeDailyChat(ctx, userID, today, limit)
	if err != nil {
		return ChatUsage{}, err
	}
	if !allowed {
		return ChatUsage{}, ErrChatQuotaExceeded
	}

	used := user.EffectiveDailyChatCount(today) + 1
	usage := ChatUsage{Remaining: -1}
	if !user.IsPlus() {
		usage.Remaining = FreeDailyChatLimit - used
		if usage.Remaining < 0 {
			usage.Remaining = 0
		}
	} else if used > PlusDailyChatSoft {
		usage.Warning = "You have had a lot of conversations today. Consider taking a break."
		s.logger.Info().Uint("user_id", userID).Int("used", used).Msg("plus account past soft chat ceiling")
	}

	return usage, nil
}

// ConsumeReport spends one report generation. Plus accounts are unmetered.
func (s *usageService) ConsumeReport(ctx context.Context, userID uint) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	limit := FreeDailyReportLimit
	if user.IsPlus() {
		limit = 0
	}

	allowed, err := s.users.ConsumeDailyReport(ctx, userID, utcDate(s.now()), limit)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrReportQuotaExceeded
	}
	return nil
}
