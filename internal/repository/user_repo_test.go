package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eunoia-app/eunoia-api/internal/models"
)

func TestConsumeDailyChatAtLimit(t *testing.T) {
	db := setupTestDB(t, &models.User{})
	repo := NewUserRepository(db)

	user := models.User{
		Email:              "free@example.com",
		SubscriptionTier:   models.SubscriptionTierFree,
		DailyChatCount:     30,
		DailyChatResetDate: "2026-08-31",
	}
	require.NoError(t, db.Create(&user).Error)

	allowed, err := repo.ConsumeDailyChat(context.Background(), user.ID, "2026-08-31", 30)
	require.NoError(t, err)
	require.False(t, allowed, "31st chat on the same day is refused")

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.Equal(t, 30, stored.DailyChatCount)
}

func TestConsumeDailyChatStaleDateResets(t *testing.T) {
	db := setupTestDB(t, &models.User{})
	repo := NewUserRepository(db)

	user := models.User{
		Email:              "free@example.com",
		SubscriptionTier:   models.SubscriptionTierFree,
		DailyChatCount:     30,
		DailyChatResetDate: "2026-08-30",
	}
	require.NoError(t, db.Create(&user).Error)

	allowed, err := repo.ConsumeDailyChat(context.Background(), user.ID, "2026-08-31", 30)
	require.NoError(t, err)
	require.True(t, allowed, "a stale counter reads as zero")

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.Equal(t, 1, stored.DailyChatCount)
	require.Equal(t, "2026-08-31", stored.DailyChatResetDate)
}

func TestConsumeDailyChatUnmetered(t *testing.T) {
	db := setupTestDB(t, &models.User{})
	repo := NewUserRepository(db)

	user := models.User{
		Email:              "plus@example.com",
		SubscriptionTier:   models.SubscriptionTierPlus,
		DailyChatCount:     500,
		DailyChatResetDate: "2026-08-31",
	}
	require.NoError(t, db.Create(&user).Error)

	allowed, err := repo.ConsumeDailyChat(context.Background(), user.ID, "2026-08-31", 0)
	require.NoError(t, err)
	require.True(t, allowed, "limit of zero means unmetered")

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.Equal(t, 501, stored.DailyChatCount)
}

func TestConsumeDailyReport(t *testing.T) {
	db := setupTestDB(t, &models.User{})
	repo := NewUserRepository(db)

	user := models.User{Email: "free@example.com", SubscriptionTier: models.SubscriptionTierFree}
	require.NoError(t, db.Create(&user).Error)

	allowed, err := repo.ConsumeDailyReport(context.Background(), user.ID, "2026-08-31", 1)
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = repo.ConsumeDailyReport(context.Background(), user.ID, "2026-08-31", 1)
	require.NoError(t, err)
	require.False(t, allowed, "free tier gets a single report per day")
}

func TestConsumeDailyChatMissingUser(t *testing.T) {
	db := setupTestDB(t, &models.User{})
	repo := NewUserRepository(db)

	allowed, err := repo.ConsumeDailyChat(context.Background(), 99, "2026-08-31", 30)
	require.NoError(t, err)
	require.False(t, allowed)
}
