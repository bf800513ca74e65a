package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/eunoia-app/eunoia-api/internal/dto"
	"github.com/eunoia-app/eunoia-api/internal/models"
	"github.com/eunoia-app/eunoia-api/internal/repository"
)

func newUserFixture(t *testing.T, user models.User) (UserService, *models.User) {
	t.Helper()
	db := setupTestDB(t, &models.User{})
	require.NoError(t, db.Create(&user).Error)
	return NewUserService(repository.NewUserRepository(db), zerolog.Nop()), &user
}

func stringPtr(s string) *string { return &s }

func TestMeReflectsStaleCountersAsZero(t *testing.T) {
	svc, user := newUserFixture(t, models.User{
		Email:              "teen@example.com",
		Nickname:           "小明",
		DailyChatCount:     12,
		DailyChatResetDate: "2020-01-01",
	})

	me, err := svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, "teen@example.com", me.Email)
	require.Zero(t, me.DailyChatCount, "counters from a past day read as zero")
}

func TestMeUnknownUser(t *testing.T) {
	svc, _ := newUserFixture(t, models.User{Email: "x@example.com"})

	_, err := svc.Me(context.Background(), 9999)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateMePartialFields(t *testing.T) {
	svc, user := newUserFixture(t, models.User{
		Email:    "teen@example.com",
		Nickname: "old",
		Bio:      "keep me",
	})

	updated, err := svc.UpdateMe(context.Background(), user.ID, dto.UpdateProfileRequest{
		Nickname: stringPtr("  新昵称  "),
	})
	require.NoError(t, err)
	require.Equal(t, "新昵称", updated.Nickname)
	require.Equal(t, "keep me", updated.Bio, "absent fields are untouched")
}

func TestUpdateMeNormalizesAvatarURL(t *testing.T) {
	svc, user := newUserFixture(t, models.User{Email: "teen@example.com"})

	updated, err := svc.UpdateMe(context.Background(), user.ID, dto.UpdateProfileRequest{
		AvatarURL: stringPtr("http://localhost:3001/api/uploads/abc.png"),
	})
	require.NoError(t, err)
	require.Equal(t, "/api/uploads/abc.png", updated.AvatarURL)
}

func TestGetByEmailPublicProjection(t *testing.T) {
	svc, _ := newUserFixture(t, models.User{
		Email:        "teen@example.com",
		Nickname:     "小明",
		PasswordHash: "$2a$10$secret",
	})

	public, err := svc.GetByEmail(context.Background(), "  TEEN@example.com ")
	require.NoError(t, err)
	require.Equal(t, "teen@example.com", public.Email)
	require.Equal(t, "小明", public.Nickname)
}

func TestGetByEmailUnknown(t *testing.T) {
	svc, _ := newUserFixture(t, models.User{Email: "x@example.com"})

	_, err := svc.GetByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}
