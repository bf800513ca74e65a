package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/eunoia-app/eunoia-api/internal/dto"
	"github.com/eunoia-app/eunoia-api/internal/repository"
	"github.com/eunoia-app/eunoia-api/internal/utils"
)

// ErrUserNotFound is returned when a lookup misses.
var ErrUserNotFound = errors.New("user not found")

// UserService exposes profile operations for the authenticated account and
// public lookups of other accounts.
type UserService interface {
	Me(ctx context.Context, userID uint) (dto.UserResponse, error)
	UpdateMe(ctx context.Context, userID uint, req dto.UpdateProfileRequest) (dto.UserResponse, error)
	GetByEmail(ctx context.Context, email string) (dto.PublicUserResponse, error)
}

type userService struct {
	users     repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewUserService constructs the user service.
func NewUserService(users repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		users:     users,
		validator: validator.New(),
		logger:    logger.With().Str("component", "user_service").Logger(),
		now:       time.Now,
	}
}

func (s *userService) Me(ctx context.Context, userID uint) (dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}
	return userResponse(user, utcDate(s.now())), nil
}

func (s *userService) UpdateMe(ctx context.Context, userID uint, req dto.UpdateProfileRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.UserResponse{}, err
	}

	updates := map[string]any{}
	if req.Nickname != nil {
		updates["nickname"] = strings.TrimSpace(*req.Nickname)
	}
	if req.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = utils.NormalizeUploadURL(*req.AvatarURL)
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}

	if len(updates) > 0 {
		if err := s.users.UpdateProfile(ctx, userID, updates); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.UserResponse{}, ErrUserNotFound
			}
			return dto.UserResponse{}, err
		}
	}

	return s.Me(ctx, userID)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (dto.PublicUserResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PublicUserResponse{}, ErrUserNotFound
		}
		return dto.PublicUserResponse{}, err
	}
	return dto.PublicUserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Nickname:  user.Nickname,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
		Bio:       user.Bio,
	}, nil
}
