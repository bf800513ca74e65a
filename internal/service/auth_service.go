package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/eunoia-app/eunoia-api/internal/dto"
	"github.com/eunoia-app/eunoia-api/internal/models"
	"github.com/eunoia-app/eunoia-api/internal/repository"
)

// Sentinel errors surfaced by the auth service.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const tokenLifetime = 7 * 24 * time.Hour

// AuthService handles registration, login and token issuance.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.RegisterResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
}

type authService struct {
	users     repository.UserRepository
	secret    []byte
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the auth service.
func NewAuthService(users repository.UserRepository, secret string, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		secret:    []byte(secret),
		validator: validator.New(),
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (dto.RegisterResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.RegisterResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return dto.RegisterResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.RegisterResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.RegisterResponse{}, err
	}

	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		nickname = email[:strings.Index(email+"@", "@")]
	}

	user := &models.User{
		Email:            email,
		PasswordHash:     string(hash),
		Nickname:         nickname,
		FullName:         strings.TrimSpace(req.FullName),
		SubscriptionTier: models.SubscriptionTierFree,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return dto.RegisterResponse{}, err
	}

	s.logger.Info().Str("email", email).Msg("account registered")

	return dto.RegisterResponse{ID: user.ID, Email: user.Email}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *authService) issue(user *models.User) (dto.LoginResponse, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenLifetime).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	return dto.LoginResponse{Token: token}, nil
}

// utcDate formats a timestamp as the UTC calendar date backing the daily
// usage counters.
func utcDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func userResponse(user *models.User, today string) dto.UserResponse {
	return dto.UserResponse{
		ID:               user.ID,
		Email:            user.Email,
		Nickname:         user.Nickname,
		FullName:         user.FullName,
		AvatarURL:        user.AvatarURL,
		Bio:              user.Bio,
		SubscriptionTier: user.SubscriptionTier,
		DailyChatCount:   user.EffectiveDailyChatCount(today),
		DailyReportCount: user.EffectiveDailyReportCount(today),
		CreatedAt:        user.CreatedAt,
	}
}
