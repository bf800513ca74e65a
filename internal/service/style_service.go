package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/eunoia-app/eunoia-api/internal/dto"
	"github.com/eunoia-app/eunoia-api/internal/repository"
)

// StyleService owns the companion persona behaviour the generic gateway
// cannot express: cascading deletion of shared originals and the status
// probe imported copies use to learn their original's fate.
type StyleService interface {
	Delete(ctx context.Context, id uint) error
	Status(ctx context.Context, caller Caller, id uint) (dto.StyleStatusResponse, error)
}

type styleService struct {
	repo   repository.StyleRepository
	logger zerolog.Logger
}

// NewStyleService constructs the style service.
func NewStyleService(repo repository.StyleRepository, logger zerolog.Logger) StyleService {
	return &styleService{
		repo:   repo,
		logger: logger.With().Str("component", "style_service").Logger(),
	}
}

// Delete removes a persona. Deleting an original additionally marks every
// imported copy as orphaned, atomically; deleting an imported copy touches
// nothing else.
func (s *styleService) Delete(ctx context.Context, id uint) error {
	style, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return err
	}

	if style.IsImported {
		err = s.repo.Delete(ctx, id)
	} else {
		err = s.repo.DeleteOriginalCascade(ctx, id)
		if err == nil {
			s.logger.Info().Uint("style_id", id).Msg("original persona deleted, copies orphaned")
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	return err
}

// Status reports whether a persona still exists and whether the caller may
// manage it. The response never includes persona content, so a status probe
// cannot leak another author's personality or dialogue settings.
func (s *styleService) Status(ctx context.Context, caller Caller, id uint) (dto.StyleStatusResponse, error) {
	style, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StyleStatusResponse{Exists: false}, nil
		}
		return dto.StyleStatusResponse{}, err
	}

	return dto.StyleStatusResponse{
		Exists:            true,
		IsDeletedByAuthor: style.IsDeletedByAuthor,
		IsImported:        style.IsImported,
		AuthorEmail:       style.CreatedBy,
		Name:              style.Name,
		IsAccessible:      style.CreatedBy == caller.Email,
	}, nil
}
