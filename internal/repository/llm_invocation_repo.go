package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/eunoia-app/eunoia-api/internal/models"
)

// LLMInvocationRepository records audit rows for external model calls.
type LLMInvocationRepository interface {
	Create(ctx context.Context, invocation *models.LLMInvocation) error
}

type llmInvocationRepository struct {
	db *gorm.DB
}

// NewLLMInvocationRepository creates a GORM-backed invocation audit repository.
func NewLLMInvocationRepository(db *gorm.DB) LLMInvocationRepository {
	return &llmInvocationRepository{db: db}
}

func (r *llmInvocationRepository) Create(ctx context.Context, invocation *models.LLMInvocation) error {
	return r.db.WithContext(ctx).Create(invocation).Error
}
