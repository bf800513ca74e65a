package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/eunoia-app/eunoia-api/internal/entity"
	"github.com/eunoia-app/eunoia-api/internal/models"
	"github.com/eunoia-app/eunoia-api/internal/repository"
	"github.com/eunoia-app/eunoia-api/internal/utils"
)

// Gateway sentinel errors.
var (
	ErrUnknownEntity  = errors.New("unknown entity type")
	ErrRecordNotFound = errors.New("record not found")
)

// Caller identifies the authenticated account behind a request.
type Caller struct {
	ID    uint
	Email string
}

// ListQuery carries the optional listing parameters as they arrive on the
// wire. Order values like "undefined" or "null" are treated as absent.
type ListQuery struct {
	Order string
	Limit int
}

// EntityService is the generic record gateway: a closed set of entity types
// served through uniform list, create, update and delete operations, with
// per-kind visibility scoping and side effects layered on top.
type EntityService interface {
	List(ctx context.Context, caller Caller, name string, query ListQuery) ([]map[string]any, error)
	Get(ctx context.Context, caller Caller, name string, id uint) (map[string]any, error)
	Create(ctx context.Context, caller Caller, name string, payload map[string]any) (map[string]any, error)
	Update(ctx context.Context, caller Caller, name string, id uint, payload map[string]any) (map[string]any, error)
	Delete(ctx context.Context, caller Caller, name string, id uint) error
}

type entityService struct {
	repo     repository.EntityRepository
	styles   StyleService
	usage    UsageService
	analysis AnalysisService
	policy   *bluemonday.Policy
	logger   zerolog.Logger
}

// NewEntityService constructs the gateway service.
func NewEntityService(
	repo repository.EntityRepository,
	styles StyleService,
	usage UsageService,
	analysis AnalysisService,
	logger zerolog.Logger,
) EntityService {
	return &entityService{
		repo:     repo,
		styles:   styles,
		usage:    usage,
		analysis: analysis,
		policy:   bluemonday.UGCPolicy(),
		logger:   logger.With().Str("component", "entity_service").Logger(),
	}
}

func (s *entityService) List(ctx context.Context, caller Caller, name string, query ListQuery) ([]map[string]any, error) {
	d, ok := entity.ParseKind(name)
	if !ok {
		return nil, ErrUnknownEntity
	}

	opts := repository.ListOptions{
		Order: normalizeQueryValue(query.Order),
		Limit: query.Limit,
	}
	if column := d.ScopeColumn(); column != "" {
		opts.ScopeColumn = column
		opts.ScopeValue = caller.Email
	}

	rows, err := s.repo.List(ctx, d, opts)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.ToWire(d, row))
	}
	return out, nil
}

func (s *entityService) Get(ctx context.Context, caller Caller, name string, id uint) (map[string]any, error) {
	d, ok := entity.ParseKind(name)
	if !ok {
		return nil, ErrUnknownEntity
	}

	row, err := s.repo.Get(ctx, d, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return entity.ToWire(d, row), nil
}

func (s *entityService) Create(ctx context.Context, caller Caller, name string, payload map[string]any) (map[string]any, error) {
	d, ok := entity.ParseKind(name)
	if !ok {
		return nil, ErrUnknownEntity
	}

	record := entity.ToStorage(d, s.prepare(d, payload))
	if d.TracksCreator {
		record["created_by"] = caller.Email
	}

	switch d.Kind {
	case entity.KindFavorite:
		if existing, err := s.existingFavorite(ctx, d, caller, record); err != nil {
			return nil, err
		} else if existing != nil {
			return existing, nil
		}
	case entity.KindEmotionReport:
		if err := s.usage.ConsumeReport(ctx, caller.ID); err != nil {
			return nil, err
		}
		record["status"] = models.AnalysisStatusAnalyzing
	case entity.KindTrendAnalysis:
		record["status"] = models.AnalysisStatusAnalyzing
	}

	row, err := s.repo.Create(ctx, d, record)
	if err != nil {
		return nil, err
	}

	s.afterCreate(d, row, caller)

	return entity.ToWire(d, row), nil
}

// afterCreate kicks off background analysis for the kinds that need it. The
// worker runs detached from the request context so a client disconnect does
// not abandon a record in the analyzing state.
func (s *entityService) afterCreate(d entity.Descriptor, row map[string]any, caller Caller) {
	id, ok := recordID(row)
	if !ok {
		return
	}
	switch d.Kind {
	case entity.KindEmotionReport:
		go s.analysis.AnalyzeEmotionReport(context.Background(), id, caller.Email)
	case entity.KindTrendAnalysis:
		go s.analysis.AnalyzeTrend(context.Background(), id, caller.Email)
	}
}

func (s *entityService) Update(ctx context.Context, caller Caller, name string, id uint, payload map[string]any) (map[string]any, error) {
	d, ok := entity.ParseKind(name)
	if !ok {
		return nil, ErrUnknownEntity
	}

	record := entity.ToStorage(d, s.prepare(d, payload))
	if d.TracksCreator {
		delete(record, "created_by")
	}

	row, err := s.repo.Update(ctx, d, id, record)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return entity.ToWire(d, row), nil
}

func (s *entityService) Delete(ctx context.Context, caller Caller, name string, id uint) error {
	d, ok := entity.ParseKind(name)
	if !ok {
		return ErrUnknownEntity
	}

	if d.Kind == entity.KindChatStyle {
		return s.styles.Delete(ctx, id)
	}

	if err := s.repo.Delete(ctx, d, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	return nil
}

// prepare applies the wire-side cleanups that run before the codec: user
// generated content is sanitized and media references are normalized to the
// canonical upload path scheme.
func (s *entityService) prepare(d entity.Descriptor, payload map[string]any) map[string]any {
	if payload == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = v
	}

	switch d.Kind {
	case entity.KindPost, entity.KindComment:
		if content, ok := out["content"].(string); ok {
			out["content"] = s.policy.Sanitize(content)
		}
	}

	if d.Kind == entity.KindPost {
		if data, ok := out["shared_style_data"].(map[string]any); ok {
			out["shared_style_data"] = utils.NormalizeSharedStyleAvatar(data)
		}
	}

	for _, key := range []string{"avatar", "style_avatar", "cover_image"} {
		if value, ok := out[key].(string); ok {
			out[key] = utils.NormalizeUploadURL(value)
		}
	}

	return out
}

// existingFavorite makes favorite creation idempotent: a second favorite of
// the same post by the same account returns the stored row unchanged.
func (s *entityService) existingFavorite(ctx context.Context, d entity.Descriptor, caller Caller, record map[string]any) (map[string]any, error) {
	postID, ok := record["post_id"]
	if !ok {
		return nil, nil
	}
	row, err := s.repo.FindFirst(ctx, d, map[string]any{
		"post_id":    postID,
		"created_by": caller.Email,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entity.ToWire(d, row), nil
}

// normalizeQueryValue maps the literal "undefined" and "null" strings some
// clients send for absent parameters onto an empty value.
func normalizeQueryValue(value string) string {
	trimmed := strings.TrimSpace(value)
	switch strings.ToLower(trimmed) {
	case "undefined", "null":
		return ""
	}
	return trimmed
}

func recordID(row map[string]any) (uint, bool) {
	switch v := row["id"].(type) {
	case uint:
		return v, true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return uint(i), true
		}
	}
	return 0, false
}
