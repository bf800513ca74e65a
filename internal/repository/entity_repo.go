package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/eunoia-app/eunoia-api/internal/entity"
	"github.com/eunoia-app/eunoia-api/internal/models"
)

// ListOptions carries the optional ordering, cap and visibility filter for a
// listing call. A leading '-' on Order means descending.
type ListOptions struct {
	Order       string
	Limit       int
	ScopeColumn string
	ScopeValue  string
}

// EntityRepository persists gateway records in their storage shape. Records
// cross this boundary as maps keyed by storage column names; the codec in the
// entity package owns the wire translation.
type EntityRepository interface {
	List(ctx context.Context, d entity.Descriptor, opts ListOptions) ([]map[string]any, error)
	Get(ctx context.Context, d entity.Descriptor, id uint) (map[string]any, error)
	Create(ctx context.Context, d entity.Descriptor, record map[string]any) (map[string]any, error)
	Update(ctx context.Context, d entity.Descriptor, id uint, record map[string]any) (map[string]any, error)
	Delete(ctx context.Context, d entity.Descriptor, id uint) error
	FindFirst(ctx context.Context, d entity.Descriptor, conditions map[string]any) (map[string]any, error)
}

type entityRepository struct {
	db *gorm.DB
}

// NewEntityRepository instantiates a GORM-backed generic repository.
func NewEntityRepository(db *gorm.DB) EntityRepository {
	return &entityRepository{db: db}
}

// rowOps binds the generic helpers to one concrete model type.
type rowOps struct {
	list      func(ctx context.Context, db *gorm.DB, opts ListOptions) ([]map[string]any, error)
	get       func(ctx context.Context, db *gorm.DB, id uint) (map[string]any, error)
	create    func(ctx context.Context, db *gorm.DB, record map[string]any) (map[string]any, error)
	update    func(ctx context.Context, db *gorm.DB, id uint, record map[string]any) (map[string]any, error)
	remove    func(ctx context.Context, db *gorm.DB, id uint) error
	findFirst func(ctx context.Context, db *gorm.DB, conditions map[string]any) (map[string]any, error)
}

func typedOps[T any]() rowOps {
	return rowOps{
		list:      listRows[T],
		get:       getRow[T],
		create:    createRow[T],
		update:    updateRow[T],
		remove:    deleteRow[T],
		findFirst: findFirstRow[T],
	}
}

func opsFor(kind entity.Kind) (rowOps, error) {
	switch kind {
	case entity.KindPost:
		return typedOps[models.Post](), nil
	case entity.KindComment:
		return typedOps[models.Comment](), nil
	case entity.KindNotification:
		return typedOps[models.Notification](), nil
	case entity.KindFavorite:
		return typedOps[models.Favorite](), nil
	case entity.KindChatHistory:
		return typedOps[models.ChatHistory](), nil
	case entity.KindChatStyle:
		return typedOps[models.ChatStyle](), nil
	case entity.KindEmotionReport:
		return typedOps[models.EmotionReport](), nil
	case entity.KindTrendAnalysis:
		return typedOps[models.TrendAnalysis](), nil
	case entity.KindCourse:
		return typedOps[models.Course](), nil
	default:
		return rowOps{}, fmt.Errorf("unsupported entity kind %d", kind)
	}
}

func (r *entityRepository) List(ctx context.Context, d entity.Descriptor, opts ListOptions) ([]map[string]any, error) {
	ops, err := opsFor(d.Kind)
	if err != nil {
		return nil, err
	}
	return ops.list(ctx, r.db, opts)
}

func (r *entityRepository) Get(ctx context.Context, d entity.Descriptor, id uint) (map[string]any, error) {
	ops, err := opsFor(d.Kind)
	if err != nil {
		return nil, err
	}
	return ops.get(ctx, r.db, id)
}

func (r *entityRepository) Create(ctx context.Context, d entity.Descriptor, record map[string]any) (map[string]any, error) {
	ops, err := opsFor(d.Kind)
	if err != nil {
		return nil, err
	}
	return ops.create(ctx, r.db, record)
}

func (r *entityRepository) Update(ctx context.Context, d entity.Descriptor, id uint, record map[string]any) (map[string]any, error) {
	ops, err := opsFor(d.Kind)
	if err != nil {
		return nil, err
	}
	return ops.update(ctx, r.db, id, record)
}

func (r *entityRepository) Delete(ctx context.Context, d entity.Descriptor, id uint) error {
	ops, err := opsFor(d.Kind)
	if err != nil {
		return err
	}
	return ops.remove(ctx, r.db, id)
}

func (r *entityRepository) FindFirst(ctx context.Context, d entity.Descriptor, conditions map[string]any) (map[string]any, error) {
	ops, err := opsFor(d.Kind)
	if err != nil {
		return nil, err
	}
	return ops.findFirst(ctx, r.db, conditions)
}

func listRows[T any](ctx context.Context, db *gorm.DB, opts ListOptions) ([]map[string]any, error) {
	query := db.WithContext(ctx).Model(new(T))
	if opts.ScopeColumn != "" {
		query = query.Where(fmt.Sprintf("%s = ?", opts.ScopeColumn), opts.ScopeValue)
	}
	if clause := orderClause(opts.Order); clause != "" {
		query = query.Order(clause)
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	var rows []T
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(rows))
	for i := range rows {
		record, err := toRecord(rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

func getRow[T any](ctx context.Context, db *gorm.DB, id uint) (map[string]any, error) {
	var row T
	if err := db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, err
	}
	return toRecord(row)
}

func createRow[T any](ctx context.Context, db *gorm.DB, record map[string]any) (map[string]any, error) {
	row, err := fromRecord[T](record)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return toRecord(*row)
}

func updateRow[T any](ctx context.Context, db *gorm.DB, id uint, record map[string]any) (map[string]any, error) {
	updates, err := filterColumns[T](record)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		result := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return getRow[T](ctx, db, id)
}

func deleteRow[T any](ctx context.Context, db *gorm.DB, id uint) error {
	result := db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func findFirstRow[T any](ctx context.Context, db *gorm.DB, conditions map[string]any) (map[string]any, error) {
	var row T
	query := db.WithContext(ctx).Model(new(T))
	for column, value := range conditions {
		query = query.Where(fmt.Sprintf("%s = ?", column), value)
	}
	if err := query.First(&row).Error; err != nil {
		return nil, err
	}
	return toRecord(row)
}

// toRecord converts a model into its storage-shaped map, preserving numeric
// precision via json.Number.
func toRecord(row any) (map[string]any, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var record map[string]any
	if err := decoder.Decode(&record); err != nil {
		return nil, err
	}
	return record, nil
}

// fromRecord materializes a storage map into a fresh model value. Fields the
// model does not declare are dropped silently.
func fromRecord[T any](record map[string]any) (*T, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	row := new(T)
	if err := json.Unmarshal(data, row); err != nil {
		return nil, fmt.Errorf("record does not fit storage model: %w", err)
	}
	return row, nil
}

// filterColumns restricts an update map to columns the model actually
// declares, and strips the identity and timestamp columns.
func filterColumns[T any](record map[string]any) (map[string]any, error) {
	known, err := toRecord(*new(T))
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(record))
	for key, value := range record {
		switch key {
		case "id", "created_at", "updated_at":
			continue
		}
		if _, ok := known[key]; ok {
			out[key] = value
		}
	}
	return out, nil
}

var orderFieldPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// orderClause translates a wire sort expression ("-created_date") into a SQL
// ORDER BY fragment. Unknown or unsafe field names are ignored. The legacy
// created_date/updated_date aliases map onto the timestamp columns.
func orderClause(order string) string {
	field := strings.TrimSpace(order)
	if field == "" {
		return ""
	}
	direction := "ASC"
	if strings.HasPrefix(field, "-") {
		direction = "DESC"
		field = field[1:]
	}
	switch field {
	case "created_date":
		field = "created_at"
	case "updated_date":
		field = "updated_at"
	}
	if !orderFieldPattern.MatchString(field) {
		return ""
	}
	return fmt.Sprintf("%s %s", field, direction)
}
