package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLRepository keeps entries in the kv_entries table through GORM.
type SQLRepository struct {
	db  *gorm.DB
	now func() time.Time
}

var _ Repository = (*SQLRepository)(nil)

// NewSQLRepository creates a repository on an open connection.
func NewSQLRepository(db *gorm.DB) *SQLRepository {
	return &SQLRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Migrate creates or updates the kv_entries table.
func (r *SQLRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&entryRecord{}); err != nil {
		return fmt.Errorf("failed to migrate kv_entries: %w", err)
	}
	return nil
}

func (r *SQLRepository) Get(ctx context.Context, namespace, key string) (*Entry, error) {
	var rec entryRecord
	err := r.db.WithContext(ctx).
		Where("`namespace` = ? AND `key` = ?", namespace, key).
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", namespace, key, err)
	}

	e := rec.toEntry()
	return &e, nil
}

func (r *SQLRepository) Put(ctx context.Context, namespace, key string, value json.RawMessage) error {
	now := r.now()
	rec := entryRecord{
		Namespace: namespace,
		Key:       key,
		Value:     string(value),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to put %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, namespace, key string) error {
	err := r.db.WithContext(ctx).
		Where("`namespace` = ? AND `key` = ?", namespace, key).
		Delete(&entryRecord{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (r *SQLRepository) List(ctx context.Context, namespace, prefix string) ([]Entry, error) {
	q := r.db.WithContext(ctx).
		Select("namespace", "key", "created_at", "updated_at").
		Where("`namespace` = ?", namespace)
	if prefix != "" {
		q = q.Where("`key` LIKE ? ESCAPE '!'", likePrefix(prefix))
	}

	var recs []entryRecord
	if err := q.Order("`key`").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", namespace, err)
	}

	entries := make([]Entry, 0, len(recs))
	for _, rec := range recs {
		entries = append(entries, rec.toEntry())
	}
	return entries, nil
}

func (r *SQLRepository) Namespaces(ctx context.Context) ([]Namespace, error) {
	// Aggregated in Go: MIN over a time column does not scan portably on sqlite.
	var recs []entryRecord
	err := r.db.WithContext(ctx).
		Select("namespace", "created_at").
		Order("`namespace`").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}

	var out []Namespace
	for _, rec := range recs {
		n := len(out)
		if n == 0 || out[n-1].Name != rec.Namespace {
			out = append(out, Namespace{Name: rec.Namespace, CreatedAt: rec.CreatedAt})
			continue
		}
		if rec.CreatedAt.Before(out[n-1].CreatedAt) {
			out[n-1].CreatedAt = rec.CreatedAt
		}
	}
	return out, nil
}

// likePrefix escapes LIKE wildcards with '!' so prefix is matched literally.
func likePrefix(prefix string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(prefix) + "%"
}
