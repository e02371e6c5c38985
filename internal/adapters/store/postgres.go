package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ofertare/mobila/internal/domain"
)

// KVDocument is the gorm model backing the postgres store.
type KVDocument struct {
	Key       string `gorm:"primaryKey;size:140"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (KVDocument) TableName() string { return "kv_documents" }

// Postgres stores documents in postgres through gorm, for deployments where
// several operators share one catalog.
type Postgres struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) (*Postgres, error) {
	if err := db.AutoMigrate(&KVDocument{}); err != nil {
		return nil, fmt.Errorf("migrate kv_documents: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Get(ctx context.Context, key string) (string, error) {
	var doc KVDocument
	if err := p.db.WithContext(ctx).First(&doc, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: key %q", domain.ErrNotFound, key)
		}
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return doc.Value, nil
}

func (p *Postgres) Set(ctx context.Context, key, value string) error {
	doc := KVDocument{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	if err := p.db.WithContext(ctx).Delete(&KVDocument{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
