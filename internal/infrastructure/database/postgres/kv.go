// internal/infrastructure/database/postgres/kv.go
package postgres

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/your-org/storefront-state/internal/infrastructure/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is one stored blob
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:191" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (KVEntry) TableName() string {
	return "kv_entries"
}

// KV serves the kv_entries table as key-value storage
type KV struct {
	*DB
}

// NewKV wraps a connection
func NewKV(db *DB) *KV {
	return &KV{DB: db}
}

// Get retrieves a value by key
func (k *KV) Get(ctx context.Context, key string) (string, error) {
	var entry KVEntry
	err := k.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "postgres get %s", key)
	}
	return entry.Value, nil
}

// Set upserts the value
func (k *KV) Set(ctx context.Context, key, value string) error {
	entry := KVEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := k.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return errors.Wrapf(err, "postgres set %s", key)
	}
	return nil
}

