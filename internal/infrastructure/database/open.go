// internal/infrastructure/database/open.go
package database

import (
	"fmt"

	"github.com/your-org/storefront-state/internal/config"
	"github.com/your-org/storefront-state/internal/infrastructure/database/mongo"
	"github.com/your-org/storefront-state/internal/infrastructure/database/postgres"
	"github.com/your-org/storefront-state/internal/infrastructure/database/redis"
	"github.com/your-org/storefront-state/internal/infrastructure/storage"
)

// Open connects the storage backend selected by STORAGE_DRIVER
func Open(cfg *config.Config) (storage.KV, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return storage.NewMemory(), nil

	case config.StorageFile:
		kv, err := storage.NewFile(cfg.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		return kv, nil

	case config.StorageRedis:
		client, err := redis.NewConnection(cfg)
		if err != nil {
			return nil, err
		}
		return client, nil

	case config.StoragePostgres:
		db, err := postgres.NewConnection(cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.NewMigration(db.GetDB()).RunAutoMigrations(); err != nil {
			db.Close()
			return nil, fmt.Errorf("database migration failed: %w", err)
		}
		return postgres.NewKV(db), nil

	case config.StorageMongo:
		kv, err := mongo.NewConnection(cfg)
		if err != nil {
			return nil, err
		}
		return kv, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
