package database

import (
	"testing"

	"github.com/your-org/storefront-state/internal/config"
	"github.com/your-org/storefront-state/internal/infrastructure/storage"
)

func TestOpenLocalDrivers(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.StorageMemory}}
	kv, err := Open(cfg)
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	if _, ok := kv.(*storage.Memory); !ok {
		t.Errorf("memory driver returned %T", kv)
	}

	cfg.Storage = config.StorageConfig{Driver: config.StorageFile, DataDir: t.TempDir()}
	kv, err = Open(cfg)
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if _, ok := kv.(*storage.File); !ok {
		t.Errorf("file driver returned %T", kv)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "floppy"}}
	if _, err := Open(cfg); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
