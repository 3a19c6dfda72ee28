// internal/persistence/adapter.go
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-state/internal/infrastructure/storage"
	"github.com/your-org/storefront-state/internal/store"
)

const writeTimeout = 5 * time.Second

// Adapter saves the persisted subset of a store under one key and loads it
// back at startup. Saves are debounced and never block the mutating caller.
type Adapter struct {
	kv       storage.KV
	key      string
	debounce time.Duration
	logger   *logrus.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending *store.PersistedState

	// serializes writes; pending is taken while holding it, so a write
	// never overtakes a newer one
	writeMu sync.Mutex
}

// NewAdapter creates an adapter writing to key
func NewAdapter(kv storage.KV, key string, debounce time.Duration, logger *logrus.Logger) *Adapter {
	return &Adapter{
		kv:       kv,
		key:      key,
		debounce: debounce,
		logger:   logger,
	}
}

// Load reads the saved subset. Absent or unreadable data yields empty lists.
func (a *Adapter) Load(ctx context.Context) store.PersistedState {
	log := a.logger.WithField("key", a.key)

	data, err := a.kv.Get(ctx, a.key)
	if errors.Is(err, storage.ErrNotFound) {
		log.Debug("No saved state, starting empty")
		return store.EmptyPersisted()
	}
	if err != nil {
		log.WithError(err).Error("Failed to read saved state, starting empty")
		return store.EmptyPersisted()
	}

	var persisted store.PersistedState
	if err := json.Unmarshal([]byte(data), &persisted); err != nil {
		log.WithError(err).Warn("Saved state is corrupt, starting empty")
		return store.EmptyPersisted()
	}

	return persisted.Normalize()
}

// Hydrate loads the saved subset into s
func (a *Adapter) Hydrate(ctx context.Context, s *store.Store) {
	persisted := a.Load(ctx)
	s.Hydrate(persisted)

	a.logger.WithFields(logrus.Fields{
		"key":             a.key,
		"items":           len(persisted.Items),
		"wishlist":        len(persisted.Wishlist),
		"recently_viewed": len(persisted.RecentlyViewed),
		"recent_searches": len(persisted.RecentSearches),
	}).Info("Client state restored")
}

// Attach subscribes the adapter to s and returns the unsubscribe function
func (a *Adapter) Attach(s *store.Store) func() {
	return s.Subscribe(a.Observe)
}

// Observe schedules a save for changes that touched the persisted subset
func (a *Adapter) Observe(change store.Change) {
	if !change.Persist {
		return
	}
	a.Schedule(change.State.Persisted())
}

// Schedule queues state for writing. Calls within the debounce window
// coalesce and only the latest state is written.
func (a *Adapter) Schedule(state store.PersistedState) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending = &state

	if a.debounce <= 0 {
		go a.write()
		return
	}

	if a.timer != nil {
		a.timer.Reset(a.debounce)
		return
	}

	var timer *time.Timer
	timer = time.AfterFunc(a.debounce, func() {
		a.mu.Lock()
		current := a.timer == timer
		if current {
			a.timer = nil
		}
		a.mu.Unlock()

		// a flushed or replaced timer has nothing left to write
		if current {
			a.write()
		}
	})
	a.timer = timer
}

// Flush writes any pending state right away
func (a *Adapter) Flush(ctx context.Context) error {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()

	return a.writeContext(ctx)
}

func (a *Adapter) write() {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	// already logged
	_ = a.writeContext(ctx)
}

func (a *Adapter) writeContext(ctx context.Context) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	a.mu.Lock()
	state := a.pending
	a.pending = nil
	a.mu.Unlock()

	if state == nil {
		return nil
	}

	data, err := json.Marshal(state.Normalize())
	if err != nil {
		a.logger.WithError(err).Error("Failed to encode client state")
		return err
	}

	if err := a.kv.Set(ctx, a.key, string(data)); err != nil {
		a.logger.WithError(err).WithField("key", a.key).Error("Failed to save client state")
		return err
	}

	a.logger.WithField("key", a.key).Debug("Client state saved")
	return nil
}
