package store

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-state/internal/infrastructure/storage"
)

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLimits sets the recently-viewed and recent-search caps. Non-positive
// values keep the defaults.
func WithLimits(recentlyViewed, recentSearches int) Option {
	return func(s *Store) {
		if recentlyViewed > 0 {
			s.viewedLimit = recentlyViewed
		}
		if recentSearches > 0 {
			s.searchLimit = recentSearches
		}
	}
}

// WithLogger sets the logger used for storage failures
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithProfileStorage sets where LoadProfileFromStorage reads the user blob
func WithProfileStorage(reader storage.Reader, key string) Option {
	return func(s *Store) {
		s.profileReader = reader
		s.profileKey = key
	}
}
