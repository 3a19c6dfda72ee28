// internal/store/state.go
package store

import (
	"github.com/your-org/storefront-state/internal/domain/cart"
	"github.com/your-org/storefront-state/internal/domain/history"
	"github.com/your-org/storefront-state/internal/domain/user"
	"github.com/your-org/storefront-state/internal/domain/wishlist"
)

// State is the whole client state
type State struct {
	Items          []cart.Line             `json:"items"`
	Wishlist       []wishlist.Entry        `json:"wishlist"`
	RecentlyViewed []history.ViewedProduct `json:"recentlyViewed"`
	RecentSearches []string                `json:"recentSearches"`
	UserProfile    *user.Profile           `json:"userProfile"`
}

// PersistedState is the part of State written to durable storage. The user
// profile is not part of it; it is loaded from its own key.
type PersistedState struct {
	Items          []cart.Line             `json:"items"`
	Wishlist       []wishlist.Entry        `json:"wishlist"`
	RecentlyViewed []history.ViewedProduct `json:"recentlyViewed"`
	RecentSearches []string                `json:"recentSearches"`
}

// EmptyState returns a state with empty, non-nil lists and no profile
func EmptyState() State {
	return State{
		Items:          []cart.Line{},
		Wishlist:       []wishlist.Entry{},
		RecentlyViewed: []history.ViewedProduct{},
		RecentSearches: []string{},
	}
}

// EmptyPersisted returns the defaults used when nothing usable is stored
func EmptyPersisted() PersistedState {
	return EmptyState().Persisted()
}

// Persisted extracts the persisted subset
func (s State) Persisted() PersistedState {
	return PersistedState{
		Items:          cart.Clone(s.Items),
		Wishlist:       wishlist.Clone(s.Wishlist),
		RecentlyViewed: history.CloneViewed(s.RecentlyViewed),
		RecentSearches: history.CloneSearches(s.RecentSearches),
	}
}

// Normalize replaces nil lists with empty ones
func (p PersistedState) Normalize() PersistedState {
	if p.Items == nil {
		p.Items = []cart.Line{}
	}
	if p.Wishlist == nil {
		p.Wishlist = []wishlist.Entry{}
	}
	if p.RecentlyViewed == nil {
		p.RecentlyViewed = []history.ViewedProduct{}
	}
	if p.RecentSearches == nil {
		p.RecentSearches = []string{}
	}
	return p
}

func (s State) clone() State {
	return State{
		Items:          cart.Clone(s.Items),
		Wishlist:       wishlist.Clone(s.Wishlist),
		RecentlyViewed: history.CloneViewed(s.RecentlyViewed),
		RecentSearches: history.CloneSearches(s.RecentSearches),
		UserProfile:    user.Clone(s.UserProfile),
	}
}
