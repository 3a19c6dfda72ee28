// internal/store/store.go
package store

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-state/internal/domain/cart"
	"github.com/your-org/storefront-state/internal/domain/history"
	"github.com/your-org/storefront-state/internal/domain/wishlist"
	"github.com/your-org/storefront-state/internal/infrastructure/storage"
	"github.com/your-org/storefront-state/internal/pkg/logger"
)

// Action names the transition that produced a Change
type Action string

const (
	ActionHydrate             Action = "hydrate"
	ActionAddLine             Action = "cart.add"
	ActionRemoveLine          Action = "cart.remove"
	ActionSetQuantity         Action = "cart.quantity"
	ActionClearCart           Action = "cart.clear"
	ActionAddToWishlist       Action = "wishlist.add"
	ActionRemoveFromWishlist  Action = "wishlist.remove"
	ActionToggleWishlist      Action = "wishlist.toggle"
	ActionClearWishlist       Action = "wishlist.clear"
	ActionMoveToCart          Action = "wishlist.move_to_cart"
	ActionRecordView          Action = "recently_viewed.add"
	ActionClearRecentlyViewed Action = "recently_viewed.clear"
	ActionRecordSearch        Action = "searches.add"
	ActionClearRecentSearches Action = "searches.clear"
	ActionSetProfile          Action = "profile.set"
	ActionClearProfile        Action = "profile.clear"
	ActionLoadProfile         Action = "profile.load"
	ActionAddAddress          Action = "profile.address.add"
	ActionUpdateAddress       Action = "profile.address.update"
	ActionRemoveAddress       Action = "profile.address.remove"
	ActionSetDefaultAddress   Action = "profile.address.default"
)

// Change is delivered to observers after every transition. Persist is set
// when the transition touched the persisted subset.
type Change struct {
	Action  Action
	Persist bool
	State   State
}

// Observer receives changes in commit order. Observers run on the goroutine
// that made the mutation and must not mutate the store themselves.
type Observer func(Change)

// Store holds the cart, wishlist, history and profile of one client. Every
// action is a read-modify-write of the whole state under one lock.
type Store struct {
	mu    sync.Mutex
	state State

	// held from commit until observers return, so deliveries keep commit order
	notifyMu    sync.Mutex
	observersMu sync.RWMutex
	observers   map[int]Observer
	nextID      int

	now           func() time.Time
	viewedLimit   int
	searchLimit   int
	logger        *logrus.Logger
	profileReader storage.Reader
	profileKey    string
}

// New creates an empty store
func New(opts ...Option) *Store {
	s := &Store{
		state:       EmptyState(),
		observers:   make(map[int]Observer),
		now:         func() time.Time { return time.Now().UTC() },
		viewedLimit: history.DefaultRecentlyViewedLimit,
		searchLimit: history.DefaultRecentSearchLimit,
		logger:      logger.Discard(),
		profileKey:  "user",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers an observer and returns a function that removes it
func (s *Store) Subscribe(observer Observer) func() {
	s.observersMu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = observer
	s.observersMu.Unlock()

	return func() {
		s.observersMu.Lock()
		delete(s.observers, id)
		s.observersMu.Unlock()
	}
}

// update applies fn to the state and notifies observers
func (s *Store) update(action Action, persist bool, fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	change := Change{Action: action, Persist: persist, State: s.state.clone()}
	s.notifyMu.Lock()
	s.mu.Unlock()

	defer s.notifyMu.Unlock()

	s.observersMu.RLock()
	observers := make([]Observer, 0, len(s.observers))
	for _, observer := range s.observers {
		observers = append(observers, observer)
	}
	s.observersMu.RUnlock()

	for _, observer := range observers {
		observer(change)
	}
}

func (s *Store) read(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// Hydrate replaces the persisted subset, typically once at startup with what
// the persistence adapter loaded. It does not schedule a save.
func (s *Store) Hydrate(persisted PersistedState) {
	persisted = persisted.Normalize()
	s.update(ActionHydrate, false, func(st *State) {
		st.Items = cart.Clone(persisted.Items)
		st.Wishlist = wishlist.Clone(persisted.Wishlist)
		st.RecentlyViewed = history.CloneViewed(persisted.RecentlyViewed)
		st.RecentSearches = history.CloneSearches(persisted.RecentSearches)
	})
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() State {
	var snapshot State
	s.read(func(st *State) {
		snapshot = st.clone()
	})
	return snapshot
}

// Persisted returns a copy of the persisted subset
func (s *Store) Persisted() PersistedState {
	var persisted PersistedState
	s.read(func(st *State) {
		persisted = st.Persisted()
	})
	return persisted
}

// Cart

// Items returns a copy of the cart lines
func (s *Store) Items() []cart.Line {
	var items []cart.Line
	s.read(func(st *State) {
		items = cart.Clone(st.Items)
	})
	return items
}

// AddLine adds a product to the cart, merging with an existing line
func (s *Store) AddLine(req cart.AddLineRequest) {
	s.update(ActionAddLine, true, func(st *State) {
		st.Items = cart.AddLine(st.Items, req)
	})
}

// RemoveLine removes every line of productID
func (s *Store) RemoveLine(productID string) {
	s.update(ActionRemoveLine, true, func(st *State) {
		st.Items = cart.RemoveLine(st.Items, productID)
	})
}

// SetQuantity sets the quantity of the line addressed by an identity key or a
// product ID; quantity <= 0 removes the line
func (s *Store) SetQuantity(key string, quantity int) {
	s.update(ActionSetQuantity, true, func(st *State) {
		st.Items = cart.SetQuantity(st.Items, key, quantity)
	})
}

// ClearCart empties the cart
func (s *Store) ClearCart() {
	s.update(ActionClearCart, true, func(st *State) {
		st.Items = []cart.Line{}
	})
}

// TotalItemCount sums the quantities in the cart
func (s *Store) TotalItemCount() int {
	var total int
	s.read(func(st *State) {
		total = cart.TotalItemCount(st.Items)
	})
	return total
}

// TotalPrice sums price * quantity across the cart
func (s *Store) TotalPrice() float64 {
	var total float64
	s.read(func(st *State) {
		total = cart.TotalPrice(st.Items)
	})
	return total
}

// CartTotals returns all cart totals from one consistent read
func (s *Store) CartTotals() cart.Totals {
	var totals cart.Totals
	s.read(func(st *State) {
		totals = cart.CalculateTotals(st.Items)
	})
	return totals
}

// Wishlist

// Wishlist returns a copy of the wishlist
func (s *Store) Wishlist() []wishlist.Entry {
	var entries []wishlist.Entry
	s.read(func(st *State) {
		entries = wishlist.Clone(st.Wishlist)
	})
	return entries
}

// AddToWishlist saves a product; saving it twice is a no-op
func (s *Store) AddToWishlist(req wishlist.AddToWishlistRequest) {
	now := s.now()
	s.update(ActionAddToWishlist, true, func(st *State) {
		st.Wishlist = wishlist.Add(st.Wishlist, req, now)
	})
}

// RemoveFromWishlist drops a saved product
func (s *Store) RemoveFromWishlist(productID string) {
	s.update(ActionRemoveFromWishlist, true, func(st *State) {
		st.Wishlist = wishlist.Remove(st.Wishlist, productID)
	})
}

// ToggleWishlist flips membership of the product and reports whether it is
// saved afterwards
func (s *Store) ToggleWishlist(req wishlist.AddToWishlistRequest) bool {
	now := s.now()
	var saved bool
	s.update(ActionToggleWishlist, true, func(st *State) {
		st.Wishlist = wishlist.Toggle(st.Wishlist, req, now)
		saved = wishlist.Contains(st.Wishlist, req.Key())
	})
	return saved
}

// IsInWishlist reports whether productID is saved
func (s *Store) IsInWishlist(productID string) bool {
	var found bool
	s.read(func(st *State) {
		found = wishlist.Contains(st.Wishlist, productID)
	})
	return found
}

// ClearWishlist empties the wishlist
func (s *Store) ClearWishlist() {
	s.update(ActionClearWishlist, true, func(st *State) {
		st.Wishlist = []wishlist.Entry{}
	})
}

// MoveToCart adds a saved product to the cart and removes it from the
// wishlist in one transition. It reports false when the product is not saved.
func (s *Store) MoveToCart(productID string, quantity int) bool {
	s.mu.Lock()
	saved := wishlist.Contains(s.state.Wishlist, productID)
	s.mu.Unlock()
	if !saved {
		return false
	}

	var moved bool
	s.update(ActionMoveToCart, true, func(st *State) {
		entry := wishlist.Find(st.Wishlist, productID)
		if entry == nil {
			return
		}
		st.Items = cart.AddLine(st.Items, cart.AddLineRequest{
			ProductID: entry.ProductID,
			Name:      entry.Name,
			Price:     entry.Price,
			Quantity:  quantity,
			Image:     entry.Image,
		})
		st.Wishlist = wishlist.Remove(st.Wishlist, productID)
		moved = true
	})
	return moved
}

// Recently viewed

// RecentlyViewed returns a copy of the recently-viewed list
func (s *Store) RecentlyViewed() []history.ViewedProduct {
	var entries []history.ViewedProduct
	s.read(func(st *State) {
		entries = history.CloneViewed(st.RecentlyViewed)
	})
	return entries
}

// RecordView moves the product to the front of the recently-viewed list
func (s *Store) RecordView(req history.RecordViewRequest) {
	now := s.now()
	s.update(ActionRecordView, true, func(st *State) {
		st.RecentlyViewed = history.RecordView(st.RecentlyViewed, req, now, s.viewedLimit)
	})
}

// ClearRecentlyViewed empties the recently-viewed list
func (s *Store) ClearRecentlyViewed() {
	s.update(ActionClearRecentlyViewed, true, func(st *State) {
		st.RecentlyViewed = []history.ViewedProduct{}
	})
}

// Recent searches

// RecentSearches returns a copy of the recent searches
func (s *Store) RecentSearches() []string {
	var queries []string
	s.read(func(st *State) {
		queries = history.CloneSearches(st.RecentSearches)
	})
	return queries
}

// RecordSearch puts query at the front of the recent searches
func (s *Store) RecordSearch(query string) {
	s.update(ActionRecordSearch, true, func(st *State) {
		st.RecentSearches = history.RecordSearch(st.RecentSearches, query, s.searchLimit)
	})
}

// ClearRecentSearches empties the recent searches
func (s *Store) ClearRecentSearches() {
	s.update(ActionClearRecentSearches, true, func(st *State) {
		st.RecentSearches = []string{}
	})
}
