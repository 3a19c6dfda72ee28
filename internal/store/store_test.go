package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/your-org/storefront-state/internal/domain/cart"
	"github.com/your-org/storefront-state/internal/domain/history"
	"github.com/your-org/storefront-state/internal/domain/user"
	"github.com/your-org/storefront-state/internal/domain/wishlist"
	"github.com/your-org/storefront-state/internal/infrastructure/storage"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// fakeClock hands out increasing timestamps
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestStore(opts ...Option) *Store {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return New(append([]Option{WithClock(clock.Now)}, opts...)...)
}

func TestEndToEndCartScenario(t *testing.T) {
	s := newTestStore()

	s.AddLine(cart.AddLineRequest{ProductID: "p1", Name: "Shoes", Price: 99.99, Quantity: 1})
	s.AddLine(cart.AddLineRequest{ProductID: "p2", Name: "Watch", Price: 199.99, Quantity: 1})

	if got := s.TotalItemCount(); got != 2 {
		t.Fatalf("item count = %d, want 2", got)
	}
	if got := s.TotalPrice(); !almostEqual(got, 299.98) {
		t.Fatalf("total price = %v, want 299.98", got)
	}

	s.SetQuantity("p1", 2)
	if got := s.TotalItemCount(); got != 3 {
		t.Fatalf("item count = %d, want 3", got)
	}
	if got := s.TotalPrice(); !almostEqual(got, 399.97) {
		t.Fatalf("total price = %v, want 399.97", got)
	}

	s.RemoveLine("p2")
	if got := len(s.Items()); got != 1 {
		t.Fatalf("items = %d, want 1", got)
	}
	if got := s.TotalPrice(); !almostEqual(got, 199.98) {
		t.Fatalf("total price = %v, want 199.98", got)
	}
}

func TestMergeOnAdd(t *testing.T) {
	s := newTestStore()
	s.AddLine(cart.AddLineRequest{ProductID: "p", Name: "n", Price: 10, Quantity: 1})
	s.AddLine(cart.AddLineRequest{ProductID: "p", Name: "n", Price: 10, Quantity: 2})

	items := s.Items()
	if len(items) != 1 || items[0].Quantity != 3 {
		t.Fatalf("items = %+v", items)
	}
	if !almostEqual(s.TotalPrice(), 30) {
		t.Errorf("total price = %v, want 30", s.TotalPrice())
	}
}

func TestQuantityZeroDeletion(t *testing.T) {
	s := newTestStore()
	s.AddLine(cart.AddLineRequest{ProductID: "a", Price: 1, Quantity: 4, Variant: "xl"})
	s.AddLine(cart.AddLineRequest{ProductID: "b", Price: 1, Quantity: 2})

	before := s.TotalItemCount()
	s.SetQuantity("a-xl", 0)

	for _, line := range s.Items() {
		if line.ID == "a-xl" {
			t.Fatalf("line still present")
		}
	}
	if got := s.TotalItemCount(); got != before-4 {
		t.Errorf("item count = %d, want %d", got, before-4)
	}
}

func TestEmptyCartTotals(t *testing.T) {
	s := newTestStore()
	s.AddLine(cart.AddLineRequest{ProductID: "a", Price: 3, Quantity: 2})
	s.ClearCart()

	if s.TotalItemCount() != 0 || s.TotalPrice() != 0 {
		t.Errorf("totals after clear = %d / %v", s.TotalItemCount(), s.TotalPrice())
	}
	if totals := s.CartTotals(); totals != (cart.Totals{}) {
		t.Errorf("cart totals = %+v", totals)
	}
}

func TestWishlistIdempotentAddAndToggle(t *testing.T) {
	s := newTestStore()
	req := wishlist.AddToWishlistRequest{ProductID: "p1", Name: "Watch", Price: 50}

	s.AddToWishlist(req)
	first := s.Wishlist()
	s.AddToWishlist(req)
	if !reflect.DeepEqual(first, s.Wishlist()) {
		t.Fatalf("second add changed wishlist")
	}

	if saved := s.ToggleWishlist(wishlist.AddToWishlistRequest{ID: "p1"}); saved {
		t.Errorf("toggle should have removed p1")
	}
	if s.IsInWishlist("p1") {
		t.Errorf("p1 still saved")
	}
	if saved := s.ToggleWishlist(req); !saved {
		t.Errorf("toggle should have added p1")
	}

	s.RemoveFromWishlist("p1")
	if len(s.Wishlist()) != 0 {
		t.Errorf("wishlist not empty after remove")
	}

	s.AddToWishlist(req)
	s.ClearWishlist()
	if len(s.Wishlist()) != 0 {
		t.Errorf("wishlist not empty after clear")
	}
}

func TestMoveToCart(t *testing.T) {
	s := newTestStore()
	s.AddToWishlist(wishlist.AddToWishlistRequest{ProductID: "p1", Name: "Watch", Price: 50})

	if s.MoveToCart("nope", 1) {
		t.Errorf("moving an unsaved product should report false")
	}
	if !s.MoveToCart("p1", 2) {
		t.Fatalf("move failed")
	}
	if s.IsInWishlist("p1") {
		t.Errorf("p1 still in wishlist")
	}
	items := s.Items()
	if len(items) != 1 || items[0].Quantity != 2 || items[0].Name != "Watch" {
		t.Errorf("items = %+v", items)
	}
}

func TestRecentlyViewedCap(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 15; i++ {
		s.RecordView(history.RecordViewRequest{ProductID: fmt.Sprintf("p%d", i)})
	}

	viewed := s.RecentlyViewed()
	if len(viewed) != 12 {
		t.Fatalf("len = %d, want 12", len(viewed))
	}
	if viewed[0].ProductID != "p14" || viewed[11].ProductID != "p3" {
		t.Errorf("order = %s ... %s", viewed[0].ProductID, viewed[11].ProductID)
	}
	for i := 1; i < len(viewed); i++ {
		if !viewed[i-1].ViewedAt.After(viewed[i].ViewedAt) {
			t.Errorf("entries not most-recent-first at %d", i)
		}
	}

	s.ClearRecentlyViewed()
	if len(s.RecentlyViewed()) != 0 {
		t.Errorf("recently viewed not cleared")
	}
}

func TestCustomLimits(t *testing.T) {
	s := newTestStore(WithLimits(2, 3))
	for i := 0; i < 5; i++ {
		s.RecordView(history.RecordViewRequest{ID: fmt.Sprintf("p%d", i)})
		s.RecordSearch(fmt.Sprintf("q%d", i))
	}
	if len(s.RecentlyViewed()) != 2 || len(s.RecentSearches()) != 3 {
		t.Errorf("limits not applied: %d viewed, %d searches", len(s.RecentlyViewed()), len(s.RecentSearches()))
	}
}

func TestRecentSearchDedup(t *testing.T) {
	s := newTestStore()
	s.RecordSearch("Shoes")
	s.RecordSearch("shoes")

	if got := s.RecentSearches(); !reflect.DeepEqual(got, []string{"shoes"}) {
		t.Errorf("searches = %v, want [shoes]", got)
	}

	s.ClearRecentSearches()
	if len(s.RecentSearches()) != 0 {
		t.Errorf("searches not cleared")
	}
}

func TestAddressNoopWithoutProfile(t *testing.T) {
	s := newTestStore()
	s.AddAddress(user.Address{ID: "a1"})
	s.UpdateAddress("a1", user.UpdateAddressRequest{})
	s.RemoveAddress("a1")
	s.SetDefaultAddressID("a1")

	if s.UserProfile() != nil {
		t.Errorf("address ops created a profile")
	}
}

func TestProfileLifecycle(t *testing.T) {
	s := newTestStore()
	s.SetProfile(&user.Profile{ID: "u1", Email: "a@b.c", Name: "A", Addresses: []user.Address{}})

	if !s.IsAuthenticated() {
		t.Fatalf("expected authenticated")
	}

	s.AddAddress(user.Address{ID: "a1", Label: "Home"})
	label := "Office"
	s.UpdateAddress("a1", user.UpdateAddressRequest{Label: &label})
	s.SetDefaultAddressID("a1")

	p := s.UserProfile()
	if len(p.Addresses) != 1 || p.Addresses[0].Label != "Office" || p.DefaultAddressID != "a1" {
		t.Errorf("profile = %+v", p)
	}

	s.RemoveAddress("a1")
	if len(s.UserProfile().Addresses) != 0 {
		t.Errorf("address not removed")
	}

	s.ClearProfile()
	if s.IsAuthenticated() {
		t.Errorf("expected anonymous after clear")
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := newTestStore()
	s.AddLine(cart.AddLineRequest{ProductID: "a", Price: 1})
	s.SetProfile(&user.Profile{ID: "u", Addresses: []user.Address{{ID: "x"}}})

	snap := s.Snapshot()
	snap.Items[0].Quantity = 99
	snap.UserProfile.Addresses[0].ID = "changed"

	if s.Items()[0].Quantity != 1 {
		t.Errorf("snapshot shares cart lines with the store")
	}
	if s.UserProfile().Addresses[0].ID != "x" {
		t.Errorf("snapshot shares addresses with the store")
	}
}

func TestObserversSeePersistFlag(t *testing.T) {
	s := newTestStore()

	var changes []Change
	unsubscribe := s.Subscribe(func(c Change) {
		changes = append(changes, c)
	})

	s.AddLine(cart.AddLineRequest{ProductID: "a", Price: 1})
	s.SetProfile(&user.Profile{ID: "u"})
	s.Hydrate(PersistedState{})

	if len(changes) != 3 {
		t.Fatalf("changes = %d, want 3", len(changes))
	}
	if changes[0].Action != ActionAddLine || !changes[0].Persist {
		t.Errorf("cart change = %+v", changes[0])
	}
	if changes[0].State.Items[0].ProductID != "a" {
		t.Errorf("change state missing the new line")
	}
	if changes[1].Persist {
		t.Errorf("profile change must not be persisted")
	}
	if changes[2].Action != ActionHydrate || changes[2].Persist {
		t.Errorf("hydrate change = %+v", changes[2])
	}

	unsubscribe()
	s.ClearCart()
	if len(changes) != 3 {
		t.Errorf("observer called after unsubscribe")
	}
}

func TestHydrateKeepsProfile(t *testing.T) {
	s := newTestStore()
	s.SetProfile(&user.Profile{ID: "u"})
	s.Hydrate(PersistedState{
		Items:          []cart.Line{{ID: "a", ProductID: "a", Price: 2, Quantity: 2}},
		RecentSearches: []string{"hat"},
	})

	if s.TotalItemCount() != 2 || len(s.RecentSearches()) != 1 {
		t.Errorf("hydrate did not load persisted fields: %+v", s.Snapshot())
	}
	if s.Wishlist() == nil || len(s.Wishlist()) != 0 {
		t.Errorf("missing wishlist should hydrate as empty list")
	}
	if s.UserProfile() == nil {
		t.Errorf("hydrate dropped the profile")
	}
}

func TestConcurrentAddsAreSerialized(t *testing.T) {
	s := newTestStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddLine(cart.AddLineRequest{ProductID: "p", Price: 1})
		}()
	}
	wg.Wait()

	if got := s.TotalItemCount(); got != 50 {
		t.Errorf("item count = %d, want 50", got)
	}
}

type failingReader struct{}

func (failingReader) Get(context.Context, string) (string, error) {
	return "", errors.New("disk on fire")
}

func TestLoadProfileFromStorage(t *testing.T) {
	kv := storage.NewMemory()
	ctx := context.Background()
	_ = kv.Set(ctx, "user", `{"id":"u1","email":"kim@shop.test","phone":"123"}`)

	s := newTestStore(WithProfileStorage(kv, "user"))
	s.LoadProfileFromStorage(ctx)

	p := s.UserProfile()
	if p == nil {
		t.Fatalf("profile not loaded")
	}
	if p.Name != "kim" || p.Phone != "123" || p.Addresses == nil {
		t.Errorf("profile = %+v", p)
	}
}

func TestLoadProfileFailuresKeepState(t *testing.T) {
	ctx := context.Background()
	existing := &user.Profile{ID: "keep", Addresses: []user.Address{}}

	malformed := storage.NewMemory()
	_ = malformed.Set(ctx, "user", `{not json`)

	readers := map[string]storage.Reader{
		"missing":   storage.NewMemory(),
		"malformed": malformed,
		"failing":   failingReader{},
	}

	for name, reader := range readers {
		t.Run(name, func(t *testing.T) {
			s := newTestStore(WithProfileStorage(reader, "user"))
			s.SetProfile(existing)
			s.LoadProfileFromStorage(ctx)

			if p := s.UserProfile(); p == nil || p.ID != "keep" {
				t.Errorf("profile = %+v, want unchanged", p)
			}
		})
	}
}
