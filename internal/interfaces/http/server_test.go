package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/your-org/storefront-state/internal/config"
	"github.com/your-org/storefront-state/internal/domain/cart"
	"github.com/your-org/storefront-state/internal/infrastructure/storage"
	"github.com/your-org/storefront-state/internal/interfaces/http/events"
	"github.com/your-org/storefront-state/internal/pkg/auth"
	"github.com/your-org/storefront-state/internal/pkg/logger"
	"github.com/your-org/storefront-state/internal/store"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Storefront State", Version: "test", Environment: "test"},
		Server: config.ServerConfig{
			Port:           "0",
			RequestTimeout: 5 * time.Second,
			MaxBodyBytes:   1 << 20,
		},
		Storage: config.StorageConfig{Driver: config.StorageMemory, CartKey: "cart-storage", UserKey: "user"},
		JWT: config.JWTConfig{
			Secret:            "test-secret-that-is-at-least-32-characters",
			AccessTokenExpiry: time.Hour,
		},
		Security: config.SecurityConfig{
			CORSAllowedOrigins: []string{"http://localhost:3000"},
			CORSAllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			CORSAllowedHeaders: []string{"Content-Type", "Authorization"},
		},
	}
}

type testServer struct {
	*Server
	store   *store.Store
	handler http.Handler
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := store.New()
	hub := events.NewHub(logger.Discard())
	go hub.Run()
	t.Cleanup(hub.Stop)
	t.Cleanup(s.Subscribe(hub.Observe))

	srv := NewServer(cfg, s, storage.NewMemory(), hub, logger.Discard())
	return &testServer{Server: srv, store: s, handler: srv.Handler()}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("decode data: %v (%s)", err, envelope.Data)
	}
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t, testConfig())

	rec := ts.do(t, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"healthy"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Errorf("missing request id header")
	}
}

func TestCartEndpoints(t *testing.T) {
	ts := newTestServer(t, testConfig())

	rec := ts.do(t, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{
		"productId": "p1", "name": "Shoes", "price": 10, "quantity": 2,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("add status = %d, body = %s", rec.Code, rec.Body.String())
	}
	ts.do(t, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{
		"productId": "p2", "name": "Tee", "price": 5, "variant": "red",
	})

	rec = ts.do(t, http.MethodPut, "/api/v1/cart/items/p2-red", map[string]interface{}{"quantity": 4})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}

	var resp struct {
		Items      []map[string]interface{} `json:"items"`
		TotalPrice float64                  `json:"totalPrice"`
		TotalItems int                      `json:"totalItems"`
	}
	decodeData(t, ts.do(t, http.MethodGet, "/api/v1/cart", nil), &resp)
	if len(resp.Items) != 2 || resp.TotalItems != 6 || resp.TotalPrice != 40 {
		t.Errorf("cart = %+v", resp)
	}

	ts.do(t, http.MethodDelete, "/api/v1/cart/items/p1", nil)
	if ts.store.TotalItemCount() != 4 {
		t.Errorf("item count = %d, want 4", ts.store.TotalItemCount())
	}

	ts.do(t, http.MethodDelete, "/api/v1/cart", nil)
	if len(ts.store.Items()) != 0 {
		t.Errorf("cart not cleared")
	}
}

func TestAddToCartValidation(t *testing.T) {
	ts := newTestServer(t, testConfig())

	rec := ts.do(t, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{"productId": "p1"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if len(ts.store.Items()) != 0 {
		t.Errorf("invalid request changed the cart")
	}
}

func TestWishlistEndpoints(t *testing.T) {
	ts := newTestServer(t, testConfig())

	rec := ts.do(t, http.MethodPost, "/api/v1/wishlist/toggle", map[string]interface{}{
		"id": "w1", "name": "Bag", "price": 20,
	})
	var toggled struct {
		InWishlist bool `json:"inWishlist"`
	}
	decodeData(t, rec, &toggled)
	if !toggled.InWishlist {
		t.Fatalf("toggle on a missing product should save it")
	}

	var check struct {
		InWishlist bool `json:"inWishlist"`
	}
	decodeData(t, ts.do(t, http.MethodGet, "/api/v1/wishlist/w1", nil), &check)
	if !check.InWishlist {
		t.Errorf("w1 should be in the wishlist")
	}

	rec = ts.do(t, http.MethodPost, "/api/v1/wishlist/missing/move-to-cart", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("move of unsaved product status = %d, want 404", rec.Code)
	}

	rec = ts.do(t, http.MethodPost, "/api/v1/wishlist/w1/move-to-cart", map[string]interface{}{"quantity": 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("move status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ts.store.IsInWishlist("w1") || ts.store.TotalItemCount() != 2 {
		t.Errorf("move did not transfer the product: %+v", ts.store.Snapshot())
	}

	rec = ts.do(t, http.MethodPost, "/api/v1/wishlist", map[string]interface{}{"name": "No id"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("add without product id status = %d, want 400", rec.Code)
	}
}

func TestHistoryEndpoints(t *testing.T) {
	ts := newTestServer(t, testConfig())

	for _, q := range []string{"boots", "Hats", "BOOTS"} {
		ts.do(t, http.MethodPost, "/api/v1/searches", map[string]interface{}{"query": q})
	}
	for _, blank := range []string{"", "   "} {
		rec := ts.do(t, http.MethodPost, "/api/v1/searches", map[string]interface{}{"query": blank})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("blank query %q status = %d, want 400", blank, rec.Code)
		}
	}
	var searches []string
	decodeData(t, ts.do(t, http.MethodGet, "/api/v1/searches", nil), &searches)
	if len(searches) != 2 || searches[0] != "BOOTS" || searches[1] != "Hats" {
		t.Errorf("searches = %v", searches)
	}

	ts.do(t, http.MethodPost, "/api/v1/recently-viewed", map[string]interface{}{"productId": "a", "name": "A"})
	ts.do(t, http.MethodPost, "/api/v1/recently-viewed", map[string]interface{}{"id": "b", "name": "B"})
	viewed := ts.store.RecentlyViewed()
	if len(viewed) != 2 || viewed[0].ProductID != "b" {
		t.Errorf("recently viewed = %+v", viewed)
	}

	ts.do(t, http.MethodDelete, "/api/v1/recently-viewed", nil)
	ts.do(t, http.MethodDelete, "/api/v1/searches", nil)
	if len(ts.store.RecentlyViewed()) != 0 || len(ts.store.RecentSearches()) != 0 {
		t.Errorf("history not cleared")
	}
}

func TestProfileEndpoints(t *testing.T) {
	ts := newTestServer(t, testConfig())

	address := map[string]interface{}{"street": "1 Main St", "city": "Springfield"}

	rec := ts.do(t, http.MethodPost, "/api/v1/profile/addresses", address)
	if rec.Code != http.StatusConflict {
		t.Fatalf("address without profile status = %d, want 409", rec.Code)
	}

	rec = ts.do(t, http.MethodPut, "/api/v1/profile", map[string]interface{}{"id": "u1", "email": "jane@example.com"})
	if rec.Code != http.StatusOK {
		t.Fatalf("set profile status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if p := ts.store.UserProfile(); p == nil || p.Name != "jane" {
		t.Fatalf("profile = %+v", p)
	}

	rec = ts.do(t, http.MethodPost, "/api/v1/profile/addresses", address)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add address status = %d, body = %s", rec.Code, rec.Body.String())
	}
	id := ts.store.UserProfile().Addresses[0].ID
	if id == "" {
		t.Fatalf("address id was not assigned")
	}

	rec = ts.do(t, http.MethodPut, "/api/v1/profile/addresses/"+id, map[string]interface{}{"city": "Shelbyville"})
	if rec.Code != http.StatusOK || ts.store.UserProfile().Addresses[0].City != "Shelbyville" {
		t.Errorf("update address status = %d, profile = %+v", rec.Code, ts.store.UserProfile())
	}

	ts.do(t, http.MethodPut, "/api/v1/profile/addresses/"+id+"/default", nil)
	if ts.store.UserProfile().DefaultAddressID != id {
		t.Errorf("default address not set")
	}

	rec = ts.do(t, http.MethodDelete, "/api/v1/profile/addresses/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("delete missing address status = %d, want 404", rec.Code)
	}

	ts.do(t, http.MethodDelete, "/api/v1/profile", nil)
	if ts.store.IsAuthenticated() {
		t.Errorf("profile not cleared")
	}
}

func TestRequireAuth(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RequireAuth = true
	ts := newTestServer(t, cfg)

	rec := ts.do(t, http.MethodGet, "/api/v1/cart", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d, want 401", rec.Code)
	}

	token, err := auth.NewJWTManager(cfg).GenerateAccessToken("device-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status with token = %d, want 200", rec.Code)
	}

	if rec := ts.do(t, http.MethodGet, "/health", nil); rec.Code != http.StatusOK {
		t.Errorf("health should not require auth, status = %d", rec.Code)
	}
}

func TestEventStream(t *testing.T) {
	ts := newTestServer(t, testConfig())
	httpServer := httptest.NewServer(ts.handler)
	defer httpServer.Close()

	url := "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/api/v1/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	readEvent := func() events.Event {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var event events.Event
		if err := conn.ReadJSON(&event); err != nil {
			t.Fatalf("read event: %v", err)
		}
		return event
	}

	if first := readEvent(); first.Action != "snapshot" {
		t.Fatalf("first event = %s, want snapshot", first.Action)
	}

	ts.store.AddLine(cartRequest("p1"))

	event := readEvent()
	if event.Action != store.ActionAddLine {
		t.Errorf("action = %s, want %s", event.Action, store.ActionAddLine)
	}
	if len(event.State.Items) != 1 || event.State.Items[0].ProductID != "p1" {
		t.Errorf("event state = %+v", event.State)
	}
}

func cartRequest(productID string) cart.AddLineRequest {
	return cart.AddLineRequest{ProductID: productID, Name: "Item " + productID, Price: 1}
}
