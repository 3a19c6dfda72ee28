package history

import (
	"encoding/json"
	"time"
)

// Default list bounds
const (
	DefaultRecentlyViewedLimit = 12
	DefaultRecentSearchLimit   = 20
)

// ViewedProduct is one entry of the recently-viewed list
type ViewedProduct struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image,omitempty"`
	ViewedAt  time.Time `json:"viewedAt"`
}

// UnmarshalJSON accepts entries written with the legacy "id" field
func (v *ViewedProduct) UnmarshalJSON(data []byte) error {
	type rawViewed ViewedProduct
	var raw struct {
		rawViewed
		LegacyID string `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = ViewedProduct(raw.rawViewed)
	if v.ProductID == "" {
		v.ProductID = raw.LegacyID
	}
	return nil
}

// RecordViewRequest represents a product view. Product detail screens send
// "productId", listing screens send "id".
type RecordViewRequest struct {
	ProductID string  `json:"productId"`
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

// Key resolves the product ID of the request
func (r RecordViewRequest) Key() string {
	if r.ProductID != "" {
		return r.ProductID
	}
	return r.ID
}

// RecordSearchRequest represents a submitted search
type RecordSearchRequest struct {
	Query string `json:"query" binding:"required"`
}
