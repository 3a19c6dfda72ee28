package wishlist

import (
	"encoding/json"
	"time"
)

// Entry represents a saved-for-later product
type Entry struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}

// UnmarshalJSON accepts entries written with the legacy "id" field
func (e *Entry) UnmarshalJSON(data []byte) error {
	type rawEntry Entry
	var raw struct {
		rawEntry
		LegacyID string `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Entry(raw.rawEntry)
	if e.ProductID == "" {
		e.ProductID = raw.LegacyID
	}
	return nil
}

// AddToWishlistRequest represents add to wishlist request. Older screens send
// the product under "id"; ProductID wins when both are present.
type AddToWishlistRequest struct {
	ProductID string  `json:"productId"`
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

// Key resolves the product ID of the request
func (r AddToWishlistRequest) Key() string {
	if r.ProductID != "" {
		return r.ProductID
	}
	return r.ID
}
