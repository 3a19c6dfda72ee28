// internal/domain/cart/entity.go
package cart

import "encoding/json"

// Line is one purchasable row in the cart. Lines are keyed by ID, the
// identity key built from the product and its optional variant.
type Line struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
	Variant   string  `json:"variant,omitempty"`
}

// UnmarshalJSON fills in the identity key for lines saved before it existed
func (l *Line) UnmarshalJSON(data []byte) error {
	type rawLine Line
	var raw rawLine
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = Line(raw)
	if l.ID == "" {
		l.ID = IdentityKey(l.ProductID, l.Variant)
	}
	return nil
}

// Subtotal returns price times quantity for the line
func (l Line) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// AddLineRequest represents an add to cart call
type AddLineRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"` // 0 means 1
	Image     string  `json:"image"`
	Variant   string  `json:"variant"`
}

// UpdateLineRequest represents a quantity change
type UpdateLineRequest struct {
	Quantity int `json:"quantity"`
}

// Totals represents calculated cart totals
type Totals struct {
	ItemCount     int     `json:"itemCount"`     // Number of distinct lines
	TotalQuantity int     `json:"totalQuantity"` // Sum of all quantities
	SubTotal      float64 `json:"subTotal"`
}

// IdentityKey builds the line key for a product and optional variant.
// A line without a variant is keyed by the bare product ID.
func IdentityKey(productID, variant string) string {
	if variant == "" {
		return productID
	}
	return productID + "-" + variant
}
