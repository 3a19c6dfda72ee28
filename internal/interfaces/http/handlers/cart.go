// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-state/internal/domain/cart"
	"github.com/your-org/storefront-state/internal/store"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	store *store.Store
}

// NewCartHandler creates a new cart handler
func NewCartHandler(s *store.Store) *CartHandler {
	return &CartHandler{store: s}
}

// CartResponse is the cart with its totals
type CartResponse struct {
	Items      []cart.Line `json:"items"`
	Totals     cart.Totals `json:"totals"`
	TotalPrice float64     `json:"totalPrice"`
	TotalItems int         `json:"totalItems"`
}

func (h *CartHandler) cartResponse() CartResponse {
	snapshot := h.store.Snapshot()
	totals := cart.CalculateTotals(snapshot.Items)
	return CartResponse{
		Items:      snapshot.Items,
		Totals:     totals,
		TotalPrice: totals.SubTotal,
		TotalItems: totals.TotalQuantity,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    h.cartResponse(),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req cart.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	h.store.AddLine(req)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    h.cartResponse(),
	})
}

// UpdateCartItem handles PUT /cart/items/:id. The id is an identity key or a
// bare product ID.
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req cart.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	h.store.SetQuantity(c.Param("id"), req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    h.cartResponse(),
	})
}

// RemoveFromCart handles DELETE /cart/items/:id and drops every variant of
// the product
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	h.store.RemoveLine(c.Param("id"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    h.cartResponse(),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	h.store.ClearCart()

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    h.cartResponse(),
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"count": h.store.TotalItemCount(),
		},
	})
}
