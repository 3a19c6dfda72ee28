// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-state/internal/domain/wishlist"
	"github.com/your-org/storefront-state/internal/store"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	store *store.Store
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(s *store.Store) *WishlistHandler {
	return &WishlistHandler{store: s}
}

// MoveToCartRequest represents a move to cart call
type MoveToCartRequest struct {
	Quantity int `json:"quantity"` // 0 means 1
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	entries := h.store.Wishlist()

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist retrieved successfully",
		"data": gin.H{
			"items": entries,
			"count": len(entries),
		},
	})
}

// AddToWishlist handles POST /wishlist
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	req, ok := bindWishlistRequest(c)
	if !ok {
		return
	}

	h.store.AddToWishlist(req)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to wishlist successfully",
		"data":    h.store.Wishlist(),
	})
}

// ToggleWishlist handles POST /wishlist/toggle
func (h *WishlistHandler) ToggleWishlist(c *gin.Context) {
	req, ok := bindWishlistRequest(c)
	if !ok {
		return
	}

	saved := h.store.ToggleWishlist(req)

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist toggled successfully",
		"data": gin.H{
			"productId":  req.Key(),
			"inWishlist": saved,
		},
	})
}

// CheckItemInWishlist handles GET /wishlist/:id
func (h *WishlistHandler) CheckItemInWishlist(c *gin.Context) {
	productID := c.Param("id")

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist status retrieved successfully",
		"data": gin.H{
			"productId":  productID,
			"inWishlist": h.store.IsInWishlist(productID),
		},
	})
}

// RemoveFromWishlist handles DELETE /wishlist/:id
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	h.store.RemoveFromWishlist(c.Param("id"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from wishlist successfully",
		"data":    h.store.Wishlist(),
	})
}

// ClearWishlist handles DELETE /wishlist
func (h *WishlistHandler) ClearWishlist(c *gin.Context) {
	h.store.ClearWishlist()

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist cleared successfully",
	})
}

// MoveToCart handles POST /wishlist/:id/move-to-cart
func (h *WishlistHandler) MoveToCart(c *gin.Context) {
	var req MoveToCartRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request data",
				"details": err.Error(),
			})
			return
		}
	}

	if !h.store.MoveToCart(c.Param("id"), req.Quantity) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Item not found in wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item moved to cart successfully",
		"data": gin.H{
			"items":    h.store.Items(),
			"wishlist": h.store.Wishlist(),
		},
	})
}

func bindWishlistRequest(c *gin.Context) (wishlist.AddToWishlistRequest, bool) {
	var req wishlist.AddToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return req, false
	}
	if req.Key() == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": "productId is required",
		})
		return req, false
	}
	return req, true
}
