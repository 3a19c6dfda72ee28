// internal/interfaces/http/handlers/history.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-state/internal/domain/history"
	"github.com/your-org/storefront-state/internal/store"
)

// HistoryHandler handles recently-viewed and recent-search endpoints
type HistoryHandler struct {
	store *store.Store
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(s *store.Store) *HistoryHandler {
	return &HistoryHandler{store: s}
}

// GetRecentlyViewed handles GET /recently-viewed
func (h *HistoryHandler) GetRecentlyViewed(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Recently viewed products retrieved successfully",
		"data":    h.store.RecentlyViewed(),
	})
}

// RecordView handles POST /recently-viewed
func (h *HistoryHandler) RecordView(c *gin.Context) {
	var req history.RecordViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}
	if req.Key() == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": "productId is required",
		})
		return
	}

	h.store.RecordView(req)

	c.JSON(http.StatusOK, gin.H{
		"message": "Product view recorded successfully",
		"data":    h.store.RecentlyViewed(),
	})
}

// ClearRecentlyViewed handles DELETE /recently-viewed
func (h *HistoryHandler) ClearRecentlyViewed(c *gin.Context) {
	h.store.ClearRecentlyViewed()

	c.JSON(http.StatusOK, gin.H{
		"message": "Recently viewed products cleared successfully",
	})
}

// GetRecentSearches handles GET /searches
func (h *HistoryHandler) GetRecentSearches(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Recent searches retrieved successfully",
		"data":    h.store.RecentSearches(),
	})
}

// RecordSearch handles POST /searches
func (h *HistoryHandler) RecordSearch(c *gin.Context) {
	var req history.RecordSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": "query must not be blank",
		})
		return
	}

	h.store.RecordSearch(req.Query)

	c.JSON(http.StatusOK, gin.H{
		"message": "Search recorded successfully",
		"data":    h.store.RecentSearches(),
	})
}

// ClearRecentSearches handles DELETE /searches
func (h *HistoryHandler) ClearRecentSearches(c *gin.Context) {
	h.store.ClearRecentSearches()

	c.JSON(http.StatusOK, gin.H{
		"message": "Recent searches cleared successfully",
	})
}
