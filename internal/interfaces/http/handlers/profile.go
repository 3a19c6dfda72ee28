// internal/interfaces/http/handlers/profile.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-state/internal/domain/user"
	"github.com/your-org/storefront-state/internal/store"
)

// ProfileHandler handles the signed-in profile and its addresses
type ProfileHandler struct {
	store *store.Store
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(s *store.Store) *ProfileHandler {
	return &ProfileHandler{store: s}
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile := h.store.UserProfile()

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"data": gin.H{
			"authenticated": profile != nil,
			"profile":       profile,
		},
	})
}

// SetProfile handles PUT /profile
func (h *ProfileHandler) SetProfile(c *gin.Context) {
	var req user.SetProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	h.store.SetProfile(req.Profile())

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"data":    h.store.UserProfile(),
	})
}

// ClearProfile handles DELETE /profile
func (h *ProfileHandler) ClearProfile(c *gin.Context) {
	h.store.ClearProfile()

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed out successfully",
	})
}

// ReloadProfile handles POST /profile/reload
func (h *ProfileHandler) ReloadProfile(c *gin.Context) {
	h.store.LoadProfileFromStorage(c.Request.Context())
	profile := h.store.UserProfile()

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile reloaded",
		"data": gin.H{
			"authenticated": profile != nil,
			"profile":       profile,
		},
	})
}

// AddAddress handles POST /profile/addresses
func (h *ProfileHandler) AddAddress(c *gin.Context) {
	if !h.requireProfile(c) {
		return
	}

	var req user.Address
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	h.store.AddAddress(req)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Address created successfully",
		"data":    h.store.UserProfile(),
	})
}

// UpdateAddress handles PUT /profile/addresses/:id
func (h *ProfileHandler) UpdateAddress(c *gin.Context) {
	if !h.requireAddress(c) {
		return
	}

	var req user.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	h.store.UpdateAddress(c.Param("id"), req)

	c.JSON(http.StatusOK, gin.H{
		"message": "Address updated successfully",
		"data":    h.store.UserProfile(),
	})
}

// DeleteAddress handles DELETE /profile/addresses/:id
func (h *ProfileHandler) DeleteAddress(c *gin.Context) {
	if !h.requireAddress(c) {
		return
	}

	h.store.RemoveAddress(c.Param("id"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Address deleted successfully",
		"data":    h.store.UserProfile(),
	})
}

// SetDefaultAddress handles PUT /profile/addresses/:id/default
func (h *ProfileHandler) SetDefaultAddress(c *gin.Context) {
	if !h.requireAddress(c) {
		return
	}

	h.store.SetDefaultAddressID(c.Param("id"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Default address updated successfully",
		"data":    h.store.UserProfile(),
	})
}

func (h *ProfileHandler) requireProfile(c *gin.Context) bool {
	if !h.store.IsAuthenticated() {
		c.JSON(http.StatusConflict, gin.H{
			"error": "No signed-in user",
		})
		return false
	}
	return true
}

func (h *ProfileHandler) requireAddress(c *gin.Context) bool {
	profile := h.store.UserProfile()
	if profile == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "No signed-in user",
		})
		return false
	}

	id := c.Param("id")
	for _, address := range profile.Addresses {
		if address.ID == id {
			return true
		}
	}

	c.JSON(http.StatusNotFound, gin.H{
		"error": "Address not found",
	})
	return false
}
