// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-state/internal/config"
	"github.com/your-org/storefront-state/internal/pkg/auth"
)

// AuthMiddleware requires a valid bearer token when API_REQUIRE_AUTH is on
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	if !cfg.Security.RequireAuth {
		return func(c *gin.Context) { c.Next() }
	}

	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		// Browsers cannot set headers on websocket upgrades
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" && c.Query("token") != "" {
			authHeader = "Bearer " + c.Query("token")
		}

		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			c.Abort()
			return
		}

		// Extract token from header
		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		// Validate access token
		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set("device_id", claims.DeviceID)
		c.Set("token_claims", claims)

		c.Next()
	}
}

// GetDeviceIDFromContext extracts the device id set by AuthMiddleware
func GetDeviceIDFromContext(c *gin.Context) (string, bool) {
	deviceID, exists := c.Get("device_id")
	if !exists {
		return "", false
	}
	return deviceID.(string), true
}
