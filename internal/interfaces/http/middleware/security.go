package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders adds security headers to responses
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevent clickjacking
		c.Header("X-Frame-Options", "DENY")

		// Prevent MIME type sniffing
		c.Header("X-Content-Type-Options", "nosniff")

		// Referrer Policy
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// The API serves JSON and a websocket only, never documents
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		// State is per device; never let a proxy cache it
		c.Header("Cache-Control", "no-store")

		// Hide server information
		c.Header("Server", "Storefront State")

		c.Next()
	}
}
