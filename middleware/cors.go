package middleware

import (
	"github.com/gin-gonic/gin"
)

// CORS sets permissive cross-origin headers on every response, success and
// error paths alike. The checkout form is served from a separate origin.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Next()
	}
}
