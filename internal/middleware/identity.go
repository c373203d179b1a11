package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// IdentityMiddleware creates a Gin middleware handler that reads the calling
// user's identity from the X-User-ID header. The Authorization header, when
// present, is captured untouched so the remote gateway can relay it.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			logger.Warn("X-User-ID header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "X-User-ID header required"})
			return
		}

		c.Set(string(userIDKey), userID)
		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)

		if token := c.GetHeader("Authorization"); token != "" {
			ctx = context.WithValue(ctx, authTokenKey, token)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
