package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the calling user's ID in the Gin context.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// authTokenKey stores the caller's Authorization header value so outbound
// gateway requests can relay it verbatim.
const authTokenKey = contextKey("authToken")

// GetUserIDFromContext retrieves the calling user's ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIDVal := c.Request.Context().Value(userIDKey)
		if userIDVal != nil {
			return userIDVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// AuthTokenFromCtx retrieves the relayed Authorization header value from a
// plain context, or "" when the caller sent none.
func AuthTokenFromCtx(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if token, ok := ctx.Value(authTokenKey).(string); ok {
		return token
	}
	return ""
}
