package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const (
	// userIDKey stores the authenticated acting user's id (audit identity).
	userIDKey = contextKey("userID")
	// orgIDKey stores the authenticated organization identity from the token.
	orgIDKey = contextKey("organizationID")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, userIDKey)
}

// GetOrgIDFromContext retrieves the authenticated organization ID from the Gin context.
func GetOrgIDFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, orgIDKey)
}

func stringFromContext(c *gin.Context, key contextKey) (string, bool) {
	if val, exists := c.Get(string(key)); exists {
		if s, ok := val.(string); ok {
			return s, true
		}
		return "", false
	}
	// Check the request context as well; the auth middleware sets both.
	if val := c.Request.Context().Value(key); val != nil {
		if s, ok := val.(string); ok {
			return s, true
		}
	}
	return "", false
}

// withIdentity returns a context carrying the authenticated identities.
func withIdentity(ctx context.Context, userID, organizationID string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, orgIDKey, organizationID)
}
