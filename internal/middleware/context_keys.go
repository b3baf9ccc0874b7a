package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID in the Gin context.
const userIDKey = contextKey("userID")

// companyIDKey is the key used to store the company ID resolved from the
// token's audience claim.
const companyIDKey = contextKey("companyID")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
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

// GetCompanyIDFromContext retrieves the company ID from the Gin context.
func GetCompanyIDFromContext(c *gin.Context) (string, bool) {
	val := c.Request.Context().Value(companyIDKey)
	if val == nil {
		return "", false
	}
	companyID, ok := val.(string)
	return companyID, ok
}

// WithUserID stores a user ID on a standard context. Used by the scheduler,
// which runs outside any HTTP request.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
