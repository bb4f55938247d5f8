package identity

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The upstream gateway authenticates the caller and forwards an opaque user
// reference. The core trusts this value; it never authenticates itself.
const (
	headerUserRef = "X-User-ID"
	contextKey    = "identity.userRef"
)

// Required rejects requests that carry no user reference and stores the ref
// in the gin context for handlers to read.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.GetHeader(headerUserRef)
		if ref == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
			return
		}
		c.Set(contextKey, ref)
		c.Next()
	}
}

// UserRef returns the user reference stored by Required, or "" if absent.
func UserRef(c *gin.Context) string {
	if v, ok := c.Get(contextKey); ok {
		if ref, ok := v.(string); ok {
			return ref
		}
	}
	return ""
}
