// Package middleware provides the request-level access gate: bearer token
// authentication, role-based authorization, and the common request
// instrumentation middleware.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"speakerbook/internal/token"
)

// identityKey is the gin context key the verified identity is stored under.
const identityKey = "identity"

// Verifier validates a bearer token and returns the identity it carries.
type Verifier interface {
	Verify(tokenString string) (token.Identity, error)
}

// Auth authenticates a request from its Authorization header. The header
// must be exactly "Bearer <token>"; anything else is rejected before the
// token is even parsed.
func Auth(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthenticated",
				"message": "authorization header required",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthenticated",
				"message": "authorization header format must be Bearer <token>",
			})
			return
		}

		identity, err := verifier.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthenticated",
				"message": "invalid token",
			})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireRole authorizes a previously authenticated request. The resolved
// identity's role must match, otherwise the request is rejected with 403.
func RequireRole(role token.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthenticated",
				"message": "no identity on request",
			})
			return
		}

		if identity.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "insufficient permissions",
			})
			return
		}

		c.Next()
	}
}

// IdentityFrom returns the verified identity stored on the request context
// by Auth.
func IdentityFrom(c *gin.Context) (token.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return token.Identity{}, false
	}
	identity, ok := v.(token.Identity)
	return identity, ok
}
