package middleware

import (
	"net/http"
	"strings"

	"rentalprima/internal/auth"

	"github.com/gin-gonic/gin"
)

const identityKey = "auth_identity"

// Authenticate resolves the bearer credential through the layered auth
// resolver and stores the identity on the request context. Requests
// without a resolvable credential are rejected with 401.
func Authenticate(base auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "not authorized to access this route",
			})
			return
		}

		resolver := base
		resolver.RequestID = GetRequestID(c)

		identity, err := resolver.ResolveToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "not authorized to access this route",
			})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// BearerToken extracts the credential from the Authorization header.
func BearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// IdentityFrom returns the resolved identity set by Authenticate.
func IdentityFrom(c *gin.Context) (auth.ResolvedIdentity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.ResolvedIdentity{}, false
	}
	identity, ok := v.(auth.ResolvedIdentity)
	return identity, ok
}
