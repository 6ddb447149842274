package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireRoles only allows requests whose resolved identity carries one
// of the allowed roles. The check is an exact set-membership test; no
// role hierarchy is evaluated, so admin does not implicitly satisfy a
// super_admin requirement unless both are listed.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok || strings.TrimSpace(identity.Role) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "not authorized to access this route",
			})
			return
		}

		role := strings.ToLower(strings.TrimSpace(identity.Role))
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "role " + identity.Role + " is not authorized to access this route",
			})
			return
		}

		c.Next()
	}
}
