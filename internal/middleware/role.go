package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/encadra/encadra/internal/modules/model"
	"github.com/encadra/encadra/internal/modules/serializer"
)

// RequireRole allows the request through only when the authenticated
// identity holds exactly the required role. This is an equality check, not a
// hierarchy: ADMIN does not satisfy a check for ENCADRANT.
func RequireRole(required model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.Err("Missing or malformed token"))
			return
		}
		if u.Role != required {
			c.AbortWithStatusJSON(http.StatusForbidden, serializer.Err("Insufficient role"))
			return
		}
		c.Next()
	}
}
