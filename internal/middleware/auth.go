package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/encadra/encadra/internal/modules/model"
	"github.com/encadra/encadra/internal/modules/serializer"
	"github.com/encadra/encadra/internal/pkg/token"
)

// ContextUserKey holds the model.CurrentUser attached by Auth.
const ContextUserKey = "currentUser"

// Auth authenticates a bearer token from the Authorization header, resolves
// the user row behind its claims, and attaches a concrete identity to the
// context. No downstream handler runs on failure.
func Auth(issuer *token.Issuer, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.Err("Missing or malformed token"))
			return
		}

		claims, err := issuer.Verify(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.Err("Invalid or expired token"))
			return
		}

		var user model.User
		if err := db.WithContext(c.Request.Context()).Where("id = ?", claims.UserID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.Err("Invalid or expired token"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.Err("Internal server error"))
			return
		}

		c.Set(ContextUserKey, model.CurrentUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		})
		c.Next()
	}
}

// CurrentUser extracts the identity attached by Auth.
func CurrentUser(c *gin.Context) (model.CurrentUser, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return model.CurrentUser{}, false
	}
	u, ok := v.(model.CurrentUser)
	return u, ok
}
