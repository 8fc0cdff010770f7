package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/encadra/encadra/internal/modules/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func roleRouter(callerRole model.Role, required model.Role) *gin.Engine {
	r := gin.New()
	r.GET("/guarded",
		func(c *gin.Context) {
			c.Set(ContextUserKey, model.CurrentUser{Role: callerRole})
		},
		RequireRole(required),
		func(c *gin.Context) {
			c.Status(http.StatusOK)
		},
	)
	return r
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		caller   model.Role
		required model.Role
		want     int
	}{
		{"exact match passes", model.RoleAdmin, model.RoleAdmin, http.StatusOK},
		{"student blocked from admin", model.RoleEtudiant, model.RoleAdmin, http.StatusForbidden},
		// No role hierarchy: only an exact match passes.
		{"supervisor blocked from admin", model.RoleEncadrant, model.RoleAdmin, http.StatusForbidden},
		{"admin blocked from supervisor-only", model.RoleAdmin, model.RoleEncadrant, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			roleRouter(tt.caller, tt.required).ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	r := gin.New()
	r.GET("/guarded", RequireRole(model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
