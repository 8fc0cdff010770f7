package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/encadra/encadra/internal/modules/serializer"
	"github.com/encadra/encadra/internal/modules/service"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List godoc
//
//	@Summary		List users
//	@Description	Public fields of every account. ADMIN only.
//	@Tags			admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	map[string][]model.PublicUser
//	@Failure		403	{object}	serializer.ErrorResponse
//	@Router			/api/admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.Err("Failed to fetch users"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}
