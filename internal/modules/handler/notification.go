package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/encadra/encadra/internal/middleware"
	"github.com/encadra/encadra/internal/modules/serializer"
	"github.com/encadra/encadra/internal/modules/service"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List godoc
//
//	@Summary	List own notifications
//	@Tags		notification
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	map[string][]model.Notification
//	@Router		/api/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.Err("Missing or malformed token"))
		return
	}

	items, err := h.svc.ListForUser(c.Request.Context(), u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.Err("Failed to fetch notifications"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": items})
}
