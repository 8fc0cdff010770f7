package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/encadra/encadra/internal/middleware"
	"github.com/encadra/encadra/internal/modules/serializer"
	"github.com/encadra/encadra/internal/modules/service"
)

type CommentHandler struct {
	svc service.CommentService
}

func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

type CreateCommentReq struct {
	Content string `json:"content" binding:"required"`
}

// CreateForProject godoc
//
//	@Summary	Comment on a project
//	@Tags		comment
//	@Accept		json
//	@Produce	json
//	@Param		id		path	string						true	"Project ID"	Format(uuid)
//	@Param		payload	body	handler.CreateCommentReq	true	"Comment payload"
//	@Security	BearerAuth
//	@Success	201	{object}	map[string]interface{}
//	@Failure	403	{object}	serializer.ErrorResponse
//	@Failure	404	{object}	serializer.ErrorResponse
//	@Router		/api/projects/{id}/comments [post]
func (h *CommentHandler) CreateForProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err("Invalid project id"))
		return
	}

	req := CreateCommentReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ValidationErr("Content is required", err))
		return
	}

	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.Err("Missing or malformed token"))
		return
	}

	comment, err := h.svc.CreateForProject(c.Request.Context(), u, projectID, req.Content)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"comment": comment,
		"message": "Comment created successfully",
	})
}

// CreateForTask godoc
//
//	@Summary	Comment on a task
//	@Tags		comment
//	@Accept		json
//	@Produce	json
//	@Param		id		path	string						true	"Task ID"	Format(uuid)
//	@Param		payload	body	handler.CreateCommentReq	true	"Comment payload"
//	@Security	BearerAuth
//	@Success	201	{object}	map[string]interface{}
//	@Failure	403	{object}	serializer.ErrorResponse
//	@Failure	404	{object}	serializer.ErrorResponse
//	@Router		/api/tasks/{id}/comments [post]
func (h *CommentHandler) CreateForTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err("Invalid task id"))
		return
	}

	req := CreateCommentReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ValidationErr("Content is required", err))
		return
	}

	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.Err("Missing or malformed token"))
		return
	}

	comment, err := h.svc.CreateForTask(c.Request.Context(), u, taskID, req.Content)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"comment": comment,
		"message": "Comment created successfully",
	})
}

func respondCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, serializer.Err("Not found"))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, serializer.Err("You do not have access to this project"))
	default:
		c.JSON(http.StatusInternalServerError, serializer.Err("Failed to create comment"))
	}
}
