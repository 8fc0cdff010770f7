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

type TaskHandler struct {
	svc service.TaskService
}

func NewTaskHandler(svc service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

type CreateTaskReq struct {
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description" binding:"required"`
	DueDate     string      `json:"dueDate" binding:"required"`
	ProjectID   uuid.UUID   `json:"projectId" binding:"required"`
	Status      string      `json:"status"`
	Priority    int         `json:"priority"`
	AssigneeIDs []uuid.UUID `json:"assigneeIds"`
}

// Create godoc
//
//	@Summary		Create task
//	@Description	Create a task in a project the caller owns, supervises, or administrates. An invalid status is replaced by PENDANT.
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateTaskReq	true	"Create payload"
//	@Security		BearerAuth
//	@Success		201	{object}	map[string]interface{}
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Failure		403	{object}	serializer.ErrorResponse
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/api/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	req := CreateTaskReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ValidationErr("Title, description, due date and project ID are required", err))
		return
	}

	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.Err("Missing or malformed token"))
		return
	}

	task, err := h.svc.Create(c.Request.Context(), u, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		ProjectID:   req.ProjectID,
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeIDs: req.AssigneeIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, serializer.Err("Project not found"))
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, serializer.Err("You are not authorized to create tasks for this project"))
		case errors.Is(err, service.ErrInvalidDueDate):
			c.JSON(http.StatusBadRequest, serializer.Err("Invalid due date"))
		default:
			c.JSON(http.StatusInternalServerError, serializer.Err("Failed to create task"))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"task":    task,
		"message": "Task created successfully",
	})
}

// ListByProject godoc
//
//	@Summary		List project tasks
//	@Description	Tasks of a project ordered by status, priority descending, then due date.
//	@Tags			task
//	@Produce		json
//	@Param			id		path	string	true	"Project ID"	Format(uuid)
//	@Param			status	query	string	false	"Task status filter"
//	@Security		BearerAuth
//	@Success		200	{object}	map[string][]model.Task
//	@Router			/api/projects/{id}/tasks [get]
func (h *TaskHandler) ListByProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err("Invalid project id"))
		return
	}

	tasks, err := h.svc.ListByProject(c.Request.Context(), projectID, c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.Err("Failed to fetch project tasks"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// ListAll godoc
//
//	@Summary		List all tasks
//	@Description	Unscoped listing intended for administrative use.
//	@Tags			task
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	map[string][]model.Task
//	@Router			/api/tasks [get]
func (h *TaskHandler) ListAll(c *gin.Context) {
	tasks, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.Err("Failed to fetch tasks"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// Get godoc
//
//	@Summary	Task details
//	@Tags		task
//	@Produce	json
//	@Param		id	path	string	true	"Task ID"	Format(uuid)
//	@Security	BearerAuth
//	@Success	200	{object}	map[string]model.Task
//	@Failure	404	{object}	serializer.ErrorResponse
//	@Router		/api/tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err("Invalid task id"))
		return
	}

	task, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, serializer.Err("Task not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.Err("Failed to fetch task"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}
