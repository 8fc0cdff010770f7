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

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(svc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

type CreateProjectReq struct {
	Title         string      `json:"title" binding:"required"`
	Description   string      `json:"description" binding:"required"`
	Status        string      `json:"status"`
	SupervisorIDs []uuid.UUID `json:"supervisorIds"`
}

// Create godoc
//
//	@Summary		Create project
//	@Description	Create a project owned by the caller. An invalid status is replaced by EN_COURS.
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateProjectReq	true	"Create payload"
//	@Security		BearerAuth
//	@Success		201	{object}	map[string]interface{}
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Router			/api/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	req := CreateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ValidationErr("Title and description are required", err))
		return
	}

	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.Err("Missing or malformed token"))
		return
	}

	project, err := h.svc.Create(c.Request.Context(), u, service.CreateProjectInput{
		Title:         req.Title,
		Description:   req.Description,
		Status:        req.Status,
		SupervisorIDs: req.SupervisorIDs,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.Err("Failed to create project"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"project": project,
		"message": "Project created successfully",
	})
}

// List godoc
//
//	@Summary		List projects
//	@Description	ETUDIANT sees owned projects, ENCADRANT owned or supervised, ADMIN all.
//	@Tags			project
//	@Produce		json
//	@Param			status	query	string	false	"Project status filter"
//	@Param			search	query	string	false	"Case-insensitive title/description search"
//	@Security		BearerAuth
//	@Success		200	{object}	map[string][]service.ProjectListItem
//	@Router			/api/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.Err("Missing or malformed token"))
		return
	}

	projects, err := h.svc.List(c.Request.Context(), u, c.Query("status"), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.Err("Failed to fetch projects"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// Get godoc
//
//	@Summary	Get project
//	@Tags		project
//	@Produce	json
//	@Param		id	path	string	true	"Project ID"	Format(uuid)
//	@Security	BearerAuth
//	@Success	200	{object}	map[string]interface{}
//	@Failure	403	{object}	serializer.ErrorResponse
//	@Failure	404	{object}	serializer.ErrorResponse
//	@Router		/api/projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err("Invalid project id"))
		return
	}

	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.Err("Missing or malformed token"))
		return
	}

	project, stats, err := h.svc.Get(c.Request.Context(), u, id)
	if err != nil {
		h.respondError(c, err, "Failed to fetch project")
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project, "stats": stats})
}

type UpdateProjectReq struct {
	Title         string       `json:"title" binding:"required"`
	Description   string       `json:"description" binding:"required"`
	Status        string       `json:"status"`
	SupervisorIDs *[]uuid.UUID `json:"supervisorIds"`
}

// Update godoc
//
//	@Summary		Update project
//	@Description	Full replace of the mutable fields. An invalid status keeps the current one. A supervisorIds array replaces the whole supervisor set.
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string						true	"Project ID"	Format(uuid)
//	@Param			payload	body	handler.UpdateProjectReq	true	"Update payload"
//	@Security		BearerAuth
//	@Success		200	{object}	map[string]interface{}
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Failure		403	{object}	serializer.ErrorResponse
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/api/projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err("Invalid project id"))
		return
	}

	req := UpdateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ValidationErr("Title and description are required", err))
		return
	}

	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.Err("Missing or malformed token"))
		return
	}

	project, err := h.svc.Update(c.Request.Context(), u, id, service.UpdateProjectInput{
		Title:         req.Title,
		Description:   req.Description,
		Status:        req.Status,
		SupervisorIDs: req.SupervisorIDs,
	})
	if err != nil {
		h.respondError(c, err, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project": project,
		"message": "Project updated successfully",
	})
}

// Delete godoc
//
//	@Summary		Delete project
//	@Description	Cascades to supervisors, tasks, assignments, comments, documents, meeting notes and milestones in one transaction.
//	@Tags			project
//	@Produce		json
//	@Param			id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.MessageResponse
//	@Failure		403	{object}	serializer.ErrorResponse
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err("Invalid project id"))
		return
	}

	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.Err("Missing or malformed token"))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), u, id); err != nil {
		h.respondError(c, err, "Failed to delete project")
		return
	}

	c.JSON(http.StatusOK, serializer.MessageResponse{Message: "Project deleted successfully"})
}

type AddSupervisorReq struct {
	SupervisorID uuid.UUID `json:"supervisorId" binding:"required"`
}

// AddSupervisor godoc
//
//	@Summary		Add supervisor
//	@Description	Link an ENCADRANT to the project. Only ADMIN or the owner may do this.
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string						true	"Project ID"	Format(uuid)
//	@Param			payload	body	handler.AddSupervisorReq	true	"Supervisor payload"
//	@Security		BearerAuth
//	@Success		200	{object}	map[string]interface{}
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Failure		403	{object}	serializer.ErrorResponse
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/api/projects/{id}/supervisors [post]
func (h *ProjectHandler) AddSupervisor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err("Invalid project id"))
		return
	}

	req := AddSupervisorReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ValidationErr("supervisorId is required", err))
		return
	}

	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.Err("Missing or malformed token"))
		return
	}

	supervisor, err := h.svc.AddSupervisor(c.Request.Context(), u, id, req.SupervisorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSupervisor):
			c.JSON(http.StatusBadRequest, serializer.Err("Invalid supervisor"))
		case errors.Is(err, service.ErrDuplicateSupervisor):
			c.JSON(http.StatusBadRequest, serializer.Err("Supervisor already assigned to this project"))
		default:
			h.respondError(c, err, "Failed to add supervisor")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Supervisor added successfully",
		"supervisor": supervisor,
	})
}

// RemoveSupervisor godoc
//
//	@Summary		Remove supervisor
//	@Description	Unlink a supervisor. Removing one that is not assigned succeeds.
//	@Tags			project
//	@Produce		json
//	@Param			id				path	string	true	"Project ID"	Format(uuid)
//	@Param			supervisorId	path	string	true	"Supervisor ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.MessageResponse
//	@Failure		403	{object}	serializer.ErrorResponse
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/api/projects/{id}/supervisors/{supervisorId} [delete]
func (h *ProjectHandler) RemoveSupervisor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err("Invalid project id"))
		return
	}
	supervisorID, err := uuid.Parse(c.Param("supervisorId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err("Invalid supervisor id"))
		return
	}

	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.Err("Missing or malformed token"))
		return
	}

	if err := h.svc.RemoveSupervisor(c.Request.Context(), u, id, supervisorID); err != nil {
		h.respondError(c, err, "Failed to remove supervisor")
		return
	}

	c.JSON(http.StatusOK, serializer.MessageResponse{Message: "Supervisor removed successfully"})
}

// Stats godoc
//
//	@Summary	Project stats
//	@Tags		project
//	@Produce	json
//	@Param		id	path	string	true	"Project ID"	Format(uuid)
//	@Security	BearerAuth
//	@Success	200	{object}	map[string]service.ProjectStats
//	@Failure	404	{object}	serializer.ErrorResponse
//	@Router		/api/projects/{id}/stats [get]
func (h *ProjectHandler) Stats(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err("Invalid project id"))
		return
	}

	stats, err := h.svc.Stats(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to fetch project stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *ProjectHandler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, serializer.Err("Project not found"))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, serializer.Err("You do not have access to this project"))
	default:
		c.JSON(http.StatusInternalServerError, serializer.Err(fallback))
	}
}
