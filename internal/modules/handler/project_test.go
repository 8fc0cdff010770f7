package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/encadra/encadra/internal/modules/model"
	"github.com/encadra/encadra/internal/modules/serializer"
	"github.com/encadra/encadra/internal/modules/service"
)

func projectRouter(svc service.ProjectService, u model.CurrentUser) *gin.Engine {
	h := NewProjectHandler(svc)
	r := gin.New()
	api := r.Group("/api", asUser(u))
	api.POST("/projects", h.Create)
	api.GET("/projects", h.List)
	api.GET("/projects/:id", h.Get)
	api.PUT("/projects/:id", h.Update)
	api.DELETE("/projects/:id", h.Delete)
	api.POST("/projects/:id/supervisors", h.AddSupervisor)
	api.DELETE("/projects/:id/supervisors/:supervisorId", h.RemoveSupervisor)
	api.GET("/projects/:id/stats", h.Stats)
	return r
}

func TestProjectCreateHandler(t *testing.T) {
	caller := model.CurrentUser{ID: uuid.New(), Username: "alice", Role: model.RoleEtudiant}

	t.Run("created", func(t *testing.T) {
		svc := new(MockProjectService)
		svc.On("Create", mock.Anything, caller, service.CreateProjectInput{
			Title:       "thesis",
			Description: "final year project",
			Status:      "EN_COURS",
		}).Return(&model.Project{Title: "thesis", OwnerID: caller.ID}, nil)

		w := doRequest(projectRouter(svc, caller), http.MethodPost, "/api/projects", jsonBody(t, gin.H{
			"title":       "thesis",
			"description": "final year project",
			"status":      "EN_COURS",
		}))

		assert.Equal(t, http.StatusCreated, w.Code)
		var got struct {
			Project model.Project `json:"project"`
			Message string        `json:"message"`
		}
		decodeBody(t, w, &got)
		assert.Equal(t, "thesis", got.Project.Title)
		assert.Equal(t, "Project created successfully", got.Message)
		svc.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := new(MockProjectService)

		w := doRequest(projectRouter(svc, caller), http.MethodPost, "/api/projects", jsonBody(t, gin.H{
			"title": "thesis",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProjectListHandler(t *testing.T) {
	caller := model.CurrentUser{ID: uuid.New(), Role: model.RoleEtudiant}

	svc := new(MockProjectService)
	svc.On("List", mock.Anything, caller, "EN_COURS", "robot").
		Return([]service.ProjectListItem{
			{Project: model.Project{Title: "robotics"}, TaskCount: 2, CompletedTasks: 1, Progress: 50},
		}, nil)

	w := doRequest(projectRouter(svc, caller), http.MethodGet, "/api/projects?status=EN_COURS&search=robot", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Projects []service.ProjectListItem `json:"projects"`
	}
	decodeBody(t, w, &got)
	assert.Len(t, got.Projects, 1)
	assert.Equal(t, 50, got.Projects[0].Progress)
	svc.AssertExpectations(t)
}

func TestProjectGetHandler(t *testing.T) {
	caller := model.CurrentUser{ID: uuid.New(), Role: model.RoleEtudiant}
	projectID := uuid.New()

	t.Run("ok", func(t *testing.T) {
		svc := new(MockProjectService)
		svc.On("Get", mock.Anything, caller, projectID).
			Return(&model.Project{ID: projectID, Title: "thesis"}, &service.ProjectStats{TotalTasks: 3, Progress: 33}, nil)

		w := doRequest(projectRouter(svc, caller), http.MethodGet, "/api/projects/"+projectID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var got struct {
			Project model.Project        `json:"project"`
			Stats   service.ProjectStats `json:"stats"`
		}
		decodeBody(t, w, &got)
		assert.Equal(t, "thesis", got.Project.Title)
		assert.Equal(t, int64(3), got.Stats.TotalTasks)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := new(MockProjectService)

		w := doRequest(projectRouter(svc, caller), http.MethodGet, "/api/projects/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(MockProjectService)
		svc.On("Get", mock.Anything, caller, projectID).Return(nil, nil, service.ErrNotFound)

		w := doRequest(projectRouter(svc, caller), http.MethodGet, "/api/projects/"+projectID.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var got serializer.ErrorResponse
		decodeBody(t, w, &got)
		assert.Equal(t, "Project not found", got.Error)
	})

	t.Run("forbidden", func(t *testing.T) {
		svc := new(MockProjectService)
		svc.On("Get", mock.Anything, caller, projectID).Return(nil, nil, service.ErrForbidden)

		w := doRequest(projectRouter(svc, caller), http.MethodGet, "/api/projects/"+projectID.String(), nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		var got serializer.ErrorResponse
		decodeBody(t, w, &got)
		assert.Equal(t, "You do not have access to this project", got.Error)
	})
}

func TestProjectUpdateHandler(t *testing.T) {
	caller := model.CurrentUser{ID: uuid.New(), Role: model.RoleEtudiant}
	projectID := uuid.New()
	supID := uuid.New()

	svc := new(MockProjectService)
	svc.On("Update", mock.Anything, caller, projectID, mock.MatchedBy(func(in service.UpdateProjectInput) bool {
		return in.Title == "v2" &&
			in.SupervisorIDs != nil &&
			len(*in.SupervisorIDs) == 1 &&
			(*in.SupervisorIDs)[0] == supID
	})).Return(&model.Project{ID: projectID, Title: "v2"}, nil)

	w := doRequest(projectRouter(svc, caller), http.MethodPut, "/api/projects/"+projectID.String(), jsonBody(t, gin.H{
		"title":         "v2",
		"description":   "updated",
		"status":        "TERMINE",
		"supervisorIds": []string{supID.String()},
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestProjectDeleteHandler(t *testing.T) {
	caller := model.CurrentUser{ID: uuid.New(), Role: model.RoleEtudiant}
	projectID := uuid.New()

	svc := new(MockProjectService)
	svc.On("Delete", mock.Anything, caller, projectID).Return(nil)

	w := doRequest(projectRouter(svc, caller), http.MethodDelete, "/api/projects/"+projectID.String(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var got serializer.MessageResponse
	decodeBody(t, w, &got)
	assert.Equal(t, "Project deleted successfully", got.Message)
}

func TestProjectSupervisorHandlers(t *testing.T) {
	caller := model.CurrentUser{ID: uuid.New(), Role: model.RoleEtudiant}
	projectID := uuid.New()
	supID := uuid.New()

	t.Run("add ok", func(t *testing.T) {
		svc := new(MockProjectService)
		svc.On("AddSupervisor", mock.Anything, caller, projectID, supID).
			Return(&model.PublicUser{ID: supID, Username: "prof", Role: model.RoleEncadrant}, nil)

		w := doRequest(projectRouter(svc, caller), http.MethodPost,
			"/api/projects/"+projectID.String()+"/supervisors",
			jsonBody(t, gin.H{"supervisorId": supID.String()}))

		assert.Equal(t, http.StatusOK, w.Code)
		var got struct {
			Message    string           `json:"message"`
			Supervisor model.PublicUser `json:"supervisor"`
		}
		decodeBody(t, w, &got)
		assert.Equal(t, "prof", got.Supervisor.Username)
	})

	t.Run("add invalid target", func(t *testing.T) {
		svc := new(MockProjectService)
		svc.On("AddSupervisor", mock.Anything, caller, projectID, supID).
			Return(nil, service.ErrInvalidSupervisor)

		w := doRequest(projectRouter(svc, caller), http.MethodPost,
			"/api/projects/"+projectID.String()+"/supervisors",
			jsonBody(t, gin.H{"supervisorId": supID.String()}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var got serializer.ErrorResponse
		decodeBody(t, w, &got)
		assert.Equal(t, "Invalid supervisor", got.Error)
	})

	t.Run("add duplicate", func(t *testing.T) {
		svc := new(MockProjectService)
		svc.On("AddSupervisor", mock.Anything, caller, projectID, supID).
			Return(nil, service.ErrDuplicateSupervisor)

		w := doRequest(projectRouter(svc, caller), http.MethodPost,
			"/api/projects/"+projectID.String()+"/supervisors",
			jsonBody(t, gin.H{"supervisorId": supID.String()}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var got serializer.ErrorResponse
		decodeBody(t, w, &got)
		assert.Equal(t, "Supervisor already assigned to this project", got.Error)
	})

	t.Run("remove ok", func(t *testing.T) {
		svc := new(MockProjectService)
		svc.On("RemoveSupervisor", mock.Anything, caller, projectID, supID).Return(nil)

		w := doRequest(projectRouter(svc, caller), http.MethodDelete,
			"/api/projects/"+projectID.String()+"/supervisors/"+supID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestProjectStatsHandler(t *testing.T) {
	caller := model.CurrentUser{ID: uuid.New(), Role: model.RoleEtudiant}
	projectID := uuid.New()

	svc := new(MockProjectService)
	svc.On("Stats", mock.Anything, projectID).
		Return(&service.ProjectStats{TotalTasks: 5, Termine: 2, Progress: 40}, nil)

	w := doRequest(projectRouter(svc, caller), http.MethodGet,
		"/api/projects/"+projectID.String()+"/stats", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Stats service.ProjectStats `json:"stats"`
	}
	decodeBody(t, w, &got)
	assert.Equal(t, 40, got.Stats.Progress)
}
