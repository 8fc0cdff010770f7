package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/encadra/encadra/internal/middleware"
	"github.com/encadra/encadra/internal/modules/model"
	"github.com/encadra/encadra/internal/modules/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser injects the caller identity the way the auth middleware would.
func asUser(u model.CurrentUser) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, u)
		c.Next()
	}
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	raw, err := sonic.Marshal(v)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	return bytes.NewReader(raw)
}

func doRequest(r *gin.Engine, method, path string, body *bytes.Reader) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := sonic.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

// MockAuthService is a mock implementation of service.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*model.PublicUser, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PublicUser), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

// MockProjectService is a mock implementation of service.ProjectService
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, u model.CurrentUser, in service.CreateProjectInput) (*model.Project, error) {
	args := m.Called(ctx, u, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) List(ctx context.Context, u model.CurrentUser, status, search string) ([]service.ProjectListItem, error) {
	args := m.Called(ctx, u, status, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ProjectListItem), args.Error(1)
}

func (m *MockProjectService) Get(ctx context.Context, u model.CurrentUser, id uuid.UUID) (*model.Project, *service.ProjectStats, error) {
	args := m.Called(ctx, u, id)
	var p *model.Project
	var stats *service.ProjectStats
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Project)
	}
	if args.Get(1) != nil {
		stats = args.Get(1).(*service.ProjectStats)
	}
	return p, stats, args.Error(2)
}

func (m *MockProjectService) Update(ctx context.Context, u model.CurrentUser, id uuid.UUID, in service.UpdateProjectInput) (*model.Project, error) {
	args := m.Called(ctx, u, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, u model.CurrentUser, id uuid.UUID) error {
	args := m.Called(ctx, u, id)
	return args.Error(0)
}

func (m *MockProjectService) AddSupervisor(ctx context.Context, u model.CurrentUser, projectID, supervisorID uuid.UUID) (*model.PublicUser, error) {
	args := m.Called(ctx, u, projectID, supervisorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PublicUser), args.Error(1)
}

func (m *MockProjectService) RemoveSupervisor(ctx context.Context, u model.CurrentUser, projectID, supervisorID uuid.UUID) error {
	args := m.Called(ctx, u, projectID, supervisorID)
	return args.Error(0)
}

func (m *MockProjectService) Stats(ctx context.Context, id uuid.UUID) (*service.ProjectStats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProjectStats), args.Error(1)
}

// MockTaskService is a mock implementation of service.TaskService
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, u model.CurrentUser, in service.CreateTaskInput) (*model.Task, error) {
	args := m.Called(ctx, u, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) ListByProject(ctx context.Context, projectID uuid.UUID, status string) ([]model.Task, error) {
	args := m.Called(ctx, projectID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) ListAll(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) Get(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}
