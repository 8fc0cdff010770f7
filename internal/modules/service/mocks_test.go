package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/encadra/encadra/internal/infra/queue"
	"github.com/encadra/encadra/internal/modules/model"
	"github.com/encadra/encadra/internal/modules/repo"
)

// MockUserRepo is a mock implementation of repo.UserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockProjectRepo is a mock implementation of repo.ProjectRepo
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, p *model.Project, supervisorIDs []uuid.UUID) error {
	args := m.Called(ctx, p, supervisorIDs)
	return args.Error(0)
}

func (m *MockProjectRepo) List(ctx context.Context, f repo.ProjectFilter) ([]model.Project, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepo) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) Update(ctx context.Context, p *model.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepo) ReplaceSupervisors(ctx context.Context, projectID uuid.UUID, supervisorIDs []uuid.UUID) error {
	args := m.Called(ctx, projectID, supervisorIDs)
	return args.Error(0)
}

func (m *MockProjectRepo) Delete(ctx context.Context, projectID uuid.UUID) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

func (m *MockProjectRepo) AddSupervisor(ctx context.Context, ps *model.ProjectSupervisor) error {
	args := m.Called(ctx, ps)
	return args.Error(0)
}

func (m *MockProjectRepo) RemoveSupervisor(ctx context.Context, projectID, supervisorID uuid.UUID) error {
	args := m.Called(ctx, projectID, supervisorID)
	return args.Error(0)
}

func (m *MockProjectRepo) HasSupervisor(ctx context.Context, projectID, supervisorID uuid.UUID) (bool, error) {
	args := m.Called(ctx, projectID, supervisorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectRepo) Counts(ctx context.Context, projectID uuid.UUID) (*repo.ProjectCounts, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repo.ProjectCounts), args.Error(1)
}

// MockTaskRepo is a mock implementation of repo.TaskRepo
type MockTaskRepo struct {
	mock.Mock
}

func (m *MockTaskRepo) Create(ctx context.Context, t *model.Task, assigneeIDs []uuid.UUID) error {
	args := m.Called(ctx, t, assigneeIDs)
	return args.Error(0)
}

func (m *MockTaskRepo) ListByProject(ctx context.Context, projectID uuid.UUID, status string) ([]model.Task, error) {
	args := m.Called(ctx, projectID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepo) ListAll(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepo) Get(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

// MockCommentRepo is a mock implementation of repo.CommentRepo
type MockCommentRepo struct {
	mock.Mock
}

func (m *MockCommentRepo) Create(ctx context.Context, c *model.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockNotificationRepo is a mock implementation of repo.NotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

// MockPublisher is a mock implementation of queue.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, e queue.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

// MockNotificationService is a mock implementation of NotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, userID uuid.UUID, kind, title, content string, meta map[string]interface{}) error {
	args := m.Called(ctx, userID, kind, title, content, meta)
	return args.Error(0)
}

func (m *MockNotificationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}
