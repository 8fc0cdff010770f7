package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/encadra/encadra/internal/modules/model"
	"github.com/encadra/encadra/internal/modules/repo"
)

type CommentService interface {
	CreateForProject(ctx context.Context, u model.CurrentUser, projectID uuid.UUID, content string) (*model.Comment, error)
	CreateForTask(ctx context.Context, u model.CurrentUser, taskID uuid.UUID, content string) (*model.Comment, error)
}

type commentService struct {
	comments repo.CommentRepo
	projects repo.ProjectRepo
	tasks    repo.TaskRepo
}

func NewCommentService(comments repo.CommentRepo, projects repo.ProjectRepo, tasks repo.TaskRepo) CommentService {
	return &commentService{comments: comments, projects: projects, tasks: tasks}
}

func (s *commentService) CreateForProject(ctx context.Context, u model.CurrentUser, projectID uuid.UUID, content string) (*model.Comment, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !project.CanAccess(u) {
		return nil, ErrForbidden
	}

	c := model.Comment{Content: content, AuthorID: u.ID, ProjectID: &projectID}
	if err := s.comments.Create(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *commentService) CreateForTask(ctx context.Context, u model.CurrentUser, taskID uuid.UUID, content string) (*model.Comment, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Task comments follow the parent project's access rule.
	project, err := s.projects.Get(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}
	if !project.CanAccess(u) {
		return nil, ErrForbidden
	}

	c := model.Comment{Content: content, AuthorID: u.ID, TaskID: &taskID}
	if err := s.comments.Create(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
