package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/encadra/encadra/internal/config"
	"github.com/encadra/encadra/internal/modules/model"
	"github.com/encadra/encadra/internal/modules/repo"
)

type CreateProjectInput struct {
	Title         string
	Description   string
	Status        string
	SupervisorIDs []uuid.UUID
}

type UpdateProjectInput struct {
	Title       string
	Description string
	Status      string
	// Nil means "leave the supervisor set alone"; an empty slice clears it.
	SupervisorIDs *[]uuid.UUID
}

// ProjectListItem is a project plus the task aggregates embedded in listings.
type ProjectListItem struct {
	model.Project
	TaskCount      int `json:"task_count"`
	CompletedTasks int `json:"completed_tasks"`
	Progress       int `json:"progress"`
}

type ProjectStats struct {
	TotalTasks int64 `json:"total_tasks"`
	Pendant    int64 `json:"pendant"`
	EnCours    int64 `json:"en_cours"`
	Termine    int64 `json:"termine"`
	EnRetard   int64 `json:"en_retard"`
	Progress   int   `json:"progress"`
	Documents  int64 `json:"documents"`
	Comments   int64 `json:"comments"`
}

type ProjectService interface {
	Create(ctx context.Context, u model.CurrentUser, in CreateProjectInput) (*model.Project, error)
	List(ctx context.Context, u model.CurrentUser, status, search string) ([]ProjectListItem, error)
	Get(ctx context.Context, u model.CurrentUser, id uuid.UUID) (*model.Project, *ProjectStats, error)
	Update(ctx context.Context, u model.CurrentUser, id uuid.UUID, in UpdateProjectInput) (*model.Project, error)
	Delete(ctx context.Context, u model.CurrentUser, id uuid.UUID) error
	AddSupervisor(ctx context.Context, u model.CurrentUser, projectID, supervisorID uuid.UUID) (*model.PublicUser, error)
	RemoveSupervisor(ctx context.Context, u model.CurrentUser, projectID, supervisorID uuid.UUID) error
	Stats(ctx context.Context, id uuid.UUID) (*ProjectStats, error)
}

type projectService struct {
	projects      repo.ProjectRepo
	users         repo.UserRepo
	notifications NotificationService
	rdb           *redis.Client
	statsTTL      time.Duration
	log           *zap.Logger
}

func NewProjectService(
	projects repo.ProjectRepo,
	users repo.UserRepo,
	notifications NotificationService,
	rdb *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) ProjectService {
	return &projectService{
		projects:      projects,
		users:         users,
		notifications: notifications,
		rdb:           rdb,
		statsTTL:      time.Duration(cfg.Redis.StatsTTL) * time.Second,
		log:           log,
	}
}

func (s *projectService) Create(ctx context.Context, u model.CurrentUser, in CreateProjectInput) (*model.Project, error) {
	p := model.Project{
		Title:       in.Title,
		Description: in.Description,
		Status:      model.NormalizeProjectStatus(in.Status, model.ProjectEnCours),
		OwnerID:     u.ID,
	}
	if err := s.projects.Create(ctx, &p, in.SupervisorIDs); err != nil {
		s.log.Sugar().Errorw("failed to create project", "owner_id", u.ID, "err", err)
		return nil, err
	}
	return &p, nil
}

func (s *projectService) List(ctx context.Context, u model.CurrentUser, status, search string) ([]ProjectListItem, error) {
	f := repo.ProjectFilter{Search: search}
	if model.ValidProjectStatus(status) {
		f.Status = status
	}

	switch u.Role {
	case model.RoleEtudiant:
		owner := u.ID
		f.OwnerID = &owner
	case model.RoleEncadrant:
		visible := u.ID
		f.VisibleTo = &visible
	}
	// ADMIN and the unfiltered default see everything matching the filter.

	projects, err := s.projects.List(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]ProjectListItem, 0, len(projects))
	for _, p := range projects {
		completed := 0
		for _, t := range p.Tasks {
			if t.Status == model.TaskTermine {
				completed++
			}
		}
		items = append(items, ProjectListItem{
			Project:        p,
			TaskCount:      len(p.Tasks),
			CompletedTasks: completed,
			Progress:       progress(int64(completed), int64(len(p.Tasks))),
		})
	}
	return items, nil
}

func (s *projectService) Get(ctx context.Context, u model.CurrentUser, id uuid.UUID) (*model.Project, *ProjectStats, error) {
	p, err := s.projects.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if !p.CanAccess(u) {
		return nil, nil, ErrForbidden
	}

	stats, err := s.Stats(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return p, stats, nil
}

func (s *projectService) Update(ctx context.Context, u model.CurrentUser, id uuid.UUID, in UpdateProjectInput) (*model.Project, error) {
	p, err := s.projects.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !p.CanAccess(u) {
		return nil, ErrForbidden
	}

	p.Title = in.Title
	p.Description = in.Description
	// An invalid incoming status keeps the project's current status, not the
	// global default.
	p.Status = model.NormalizeProjectStatus(in.Status, p.Status)

	if err := s.projects.Update(ctx, p); err != nil {
		s.log.Sugar().Errorw("failed to update project", "project_id", id, "err", err)
		return nil, err
	}

	if in.SupervisorIDs != nil {
		if err := s.projects.ReplaceSupervisors(ctx, id, *in.SupervisorIDs); err != nil {
			s.log.Sugar().Errorw("failed to replace supervisors", "project_id", id, "err", err)
			return nil, err
		}
	}

	if u.ID != p.OwnerID {
		if err := s.notifications.Notify(ctx, p.OwnerID, "project.updated",
			"Project updated",
			fmt.Sprintf("Your project %q was updated by %s.", p.Title, u.Username),
			map[string]interface{}{"project_id": p.ID.String()},
		); err != nil {
			return nil, err
		}
	}

	s.invalidateStats(ctx, id)

	updated, err := s.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *projectService) Delete(ctx context.Context, u model.CurrentUser, id uuid.UUID) error {
	p, err := s.projects.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !p.CanDelete(u) {
		return ErrForbidden
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		s.log.Sugar().Errorw("failed to delete project", "project_id", id, "err", err)
		return err
	}
	s.invalidateStats(ctx, id)
	return nil
}

func (s *projectService) AddSupervisor(ctx context.Context, u model.CurrentUser, projectID, supervisorID uuid.UUID) (*model.PublicUser, error) {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !p.CanDelete(u) {
		return nil, ErrForbidden
	}

	target, err := s.users.GetByID(ctx, supervisorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidSupervisor
		}
		return nil, err
	}
	if target.Role != model.RoleEncadrant {
		return nil, ErrInvalidSupervisor
	}

	// The existence check and the insert are not atomic; concurrent duplicate
	// adds can both pass the check.
	exists, err := s.projects.HasSupervisor(ctx, projectID, supervisorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateSupervisor
	}

	ps := model.ProjectSupervisor{ProjectID: projectID, SupervisorID: supervisorID}
	if err := s.projects.AddSupervisor(ctx, &ps); err != nil {
		s.log.Sugar().Errorw("failed to add supervisor", "project_id", projectID, "supervisor_id", supervisorID, "err", err)
		return nil, err
	}

	if err := s.notifications.Notify(ctx, supervisorID, "project.supervisor_added",
		"Assigned as supervisor",
		fmt.Sprintf("You were added as a supervisor on project %q.", p.Title),
		map[string]interface{}{"project_id": p.ID.String()},
	); err != nil {
		return nil, err
	}

	pub := target.Public()
	return &pub, nil
}

func (s *projectService) RemoveSupervisor(ctx context.Context, u model.CurrentUser, projectID, supervisorID uuid.UUID) error {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !p.CanDelete(u) {
		return ErrForbidden
	}
	return s.projects.RemoveSupervisor(ctx, projectID, supervisorID)
}

func (s *projectService) Stats(ctx context.Context, id uuid.UUID) (*ProjectStats, error) {
	key := statsCacheKey(id)
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var cached ProjectStats
			if sonic.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	if _, err := s.projects.Get(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	counts, err := s.projects.Counts(ctx, id)
	if err != nil {
		return nil, err
	}

	stats := &ProjectStats{
		TotalTasks: counts.Total,
		Pendant:    counts.Pendant,
		EnCours:    counts.EnCours,
		Termine:    counts.Termine,
		EnRetard:   counts.EnRetard,
		Progress:   progress(counts.Termine, counts.Total),
		Documents:  counts.Documents,
		Comments:   counts.Comments,
	}

	if s.rdb != nil {
		if raw, err := sonic.Marshal(stats); err == nil {
			if err := s.rdb.Set(ctx, key, raw, s.statsTTL).Err(); err != nil {
				s.log.Sugar().Debugw("failed to cache project stats", "project_id", id, "err", err)
			}
		}
	}
	return stats, nil
}

func (s *projectService) invalidateStats(ctx context.Context, id uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, statsCacheKey(id)).Err(); err != nil {
		s.log.Sugar().Debugw("failed to invalidate stats cache", "project_id", id, "err", err)
	}
}

func statsCacheKey(id uuid.UUID) string {
	return "project:stats:" + id.String()
}

// progress is the rounded completion percentage, 0 when there are no tasks.
func progress(completed, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
