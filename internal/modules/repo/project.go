package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/encadra/encadra/internal/modules/model"
)

// ProjectFilter narrows the project listing. VisibleTo restricts results to
// projects the user owns or supervises; OwnerID restricts to ownership only.
// Both nil means an unscoped listing.
type ProjectFilter struct {
	Status    string
	Search    string
	OwnerID   *uuid.UUID
	VisibleTo *uuid.UUID
}

// ProjectCounts are the raw per-project aggregates behind the stats view.
type ProjectCounts struct {
	Total     int64
	Pendant   int64
	EnCours   int64
	Termine   int64
	EnRetard  int64
	Documents int64
	Comments  int64
}

type ProjectRepo interface {
	Create(ctx context.Context, p *model.Project, supervisorIDs []uuid.UUID) error
	List(ctx context.Context, f ProjectFilter) ([]model.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Project, error)
	Update(ctx context.Context, p *model.Project) error
	ReplaceSupervisors(ctx context.Context, projectID uuid.UUID, supervisorIDs []uuid.UUID) error
	Delete(ctx context.Context, projectID uuid.UUID) error
	AddSupervisor(ctx context.Context, ps *model.ProjectSupervisor) error
	RemoveSupervisor(ctx context.Context, projectID, supervisorID uuid.UUID) error
	HasSupervisor(ctx context.Context, projectID, supervisorID uuid.UUID) (bool, error)
	Counts(ctx context.Context, projectID uuid.UUID) (*ProjectCounts, error)
}

type projectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project, supervisorIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		for _, sid := range supervisorIDs {
			ps := model.ProjectSupervisor{ProjectID: p.ID, SupervisorID: sid}
			if err := tx.Create(&ps).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *projectRepo) List(ctx context.Context, f ProjectFilter) ([]model.Project, error) {
	q := r.db.WithContext(ctx).Model(&model.Project{}).
		Preload("Owner").
		Preload("Supervisors.Supervisor").
		Preload("Tasks")

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if f.OwnerID != nil {
		q = q.Where("owner_id = ?", *f.OwnerID)
	}
	if f.VisibleTo != nil {
		supervised := r.db.Model(&model.ProjectSupervisor{}).
			Select("project_id").
			Where("supervisor_id = ?", *f.VisibleTo)
		q = q.Where("owner_id = ? OR id IN (?)", *f.VisibleTo, supervised)
	}

	var projects []model.Project
	return projects, q.Order("created_at desc").Find(&projects).Error
}

func (r *projectRepo) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Supervisors.Supervisor").
		Preload("Tasks").
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) Update(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Model(&model.Project{ID: p.ID}).
		Select("title", "description", "status").
		Updates(map[string]interface{}{
			"title":       p.Title,
			"description": p.Description,
			"status":      p.Status,
		}).Error
}

// ReplaceSupervisors swaps the full supervisor set inside one transaction so
// a failed reinsert cannot leave the project with no supervisors.
func (r *projectRepo) ReplaceSupervisors(ctx context.Context, projectID uuid.UUID, supervisorIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&model.ProjectSupervisor{}).Error; err != nil {
			return err
		}
		for _, sid := range supervisorIDs {
			ps := model.ProjectSupervisor{ProjectID: projectID, SupervisorID: sid}
			if err := tx.Create(&ps).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the project and every dependent row in one all-or-nothing
// transaction. A partial failure rolls back completely.
func (r *projectRepo) Delete(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taskIDs := func() *gorm.DB {
			return tx.Model(&model.Task{}).Select("id").Where("project_id = ?", projectID)
		}

		if err := tx.Where("task_id IN (?)", taskIDs()).Delete(&model.TaskAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ? OR task_id IN (?)", projectID, taskIDs()).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ? OR task_id IN (?)", projectID, taskIDs()).Delete(&model.Document{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&model.ProjectSupervisor{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&model.MeetingNote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&model.Milestone{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", projectID).Delete(&model.Project{}).Error
	})
}

func (r *projectRepo) AddSupervisor(ctx context.Context, ps *model.ProjectSupervisor) error {
	return r.db.WithContext(ctx).Create(ps).Error
}

// RemoveSupervisor is idempotent: deleting zero matching rows is not an error.
func (r *projectRepo) RemoveSupervisor(ctx context.Context, projectID, supervisorID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND supervisor_id = ?", projectID, supervisorID).
		Delete(&model.ProjectSupervisor{}).Error
}

func (r *projectRepo) HasSupervisor(ctx context.Context, projectID, supervisorID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ProjectSupervisor{}).
		Where("project_id = ? AND supervisor_id = ?", projectID, supervisorID).
		Count(&n).Error
	return n > 0, err
}

func (r *projectRepo) Counts(ctx context.Context, projectID uuid.UUID) (*ProjectCounts, error) {
	var rows []struct {
		Status string
		N      int64
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("status, count(*) as n").
		Where("project_id = ?", projectID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := &ProjectCounts{}
	for _, row := range rows {
		counts.Total += row.N
		switch model.TaskStatus(row.Status) {
		case model.TaskPendant:
			counts.Pendant = row.N
		case model.TaskEnCours:
			counts.EnCours = row.N
		case model.TaskTermine:
			counts.Termine = row.N
		case model.TaskEnRetard:
			counts.EnRetard = row.N
		}
	}

	if err := r.db.WithContext(ctx).Model(&model.Document{}).
		Where("project_id = ?", projectID).Count(&counts.Documents).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("project_id = ?", projectID).Count(&counts.Comments).Error; err != nil {
		return nil, err
	}
	return counts, nil
}
