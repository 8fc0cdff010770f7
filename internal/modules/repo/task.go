package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/encadra/encadra/internal/modules/model"
)

type TaskRepo interface {
	Create(ctx context.Context, t *model.Task, assigneeIDs []uuid.UUID) error
	ListByProject(ctx context.Context, projectID uuid.UUID, status string) ([]model.Task, error)
	ListAll(ctx context.Context) ([]model.Task, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Task, error)
}

type taskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) TaskRepo {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, t *model.Task, assigneeIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		for _, aid := range assigneeIDs {
			ta := model.TaskAssignment{TaskID: t.ID, UserID: aid}
			if err := tx.Create(&ta).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByProject orders by status, then priority descending, then due date:
// the tie-break policy for triage views.
func (r *taskRepo) ListByProject(ctx context.Context, projectID uuid.UUID, status string) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{}).
		Preload("Assignments.User").
		Where("project_id = ?", projectID)

	if status != "" {
		q = q.Where("status = ?", status)
	}

	var tasks []model.Task
	return tasks, q.Order("status asc").Order("priority desc").Order("due_date asc").Find(&tasks).Error
}

func (r *taskRepo) ListAll(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	return tasks, r.db.WithContext(ctx).Find(&tasks).Error
}

func (r *taskRepo) Get(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var t model.Task
	err := r.db.WithContext(ctx).
		Preload("Assignments.User").
		Preload("Project").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc")
		}).
		Preload("Comments.Author").
		Where("id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}
