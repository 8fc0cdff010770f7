package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/encadra/encadra/internal/modules/model"
)

type CommentRepo interface {
	Create(ctx context.Context, c *model.Comment) error
}

type commentRepo struct{ db *gorm.DB }

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &commentRepo{db: db}
}

func (r *commentRepo) Create(ctx context.Context, c *model.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}
