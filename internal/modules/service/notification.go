package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/encadra/encadra/internal/infra/queue"
	"github.com/encadra/encadra/internal/modules/model"
	"github.com/encadra/encadra/internal/modules/repo"
)

type NotificationService interface {
	// Notify persists a notification row for userID and fans the event out to
	// the queue. The queue publish is best effort: a failure there is logged
	// and never fails the caller.
	Notify(ctx context.Context, userID uuid.UUID, kind, title, content string, meta map[string]interface{}) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
}

type notificationService struct {
	r   repo.NotificationRepo
	pub queue.Publisher
	log *zap.Logger
}

func NewNotificationService(r repo.NotificationRepo, pub queue.Publisher, log *zap.Logger) NotificationService {
	return &notificationService{r: r, pub: pub, log: log}
}

func (s *notificationService) Notify(ctx context.Context, userID uuid.UUID, kind, title, content string, meta map[string]interface{}) error {
	n := model.Notification{
		UserID:   userID,
		Title:    title,
		Content:  content,
		Metadata: datatypes.JSONMap(meta),
	}
	if err := s.r.Create(ctx, &n); err != nil {
		s.log.Sugar().Errorw("failed to create notification", "user_id", userID, "kind", kind, "err", err)
		return err
	}

	if err := s.pub.Publish(ctx, queue.Event{
		Type:      kind,
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: n.CreatedAt,
	}); err != nil {
		s.log.Sugar().Warnw("failed to publish notification event", "user_id", userID, "kind", kind, "err", err)
	}
	return nil
}

func (s *notificationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	return s.r.ListByUser(ctx, userID)
}
