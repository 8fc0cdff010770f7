package bootstrap

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/encadra/encadra/internal/config"
	"github.com/encadra/encadra/internal/infra/cache"
	"github.com/encadra/encadra/internal/infra/db"
	"github.com/encadra/encadra/internal/infra/logger"
	"github.com/encadra/encadra/internal/infra/queue"
	"github.com/encadra/encadra/internal/modules/handler"
	"github.com/encadra/encadra/internal/modules/model"
	"github.com/encadra/encadra/internal/modules/repo"
	"github.com/encadra/encadra/internal/modules/service"
	"github.com/encadra/encadra/internal/pkg/token"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		// [optional] auto migrate
		if cfg.Database.AutoMigrate {
			_ = d.AutoMigrate(
				&model.User{},
				&model.Project{},
				&model.ProjectSupervisor{},
				&model.Task{},
				&model.TaskAssignment{},
				&model.Comment{},
				&model.Document{},
				&model.MeetingNote{},
				&model.Milestone{},
				&model.Notification{},
			)
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg), nil
	})

	// RabbitMQ Connection
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return amqp.Dial(cfg.RabbitMQ.URL)
	})

	// Queue publisher
	do.Provide(inj, func(i *do.Injector) (queue.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return queue.NewPublisher(do.MustInvoke[*amqp.Connection](i), cfg), nil
	})

	// Token issuer
	do.Provide(inj, func(i *do.Injector) (*token.Issuer, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return token.NewIssuer(cfg), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TaskRepo, error) {
		return repo.NewTaskRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.CommentRepo, error) {
		return repo.NewCommentRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.NotificationRepo, error) {
		return repo.NewNotificationRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.AuthService, error) {
		return service.NewAuthService(
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[*token.Issuer](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.NotificationService, error) {
		return service.NewNotificationService(
			do.MustInvoke[repo.NotificationRepo](i),
			do.MustInvoke[queue.Publisher](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[service.NotificationService](i),
			do.MustInvoke[*redis.Client](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TaskService, error) {
		return service.NewTaskService(
			do.MustInvoke[repo.TaskRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[service.NotificationService](i),
			do.MustInvoke[*redis.Client](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.CommentService, error) {
		return service.NewCommentService(
			do.MustInvoke[repo.CommentRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[repo.TaskRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.UserService, error) {
		return service.NewUserService(do.MustInvoke[repo.UserRepo](i)), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.AuthHandler, error) {
		return handler.NewAuthHandler(do.MustInvoke[service.AuthService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(do.MustInvoke[service.ProjectService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TaskHandler, error) {
		return handler.NewTaskHandler(do.MustInvoke[service.TaskService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.CommentHandler, error) {
		return handler.NewCommentHandler(do.MustInvoke[service.CommentService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.NotificationHandler, error) {
		return handler.NewNotificationHandler(do.MustInvoke[service.NotificationService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.UserHandler, error) {
		return handler.NewUserHandler(do.MustInvoke[service.UserService](i)), nil
	})

	return inj
}
