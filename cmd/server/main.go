package main

//	@title			Encadra API
//	@version		1.0
//	@description	Project and task management backend for student/supervisor workflows.
//	@schemes		http https
//	@BasePath		/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token issued by /auth/login

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/encadra/encadra/internal/bootstrap"
	"github.com/encadra/encadra/internal/config"
	"github.com/encadra/encadra/internal/modules/handler"
	"github.com/encadra/encadra/internal/pkg/token"
	"github.com/encadra/encadra/internal/router"
)

func main() {
	// build dependency injection container
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	db := do.MustInvoke[*gorm.DB](inj)

	if cfg.JWT.Secret == "" {
		log.Sugar().Fatal("jwt secret is not configured")
	}

	// init gin
	gin.SetMode(cfg.App.Env)

	engine := router.NewRouter(router.RouterDeps{
		DB:                  db,
		Log:                 log,
		Issuer:              do.MustInvoke[*token.Issuer](inj),
		AuthHandler:         do.MustInvoke[*handler.AuthHandler](inj),
		ProjectHandler:      do.MustInvoke[*handler.ProjectHandler](inj),
		TaskHandler:         do.MustInvoke[*handler.TaskHandler](inj),
		CommentHandler:      do.MustInvoke[*handler.CommentHandler](inj),
		NotificationHandler: do.MustInvoke[*handler.NotificationHandler](inj),
		UserHandler:         do.MustInvoke[*handler.UserHandler](inj),
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: engine}

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr)
		log.Sugar().Infow("swagger url", "url", addr+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}
	log.Sugar().Info("server exited")
}
