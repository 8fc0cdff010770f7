package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/encadra/encadra/docs"
	"github.com/encadra/encadra/internal/middleware"
	"github.com/encadra/encadra/internal/modules/handler"
	"github.com/encadra/encadra/internal/modules/model"
	"github.com/encadra/encadra/internal/pkg/token"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	DB                  *gorm.DB
	Log                 *zap.Logger
	Issuer              *token.Issuer
	AuthHandler         *handler.AuthHandler
	ProjectHandler      *handler.ProjectHandler
	TaskHandler         *handler.TaskHandler
	CommentHandler      *handler.CommentHandler
	NotificationHandler *handler.NotificationHandler
	UserHandler         *handler.UserHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/swagger.json", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/doc.json")
	})
	r.GET("/swagger/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authed := middleware.Auth(d.Issuer, d.DB)

	auth := r.Group("/auth")
	{
		auth.POST("/register", d.AuthHandler.Register)
		auth.POST("/login", d.AuthHandler.Login)
		auth.GET("/profile", authed, d.AuthHandler.Profile)
	}

	api := r.Group("/api")
	{
		api.Use(authed)

		projects := api.Group("/projects")
		{
			projects.POST("", d.ProjectHandler.Create)
			projects.GET("", d.ProjectHandler.List)
			projects.GET("/:id", d.ProjectHandler.Get)
			projects.PUT("/:id", d.ProjectHandler.Update)
			projects.DELETE("/:id", d.ProjectHandler.Delete)

			projects.POST("/:id/supervisors", d.ProjectHandler.AddSupervisor)
			projects.DELETE("/:id/supervisors/:supervisorId", d.ProjectHandler.RemoveSupervisor)
			projects.GET("/:id/stats", d.ProjectHandler.Stats)

			projects.GET("/:id/tasks", d.TaskHandler.ListByProject)
			projects.POST("/:id/comments", d.CommentHandler.CreateForProject)
		}

		tasks := api.Group("/tasks")
		{
			tasks.POST("", d.TaskHandler.Create)
			tasks.GET("", d.TaskHandler.ListAll)
			tasks.GET("/:id", d.TaskHandler.Get)
			tasks.POST("/:id/comments", d.CommentHandler.CreateForTask)
		}

		api.GET("/notifications", d.NotificationHandler.List)

		admin := api.Group("/admin")
		{
			admin.Use(middleware.RequireRole(model.RoleAdmin))
			admin.GET("/users", d.UserHandler.List)
		}
	}
	return r
}
