package app

import (
	"student_dashboard_backend/docs"
	"student_dashboard_backend/internal/config"
	"student_dashboard_backend/internal/middleware"
	"student_dashboard_backend/internal/model"
	"student_dashboard_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	a.registerStudentRoutes(authGroup, c)

	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.Profile)

	quizzes := rg.Group("/quizzes")
	{
		quizzes.GET("", c.quiz.ListActiveQuizzes)
		quizzes.GET("/:id", c.quiz.GetStudentQuiz)
		quizzes.POST("/:id/attempts", c.attempt.StartAttempt)
		quizzes.GET("/:id/attempts", c.attempt.ListAttempts)
		quizzes.GET("/:id/attempts/best", c.attempt.BestAttempt)
		quizzes.GET("/:id/attempts/current", c.attempt.CurrentAttempt)
	}

	attempts := rg.Group("/attempts")
	{
		attempts.GET("", c.attempt.ListMyAttempts)
		attempts.GET("/:id", c.attempt.GetAttempt)
		attempts.PUT("/:id/answers", c.attempt.RecordAnswer)
		attempts.POST("/:id/submit", c.attempt.SubmitAttempt)
	}

	rg.GET("/announcements", c.announcement.ListVisible)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg.JWT.Secret), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/quizzes", c.quiz.CreateQuiz)
		admin.GET("/quizzes", c.quiz.ListQuizzes)
		admin.GET("/quizzes/:id", c.quiz.GetQuiz)
		admin.PUT("/quizzes/:id", c.quiz.UpdateQuiz)
		admin.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
		admin.GET("/quizzes/:id/statistics", c.quiz.Statistics)

		admin.POST("/announcements", c.announcement.Create)
		admin.GET("/announcements", c.announcement.ListAll)
		admin.PUT("/announcements/:id", c.announcement.Update)
		admin.DELETE("/announcements/:id", c.announcement.Delete)
		admin.POST("/announcements/:id/attachment", c.announcement.UploadAttachment)
	}
}
