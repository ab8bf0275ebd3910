package app

import (
	"aitutor_backend/internal/config"
	"aitutor_backend/internal/middleware"
	"aitutor_backend/internal/model"
	"aitutor_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Health)

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Health)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.Profile)

		student := authGroup.Group("/")
		student.Use(middleware.RoleMiddleware(model.Student))
		{
			assessments := student.Group("/assessments")
			{
				assessments.POST("/grade", c.assessment.Grade)
				assessments.GET("/history", c.assessment.History)
			}

			adaptive := student.Group("/adaptive")
			{
				adaptive.GET("/difficulty", c.adaptive.Difficulty)
				adaptive.GET("/next-assessment", c.adaptive.NextAssessment)
			}

			engagement := student.Group("/engagement")
			{
				engagement.POST("/events", c.engagement.RecordEvent)
				engagement.GET("/profile", c.engagement.Profile)
			}

			plan := student.Group("/plan")
			{
				plan.POST("/generate", c.plan.Generate)
				plan.GET("/latest", c.plan.Latest)
				plan.POST("/export", c.plan.Export)
			}
		}
	}
}
