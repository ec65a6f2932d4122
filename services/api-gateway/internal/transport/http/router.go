package handlers

import (
	"time"

	"learnplatform/internal/domain"
	"learnplatform/services/api-gateway/internal/application/usecase"
	"learnplatform/services/api-gateway/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth    *AuthHandler
	Session *SessionHandler
	Course  *CourseHandler
	Lesson  *LessonHandler
	Catalog *CatalogHandler
	User    *UserHandler
}

func NewRouter(h Handlers, sessions *usecase.SessionUseCase, limiter *middleware.RateLimiter, origins []string) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = origins
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	teacher := middleware.RequireRole(domain.RoleTeacher)
	student := middleware.RequireRole(domain.RoleStudent)
	registered := middleware.RequireRegistered()

	api := r.Group("/api/v1")
	api.Use(middleware.Session(sessions))
	{
		api.GET("/home", h.Session.Home)
		api.GET("/session", h.Session.Session)

		auth := api.Group("/auth")
		{
			auth.GET("/challenge", limiter.Limit("challenge", 10, time.Minute), h.Auth.Challenge)
			auth.POST("/login", limiter.Limit("login", 5, time.Minute), h.Auth.Login)
			auth.POST("/register/message", h.Auth.RegisterMessage)
			auth.POST("/register", limiter.Limit("register", 5, time.Minute), h.Auth.Register)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		api.GET("/profile", registered, h.User.GetProfile)
		api.GET("/students/:wallet", h.User.Student)
		api.GET("/teachers/:wallet", h.User.Teacher)

		course := api.Group("/courses")
		{
			course.GET("", h.Course.List)
			course.GET("/:id", h.Course.GetOne)
			course.POST("", teacher, h.Course.Create)
			course.DELETE("/:id", teacher, h.Course.Delete)
			course.POST("/:id/enroll", student, h.Course.Enroll)
		}

		api.GET("/catalog", h.Catalog.Get)
		api.POST("/catalog/categories", teacher, h.Catalog.CreateCategory)

		lesson := api.Group("/lessons")
		{
			lesson.GET("", h.Lesson.List)
			lesson.GET("/:id", h.Lesson.GetOne)
			lesson.POST("", teacher, h.Lesson.Create)
			lesson.PUT("/:id", teacher, h.Lesson.Update)
			lesson.DELETE("/:id", teacher, h.Lesson.Delete)
			lesson.PUT("/:id/position", registered, h.Lesson.Position)
			lesson.GET("/:id/sections/:sid/progress", registered, h.Lesson.SectionProgress)
			lesson.POST("/:id/sections/:sid/complete", registered, h.Lesson.Complete)
			lesson.POST("/:id/sections/:sid/quiz/answer", registered, h.Lesson.Answer)
			lesson.POST("/:id/sections/:sid/quiz/submit", registered, h.Lesson.Submit)
		}
	}

	return r
}
