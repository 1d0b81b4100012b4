package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/campusworks/records-api/internal/middleware"
	"github.com/campusworks/records-api/internal/service"
	"github.com/campusworks/records-api/pkg/config"
)

// Registry groups the handlers and services the router needs.
type Registry struct {
	Auth      *AuthHandler
	Students  *StudentHandler
	Classes   *ClassHandler
	Colleges  *CollegeHandler
	Teachers  *TeacherHandler
	Courses   *CourseHandler
	Offerings *OfferingHandler
	Scores    *ScoreHandler

	AuthService *service.AuthService
	Metrics     *service.MetricsService
	Config      *config.Config
}

// RegisterRoutes mounts every API route onto the engine. Authorization is
// layered: the session middleware authenticates, the role middleware
// authorizes, and student visibility narrowing happens in the services.
// Record mutations are admin operations; score mutations are open to
// teaching staff.
func RegisterRoutes(r *gin.Engine, reg Registry) {
	cookie := reg.Config.Session.CookieName
	authed := middleware.Session(reg.AuthService, cookie)
	staff := middleware.StaffOnly()
	admin := middleware.AdminOnly()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(reg.Metrics.Handler()))
	if reg.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(reg.Config.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", reg.Auth.Login)
		auth.POST("/logout", reg.Auth.Logout)
		auth.GET("/check_auth", middleware.OptionalSession(reg.AuthService, cookie), reg.Auth.CheckAuth)
		auth.POST("/change_password", authed, reg.Auth.ChangePassword)
	}

	student := api.Group("/student", authed)
	{
		student.GET("", reg.Students.List)
		student.POST("", admin, reg.Students.Create)
		student.GET("/:id", middleware.SelfOrStaff("id"), reg.Students.Get)
		student.PUT("/:id", admin, reg.Students.Update)
		student.DELETE("/:id", admin, reg.Students.Delete)

		class := student.Group("/class")
		{
			class.GET("", reg.Classes.List)
			class.GET("/:id", reg.Classes.Get)
			class.POST("", admin, reg.Classes.Create)
			class.PUT("/:id", admin, reg.Classes.Update)
			class.DELETE("/:id", admin, reg.Classes.Delete)
		}

		college := student.Group("/college")
		{
			college.GET("", reg.Colleges.List)
			college.GET("/:id", reg.Colleges.Get)
			college.POST("", admin, reg.Colleges.Create)
			college.PUT("/:id", admin, reg.Colleges.Update)
			college.DELETE("/:id", admin, reg.Colleges.Delete)
		}
	}

	teacher := api.Group("/teacher", authed)
	{
		teacher.GET("", reg.Teachers.List)
		teacher.GET("/title", reg.Teachers.Titles)
		teacher.GET("/:id", reg.Teachers.Get)
		teacher.POST("", admin, reg.Teachers.Create)
		teacher.PUT("/:id", admin, reg.Teachers.Update)
		teacher.DELETE("/:id", admin, reg.Teachers.Delete)
	}

	course := api.Group("/course", authed)
	{
		course.GET("", reg.Courses.List)
		course.GET("/type", reg.Courses.Types)
		course.GET("/:id", reg.Courses.Get)
		course.POST("", admin, reg.Courses.Create)
		course.PUT("/:id", admin, reg.Courses.Update)
		course.DELETE("/:id", admin, reg.Courses.Delete)
	}

	offering := api.Group("/offering", authed)
	{
		offering.GET("", reg.Offerings.List)
		offering.GET("/:id", reg.Offerings.Get)
		offering.POST("", admin, reg.Offerings.Create)
		offering.PUT("/:id", admin, reg.Offerings.Update)
		offering.DELETE("/:id", admin, reg.Offerings.Delete)
	}

	score := api.Group("/score", authed)
	{
		score.GET("/student/:student_id", middleware.SelfOrStaff("student_id"), reg.Scores.ListByStudent)
		score.GET("/student/:student_id/export", middleware.SelfOrStaff("student_id"), reg.Scores.Export)
		score.POST("", staff, reg.Scores.Create)
		score.PUT("/:sc_id", staff, reg.Scores.Update)
		score.DELETE("/:sc_id", staff, reg.Scores.Delete)
	}
}
