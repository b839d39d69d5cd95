package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/course-api/internal/handler"
	"github.com/noah-isme/course-api/internal/middleware"
	"github.com/noah-isme/course-api/internal/service"
	"github.com/noah-isme/course-api/pkg/config"
	"github.com/noah-isme/course-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/course-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/course-api/pkg/middleware/requestid"
	"github.com/noah-isme/course-api/pkg/ratelimit"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Teacher    *handler.TeacherHandler
	Course     *handler.CourseHandler
	Student    *handler.StudentHandler
	Enrollment *handler.EnrollmentHandler
	Meta       *handler.MetricsHandler
}

// Options carries the optional cross-cutting collaborators. A nil Limiter
// disables rate limiting and a nil Metrics disables instrumentation.
type Options struct {
	Limiter *ratelimit.Limiter
	Metrics *service.MetricsService
}

// New configures the Gin engine with global middleware and every route group.
func New(cfg *config.Config, logr *zap.Logger, h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS))
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}

	r.GET("/health", h.Meta.Health)
	r.GET("/version", h.Meta.Version)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", h.Meta.Prometheus)
	}
	if cfg.Docs.Enabled {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	if opts.Limiter != nil {
		api.Use(middleware.RateLimit(opts.Limiter, opts.Metrics, logr))
	}

	teachers := api.Group("/teachers")
	{
		teachers.GET("", h.Teacher.List)
		teachers.GET("/:id", h.Teacher.Get)
		teachers.POST("", h.Teacher.Create)
		teachers.PUT("/:id", h.Teacher.Update)
		teachers.DELETE("/:id", h.Teacher.Delete)
	}

	courses := api.Group("/courses")
	{
		courses.GET("", h.Course.List)
		courses.GET("/:id", h.Course.Get)
		courses.GET("/:id/roster/export", h.Course.ExportRoster)
		courses.POST("", h.Course.Create)
		courses.PUT("/:id", h.Course.Update)
		courses.DELETE("/:id", h.Course.Delete)
	}

	students := api.Group("/students")
	{
		students.GET("", h.Student.List)
		students.GET("/:id", h.Student.Get)
		students.POST("", h.Student.Create)
		students.PUT("/:id", h.Student.Update)
		students.DELETE("/:id", h.Student.Delete)
	}

	enrollments := api.Group("/enrollments")
	{
		enrollments.GET("", h.Enrollment.List)
		enrollments.GET("/:id", h.Enrollment.Get)
		enrollments.POST("", h.Enrollment.Create)
		enrollments.PUT("/:id", h.Enrollment.Update)
		enrollments.DELETE("", h.Enrollment.Delete)
	}

	return r
}
