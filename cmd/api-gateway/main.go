package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/course-api/api/swagger"
	"github.com/noah-isme/course-api/internal/handler"
	"github.com/noah-isme/course-api/internal/repository"
	"github.com/noah-isme/course-api/internal/router"
	"github.com/noah-isme/course-api/internal/service"
	"github.com/noah-isme/course-api/pkg/config"
	"github.com/noah-isme/course-api/pkg/database"
	"github.com/noah-isme/course-api/pkg/logger"
	"github.com/noah-isme/course-api/pkg/ratelimit"
	"github.com/noah-isme/course-api/pkg/validation"
)

// @title Course API
// @version 1.0.0
// @description Teachers, courses, students and enrollments.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	validate := validation.New()

	teacherSvc := service.NewTeacherService(repository.NewTeacherRepository(db), validate, logr)
	courseSvc := service.NewCourseService(repository.NewCourseRepository(db), teacherSvc, validate, logr)
	studentSvc := service.NewStudentService(repository.NewStudentRepository(db), validate, logr)
	enrollmentSvc := service.NewEnrollmentService(repository.NewEnrollmentRepository(db), studentSvc, courseSvc, metricsSvc, validate, logr)
	rosterSvc := service.NewRosterService(courseSvc, studentSvc, logr)

	handlers := router.Handlers{
		Teacher:    handler.NewTeacherHandler(teacherSvc),
		Course:     handler.NewCourseHandler(courseSvc, rosterSvc),
		Student:    handler.NewStudentHandler(studentSvc),
		Enrollment: handler.NewEnrollmentHandler(enrollmentSvc),
		Meta:       handler.NewMetricsHandler(metricsSvc, cfg.Version),
	}

	r := router.New(cfg, logr, handlers, router.Options{
		Limiter: newLimiter(cfg, logr),
		Metrics: metricsSvc,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logr.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("server shutdown failed", zap.Error(err))
	}
}

// newLimiter builds the request limiter for the configured backend. An
// unreachable Redis falls back to per-process counting.
func newLimiter(cfg *config.Config, logr *zap.Logger) *ratelimit.Limiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	var store ratelimit.Store = ratelimit.NewMemoryStore()
	if cfg.RateLimit.Backend == config.RateLimitBackendRedis {
		client, err := ratelimit.NewRedisClient(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, using in-memory rate limiter", zap.Error(err))
		} else {
			store = ratelimit.NewRedisStore(client)
		}
	}
	return ratelimit.New(store, cfg.RateLimit.Requests, cfg.RateLimit.Window)
}
