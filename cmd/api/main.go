package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	_ "github.com/campusworks/records-api/api/swagger"
	"github.com/campusworks/records-api/internal/handler"
	"github.com/campusworks/records-api/internal/middleware"
	"github.com/campusworks/records-api/internal/repository"
	"github.com/campusworks/records-api/internal/service"
	"github.com/campusworks/records-api/pkg/config"
	"github.com/campusworks/records-api/pkg/database"
	"github.com/campusworks/records-api/pkg/logger"
	corsmiddleware "github.com/campusworks/records-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusworks/records-api/pkg/middleware/requestid"
	"github.com/campusworks/records-api/pkg/session"
)

// @title Campus Records API
// @version 1.0.0
// @description Role-based academic records management
// @BasePath /api
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := session.NewRedisClient(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()
	sessions := session.NewRedisStore(redisClient, cfg.Session.TTL)

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	collegeRepo := repository.NewCollegeRepository(db)
	classRepo := repository.NewClassRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	offeringRepo := repository.NewOfferingRepository(db)
	scoreRepo := repository.NewScoreRepository(db)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, sessions, validate, logr, service.AuthConfig{
		TokenSecret: cfg.Session.TokenSecret,
		SessionTTL:  cfg.Session.TTL,
	})
	collegeSvc := service.NewCollegeService(collegeRepo, validate, logr)
	classSvc := service.NewClassService(classRepo, validate, logr)
	lookupSvc := service.NewLookupService(lookupRepo)
	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	teacherSvc := service.NewTeacherService(teacherRepo, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, validate, logr)
	offeringSvc := service.NewOfferingService(offeringRepo, validate, logr)
	scoreSvc := service.NewScoreService(scoreRepo, validate, logr)
	transcriptSvc := service.NewTranscriptService(scoreRepo, studentRepo, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	handler.RegisterRoutes(r, handler.Registry{
		Auth:        handler.NewAuthHandler(authSvc, metricsSvc, cfg.Session),
		Students:    handler.NewStudentHandler(studentSvc),
		Classes:     handler.NewClassHandler(classSvc),
		Colleges:    handler.NewCollegeHandler(collegeSvc),
		Teachers:    handler.NewTeacherHandler(teacherSvc, lookupSvc),
		Courses:     handler.NewCourseHandler(courseSvc, lookupSvc),
		Offerings:   handler.NewOfferingHandler(offeringSvc),
		Scores:      handler.NewScoreHandler(scoreSvc, transcriptSvc),
		AuthService: authSvc,
		Metrics:     metricsSvc,
		Config:      cfg,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
