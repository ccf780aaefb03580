package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/univ-fsi/surveillance-api/api/swagger"
	"github.com/univ-fsi/surveillance-api/internal/handler"
	"github.com/univ-fsi/surveillance-api/internal/middleware"
	"github.com/univ-fsi/surveillance-api/internal/repository"
	"github.com/univ-fsi/surveillance-api/internal/service"
	"github.com/univ-fsi/surveillance-api/pkg/cache"
	"github.com/univ-fsi/surveillance-api/pkg/config"
	"github.com/univ-fsi/surveillance-api/pkg/database"
	"github.com/univ-fsi/surveillance-api/pkg/logger"
	corsmiddleware "github.com/univ-fsi/surveillance-api/pkg/middleware/cors"
	reqidmiddleware "github.com/univ-fsi/surveillance-api/pkg/middleware/requestid"
)

const version = "1.0.0"

// @title Surveillance API
// @version 1.0.0
// @description Exam scheduling, invigilation and workload balance backend
// @BasePath /api/v1
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
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	metrics := service.NewMetricsService()

	// Redis is optional: the analytics cache degrades to a no-op when
	// the connection cannot be established.
	var cacheRepo *repository.CacheRepository
	if cfg.Analytics.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, analytics cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close()
		}
	}

	validate := validator.New()

	teacherRepo := repository.NewTeacherRepository(db)
	formationRepo := repository.NewFormationRepository(db)
	courseLoadRepo := repository.NewCourseLoadRepository(db)
	timeslotRepo := repository.NewTimeSlotRepository(db)
	planningRepo := repository.NewPlanningRepository(db)
	invigilationRepo := repository.NewInvigilationRepository(db)
	userRepo := repository.NewUserRepository(db)

	var cacheSvc *service.CacheService
	if cacheRepo != nil {
		cacheSvc = service.NewCacheService(cacheRepo, metrics, logr, cfg.Analytics)
	} else {
		cacheSvc = service.NewCacheService(nil, metrics, logr, cfg.Analytics)
	}

	conflictSvc := service.NewConflictService(planningRepo, invigilationRepo, timeslotRepo, cacheSvc, logr)
	workloadSvc := service.NewWorkloadService(planningRepo, invigilationRepo, teacherRepo, courseLoadRepo, formationRepo, cacheSvc, cfg.Workload, logr)
	planningSvc := service.NewPlanningService(planningRepo, invigilationRepo, teacherRepo, cacheSvc, validate, logr)
	teacherSvc := service.NewTeacherService(teacherRepo, cacheSvc, validate, logr)
	catalogSvc := service.NewCatalogService(formationRepo, timeslotRepo, courseLoadRepo, cacheSvc, validate, logr)
	authSvc := service.NewAuthService(userRepo, cfg.JWT, validate, logr)
	exportSvc := service.NewExportService(planningSvc, workloadSvc, cfg.Exports, logr)

	conflictHandler := handler.NewConflictHandler(conflictSvc)
	workloadHandler := handler.NewWorkloadHandler(workloadSvc)
	planningHandler := handler.NewPlanningHandler(planningSvc)
	teacherHandler := handler.NewTeacherHandler(teacherSvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	systemHandler := handler.NewSystemHandler(db, metrics, version)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", systemHandler.Health)
	r.GET("/ready", systemHandler.Ready)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta())

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", middleware.RequireAuth(authSvc), authHandler.Logout)
		auth.GET("/me", middleware.RequireAuth(authSvc), authHandler.Me)
	}

	conflicts := api.Group("/conflicts")
	{
		conflicts.GET("/exam-dates", conflictHandler.ExamDateSpread)
		conflicts.GET("/invigilators", conflictHandler.TeacherDoubleBookings)
		conflicts.GET("/rooms", conflictHandler.RoomDoubleBookings)
		conflicts.GET("/duplicates", conflictHandler.DuplicatePlannings)
	}

	api.POST("/workload/balance", workloadHandler.Balance)

	plannings := api.Group("/plannings")
	{
		plannings.GET("", planningHandler.List)
		plannings.GET("/:id", planningHandler.Get)
		plannings.GET("/:id/invigilators", planningHandler.Invigilators)
		plannings.POST("", middleware.RequireAuth(authSvc), planningHandler.Create)
		plannings.PUT("/:id", middleware.RequireAuth(authSvc), planningHandler.Update)
		plannings.DELETE("/:id", middleware.RequireAuth(authSvc), planningHandler.Delete)
	}

	api.GET("/monitoring", planningHandler.Monitoring)

	teachers := api.Group("/teachers")
	{
		teachers.GET("", teacherHandler.List)
		teachers.GET("/:code", teacherHandler.Get)
		teachers.POST("/search", teacherHandler.Search)
		teachers.POST("", middleware.RequireAuth(authSvc), teacherHandler.Create)
		teachers.PUT("/:code", middleware.RequireAuth(authSvc), teacherHandler.Update)
		teachers.DELETE("/:code", middleware.RequireAuth(authSvc), teacherHandler.Delete)
	}

	api.GET("/formations", catalogHandler.ListFormations)
	api.GET("/formations/:id", catalogHandler.GetFormation)
	api.GET("/timeslots", catalogHandler.ListTimeSlots)
	api.POST("/timeslots", middleware.RequireAuth(authSvc), catalogHandler.CreateTimeSlot)
	api.GET("/course-loads", catalogHandler.ListCourseLoads)
	api.POST("/course-loads", middleware.RequireAuth(authSvc), catalogHandler.CreateCourseLoad)

	exports := api.Group("/exports")
	{
		exports.GET("/monitoring", exportHandler.Monitoring)
		exports.GET("/workload", exportHandler.Workload)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}
