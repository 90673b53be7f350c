package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/resource-planner-api/api/swagger"
	"github.com/noah-isme/resource-planner-api/internal/handler"
	internalmiddleware "github.com/noah-isme/resource-planner-api/internal/middleware"
	"github.com/noah-isme/resource-planner-api/internal/repository"
	"github.com/noah-isme/resource-planner-api/internal/service"
	"github.com/noah-isme/resource-planner-api/pkg/cache"
	"github.com/noah-isme/resource-planner-api/pkg/config"
	"github.com/noah-isme/resource-planner-api/pkg/database"
	"github.com/noah-isme/resource-planner-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/resource-planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/resource-planner-api/pkg/middleware/requestid"
	"github.com/noah-isme/resource-planner-api/pkg/storage"
)

// @title Resource Planner API
// @version 0.1.0
// @description Allocation scheduling engine with conflict detection, resource lanes and undo/redo
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
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	allocationRepo := repository.NewAllocationRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	metricsSvc := service.NewMetricsService()

	plannerOpts := []service.PlannerOption{service.WithMetrics(metricsSvc)}
	if cfg.Notifications.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect redis", "error", err)
		}
		defer redisClient.Close()
		plannerOpts = append(plannerOpts, service.WithNotifier(service.NewRedisNotifier(redisClient, cfg.Notifications.Channel, logr)))
	}

	planner := service.NewPlannerService(
		allocationRepo,
		employeeRepo,
		projectRepo,
		service.PlannerConfig{
			MaxUndoOperations:    cfg.Engine.MaxUndoOperations,
			DefaultCapacityHours: cfg.Engine.DefaultCapacityHours,
		},
		nil,
		logr,
		plannerOpts...,
	)
	if err := planner.Refresh(context.Background()); err != nil {
		logr.Sugar().Fatalw("failed to load working set", "error", err)
	}

	exportStorage, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "error", err)
	}
	exportSvc := service.NewExportService(planner, exportStorage, logr)
	go runExportCleanup(exportSvc, cfg.Exports.CleanupInterval, cfg.Exports.ResultTTL)

	allocationHandler := handler.NewAllocationHandler(planner, allocationRepo)
	plannerHandler := handler.NewPlannerHandler(planner, exportSvc)
	employeeHandler := handler.NewEmployeeHandler(employeeRepo)
	projectHandler := handler.NewProjectHandler(projectRepo)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		allocations := api.Group("/allocations")
		{
			allocations.GET("", allocationHandler.List)
			allocations.POST("", allocationHandler.Create)
			allocations.POST("/delete", allocationHandler.DeleteBatch)
			allocations.POST("/bulk", allocationHandler.Bulk)
			allocations.PATCH("/:id", allocationHandler.Update)
			allocations.DELETE("/:id", allocationHandler.Delete)
			allocations.POST("/:id/move", allocationHandler.Move)
			allocations.POST("/:id/validate-drop", allocationHandler.ValidateDrop)
		}

		planner := api.Group("/planner")
		{
			planner.GET("/conflicts", plannerHandler.Conflicts)
			planner.GET("/lanes", plannerHandler.Lanes)
			planner.GET("/history", plannerHandler.History)
			planner.POST("/undo", plannerHandler.Undo)
			planner.POST("/redo", plannerHandler.Redo)
			planner.POST("/refresh", plannerHandler.Refresh)
			planner.GET("/snapshot", plannerHandler.Snapshot)
			planner.GET("/export", plannerHandler.Export)
			planner.GET("/selection", plannerHandler.GetSelection)
			planner.PUT("/selection", plannerHandler.SetSelection)
			planner.DELETE("/selection", plannerHandler.ClearSelection)
			planner.POST("/selection/all", plannerHandler.SelectAll)
		}

		api.GET("/employees", employeeHandler.List)
		api.GET("/employees/:id", employeeHandler.Get)
		api.GET("/projects", projectHandler.List)
		api.GET("/projects/:id", projectHandler.Get)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func runExportCleanup(exports *service.ExportService, interval, ttl time.Duration) {
	if interval <= 0 || ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		exports.Cleanup(ttl)
	}
}
