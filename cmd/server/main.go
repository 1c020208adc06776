package main

import (
	"context"
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/masakimorita/work-report-api/internal/config"
	"github.com/masakimorita/work-report-api/internal/constants"
	"github.com/masakimorita/work-report-api/internal/handlers"
	"github.com/masakimorita/work-report-api/internal/logger"
	"github.com/masakimorita/work-report-api/internal/middleware"
	"github.com/masakimorita/work-report-api/internal/repository"
	"github.com/masakimorita/work-report-api/internal/services"
	"github.com/masakimorita/work-report-api/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	zlog := logger.New(cfg.GinMode)
	defer zlog.Sync()

	ctx := context.Background()

	// Open the document store
	var docStore store.DocumentStore
	switch cfg.StorageBackend {
	case "s3":
		s3Store, err := store.NewS3Store(ctx, cfg.S3Bucket, cfg.S3KeyPrefix, cfg.S3Region, cfg.S3Endpoint)
		if err != nil {
			log.Fatalf("Failed to open S3 store: %v", err)
		}
		docStore = s3Store
		zlog.Info("using S3 document store",
			zap.String("bucket", cfg.S3Bucket),
			zap.String("prefix", cfg.S3KeyPrefix))
	default:
		localStore, err := store.NewLocalStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("Failed to open local store: %v", err)
		}
		docStore = localStore
		zlog.Info("using local document store", zap.String("dir", cfg.DataDir))
	}

	// Seed the admin account and default masters
	if err := store.Seed(ctx, docStore, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed initial data: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(docStore)
	projectRepo := repository.NewProjectRepository(docStore)
	workTypeRepo := repository.NewWorkTypeRepository(docStore)
	categoryRepo := repository.NewJobCategoryRepository(docStore)
	workItemRepo := repository.NewWorkItemRepository(docStore)
	reportRepo := repository.NewReportRepository(docStore)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	accountService := services.NewAccountService(userRepo)
	workItemService := services.NewWorkItemService(workItemRepo)
	workTypeService := services.NewWorkTypeService(workTypeRepo)
	categoryService := services.NewJobCategoryService(categoryRepo)
	projectService := services.NewProjectService(projectRepo, workTypeRepo, workItemRepo, reportRepo, userRepo)
	reportService := services.NewReportService(reportRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	accountHandler := handlers.NewAccountHandler(accountService)
	workItemHandler := handlers.NewWorkItemHandler(workItemService)
	workTypeHandler := handlers.NewWorkTypeHandler(workTypeService)
	categoryHandler := handlers.NewJobCategoryHandler(categoryService)
	projectHandler := handlers.NewProjectHandler(projectService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Initialize Gin router
	r := gin.Default()

	// Setup cookie session middleware
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	isProduction := cfg.GinMode == "release"
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Work Report API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/check", authHandler.Check)
		}

		// Account routes (admin only)
		accounts := api.Group("/accounts")
		accounts.Use(middleware.RequireAdmin())
		{
			accounts.GET("/", accountHandler.ListAccounts)
			accounts.POST("/add", accountHandler.AddAccount)
			accounts.PUT("/update", accountHandler.UpdateAccount)
			accounts.DELETE("/delete", accountHandler.DeleteAccount)
		}

		// Master data routes
		masters := api.Group("/masters")
		{
			masters.GET("/work-items", middleware.RequireLogin(), workItemHandler.GetWorkItems)
			masters.POST("/work-items", middleware.RequireAdmin(), workItemHandler.SaveWorkItems)
			masters.POST("/work-items/add", middleware.RequireAdmin(), workItemHandler.AddWorkItem)
			masters.PUT("/work-items/update", middleware.RequireAdmin(), workItemHandler.UpdateWorkItem)
			masters.DELETE("/work-items/delete", middleware.RequireAdmin(), workItemHandler.DeleteWorkItems)
			masters.GET("/work-items/export", middleware.RequireAdmin(), workItemHandler.ExportWorkItems)
			masters.POST("/work-items/preview", middleware.RequireAdmin(), workItemHandler.PreviewWorkItems)
			masters.POST("/work-items/import", middleware.RequireAdmin(), workItemHandler.ImportWorkItems)

			masters.GET("/job-categories", middleware.RequireLogin(), categoryHandler.ListJobCategories)
			masters.POST("/job-categories", middleware.RequireAdmin(), categoryHandler.SaveJobCategories)

			masters.GET("/projects", middleware.RequireLogin(), projectHandler.ListProjects)
			masters.POST("/projects/add", middleware.RequireAdmin(), projectHandler.AddProject)
			masters.PUT("/projects/update", middleware.RequireAdmin(), projectHandler.UpdateProject)
			masters.DELETE("/projects/delete", middleware.RequireAdmin(), projectHandler.DeleteProject)
			masters.GET("/projects/export", middleware.RequireAdmin(), projectHandler.ExportProject)

			masters.GET("/work-types", middleware.RequireLogin(), workTypeHandler.ListWorkTypes)
			masters.POST("/work-types/add", middleware.RequireAdmin(), workTypeHandler.AddWorkType)
			masters.PUT("/work-types/update", middleware.RequireAdmin(), workTypeHandler.UpdateWorkType)
			masters.DELETE("/work-types/delete", middleware.RequireAdmin(), workTypeHandler.DeleteWorkType)
			masters.PUT("/work-types/update-order", middleware.RequireAdmin(), workTypeHandler.UpdateWorkTypeOrder)

			masters.GET("/reports/export-project-view", middleware.RequireAdmin(), projectHandler.ExportProjectView)
		}

		// Report routes (protected)
		reports := api.Group("/reports")
		reports.Use(middleware.RequireLogin())
		{
			reports.GET("/", reportHandler.ListReports)
			reports.POST("/add", reportHandler.AddReport)
			reports.PUT("/update", reportHandler.UpdateReport)
			reports.DELETE("/delete", reportHandler.DeleteReport)
			reports.GET("/date/:date", reportHandler.GetReportsByDate)
			reports.GET("/all", middleware.RequireAdmin(), reportHandler.GetAllReports)
		}
	}

	// Start server
	zlog.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
