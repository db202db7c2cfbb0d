package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobhive_backend/database"
	"jobhive_backend/internal/config"
	"jobhive_backend/internal/email"
	"jobhive_backend/internal/handlers"
	"jobhive_backend/internal/logger"
	"jobhive_backend/internal/middleware"
	"jobhive_backend/internal/repositories"
	"jobhive_backend/internal/routes"
	"jobhive_backend/internal/services"
	"jobhive_backend/internal/storage"
	"jobhive_backend/internal/validator"
	"jobhive_backend/internal/workers"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}
	logger.Info("Migrations applied")

	ginRouter := SetupRouter(cfg, gormDB)

	refreshTokenRepo := repositories.NewRefreshTokenRepository(gormDB)
	cleanupWorker := workers.NewCleanupWorker(refreshTokenRepo)
	cleanupWorker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает gin-роутер со всеми зависимостями.
// Вынесено отдельно, чтобы интеграционные тесты могли поднять
// приложение без Run().
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewLocalStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "base_path", cfg.Storage.BasePath)

	emailProvider := initializeEmailProvider(cfg)

	serviceContainer := initializeServices(gormDB, storageInstance, emailProvider)

	appHandlers := initializeHandlers(serviceContainer, storageInstance)

	ginRouter := initializeGinRouter()

	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeEmailProvider(cfg *config.Config) email.Provider {
	if !cfg.Email.Enabled {
		logger.Warn("Email sending disabled, using mock provider")
		return email.NewMockProvider()
	}

	provider, err := email.NewGomailProvider(cfg.Email)
	if err != nil {
		logger.WithError(err).Warn("Failed to initialize SMTP provider, falling back to mock")
		return email.NewMockProvider()
	}

	logger.Info("SMTP email provider initialized", "host", cfg.Email.SMTPHost)
	return provider
}

func initializeServices(gormDB *gorm.DB, storageInstance storage.Storage, emailProvider email.Provider) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository(gormDB)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)

	authService := services.NewAuthService(userRepo, refreshTokenRepo, emailProvider)
	userService := services.NewUserService(userRepo)
	jobService := services.NewJobService(jobRepo, userRepo)
	applicationService := services.NewApplicationService(jobRepo, userRepo, storageInstance, emailProvider)

	return &services.ServiceContainer{
		AuthService:        authService,
		UserService:        userService,
		JobService:         jobService,
		ApplicationService: applicationService,
		EmailService:       emailProvider,
	}
}

func initializeHandlers(container *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler: handlers.NewAuthHandler(baseHandler, container.AuthService),
		UserHandler: handlers.NewUserHandler(baseHandler, container.UserService),
		JobHandler:  handlers.NewJobHandler(baseHandler, container.JobService, container.ApplicationService),
		FileHandler: handlers.NewFileHandler(baseHandler, storageInstance),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}
