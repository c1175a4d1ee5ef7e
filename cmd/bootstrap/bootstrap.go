package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jijnash2636/medaiton/config"
	deliveryHttp "github.com/Jijnash2636/medaiton/internal/delivery/http"
	"github.com/Jijnash2636/medaiton/internal/delivery/http/handler"
	"github.com/Jijnash2636/medaiton/internal/delivery/http/middleware"
	"github.com/Jijnash2636/medaiton/internal/infrastructure/ai"
	"github.com/Jijnash2636/medaiton/internal/infrastructure/cache"
	"github.com/Jijnash2636/medaiton/internal/memstore"
	"github.com/Jijnash2636/medaiton/internal/repository"
	"github.com/Jijnash2636/medaiton/internal/service"
	"github.com/Jijnash2636/medaiton/internal/usecase"
	"github.com/Jijnash2636/medaiton/pkg/jwt"
	"github.com/Jijnash2636/medaiton/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Store       *memstore.Store
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize the in-memory store and seed the staff roster
	store := memstore.New()
	if err := seedStaff(store, cfg.Staff); err != nil {
		return nil, fmt.Errorf("failed to seed staff roster: %w", err)
	}
	app.Store = store
	logrus.Info("Entity store initialized")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server := initializeServer(cfg, store, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, store *memstore.Store, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	patientRepo := repository.NewPatientRepository()
	apptRepo := repository.NewAppointmentRepository()
	staffRepo := repository.NewStaffRepository()

	// Initialize services
	auditService := service.NewAuditService(log)
	schedulerService := service.NewSchedulerService(log, apptRepo)
	aiGateway := ai.NewGeminiClient(cfg.AI, log, customValidator)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(store, log, staffRepo, patientRepo, jwtService, redisClient)
	portalUsecase := usecase.NewPortalUsecase(store, log, patientRepo, apptRepo, auditService, schedulerService, aiGateway, redisClient)
	receptionUsecase := usecase.NewReceptionUsecase(store, log, patientRepo, apptRepo, auditService)
	triageUsecase := usecase.NewTriageUsecase(store, log, patientRepo, apptRepo, auditService, schedulerService, aiGateway)
	consultationUsecase := usecase.NewConsultationUsecase(store, log, patientRepo, apptRepo, auditService, aiGateway)
	adminUsecase := usecase.NewAdminUsecase(store, log, patientRepo, apptRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	portalHandler := handler.NewPortalHandler(portalUsecase, customValidator)
	receptionHandler := handler.NewReceptionHandler(receptionUsecase, customValidator)
	triageHandler := handler.NewTriageHandler(triageUsecase, customValidator)
	consultationHandler := handler.NewConsultationHandler(consultationUsecase, customValidator)
	adminHandler := handler.NewAdminHandler(adminUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, portalHandler, receptionHandler, triageHandler, consultationHandler, adminHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	logrus.Info("Server shutdown complete")
}
