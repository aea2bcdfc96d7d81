package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthapp-backend/config"
	deliveryHttp "healthapp-backend/internal/delivery/http"
	"healthapp-backend/internal/delivery/http/handler"
	"healthapp-backend/internal/delivery/http/middleware"
	"healthapp-backend/internal/infrastructure/cache"
	"healthapp-backend/internal/infrastructure/database"
	"healthapp-backend/internal/notification"
	"healthapp-backend/internal/repository"
	"healthapp-backend/internal/service"
	"healthapp-backend/internal/usecase"
	"healthapp-backend/pkg/jwt"
	"healthapp-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Dispatcher  *notification.Dispatcher
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

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, dispatcher := initializeServer(cfg, db, redisClient)
	app.Server = server
	app.Dispatcher = dispatcher

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *notification.Dispatcher) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	notificationLogRepo := repository.NewNotificationLogRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize audit trail
	auditService := service.NewAuditService(db, log, auditLogRepo)

	// Initialize notification dispatcher; without an API key mails are
	// only logged, which keeps local development self-contained
	var sender notification.EmailSender
	if sg := notification.NewSendGridSender(cfg.Mail, log); sg != nil {
		sender = sg
	} else {
		log.Warn("SENDGRID_API_KEY not set, email delivery disabled")
		sender = notification.NewLogSender(log)
	}
	dispatcher := notification.NewDispatcher(sender, db, notificationLogRepo, log, cfg.Notifier.Workers, cfg.Notifier.QueueSize)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, doctorProfileRepo, auditService, jwtService, redisClient)
	activationUsecase := usecase.NewDoctorActivationUsecase(db, log, userRepo, doctorProfileRepo, appointmentRepo, auditService, dispatcher)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, doctorProfileRepo, auditService, dispatcher)
	userProfileUsecase := usecase.NewUserProfileUsecase(db, log, userRepo, doctorProfileRepo, appointmentRepo, auditService)
	auditUsecase := usecase.NewAuditUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	adminDoctorHandler := handler.NewAdminDoctorHandler(activationUsecase, customValidator)
	adminAuditHandler := handler.NewAdminAuditHandler(auditUsecase)
	doctorHandler := handler.NewDoctorHandler(userProfileUsecase, appointmentUsecase)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	userHandler := handler.NewUserHandler(userProfileUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, adminDoctorHandler, adminAuditHandler, doctorHandler, appointmentHandler, userHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, dispatcher
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

	// Drain queued notifications before closing connections
	if app.Dispatcher != nil {
		app.Dispatcher.Stop()
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
