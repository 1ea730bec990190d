package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"institute-admin-console/config"
	deliveryHttp "institute-admin-console/internal/delivery/http"
	"institute-admin-console/internal/delivery/http/handler"
	"institute-admin-console/internal/delivery/http/middleware"
	"institute-admin-console/internal/domain/entity"
	"institute-admin-console/internal/infrastructure/cache"
	"institute-admin-console/internal/infrastructure/database"
	"institute-admin-console/internal/infrastructure/remote"
	"institute-admin-console/internal/repository"
	"institute-admin-console/internal/service"
	"institute-admin-console/internal/usecase"
	"institute-admin-console/pkg/jwt"
	"institute-admin-console/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Guard       *service.ActionGuard
	Sweeper     *service.SessionSweeper
	LoginLimit  *middleware.RateLimitMiddleware
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	log := setupLogger(cfg.App.Env)
	log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	// Initialize all layers
	app.Guard = service.NewActionGuard(log)
	app.initializeServer(cfg, log, db, redisClient)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(env string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)
	if env == "development" {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// initializeServer wires every layer and creates the HTTP server
func (app *App) initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client) {
	guard := app.Guard

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize the institute backend client; calls carry the bearer token of
	// the session that made the request
	client := remote.NewClient(cfg.Remote.Timeout, log, middleware.GetBackendTokenFromContext)

	// Initialize repositories
	authRepo := repository.NewAdminAuthRepository(client, cfg.Remote.InstituteURL)
	sessionRepo := repository.NewSessionRepository(redisClient)
	studentRepo := repository.NewStudentRepository(client, cfg.Remote.InstituteURL)
	consultationRepo := repository.NewConsultationRepository(client, cfg.Remote.InstituteURL)
	slotRepo := repository.NewSlotRepository(client, cfg.Remote.ScheduleURL)
	uploadRepo := repository.NewUploadRepository(client, cfg.Remote.UploadURL)
	cmsRepo := repository.NewCMSRepository(client, cfg.Remote.InstituteURL)
	branchRepo := repository.NewBranchRepository(client, cfg.Remote.InstituteURL)
	reviewRepo := repository.NewReviewRepository(client, cfg.Remote.InstituteURL)
	stagedFileRepo := repository.NewStagedFileRepository()

	// Initialize per-session state
	bookingMirror := service.NewMirror[entity.Booking]()
	studentMirror := service.NewMirror[entity.Student]()
	slotMirror := service.NewMirror[entity.TimeSlot]()
	branchMirror := service.NewMirror[entity.Branch]()
	reviewMirror := service.NewMirror[entity.Review]()
	cursors := service.NewCursorStore()
	pageSize := cfg.View.PageSize

	// Sessions whose Redis key expires never log out; their state is swept
	// once idle for the access token lifetime
	app.Sweeper = service.NewSessionSweeper(log, cfg.JWT.AccessExpiry,
		bookingMirror, studentMirror, slotMirror, branchMirror, reviewMirror, cursors)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, authRepo, sessionRepo, jwtService,
		bookingMirror, studentMirror, slotMirror, branchMirror, reviewMirror, cursors, guard)
	studentUsecase := usecase.NewStudentUsecase(log, studentRepo, studentMirror, cursors, guard, pageSize)
	consultationUsecase := usecase.NewConsultationUsecase(db, log, consultationRepo, uploadRepo, stagedFileRepo, bookingMirror, cursors, guard, pageSize)
	slotUsecase := usecase.NewSlotUsecase(log, slotRepo, slotMirror, cursors, guard, pageSize)
	cmsUsecase := usecase.NewCMSUsecase(log, cmsRepo, guard)
	uploadUsecase := usecase.NewUploadUsecase(log, uploadRepo)
	branchUsecase := usecase.NewBranchUsecase(log, branchRepo, branchMirror, guard)
	reviewUsecase := usecase.NewReviewUsecase(log, reviewRepo, reviewMirror, cursors, guard, pageSize)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	studentHandler := handler.NewStudentHandler(studentUsecase)
	consultationHandler := handler.NewConsultationHandler(consultationUsecase, customValidator)
	slotHandler := handler.NewSlotHandler(slotUsecase, customValidator)
	cmsHandler := handler.NewCMSHandler(cmsUsecase, uploadUsecase, customValidator)
	branchHandler := handler.NewBranchHandler(branchUsecase, customValidator)
	reviewHandler := handler.NewReviewHandler(reviewUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, sessionRepo)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigins)
	app.LoginLimit = middleware.NewRateLimitMiddleware(cfg.App.LoginRatePerMinute, cfg.App.TrustedProxies, log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		studentHandler,
		consultationHandler,
		slotHandler,
		cmsHandler,
		branchHandler,
		reviewHandler,
		authMiddleware,
		corsMiddleware,
		app.LoginLimit,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	app.Server = &http.Server{
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

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close stops background workers and closes all connections
func (app *App) Close() {
	if app.Guard != nil {
		app.Guard.Stop()
	}
	if app.Sweeper != nil {
		app.Sweeper.Stop()
	}
	if app.LoginLimit != nil {
		app.LoginLimit.Stop()
	}

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
