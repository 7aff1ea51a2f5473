package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"doctor-schedule-service/config"
	deliveryHttp "doctor-schedule-service/internal/delivery/http"
	"doctor-schedule-service/internal/delivery/http/handler"
	"doctor-schedule-service/internal/delivery/http/middleware"
	"doctor-schedule-service/internal/infrastructure/cache"
	"doctor-schedule-service/internal/infrastructure/database"
	"doctor-schedule-service/internal/infrastructure/messaging"
	"doctor-schedule-service/internal/repository"
	"doctor-schedule-service/internal/service"
	"doctor-schedule-service/internal/usecase"
	"doctor-schedule-service/pkg/jwt"
	"doctor-schedule-service/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Publisher   service.EventPublisher
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env, log)
	if err != nil {
		return nil, err
	}
	app.DB = db

	if cfg.DB.AutoMigrate {
		sqlDB, err := db.DB()
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		if err := database.RunMigrations(sqlDB, log); err != nil {
			app.Close()
			return nil, err
		}
	}

	scheduleCache, err := app.newScheduleCache()
	if err != nil {
		app.Close()
		return nil, err
	}

	publisher, err := app.newEventPublisher()
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Publisher = publisher

	app.Server = app.initializeServer(scheduleCache)

	return app, nil
}

// NewLogger configures a logrus logger from the log settings
func NewLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if strings.EqualFold(cfg.Format, "text") {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

// newScheduleCache picks the cache backend named by CACHE_DRIVER.
func (app *App) newScheduleCache() (service.ScheduleCache, error) {
	cfg := app.Config.Cache

	switch strings.ToLower(cfg.Driver) {
	case "redis":
		client, err := cache.NewRedisClient(app.Config.Redis, app.Log)
		if err != nil {
			return nil, err
		}
		app.RedisClient = client
		return service.NewRedisScheduleCache(client, app.Log, cfg.TTL), nil
	case "memory":
		return service.NewMemoryScheduleCache(cfg.Size, cfg.TTL), nil
	case "", "none":
		return service.NewNoopScheduleCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}

func (app *App) newEventPublisher() (service.EventPublisher, error) {
	if !app.Config.RabbitMQ.Enabled {
		return service.NewNoopEventPublisher(), nil
	}
	publisher, err := messaging.NewRabbitMQPublisher(app.Config.RabbitMQ, app.Log)
	if err != nil {
		return nil, err
	}
	return publisher, nil
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(scheduleCache service.ScheduleCache) *http.Server {
	cfg := app.Config

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	doctorScheduleRepo := repository.NewDoctorScheduleRepository(app.DB)

	// Initialize usecases
	doctorScheduleUsecase := usecase.NewDoctorScheduleUsecase(app.Log, doctorScheduleRepo, scheduleCache, app.Publisher)

	// Initialize handlers
	doctorScheduleHandler := handler.NewDoctorScheduleHandler(doctorScheduleUsecase, customValidator)

	// Initialize middleware
	var authMiddleware *middleware.AuthMiddleware
	if cfg.JWT.Enabled {
		authMiddleware = middleware.NewAuthMiddleware(jwt.NewJWTService(cfg.JWT))
	}
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigins...)
	loggerMiddleware := middleware.NewLoggerMiddleware(app.Log)

	// Initialize router
	router := deliveryHttp.NewRouter(doctorScheduleHandler, authMiddleware, corsMiddleware, loggerMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() error {
	errCh := make(chan error, 1)

	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	return app.waitForShutdown(errCh)
}

// waitForShutdown blocks until an interrupt signal or a server failure
func (app *App) waitForShutdown(errCh <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case err := <-errCh:
		app.Close()
		return fmt.Errorf("failed to start server: %w", err)
	}

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), app.Config.App.ShutdownTimeout)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
	return nil
}

// Close closes all connections (broker, redis, database)
func (app *App) Close() {
	if app.Publisher != nil {
		if err := app.Publisher.Close(); err != nil {
			app.Log.Warnf("Failed to close event publisher: %v", err)
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	// Close database connection
	if app.DB != nil {
		if err := database.Close(app.DB); err != nil {
			app.Log.Warnf("Failed to close database: %v", err)
		}
	}
}
