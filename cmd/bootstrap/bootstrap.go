package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docpool/config"
	deliveryHttp "docpool/internal/delivery/http"
	"docpool/internal/delivery/http/handler"
	"docpool/internal/delivery/http/middleware"
	"docpool/internal/infrastructure/cache"
	"docpool/internal/infrastructure/database"
	"docpool/internal/repository"
	"docpool/internal/service"
	"docpool/internal/usecase"
	"docpool/pkg/doctorid"
	"docpool/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const idempotencyScope = "doctors"

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// LoadConfig loads configuration and configures the logger from it
func LoadConfig(path string) (*config.Config, error) {
	setupLogger("info")

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	setupLogger(cfg.Log.Level)
	logrus.Info("Configuration loaded successfully")
	return cfg, nil
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	// Apply migrations before serving
	if cfg.DB.AutoMigrate {
		if err := Migrate(cfg, func(m *database.Migrator) error { return m.Up() }); err != nil {
			return nil, err
		}
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis (optional)
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		logrus.Info("Redis connected successfully")
	} else {
		logrus.Info("Redis not configured, idempotent create disabled")
	}

	// Initialize all layers
	app.Server = initializeServer(cfg, db, app.RedisClient)

	return app, nil
}

// Migrate opens a dedicated migration connection and runs fn against it
func Migrate(cfg *config.Config, fn func(m *database.Migrator) error) error {
	migrator, err := database.NewMigrator(database.MigrationURL(cfg.DB), logrus.StandardLogger())
	if err != nil {
		return err
	}
	defer migrator.Close()

	return fn(migrator)
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	doctorRepo := repository.NewDoctorRepository()
	activityLogRepo := repository.NewActivityLogRepository()

	// Initialize services
	activityService := service.NewActivityService(db, log, activityLogRepo)
	exportService := service.NewExportService()

	// Initialize usecases
	doctorUsecase := usecase.NewDoctorUsecase(
		db, log, doctorRepo, activityService, exportService,
		doctorid.NewGenerator(), cfg.Doctor.IDMaxAttempts,
	)

	// Initialize handlers
	exposeStoreErrors := !cfg.App.IsProduction()
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator, cfg.Doctor.DefaultActor, exposeStoreErrors)
	activityLogHandler := handler.NewActivityLogHandler(doctorUsecase, exposeStoreErrors)

	checks := []handler.HealthCheck{{Name: "database", Ping: pingDatabase(db)}}

	// Initialize middleware
	var idempotencyStore middleware.IdempotencyStore
	if redisClient != nil {
		store := cache.NewIdempotencyStore(redisClient, cfg.Idempotency.TTL)
		idempotencyStore = store
		checks = append(checks, handler.HealthCheck{Name: "redis", Ping: store.Ping})
	}
	healthHandler := handler.NewHealthHandler(checks...)

	corsMiddleware := middleware.NewCORSMiddleware()
	requestIDMiddleware := middleware.NewRequestIDMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)
	idempotencyMiddleware := middleware.NewIdempotencyMiddleware(idempotencyStore, idempotencyScope, log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		doctorHandler, activityLogHandler, healthHandler,
		corsMiddleware, requestIDMiddleware, loggingMiddleware, idempotencyMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func pingDatabase(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
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
