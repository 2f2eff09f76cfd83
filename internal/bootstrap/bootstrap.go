// Package bootstrap wires configuration, database, repositories, services
// and the HTTP router together.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appControllers "github.com/roadwise/roadwise/internal/app/controllers"
	appMigrations "github.com/roadwise/roadwise/internal/app/migrations"
	appRepos "github.com/roadwise/roadwise/internal/app/repositories"
	appRoutes "github.com/roadwise/roadwise/internal/app/routes"
	appServices "github.com/roadwise/roadwise/internal/app/services"
	"github.com/roadwise/roadwise/internal/config"
	"github.com/roadwise/roadwise/internal/db"
	appMiddleware "github.com/roadwise/roadwise/internal/middleware"
	pkgAuth "github.com/roadwise/roadwise/internal/pkg/auth"
	"github.com/roadwise/roadwise/internal/pkg/helpers"
	"github.com/roadwise/roadwise/internal/pkg/logger"
	"github.com/roadwise/roadwise/internal/pkg/metrics"
	"github.com/roadwise/roadwise/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services   *appServices.Services
	Repos      *appRepos.Repositories
	JWTService *pkgAuth.JWTService
	Metrics    *metrics.Metrics

	AuthController      *appControllers.AuthController
	UserController      *appControllers.UserController
	LessonController    *appControllers.LessonController
	VehicleController   *appControllers.VehicleController
	FlagController      *appControllers.FlagController
	LicenseController   *appControllers.LicenseController
	SettingController   *appControllers.SettingController
	DashboardController *appControllers.DashboardController
	AuthMiddleware      *appMiddleware.AuthMiddleware
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	logger.Info().
		Str("logLevel", cfg.Logging.Level).
		Str("logFormat", cfg.Logging.Format).
		Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	logger.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	logger.Info().Msg("Database connection established")

	logger.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		logger.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		logger.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	logger.Info().Msg("Database migrations applied")

	if err := seed.CreateDefaultData(context.Background(), dbPool); err != nil {
		// Seeding failures are logged but do not block startup
		logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and
// middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	if cfg.Metrics.Enabled {
		deps.Metrics = metrics.New()
	}

	deps.Services = appServices.NewServices(dbPool, deps.Repos, deps.JWTService, deps.Metrics)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.Auth)
	deps.UserController = appControllers.NewUserController(deps.Services.User)
	deps.LessonController = appControllers.NewLessonController(deps.Services.Lesson)
	deps.VehicleController = appControllers.NewVehicleController(deps.Services.Vehicle)
	deps.FlagController = appControllers.NewFlagController(deps.Services.Flag)
	deps.LicenseController = appControllers.NewLicenseController(deps.Services.License)
	deps.SettingController = appControllers.NewSettingController(deps.Services.Setting)
	deps.DashboardController = appControllers.NewDashboardController(deps.Services.Dashboard)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		logger.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		logger.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	if cfg.Metrics.Enabled {
		router.Use(appMiddleware.Metrics(deps.Metrics))
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
		logger.Info().Str("path", cfg.Metrics.Path).Msg("Prometheus metrics enabled")
	}

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.LessonController,
		deps.VehicleController,
		deps.FlagController,
		deps.LicenseController,
		deps.SettingController,
		deps.DashboardController,
		deps.AuthMiddleware,
	)

	// Liveness endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
