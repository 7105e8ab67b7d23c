package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/abroadly/abroadly/internal/app/auth"
	appControllers "github.com/abroadly/abroadly/internal/app/controllers"
	appMigrations "github.com/abroadly/abroadly/internal/app/migrations"
	appRepos "github.com/abroadly/abroadly/internal/app/repositories"
	appRoutes "github.com/abroadly/abroadly/internal/app/routes"
	appServices "github.com/abroadly/abroadly/internal/app/services"
	"github.com/abroadly/abroadly/internal/config"
	"github.com/abroadly/abroadly/internal/db"
	appMiddleware "github.com/abroadly/abroadly/internal/middleware"
	"github.com/abroadly/abroadly/internal/pkg/helpers"
	"github.com/abroadly/abroadly/internal/pkg/logger"
	"github.com/abroadly/abroadly/internal/pkg/session"
	"github.com/abroadly/abroadly/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService        *appServices.AuthService
	AlumniService      *appServices.AlumniService
	ProgramService     *appServices.ProgramService
	ReviewService      *appServices.ReviewService
	FavoriteService    *appServices.FavoriteService
	ProfileService     *appServices.ProfileService
	AuthController     *appControllers.AuthController
	AlumniController   *appControllers.AlumniController
	ProgramController  *appControllers.ProgramController
	ReviewController   *appControllers.ReviewController
	FavoriteController *appControllers.FavoriteController
	ProfileController  *appControllers.ProfileController
	SessionStore       *session.PostgresStore
	SessionManager     *session.Manager
	SessionMiddleware  *appMiddleware.SessionMiddleware
	Repos              *appRepos.Repositories
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// A seed failure should not keep the API from starting.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	sessionTTL := helpers.ParseDuration(cfg.Session.TTL, 336*time.Hour)
	deps.SessionStore = session.NewPostgresStore(dbPool, sessionTTL)
	deps.SessionManager = session.NewManager(
		deps.SessionStore,
		cfg.Session.CookieName,
		int(sessionTTL.Seconds()),
		cfg.Session.CookieSecure,
	)

	resolver := appAuth.NewResolver(deps.Repos.StudentRepository, deps.Repos.AlumniRepository)
	deps.SessionMiddleware = appMiddleware.NewSessionMiddleware(deps.SessionManager, resolver)

	deps.AuthService = appServices.NewAuthService(deps.Repos.StudentRepository, lgr)
	deps.AlumniService = appServices.NewAlumniService(deps.Repos.AlumniRepository, deps.Repos.ProgramRepository, lgr)
	deps.ProgramService = appServices.NewProgramService(deps.Repos.ProgramRepository, lgr)
	deps.ReviewService = appServices.NewReviewService(deps.Repos.ReviewRepository, deps.Repos.ProgramRepository, lgr)
	deps.FavoriteService = appServices.NewFavoriteService(deps.Repos.FavoriteRepository, deps.Repos.ProgramRepository, lgr)
	deps.ProfileService = appServices.NewProfileService(deps.Repos.ProfileRepository, lgr)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.AlumniController = appControllers.NewAlumniController(deps.AlumniService)
	deps.ProgramController = appControllers.NewProgramController(deps.ProgramService)
	deps.ReviewController = appControllers.NewReviewController(deps.ReviewService)
	deps.FavoriteController = appControllers.NewFavoriteController(deps.FavoriteService)
	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	// The session cookie only works cross-origin with credentialed CORS, so
	// the allowed origin is pinned to the configured frontend.
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.AlumniController,
		deps.ProgramController,
		deps.ReviewController,
		deps.FavoriteController,
		deps.ProfileController,
		deps.SessionMiddleware,
	)

	return router
}
