package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/ArkanTsabit123/Student-Management-System/internal/app/controllers"
	appMigrations "github.com/ArkanTsabit123/Student-Management-System/internal/app/migrations"
	appRepos "github.com/ArkanTsabit123/Student-Management-System/internal/app/repositories"
	appRoutes "github.com/ArkanTsabit123/Student-Management-System/internal/app/routes"
	appServices "github.com/ArkanTsabit123/Student-Management-System/internal/app/services"
	"github.com/ArkanTsabit123/Student-Management-System/internal/config"
	"github.com/ArkanTsabit123/Student-Management-System/internal/db"
	appMiddleware "github.com/ArkanTsabit123/Student-Management-System/internal/middleware"
	"github.com/ArkanTsabit123/Student-Management-System/internal/pkg/logger"
	"github.com/ArkanTsabit123/Student-Management-System/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos             *appRepos.Repositories
	StudentService    appServices.StudentService
	GradeService      appServices.GradeService
	CatalogService    appServices.CatalogService
	ReportService     appServices.ReportService
	StudentController *appControllers.StudentController
	GradeController   *appControllers.GradeController
	CatalogController *appControllers.CatalogController
	ReportController  *appControllers.ReportController
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = config.DefaultPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "pretty",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// Connect opens the connection pool
func Connect(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	return database.Pool, nil
}

// Migrate applies the embedded schema migrations
func Migrate(ctx context.Context, pool appMigrations.DB, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")
	applied, err := appMigrations.NewMigrator(pool, logger.Component("migrations")).Migrate(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Int("applied", applied).Msg("Database migrations successfully applied.")
	return nil
}

// SetupDatabase connects, migrates and seeds the reference data.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	pool, err := Connect(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}

	if err := Migrate(ctx, pool, lgr); err != nil {
		pool.Close()
		return nil, err
	}

	// A partial seed still leaves a usable database
	if _, err := seed.CreateDefaultData(ctx, appRepos.NewRepositories(pool), lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return pool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(pool appRepos.DBTX, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(pool)

	deps.StudentService = appServices.NewStudentService(deps.Repos, lgr.With().Str("component", "students").Logger())
	deps.GradeService = appServices.NewGradeService(deps.Repos, lgr.With().Str("component", "grades").Logger())
	deps.CatalogService = appServices.NewCatalogService(deps.Repos)
	deps.ReportService = appServices.NewReportService(
		deps.StudentService,
		deps.GradeService,
		lgr.With().Str("component", "reports").Logger(),
	)

	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.GradeService, deps.CatalogService)
	deps.GradeController = appControllers.NewGradeController(deps.GradeService)
	deps.CatalogController = appControllers.NewCatalogController(deps.CatalogService)
	deps.ReportController = appControllers.NewReportController(deps.ReportService)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch strings.ToLower(cfg.Server.Mode) {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	lgr.Info().Str("mode", gin.Mode()).Msg("Gin mode configured")

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr.With().Str("component", "http").Logger()),
	)

	appRoutes.SetupRouter(router,
		deps.StudentController,
		deps.GradeController,
		deps.CatalogController,
		deps.ReportController,
	)

	return router
}
