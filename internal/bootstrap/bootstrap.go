package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/coursenotes/internal/app/controllers"
	appMigrations "github.com/yigit/coursenotes/internal/app/migrations"
	appRepos "github.com/yigit/coursenotes/internal/app/repositories"
	memoryRepos "github.com/yigit/coursenotes/internal/app/repositories/memory"
	mongoRepos "github.com/yigit/coursenotes/internal/app/repositories/mongodb"
	postgresRepos "github.com/yigit/coursenotes/internal/app/repositories/postgres"
	appRoutes "github.com/yigit/coursenotes/internal/app/routes"
	appServices "github.com/yigit/coursenotes/internal/app/services"
	"github.com/yigit/coursenotes/internal/config"
	"github.com/yigit/coursenotes/internal/db"
	appMiddleware "github.com/yigit/coursenotes/internal/middleware"
	"github.com/yigit/coursenotes/internal/pkg/filestorage"
	"github.com/yigit/coursenotes/internal/pkg/helpers"
	"github.com/yigit/coursenotes/internal/pkg/logger"
	"github.com/yigit/coursenotes/internal/pkg/session"
	"github.com/yigit/coursenotes/internal/pkg/validation"
	"github.com/yigit/coursenotes/internal/seed"
)

// CloseFunc releases one resource on shutdown
type CloseFunc func(ctx context.Context) error

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos             *appRepos.Repositories
	Connector         *db.Connector
	Sessions          *session.Manager
	SessionMiddleware *appMiddleware.SessionMiddleware
	FileStorage       filestorage.FileStorage
	AuthService       appServices.AuthService
	CourseService     appServices.CourseService
	NoteService       appServices.NoteService
	Controllers       appRoutes.Controllers
	Logger            zerolog.Logger

	closers []CloseFunc
}

// Close stops the reconnect loop and releases store connections, last opened first.
func (d *Dependencies) Close(ctx context.Context) error {
	if d.Connector != nil {
		d.Connector.Stop()
	}
	var errs error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = errors.Join(errs, d.closers[i](ctx))
	}
	d.closers = nil
	return errs
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", "configs/config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := SetupLogger(cfg)
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupLogger configures the global logger from cfg and returns it
func SetupLogger(cfg *config.Config) zerolog.Logger {
	return logger.Configure(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
}

// SetupStore opens the configured record store and returns its repositories and a
// probe that pings, migrates and seeds it. Opening never dials; the probe does.
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, db.ProbeFunc, CloseFunc, error) {
	var (
		repos      *appRepos.Repositories
		prep       db.ProbeFunc
		closeStore CloseFunc
	)

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		repos = postgresRepos.NewRepositories(database.Pool)
		migrator := appMigrations.NewMigrator(database)
		prep = func(ctx context.Context) error {
			if err := database.Ping(ctx); err != nil {
				return err
			}
			return migrator.Migrate(ctx)
		}
		closeStore = func(context.Context) error {
			database.Close()
			return nil
		}

	case config.DriverMongo:
		database, err := db.NewMongoDB(cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		repos = mongoRepos.NewRepositories(database.Database)
		prep = func(ctx context.Context) error {
			if err := database.Ping(ctx); err != nil {
				return err
			}
			return appMigrations.EnsureMongoIndexes(ctx, database.Database)
		}
		closeStore = database.Close

	case config.DriverMemory:
		lgr.Warn().Msg("Using the in-memory record store, data is lost on restart")
		repos = memoryRepos.NewRepositories(memoryRepos.NewStore())
		prep = func(context.Context) error { return nil }
		closeStore = func(context.Context) error { return nil }

	default:
		return nil, nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	probe := func(ctx context.Context) error {
		if err := prep(ctx); err != nil {
			return err
		}
		if !cfg.Seed.Enabled {
			return nil
		}
		if err := seed.CreateDefaultData(ctx, repos.CourseRepository, lgr); err != nil {
			// A failed seed must not keep the store in degraded mode
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
		return nil
	}

	return repos, probe, closeStore, nil
}

// SetupSessionStore returns the configured session store
func SetupSessionStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (session.Store, CloseFunc, error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			// go-redis redials on demand, so a late Redis only fails logins until it is up
			lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis session store unreachable at startup")
		}
		return session.NewRedisStore(client), func(context.Context) error { return client.Close() }, nil

	case config.SessionStoreMemory:
		return session.NewMemoryStore(), func(context.Context) error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported session store %q", cfg.Session.Store)
	}
}

// SetupFileStorage returns the configured note file storage
func SetupFileStorage(ctx context.Context, cfg *config.Config) (filestorage.FileStorage, error) {
	switch cfg.Storage.Driver {
	case config.StorageLocal:
		return filestorage.NewLocalStorage(cfg.Storage.Path)
	case config.StorageMinIO:
		return filestorage.NewMinIOStorage(ctx, filestorage.MinIOConfig{
			Endpoint:     cfg.Storage.MinIO.Endpoint,
			AccessKey:    cfg.Storage.MinIO.AccessKey,
			SecretKey:    cfg.Storage.MinIO.SecretKey,
			Bucket:       cfg.Storage.MinIO.Bucket,
			CreateBucket: cfg.Storage.MinIO.CreateBucket,
		})
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

// BuildDependencies initializes stores, services and controllers, then makes the first
// connection attempt. Unless fail_fast is set, an unreachable record store leaves the
// app running in degraded mode.
func BuildDependencies(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (_ *Dependencies, err error) {
	deps := &Dependencies{Logger: lgr}
	defer func() {
		if err != nil {
			_ = deps.Close(context.WithoutCancel(ctx))
		}
	}()

	repos, probe, closeStore, err := SetupStore(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to set up record store")
		return nil, err
	}
	deps.Repos = repos
	deps.closers = append(deps.closers, closeStore)

	sessionStore, closeSessions, err := SetupSessionStore(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}
	deps.closers = append(deps.closers, closeSessions)

	deps.FileStorage, err = SetupFileStorage(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Sessions = session.NewManager(
		sessionStore,
		session.NewTokenSigner(cfg.Session.Secret, cfg.Session.Issuer),
		helpers.ParseDuration(cfg.Session.TTL, 24*time.Hour),
	)
	deps.SessionMiddleware = appMiddleware.NewSessionMiddleware(deps.Sessions, appMiddleware.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.Secure,
	}, lgr)

	// Initialize services
	deps.AuthService = appServices.NewAuthService(repos.UserRepository, lgr)
	deps.CourseService = appServices.NewCourseService(repos.CourseRepository, lgr)
	deps.NoteService = appServices.NewNoteService(repos.NoteRepository, repos.CourseRepository, deps.FileStorage, lgr)

	deps.Connector = db.NewConnector(cfg.Database.Driver, probe, db.ConnectorOptions{
		Timeout:  helpers.ParseDuration(cfg.Database.ConnectTimeout, 10*time.Second),
		FailFast: cfg.Database.FailFast,
	}, lgr)

	deps.Controllers = appRoutes.Controllers{
		Home:   appControllers.NewHomeController(deps.Connector),
		Auth:   appControllers.NewAuthController(deps.AuthService, deps.Sessions, deps.SessionMiddleware, lgr),
		Course: appControllers.NewCourseController(deps.CourseService, lgr),
		Note:   appControllers.NewNoteController(deps.NoteService, cfg.Storage.MaxUploadBytes, lgr),
	}

	if err := deps.Connector.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Database.Driver, err)
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	switch strings.ToLower(cfg.Server.Mode) {
	case "production", "release":
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := validation.RegisterBindingRules(); err != nil {
		return nil, fmt.Errorf("failed to register validation rules: %w", err)
	}

	router := gin.New()
	router.Use(
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr),
		gin.Recovery(),
	)

	appRoutes.SetupRouter(router, deps.Controllers, deps.SessionMiddleware, deps.Connector)

	return router, nil
}
