package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/library-api/internal/audit"
	"github.com/mrlokans/library-api/internal/config"
	"github.com/mrlokans/library-api/internal/database"
	dbaudit "github.com/mrlokans/library-api/internal/database/audit"
	"github.com/mrlokans/library-api/internal/database/authors"
	"github.com/mrlokans/library-api/internal/database/books"
	http_controllers "github.com/mrlokans/library-api/internal/http"
	"github.com/mrlokans/library-api/internal/logger"
	"github.com/mrlokans/library-api/internal/scheduler"
	"github.com/mrlokans/library-api/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve blocks until SIGINT or SIGTERM, then shuts the server down.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Dur("timeout", timeout).Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	// Stop background work after in-flight requests are drained.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Info().Msg("server exiting")
}

// application holds everything Run wires together.
type application struct {
	db        *database.Database
	audit     *audit.Service
	tasks     *tasks.Client
	scheduler *scheduler.AuditCleanupScheduler
	router    *gin.Engine

	cancelBackground context.CancelFunc
}

func newApplication(cfg *config.Config, version string) (*application, error) {
	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app := &application{db: db}

	routerCfg := http_controllers.RouterConfig{
		Database: db,
		Books:    books.NewRepository(db.DB),
		Authors:  authors.NewRepository(db.DB),
		Version:  version,
		Pagination: http_controllers.Pagination{
			DefaultLimit: cfg.Pagination.DefaultLimit,
			MaxLimit:     cfg.Pagination.MaxLimit,
		},
		CORSOrigins: cfg.CORS.AllowedOrigins,
	}

	if cfg.Audit.Enabled {
		app.audit = audit.NewService(dbaudit.NewRepository(db.DB))
		routerCfg.Audit = app.audit
		routerCfg.AuditLog = app.audit
	}

	if cfg.Tasks.Enabled {
		app.tasks, err = tasks.NewClient(cfg.TasksDBPath(), tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to initialize task queue: %w", err)
		}

		if app.audit != nil {
			app.tasks.Register(tasks.NewCleanupAuditEventsQueue(app.audit))
			app.scheduler = scheduler.NewAuditCleanupScheduler(app.tasks, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays)
		}
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	app.router = http_controllers.NewRouter(routerCfg)

	return app, nil
}

// start launches the task workers and the cleanup schedule.
func (a *application) start() error {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancelBackground = cancel

	if a.tasks != nil {
		a.tasks.Start(ctx)
	}
	if a.scheduler != nil {
		if err := a.scheduler.Start(ctx); err != nil {
			return err
		}
		log.Info().Time("next_run", a.scheduler.NextRun()).Msg("audit cleanup scheduled")
	}
	return nil
}

func (a *application) shutdown(ctx context.Context) {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.tasks != nil {
		if !a.tasks.Stop(ctx) {
			log.Warn().Msg("task workers did not finish before the shutdown deadline")
		}
	}
	if a.cancelBackground != nil {
		a.cancelBackground()
	}
	if a.audit != nil {
		a.audit.Wait()
	}
	log.Debug().Msg("background jobs stopped")
	if a.tasks != nil {
		if err := a.tasks.Close(); err != nil {
			log.Error().Err(err).Msg("error closing task queue")
		}
	}
	if err := a.db.Close(); err != nil {
		log.Error().Err(err).Msg("error closing database")
	}
}

func Run(cfg *config.Config, version string) {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log.Info().
		Str("version", version).
		Str("driver", string(cfg.Database.Driver)).
		Bool("audit", cfg.Audit.Enabled).
		Bool("tasks", cfg.Tasks.Enabled).
		Msg("starting library API")

	app, err := newApplication(cfg, version)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	if err := app.start(); err != nil {
		app.shutdown(context.Background())
		log.Fatal().Err(err).Msg("failed to start background jobs")
	}

	Serve(app.router, cfg, app.shutdown)
}

// CreateTables runs the idempotent schema bootstrap and exits.
func CreateTables(cfg *config.Config) error {
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Info().Str("driver", string(db.Driver)).Msg("tables are up to date")
	return nil
}
