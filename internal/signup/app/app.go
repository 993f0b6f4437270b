package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/delveng/signup/internal/signup/http"
	"github.com/delveng/signup/internal/signup/identity"
	"github.com/delveng/signup/internal/signup/service"
	"github.com/delveng/signup/internal/signup/store"
	"github.com/delveng/signup/internal/signup/store/drivers/sqlite"
	"github.com/delveng/signup/pkg/cryptox"
	"github.com/delveng/signup/pkg/regsdk"
	"github.com/delveng/signup/pkg/slogx"
)

// BuildVersion is overridden at build time with -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application owns every long-lived dependency of the signup service.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	secret []byte

	flowService         *service.FlowService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "signup-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initSecret(); err != nil {
		return nil, err
	}
	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run serves until SIGINT/SIGTERM or a server error.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("signup service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}
	return nil
}

func (app *Application) Shutdown() error {
	app.logger.Info("shutting down signup service")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("signup service stopped")
	return nil
}

// Handler exposes the routed HTTP handler, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

func (app *Application) initSecret() error {
	if app.cfg.FlowSecret != "" {
		app.secret = []byte(app.cfg.FlowSecret)
		return nil
	}

	s, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return fmt.Errorf("generate flow secret: %w", err)
	}
	app.secret = []byte(s)
	app.logger.Warn("SIGNUP_FLOW_SECRET not set; using an ephemeral secret, flows and stored sessions will not survive a restart")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices() error {
	slots, err := service.NewTokenSlots(app.db, app.secret)
	if err != nil {
		return fmt.Errorf("init token slots: %w", err)
	}
	handles, err := service.NewHandles(app.secret, app.cfg.FlowTTL)
	if err != nil {
		return fmt.Errorf("init flow handles: %w", err)
	}

	registrar := regsdk.NewClient(regsdk.Config{
		BaseURL: app.cfg.APIBaseURL,
		APIKey:  app.cfg.APIKey,
		Timeout: app.cfg.APITimeout,
	})
	if app.cfg.APIKey == "" {
		app.logger.Warn("SIGNUP_API_KEY not set; the registration API will likely reject requests")
	}

	profiles := identity.NewGoogleProfiles(app.cfg.GoogleUserInfoURL, app.cfg.APITimeout)

	app.flowService = service.NewFlowService(registrar, profiles, slots, handles, app.db, app.cfg.FlowTTL)
	app.housekeepingService = service.NewHousekeepingService(app.flowService, app.logger, app.cfg.HousekeepingInterval)
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.flowService.Handles.Verifier(),
		BuildVersion,
		app.db,
		app.flowService,
		app.logger,
	)
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
