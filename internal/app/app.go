package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/hackmatehq/hackmate/internal/http"
	"github.com/hackmatehq/hackmate/internal/semantic"
	"github.com/hackmatehq/hackmate/internal/service"
	"github.com/hackmatehq/hackmate/internal/store"
	"github.com/hackmatehq/hackmate/internal/store/drivers/sqlite"
	"github.com/hackmatehq/hackmate/internal/ws"
	"github.com/hackmatehq/hackmate/pkg/jwtx"
	"github.com/hackmatehq/hackmate/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the matching service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	signer   *jwtx.Signer
	semantic semantic.Provider // nil when no similarity sidecar is configured

	// Services
	authService    *service.AuthService
	profileService *service.ProfileService
	matchService   *service.MatchService
	inviteService  *service.InviteService
	chatService    *service.ChatService
	bioService     *service.BioService

	// Chat relay
	hub   *ws.Hub
	relay *ws.Relay

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "hackmate",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	signer, err := jwtx.NewSigner([]byte(cfg.JWTSecret), cfg.Issuer, jwtx.DefaultSessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.signer = signer

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if cfg.SimilarityURL != "" {
		app.semantic = semantic.NewHTTPProvider(cfg.SimilarityURL, cfg.SimilarityTimeout)
		app.logger.Info("semantic similarity sidecar configured", "url", cfg.SimilarityURL)
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("hackmate starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down hackmate...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("hackmate stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
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

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:  app.db,
		Signer: app.signer,
	}
	app.profileService = &service.ProfileService{Store: app.db}

	// MatchService and InviteService share the provider so invite snapshots
	// use the same scoring mode as the cards the user saw.
	app.matchService = &service.MatchService{
		Store:    app.db,
		Semantic: app.semantic,
	}
	app.inviteService = &service.InviteService{
		Store:    app.db,
		Semantic: app.semantic,
	}

	app.chatService = &service.ChatService{Store: app.db}
	app.bioService = &service.BioService{Store: app.db}

	app.hub = ws.NewHub()
	app.relay = &ws.Relay{
		Hub:   app.hub,
		Chats: app.chatService,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.ProfileService = app.profileService
	router.MatchService = app.matchService
	router.InviteService = app.inviteService
	router.ChatService = app.chatService
	router.BioService = app.bioService
	router.Relay = app.relay
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
