// Package server assembles the MindWell backend: it opens and migrates the
// database, builds the services, and runs the REST API and the gRPC health
// server until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/mindwell/internal/logging"
	"github.com/dmitrijs2005/mindwell/internal/server/config"
	"github.com/dmitrijs2005/mindwell/internal/server/httpapi"
	"github.com/dmitrijs2005/mindwell/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mindwell/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/mindwell/internal/server/grpc"
)

// Seams for tests.
var (
	openDB         = repomanager.OpenDB
	newRepoManager = repomanager.NewPostgresRepositoryManager
	logOutput      io.Writer = os.Stdout
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *httpapi.Server
	health *gs.HealthServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogBackend, logOutput)
	if err != nil {
		return nil, err
	}

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Users:                  services.NewUserService(db, rm, c),
		Journal:                services.NewJournalService(db, rm),
		Avatars:                services.NewAvatarService(db, rm, c),
		Logger:                 logger,
		SecretKey:              []byte(c.SecretKey),
		SessionValidity:        c.SessionValidityDuration,
		SecureCookies:          c.SecureCookies(),
		AllowedOrigins:         c.AllowedOrigins,
		ProtectSentimentAppend: c.ProtectSentimentAppend,
	})

	return &App{
		config: c,
		logger: logger,
		db:     db,
		http:   httpapi.NewServer(c.EndpointAddrHTTP, router, logger),
		health: gs.NewHealthServer(c.EndpointAddrGRPC, logger),
	}, nil
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM/SIGQUIT arrives, then
// stops both servers and closes the database.
func (app *App) Run(ctx context.Context) error {

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "environment", app.config.Environment)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.http.Run(ctx)
	})
	g.Go(func() error {
		return app.health.Run(ctx)
	})

	// the database answered a ping in NewApp
	app.health.SetServing()

	g.Go(func() error {
		<-ctx.Done()
		app.health.SetNotServing()
		return nil
	})

	err := g.Wait()

	if cErr := app.db.Close(); cErr != nil {
		err = errors.Join(err, fmt.Errorf("close db: %w", cErr))
	}

	app.logger.Info(context.Background(), "App stopped")
	if s, ok := app.logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}

	return err
}
