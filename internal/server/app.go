// Package server wires storage, the profile store and the loyalty service
// into the gRPC server and runs it until a shutdown signal arrives.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/pchela/internal/config"
	"github.com/dmitrijs2005/pchela/internal/logging"
	"github.com/dmitrijs2005/pchela/internal/loyalty"
	"github.com/dmitrijs2005/pchela/internal/profiles"
	"github.com/dmitrijs2005/pchela/internal/repositories/kv"

	gs "github.com/dmitrijs2005/pchela/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	store   *profiles.Store
	loyalty *loyalty.Service
	closer  io.Closer
}

// NewApp opens the configured backend and loads the profile collection.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel, c.LogFormat)

	repo, closer, err := kv.Open(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	catalog, err := loyalty.LoadCatalog(c.CatalogPath)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	store := profiles.NewStore(repo, profiles.WithLogger(logger), profiles.WithKey(c.StorageKey))
	if err := store.Initialize(ctx, nil); err != nil {
		_ = closer.Close()
		return nil, err
	}
	if store.Recovered() {
		logger.Warn(ctx, "profile collection was malformed and has been reset", "backup_key", c.StorageKey+".corrupt")
	}

	svc := loyalty.NewService(store, catalog, c.MaxProfiles, logger)

	return &App{config: c, logger: logger, store: store, loyalty: svc, closer: closer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.loyalty, app.config.SecretKey, app.config.AccessTokenValidityDuration)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a shutdown signal is received, then
// releases the storage backend.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageBackend, "profiles", app.store.Len())

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.closer.Close(); err != nil {
		app.logger.Error(ctx, "failed to close storage", "error", err)
	}
	app.logger.Info(ctx, "Stopped")
}
