// Package server initializes and runs the dispatch backend: it selects the
// repository and blob storage backends, applies migrations, handles graceful
// shutdown and starts the HTTP server.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/paperdispatch/paperdispatch/internal/logging"
	"github.com/paperdispatch/paperdispatch/internal/server/auth"
	"github.com/paperdispatch/paperdispatch/internal/server/config"
	"github.com/paperdispatch/paperdispatch/internal/server/httpapi"
	"github.com/paperdispatch/paperdispatch/internal/server/repositories/repomanager"
	"github.com/paperdispatch/paperdispatch/internal/server/services"
	"github.com/paperdispatch/paperdispatch/internal/server/storage"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	dispatchService *services.DispatchService
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	var db *sql.DB
	var manager repomanager.RepositoryManager

	if c.DatabaseDSN == "memory" {
		manager = repomanager.NewInMemoryRepositoryManager()
	} else {
		var err error
		db, err = sql.Open("pgx", c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		manager = repomanager.NewPostgresRepositoryManager()
		if err := manager.RunMigrations(context.Background(), db); err != nil {
			return nil, fmt.Errorf("migration error: %w", err)
		}
	}

	var store storage.BlobStore
	if c.S3BaseEndpoint != "" {
		s3store, err := storage.NewS3Store(context.Background(), storage.S3Options{
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			Bucket:       c.S3Bucket,
			RootUser:     c.S3RootUser,
			RootPassword: c.S3RootPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("storage init error: %w", err)
		}
		store = s3store
	} else {
		store = storage.NewLocalStore(c.StorageDir)
	}

	ds := services.NewDispatchService(db, manager, store)

	return &App{config: c, logger: logger, dispatchService: ds}, nil
}

// MintToken issues a dev bearer token for the given owner.
func (app *App) MintToken(ownerID string) (string, error) {
	return auth.GenerateToken(ownerID, []byte(app.config.SecretKey), app.config.TokenValidityDuration)
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.dispatchService,
		app.config.Organizations, app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
