// Package server wires storage, services and the network endpoints together
// and runs them until the process is asked to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/uptask/internal/logging"
	"github.com/dmitrijs2005/uptask/internal/server/config"
	"github.com/dmitrijs2005/uptask/internal/server/graphql"
	"github.com/dmitrijs2005/uptask/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/uptask/internal/server/services"

	gs "github.com/dmitrijs2005/uptask/internal/server/grpc"
)

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	httpServer  *graphql.Server
	grpcServer  *gs.HealthServer
}

// NewApp opens storage, runs migrations and builds both servers. Log
// records go to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewJSONLogger(w, level)

	db, rm, err := openStorage(ctx, c)
	if err != nil {
		return nil, err
	}

	resolvers := graphql.NewResolvers(logger,
		services.NewUserService(db, rm, c),
		services.NewProjectService(db, rm),
		services.NewTaskService(db, rm),
		services.NewExportService(db, rm, c),
	)

	httpServer, err := graphql.NewServer(c.EndpointAddrHTTP, logger, c.SecretKey, resolvers)
	if err != nil {
		return nil, fmt.Errorf("schema error: %w", err)
	}

	grpcServer := gs.NewHealthServer(c.EndpointAddrGRPC, logger)
	if db != nil {
		grpcServer.AddCheck("database", db.PingContext)
	}

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		repomanager: rm,
		httpServer:  httpServer,
		grpcServer:  grpcServer,
	}, nil
}

// openStorage returns a nil *sql.DB for the in-memory store.
func openStorage(ctx context.Context, c *config.Config) (*sql.DB, repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == config.MemoryDSN {
		return nil, repomanager.NewMemoryRepositoryManager(), nil
	}

	db, err := sqlOpen("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	return db, rm, nil
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

// serve runs start and cancels everything else when it fails.
func (app *App) serve(ctx context.Context, cancelFunc context.CancelFunc, name string, start func(context.Context) error) {
	if err := start(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.serve(ctx, cancelFunc, "http", app.httpServer.Run)
	}()
	go func() {
		defer wg.Done()
		app.serve(ctx, cancelFunc, "grpc", app.grpcServer.Run)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}

	app.logger.Info(ctx, "App stopped")
}
