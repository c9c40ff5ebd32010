// Package server wires the SmartBrain API together: it opens the database,
// applies migrations, builds the services and runs the HTTP and gRPC health
// servers until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/smartbrain/internal/logging"
	"github.com/dmitrijs2005/smartbrain/internal/server/config"
	"github.com/dmitrijs2005/smartbrain/internal/server/inference"
	"github.com/dmitrijs2005/smartbrain/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/smartbrain/internal/server/services"

	gs "github.com/dmitrijs2005/smartbrain/internal/server/grpc"
	hs "github.com/dmitrijs2005/smartbrain/internal/server/http"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	authService    *services.AuthService
	profileService *services.ProfileService
	gateway        *inference.ClarifaiClient
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	as, err := services.NewAuthService(db, rm, c, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	ps := services.NewProfileService(db, rm, logger)

	if c.InferenceAPIKey == "" {
		logger.Warn(ctx, "inference API key is empty, /imageurl calls will fail")
	}
	gw, err := inference.NewClarifaiClient(c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		authService:    as,
		profileService: ps,
		gateway:        gw,
	}, nil
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

	s, err := hs.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.authService, app.profileService,
		app.gateway, app.config.CORSAllowedOrigins, app.config.ShutdownTimeout)

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

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.db,
		app.config.HealthCheckInterval, app.config.ShutdownTimeout)

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

// Run blocks until a signal arrives, ctx is cancelled or a server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.gateway.Close(); err != nil {
		app.logger.Error(context.Background(), "inference client close error", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
