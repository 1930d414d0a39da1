// Package server initializes and runs the PlanHub API server.
// It opens the database, runs migrations, wires the services behind the
// HTTP endpoint, starts the document validation worker, and handles
// graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/evercare/planhub/internal/logging"
	"github.com/evercare/planhub/internal/obs"
	"github.com/evercare/planhub/internal/server/config"
	"github.com/evercare/planhub/internal/server/httpapi"
	"github.com/evercare/planhub/internal/server/repositories/repomanager"
	"github.com/evercare/planhub/internal/server/services"
	"github.com/evercare/planhub/internal/server/validation"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
	worker *validation.Worker
}

func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return nil, fmt.Errorf("repository init error: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	obs.Init()

	userService := services.NewUserService(db, m, cfg, logger)
	handlers := httpapi.NewHandlers(
		userService,
		services.NewInvitationService(db, m, userService, cfg),
		services.NewParticipantService(db, m),
		services.NewProviderService(db, m),
		services.NewCoordinatorService(db, m),
		services.NewRelationshipService(db, m),
		services.NewInvoiceService(db, m, cfg),
		services.NewPlanService(db, m),
		services.NewDashboardService(db, m),
		logger,
	)

	router := httpapi.NewRouter(handlers, cfg)

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		server: httpapi.NewServer(cfg.EndpointAddr, router, logger),
		worker: validation.NewWorker(db, m, cfg.ValidationInterval, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.worker.Run(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
