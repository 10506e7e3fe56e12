// Package server initializes and runs the application server: database
// connection and migrations, the event publisher, the service layer and the
// HTTP endpoint, with graceful shutdown on OS signals.
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
	"github.com/tableorderhq/tableorder/internal/logging"
	"github.com/tableorderhq/tableorder/internal/server/config"
	"github.com/tableorderhq/tableorder/internal/server/events"
	"github.com/tableorderhq/tableorder/internal/server/httpapi"
	"github.com/tableorderhq/tableorder/internal/server/repositories/repomanager"
	"github.com/tableorderhq/tableorder/internal/server/services"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	publisher events.Publisher
	server    *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSON("tableorder-server")

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.AMQPURL != "" {
		p, err := events.Dial(cfg.AMQPURL, cfg.EventExchange)
		if err != nil {
			return nil, fmt.Errorf("event publisher init error: %w", err)
		}
		publisher = p
	} else {
		logger.Info(ctx, "event publishing disabled, no broker url configured")
	}

	userService := services.NewUserService(db, rm, cfg)
	profileService := services.NewProfileService(db, rm)
	storeService := services.NewStoreService(db, rm)
	menuService := services.NewMenuService(db, rm, storeService)
	orderService := services.NewOrderService(db, rm, storeService, publisher, logger)
	healthService := services.NewHealthService(db, rm)
	mediaService := services.NewMediaService(cfg, storeService)

	srv := httpapi.NewServer(cfg, logger,
		userService, profileService, storeService, menuService,
		orderService, healthService, mediaService)

	return &App{
		config:    cfg,
		logger:    logger,
		db:        db,
		publisher: publisher,
		server:    srv,
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

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

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
	wg.Wait()

	app.publisher.Close()
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
	app.logger.Info(ctx, "app stopped")
}
