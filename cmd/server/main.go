package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	inventoryapp "github.com/retailpos/backend/internal/application/inventory"
	registerapp "github.com/retailpos/backend/internal/application/register"
	salesapp "github.com/retailpos/backend/internal/application/sales"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/cache"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/retailpos/backend/internal/infrastructure/event"
	"github.com/retailpos/backend/internal/infrastructure/logger"
	"github.com/retailpos/backend/internal/infrastructure/persistence"
	"github.com/retailpos/backend/internal/interfaces/http/handler"
	"github.com/retailpos/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting sale engine",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	gormLevel := gormlogger.Warn
	if !cfg.IsProduction() {
		gormLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(log.Named("gorm"), gormLevel))
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	bus := event.NewInMemoryEventBus(log.Named("events"))
	if err := bus.Start(context.Background()); err != nil {
		log.Fatal("failed to start event bus", zap.Error(err))
	}

	idempotencyStore := cache.NewIdempotencyStore(cfg.Redis, log)
	defer func() {
		_ = idempotencyStore.Close()
	}()

	scope := persistence.NewGormTransactionScope(db.DB)
	saleReads := persistence.NewGormSaleRepository(db.DB)
	stockReads := persistence.NewGormStockLevelRepository(db.DB)
	movementReads := persistence.NewGormStockMovementRepository(db.DB)
	sessionRepo := persistence.NewGormSessionRepository(db.DB)

	idemConfig := shared.IdempotencyConfig{
		Enabled: cfg.Idempotency.Enabled,
		TTL:     cfg.Idempotency.TTL,
	}

	saleService := salesapp.NewSaleService(scope, saleReads, idempotencyStore, idemConfig, bus, log.Named("sales"))
	stockService := inventoryapp.NewStockService(scope, stockReads, movementReads, bus, log.Named("stock"))
	sessionService := registerapp.NewSessionService(sessionRepo, log.Named("sessions"))

	engine := router.New(cfg, log, router.Handlers{
		Sale:    handler.NewSaleHandler(saleService),
		Stock:   handler.NewStockHandler(stockService),
		Session: handler.NewSessionHandler(sessionService),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	if err := bus.Stop(ctx); err != nil {
		log.Error("failed to stop event bus", zap.Error(err))
	}
	log.Info("stopped")
}
