package main

// @title FindBus API
// @version 1.0.0
// @description Дашборд для поиска автобусов по таблице busdetails: фильтры по маршруту, типу, цене, рейтингу, местам и длительности.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/findbus/docs/swagger"
	"github.com/findbus/internal/config"
	httpDelivery "github.com/findbus/internal/delivery/http"
	"github.com/findbus/internal/delivery/http/handler"
	"github.com/findbus/internal/pkg/errors"
	"github.com/findbus/internal/pkg/logger"
	"github.com/findbus/internal/repository/sqlstore"
	"github.com/findbus/internal/usecase"
	"github.com/findbus/internal/worker"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting FindBus")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// 3. Database provider (соединение открывается лениво)
	provider, err := sqlstore.NewProvider(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to create database provider", zap.Error(err))
	}
	defer func() {
		if err := provider.Close(); err != nil {
			log.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// 4. Warm up: неверная схема - фатально, недоступная база - нет
	connect := func(ctx context.Context) error {
		_, err := provider.Get(ctx)
		return err
	}
	workers := worker.NewWorkerManager(log)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout+time.Second)
	if err := connect(ctx); err != nil {
		if errors.Is(err, errors.ErrSchemaMismatch) {
			cancel()
			log.Fatal("Database schema check failed", zap.Error(err))
		}
		log.Warn("Database not reachable yet, will retry on first request", zap.Error(err))
		if cfg.Database.RetryInterval > 0 {
			workers.Register(worker.NewConnectionWarmer(connect, cfg.Database.RetryInterval, cfg.Database.ConnectTimeout, log))
		}
	} else {
		log.Info("Database connected")
	}
	cancel()

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	workers.Start(workerCtx)

	// 5. Repositories, use cases, handlers
	busRepo := sqlstore.NewBusRepository(provider)
	busUC := usecase.NewBusUseCase(busRepo, log)

	pageHandler, err := handler.NewPageHandler(busUC, log, cfg.UI.HomeImagePath)
	if err != nil {
		log.Fatal("Failed to initialize page handler", zap.Error(err))
	}
	busHandler := handler.NewBusHandler(busUC, log)

	// 6. HTTP Server
	server := httpDelivery.NewServer(cfg, log, pageHandler, busHandler)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 7. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := workers.Stop(shutdownCtx); err != nil {
		log.Error("Workers shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
