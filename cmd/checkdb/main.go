// checkdb подключается к базе из конфигурации, проверяет схему busdetails
// и печатает версию сервера.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/findbus/internal/config"
	"github.com/findbus/internal/pkg/logger"
	"github.com/findbus/internal/repository/sqlstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("Database check failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error connecting to the database: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	provider, err := sqlstore.NewProvider(&cfg.Database, log)
	if err != nil {
		return err
	}
	defer provider.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout+5*time.Second)
	defer cancel()

	if _, err := provider.Get(ctx); err != nil {
		return err
	}

	version, err := provider.ServerVersion(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Connected to %s, version %s\n", cfg.Database.Driver, version)
	return nil
}
