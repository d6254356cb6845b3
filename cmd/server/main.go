// Command server runs the client ledger HTTP service.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/soldeapp/clientledger/config"
	"github.com/soldeapp/clientledger/pkg/ledger"
	"github.com/soldeapp/clientledger/pkg/storage"
	"github.com/soldeapp/clientledger/webapi"
)

func main() {
	bootstrap := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg, err := config.Load(bootstrap, ".env")
	if err != nil {
		bootstrap.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := setupLogger(cfg.Log)

	st, err := openStorage(cfg)
	if err != nil {
		logger.Error("failed to open storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}

	store := ledger.New(st, logger)
	app := webapi.New(store, logger)

	logger.Info("server listening", "addr", cfg.Addr(), "env", cfg.Env)
	if err := app.Listen(cfg.Addr()); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// openStorage picks the snapshot medium from configuration.
func openStorage(cfg *config.AppConfig) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return storage.NewMemory(), nil
	case "file":
		return storage.NewFile(cfg.Storage.Dir)
	case "postgres":
		db, err := storage.Connect(cfg.Storage.DatabaseURL, cfg.Env)
		if err != nil {
			return nil, err
		}
		return storage.NewGorm(db)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
