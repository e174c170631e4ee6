// ====================================
// File: cmd/curved/main.go
// ====================================
package main

import (
	"context"
	"flag"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/curve-engine/internal/api"
	"github.com/rovshanmuradov/curve-engine/internal/config"
	"github.com/rovshanmuradov/curve-engine/internal/engine"
	"github.com/rovshanmuradov/curve-engine/internal/events"
	"github.com/rovshanmuradov/curve-engine/internal/history"
	historypg "github.com/rovshanmuradov/curve-engine/internal/history/postgres"
	"github.com/rovshanmuradov/curve-engine/internal/ledger"
	"github.com/rovshanmuradov/curve-engine/internal/logger"
	"github.com/rovshanmuradov/curve-engine/internal/store"
)

func main() {
	configPath := flag.String("config", "configs/config.toml", "path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		zap.NewExample().Fatal("Failed to load config", zap.Error(err))
	}

	log, err := logger.New(&logger.Config{
		LogFile:     cfg.LogFile,
		MaxSize:     100,
		MaxAge:      7,
		MaxBackups:  3,
		Compress:    true,
		Development: cfg.DebugLogging,
	})
	if err != nil {
		zap.NewExample().Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting curve engine", zap.String("listen_addr", cfg.ListenAddr))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	curveStore, err := store.NewPebbleStore(filepath.Join(cfg.DataDir, "curves"))
	if err != nil {
		log.Fatal("Failed to open curve store", zap.Error(err))
	}
	defer func() { _ = curveStore.Close() }()

	bus := events.NewBus(log.Logger, cfg.EventBufferSize)

	// Trade history is optional: without Postgres the engine still runs,
	// it just keeps no audit trail.
	var recorder *history.Recorder
	if cfg.PostgresURL != "" {
		histStorage, err := historypg.NewStorage(cfg.PostgresURL, log.WithComponent("history"))
		if err != nil {
			log.Fatal("Failed to connect to history storage", zap.Error(err))
		}
		defer func() { _ = histStorage.Close() }()

		if err := histStorage.RunMigrations(); err != nil {
			log.Fatal("Failed to run history migrations", zap.Error(err))
		}

		recorder = history.NewRecorder(histStorage, log.Logger)
		recorder.Attach(bus)
		log.Info("Trade history recording enabled")
	}

	bank := ledger.NewInMemory()
	eng := engine.New(curveStore, bank, bank, bus, log.WithComponent("engine"))

	server := api.NewServer(eng, log.WithComponent("api"), cfg.MetricsEnabled)
	if err := server.Run(ctx, cfg.ListenAddr, time.Duration(cfg.ShutdownTimeout)*time.Second); err != nil {
		log.Error("HTTP server error", zap.Error(err))
	}

	if recorder != nil {
		recorder.Detach()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
	defer shutdownCancel()
	if err := bus.Shutdown(shutdownCtx); err != nil {
		log.Warn("Event bus did not drain in time", zap.Error(err))
	}

	log.Info("Curve engine stopped")
}
