package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"curve-launchpad/internal/config"
	"curve-launchpad/internal/engine"
	"curve-launchpad/internal/events"
	"curve-launchpad/internal/launch"
	"curve-launchpad/internal/ledger"
	"curve-launchpad/internal/logger"
	"curve-launchpad/internal/observability"
	"curve-launchpad/internal/policy"
	"curve-launchpad/internal/storage"
	"curve-launchpad/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "configs/config.json", "path to config file")
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
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting curve launchpad")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("Launchpad execution error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	authority := solana.MustPublicKeyFromBase58(cfg.Authority)
	feeRecipient := solana.MustPublicKeyFromBase58(cfg.FeeRecipient)

	pol, err := policy.New(authority, feeRecipient, cfg.PlatformFeeBps)
	if err != nil {
		return err
	}

	var store storage.Storage
	if cfg.PostgresURL != "" {
		pg, err := postgres.New(ctx, cfg.PostgresURL, log)
		if err != nil {
			return err
		}
		defer pg.Close()
		if err := pg.RunMigrations(); err != nil {
			return err
		}
		store = pg
	} else {
		log.Warn("No postgres_url configured, running without persistence")
	}

	bus := events.NewBus(log, cfg.EventBuffer)
	metrics := observability.NewMetrics("")

	eng, err := engine.New(engine.Config{
		Logger:   log,
		Policy:   pol,
		Registry: launch.NewRegistry(),
		Ledger:   ledger.NewMemory(),
		Store:    store,
		Bus:      bus,
		Metrics:  metrics,
	})
	if err != nil {
		return err
	}
	if err := eng.Restore(ctx); err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Metrics server listening", zap.String("addr", cfg.MetricsAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("Metrics server shutdown failed", zap.Error(err))
		}
		return bus.Shutdown(shutdownCtx)
	})

	log.Info("Launchpad ready")
	return g.Wait()
}
