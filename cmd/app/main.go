package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/korvus/EnchantMastery_Go/internal/bootstrap"
	"github.com/korvus/EnchantMastery_Go/internal/config"
	"github.com/korvus/EnchantMastery_Go/internal/database"
	"github.com/korvus/EnchantMastery_Go/internal/event"
	"github.com/korvus/EnchantMastery_Go/internal/handler"
	"github.com/korvus/EnchantMastery_Go/internal/metrics"
	"github.com/korvus/EnchantMastery_Go/internal/mirror"
	"github.com/korvus/EnchantMastery_Go/internal/progression"
	"github.com/korvus/EnchantMastery_Go/internal/registry"
	"github.com/korvus/EnchantMastery_Go/internal/server"
	"github.com/korvus/EnchantMastery_Go/internal/sse"
	"github.com/korvus/EnchantMastery_Go/internal/store"
	ledgerpg "github.com/korvus/EnchantMastery_Go/internal/store/postgres"
	"github.com/korvus/EnchantMastery_Go/internal/wallet"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	dbMaxConns        = 10
	dbMaxConnIdleTime = 5 * time.Minute
	dbMaxConnLifetime = 30 * time.Minute

	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	handler.InitValidator()

	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	slog.Info("Enchantment registry loaded", "enchantments", len(reg.All()))

	// Persistence: Postgres when enabled, in-memory otherwise.
	var (
		dbPool  *pgxpool.Pool
		ledgers progression.LedgerStore
	)
	if cfg.DBEnabled {
		if err := database.Migrate(context.Background(), cfg.GetDBConnString()); err != nil {
			return err
		}
		dbPool, err = database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxConnIdleTime, dbMaxConnLifetime)
		if err != nil {
			return err
		}
		ledgers = ledgerpg.NewLedgerStore(dbPool)
	} else {
		slog.Info("Database disabled, using in-memory ledger store")
		ledgers = store.NewMemoryStore()
	}

	eventBus := event.NewMemoryBus()

	// Metrics over the event stream.
	if err := metrics.NewEventMetricsCollector().Register(eventBus); err != nil {
		return err
	}

	// SSE hub plus its bus bridge.
	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub, eventBus).Subscribe()

	// Server-side reference mirror, fed by the same snapshot events clients
	// receive. Useful for admin inspection and as a projection smoke test.
	serverMirror, err := mirror.New(mirror.DefaultCapacity)
	if err != nil {
		return err
	}
	serverMirror.AttachTo(eventBus)

	curve := curveFromConfig(cfg.Progression)
	masteryService := progression.NewService(ledgers, reg, wallet.NewMemoryWallet(), curve, eventBus)

	var pool database.Pool
	if dbPool != nil {
		pool = dbPool
	}
	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, pool, masteryService, hub)

	// Run the server and wait for a shutdown signal.
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server: srv,
		SSEHub: hub,
		DBPool: pool,
	})
	return nil
}

func loadRegistry(cfg *config.Config) (registry.Registry, error) {
	if cfg.RegistryPath == "" {
		return registry.Default(), nil
	}
	return registry.Load(cfg.RegistryPath)
}

func curveFromConfig(p config.ProgressionConfig) progression.Curve {
	return progression.Curve{
		AbsorbBaseCost:     p.AbsorbBaseCost,
		AbsorbQuadratic:    p.AbsorbQuadratic,
		ApplyBaseCost:      p.ApplyBaseCost,
		ApplyQuadratic:     p.ApplyQuadratic,
		MasteryXPBase:      p.MasteryXPBase,
		MasteryXPLinear:    p.MasteryXPLinear,
		MasteryXPQuadratic: p.MasteryXPQuadratic,
		XPGainMultiplier:   p.XPGainMultiplier,
		DecodeBaseCost:     p.DecodeBaseCost,
		DecodeScaling:      p.DecodeScaling,
	}
}
