package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
	"warehouse-allocation-service/internal/adapters/audit"
	"warehouse-allocation-service/internal/adapters/memory"
	"warehouse-allocation-service/internal/adapters/repositories"
	"warehouse-allocation-service/internal/api"
	"warehouse-allocation-service/internal/config"
	"warehouse-allocation-service/internal/platform/db"
	"warehouse-allocation-service/internal/platform/logging"
	"warehouse-allocation-service/internal/ports"
	"warehouse-allocation-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires a concrete store (SQLite, Postgres or memory) behind ports,
// builds the single warehouse controller and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal("load config", err)
	}

	logger, err := logging.Setup(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fatal("setup logging", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		fatal("open store", err)
	}
	defer closeStore()

	var shipments ports.ShipmentLogger = store
	if cfg.Redis.URL != "" {
		client, err := audit.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			fatal("connect redis", err)
		}
		defer client.Close()

		stream, err := audit.NewRedisShipmentStream(client, cfg.Redis.StreamKey, cfg.Redis.MaxLen)
		if err != nil {
			fatal("redis shipment stream", err)
		}
		shipments = audit.NewFanout(store, stream)
		logger.Info("mirroring shipment events to redis", "stream", cfg.Redis.StreamKey)
	}

	warehouse := services.NewWarehouse(store, shipments, logger)

	// The warehouse cannot run without its bin configuration.
	if err := warehouse.LoadInventory(ctx); err != nil {
		fatal("load inventory", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(warehouse),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", srv.Addr, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		fatal("server", err)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}

// openStore returns the configured warehouse store and a close func.
func openStore(ctx context.Context, cfg *config.Config) (ports.WarehouseStore, func(), error) {
	switch cfg.Store {
	case config.StoreMemory:
		seeds := repositories.DemoBins
		if cfg.BinSeedPath != "" {
			var err error
			if seeds, err = repositories.ParseBinSeeds(cfg.BinSeedPath); err != nil {
				return nil, nil, err
			}
		}
		bins := make([]memory.BinSpec, 0, len(seeds))
		for _, s := range seeds {
			bins = append(bins, memory.BinSpec{BinID: s.BinID, Capacity: s.Capacity, Location: s.Location})
		}
		return memory.NewStore(bins), func() {}, nil

	case config.StorePostgres:
		conn, err := openSQL(ctx, cfg, "pgx", cfg.DatabaseURL, repositories.DialectPostgres)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewPostgresWarehouseStore(conn), func() { conn.Close() }, nil

	default:
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create database directory: %w", err)
		}
		conn, err := openSQL(ctx, cfg, "sqlite", cfg.DBPath, repositories.DialectSQLite)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewSqliteWarehouseStore(conn), func() { conn.Close() }, nil
	}
}

func openSQL(ctx context.Context, cfg *config.Config, driver, dsn string, dialect repositories.Dialect) (*sql.DB, error) {
	conn, err := db.Open(ctx, db.Options{
		Driver:          driver,
		DSN:             dsn,
		ConnectAttempts: cfg.ConnectAttempts,
	})
	if err != nil {
		return nil, err
	}

	if err := repositories.Migrate(conn, dialect); err != nil {
		conn.Close()
		return nil, err
	}

	// An explicit seed file is upserted on every start. Without one, an empty
	// database gets the demo inventory.
	if cfg.BinSeedPath != "" {
		if err := repositories.SeedBinsFromJSON(conn, dialect, cfg.BinSeedPath); err != nil {
			conn.Close()
			return nil, err
		}
		return conn, nil
	}
	seeded, err := repositories.SeedBinsIfEmpty(conn, dialect, repositories.DemoBins)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if seeded {
		slog.Info("seeded demo bins", "bins", len(repositories.DemoBins))
	}
	return conn, nil
}
