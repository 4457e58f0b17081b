package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"warehouse-allocation-service/internal/adapters/repositories"
	"warehouse-allocation-service/internal/config"
	"warehouse-allocation-service/internal/platform/db"
	"warehouse-allocation-service/internal/platform/logging"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const usage = "usage: dbtool [migrate|seed|setup]"

// dbtool applies migrations and seeds the bin configuration.
//
//	dbtool migrate   apply schema migrations
//	dbtool seed      upsert bins from BIN_SEED_PATH
//	dbtool setup     both (default)
func main() {
	cmd := "setup"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if len(os.Args) > 2 {
		fatal("dbtool", errors.New(usage))
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("load config", err)
	}
	if _, err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		fatal("setup logging", err)
	}

	driver, dsn, dialect := "sqlite", cfg.DBPath, repositories.DialectSQLite
	switch cfg.Store {
	case config.StorePostgres:
		driver, dsn, dialect = "pgx", cfg.DatabaseURL, repositories.DialectPostgres
	case config.StoreMemory:
		fatal("dbtool", errNoDatabase)
	}

	conn, err := db.Open(context.Background(), db.Options{
		Driver:          driver,
		DSN:             dsn,
		ConnectAttempts: cfg.ConnectAttempts,
	})
	if err != nil {
		fatal("open database", err)
	}
	defer conn.Close()

	seedPath := config.Get("BIN_SEED_PATH", "data/seeds/bins.json")
	if err := run(conn, dialect, cmd, seedPath); err != nil {
		fatal(cmd, err)
	}
}

var errNoDatabase = errors.New("STORE=memory has no database to migrate")

func run(conn *sql.DB, dialect repositories.Dialect, cmd, seedPath string) error {
	switch cmd {
	case "migrate":
		return migrate(conn, dialect)
	case "seed":
		return seed(conn, dialect, seedPath)
	case "setup":
		if err := migrate(conn, dialect); err != nil {
			return err
		}
		return seed(conn, dialect, seedPath)
	default:
		return fmt.Errorf("unknown command %q; %s", cmd, usage)
	}
}

func migrate(conn *sql.DB, dialect repositories.Dialect) error {
	slog.Info("applying migrations", "dialect", dialect)
	if err := repositories.Migrate(conn, dialect); err != nil {
		return err
	}
	slog.Info("schema ready")
	return nil
}

func seed(conn *sql.DB, dialect repositories.Dialect, seedPath string) error {
	slog.Info("seeding bins", "path", seedPath)
	if err := repositories.SeedBinsFromJSON(conn, dialect, seedPath); err != nil {
		return err
	}
	slog.Info("seeding complete")
	return nil
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
