package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type Options struct {
	// Driver is the database/sql driver name ("pgx" or "sqlite").
	Driver string
	DSN    string
	// ConnectAttempts bounds the startup ping retries. Values below 1 mean 1.
	ConnectAttempts int
	// InitialBackoff doubles after every failed ping.
	InitialBackoff time.Duration
}

// Open opens a database handle and verifies it, retrying the ping with
// exponential backoff while respecting context cancellation.
func Open(ctx context.Context, opts Options) (*sql.DB, error) {
	db, err := sql.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("openDB: open %s database: %w", opts.Driver, err)
	}

	switch opts.Driver {
	case "sqlite":
		// SQLite serializes writers; a single connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := pingWithRetry(ctx, db, opts); err != nil {
		db.Close()
		return nil, fmt.Errorf("openDB: verify %s connection: %w", opts.Driver, err)
	}

	return db, nil
}

func pingWithRetry(ctx context.Context, db *sql.DB, opts Options) error {
	maxAttempts := max(opts.ConnectAttempts, 1)
	backoff := opts.InitialBackoff
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = db.PingContext(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}

		slog.WarnContext(ctx, "database ping failed, retrying", "driver", opts.Driver, "attempt", attempt, "backoff", backoff, "err", lastErr)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return lastErr
}
