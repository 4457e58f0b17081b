package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestOpenSqlite(t *testing.T) {
	db, err := Open(context.Background(), Options{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "app.db"),
	})
	require.NoError(t, err)
	defer db.Close()

	var one int
	require.NoError(t, db.QueryRow("SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "nope", DSN: "x"})
	assert.Error(t, err)
}

func TestOpenGivesUpWhenContextIsDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Open(ctx, Options{
		Driver:          "sqlite",
		DSN:             filepath.Join(t.TempDir(), "app.db"),
		ConnectAttempts: 3,
		InitialBackoff:  time.Millisecond,
	})
	assert.ErrorIs(t, err, context.Canceled)
}
