package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE", "DB_PATH", "DATABASE_URL", "BIN_SEED_PATH", "DB_CONNECT_ATTEMPTS", "REDIS_URL", "REDIS_STREAM_KEY", "REDIS_STREAM_MAXLEN", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "data/warehouse.db", cfg.DBPath)
	assert.Equal(t, 4, cfg.ConnectAttempts)
	assert.Equal(t, "warehouse:shipments", cfg.Redis.StreamKey)
	assert.Equal(t, int64(10000), cfg.Redis.MaxLen)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadPostgresRequiresURL(t *testing.T) {
	t.Setenv("STORE", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://localhost/warehouse")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.Store)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string][2]string{
		"unknown store":  {"STORE", "mongo"},
		"bad attempts":   {"DB_CONNECT_ATTEMPTS", "zero"},
		"zero attempts":  {"DB_CONNECT_ATTEMPTS", "0"},
		"bad maxlen":     {"REDIS_STREAM_MAXLEN", "-1"},
		"unknown format": {"LOG_FORMAT", "xml"},
	}

	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetFallback(t *testing.T) {
	t.Setenv("WAREHOUSE_TEST_KEY", "  ")
	assert.Equal(t, "fallback", Get("WAREHOUSE_TEST_KEY", "fallback"))

	t.Setenv("WAREHOUSE_TEST_KEY", "value")
	assert.Equal(t, "value", Get("WAREHOUSE_TEST_KEY", "fallback"))
}
