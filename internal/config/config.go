package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type StoreKind string

const (
	StoreSQLite   StoreKind = "sqlite"
	StorePostgres StoreKind = "postgres"
	StoreMemory   StoreKind = "memory"
)

type Config struct {
	Port            string
	Store           StoreKind
	DBPath          string
	DatabaseURL     string
	BinSeedPath     string
	ConnectAttempts int

	Redis struct {
		URL       string
		StreamKey string
		MaxLen    int64
	}

	Log struct {
		Level  string
		Format string
	}
}

// LoadDotEnv reads .env when present. Variables already set in the
// environment take precedence.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found (using environment variables)")
	}
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func Load() (*Config, error) {
	LoadDotEnv()

	cfg := &Config{
		Port:        Get("PORT", "8080"),
		Store:       StoreKind(strings.ToLower(Get("STORE", string(StoreSQLite)))),
		DBPath:      Get("DB_PATH", "data/warehouse.db"),
		DatabaseURL: Get("DATABASE_URL", ""),
		BinSeedPath: Get("BIN_SEED_PATH", ""),
	}

	attempts, err := strconv.Atoi(Get("DB_CONNECT_ATTEMPTS", "4"))
	if err != nil || attempts < 1 {
		return nil, fmt.Errorf("load config: DB_CONNECT_ATTEMPTS must be a positive integer, got %q", os.Getenv("DB_CONNECT_ATTEMPTS"))
	}
	cfg.ConnectAttempts = attempts

	cfg.Redis.URL = Get("REDIS_URL", "")
	cfg.Redis.StreamKey = Get("REDIS_STREAM_KEY", "warehouse:shipments")
	maxLen, err := strconv.ParseInt(Get("REDIS_STREAM_MAXLEN", "10000"), 10, 64)
	if err != nil || maxLen < 0 {
		return nil, fmt.Errorf("load config: REDIS_STREAM_MAXLEN must be a non-negative integer, got %q", os.Getenv("REDIS_STREAM_MAXLEN"))
	}
	cfg.Redis.MaxLen = maxLen

	cfg.Log.Level = Get("LOG_LEVEL", "info")
	cfg.Log.Format = strings.ToLower(Get("LOG_FORMAT", "json"))

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store {
	case StoreSQLite:
		if c.DBPath == "" {
			return errors.New("DB_PATH is required for sqlite store")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for postgres store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE %q (want sqlite, postgres or memory)", c.Store)
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q (want json or text)", c.Log.Format)
	}
	return nil
}
