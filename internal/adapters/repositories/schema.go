package repositories

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var embedMigrations embed.FS

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func (d Dialect) gooseDialect() (string, string, error) {
	switch d {
	case DialectSQLite:
		return "sqlite3", "migrations/sqlite", nil
	case DialectPostgres:
		return "postgres", "migrations/postgres", nil
	default:
		return "", "", fmt.Errorf("unsupported dialect %q", d)
	}
}

// Migrate brings the warehouse schema up to date.
func Migrate(db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("migrate: DB is nil")
	}

	name, dir, err := dialect.gooseDialect()
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(name); err != nil {
		return fmt.Errorf("migrate: set goose dialect: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migrate: apply %s migrations: %w", dialect, err)
	}

	return nil
}

type BinSeed struct {
	BinID    int    `json:"bin_id"`
	Capacity int    `json:"capacity"`
	Location string `json:"location"`
}

// DemoBins is the inventory a fresh database starts with.
var DemoBins = []BinSeed{
	{BinID: 1, Capacity: 5, Location: "A1"},
	{BinID: 2, Capacity: 10, Location: "A2"},
	{BinID: 3, Capacity: 15, Location: "B1"},
	{BinID: 4, Capacity: 50, Location: "B2"},
	{BinID: 5, Capacity: 100, Location: "C1"},
}

// ParseBinSeeds reads and validates a JSON array of bins.
func ParseBinSeeds(jsonPath string) ([]BinSeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed bins: read %q: %w", jsonPath, err)
	}

	var data []BinSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed bins: parse json: %w", err)
	}

	seen := make(map[int]struct{}, len(data))
	rows := make([]BinSeed, 0, len(data))
	for i, item := range data {
		if item.BinID <= 0 {
			return nil, fmt.Errorf("seed bins: invalid bin_id at index %d: %d", i+1, item.BinID)
		}
		if _, ok := seen[item.BinID]; ok {
			return nil, fmt.Errorf("seed bins: duplicate bin_id %d at index %d", item.BinID, i+1)
		}
		seen[item.BinID] = struct{}{}

		if item.Capacity <= 0 {
			return nil, fmt.Errorf("seed bins: bin_id=%d: capacity must be positive, got %d", item.BinID, item.Capacity)
		}

		loc := strings.TrimSpace(item.Location)
		if loc == "" {
			return nil, fmt.Errorf("seed bins: bin_id=%d: location cannot be empty", item.BinID)
		}
		rows = append(rows, BinSeed{BinID: item.BinID, Capacity: item.Capacity, Location: loc})
	}

	return rows, nil
}

// SeedBinsFromJSON upserts the bins listed in a JSON file.
func SeedBinsFromJSON(db *sql.DB, dialect Dialect, jsonPath string) error {
	rows, err := ParseBinSeeds(jsonPath)
	if err != nil {
		return err
	}
	return SeedBins(db, dialect, rows)
}

func seedQuery(dialect Dialect) (string, error) {
	switch dialect {
	case DialectSQLite:
		return `
	INSERT OR REPLACE INTO bins (
		bin_id,
		capacity,
		location_code
	)
	VALUES (?, ?, ?);
	`, nil
	case DialectPostgres:
		return `
	INSERT INTO bins (bin_id, capacity, location_code)
	VALUES ($1, $2, $3)
	ON CONFLICT (bin_id) DO UPDATE
	SET capacity = EXCLUDED.capacity,
		location_code = EXCLUDED.location_code;
	`, nil
	default:
		return "", fmt.Errorf("unsupported dialect %q", dialect)
	}
}

// SeedBinsIfEmpty seeds rows only when the bins table has no rows yet.
// It reports whether it seeded.
func SeedBinsIfEmpty(db *sql.DB, dialect Dialect, rows []BinSeed) (bool, error) {
	if db == nil {
		return false, errors.New("seed bins: DB is nil")
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM bins;`).Scan(&n); err != nil {
		return false, fmt.Errorf("seed bins: count bins: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	if err := SeedBins(db, dialect, rows); err != nil {
		return false, err
	}
	return true, nil
}

// SeedBins upserts bins in a single transaction.
func SeedBins(db *sql.DB, dialect Dialect, rows []BinSeed) error {
	if db == nil {
		return errors.New("seed bins: DB is nil")
	}

	query, err := seedQuery(dialect)
	if err != nil {
		return fmt.Errorf("seed bins: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed bins: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed bins: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range rows {
		if _, err := stmt.Exec(b.BinID, b.Capacity, b.Location); err != nil {
			return fmt.Errorf("seed bins: insert bin_id=%d: %w", b.BinID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed bins: commit tx: %w", err)
	}

	return nil
}
