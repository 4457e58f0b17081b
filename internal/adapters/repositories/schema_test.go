package repositories

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectMapsToGooseDialectAndDir(t *testing.T) {
	tests := []struct {
		dialect Dialect
		goose   string
		dir     string
	}{
		{dialect: DialectSQLite, goose: "sqlite3", dir: "migrations/sqlite"},
		{dialect: DialectPostgres, goose: "postgres", dir: "migrations/postgres"},
	}

	for _, tc := range tests {
		t.Run(string(tc.dialect), func(t *testing.T) {
			name, dir, err := tc.dialect.gooseDialect()
			require.NoError(t, err)
			assert.Equal(t, tc.goose, name)
			assert.Equal(t, tc.dir, dir)

			files, err := fs.Glob(embedMigrations, dir+"/*.sql")
			require.NoError(t, err)
			require.NotEmpty(t, files)
		})
	}

	_, _, err := Dialect("oracle").gooseDialect()
	assert.Error(t, err)
}

func TestMigrationVersionsMatchAcrossDialects(t *testing.T) {
	names := func(dir string) []string {
		entries, err := fs.ReadDir(embedMigrations, dir)
		require.NoError(t, err)
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.Name())
		}
		return out
	}

	assert.Equal(t, names("migrations/sqlite"), names("migrations/postgres"))

	for _, dir := range []string{"migrations/sqlite", "migrations/postgres"} {
		for _, name := range names(dir) {
			body, err := fs.ReadFile(embedMigrations, dir+"/"+name)
			require.NoError(t, err)
			assert.Contains(t, string(body), "-- +goose Up", "%s/%s", dir, name)
			assert.Contains(t, string(body), "-- +goose Down", "%s/%s", dir, name)
		}
	}
}

func TestSeedQueryPerDialect(t *testing.T) {
	q, err := seedQuery(DialectPostgres)
	require.NoError(t, err)
	assert.Contains(t, q, "$3")
	assert.Contains(t, q, "ON CONFLICT (bin_id) DO UPDATE")

	q, err = seedQuery(DialectSQLite)
	require.NoError(t, err)
	assert.True(t, strings.Contains(q, "INSERT OR REPLACE"))
	assert.NotContains(t, q, "$1")

	_, err = seedQuery(Dialect("oracle"))
	assert.Error(t, err)
}

func TestSeedBinsIfEmpty(t *testing.T) {
	db := newTestDB(t)

	seeded, err := SeedBinsIfEmpty(db, DialectSQLite, DemoBins)
	require.NoError(t, err)
	assert.True(t, seeded)

	bins, err := NewSqliteWarehouseStore(db).LoadBins(context.Background())
	require.NoError(t, err)
	assert.Len(t, bins, len(DemoBins))

	// An operator-edited inventory survives restarts.
	require.NoError(t, SeedBins(db, DialectSQLite, []BinSeed{{BinID: 1, Capacity: 7, Location: "A1"}}))
	seeded, err = SeedBinsIfEmpty(db, DialectSQLite, DemoBins)
	require.NoError(t, err)
	assert.False(t, seeded)

	bins, err = NewSqliteWarehouseStore(db).LoadBins(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, bins[0].Capacity)
}

func TestSeedBinsIfEmptyNilDB(t *testing.T) {
	_, err := SeedBinsIfEmpty(nil, DialectSQLite, DemoBins)
	assert.Error(t, err)
}
