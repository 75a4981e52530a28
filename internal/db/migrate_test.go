package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func withMigrations(t *testing.T, migrations ...string) {
	t.Helper()
	orig := All
	All = migrations
	t.Cleanup(func() { All = orig })
}

func schemaVersion(t *testing.T, db *sql.DB) int {
	t.Helper()
	var version int
	require.NoError(t, db.QueryRow(`SELECT version FROM schema_version`).Scan(&version))
	return version
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n))
	return n == 1
}

func TestMigrate_CreatesSchemaVersionTable(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	assert.True(t, tableExists(t, db, "schema_version"))
}

func TestMigrate_NoMigrationsLeavesVersionZero(t *testing.T) {
	withMigrations(t)
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	assert.Equal(t, 0, schemaVersion(t, db))
}

func TestMigrate_RunsPendingMigrations(t *testing.T) {
	withMigrations(t,
		`CREATE TABLE test_one (id INTEGER PRIMARY KEY)`,
		`CREATE TABLE test_two (id INTEGER PRIMARY KEY)`,
	)
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	assert.Equal(t, 2, schemaVersion(t, db))
	assert.True(t, tableExists(t, db, "test_one"))
	assert.True(t, tableExists(t, db, "test_two"))
}

func TestMigrate_AppliesOnlyNewMigrations(t *testing.T) {
	withMigrations(t, `CREATE TABLE test_first (id INTEGER PRIMARY KEY)`)
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	All = append(All, `CREATE TABLE test_second (id INTEGER PRIMARY KEY)`)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	assert.Equal(t, 2, schemaVersion(t, db))
	assert.True(t, tableExists(t, db, "test_second"))
}

func TestMigrate_RollsBackOnFailure(t *testing.T) {
	withMigrations(t,
		`CREATE TABLE test_good (id INTEGER PRIMARY KEY)`,
		`INVALID SQL STATEMENT`,
	)
	db := openTestDB(t)
	err := Migrate(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration 2 failed")
	assert.Equal(t, 1, schemaVersion(t, db))
}

func TestOpen_CreatesPresetAndSessionTables(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "lsys.db"))
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, tableExists(t, db, "presets"))
	assert.True(t, tableExists(t, db, "sessions"))
	assert.Equal(t, len(All), schemaVersion(t, db))

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestOpen_SingleSessionRow(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "lsys.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO sessions (id, settings, program, origin_x, origin_y) VALUES (2, '', '', 0, 0)`)
	assert.Error(t, err)
}
