package migration

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func migrationsFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	if err := db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name = ?", name).Scan(&count); err != nil {
		t.Fatalf("failed to check table %s: %v", name, err)
	}
	return count > 0
}

func TestCurrentVersionFreshDatabase(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationsFS(map[string]string{
		"001_test.sql": "CREATE TABLE test (id INTEGER);",
	}))

	version, err := runner.CurrentVersion(context.Background())
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}
}

func TestMigrationsSortedAndParsed(t *testing.T) {
	runner := NewRunner(nil, migrationsFS(map[string]string{
		"002_second.sql": "SELECT 2;",
		"001_first.sql":  "SELECT 1;",
		"README.md":      "ignored",
	}))

	migrations, err := runner.Migrations()
	if err != nil {
		t.Fatalf("Migrations failed: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "first" {
		t.Errorf("first migration = %+v, want version 1 named first", migrations[0])
	}
	if migrations[1].Version != 2 || migrations[1].Name != "second" {
		t.Errorf("second migration = %+v, want version 2 named second", migrations[1])
	}
}

func TestApplyFromScratch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	runner := NewRunner(db, migrationsFS(map[string]string{
		"001_entries.sql":  "CREATE TABLE entries (id INTEGER PRIMARY KEY);",
		"002_settings.sql": "CREATE TABLE settings (key TEXT PRIMARY KEY, value TEXT);",
	}))

	var logged []string
	applied, err := runner.Apply(ctx, func(msg string) { logged = append(logged, msg) })
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 applied migrations, got %d", applied)
	}
	if len(logged) != 2 {
		t.Errorf("expected 2 log lines, got %d", len(logged))
	}

	version, err := runner.CurrentVersion(ctx)
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}
	if !tableExists(t, db, "entries") || !tableExists(t, db, "settings") {
		t.Error("expected both tables to exist")
	}
}

func TestApplyIncrementalAndNoOp(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first := NewRunner(db, migrationsFS(map[string]string{
		"001_entries.sql": "CREATE TABLE entries (id INTEGER PRIMARY KEY);",
	}))
	if _, err := first.Apply(ctx, nil); err != nil {
		t.Fatalf("initial Apply failed: %v", err)
	}

	second := NewRunner(db, migrationsFS(map[string]string{
		"001_entries.sql":  "CREATE TABLE entries (id INTEGER PRIMARY KEY);",
		"002_settings.sql": "CREATE TABLE settings (key TEXT PRIMARY KEY, value TEXT);",
	}))
	applied, err := second.Apply(ctx, nil)
	if err != nil {
		t.Fatalf("incremental Apply failed: %v", err)
	}
	if applied != 1 {
		t.Errorf("expected 1 applied migration, got %d", applied)
	}

	applied, err = second.Apply(ctx, nil)
	if err != nil {
		t.Fatalf("repeat Apply failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("expected 0 applied migrations on repeat, got %d", applied)
	}
}

func TestApplyRollsBackFailedMigration(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	runner := NewRunner(db, migrationsFS(map[string]string{
		"001_entries.sql": "CREATE TABLE entries (id INTEGER PRIMARY KEY);",
		"002_broken.sql":  "CREATE TABLE half (id INTEGER); THIS IS NOT SQL;",
	}))

	applied, err := runner.Apply(ctx, nil)
	if err == nil {
		t.Fatal("expected Apply to fail on broken migration")
	}
	if applied != 1 {
		t.Errorf("expected 1 applied migration before failure, got %d", applied)
	}

	version, err := runner.CurrentVersion(ctx)
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 1 {
		t.Errorf("expected version to stay at 1, got %d", version)
	}
	if tableExists(t, db, "half") {
		t.Error("table from failed migration should have been rolled back")
	}
}

func TestValidateVersionNewerDatabase(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.Exec("CREATE TABLE schema_version (version INTEGER PRIMARY KEY); INSERT INTO schema_version (version) VALUES (9);"); err != nil {
		t.Fatalf("failed to seed schema_version: %v", err)
	}

	runner := NewRunner(db, migrationsFS(map[string]string{
		"001_entries.sql": "CREATE TABLE entries (id INTEGER PRIMARY KEY);",
	}))

	err := runner.ValidateVersion(ctx)
	if err == nil || !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("ValidateVersion() = %v, want newer-schema error", err)
	}
	if _, err := runner.Apply(ctx, nil); err == nil {
		t.Error("Apply should refuse a newer database")
	}
}

func TestInvalidMigrationFiles(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{"missing separator", map[string]string{"001.sql": "SELECT 1;"}},
		{"non-numeric version", map[string]string{"abc_init.sql": "SELECT 1;"}},
		{"zero version", map[string]string{"000_init.sql": "SELECT 1;"}},
		{"duplicate version", map[string]string{"001_a.sql": "SELECT 1;", "001_b.sql": "SELECT 1;"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(nil, migrationsFS(tt.files))
			if _, err := runner.Migrations(); err == nil {
				t.Error("expected an error, got nil")
			}
		})
	}
}
